package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================================
// 购物车 / 收藏夹
// ============================================================================

// AddItemRequest 加入购物车，quantity 必须为 1..999
type AddItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=999"`
}

// UpdateItemRequest 修改购物车行数量
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=999"`
}

// AddFavouriteRequest 收藏商品
type AddFavouriteRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// CategoryView 商品所属分类
type CategoryView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductView 商品当前数据（非快照）
type ProductView struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Price    int64         `json:"price"`
	ImageURL string        `json:"imageUrl"`
	Category *CategoryView `json:"category,omitempty"`
}

// LineResponse 订单行；name / price 为加入时的快照
type LineResponse struct {
	ID        string       `json:"id"`
	OrderID   string       `json:"orderId"`
	ProductID string       `json:"productId"`
	Name      string       `json:"name"`
	Price     int64        `json:"price"`
	Quantity  int          `json:"quantity"`
	Subtotal  int64        `json:"subtotal"`
	Product   *ProductView `json:"product,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// CartResponse 购物车视图
type CartResponse struct {
	CartID string          `json:"cartId"`
	Items  []*LineResponse `json:"items"`
}

// CheckoutResponse 结算结果
type CheckoutResponse struct {
	OrderID string          `json:"orderId"`
	Total   decimal.Decimal `json:"total"`
}

// FavouriteResponse 收藏项：行 ID 用于删除，商品为当前数据；商品已被删除时为 nil
type FavouriteResponse struct {
	DetailID string       `json:"favouriteDetailId"`
	Product  *ProductView `json:"product"`
}

// ============================================================================
// 订单管理
// ============================================================================

// ListQuery 订单列表查询参数
type ListQuery struct {
	Status              string
	UserID              string
	SortBy              string
	SortOrder           string
	Page                int
	Limit               int
	IncludeOrderDetails bool
}

// CreateRequest 管理员直接创建真实订单
type CreateRequest struct {
	UserID      string           `json:"userId" binding:"required"`
	Status      string           `json:"status" binding:"omitempty,order_status"`
	TotalPrice  *decimal.Decimal `json:"totalPrice"`
	AcceptedAt  *time.Time       `json:"acceptedAt"`
	DeliveredAt *time.Time       `json:"deliveredAt"`
	ReceivedAt  *time.Time       `json:"receivedAt"`
}

// UpdateRequest 部分更新，至少提供一个字段
type UpdateRequest struct {
	Status      *string          `json:"status" binding:"omitempty,order_status"`
	UserID      *string          `json:"userId" binding:"omitempty,min=1"`
	TotalPrice  *decimal.Decimal `json:"totalPrice"`
	AcceptedAt  *time.Time       `json:"acceptedAt"`
	DeliveredAt *time.Time       `json:"deliveredAt"`
	ReceivedAt  *time.Time       `json:"receivedAt"`
}

// Response 订单返回模型
type Response struct {
	ID           string           `json:"id"`
	UserID       string           `json:"userId"`
	Status       string           `json:"status"`
	TotalPrice   *decimal.Decimal `json:"totalPrice"`
	AcceptedAt   *time.Time       `json:"acceptedAt"`
	DeliveredAt  *time.Time       `json:"deliveredAt"`
	ReceivedAt   *time.Time       `json:"receivedAt"`
	OrderDetails []*LineResponse  `json:"orderDetails,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}
