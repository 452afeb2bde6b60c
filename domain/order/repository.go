package order

import (
	"context"

	"restaurant/domain/shared"
)

// Repository 订单仓储接口
// 只负责聚合根持久化，不发布事件（事件由 UoW 写入 outbox）
type Repository interface {
	// GetOrCreateSingleton 原子地"不存在则插入"用户的购物车/收藏夹行并返回现存行
	// 以 SingletonKey 为唯一键，并发首次访问只会产生一行
	GetOrCreateSingleton(ctx context.Context, candidate *Order) (*Order, error)

	// FindSingleton 查找用户当前的购物车/收藏夹行，不存在返回 ErrOrderNotFound
	FindSingleton(ctx context.Context, userID string, role Role) (*Order, error)

	// Save 新建或更新（乐观锁）
	Save(ctx context.Context, o *Order) error

	FindByID(ctx context.Context, id string) (*Order, error)

	// List 分页查询，返回当前页与总数
	List(ctx context.Context, criteria ListCriteria) ([]*Order, int64, error)

	// Remove 软删除，同时释放 SingletonKey
	Remove(ctx context.Context, id string) error
}

// LineRepository 订单行仓储接口
type LineRepository interface {
	FindByOrderID(ctx context.Context, orderID string) ([]*Line, error)
	FindByOrderIDs(ctx context.Context, orderIDs []string) (map[string][]*Line, error)

	// FindInOrder 按行 ID 查找，行必须属于给定订单
	FindInOrder(ctx context.Context, orderID, lineID string) (*Line, error)

	// FindByProduct 查找订单中某商品的行，不存在返回 ErrLineNotFound
	FindByProduct(ctx context.Context, orderID, productID string) (*Line, error)

	// Save 新建或更新；新建时违反 (order_id, product_id) 唯一约束返回 ErrDuplicateLine
	Save(ctx context.Context, line *Line) error

	Remove(ctx context.Context, orderID, lineID string) error
	RemoveAll(ctx context.Context, orderID string) (int64, error)
}

// SortField 订单列表可排序字段
type SortField string

const (
	SortByStatus      SortField = "status"
	SortByTotalPrice  SortField = "totalPrice"
	SortByCreatedAt   SortField = "createdAt"
	SortByAcceptedAt  SortField = "acceptedAt"
	SortByDeliveredAt SortField = "deliveredAt"
	SortByReceivedAt  SortField = "receivedAt"
)

// ParseSortField 无法识别时回退到 createdAt
func ParseSortField(s string) SortField {
	switch f := SortField(s); f {
	case SortByStatus, SortByTotalPrice, SortByCreatedAt, SortByAcceptedAt, SortByDeliveredAt, SortByReceivedAt:
		return f
	default:
		return SortByCreatedAt
	}
}

// ListCriteria 列表查询条件
type ListCriteria struct {
	Spec      shared.Specification[*Order]
	SortBy    SortField
	SortOrder shared.SortOrder
	Page      shared.Page
}
