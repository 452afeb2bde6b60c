package order

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// MaxLineQuantity 单行数量上限
	MaxLineQuantity = 999

	// maxNameSnapshot 名称快照列宽 CHAR(50)
	maxNameSnapshot = 50
)

// ProductSnapshot 加入订单行时从商品复制的字段
type ProductSnapshot struct {
	ProductID string
	Name      string
	Price     int64 // 最小货币单位
}

// Line 订单行（购物车项、收藏项、真实订单明细）
// 名称和价格是加入时的快照，不随商品后续修改而变化
type Line struct {
	id            string
	orderID       string
	productID     string
	nameSnapshot  string
	priceSnapshot int64
	quantity      int
	createdAt     time.Time
	updatedAt     time.Time

	persisted bool
}

// NewLine 创建订单行并复制商品快照
func NewLine(orderID string, product ProductSnapshot, quantity int) (*Line, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order line ID: %w", err)
	}

	now := time.Now().UTC()
	return &Line{
		id:            id.String(),
		orderID:       orderID,
		productID:     product.ProductID,
		nameSnapshot:  truncateRunes(product.Name, maxNameSnapshot),
		priceSnapshot: product.Price,
		quantity:      quantity,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// Increase 在原数量上累加
func (l *Line) Increase(by int) error {
	if err := validateQuantity(by); err != nil {
		return err
	}
	return l.SetQuantity(l.quantity + by)
}

// SetQuantity 直接替换数量
func (l *Line) SetQuantity(quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	l.quantity = quantity
	l.updatedAt = time.Now().UTC()
	return nil
}

// Subtotal 快照价格 × 数量
func (l *Line) Subtotal() int64 {
	return l.priceSnapshot * int64(l.quantity)
}

func (l *Line) ID() string            { return l.id }
func (l *Line) OrderID() string       { return l.orderID }
func (l *Line) ProductID() string     { return l.productID }
func (l *Line) NameSnapshot() string  { return l.nameSnapshot }
func (l *Line) PriceSnapshot() int64  { return l.priceSnapshot }
func (l *Line) Quantity() int         { return l.quantity }
func (l *Line) CreatedAt() time.Time  { return l.createdAt }
func (l *Line) UpdatedAt() time.Time  { return l.updatedAt }

// IsNew 尚未持久化的行，仓储据此决定 INSERT 还是 UPDATE
func (l *Line) IsNew() bool { return !l.persisted }

// MarkPersisted 仓储写入成功后调用
func (l *Line) MarkPersisted() { l.persisted = true }

// LineReconstructionDTO 从持久化层重建订单行
type LineReconstructionDTO struct {
	ID            string
	OrderID       string
	ProductID     string
	NameSnapshot  string
	PriceSnapshot int64
	Quantity      int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RebuildLineFromDTO 重建订单行，不做业务校验
func RebuildLineFromDTO(dto LineReconstructionDTO) *Line {
	return &Line{
		id:            dto.ID,
		orderID:       dto.OrderID,
		productID:     dto.ProductID,
		nameSnapshot:  dto.NameSnapshot,
		priceSnapshot: dto.PriceSnapshot,
		quantity:      dto.Quantity,
		createdAt:     dto.CreatedAt,
		updatedAt:     dto.UpdatedAt,
		persisted:     true,
	}
}

func validateQuantity(quantity int) error {
	if quantity < 1 || quantity > MaxLineQuantity {
		return NewInvalidQuantityError(quantity)
	}
	return nil
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
