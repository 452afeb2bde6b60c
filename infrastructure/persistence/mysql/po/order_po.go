package po

import (
	"time"

	"restaurant/domain/order"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderPO Order persistence object
// One table stores carts (DRAFT), favourites lists (FAVOURITES) and real orders.
// SingletonKey is "<user_id>:<ROLE>" for the live cart/favourites row and NULL otherwise;
// its unique index backs the atomic get-or-create.
type OrderPO struct {
	ID           string              `gorm:"primaryKey;size:36"`
	UserID       string              `gorm:"size:36;index;not null"` // Only store ID, no association with User
	Status       string              `gorm:"size:20;index;not null"`
	TotalPrice   decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	AcceptedAt   *time.Time
	DeliveredAt  *time.Time
	ReceivedAt   *time.Time
	SingletonKey *string        `gorm:"size:80;uniqueIndex:uk_orders_singleton"`
	Version      int            `gorm:"default:0"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName Specify table name
func (OrderPO) TableName() string {
	return "orders"
}

// OrderLinePO Order line persistence object
// Lines are hard-deleted so (order_id, product_id) can stay unique.
type OrderLinePO struct {
	ID            string    `gorm:"primaryKey;size:36"`
	OrderID       string    `gorm:"size:36;not null;uniqueIndex:uk_order_lines_product,priority:1"` // Only store ID, no GORM association
	ProductID     string    `gorm:"size:36;not null;uniqueIndex:uk_order_lines_product,priority:2"`
	Quantity      int       `gorm:"not null"`
	NameSnapshot  string    `gorm:"type:char(50);not null"`
	PriceSnapshot int64     `gorm:"not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (OrderLinePO) TableName() string {
	return "order_lines"
}

// FromOrderDomain Convert domain model to persistence object
func FromOrderDomain(o *order.Order) *OrderPO {
	var key *string
	if k := o.SingletonKey(); k != "" {
		key = &k
	}
	return &OrderPO{
		ID:           o.ID(),
		UserID:       o.UserID(),
		Status:       string(o.Status()),
		TotalPrice:   o.TotalPrice(),
		AcceptedAt:   o.AcceptedAt(),
		DeliveredAt:  o.DeliveredAt(),
		ReceivedAt:   o.ReceivedAt(),
		SingletonKey: key,
		Version:      o.Version(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
}

// ToDomain Convert persistence object to domain model
func (po *OrderPO) ToDomain() *order.Order {
	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:          po.ID,
		UserID:      po.UserID,
		Status:      order.Status(po.Status),
		TotalPrice:  po.TotalPrice,
		AcceptedAt:  utc(po.AcceptedAt),
		DeliveredAt: utc(po.DeliveredAt),
		ReceivedAt:  utc(po.ReceivedAt),
		Version:     po.Version,
		CreatedAt:   po.CreatedAt.UTC(),
		UpdatedAt:   po.UpdatedAt.UTC(),
	})
}

func FromLineDomain(l *order.Line) *OrderLinePO {
	return &OrderLinePO{
		ID:            l.ID(),
		OrderID:       l.OrderID(),
		ProductID:     l.ProductID(),
		Quantity:      l.Quantity(),
		NameSnapshot:  l.NameSnapshot(),
		PriceSnapshot: l.PriceSnapshot(),
		CreatedAt:     l.CreatedAt(),
		UpdatedAt:     l.UpdatedAt(),
	}
}

func (po *OrderLinePO) ToDomain() *order.Line {
	return order.RebuildLineFromDTO(order.LineReconstructionDTO{
		ID:            po.ID,
		OrderID:       po.OrderID,
		ProductID:     po.ProductID,
		NameSnapshot:  po.NameSnapshot,
		PriceSnapshot: po.PriceSnapshot,
		Quantity:      po.Quantity,
		CreatedAt:     po.CreatedAt.UTC(),
		UpdatedAt:     po.UpdatedAt.UTC(),
	})
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
