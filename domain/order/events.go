package order

import (
	"restaurant/domain/shared"

	"github.com/shopspring/decimal"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderCheckedOut    = "order.checked_out"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderCreatedEvent 管理员直接创建真实订单
type OrderCreatedEvent struct {
	shared.BaseEvent
	userID     string
	status     Status
	totalPrice decimal.NullDecimal
}

func newOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseEvent:  shared.NewBaseEvent(EventOrderCreated, o.id),
		userID:     o.userID,
		status:     o.status,
		totalPrice: o.totalPrice,
	}
}

func (e *OrderCreatedEvent) UserID() string { return e.userID }

func (e *OrderCreatedEvent) Payload() map[string]any {
	payload := map[string]any{
		"order_id": e.GetAggregateID(),
		"user_id":  e.userID,
		"status":   string(e.status),
	}
	if e.totalPrice.Valid {
		payload["total_price"] = e.totalPrice.Decimal.StringFixed(2)
	}
	return payload
}

// OrderCheckedOutEvent 购物车结算为真实订单
type OrderCheckedOutEvent struct {
	shared.BaseEvent
	userID    string
	total     decimal.Decimal
	lineCount int
}

func newOrderCheckedOutEvent(o *Order, total decimal.Decimal, lineCount int) *OrderCheckedOutEvent {
	return &OrderCheckedOutEvent{
		BaseEvent: shared.NewBaseEvent(EventOrderCheckedOut, o.id),
		userID:    o.userID,
		total:     total,
		lineCount: lineCount,
	}
}

func (e *OrderCheckedOutEvent) UserID() string { return e.userID }

func (e *OrderCheckedOutEvent) Payload() map[string]any {
	return map[string]any{
		"order_id":   e.GetAggregateID(),
		"user_id":    e.userID,
		"total":      e.total.StringFixed(2),
		"line_count": e.lineCount,
	}
}

// OrderStatusChangedEvent 真实订单状态变化
type OrderStatusChangedEvent struct {
	shared.BaseEvent
	userID string
	from   Status
	to     Status
}

func newOrderStatusChangedEvent(o *Order, from, to Status) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseEvent: shared.NewBaseEvent(EventOrderStatusChanged, o.id),
		userID:    o.userID,
		from:      from,
		to:        to,
	}
}

func (e *OrderStatusChangedEvent) From() Status { return e.from }
func (e *OrderStatusChangedEvent) To() Status   { return e.to }

func (e *OrderStatusChangedEvent) Payload() map[string]any {
	return map[string]any{
		"order_id": e.GetAggregateID(),
		"user_id":  e.userID,
		"from":     string(e.from),
		"to":       string(e.to),
	}
}

var (
	_ shared.PayloadEvent = (*OrderCreatedEvent)(nil)
	_ shared.PayloadEvent = (*OrderCheckedOutEvent)(nil)
	_ shared.PayloadEvent = (*OrderStatusChangedEvent)(nil)
)
