package booking

import (
	"time"

	"restaurant/domain/shared"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
)

type BookingCreatedEvent struct {
	shared.BaseEvent
	userID         string
	numberOfPeople int
	bookedAt       time.Time
	status         Status
}

func newBookingCreatedEvent(b *Booking) *BookingCreatedEvent {
	return &BookingCreatedEvent{
		BaseEvent:      shared.NewBaseEvent(EventBookingCreated, b.id),
		userID:         b.userID,
		numberOfPeople: b.numberOfPeople,
		bookedAt:       b.bookedAt,
		status:         b.status,
	}
}

func (e *BookingCreatedEvent) Payload() map[string]any {
	return map[string]any{
		"booking_id":       e.GetAggregateID(),
		"user_id":          e.userID,
		"number_of_people": e.numberOfPeople,
		"booked_at":        e.bookedAt,
		"status":           string(e.status),
	}
}

type BookingStatusChangedEvent struct {
	shared.BaseEvent
	userID string
	from   Status
	to     Status
}

func newBookingStatusChangedEvent(b *Booking, from Status) *BookingStatusChangedEvent {
	return &BookingStatusChangedEvent{
		BaseEvent: shared.NewBaseEvent(EventBookingStatusChanged, b.id),
		userID:    b.userID,
		from:      from,
		to:        b.status,
	}
}

func (e *BookingStatusChangedEvent) Payload() map[string]any {
	return map[string]any{
		"booking_id": e.GetAggregateID(),
		"user_id":    e.userID,
		"from":       string(e.from),
		"to":         string(e.to),
	}
}

var (
	_ shared.PayloadEvent = (*BookingCreatedEvent)(nil)
	_ shared.PayloadEvent = (*BookingStatusChangedEvent)(nil)
)
