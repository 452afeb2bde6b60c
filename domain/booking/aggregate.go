/*
Package booking 餐桌预订

预订状态同样由显式转换表驱动：
PENDING → CONFIRMED → SEATED → COMPLETED，
PENDING / CONFIRMED 可以被顾客或餐厅取消，或标记为未到店。
*/
package booking

import (
	"fmt"
	"time"

	"restaurant/domain/shared"

	"github.com/google/uuid"
)

const (
	MinPartySize     = 1
	MaxPartySize     = 100
	DefaultPartySize = 1
)

// Booking 预订聚合根
type Booking struct {
	id             string
	userID         string
	numberOfPeople int
	bookedAt       time.Time
	status         Status
	version        int
	createdAt      time.Time
	updatedAt      time.Time

	events []shared.DomainEvent
}

// NewBooking 创建预订；numberOfPeople 为 0 时取默认值，status 为空时为 PENDING
func NewBooking(userID string, numberOfPeople int, bookedAt time.Time, status Status) (*Booking, error) {
	if userID == "" {
		return nil, NewUserRequiredError()
	}
	if numberOfPeople == 0 {
		numberOfPeople = DefaultPartySize
	}
	if err := validatePartySize(numberOfPeople); err != nil {
		return nil, err
	}
	if bookedAt.IsZero() {
		return nil, NewBookedAtRequiredError()
	}
	if status == "" {
		status = StatusPending
	}
	if status != StatusPending && status != StatusConfirmed {
		return nil, NewInvalidStatusError(string(status))
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate booking ID: %w", err)
	}

	now := time.Now().UTC()
	b := &Booking{
		id:             id.String(),
		userID:         userID,
		numberOfPeople: numberOfPeople,
		bookedAt:       bookedAt.UTC(),
		status:         status,
		createdAt:      now,
		updatedAt:      now,
		events:         make([]shared.DomainEvent, 0),
	}
	b.recordEvent(newBookingCreatedEvent(b))
	return b, nil
}

// Patch 部分更新
type Patch struct {
	NumberOfPeople *int
	BookedAt       *time.Time
	Status         *Status
}

func (p Patch) IsEmpty() bool {
	return p.NumberOfPeople == nil && p.BookedAt == nil && p.Status == nil
}

// Apply 应用部分更新，返回状态是否真的进入了 CONFIRMED
func (b *Booking) Apply(p Patch, transitions *shared.TransitionTable[Status]) (confirmed bool, err error) {
	if p.IsEmpty() {
		return false, NewEmptyUpdateError()
	}
	if p.NumberOfPeople != nil {
		if err := validatePartySize(*p.NumberOfPeople); err != nil {
			return false, err
		}
	}
	if p.BookedAt != nil && p.BookedAt.IsZero() {
		return false, NewBookedAtRequiredError()
	}

	from := b.status
	if p.Status != nil {
		to := *p.Status
		if !to.IsValid() {
			return false, NewInvalidStatusError(string(to))
		}
		if !transitions.Allows(from, to) {
			return false, NewInvalidTransitionError(from, to)
		}
		b.status = to
	}
	if p.NumberOfPeople != nil {
		b.numberOfPeople = *p.NumberOfPeople
	}
	if p.BookedAt != nil {
		b.bookedAt = p.BookedAt.UTC()
	}
	b.updatedAt = time.Now().UTC()

	if b.status != from {
		b.recordEvent(newBookingStatusChangedEvent(b, from))
	}
	return b.status == StatusConfirmed && from != StatusConfirmed, nil
}

func (b *Booking) IncrementVersionForSave() { b.version++ }
func (b *Booking) IsNew() bool              { return b.version == 0 }

func (b *Booking) ID() string           { return b.id }
func (b *Booking) UserID() string       { return b.userID }
func (b *Booking) NumberOfPeople() int  { return b.numberOfPeople }
func (b *Booking) BookedAt() time.Time  { return b.bookedAt }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) Version() int         { return b.version }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

func (b *Booking) PullEvents() []shared.DomainEvent {
	events := b.events
	b.events = make([]shared.DomainEvent, 0)
	return events
}

func (b *Booking) recordEvent(event shared.DomainEvent) {
	b.events = append(b.events, event)
}

// ReconstructionDTO 仓储重建用
type ReconstructionDTO struct {
	ID             string
	UserID         string
	NumberOfPeople int
	BookedAt       time.Time
	Status         Status
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func RebuildFromDTO(dto ReconstructionDTO) *Booking {
	return &Booking{
		id:             dto.ID,
		userID:         dto.UserID,
		numberOfPeople: dto.NumberOfPeople,
		bookedAt:       dto.BookedAt,
		status:         dto.Status,
		version:        dto.Version,
		createdAt:      dto.CreatedAt,
		updatedAt:      dto.UpdatedAt,
		events:         make([]shared.DomainEvent, 0),
	}
}

func validatePartySize(n int) error {
	if n < MinPartySize || n > MaxPartySize {
		return NewInvalidPartySizeError(n)
	}
	return nil
}

var _ shared.AggregateRoot = (*Booking)(nil)
