package mocks

import (
	"cmp"
	"context"
	"sync"

	"restaurant/domain/booking"
)

// MockBookingRepository 预订仓储的内存实现
type MockBookingRepository struct {
	bookings map[string]*booking.Booking
	mu       sync.RWMutex
}

func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{
		bookings: make(map[string]*booking.Booking),
	}
}

func cloneBooking(b *booking.Booking) *booking.Booking {
	return booking.RebuildFromDTO(booking.ReconstructionDTO{
		ID:             b.ID(),
		UserID:         b.UserID(),
		NumberOfPeople: b.NumberOfPeople(),
		BookedAt:       b.BookedAt(),
		Status:         b.Status(),
		Version:        b.Version(),
		CreatedAt:      b.CreatedAt(),
		UpdatedAt:      b.UpdatedAt(),
	})
}

func (r *MockBookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.bookings[b.ID()]
	if b.IsNew() {
		if exists {
			return booking.NewConcurrentModificationError(b.ID())
		}
	} else {
		if !exists {
			return booking.NewBookingNotFoundError(b.ID())
		}
		if existing.Version() != b.Version() {
			return booking.NewConcurrentModificationError(b.ID())
		}
	}

	b.IncrementVersionForSave()
	r.bookings[b.ID()] = cloneBooking(b)
	return nil
}

func (r *MockBookingRepository) FindByID(ctx context.Context, id string) (*booking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, booking.NewBookingNotFoundError(id)
	}
	return cloneBooking(b), nil
}

func (r *MockBookingRepository) List(ctx context.Context, criteria booking.ListCriteria) ([]*booking.Booking, int64, error) {
	r.mu.RLock()
	var matched []*booking.Booking
	for _, b := range r.bookings {
		if criteria.Filter.Matches(b) {
			matched = append(matched, cloneBooking(b))
		}
	}
	r.mu.RUnlock()

	var compare func(a, b *booking.Booking) int
	switch criteria.SortBy {
	case booking.SortByCreatedAt:
		compare = func(a, b *booking.Booking) int { return a.CreatedAt().Compare(b.CreatedAt()) }
	case booking.SortByStatus:
		compare = func(a, b *booking.Booking) int { return cmp.Compare(a.Status(), b.Status()) }
	case booking.SortByNumberOfPeople:
		compare = func(a, b *booking.Booking) int { return cmp.Compare(a.NumberOfPeople(), b.NumberOfPeople()) }
	default:
		compare = func(a, b *booking.Booking) int { return a.BookedAt().Compare(b.BookedAt()) }
	}

	total := int64(len(matched))
	return sortAndPage(matched, compare, (*booking.Booking).ID, criteria.SortOrder, criteria.Page), total, nil
}

func (r *MockBookingRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return booking.NewBookingNotFoundError(id)
	}
	delete(r.bookings, id)
	return nil
}

var _ booking.Repository = (*MockBookingRepository)(nil)
