package booking

import (
	"errors"
	"fmt"

	"restaurant/domain/shared"
)

var (
	ErrBookingNotFound        = errors.New("booking not found")
	ErrInvalidStatus          = errors.New("invalid booking status")
	ErrInvalidTransition      = errors.New("invalid booking state transition")
	ErrInvalidPartySize       = errors.New("numberOfPeople must be between 1 and 100")
	ErrBookedAtRequired       = errors.New("bookedAt is required")
	ErrUserRequired           = errors.New("booking user is required")
	ErrEmptyUpdate            = errors.New("update must contain at least one field")
	ErrConcurrentModification = errors.New("booking was modified by another transaction, please retry")
)

func NewBookingNotFoundError(id string) error {
	return shared.NewError(ErrBookingNotFound, shared.ErrNotFound, "booking", "", "Booking not found: "+id)
}

func NewInvalidStatusError(status string) error {
	return shared.NewError(ErrInvalidStatus, shared.ErrInvalidInput, "booking", "status",
		fmt.Sprintf("invalid booking status %q", status))
}

func NewInvalidTransitionError(from, to Status) error {
	return shared.NewError(ErrInvalidTransition, shared.ErrInvalidState, "booking", "status",
		fmt.Sprintf("cannot transition booking from %s to %s", from, to))
}

func NewInvalidPartySizeError(n int) error {
	return shared.NewError(ErrInvalidPartySize, shared.ErrInvalidInput, "booking", "numberOfPeople",
		fmt.Sprintf("numberOfPeople must be between %d and %d, got %d", MinPartySize, MaxPartySize, n))
}

func NewBookedAtRequiredError() error {
	return shared.NewError(ErrBookedAtRequired, shared.ErrInvalidInput, "booking", "bookedAt", "bookedAt is required")
}

func NewUserRequiredError() error {
	return shared.NewError(ErrUserRequired, shared.ErrInvalidInput, "booking", "userId", "booking user is required")
}

func NewEmptyUpdateError() error {
	return shared.NewError(ErrEmptyUpdate, shared.ErrInvalidInput, "booking", "", "update must contain at least one field")
}

func NewConcurrentModificationError(id string) error {
	return shared.NewError(ErrConcurrentModification, shared.ErrConflict, "booking", "",
		"booking "+id+" was modified by another transaction, please retry")
}
