package notification

import (
	"errors"
	"fmt"

	"restaurant/domain/shared"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidType          = errors.New("invalid notification type")
	ErrInvalidMessage       = errors.New("invalid notification message")
	ErrEmptyUpdate          = errors.New("update must contain at least one field")
)

func NewNotificationNotFoundError(id string) error {
	return shared.NewError(ErrNotificationNotFound, shared.ErrNotFound, "notification", "", "Notification not found: "+id)
}

func NewInvalidTypeError(t string) error {
	return shared.NewError(ErrInvalidType, shared.ErrInvalidInput, "notification", "type",
		fmt.Sprintf("invalid notification type %q", t))
}

func NewInvalidMessageError() error {
	return shared.NewError(ErrInvalidMessage, shared.ErrInvalidInput, "notification", "message",
		fmt.Sprintf("message must be 1..%d characters", MaxMessageLength))
}

func NewEmptyUpdateError() error {
	return shared.NewError(ErrEmptyUpdate, shared.ErrInvalidInput, "notification", "", "update must contain at least one field")
}
