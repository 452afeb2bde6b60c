package booking

import (
	"strings"

	"restaurant/domain/shared"
)

// Status 预订状态
type Status string

const (
	StatusPending               Status = "PENDING"
	StatusConfirmed             Status = "CONFIRMED"
	StatusCancelledByCustomer   Status = "CANCELLED_BY_CUSTOMER"
	StatusCancelledByRestaurant Status = "CANCELLED_BY_RESTAURANT"
	StatusNoShow                Status = "NO_SHOW"
	StatusSeated                Status = "SEATED"
	StatusCompleted             Status = "COMPLETED"
)

// Statuses 全部预订状态
var Statuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusCancelledByCustomer,
	StatusCancelledByRestaurant,
	StatusNoShow,
	StatusSeated,
	StatusCompleted,
}

func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Statuses {
		if status == known {
			return status, nil
		}
	}
	return "", NewInvalidStatusError(s)
}

func (s Status) IsValid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCancelledByCustomer, StatusCancelledByRestaurant, StatusNoShow, StatusCompleted:
		return true
	}
	return false
}

// Transitions 预订状态转换表
func Transitions() *shared.TransitionTable[Status] {
	cancelled := []Status{StatusCancelledByCustomer, StatusCancelledByRestaurant, StatusNoShow}
	return shared.NewTransitionTable[Status]("booking").
		Allow(StatusPending, append([]Status{StatusConfirmed}, cancelled...)...).
		Allow(StatusConfirmed, append([]Status{StatusSeated}, cancelled...)...).
		Allow(StatusSeated, StatusCompleted)
}
