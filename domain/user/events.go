package user

import "restaurant/domain/shared"

const EventUserRegistered = "user.registered"

// UserRegisteredEvent 用户注册完成
type UserRegisteredEvent struct {
	shared.BaseEvent
	name  string
	email string
	role  Role
}

func NewUserRegisteredEvent(u *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseEvent: shared.NewBaseEvent(EventUserRegistered, u.id),
		name:      u.name,
		email:     u.email.Value(),
		role:      u.role,
	}
}

func (e *UserRegisteredEvent) Payload() map[string]any {
	return map[string]any{
		"user_id": e.GetAggregateID(),
		"name":    e.name,
		"email":   e.email,
		"role":    string(e.role),
	}
}

var _ shared.PayloadEvent = (*UserRegisteredEvent)(nil)
