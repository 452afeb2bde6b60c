/*
Package notification 站内通知

userID 为空表示广播（所有员工可见），例如新订单、新预订。
订单和预订的生命周期代码通过 Sink 写通知；写入失败只记录日志，
不影响触发它的业务操作。
*/
package notification

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Type 通知类型
type Type string

const (
	TypeReservationConfirmed Type = "RESERVATION_CONFIRMED"
	TypeOrderReady           Type = "ORDER_READY"
	TypeNewReservation       Type = "NEW_RESERVATION"
	TypeNewOrder             Type = "NEW_ORDER"
	TypeOrderAccepted        Type = "ORDER_ACCEPTED"
	TypeOrderOutForDelivery  Type = "ORDER_OUT_FOR_DELIVERY"
	TypeOrderDelivered       Type = "ORDER_DELIVERED"
)

var Types = []Type{
	TypeReservationConfirmed,
	TypeOrderReady,
	TypeNewReservation,
	TypeNewOrder,
	TypeOrderAccepted,
	TypeOrderOutForDelivery,
	TypeOrderDelivered,
}

const MaxMessageLength = 1000

func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Types {
		if t == known {
			return t, nil
		}
	}
	return "", NewInvalidTypeError(s)
}

// Draft 待写入的通知
type Draft struct {
	UserID  *string
	Type    Type
	Message string
}

// Sink 生命周期代码使用的通知出口
type Sink interface {
	Notify(ctx context.Context, draft Draft) error
}

// Notification 通知实体
type Notification struct {
	id        string
	userID    *string
	typ       Type
	message   string
	readAt    *time.Time
	createdAt time.Time
	updatedAt time.Time
}

func New(d Draft) (*Notification, error) {
	typ, err := ParseType(string(d.Type))
	if err != nil {
		return nil, err
	}
	message, err := validateMessage(d.Message)
	if err != nil {
		return nil, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate notification ID: %w", err)
	}

	var userID *string
	if d.UserID != nil && *d.UserID != "" {
		v := *d.UserID
		userID = &v
	}

	now := time.Now().UTC()
	return &Notification{
		id:        id.String(),
		userID:    userID,
		typ:       typ,
		message:   message,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Patch 只允许修改消息与已读时间
type Patch struct {
	Message   *string
	ReadAt    *time.Time
	ClearRead bool
}

func (p Patch) IsEmpty() bool {
	return p.Message == nil && p.ReadAt == nil && !p.ClearRead
}

func (n *Notification) Apply(p Patch) error {
	if p.IsEmpty() {
		return NewEmptyUpdateError()
	}
	if p.Message != nil {
		message, err := validateMessage(*p.Message)
		if err != nil {
			return err
		}
		n.message = message
	}
	switch {
	case p.ClearRead:
		n.readAt = nil
	case p.ReadAt != nil:
		t := p.ReadAt.UTC()
		n.readAt = &t
	}
	n.updatedAt = time.Now().UTC()
	return nil
}

// MarkRead 已读则保持原时间，返回是否发生变化
func (n *Notification) MarkRead(now time.Time) bool {
	if n.readAt != nil {
		return false
	}
	t := now.UTC()
	n.readAt = &t
	n.updatedAt = t
	return true
}

func (n *Notification) IsBroadcast() bool { return n.userID == nil }

func (n *Notification) ID() string           { return n.id }
func (n *Notification) UserID() *string      { return n.userID }
func (n *Notification) Type() Type           { return n.typ }
func (n *Notification) Message() string      { return n.message }
func (n *Notification) ReadAt() *time.Time   { return n.readAt }
func (n *Notification) CreatedAt() time.Time { return n.createdAt }
func (n *Notification) UpdatedAt() time.Time { return n.updatedAt }

// DTO 仓储重建用
type DTO struct {
	ID        string
	UserID    *string
	Type      Type
	Message   string
	ReadAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func Rebuild(dto DTO) *Notification {
	return &Notification{
		id:        dto.ID,
		userID:    dto.UserID,
		typ:       dto.Type,
		message:   dto.Message,
		readAt:    dto.ReadAt,
		createdAt: dto.CreatedAt,
		updatedAt: dto.UpdatedAt,
	}
}

func validateMessage(message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" || utf8.RuneCountInString(message) > MaxMessageLength {
		return "", NewInvalidMessageError()
	}
	return message, nil
}
