package shared

import (
	"fmt"
	"time"
)

// DomainEvent 领域事件
type DomainEvent interface {
	EventName() string
	OccurredOn() time.Time
	GetAggregateID() string
}

// PayloadEvent 可以提供业务载荷的事件，outbox 会把载荷序列化进 payload 列
type PayloadEvent interface {
	DomainEvent
	Payload() map[string]any
}

// BaseEvent 供各子领域事件嵌入，提供公共字段
type BaseEvent struct {
	name        string
	aggregateID string
	occurredOn  time.Time
}

// NewBaseEvent 创建事件公共部分，发生时间取 UTC
func NewBaseEvent(name, aggregateID string) BaseEvent {
	return BaseEvent{
		name:        name,
		aggregateID: aggregateID,
		occurredOn:  time.Now().UTC(),
	}
}

func (e BaseEvent) EventName() string { return e.name }
func (e BaseEvent) OccurredOn() time.Time { return e.occurredOn }
func (e BaseEvent) GetAggregateID() string { return e.aggregateID }

func ValidateEvent(event DomainEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}

	if event.EventName() == "" {
		return fmt.Errorf("event name cannot be empty")
	}

	if event.GetAggregateID() == "" {
		return fmt.Errorf("aggregate ID cannot be empty")
	}

	if event.OccurredOn().IsZero() {
		return fmt.Errorf("occurred on time cannot be zero")
	}

	return nil
}
