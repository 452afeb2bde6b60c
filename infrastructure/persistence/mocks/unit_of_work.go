package mocks

import (
	"context"
	"sync"

	"restaurant/domain/shared"
)

// MockUnitOfWork 没有真实事务，fn 失败时已写入内存仓储的数据不会回滚
// 成功提交后把注册聚合的事件写入 outbox
type MockUnitOfWork struct {
	outbox     shared.OutboxRepository
	aggregates []shared.AggregateRoot
}

func NewMockUnitOfWork(outbox shared.OutboxRepository) *MockUnitOfWork {
	return &MockUnitOfWork{
		outbox:     outbox,
		aggregates: make([]shared.AggregateRoot, 0),
	}
}

func (u *MockUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	u.aggregates = make([]shared.AggregateRoot, 0)

	if err := fn(ctx); err != nil {
		return err
	}

	for _, agg := range u.aggregates {
		for _, event := range agg.PullEvents() {
			if err := shared.ValidateEvent(event); err != nil {
				return err
			}
			if u.outbox == nil {
				continue
			}
			if err := u.outbox.SaveEvent(ctx, event); err != nil {
				return err
			}
		}
	}
	return nil
}

func (u *MockUnitOfWork) RegisterNew(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

func (u *MockUnitOfWork) RegisterDirty(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

func (u *MockUnitOfWork) RegisterRemoved(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

// MockUnitOfWorkFactory 每次 New 返回独立的 UoW，共享同一个 outbox
type MockUnitOfWorkFactory struct {
	Outbox *MockOutbox
}

func NewMockUnitOfWorkFactory() *MockUnitOfWorkFactory {
	return &MockUnitOfWorkFactory{Outbox: NewMockOutbox()}
}

func (f *MockUnitOfWorkFactory) New() shared.UnitOfWork {
	return NewMockUnitOfWork(f.Outbox)
}

// MockOutbox 记录已提交的领域事件，便于测试断言
type MockOutbox struct {
	events []shared.DomainEvent
	mu     sync.Mutex
}

func NewMockOutbox() *MockOutbox {
	return &MockOutbox{}
}

func (o *MockOutbox) SaveEvent(ctx context.Context, event shared.DomainEvent) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
	return nil
}

// Events 返回快照
func (o *MockOutbox) Events() []shared.DomainEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]shared.DomainEvent(nil), o.events...)
}

// EventNames 按写入顺序返回事件名
func (o *MockOutbox) EventNames() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	names := make([]string, len(o.events))
	for i, e := range o.events {
		names[i] = e.EventName()
	}
	return names
}

var (
	_ shared.UnitOfWork        = (*MockUnitOfWork)(nil)
	_ shared.UnitOfWorkFactory = (*MockUnitOfWorkFactory)(nil)
	_ shared.OutboxRepository  = (*MockOutbox)(nil)
)
