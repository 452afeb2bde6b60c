package mysql

import (
	"context"
	"errors"
	"fmt"

	"restaurant/domain/shared"
	"restaurant/infrastructure/persistence"
	"restaurant/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

var (
	// ErrOutboxEventClaimed 事件已被其他 worker 领取或状态已变化
	ErrOutboxEventClaimed = errors.New("outbox event already claimed")
	// ErrOutboxEventNotFound 事件不存在
	ErrOutboxEventNotFound = errors.New("outbox event not found")
)

// OutboxRepository 订单、预订等聚合事件的 outbox 表
//
// SaveEvent 在 UoW 事务内与业务写入一起提交；其余方法供 cmd/worker 领取和回写状态。
// ForEventTypes 可把 worker 限定在部分事件类型上，例如只转发 order.*。
type OutboxRepository struct {
	db         *gorm.DB
	eventTypes []string
}

func NewOutboxRepository(db *gorm.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

// ForEventTypes 返回只领取指定事件类型的副本；不传参数表示全部
func (r *OutboxRepository) ForEventTypes(types ...string) *OutboxRepository {
	scoped := &OutboxRepository{db: r.db}
	for _, t := range types {
		if t != "" {
			scoped.eventTypes = append(scoped.eventTypes, t)
		}
	}
	return scoped
}

func (r *OutboxRepository) conn(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// SaveEvent 单条 INSERT；在 UoW 内调用时复用其事务
func (r *OutboxRepository) SaveEvent(ctx context.Context, event shared.DomainEvent) error {
	if err := shared.ValidateEvent(event); err != nil {
		return fmt.Errorf("invalid domain event: %w", err)
	}

	row, err := po.FromDomainEvent(event)
	if err != nil {
		return fmt.Errorf("failed to convert %s event: %w", event.EventName(), err)
	}
	if err := r.conn(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to save %s event to outbox: %w", event.EventName(), err)
	}
	return nil
}

func (r *OutboxRepository) pending(limit int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("status = ?", string(po.EventStatusPending))
		if len(r.eventTypes) > 0 {
			db = db.Where("event_type IN ?", r.eventTypes)
		}
		return db.Order("created_at ASC, id ASC").Limit(limit)
	}
}

// GetPendingEvents 按写入顺序返回待发布事件
func (r *OutboxRepository) GetPendingEvents(ctx context.Context, limit int) ([]*po.OutboxEventPO, error) {
	var events []*po.OutboxEventPO
	if err := r.conn(ctx).Scopes(r.pending(limit)).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to get pending events: %w", err)
	}
	return events, nil
}

func (r *OutboxRepository) transition(db *gorm.DB, eventID string, from, to po.EventStatus) *gorm.DB {
	return db.Model(&po.OutboxEventPO{}).
		Where("id = ? AND status = ?", eventID, string(from)).
		Updates(map[string]any{
			"status":     string(to),
			"updated_at": gorm.Expr("NOW()"),
		})
}

// MarkEventProcessing 条件更新 PENDING → PROCESSING，同一事件只会被一个 worker 领取
func (r *OutboxRepository) MarkEventProcessing(ctx context.Context, eventID string) error {
	result := r.transition(r.conn(ctx), eventID, po.EventStatusPending, po.EventStatusProcessing)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrOutboxEventClaimed, eventID)
	}
	return nil
}

func (r *OutboxRepository) MarkEventPublished(ctx context.Context, eventID string) error {
	result := r.transition(r.conn(ctx), eventID, po.EventStatusProcessing, po.EventStatusPublished)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrOutboxEventNotFound, eventID)
	}
	return nil
}

// failed 一条 UPDATE 完成计数和状态判断；status 先于 retry_count 赋值，读到的是旧计数
func (r *OutboxRepository) failed(db *gorm.DB, eventID string, maxRetries int) *gorm.DB {
	return db.Exec(
		"UPDATE outbox_events SET status = CASE WHEN retry_count + 1 >= ? THEN ? ELSE ? END, "+
			"retry_count = retry_count + 1, updated_at = NOW() WHERE id = ?",
		maxRetries, string(po.EventStatusFailed), string(po.EventStatusPending), eventID,
	)
}

// MarkEventFailed 重试次数加一；达到 maxRetries 后置为 FAILED，否则回到 PENDING 等待下一轮
func (r *OutboxRepository) MarkEventFailed(ctx context.Context, eventID string, maxRetries int) error {
	result := r.failed(r.conn(ctx), eventID, maxRetries)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrOutboxEventNotFound, eventID)
	}
	return nil
}

var (
	_ shared.OutboxRepository = (*OutboxRepository)(nil)
	_ OutboxStore             = (*OutboxRepository)(nil)
)
