package mocks

import (
	"cmp"
	"context"
	"sync"
	"time"

	"restaurant/domain/notification"
)

// MockNotificationRepository 通知仓储的内存实现
type MockNotificationRepository struct {
	items map[string]*notification.Notification
	mu    sync.RWMutex
}

func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{
		items: make(map[string]*notification.Notification),
	}
}

func cloneNotification(n *notification.Notification) *notification.Notification {
	return notification.Rebuild(notification.DTO{
		ID:        n.ID(),
		UserID:    n.UserID(),
		Type:      n.Type(),
		Message:   n.Message(),
		ReadAt:    n.ReadAt(),
		CreatedAt: n.CreatedAt(),
		UpdatedAt: n.UpdatedAt(),
	})
}

func (r *MockNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[n.ID()] = cloneNotification(n)
	return nil
}

func (r *MockNotificationRepository) FindByID(ctx context.Context, id string) (*notification.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.items[id]
	if !ok {
		return nil, notification.NewNotificationNotFoundError(id)
	}
	return cloneNotification(n), nil
}

func (r *MockNotificationRepository) List(ctx context.Context, criteria notification.ListCriteria) ([]*notification.Notification, int64, error) {
	r.mu.RLock()
	var matched []*notification.Notification
	for _, n := range r.items {
		if criteria.Filter.Matches(n) {
			matched = append(matched, cloneNotification(n))
		}
	}
	r.mu.RUnlock()

	var compare func(a, b *notification.Notification) int
	switch criteria.SortBy {
	case notification.SortByReadAt:
		compare = func(a, b *notification.Notification) int { return compareTimePtr(a.ReadAt(), b.ReadAt()) }
	case notification.SortByType:
		compare = func(a, b *notification.Notification) int { return cmp.Compare(a.Type(), b.Type()) }
	default:
		compare = func(a, b *notification.Notification) int { return a.CreatedAt().Compare(b.CreatedAt()) }
	}

	total := int64(len(matched))
	return sortAndPage(matched, compare, (*notification.Notification).ID, criteria.SortOrder, criteria.Page), total, nil
}

func (r *MockNotificationRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return notification.NewNotificationNotFoundError(id)
	}
	delete(r.items, id)
	return nil
}

// MarkAllRead 只处理定向给该用户的通知，广播通知不受影响
func (r *MockNotificationRepository) MarkAllRead(ctx context.Context, userID string, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, item := range r.items {
		if item.UserID() == nil || *item.UserID() != userID {
			continue
		}
		updated := cloneNotification(item)
		if updated.MarkRead(now) {
			r.items[id] = updated
			n++
		}
	}
	return n, nil
}

var _ notification.Repository = (*MockNotificationRepository)(nil)
