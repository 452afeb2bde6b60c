package notification

import (
	"context"
	"time"

	"restaurant/domain/shared"
)

// SortField 通知列表排序字段
type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByReadAt    SortField = "readAt"
	SortByType      SortField = "type"
)

func ParseSortField(s string) SortField {
	switch f := SortField(s); f {
	case SortByCreatedAt, SortByReadAt, SortByType:
		return f
	default:
		return SortByCreatedAt
	}
}

// Filter 列表过滤条件
type Filter struct {
	UserID     string
	Type       Type
	UnreadOnly bool
}

func (f Filter) Matches(n *Notification) bool {
	if f.UserID != "" && (n.UserID() == nil || *n.UserID() != f.UserID) {
		return false
	}
	if f.Type != "" && n.Type() != f.Type {
		return false
	}
	if f.UnreadOnly && n.ReadAt() != nil {
		return false
	}
	return true
}

type ListCriteria struct {
	Filter    Filter
	SortBy    SortField
	SortOrder shared.SortOrder
	Page      shared.Page
}

type Repository interface {
	Save(ctx context.Context, n *Notification) error
	FindByID(ctx context.Context, id string) (*Notification, error)
	List(ctx context.Context, criteria ListCriteria) ([]*Notification, int64, error)
	Remove(ctx context.Context, id string) error

	// MarkAllRead 把用户所有未读通知标记为已读，返回更新条数
	MarkAllRead(ctx context.Context, userID string, now time.Time) (int64, error)
}
