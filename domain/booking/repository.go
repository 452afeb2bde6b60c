package booking

import (
	"context"

	"restaurant/domain/shared"
)

// SortField 预订列表排序字段
type SortField string

const (
	SortByBookedAt       SortField = "bookedAt"
	SortByCreatedAt      SortField = "createdAt"
	SortByStatus         SortField = "status"
	SortByNumberOfPeople SortField = "numberOfPeople"
)

func ParseSortField(s string) SortField {
	switch f := SortField(s); f {
	case SortByBookedAt, SortByCreatedAt, SortByStatus, SortByNumberOfPeople:
		return f
	default:
		return SortByBookedAt
	}
}

// Filter 列表过滤条件，零值表示不过滤
type Filter struct {
	Status         Status
	UserID         string
	NumberOfPeople int
}

// ListCriteria 列表查询条件
type ListCriteria struct {
	Filter    Filter
	SortBy    SortField
	SortOrder shared.SortOrder
	Page      shared.Page
}

// Matches 内存仓储使用
func (f Filter) Matches(b *Booking) bool {
	if f.Status != "" && b.Status() != f.Status {
		return false
	}
	if f.UserID != "" && b.UserID() != f.UserID {
		return false
	}
	if f.NumberOfPeople != 0 && b.NumberOfPeople() != f.NumberOfPeople {
		return false
	}
	return true
}

type Repository interface {
	Save(ctx context.Context, b *Booking) error
	FindByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, criteria ListCriteria) ([]*Booking, int64, error)
	Remove(ctx context.Context, id string) error
}
