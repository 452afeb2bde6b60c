package user

import (
	"context"

	"restaurant/domain/shared"
)

// SortField 用户列表排序字段
type SortField string

const (
	SortByName      SortField = "name"
	SortByEmail     SortField = "email"
	SortByCreatedAt SortField = "createdAt"
)

func ParseSortField(s string) SortField {
	switch f := SortField(s); f {
	case SortByName, SortByEmail, SortByCreatedAt:
		return f
	default:
		return SortByCreatedAt
	}
}

// ListCriteria 用户列表查询条件
type ListCriteria struct {
	Spec      shared.Specification[*User]
	SortBy    SortField
	SortOrder shared.SortOrder
	Page      shared.Page
}

// Repository User repository interface
type Repository interface {
	// Save 新建或更新（乐观锁）；唯一约束冲突返回 ErrEmailAlreadyExists / ErrPhoneAlreadyExists
	Save(ctx context.Context, user *User) error

	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail 不存在时返回 (nil, nil)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByPhone 不存在时返回 (nil, nil)
	FindByPhone(ctx context.Context, phone string) (*User, error)

	List(ctx context.Context, criteria ListCriteria) ([]*User, int64, error)

	// Remove 软删除
	Remove(ctx context.Context, id string) error
}
