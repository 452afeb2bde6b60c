package user

import (
	"context"
	"strings"

	"restaurant/domain/shared"
)

type ByEmailSpecification struct {
	Email string
}

func (spec ByEmailSpecification) IsSatisfiedBy(_ context.Context, entity *User) bool {
	return entity.Email().Value() == spec.Email
}

type ByRoleSpecification struct {
	Role Role
}

func (spec ByRoleSpecification) IsSatisfiedBy(_ context.Context, entity *User) bool {
	return entity.Role() == spec.Role
}

// SearchSpecification 名称或邮箱包含关键字（不区分大小写）
type SearchSpecification struct {
	Term string
}

func (spec SearchSpecification) IsSatisfiedBy(_ context.Context, entity *User) bool {
	term := strings.ToLower(spec.Term)
	return strings.Contains(strings.ToLower(entity.Name()), term) || strings.Contains(entity.Email().Value(), term)
}

// NewListingSpecification 组合列表过滤条件，空值忽略
func NewListingSpecification(role, email, search string) shared.Specification[*User] {
	var specs []shared.Specification[*User]
	if role != "" {
		specs = append(specs, ByRoleSpecification{Role: Role(strings.ToLower(role))})
	}
	if email != "" {
		specs = append(specs, ByEmailSpecification{Email: strings.ToLower(strings.TrimSpace(email))})
	}
	if search = strings.TrimSpace(search); search != "" {
		specs = append(specs, SearchSpecification{Term: search})
	}
	return shared.And(specs...)
}
