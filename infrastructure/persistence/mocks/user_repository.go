package mocks

import (
	"cmp"
	"context"
	"strings"
	"sync"

	"restaurant/domain/user"
)

type storedUser struct {
	user    *user.User
	deleted bool
}

// MockUserRepository 用户仓储的内存实现
// 软删除的用户仍占用邮箱和手机号，与数据库唯一索引一致
type MockUserRepository struct {
	users map[string]*storedUser
	mu    sync.RWMutex
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*storedUser),
	}
}

func cloneUser(u *user.User) *user.User {
	return user.RebuildFromDTO(user.ReconstructionDTO{
		ID:            u.ID(),
		Name:          u.Name(),
		Email:         u.Email().Value(),
		Phone:         u.Phone().Value(),
		PasswordHash:  u.PasswordHash(),
		ImageURL:      u.ImageURL(),
		Role:          string(u.Role()),
		EmailVerified: u.EmailVerified(),
		Version:       u.Version(),
		CreatedAt:     u.CreatedAt(),
		UpdatedAt:     u.UpdatedAt(),
	})
}

func (r *MockUserRepository) Save(ctx context.Context, u *user.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.users[u.ID()]
	if u.IsNew() {
		if exists {
			return user.NewConcurrentModificationError(u.ID())
		}
	} else {
		if !exists || existing.deleted {
			return user.NewUserNotFoundError(u.ID())
		}
		if existing.user.Version() != u.Version() {
			return user.NewConcurrentModificationError(u.ID())
		}
	}

	for id, s := range r.users {
		if id == u.ID() {
			continue
		}
		if s.user.Email().Value() == u.Email().Value() {
			return user.NewEmailAlreadyExistsError(u.Email().Value())
		}
		if u.Phone().Value() != "" && s.user.Phone().Value() == u.Phone().Value() {
			return user.NewPhoneAlreadyExistsError(u.Phone().Value())
		}
	}

	u.IncrementVersionForSave()
	r.users[u.ID()] = &storedUser{user: cloneUser(u)}
	return nil
}

func (r *MockUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.users[id]
	if !exists || s.deleted {
		return nil, user.NewUserNotFoundError(id)
	}
	return cloneUser(s.user), nil
}

func (r *MockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.findOne(func(u *user.User) bool { return u.Email().Value() == email }), nil
}

func (r *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*user.User, error) {
	if phone == "" {
		return nil, nil
	}
	return r.findOne(func(u *user.User) bool { return u.Phone().Value() == phone }), nil
}

func (r *MockUserRepository) findOne(match func(*user.User) bool) *user.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.users {
		if !s.deleted && match(s.user) {
			return cloneUser(s.user)
		}
	}
	return nil
}

func (r *MockUserRepository) List(ctx context.Context, criteria user.ListCriteria) ([]*user.User, int64, error) {
	r.mu.RLock()
	var matched []*user.User
	for _, s := range r.users {
		if s.deleted {
			continue
		}
		if criteria.Spec != nil && !criteria.Spec.IsSatisfiedBy(ctx, s.user) {
			continue
		}
		matched = append(matched, cloneUser(s.user))
	}
	r.mu.RUnlock()

	var compare func(a, b *user.User) int
	switch criteria.SortBy {
	case user.SortByName:
		compare = func(a, b *user.User) int { return cmp.Compare(a.Name(), b.Name()) }
	case user.SortByEmail:
		compare = func(a, b *user.User) int { return cmp.Compare(a.Email().Value(), b.Email().Value()) }
	default:
		compare = func(a, b *user.User) int { return a.CreatedAt().Compare(b.CreatedAt()) }
	}

	total := int64(len(matched))
	return sortAndPage(matched, compare, (*user.User).ID, criteria.SortOrder, criteria.Page), total, nil
}

func (r *MockUserRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, exists := r.users[id]
	if !exists || s.deleted {
		return user.NewUserNotFoundError(id)
	}
	s.deleted = true
	return nil
}

var _ user.Repository = (*MockUserRepository)(nil)
