/*
Domain Service

Domain services handle business logic that doesn't fit well in single entities.
Core principle: Domain service only reads, does not write
*/
package user

import (
	"context"
)

// DomainService User domain service - handles user-related business logic
type DomainService struct {
	userRepository Repository
}

// NewDomainService Create user domain service
func NewDomainService(userRepo Repository) *DomainService {
	return &DomainService{
		userRepository: userRepo,
	}
}

// EnsureUnique 邮箱和电话在用户之间唯一；excludeID 为正在更新的用户本身
// 数据库唯一索引是最终保证，这里提前给出可读的冲突信息
func (s *DomainService) EnsureUnique(ctx context.Context, email, phone, excludeID string) error {
	if email != "" {
		existing, err := s.userRepository.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID() != excludeID {
			return NewEmailAlreadyExistsError(email)
		}
	}
	if phone != "" {
		existing, err := s.userRepository.FindByPhone(ctx, phone)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID() != excludeID {
			return NewPhoneAlreadyExistsError(phone)
		}
	}
	return nil
}
