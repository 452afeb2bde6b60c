package po

import (
	"time"

	"restaurant/domain/user"

	"gorm.io/gorm"
)

// UserPO 用户持久化对象；password_hash 只在仓储与领域之间流转，不出现在任何响应里
type UserPO struct {
	ID            string         `gorm:"primaryKey;size:36"`
	Name          string         `gorm:"size:50;not null"`
	Email         string         `gorm:"size:50;uniqueIndex;not null"`
	Phone         string         `gorm:"size:50;uniqueIndex;not null"`
	PasswordHash  string         `gorm:"size:100;not null"`
	ImageURL      string         `gorm:"size:255"`
	Role          string         `gorm:"size:10;not null;default:user"`
	EmailVerified bool           `gorm:"not null;default:false"`
	Version       int            `gorm:"default:0"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (UserPO) TableName() string {
	return "users"
}

func FromUserDomain(u *user.User) *UserPO {
	return &UserPO{
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
	}
}

func (po *UserPO) ToDomain() *user.User {
	return user.RebuildFromDTO(user.ReconstructionDTO{
		ID:            po.ID,
		Name:          po.Name,
		Email:         po.Email,
		Phone:         po.Phone,
		PasswordHash:  po.PasswordHash,
		ImageURL:      po.ImageURL,
		Role:          po.Role,
		EmailVerified: po.EmailVerified,
		Version:       po.Version,
		CreatedAt:     po.CreatedAt.UTC(),
		UpdatedAt:     po.UpdatedAt.UTC(),
	})
}
