package user

import (
	"fmt"
	"time"

	"restaurant/domain/shared"

	"github.com/google/uuid"
)

// PasswordHasher 由基础设施层实现（bcrypt）
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

// User 用户聚合根
// 密码只以哈希形式保存，任何读取模型都不暴露哈希
type User struct {
	id            string
	name          string
	email         Email
	phone         Phone
	passwordHash  string
	imageURL      string
	role          Role
	emailVerified bool
	version       int // 乐观锁版本号
	createdAt     time.Time
	updatedAt     time.Time

	events []shared.DomainEvent
}

// Registration 注册所需字段
type Registration struct {
	Name     string
	Email    string
	Phone    string
	Password string
	ImageURL string
	Role     string
}

// NewUser 校验并创建用户，密码经 hasher 哈希后保存
func NewUser(reg Registration, hasher PasswordHasher) (*User, error) {
	name, err := normalizeName(reg.Name)
	if err != nil {
		return nil, err
	}
	email, err := NewEmail(reg.Email)
	if err != nil {
		return nil, err
	}
	phone, err := NewPhone(reg.Phone)
	if err != nil {
		return nil, err
	}
	role, err := ParseRole(reg.Role)
	if err != nil {
		return nil, err
	}
	if err := ValidatePassword(reg.Password); err != nil {
		return nil, err
	}
	hash, err := hasher.Hash(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	now := time.Now().UTC()
	u := &User{
		id:           id.String(),
		name:         name,
		email:        email,
		phone:        phone,
		passwordHash: hash,
		imageURL:     reg.ImageURL,
		role:         role,
		version:      0,
		createdAt:    now,
		updatedAt:    now,
		events:       make([]shared.DomainEvent, 0),
	}
	u.recordEvent(NewUserRegisteredEvent(u))
	return u, nil
}

// ============================================================================
// 领域行为方法
// ============================================================================

// Patch 部分更新；nil 字段保持不变
type Patch struct {
	Name     *string
	Email    *string
	Phone    *string
	Password *string
	ImageURL *string
	Role     *string
}

// IsEmpty 是否没有任何字段
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil &&
		p.Password == nil && p.ImageURL == nil && p.Role == nil
}

// Apply 先全部校验，再一次性修改；修改邮箱会重置验证状态
func (u *User) Apply(p Patch, hasher PasswordHasher) error {
	next := *u

	if p.Name != nil {
		name, err := normalizeName(*p.Name)
		if err != nil {
			return err
		}
		next.name = name
	}
	if p.Email != nil {
		email, err := NewEmail(*p.Email)
		if err != nil {
			return err
		}
		if email != u.email {
			next.email = email
			next.emailVerified = false
		}
	}
	if p.Phone != nil {
		phone, err := NewPhone(*p.Phone)
		if err != nil {
			return err
		}
		next.phone = phone
	}
	if p.Role != nil {
		role, err := ParseRole(*p.Role)
		if err != nil {
			return err
		}
		next.role = role
	}
	if p.ImageURL != nil {
		next.imageURL = *p.ImageURL
	}
	if p.Password != nil {
		if err := ValidatePassword(*p.Password); err != nil {
			return err
		}
		hash, err := hasher.Hash(*p.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		next.passwordHash = hash
	}

	next.updatedAt = time.Now().UTC()
	*u = next
	return nil
}

// CheckPassword 校验明文密码
func (u *User) CheckPassword(plain string, hasher PasswordHasher) bool {
	return hasher.Compare(u.passwordHash, plain)
}

// ResetPassword 通过重置令牌修改密码
func (u *User) ResetPassword(plain string, hasher PasswordHasher) error {
	return u.Apply(Patch{Password: &plain}, hasher)
}

// VerifyEmail 标记邮箱已验证（幂等）
func (u *User) VerifyEmail() {
	if u.emailVerified {
		return
	}
	u.emailVerified = true
	u.updatedAt = time.Now().UTC()
}

// SetImage 上传头像后更新地址
func (u *User) SetImage(url string) {
	u.imageURL = url
	u.updatedAt = time.Now().UTC()
}

// IncrementVersionForSave 仓储保存成功后调用
func (u *User) IncrementVersionForSave() {
	u.version++
}

func (u *User) IsNew() bool { return u.version == 0 }

// ============================================================================
// Getters - 只读访问器
// ============================================================================

func (u *User) ID() string           { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() Email         { return u.email }
func (u *User) Phone() Phone         { return u.phone }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) ImageURL() string     { return u.imageURL }
func (u *User) Role() Role           { return u.role }
func (u *User) EmailVerified() bool  { return u.emailVerified }
func (u *User) Version() int         { return u.version }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// PullEvents 获取并清空聚合根的事件列表
func (u *User) PullEvents() []shared.DomainEvent {
	events := make([]shared.DomainEvent, len(u.events))
	copy(events, u.events)
	u.events = make([]shared.DomainEvent, 0)
	return events
}

func (u *User) recordEvent(event shared.DomainEvent) {
	u.events = append(u.events, event)
}

// ReconstructionDTO 用户重建数据传输对象
// 仅限于仓储层使用，用于从数据库重建User聚合根
type ReconstructionDTO struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	PasswordHash  string
	ImageURL      string
	Role          string
	EmailVerified bool
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RebuildFromDTO 从DTO重建User聚合根
func RebuildFromDTO(dto ReconstructionDTO) *User {
	return &User{
		id:            dto.ID,
		name:          dto.Name,
		email:         Email{value: dto.Email},
		phone:         Phone{value: dto.Phone},
		passwordHash:  dto.PasswordHash,
		imageURL:      dto.ImageURL,
		role:          Role(dto.Role),
		emailVerified: dto.EmailVerified,
		version:       dto.Version,
		createdAt:     dto.CreatedAt,
		updatedAt:     dto.UpdatedAt,
		events:        []shared.DomainEvent{},
	}
}

// 编译时检查 User 实现了 AggregateRoot 接口
var _ shared.AggregateRoot = (*User)(nil)
