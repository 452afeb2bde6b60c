package user

import "time"

// ListQuery 用户列表查询参数（管理员）
type ListQuery struct {
	Role      string
	Email     string
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// UpdateRequest 部分更新；role 只有管理员可以修改
type UpdateRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=50"`
	Email    *string `json:"email" binding:"omitempty,email,max=50"`
	Phone    *string `json:"phoneNumber" binding:"omitempty,max=50"`
	Password *string `json:"password" binding:"omitempty,min=8,max=30"`
	ImageURL *string `json:"imageUrl" binding:"omitempty,max=255"`
	Role     *string `json:"role" binding:"omitempty,oneof=user admin"`
}

func (r UpdateRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil && r.Phone == nil &&
		r.Password == nil && r.ImageURL == nil && r.Role == nil
}

// Response 用户返回模型，不包含密码哈希
type Response struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phoneNumber"`
	ImageURL      string    `json:"imageUrl"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ============================================================================
// 认证
// ============================================================================

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email,max=50"`
	Phone    string `json:"phoneNumber" binding:"required,max=50"`
	Password string `json:"password" binding:"required,min=8,max=30"`
	ImageURL string `json:"imageUrl" binding:"omitempty,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyEmailRequest struct {
	Code string `json:"code" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8,max=30"`
}

// PrincipalView 登录用户摘要
type PrincipalView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// LineView 登录时附带的购物车/收藏夹行
type LineView struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// SingletonView 购物车或收藏夹
type SingletonView struct {
	ID    string      `json:"id"`
	Items []*LineView `json:"items"`
}

// LoginResponse 购物车/收藏夹准备失败时为 null，不影响登录
type LoginResponse struct {
	AccessToken string         `json:"accessToken"`
	ExpiresAt   time.Time      `json:"expiresAt"`
	User        PrincipalView  `json:"user"`
	Cart        *SingletonView `json:"cart"`
	Favourites  *SingletonView `json:"favourites"`
}
