package order

import "strings"

// Status 订单状态；DRAFT 与 FAVOURITES 复用订单表分别表示购物车和收藏夹
type Status string

const (
	StatusDraft      Status = "DRAFT"
	StatusFavourites Status = "FAVOURITES"
	StatusCreated    Status = "CREATED"
	StatusPreparing  Status = "PREPARING"
	StatusReady      Status = "READY"
	StatusDelivering Status = "DELIVERING"
	StatusReceived   Status = "RECEIVED"
	StatusCanceled   Status = "CANCELED"
)

// RealStatuses 真实订单的全部状态，按生命周期顺序排列
var RealStatuses = []Status{
	StatusCreated,
	StatusPreparing,
	StatusReady,
	StatusDelivering,
	StatusReceived,
	StatusCanceled,
}

// ParseStatus 去空格并转大写后解析
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	switch status {
	case StatusDraft, StatusFavourites, StatusCreated, StatusPreparing,
		StatusReady, StatusDelivering, StatusReceived, StatusCanceled:
		return status, nil
	}
	return "", NewInvalidStatusError(s)
}

// IsValid 是否为已知状态
func (s Status) IsValid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// IsTerminal RECEIVED 与 CANCELED 为终态
func (s Status) IsTerminal() bool {
	return s == StatusReceived || s == StatusCanceled
}

// Role 由状态推导出的订单行角色
func (s Status) Role() Role {
	switch s {
	case StatusDraft:
		return RoleCart
	case StatusFavourites:
		return RoleFavourites
	default:
		return RoleOrder
	}
}

// Role 同一张订单表上的三种语义
type Role string

const (
	RoleCart       Role = "CART"
	RoleFavourites Role = "FAVOURITES"
	RoleOrder      Role = "ORDER"
)

// initialStatus 购物车和收藏夹的初始状态
func (r Role) initialStatus() Status {
	switch r {
	case RoleCart:
		return StatusDraft
	case RoleFavourites:
		return StatusFavourites
	default:
		return StatusCreated
	}
}

// IsSingleton 每个用户最多一行的角色
func (r Role) IsSingleton() bool {
	return r == RoleCart || r == RoleFavourites
}

// SingletonKey 唯一索引使用的键：<userID>:<ROLE>
func SingletonKey(userID string, role Role) string {
	return userID + ":" + string(role)
}
