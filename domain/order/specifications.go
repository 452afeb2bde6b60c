package order

import (
	"context"

	"restaurant/domain/shared"
)

// ByUserIDSpec 按所属用户过滤
type ByUserIDSpec struct {
	UserID string
}

func ByUserID(userID string) ByUserIDSpec {
	return ByUserIDSpec{UserID: userID}
}

func (s ByUserIDSpec) IsSatisfiedBy(_ context.Context, o *Order) bool {
	return o.UserID() == s.UserID
}

// ByStatusSpec 按状态过滤
type ByStatusSpec struct {
	Status Status
}

func ByStatus(status Status) ByStatusSpec {
	return ByStatusSpec{Status: status}
}

func (s ByStatusSpec) IsSatisfiedBy(_ context.Context, o *Order) bool {
	return o.Status() == s.Status
}

// RealOrdersSpec 排除购物车和收藏夹行
type RealOrdersSpec struct{}

func RealOrders() RealOrdersSpec {
	return RealOrdersSpec{}
}

func (RealOrdersSpec) IsSatisfiedBy(_ context.Context, o *Order) bool {
	return o.Role() == RoleOrder
}

// ListingSpec 组合订单列表的过滤条件：始终只包含真实订单
func ListingSpec(status *Status, userID *string) shared.Specification[*Order] {
	specs := []shared.Specification[*Order]{RealOrders()}
	if status != nil {
		specs = append(specs, ByStatus(*status))
	}
	if userID != nil {
		specs = append(specs, ByUserID(*userID))
	}
	return shared.And(specs...)
}
