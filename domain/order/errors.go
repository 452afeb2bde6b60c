/*
Package order - 订单领域错误定义

哨兵错误用于 errors.Is() 精确判断；构造函数额外把错误链接到
shared 的错误种类（NotFound、InvalidInput、Conflict、InvalidState），
并在创建时捕获堆栈，堆栈从调用构造函数的位置开始。
*/
package order

import (
	"errors"
	"fmt"

	"restaurant/domain/shared"
)

var (
	// ErrOrderNotFound 订单未找到（购物车、收藏夹行对订单资源也不可见）
	ErrOrderNotFound = errors.New("order not found")

	// ErrLineNotFound 订单行不存在或不属于当前购物车/收藏夹
	ErrLineNotFound = errors.New("order line not found")

	// ErrCartEmpty 空购物车不能结算
	ErrCartEmpty = errors.New("cart empty")

	// ErrCartNotEditable 购物车已结算，不再是 DRAFT
	ErrCartNotEditable = errors.New("cart is no longer editable")

	// ErrWrongRole 操作与订单行的角色不符（例如对真实订单执行结算）
	ErrWrongRole = errors.New("operation not allowed for this order role")

	// ErrInvalidQuantity 数量必须是 1..MaxLineQuantity 的整数
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")

	// ErrInvalidTotalPrice 总价必须为正数
	ErrInvalidTotalPrice = errors.New("total price must be positive")

	// ErrInvalidStatus 未知状态或角色不允许的状态
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrInvalidOrderStateTransition 转换表拒绝的状态转换
	ErrInvalidOrderStateTransition = errors.New("invalid order state transition")

	// ErrEmptyUpdate 部分更新至少需要一个字段
	ErrEmptyUpdate = errors.New("update must contain at least one field")

	// ErrUserRequired 订单必须有所属用户
	ErrUserRequired = errors.New("order user is required")

	// ErrConcurrentModification 乐观锁冲突
	ErrConcurrentModification = errors.New("order was modified by another transaction, please retry")

	// ErrDuplicateLine 同一商品在一个订单里只能出现一次
	ErrDuplicateLine = errors.New("product already present in order")
)

// NewOrderNotFoundError 创建订单未找到错误（带堆栈）
func NewOrderNotFoundError(orderID string) error {
	return shared.NewError(ErrOrderNotFound, shared.ErrNotFound, "order", "", "Order not found: "+orderID)
}

// NewLineNotFoundError 创建订单行未找到错误
func NewLineNotFoundError(entity, lineID string) error {
	return shared.NewError(ErrLineNotFound, shared.ErrNotFound, entity, "", entity+" not found: "+lineID)
}

// NewCartEmptyError 创建空购物车错误
func NewCartEmptyError() error {
	return shared.NewError(ErrCartEmpty, shared.ErrInvalidInput, "cart", "items", "Cart empty")
}

// NewCartNotEditableError 创建购物车不可编辑错误
func NewCartNotEditableError(status Status) error {
	return shared.NewError(ErrCartNotEditable, shared.ErrConflict, "cart", "status",
		fmt.Sprintf("Cart is no longer editable (status %s)", status))
}

// NewWrongRoleError 创建角色不符错误
func NewWrongRoleError(operation string, role Role) error {
	return shared.NewError(ErrWrongRole, shared.ErrConflict, "order", "status",
		fmt.Sprintf("%s is not allowed on a %s", operation, role))
}

// NewInvalidQuantityError 创建数量非法错误
func NewInvalidQuantityError(quantity int) error {
	return shared.NewError(ErrInvalidQuantity, shared.ErrInvalidInput, "order line", "quantity",
		fmt.Sprintf("quantity must be an integer between 1 and %d, got %d", MaxLineQuantity, quantity))
}

// NewInvalidTotalPriceError 创建总价非法错误
func NewInvalidTotalPriceError(value string) error {
	return shared.NewError(ErrInvalidTotalPrice, shared.ErrInvalidInput, "order", "totalPrice",
		"total price must be positive, got "+value)
}

// NewInvalidStatusError 创建状态非法错误
func NewInvalidStatusError(status string) error {
	return shared.NewError(ErrInvalidStatus, shared.ErrInvalidInput, "order", "status",
		fmt.Sprintf("invalid order status %q", status))
}

// NewInvalidTransitionError 创建状态转换被拒绝错误
func NewInvalidTransitionError(from, to Status, policy string) error {
	return shared.NewError(ErrInvalidOrderStateTransition, shared.ErrInvalidState, "order", "status",
		fmt.Sprintf("cannot transition order from %s to %s (%s policy)", from, to, policy))
}

// NewEmptyUpdateError 创建空更新错误
func NewEmptyUpdateError() error {
	return shared.NewError(ErrEmptyUpdate, shared.ErrInvalidInput, "order", "", "update must contain at least one field")
}

// NewUserRequiredError 创建缺少用户错误
func NewUserRequiredError() error {
	return shared.NewError(ErrUserRequired, shared.ErrInvalidInput, "order", "userId", "order user is required")
}

// NewConcurrentModificationError 创建并发修改错误
func NewConcurrentModificationError(orderID string) error {
	return shared.NewError(ErrConcurrentModification, shared.ErrConflict, "order", "",
		"order "+orderID+" was modified by another transaction, please retry")
}

// NewDuplicateLineError 创建重复订单行错误
func NewDuplicateLineError(orderID, productID string) error {
	return shared.NewError(ErrDuplicateLine, shared.ErrConflict, "order line", "productId",
		fmt.Sprintf("product %s already present in order %s", productID, orderID))
}
