/*
Package order 订单子领域

一张订单表承载三种语义，由状态区分角色：
  - DRAFT：用户的购物车（每个用户最多一行，懒创建）
  - FAVOURITES：用户的收藏夹（每个用户最多一行，永不离开该状态）
  - 其余状态：真实订单，按里程碑推进，里程碑时间戳只写一次

角色相关的合法操作在聚合根方法里校验：结算只对购物车合法，
生命周期更新只对真实订单合法。
*/
package order

import (
	"fmt"
	"time"

	"restaurant/domain/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order 订单聚合根
type Order struct {
	id          string
	userID      string
	status      Status
	totalPrice  decimal.NullDecimal
	acceptedAt  *time.Time
	deliveredAt *time.Time
	receivedAt  *time.Time
	version     int // 乐观锁版本号
	createdAt   time.Time
	updatedAt   time.Time

	events []shared.DomainEvent
}

// NewSingleton 创建用户的购物车或收藏夹行（尚未持久化）
func NewSingleton(userID string, role Role) (*Order, error) {
	if !role.IsSingleton() {
		return nil, NewWrongRoleError("lazy creation", role)
	}
	if userID == "" {
		return nil, NewUserRequiredError()
	}
	return newOrder(userID, role.initialStatus())
}

// CreateOptions 管理员直接创建真实订单时的可选字段
type CreateOptions struct {
	Status      Status
	TotalPrice  *decimal.Decimal
	AcceptedAt  *time.Time
	DeliveredAt *time.Time
	ReceivedAt  *time.Time
}

// NewOrder 直接创建真实订单，状态缺省为 CREATED
func NewOrder(userID string, opts CreateOptions) (*Order, error) {
	if userID == "" {
		return nil, NewUserRequiredError()
	}

	status := opts.Status
	if status == "" {
		status = StatusCreated
	}
	if !status.IsValid() || status.Role() != RoleOrder {
		return nil, NewInvalidStatusError(string(status))
	}
	if opts.TotalPrice != nil && !opts.TotalPrice.IsPositive() {
		return nil, NewInvalidTotalPriceError(opts.TotalPrice.String())
	}

	o, err := newOrder(userID, status)
	if err != nil {
		return nil, err
	}
	if opts.TotalPrice != nil {
		o.totalPrice = decimal.NewNullDecimal(opts.TotalPrice.Round(2))
	}
	o.acceptedAt = utcPtr(opts.AcceptedAt)
	o.deliveredAt = utcPtr(opts.DeliveredAt)
	o.receivedAt = utcPtr(opts.ReceivedAt)
	o.backfillMilestones(o.createdAt)

	o.recordEvent(newOrderCreatedEvent(o))
	return o, nil
}

func newOrder(userID string, status Status) (*Order, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order ID: %w", err)
	}

	now := time.Now().UTC()
	return &Order{
		id:        id.String(),
		userID:    userID,
		status:    status,
		version:   0,
		createdAt: now,
		updatedAt: now,
		events:    make([]shared.DomainEvent, 0),
	}, nil
}

// ============================================================================
// 购物车行为
// ============================================================================

// EnsureEditableCart 购物车仍处于 DRAFT 才允许清空
func (o *Order) EnsureEditableCart() error {
	if o.status != StatusDraft {
		return NewCartNotEditableError(o.status)
	}
	return nil
}

// Checkout 结算购物车：total = Σ(价格快照 × 数量)，状态变为 CREATED
// 订单行不迁移，同一行数据成为永久的订单记录
func (o *Order) Checkout(lines []*Line) (decimal.Decimal, error) {
	if o.Role() != RoleCart {
		return decimal.Zero, NewWrongRoleError("checkout", o.Role())
	}
	if len(lines) == 0 {
		return decimal.Zero, NewCartEmptyError()
	}

	var minor int64
	for _, l := range lines {
		if l.OrderID() != o.id {
			return decimal.Zero, fmt.Errorf("line %s does not belong to cart %s", l.ID(), o.id)
		}
		minor += l.Subtotal()
	}

	total := decimal.NewFromInt(minor)
	o.status = StatusCreated
	o.totalPrice = decimal.NewNullDecimal(total)
	o.touch(time.Now().UTC())

	o.recordEvent(newOrderCheckedOutEvent(o, total, len(lines)))
	return total, nil
}

// ============================================================================
// 真实订单生命周期
// ============================================================================

// Apply 对真实订单应用部分更新，返回本次首次到达的里程碑
// 状态变更由转换表裁决；里程碑时间戳只写一次，已有值时忽略新值
func (o *Order) Apply(patch Patch, transitions Transitions, now time.Time) ([]Milestone, error) {
	if o.Role() != RoleOrder {
		return nil, NewWrongRoleError("lifecycle update", o.Role())
	}
	if patch.IsEmpty() {
		return nil, NewEmptyUpdateError()
	}

	statusChanged := false
	if patch.Status != nil && *patch.Status != o.status {
		target := *patch.Status
		if !target.IsValid() || target.Role() != RoleOrder {
			return nil, NewInvalidStatusError(string(target))
		}
		if !transitions.Allows(o.status, target) {
			return nil, NewInvalidTransitionError(o.status, target, transitions.Name())
		}
		statusChanged = true
	}
	if patch.TotalPrice != nil && !patch.TotalPrice.IsPositive() {
		return nil, NewInvalidTotalPriceError(patch.TotalPrice.String())
	}
	if patch.UserID != nil && *patch.UserID == "" {
		return nil, NewUserRequiredError()
	}

	now = now.UTC()
	before := o.snapshot()

	if statusChanged {
		o.status = *patch.Status
	}
	if patch.UserID != nil {
		o.userID = *patch.UserID
	}
	if patch.TotalPrice != nil {
		o.totalPrice = decimal.NewNullDecimal(patch.TotalPrice.Round(2))
	}
	setOnce(&o.acceptedAt, patch.AcceptedAt)
	setOnce(&o.deliveredAt, patch.DeliveredAt)
	setOnce(&o.receivedAt, patch.ReceivedAt)
	if statusChanged {
		o.backfillMilestones(now)
	}

	after := o.snapshot()
	if after == before {
		return nil, nil
	}

	o.touch(now)
	if statusChanged {
		o.recordEvent(newOrderStatusChangedEvent(o, before.status, o.status))
	}
	return DetectMilestones(before, after), nil
}

// backfillMilestones 状态隐含的里程碑时间戳缺失时用当前时间补齐
func (o *Order) backfillMilestones(now time.Time) {
	switch o.status {
	case StatusPreparing:
		setOnce(&o.acceptedAt, &now)
	case StatusReceived:
		setOnce(&o.deliveredAt, &now)
		setOnce(&o.receivedAt, &now)
	}
}

func (o *Order) snapshot() Snapshot {
	return Snapshot{
		status:      o.status,
		userID:      o.userID,
		totalPrice:  o.totalPrice.Decimal.String(),
		hasTotal:    o.totalPrice.Valid,
		acceptedAt:  o.acceptedAt != nil,
		deliveredAt: o.deliveredAt != nil,
		receivedAt:  o.receivedAt != nil,
	}
}

func (o *Order) touch(now time.Time) {
	o.updatedAt = now
}

// IncrementVersionForSave 仓储保存成功后调用
func (o *Order) IncrementVersionForSave() {
	o.version++
}

// IsNew 从未保存过的订单版本号为 0
func (o *Order) IsNew() bool {
	return o.version == 0
}

// ============================================================================
// Getters
// ============================================================================

func (o *Order) ID() string                      { return o.id }
func (o *Order) UserID() string                  { return o.userID }
func (o *Order) Status() Status                  { return o.status }
func (o *Order) Role() Role                      { return o.status.Role() }
func (o *Order) TotalPrice() decimal.NullDecimal { return o.totalPrice }
func (o *Order) AcceptedAt() *time.Time          { return o.acceptedAt }
func (o *Order) DeliveredAt() *time.Time         { return o.deliveredAt }
func (o *Order) ReceivedAt() *time.Time          { return o.receivedAt }
func (o *Order) Version() int                    { return o.version }
func (o *Order) CreatedAt() time.Time            { return o.createdAt }
func (o *Order) UpdatedAt() time.Time            { return o.updatedAt }

// SingletonKey 购物车/收藏夹返回唯一索引键，真实订单返回空串（存为 NULL）
func (o *Order) SingletonKey() string {
	if o.Role().IsSingleton() {
		return SingletonKey(o.userID, o.Role())
	}
	return ""
}

// PullEvents 获取并清空领域事件
func (o *Order) PullEvents() []shared.DomainEvent {
	events := o.events
	o.events = make([]shared.DomainEvent, 0)
	return events
}

func (o *Order) recordEvent(event shared.DomainEvent) {
	o.events = append(o.events, event)
}

// ============================================================================
// 重建
// ============================================================================

// ReconstructionDTO 从持久化层重建订单
type ReconstructionDTO struct {
	ID          string
	UserID      string
	Status      Status
	TotalPrice  decimal.NullDecimal
	AcceptedAt  *time.Time
	DeliveredAt *time.Time
	ReceivedAt  *time.Time
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RebuildFromDTO 重建聚合根，不记录事件
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	return &Order{
		id:          dto.ID,
		userID:      dto.UserID,
		status:      dto.Status,
		totalPrice:  dto.TotalPrice,
		acceptedAt:  dto.AcceptedAt,
		deliveredAt: dto.DeliveredAt,
		receivedAt:  dto.ReceivedAt,
		version:     dto.Version,
		createdAt:   dto.CreatedAt,
		updatedAt:   dto.UpdatedAt,
		events:      make([]shared.DomainEvent, 0),
	}
}

func setOnce(field **time.Time, value *time.Time) {
	if *field != nil || value == nil {
		return
	}
	*field = utcPtr(value)
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

var _ shared.AggregateRoot = (*Order)(nil)
