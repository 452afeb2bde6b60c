/*
Package order 订单应用层：购物车、收藏夹、订单管理

三个服务共用一张订单表，角色由状态区分：
  - CartService：用户唯一的 DRAFT 行，懒创建；结算后变为真实订单
  - FavouritesService：用户唯一的 FAVOURITES 行，懒创建，数量固定为 1
  - ApplicationService：真实订单的管理员操作与生命周期通知

懒创建走仓储的原子 get-or-create，并发首次访问只会产生一行。
写操作在 UoW 内执行，聚合事件随事务写入 outbox；
通知在事务提交之后尽力写入，失败不影响已提交的订单变更。
*/
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	notificationapp "restaurant/application/notification"
	"restaurant/domain/catalog"
	"restaurant/domain/notification"
	"restaurant/domain/order"
	"restaurant/domain/shared"
	"restaurant/domain/user"
)

// Dependencies 订单相关服务共用的依赖
type Dependencies struct {
	Orders     order.Repository
	Lines      order.LineRepository
	Users      user.Repository
	Products   catalog.ProductRepository
	Categories catalog.CategoryRepository
	UnitOfWork shared.UnitOfWorkFactory
	Sink       notification.Sink
}

func (d Dependencies) views() productViews {
	return productViews{products: d.Products, categories: d.Categories}
}

// singleton 获取或懒创建用户的购物车/收藏夹行，用户必须存在
func (d Dependencies) singleton(ctx context.Context, userID string, role order.Role) (*order.Order, error) {
	if _, err := d.Users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	candidate, err := order.NewSingleton(userID, role)
	if err != nil {
		return nil, err
	}
	return d.Orders.GetOrCreateSingleton(ctx, candidate)
}

// liveLine 在用户当前的购物车/收藏夹行里查找订单行，不属于它的行视为不存在
func (d Dependencies) liveLine(ctx context.Context, userID string, role order.Role, lineID string) (*order.Line, error) {
	o, err := d.Orders.FindSingleton(ctx, userID, role)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return nil, order.NewLineNotFoundError(lineEntity(role), lineID)
		}
		return nil, err
	}
	line, err := d.Lines.FindInOrder(ctx, o.ID(), lineID)
	if err != nil {
		if errors.Is(err, order.ErrLineNotFound) {
			return nil, order.NewLineNotFoundError(lineEntity(role), lineID)
		}
		return nil, err
	}
	return line, nil
}

func lineEntity(role order.Role) string {
	if role == order.RoleFavourites {
		return "favourite"
	}
	return "cart item"
}

// ApplicationService 真实订单的管理员操作
type ApplicationService struct {
	deps        Dependencies
	transitions order.Transitions
	now         func() time.Time
}

// NewApplicationService transitions 为 nil 时使用严格转换表
func NewApplicationService(deps Dependencies, transitions order.Transitions) *ApplicationService {
	if transitions == nil {
		transitions = order.StrictTransitions()
	}
	return &ApplicationService{
		deps:        deps,
		transitions: transitions,
		now:         time.Now,
	}
}

// List 分页列出真实订单，购物车和收藏夹行永不出现
func (s *ApplicationService) List(ctx context.Context, q ListQuery) ([]*Response, int64, shared.Page, error) {
	page := shared.NewPage(q.Page, q.Limit)

	var status *order.Status
	if q.Status != "" {
		st, err := order.ParseStatus(q.Status)
		if err != nil {
			return nil, 0, page, err
		}
		status = &st
	}
	var userID *string
	if q.UserID != "" {
		userID = &q.UserID
	}

	orders, total, err := s.deps.Orders.List(ctx, order.ListCriteria{
		Spec:      order.ListingSpec(status, userID),
		SortBy:    order.ParseSortField(q.SortBy),
		SortOrder: shared.ParseSortOrder(q.SortOrder, shared.SortAsc),
		Page:      page,
	})
	if err != nil {
		return nil, 0, page, err
	}

	responses := make([]*Response, len(orders))
	ids := make([]string, len(orders))
	for i, o := range orders {
		responses[i] = toResponse(o)
		ids[i] = o.ID()
	}

	if q.IncludeOrderDetails && len(ids) > 0 {
		lines, err := s.deps.Lines.FindByOrderIDs(ctx, ids)
		if err != nil {
			return nil, 0, page, err
		}
		for _, resp := range responses {
			resp.OrderDetails = toLineResponses(lines[resp.ID])
		}
	}
	return responses, total, page, nil
}

// Get 购物车和收藏夹行对订单资源不可见
func (s *ApplicationService) Get(ctx context.Context, id string, includeLines bool) (*Response, error) {
	o, err := s.findRealOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toResponse(o)
	if includeLines {
		lines, err := s.deps.Lines.FindByOrderID(ctx, id)
		if err != nil {
			return nil, err
		}
		resp.OrderDetails = toLineResponses(lines)
	}
	return resp, nil
}

func (s *ApplicationService) findRealOrder(ctx context.Context, id string) (*order.Order, error) {
	o, err := s.deps.Orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Role() != order.RoleOrder {
		return nil, order.NewOrderNotFoundError(id)
	}
	return o, nil
}

// Create 管理员直接创建真实订单，提交后广播 NEW_ORDER
func (s *ApplicationService) Create(ctx context.Context, req CreateRequest) (*Response, error) {
	var status order.Status
	if req.Status != "" {
		st, err := order.ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}

	var o *order.Order
	uow := s.deps.UnitOfWork.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		if _, err := s.deps.Users.FindByID(ctx, req.UserID); err != nil {
			return err
		}

		var err error
		o, err = order.NewOrder(req.UserID, order.CreateOptions{
			Status:      status,
			TotalPrice:  req.TotalPrice,
			AcceptedAt:  req.AcceptedAt,
			DeliveredAt: req.DeliveredAt,
			ReceivedAt:  req.ReceivedAt,
		})
		if err != nil {
			return err
		}
		if err := s.deps.Orders.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterNew(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	notificationapp.Notify(ctx, s.deps.Sink, newOrderDraft(o.ID()))
	return toResponse(o), nil
}

// Update 部分更新；状态变更经过转换表，提交后为每个新到达的里程碑写一条通知
func (s *ApplicationService) Update(ctx context.Context, id string, req UpdateRequest) (*Response, error) {
	patch, err := toPatch(req)
	if err != nil {
		return nil, err
	}

	var (
		o          *order.Order
		milestones []order.Milestone
	)
	uow := s.deps.UnitOfWork.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		if o, err = s.findRealOrder(ctx, id); err != nil {
			return err
		}
		if patch.UserID != nil {
			if _, err := s.deps.Users.FindByID(ctx, *patch.UserID); err != nil {
				return err
			}
		}

		if milestones, err = o.Apply(patch, s.transitions, s.now()); err != nil {
			return err
		}
		if err := s.deps.Orders.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterDirty(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, m := range milestones {
		notificationapp.Notify(ctx, s.deps.Sink, milestoneDraft(o.UserID(), o.ID(), m))
	}
	return toResponse(o), nil
}

func toPatch(req UpdateRequest) (order.Patch, error) {
	patch := order.Patch{
		UserID:      req.UserID,
		TotalPrice:  req.TotalPrice,
		AcceptedAt:  req.AcceptedAt,
		DeliveredAt: req.DeliveredAt,
		ReceivedAt:  req.ReceivedAt,
	}
	if req.Status != nil {
		st, err := order.ParseStatus(*req.Status)
		if err != nil {
			return order.Patch{}, err
		}
		patch.Status = &st
	}
	return patch, nil
}

// Delete 软删除
func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	return s.deps.UnitOfWork.New().Execute(ctx, func(ctx context.Context) error {
		if _, err := s.findRealOrder(ctx, id); err != nil {
			return err
		}
		return s.deps.Orders.Remove(ctx, id)
	})
}

// DeletedMessage 删除成功的响应消息
func DeletedMessage(id string) string {
	return fmt.Sprintf("Deleted order %s successfully", id)
}
