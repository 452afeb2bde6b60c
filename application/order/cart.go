package order

import (
	"context"
	"errors"

	notificationapp "restaurant/application/notification"
	"restaurant/domain/order"
)

// CartService 购物车：用户唯一的 DRAFT 订单行
type CartService struct {
	deps Dependencies
}

func NewCartService(deps Dependencies) *CartService {
	return &CartService{deps: deps}
}

// GetCart 返回购物车（不存在则懒创建）；includeProduct 时附带商品当前数据
func (s *CartService) GetCart(ctx context.Context, userID string, includeProduct bool) (*CartResponse, error) {
	cart, err := s.deps.singleton(ctx, userID, order.RoleCart)
	if err != nil {
		return nil, err
	}
	lines, err := s.deps.Lines.FindByOrderID(ctx, cart.ID())
	if err != nil {
		return nil, err
	}

	items := toLineResponses(lines)
	if includeProduct && len(lines) > 0 {
		views, err := s.deps.views().load(ctx, lines)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			item.Product = views[item.ProductID]
		}
	}
	return &CartResponse{CartID: cart.ID(), Items: items}, nil
}

// AddItem 同一商品已在购物车时累加数量并返回原行；created 表示是否新建了行
func (s *CartService) AddItem(ctx context.Context, userID string, req AddItemRequest) (*LineResponse, bool, error) {
	var (
		line    *order.Line
		created bool
	)
	err := s.deps.UnitOfWork.New().Execute(ctx, func(ctx context.Context) error {
		product, err := s.deps.Products.FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}
		cart, err := s.deps.singleton(ctx, userID, order.RoleCart)
		if err != nil {
			return err
		}

		existing, err := s.deps.Lines.FindByProduct(ctx, cart.ID(), product.ID())
		switch {
		case err == nil:
			line, created = existing, false
			return s.increase(ctx, existing, req.Quantity)
		case !errors.Is(err, order.ErrLineNotFound):
			return err
		}

		line, err = order.NewLine(cart.ID(), product.Snapshot(), req.Quantity)
		if err != nil {
			return err
		}
		err = s.deps.Lines.Save(ctx, line)
		if errors.Is(err, order.ErrDuplicateLine) {
			// 并发请求先插入了同一商品，改为在它的行上累加
			existing, findErr := s.deps.Lines.FindByProduct(ctx, cart.ID(), product.ID())
			if findErr != nil {
				return err
			}
			line, created = existing, false
			return s.increase(ctx, existing, req.Quantity)
		}
		created = err == nil
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return toLineResponse(line), created, nil
}

func (s *CartService) increase(ctx context.Context, line *order.Line, by int) error {
	if err := line.Increase(by); err != nil {
		return err
	}
	return s.deps.Lines.Save(ctx, line)
}

// UpdateItemQuantity 直接设置数量；行必须属于用户当前的购物车
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, lineID string, req UpdateItemRequest) (*LineResponse, error) {
	var line *order.Line
	err := s.deps.UnitOfWork.New().Execute(ctx, func(ctx context.Context) error {
		var err error
		if line, err = s.deps.liveLine(ctx, userID, order.RoleCart, lineID); err != nil {
			return err
		}
		if err := line.SetQuantity(req.Quantity); err != nil {
			return err
		}
		return s.deps.Lines.Save(ctx, line)
	})
	if err != nil {
		return nil, err
	}
	return toLineResponse(line), nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, lineID string) error {
	return s.deps.UnitOfWork.New().Execute(ctx, func(ctx context.Context) error {
		line, err := s.deps.liveLine(ctx, userID, order.RoleCart, lineID)
		if err != nil {
			return err
		}
		return s.deps.Lines.Remove(ctx, line.OrderID(), line.ID())
	})
}

// Checkout 结算：行不迁移，购物车行本身变成 CREATED 订单；提交后广播 NEW_ORDER
// 下一次访问购物车会懒创建新的 DRAFT 行
func (s *CartService) Checkout(ctx context.Context, userID string) (*CheckoutResponse, error) {
	var result *CheckoutResponse
	uow := s.deps.UnitOfWork.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		cart, err := s.deps.Orders.FindSingleton(ctx, userID, order.RoleCart)
		if err != nil {
			if errors.Is(err, order.ErrOrderNotFound) {
				return order.NewCartEmptyError()
			}
			return err
		}
		lines, err := s.deps.Lines.FindByOrderID(ctx, cart.ID())
		if err != nil {
			return err
		}

		total, err := cart.Checkout(lines)
		if err != nil {
			return err
		}
		if err := s.deps.Orders.Save(ctx, cart); err != nil {
			return err
		}
		uow.RegisterDirty(cart)

		result = &CheckoutResponse{OrderID: cart.ID(), Total: total}
		return nil
	})
	if err != nil {
		return nil, err
	}

	notificationapp.Notify(ctx, s.deps.Sink, newOrderDraft(result.OrderID))
	return result, nil
}

// ClearCart 删除全部行但保留购物车行；没有购物车时什么都不做
func (s *CartService) ClearCart(ctx context.Context, userID string) (int64, error) {
	var removed int64
	err := s.deps.UnitOfWork.New().Execute(ctx, func(ctx context.Context) error {
		cart, err := s.deps.Orders.FindSingleton(ctx, userID, order.RoleCart)
		if err != nil {
			if errors.Is(err, order.ErrOrderNotFound) {
				removed = 0
				return nil
			}
			return err
		}
		if err := cart.EnsureEditableCart(); err != nil {
			return err
		}
		removed, err = s.deps.Lines.RemoveAll(ctx, cart.ID())
		return err
	})
	return removed, err
}
