package order

import (
	"context"
	"errors"

	"restaurant/domain/order"
)

// FavouritesService 收藏夹：用户唯一的 FAVOURITES 订单行，行数量固定为 1
type FavouritesService struct {
	deps Dependencies
}

func NewFavouritesService(deps Dependencies) *FavouritesService {
	return &FavouritesService{deps: deps}
}

// List 返回商品的当前数据而不是快照
func (s *FavouritesService) List(ctx context.Context, userID string) ([]*FavouriteResponse, error) {
	favourites, err := s.deps.singleton(ctx, userID, order.RoleFavourites)
	if err != nil {
		return nil, err
	}
	lines, err := s.deps.Lines.FindByOrderID(ctx, favourites.ID())
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return []*FavouriteResponse{}, nil
	}

	views, err := s.deps.views().load(ctx, lines)
	if err != nil {
		return nil, err
	}
	responses := make([]*FavouriteResponse, len(lines))
	for i, l := range lines {
		responses[i] = &FavouriteResponse{DetailID: l.ID(), Product: views[l.ProductID()]}
	}
	return responses, nil
}

// Add 幂等：已收藏时返回原有的行；created 表示是否新建
func (s *FavouritesService) Add(ctx context.Context, userID string, req AddFavouriteRequest) (*FavouriteResponse, bool, error) {
	var (
		line    *order.Line
		created bool
	)
	err := s.deps.UnitOfWork.New().Execute(ctx, func(ctx context.Context) error {
		product, err := s.deps.Products.FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}
		favourites, err := s.deps.singleton(ctx, userID, order.RoleFavourites)
		if err != nil {
			return err
		}

		existing, err := s.deps.Lines.FindByProduct(ctx, favourites.ID(), product.ID())
		switch {
		case err == nil:
			line, created = existing, false
			return nil
		case !errors.Is(err, order.ErrLineNotFound):
			return err
		}

		line, err = order.NewLine(favourites.ID(), product.Snapshot(), 1)
		if err != nil {
			return err
		}
		err = s.deps.Lines.Save(ctx, line)
		if errors.Is(err, order.ErrDuplicateLine) {
			existing, findErr := s.deps.Lines.FindByProduct(ctx, favourites.ID(), product.ID())
			if findErr != nil {
				return err
			}
			line, created = existing, false
			return nil
		}
		created = err == nil
		return err
	})
	if err != nil {
		return nil, false, err
	}

	views, err := s.deps.views().load(ctx, []*order.Line{line})
	if err != nil {
		return nil, false, err
	}
	return &FavouriteResponse{DetailID: line.ID(), Product: views[line.ProductID()]}, created, nil
}

func (s *FavouritesService) Remove(ctx context.Context, userID, detailID string) error {
	return s.deps.UnitOfWork.New().Execute(ctx, func(ctx context.Context) error {
		line, err := s.deps.liveLine(ctx, userID, order.RoleFavourites, detailID)
		if err != nil {
			return err
		}
		return s.deps.Lines.Remove(ctx, line.OrderID(), line.ID())
	})
}
