package order

import (
	"context"

	"restaurant/domain/catalog"
	"restaurant/domain/order"
)

func toLineResponse(l *order.Line) *LineResponse {
	return &LineResponse{
		ID:        l.ID(),
		OrderID:   l.OrderID(),
		ProductID: l.ProductID(),
		Name:      l.NameSnapshot(),
		Price:     l.PriceSnapshot(),
		Quantity:  l.Quantity(),
		Subtotal:  l.Subtotal(),
		CreatedAt: l.CreatedAt(),
		UpdatedAt: l.UpdatedAt(),
	}
}

func toLineResponses(lines []*order.Line) []*LineResponse {
	responses := make([]*LineResponse, len(lines))
	for i, l := range lines {
		responses[i] = toLineResponse(l)
	}
	return responses
}

func toResponse(o *order.Order) *Response {
	resp := &Response{
		ID:          o.ID(),
		UserID:      o.UserID(),
		Status:      string(o.Status()),
		AcceptedAt:  o.AcceptedAt(),
		DeliveredAt: o.DeliveredAt(),
		ReceivedAt:  o.ReceivedAt(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
	}
	if total := o.TotalPrice(); total.Valid {
		v := total.Decimal
		resp.TotalPrice = &v
	}
	return resp
}

func toProductView(p *catalog.Product, categories map[string]*catalog.Category) *ProductView {
	view := &ProductView{
		ID:       p.ID(),
		Name:     p.Name(),
		Price:    p.Price(),
		ImageURL: p.ImageURL(),
	}
	if c, ok := categories[p.CategoryID()]; ok {
		view.Category = &CategoryView{ID: c.ID(), Name: c.Name()}
	}
	return view
}

// productViews 批量加载行引用的商品及其分类，已删除的商品不出现在结果中
type productViews struct {
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
}

func (v productViews) load(ctx context.Context, lines []*order.Line) (map[string]*ProductView, error) {
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID())
	}
	products, err := v.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	categoryIDs := make([]string, 0, len(products))
	for _, p := range products {
		if p.CategoryID() != "" {
			categoryIDs = append(categoryIDs, p.CategoryID())
		}
	}
	categories := map[string]*catalog.Category{}
	if v.categories != nil && len(categoryIDs) > 0 {
		if categories, err = v.categories.FindByIDs(ctx, categoryIDs); err != nil {
			return nil, err
		}
	}

	views := make(map[string]*ProductView, len(products))
	for id, p := range products {
		views[id] = toProductView(p, categories)
	}
	return views, nil
}
