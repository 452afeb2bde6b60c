package catalog

import (
	"context"

	"restaurant/domain/shared"
)

// ProductSortField 商品列表排序字段
type ProductSortField string

const (
	ProductSortByName      ProductSortField = "name"
	ProductSortByPrice     ProductSortField = "price"
	ProductSortByCreatedAt ProductSortField = "createdAt"
)

func ParseProductSortField(s string) ProductSortField {
	switch f := ProductSortField(s); f {
	case ProductSortByName, ProductSortByPrice, ProductSortByCreatedAt:
		return f
	default:
		return ProductSortByCreatedAt
	}
}

// ProductQuery 商品列表查询条件
type ProductQuery struct {
	CategoryID string
	SortBy     ProductSortField
	SortOrder  shared.SortOrder
	Page       shared.Page
}

// ProductRepository 商品仓储
type ProductRepository interface {
	Save(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*Product, error)
	List(ctx context.Context, q ProductQuery) ([]*Product, int64, error)
	Remove(ctx context.Context, id string) error
}

// CategoryRepository 分类仓储；Save 在名称冲突时返回 ErrCategoryExists
type CategoryRepository interface {
	Save(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id string) (*Category, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*Category, error)
	List(ctx context.Context, page shared.Page) ([]*Category, int64, error)
	Remove(ctx context.Context, id string) error
}
