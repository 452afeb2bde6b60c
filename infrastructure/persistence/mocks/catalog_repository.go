package mocks

import (
	"cmp"
	"context"
	"strings"
	"sync"

	"restaurant/domain/catalog"
	"restaurant/domain/shared"
)

// MockProductRepository 商品仓储的内存实现
type MockProductRepository struct {
	products map[string]*catalog.Product
	mu       sync.RWMutex
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]*catalog.Product),
	}
}

func cloneProduct(p *catalog.Product) *catalog.Product {
	return catalog.RebuildProduct(catalog.ProductDTO{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price(),
		ImageURL:    p.ImageURL(),
		CategoryID:  p.CategoryID(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	})
}

func (r *MockProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID()] = cloneProduct(p)
	return nil
}

func (r *MockProductRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, catalog.NewProductNotFoundError(id)
	}
	return cloneProduct(p), nil
}

func (r *MockProductRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]*catalog.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			result[id] = cloneProduct(p)
		}
	}
	return result, nil
}

func (r *MockProductRepository) List(ctx context.Context, q catalog.ProductQuery) ([]*catalog.Product, int64, error) {
	r.mu.RLock()
	var matched []*catalog.Product
	for _, p := range r.products {
		if q.CategoryID != "" && p.CategoryID() != q.CategoryID {
			continue
		}
		matched = append(matched, cloneProduct(p))
	}
	r.mu.RUnlock()

	var compare func(a, b *catalog.Product) int
	switch q.SortBy {
	case catalog.ProductSortByName:
		compare = func(a, b *catalog.Product) int { return cmp.Compare(a.Name(), b.Name()) }
	case catalog.ProductSortByPrice:
		compare = func(a, b *catalog.Product) int { return cmp.Compare(a.Price(), b.Price()) }
	default:
		compare = func(a, b *catalog.Product) int { return a.CreatedAt().Compare(b.CreatedAt()) }
	}

	total := int64(len(matched))
	return sortAndPage(matched, compare, (*catalog.Product).ID, q.SortOrder, q.Page), total, nil
}

func (r *MockProductRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return catalog.NewProductNotFoundError(id)
	}
	delete(r.products, id)
	return nil
}

type storedCategory struct {
	category *catalog.Category
	deleted  bool
}

// MockCategoryRepository 分类仓储的内存实现
// 名称唯一且不区分大小写；已删除的分类仍占用名称
type MockCategoryRepository struct {
	categories map[string]*storedCategory
	mu         sync.RWMutex
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		categories: make(map[string]*storedCategory),
	}
}

func cloneCategory(c *catalog.Category) *catalog.Category {
	return catalog.RebuildCategory(catalog.CategoryDTO{
		ID:          c.ID(),
		Name:        c.Name(),
		Description: c.Description(),
		ImageURL:    c.ImageURL(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	})
}

func (r *MockCategoryRepository) Save(ctx context.Context, c *catalog.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for id, s := range r.categories {
		if id != c.ID() && strings.EqualFold(s.category.Name(), c.Name()) {
			return catalog.NewCategoryExistsError(c.Name())
		}
	}
	r.categories[c.ID()] = &storedCategory{category: cloneCategory(c)}
	return nil
}

func (r *MockCategoryRepository) FindByID(ctx context.Context, id string) (*catalog.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.categories[id]
	if !ok || s.deleted {
		return nil, catalog.NewCategoryNotFoundError(id)
	}
	return cloneCategory(s.category), nil
}

func (r *MockCategoryRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*catalog.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]*catalog.Category, len(ids))
	for _, id := range ids {
		if s, ok := r.categories[id]; ok && !s.deleted {
			result[id] = cloneCategory(s.category)
		}
	}
	return result, nil
}

func (r *MockCategoryRepository) List(ctx context.Context, page shared.Page) ([]*catalog.Category, int64, error) {
	r.mu.RLock()
	var matched []*catalog.Category
	for _, s := range r.categories {
		if !s.deleted {
			matched = append(matched, cloneCategory(s.category))
		}
	}
	r.mu.RUnlock()

	byName := func(a, b *catalog.Category) int { return cmp.Compare(a.Name(), b.Name()) }
	total := int64(len(matched))
	return sortAndPage(matched, byName, (*catalog.Category).ID, shared.SortAsc, page), total, nil
}

func (r *MockCategoryRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.categories[id]
	if !ok || s.deleted {
		return catalog.NewCategoryNotFoundError(id)
	}
	s.deleted = true
	return nil
}

var (
	_ catalog.ProductRepository  = (*MockProductRepository)(nil)
	_ catalog.CategoryRepository = (*MockCategoryRepository)(nil)
)
