/*
Package catalog 商品与分类应用服务

按 ID 读取商品、分类的公开接口走响应缓存；这里的写操作成功后
删除对应的缓存键。缓存删除失败只记录日志，缓存条目最多存活一个 TTL。
*/
package catalog

import (
	"context"
	"io"

	"restaurant/domain/catalog"
	"restaurant/domain/shared"
	"restaurant/pkg/logger"

	"go.uber.org/zap"
)

// ProductCacheKey 商品详情的响应缓存键
func ProductCacheKey(id string) string { return "product:" + id }

// CategoryCacheKey 分类详情的响应缓存键
func CategoryCacheKey(id string) string { return "category:" + id }

// CacheInvalidator 由缓存存储实现
type CacheInvalidator interface {
	Delete(ctx context.Context, keys ...string) error
}

// ImageStorage 上传图片的存储，返回可公开访问的地址
type ImageStorage interface {
	Save(ctx context.Context, folder, filename string, r io.Reader) (string, error)
	Remove(ctx context.Context, url string) error
}

type ApplicationService struct {
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
	cache      CacheInvalidator
	images     ImageStorage
}

// NewApplicationService cache 和 images 可以为 nil
func NewApplicationService(
	products catalog.ProductRepository,
	categories catalog.CategoryRepository,
	cache CacheInvalidator,
	images ImageStorage,
) *ApplicationService {
	return &ApplicationService{
		products:   products,
		categories: categories,
		cache:      cache,
		images:     images,
	}
}

func (s *ApplicationService) invalidate(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.FromContext(ctx).Warn("Failed to invalidate response cache",
			zap.String("key", key), zap.Error(err))
	}
}

// ============================================================================
// 商品
// ============================================================================

func (s *ApplicationService) ListProducts(ctx context.Context, q ProductListQuery) ([]*ProductResponse, int64, shared.Page, error) {
	page := shared.NewPage(q.Page, q.Limit)
	products, total, err := s.products.List(ctx, catalog.ProductQuery{
		CategoryID: q.CategoryID,
		SortBy:     catalog.ParseProductSortField(q.SortBy),
		SortOrder:  shared.ParseSortOrder(q.SortOrder, shared.SortAsc),
		Page:       page,
	})
	if err != nil {
		return nil, 0, page, err
	}

	responses := make([]*ProductResponse, len(products))
	for i, p := range products {
		responses[i] = toProductResponse(p)
	}
	return responses, total, page, nil
}

func (s *ApplicationService) GetProduct(ctx context.Context, id string) (*ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

func (s *ApplicationService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if err := s.ensureCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	p, err := catalog.NewProduct(catalog.ProductFields{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

func (s *ApplicationService) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		if err := s.ensureCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	err = p.Apply(catalog.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, ProductCacheKey(id))
	return toProductResponse(p), nil
}

func (s *ApplicationService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Remove(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, ProductCacheKey(id))
	return nil
}

// UploadProductImage 保存图片并更新商品的 imageUrl，旧图片尽力删除
func (s *ApplicationService) UploadProductImage(ctx context.Context, id, filename string, r io.Reader) (*ProductResponse, error) {
	if s.images == nil {
		return nil, shared.NewError(nil, shared.ErrInvalidInput, "product", "image", "Image uploads are disabled")
	}
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.images.Save(ctx, "products", filename, r)
	if err != nil {
		return nil, err
	}
	previous := p.ImageURL()
	p.SetImage(url)
	if err := s.products.Save(ctx, p); err != nil {
		_ = s.images.Remove(ctx, url)
		return nil, err
	}
	s.removeImage(ctx, previous)
	s.invalidate(ctx, ProductCacheKey(id))
	return toProductResponse(p), nil
}

func (s *ApplicationService) removeImage(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := s.images.Remove(ctx, url); err != nil {
		logger.FromContext(ctx).Debug("Previous image not removed", zap.String("url", url), zap.Error(err))
	}
}

func (s *ApplicationService) ensureCategory(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return nil
	}
	_, err := s.categories.FindByID(ctx, categoryID)
	return err
}

// ============================================================================
// 分类
// ============================================================================

func (s *ApplicationService) ListCategories(ctx context.Context, pageNumber, limit int) ([]*CategoryResponse, int64, shared.Page, error) {
	page := shared.NewPage(pageNumber, limit)
	categories, total, err := s.categories.List(ctx, page)
	if err != nil {
		return nil, 0, page, err
	}

	responses := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = toCategoryResponse(c)
	}
	return responses, total, page, nil
}

func (s *ApplicationService) GetCategory(ctx context.Context, id string) (*CategoryResponse, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

func (s *ApplicationService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	c, err := catalog.NewCategory(req.Name, req.Description, req.ImageURL)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Save(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

func (s *ApplicationService) UpdateCategory(ctx context.Context, id string, req UpdateCategoryRequest) (*CategoryResponse, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Apply(catalog.CategoryPatch{Name: req.Name, Description: req.Description, ImageURL: req.ImageURL}); err != nil {
		return nil, err
	}
	if err := s.categories.Save(ctx, c); err != nil {
		return nil, err
	}
	s.invalidate(ctx, CategoryCacheKey(id))
	return toCategoryResponse(c), nil
}

func (s *ApplicationService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categories.Remove(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, CategoryCacheKey(id))
	return nil
}

func toProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price(),
		ImageURL:    p.ImageURL(),
		CategoryID:  p.CategoryID(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

func toCategoryResponse(c *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID(),
		Name:        c.Name(),
		Description: c.Description(),
		ImageURL:    c.ImageURL(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}
