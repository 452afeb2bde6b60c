package catalog

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"restaurant/domain/catalog"
	"restaurant/domain/shared"
	"restaurant/infrastructure/cache"
	"restaurant/infrastructure/persistence/mocks"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type mockImages struct {
	mock.Mock
}

func (m *mockImages) Save(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	args := m.Called(ctx, folder, filename, r)
	return args.String(0), args.Error(1)
}

func (m *mockImages) Remove(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

type CatalogServiceSuite struct {
	suite.Suite

	ctx     context.Context
	store   *cache.MemoryStore
	images  *mockImages
	service *ApplicationService
}

func TestCatalogServiceSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceSuite))
}

func (s *CatalogServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = cache.NewMemoryStore()
	s.images = new(mockImages)
	s.service = NewApplicationService(
		mocks.NewMockProductRepository(),
		mocks.NewMockCategoryRepository(),
		s.store,
		s.images,
	)
}

func (s *CatalogServiceSuite) cached(key string) bool {
	_, ok, err := s.store.Get(s.ctx, key)
	s.Require().NoError(err)
	return ok
}

func (s *CatalogServiceSuite) TestProductLifecycle() {
	cat, err := s.service.CreateCategory(s.ctx, CreateCategoryRequest{Name: "Soups"})
	s.Require().NoError(err)

	p, err := s.service.CreateProduct(s.ctx, CreateProductRequest{Name: " Pho ", Price: 500, CategoryID: cat.ID})
	s.Require().NoError(err)
	s.Equal("Pho", p.Name)
	s.Equal(cat.ID, p.CategoryID)

	s.Require().NoError(s.store.Set(s.ctx, ProductCacheKey(p.ID), []byte("{}"), 0))

	price := int64(650)
	updated, err := s.service.UpdateProduct(s.ctx, p.ID, UpdateProductRequest{Price: &price})
	s.Require().NoError(err)
	s.Equal(int64(650), updated.Price)
	s.False(s.cached(ProductCacheKey(p.ID)))

	got, err := s.service.GetProduct(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(int64(650), got.Price)

	s.Require().NoError(s.service.DeleteProduct(s.ctx, p.ID))
	_, err = s.service.GetProduct(s.ctx, p.ID)
	s.True(errors.Is(err, catalog.ErrProductNotFound))
}

func (s *CatalogServiceSuite) TestProductValidation() {
	_, err := s.service.CreateProduct(s.ctx, CreateProductRequest{Name: "Pho", Price: 0})
	s.True(errors.Is(err, catalog.ErrInvalidPrice))

	_, err = s.service.CreateProduct(s.ctx, CreateProductRequest{Name: "Pho", Price: 10, CategoryID: "missing"})
	s.True(errors.Is(err, catalog.ErrCategoryNotFound))

	p, err := s.service.CreateProduct(s.ctx, CreateProductRequest{Name: "Pho", Price: 10})
	s.Require().NoError(err)
	missing := "missing"
	_, err = s.service.UpdateProduct(s.ctx, p.ID, UpdateProductRequest{CategoryID: &missing})
	s.True(errors.Is(err, shared.ErrNotFound))
}

func (s *CatalogServiceSuite) TestListProductsByCategory() {
	soups, err := s.service.CreateCategory(s.ctx, CreateCategoryRequest{Name: "Soups"})
	s.Require().NoError(err)
	drinks, err := s.service.CreateCategory(s.ctx, CreateCategoryRequest{Name: "Drinks"})
	s.Require().NoError(err)

	for _, req := range []CreateProductRequest{
		{Name: "Pho", Price: 500, CategoryID: soups.ID},
		{Name: "Bun bo", Price: 550, CategoryID: soups.ID},
		{Name: "Ca phe", Price: 200, CategoryID: drinks.ID},
	} {
		_, err := s.service.CreateProduct(s.ctx, req)
		s.Require().NoError(err)
	}

	items, total, _, err := s.service.ListProducts(s.ctx, ProductListQuery{CategoryID: soups.ID, SortBy: "price", SortOrder: "desc"})
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Require().Len(items, 2)
	s.Equal("Bun bo", items[0].Name)

	cats, total, _, err := s.service.ListCategories(s.ctx, 1, 10)
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Equal("Drinks", cats[0].Name)
}

func (s *CatalogServiceSuite) TestCategoryNameIsUnique() {
	c, err := s.service.CreateCategory(s.ctx, CreateCategoryRequest{Name: "Soups"})
	s.Require().NoError(err)

	_, err = s.service.CreateCategory(s.ctx, CreateCategoryRequest{Name: "soups"})
	s.True(errors.Is(err, catalog.ErrCategoryExists))
	s.True(errors.Is(err, shared.ErrConflict))

	s.Require().NoError(s.store.Set(s.ctx, CategoryCacheKey(c.ID), []byte("{}"), 0))
	name := "Noodle soups"
	updated, err := s.service.UpdateCategory(s.ctx, c.ID, UpdateCategoryRequest{Name: &name})
	s.Require().NoError(err)
	s.Equal(name, updated.Name)
	s.False(s.cached(CategoryCacheKey(c.ID)))

	s.Require().NoError(s.service.DeleteCategory(s.ctx, c.ID))
	_, err = s.service.GetCategory(s.ctx, c.ID)
	s.True(errors.Is(err, catalog.ErrCategoryNotFound))
}

func (s *CatalogServiceSuite) TestUploadReplacesImage() {
	p, err := s.service.CreateProduct(s.ctx, CreateProductRequest{Name: "Pho", Price: 500, ImageURL: "/uploads/products/old.png"})
	s.Require().NoError(err)

	body := strings.NewReader("png-bytes")
	s.images.On("Save", mock.Anything, "products", "pho.png", body).Return("/uploads/products/new.png", nil).Once()
	s.images.On("Remove", mock.Anything, "/uploads/products/old.png").Return(nil).Once()

	updated, err := s.service.UploadProductImage(s.ctx, p.ID, "pho.png", body)
	s.Require().NoError(err)
	s.Equal("/uploads/products/new.png", updated.ImageURL)
	s.images.AssertExpectations(s.T())
}

func (s *CatalogServiceSuite) TestUploadFailures() {
	_, err := s.service.UploadProductImage(s.ctx, "missing", "a.png", strings.NewReader(""))
	s.True(errors.Is(err, catalog.ErrProductNotFound))

	p, err := s.service.CreateProduct(s.ctx, CreateProductRequest{Name: "Pho", Price: 500})
	s.Require().NoError(err)
	s.images.On("Save", mock.Anything, "products", "a.exe", mock.Anything).
		Return("", shared.NewError(nil, shared.ErrInvalidInput, "image", "", "unsupported")).Once()

	_, err = s.service.UploadProductImage(s.ctx, p.ID, "a.exe", strings.NewReader(""))
	s.True(errors.Is(err, shared.ErrInvalidInput))
	s.images.AssertNotCalled(s.T(), "Remove", mock.Anything, mock.Anything)

	disabled := NewApplicationService(mocks.NewMockProductRepository(), mocks.NewMockCategoryRepository(), nil, nil)
	_, err = disabled.UploadProductImage(s.ctx, p.ID, "a.png", strings.NewReader(""))
	s.True(errors.Is(err, shared.ErrInvalidInput))
}
