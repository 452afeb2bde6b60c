// Package catalog 商品与分类 API；按 ID 查询的 GET 走响应缓存
package catalog

import (
	"net/http"

	"restaurant/api/ctxutil"
	"restaurant/api/middleware"
	"restaurant/api/response"
	catalogapp "restaurant/application/catalog"

	"github.com/gin-gonic/gin"
)

// CacheFactory 按键函数构造缓存中间件；为 nil 时不缓存
type CacheFactory func(key middleware.CacheKeyFunc) gin.HandlerFunc

type Controller struct {
	catalogService *catalogapp.ApplicationService
	maxUpload      int64
	cache          CacheFactory
}

func NewController(catalogService *catalogapp.ApplicationService, maxUpload int64, cache CacheFactory) *Controller {
	return &Controller{
		catalogService: catalogService,
		maxUpload:      maxUpload,
		cache:          cache,
	}
}

func (c *Controller) cached(key middleware.CacheKeyFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	if c.cache == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{c.cache(key), h}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup, authn gin.HandlerFunc) {
	productKey := func(ctx *gin.Context) string { return catalogapp.ProductCacheKey(ctx.Param("productId")) }
	categoryKey := func(ctx *gin.Context) string { return catalogapp.CategoryCacheKey(ctx.Param("categoryId")) }

	products := router.Group("/products")
	{
		products.GET("", c.ListProducts)
		products.GET("/:productId", c.cached(productKey, c.GetProduct)...)

		admin := products.Group("", authn, middleware.RequireAdmin())
		admin.POST("", c.CreateProduct)
		admin.PATCH("/:productId", c.UpdateProduct)
		admin.DELETE("/:productId", c.DeleteProduct)
		admin.POST("/:productId/upload", c.UploadProductImage)
	}

	categories := router.Group("/categories")
	{
		categories.GET("", c.ListCategories)
		categories.GET("/:categoryId", c.cached(categoryKey, c.GetCategory)...)

		admin := categories.Group("", authn, middleware.RequireAdmin())
		admin.POST("", c.CreateCategory)
		admin.PATCH("/:categoryId", c.UpdateCategory)
		admin.DELETE("/:categoryId", c.DeleteCategory)
	}
}

// ============================================================================
// 商品
// ============================================================================

type productListParams struct {
	ctxutil.PageParams
	CategoryID string `form:"categoryId"`
}

// ListProducts
// GET /api/v1/products
func (c *Controller) ListProducts(ctx *gin.Context) {
	var params productListParams
	if err := ctx.ShouldBindQuery(&params); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	products, total, page, err := c.catalogService.ListProducts(ctx.Request.Context(), catalogapp.ProductListQuery{
		CategoryID: params.CategoryID,
		SortBy:     params.SortBy,
		SortOrder:  params.SortOrder,
		Page:       params.Page,
		Limit:      params.Limit,
	})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, products, response.NewPagination(page, total), "products retrieved successfully")
}

// GetProduct
// GET /api/v1/products/:productId
func (c *Controller) GetProduct(ctx *gin.Context) {
	product, err := c.catalogService.GetProduct(ctx.Request.Context(), ctx.Param("productId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, "product retrieved successfully")
}

// CreateProduct
// POST /api/v1/products
func (c *Controller) CreateProduct(ctx *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	product, err := c.catalogService.CreateProduct(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, product, "product created successfully")
}

// UpdateProduct
// PATCH /api/v1/products/:productId
func (c *Controller) UpdateProduct(ctx *gin.Context) {
	var req catalogapp.UpdateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	product, err := c.catalogService.UpdateProduct(ctx.Request.Context(), ctx.Param("productId"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, "product updated successfully")
}

// DeleteProduct
// DELETE /api/v1/products/:productId
func (c *Controller) DeleteProduct(ctx *gin.Context) {
	if err := c.catalogService.DeleteProduct(ctx.Request.Context(), ctx.Param("productId")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "product deleted successfully")
}

// UploadProductImage multipart 字段名 image
// POST /api/v1/products/:productId/upload
func (c *Controller) UploadProductImage(ctx *gin.Context) {
	filename, file, err := ctxutil.OpenUpload(ctx, c.maxUpload)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	defer file.Close()

	product, err := c.catalogService.UploadProductImage(ctx.Request.Context(), ctx.Param("productId"), filename, file)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, "image uploaded successfully")
}

// ============================================================================
// 分类
// ============================================================================

// ListCategories 按名称排序
// GET /api/v1/categories
func (c *Controller) ListCategories(ctx *gin.Context) {
	var params ctxutil.PageParams
	if err := ctx.ShouldBindQuery(&params); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	categories, total, page, err := c.catalogService.ListCategories(ctx.Request.Context(), params.Page, params.Limit)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, categories, response.NewPagination(page, total), "categories retrieved successfully")
}

// GetCategory
// GET /api/v1/categories/:categoryId
func (c *Controller) GetCategory(ctx *gin.Context) {
	category, err := c.catalogService.GetCategory(ctx.Request.Context(), ctx.Param("categoryId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, category, "category retrieved successfully")
}

// CreateCategory
// POST /api/v1/categories
func (c *Controller) CreateCategory(ctx *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	category, err := c.catalogService.CreateCategory(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, category, "category created successfully")
}

// UpdateCategory
// PATCH /api/v1/categories/:categoryId
func (c *Controller) UpdateCategory(ctx *gin.Context) {
	var req catalogapp.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	category, err := c.catalogService.UpdateCategory(ctx.Request.Context(), ctx.Param("categoryId"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, category, "category updated successfully")
}

// DeleteCategory
// DELETE /api/v1/categories/:categoryId
func (c *Controller) DeleteCategory(ctx *gin.Context) {
	if err := c.catalogService.DeleteCategory(ctx.Request.Context(), ctx.Param("categoryId")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "category deleted successfully")
}
