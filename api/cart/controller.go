// Package cart 购物车与收藏夹 API，挂在 /users/:userId 下，仅本人或管理员可访问
package cart

import (
	"net/http"
	"strconv"

	"restaurant/api/middleware"
	"restaurant/api/response"
	orderapp "restaurant/application/order"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	cartService       *orderapp.CartService
	favouritesService *orderapp.FavouritesService
}

func NewController(cartService *orderapp.CartService, favouritesService *orderapp.FavouritesService) *Controller {
	return &Controller{
		cartService:       cartService,
		favouritesService: favouritesService,
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup, authn gin.HandlerFunc) {
	userGroup := router.Group("/users/:userId", authn, middleware.OwnerOrAdmin("userId"))
	{
		userGroup.GET("/cart", c.GetCart)
		userGroup.DELETE("/cart", c.ClearCart)
		userGroup.POST("/cart/items", c.AddItem)
		userGroup.PATCH("/cart/items/:itemId", c.UpdateItem)
		userGroup.DELETE("/cart/items/:itemId", c.RemoveItem)
		userGroup.POST("/cart/checkout", c.Checkout)

		userGroup.GET("/favourites", c.ListFavourites)
		userGroup.POST("/favourites", c.AddFavourite)
		userGroup.DELETE("/favourites/:detailId", c.RemoveFavourite)
	}
}

// GetCart 购物车及其行；includeProduct 缺省为 true
// GET /api/v1/users/:userId/cart
func (c *Controller) GetCart(ctx *gin.Context) {
	includeProduct := true
	if v := ctx.Query("includeProduct"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			response.HandleError(ctx, err, "includeProduct must be a boolean", http.StatusBadRequest)
			return
		}
		includeProduct = parsed
	}

	cart, err := c.cartService.GetCart(ctx.Request.Context(), ctx.Param("userId"), includeProduct)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, cart, "cart retrieved successfully")
}

// AddItem 新行返回 201，已有行累加数量返回 200
// POST /api/v1/users/:userId/cart/items
func (c *Controller) AddItem(ctx *gin.Context) {
	var req orderapp.AddItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	line, created, err := c.cartService.AddItem(ctx.Request.Context(), ctx.Param("userId"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	if created {
		response.HandleCreated(ctx, line, "item added to cart")
		return
	}
	response.HandleSuccess(ctx, line, "cart item quantity increased")
}

// UpdateItem 设置数量
// PATCH /api/v1/users/:userId/cart/items/:itemId
func (c *Controller) UpdateItem(ctx *gin.Context) {
	var req orderapp.UpdateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	line, err := c.cartService.UpdateItemQuantity(ctx.Request.Context(), ctx.Param("userId"), ctx.Param("itemId"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, line, "cart item updated")
}

// RemoveItem 删除一行，成功时返回 204
// DELETE /api/v1/users/:userId/cart/items/:itemId
func (c *Controller) RemoveItem(ctx *gin.Context) {
	if err := c.cartService.RemoveItem(ctx.Request.Context(), ctx.Param("userId"), ctx.Param("itemId")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleNoContent(ctx)
}

// ClearCart 清空购物车，返回删除的行数
// DELETE /api/v1/users/:userId/cart
func (c *Controller) ClearCart(ctx *gin.Context) {
	removed, err := c.cartService.ClearCart(ctx.Request.Context(), ctx.Param("userId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, gin.H{"removed": removed}, "cart cleared")
}

// Checkout 购物车转为订单
// POST /api/v1/users/:userId/cart/checkout
func (c *Controller) Checkout(ctx *gin.Context) {
	result, err := c.cartService.Checkout(ctx.Request.Context(), ctx.Param("userId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, result, "order placed successfully")
}

// ListFavourites 收藏夹，商品为当前数据
// GET /api/v1/users/:userId/favourites
func (c *Controller) ListFavourites(ctx *gin.Context) {
	favourites, err := c.favouritesService.List(ctx.Request.Context(), ctx.Param("userId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, favourites, "favourites retrieved successfully")
}

// AddFavourite 幂等；已收藏返回 200
// POST /api/v1/users/:userId/favourites
func (c *Controller) AddFavourite(ctx *gin.Context) {
	var req orderapp.AddFavouriteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	favourite, created, err := c.favouritesService.Add(ctx.Request.Context(), ctx.Param("userId"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	if created {
		response.HandleCreated(ctx, favourite, "product added to favourites")
		return
	}
	response.HandleSuccess(ctx, favourite, "product already in favourites")
}

// RemoveFavourite 成功时返回 204
// DELETE /api/v1/users/:userId/favourites/:detailId
func (c *Controller) RemoveFavourite(ctx *gin.Context) {
	if err := c.favouritesService.Remove(ctx.Request.Context(), ctx.Param("userId"), ctx.Param("detailId")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleNoContent(ctx)
}
