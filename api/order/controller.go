/*
Package order - 订单 API 控制器

错误处理原则:
1. 参数绑定错误: 使用 response.HandleError 直接返回 400
2. 业务错误: 使用 response.HandleAppError 自动映射状态码
*/
package order

import (
	"net/http"

	"restaurant/api/ctxutil"
	"restaurant/api/middleware"
	"restaurant/api/response"
	orderapp "restaurant/application/order"
	"restaurant/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller 订单控制器
type Controller struct {
	orderService *orderapp.ApplicationService
}

func NewController(orderService *orderapp.ApplicationService) *Controller {
	return &Controller{orderService: orderService}
}

// RegisterRoutes 列表与详情需要登录，写操作仅管理员
func (c *Controller) RegisterRoutes(router *gin.RouterGroup, authn gin.HandlerFunc) {
	orderGroup := router.Group("/orders", authn)
	{
		orderGroup.GET("", c.ListOrders)
		orderGroup.GET("/:orderId", c.GetOrder)
		orderGroup.POST("", middleware.RequireAdmin(), c.CreateOrder)
		orderGroup.PATCH("/:orderId", middleware.RequireAdmin(), c.UpdateOrder)
		orderGroup.DELETE("/:orderId", middleware.RequireAdmin(), c.DeleteOrder)
	}
}

type listParams struct {
	ctxutil.PageParams
	Status              string `form:"status" binding:"omitempty,order_status"`
	UserID              string `form:"userId"`
	IncludeOrderDetails *bool  `form:"includeOrderDetails"`
}

// ListOrders 订单列表；普通用户只能看到自己的订单
// GET /api/v1/orders
func (c *Controller) ListOrders(ctx *gin.Context) {
	var params listParams
	if err := ctx.ShouldBindQuery(&params); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	userID := params.UserID
	if principal, _ := ctxutil.PrincipalFrom(ctx); !principal.IsAdmin() {
		userID = principal.UserID
	}

	orders, total, page, err := c.orderService.List(ctx.Request.Context(), orderapp.ListQuery{
		Status:              params.Status,
		UserID:              userID,
		SortBy:              params.SortBy,
		SortOrder:           params.SortOrder,
		Page:                params.Page,
		Limit:               params.Limit,
		IncludeOrderDetails: ctxutil.BoolOr(params.IncludeOrderDetails, true),
	})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, orders, response.NewPagination(page, total), "orders retrieved successfully")
}

// GetOrder 获取订单详情
// GET /api/v1/orders/:orderId
func (c *Controller) GetOrder(ctx *gin.Context) {
	includeLines := true
	if v := ctx.Query("includeOrderDetails"); v == "false" {
		includeLines = false
	}

	order, err := c.orderService.Get(ctx.Request.Context(), ctx.Param("orderId"), includeLines)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if !ctxutil.CanAccess(ctx, order.UserID) {
		response.HandleAppError(ctx, errors.Forbidden("You can only access your own orders"))
		return
	}

	response.HandleSuccess(ctx, order, "order retrieved successfully")
}

// CreateOrder 管理员直接创建订单
// POST /api/v1/orders
func (c *Controller) CreateOrder(ctx *gin.Context) {
	var req orderapp.CreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.Create(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, order, "order created successfully")
}

// UpdateOrder 部分更新；状态变化经过迁移表校验
// PATCH /api/v1/orders/:orderId
func (c *Controller) UpdateOrder(ctx *gin.Context) {
	var req orderapp.UpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.Update(ctx.Request.Context(), ctx.Param("orderId"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order updated successfully")
}

// DeleteOrder 软删除
// DELETE /api/v1/orders/:orderId
func (c *Controller) DeleteOrder(ctx *gin.Context) {
	id := ctx.Param("orderId")
	if err := c.orderService.Delete(ctx.Request.Context(), id); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, orderapp.DeletedMessage(id))
}
