// Package notification 通知 API
package notification

import (
	"net/http"

	"restaurant/api/ctxutil"
	"restaurant/api/middleware"
	"restaurant/api/response"
	notificationapp "restaurant/application/notification"
	"restaurant/pkg/errors"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	notificationService *notificationapp.ApplicationService
}

func NewController(notificationService *notificationapp.ApplicationService) *Controller {
	return &Controller{notificationService: notificationService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup, authn gin.HandlerFunc) {
	group := router.Group("/notifications", authn)
	{
		group.GET("", c.ListNotifications)
		group.GET("/:notificationId", c.GetNotification)
		group.POST("/:notificationId/read", c.MarkRead)
		group.POST("", middleware.RequireAdmin(), c.CreateNotification)
		group.PATCH("/:notificationId", middleware.RequireAdmin(), c.UpdateNotification)
		group.DELETE("/:notificationId", middleware.RequireAdmin(), c.DeleteNotification)
	}

	router.PATCH("/users/:userId/notifications/read-all", authn, middleware.OwnerOrAdmin("userId"), c.MarkAllRead)
}

type listParams struct {
	ctxutil.PageParams
	UserID string `form:"userId"`
	Type   string `form:"type" binding:"omitempty,notification_type"`
	Unread bool   `form:"unread"`
}

// ListNotifications 普通用户只能看到发给自己的通知
// GET /api/v1/notifications
func (c *Controller) ListNotifications(ctx *gin.Context) {
	var params listParams
	if err := ctx.ShouldBindQuery(&params); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	userID := params.UserID
	if principal, _ := ctxutil.PrincipalFrom(ctx); !principal.IsAdmin() {
		userID = principal.UserID
	}

	notifications, total, page, err := c.notificationService.List(ctx.Request.Context(), notificationapp.ListQuery{
		UserID:    userID,
		Type:      params.Type,
		Unread:    params.Unread,
		SortBy:    params.SortBy,
		SortOrder: params.SortOrder,
		Page:      params.Page,
		Limit:     params.Limit,
	})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, notifications, response.NewPagination(page, total), "notifications retrieved successfully")
}

// load 读取通知并校验归属；广播通知只有管理员可访问
func (c *Controller) load(ctx *gin.Context) (*notificationapp.Response, bool) {
	n, err := c.notificationService.Get(ctx.Request.Context(), ctx.Param("notificationId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return nil, false
	}
	owner := ""
	if n.UserID != nil {
		owner = *n.UserID
	}
	if !ctxutil.CanAccess(ctx, owner) {
		response.HandleAppError(ctx, errors.Forbidden("You can only access your own notifications"))
		return nil, false
	}
	return n, true
}

// GetNotification
// GET /api/v1/notifications/:notificationId
func (c *Controller) GetNotification(ctx *gin.Context) {
	n, ok := c.load(ctx)
	if !ok {
		return
	}
	response.HandleSuccess(ctx, n, "notification retrieved successfully")
}

// MarkRead 幂等
// POST /api/v1/notifications/:notificationId/read
func (c *Controller) MarkRead(ctx *gin.Context) {
	if _, ok := c.load(ctx); !ok {
		return
	}

	n, err := c.notificationService.MarkRead(ctx.Request.Context(), ctx.Param("notificationId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, n, "notification marked as read")
}

// CreateNotification userId 为空表示广播
// POST /api/v1/notifications
func (c *Controller) CreateNotification(ctx *gin.Context) {
	var req notificationapp.CreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	n, err := c.notificationService.Create(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, n, "notification created successfully")
}

// UpdateNotification
// PATCH /api/v1/notifications/:notificationId
func (c *Controller) UpdateNotification(ctx *gin.Context) {
	var req notificationapp.UpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	n, err := c.notificationService.Update(ctx.Request.Context(), ctx.Param("notificationId"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, n, "notification updated successfully")
}

// DeleteNotification
// DELETE /api/v1/notifications/:notificationId
func (c *Controller) DeleteNotification(ctx *gin.Context) {
	if err := c.notificationService.Delete(ctx.Request.Context(), ctx.Param("notificationId")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "notification deleted successfully")
}

// MarkAllRead 把用户自己的未读通知全部标记为已读
// PATCH /api/v1/users/:userId/notifications/read-all
func (c *Controller) MarkAllRead(ctx *gin.Context) {
	result, err := c.notificationService.MarkAllRead(ctx.Request.Context(), ctx.Param("userId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, result, result.Message)
}
