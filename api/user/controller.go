package user

import (
	"net/http"

	"restaurant/api/ctxutil"
	"restaurant/api/middleware"
	"restaurant/api/response"
	userapp "restaurant/application/user"
	"restaurant/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller User controller
type Controller struct {
	userService *userapp.ApplicationService
	maxUpload   int64
}

func NewController(userService *userapp.ApplicationService, maxUpload int64) *Controller {
	return &Controller{
		userService: userService,
		maxUpload:   maxUpload,
	}
}

// RegisterRoutes 列表仅管理员，其余仅本人或管理员
func (c *Controller) RegisterRoutes(router *gin.RouterGroup, authn gin.HandlerFunc) {
	router.GET("/users", authn, middleware.RequireAdmin(), c.ListUsers)

	userGroup := router.Group("/users/:userId", authn, middleware.OwnerOrAdmin("userId"))
	{
		userGroup.GET("", c.GetUser)
		userGroup.PATCH("", c.UpdateUser)
		userGroup.DELETE("", c.DeleteUser)
		userGroup.POST("/upload", c.UploadImage)
	}
}

type listParams struct {
	ctxutil.PageParams
	Role   string `form:"role" binding:"omitempty,oneof=user admin"`
	Email  string `form:"email"`
	Search string `form:"search"`
}

// ListUsers Get users
// GET /api/v1/users
func (c *Controller) ListUsers(ctx *gin.Context) {
	var params listParams
	if err := ctx.ShouldBindQuery(&params); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	users, total, page, err := c.userService.List(ctx.Request.Context(), userapp.ListQuery{
		Role:      params.Role,
		Email:     params.Email,
		Search:    params.Search,
		SortBy:    params.SortBy,
		SortOrder: params.SortOrder,
		Page:      params.Page,
		Limit:     params.Limit,
	})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, users, response.NewPagination(page, total), "users retrieved successfully")
}

// GetUser Get user information
// GET /api/v1/users/:userId
func (c *Controller) GetUser(ctx *gin.Context) {
	user, err := c.userService.Get(ctx.Request.Context(), ctx.Param("userId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, user, "user retrieved successfully")
}

// UpdateUser 普通用户不能修改角色
// PATCH /api/v1/users/:userId
func (c *Controller) UpdateUser(ctx *gin.Context) {
	var req userapp.UpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	if req.Role != nil && !ctxutil.IsAdmin(ctx) {
		response.HandleAppError(ctx, errors.Forbidden("Only admins can change roles"))
		return
	}

	user, err := c.userService.Update(ctx.Request.Context(), ctx.Param("userId"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, user, "user updated successfully")
}

// DeleteUser 软删除
// DELETE /api/v1/users/:userId
func (c *Controller) DeleteUser(ctx *gin.Context) {
	if err := c.userService.Delete(ctx.Request.Context(), ctx.Param("userId")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "user deleted successfully")
}

// UploadImage 上传头像，multipart 字段名 image
// POST /api/v1/users/:userId/upload
func (c *Controller) UploadImage(ctx *gin.Context) {
	filename, file, err := ctxutil.OpenUpload(ctx, c.maxUpload)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	defer file.Close()

	user, err := c.userService.UploadImage(ctx.Request.Context(), ctx.Param("userId"), filename, file)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, user, "image uploaded successfully")
}
