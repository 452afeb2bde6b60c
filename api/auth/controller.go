// Package auth 注册、登录、邮箱验证与重置密码
package auth

import (
	"net/http"

	"restaurant/api/response"
	userapp "restaurant/application/user"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	authService *userapp.AuthService
}

func NewController(authService *userapp.AuthService) *Controller {
	return &Controller{authService: authService}
}

// RegisterRoutes 全部公开
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", c.Register)
		authGroup.POST("/login", c.Login)
		authGroup.POST("/verify-email", c.VerifyEmail)
		authGroup.POST("/forgot-password", c.ForgotPassword)
		authGroup.POST("/reset-password", c.ResetPassword)
	}
}

// Register
// POST /api/v1/auth/register
func (c *Controller) Register(ctx *gin.Context) {
	var req userapp.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	user, err := c.authService.Register(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, user, "registration successful, check your email for the verification code")
}

// Login 返回访问令牌以及购物车、收藏夹
// POST /api/v1/auth/login
func (c *Controller) Login(ctx *gin.Context) {
	var req userapp.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	result, err := c.authService.Login(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, result, "login successful")
}

// VerifyEmail
// POST /api/v1/auth/verify-email
func (c *Controller) VerifyEmail(ctx *gin.Context) {
	var req userapp.VerifyEmailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "code required", http.StatusBadRequest)
		return
	}

	if err := c.authService.VerifyEmail(ctx.Request.Context(), req.Code); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "account verified")
}

// ForgotPassword 不暴露邮箱是否注册
// POST /api/v1/auth/forgot-password
func (c *Controller) ForgotPassword(ctx *gin.Context) {
	var req userapp.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "email required", http.StatusBadRequest)
		return
	}

	if err := c.authService.ForgotPassword(ctx.Request.Context(), req.Email); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "email sent")
}

// ResetPassword
// POST /api/v1/auth/reset-password
func (c *Controller) ResetPassword(ctx *gin.Context) {
	var req userapp.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	if err := c.authService.ResetPassword(ctx.Request.Context(), req); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "password reset successful")
}
