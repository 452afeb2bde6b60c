package middleware

import (
	"strings"

	"restaurant/api/ctxutil"
	"restaurant/api/response"
	"restaurant/infrastructure/auth"
	apperrors "restaurant/pkg/errors"

	"github.com/gin-gonic/gin"
)

// TokenParser 校验访问令牌
type TokenParser interface {
	Parse(token string) (auth.Principal, error)
}

// Auth 要求 Authorization: Bearer <token>
func Auth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			response.HandleAppError(c, apperrors.Unauthorized("Unauthorized - missing token"))
			c.Abort()
			return
		}

		principal, err := parser.Parse(strings.TrimSpace(token))
		if err != nil {
			response.HandleAppError(c, apperrors.Wrap(err, apperrors.CodeUnauthorized, "Unauthorized - invalid token"))
			c.Abort()
			return
		}

		ctxutil.SetPrincipal(c, principal)
		c.Next()
	}
}

// RequireAdmin 需在 Auth 之后使用
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ctxutil.IsAdmin(c) {
			response.HandleAppError(c, apperrors.Forbidden("Admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// OwnerOrAdmin 路径参数 param 必须是调用方自己的用户 ID，管理员不受限制
func OwnerOrAdmin(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ctxutil.CanAccess(c, c.Param(param)) {
			response.HandleAppError(c, apperrors.Forbidden("You can only access your own resources"))
			c.Abort()
			return
		}
		c.Next()
	}
}
