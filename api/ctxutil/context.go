package ctxutil

import (
	"context"

	"restaurant/api/response"
	"restaurant/infrastructure/auth"
	"restaurant/infrastructure/persistence"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

func WithRequestID(ctx *gin.Context) context.Context {
	requestID := response.GetRequestID(ctx)
	return persistence.ContextWithRequestID(ctx.Request.Context(), requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	return persistence.RequestIDFromContext(ctx)
}

// SetPrincipal 由认证中间件写入
func SetPrincipal(c *gin.Context, p auth.Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom 未认证时返回 false
func PrincipalFrom(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}

// CanAccess 管理员或资源所有者
func CanAccess(c *gin.Context, ownerID string) bool {
	p, ok := PrincipalFrom(c)
	if !ok {
		return false
	}
	return p.IsAdmin() || (ownerID != "" && p.UserID == ownerID)
}

// IsAdmin 当前调用方是否为管理员
func IsAdmin(c *gin.Context) bool {
	p, ok := PrincipalFrom(c)
	return ok && p.IsAdmin()
}
