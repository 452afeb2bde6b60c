package api

import (
	"strings"

	"restaurant/api/auth"
	"restaurant/api/booking"
	"restaurant/api/cart"
	"restaurant/api/catalog"
	"restaurant/api/contact"
	"restaurant/api/health"
	"restaurant/api/middleware"
	"restaurant/api/notification"
	"restaurant/api/order"
	"restaurant/api/user"
	"restaurant/config"
	"restaurant/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Controllers 所有资源控制器
type Controllers struct {
	Health       *health.Controller
	Auth         *auth.Controller
	User         *user.Controller
	Cart         *cart.Controller
	Order        *order.Controller
	Booking      *booking.Controller
	Notification *notification.Controller
	Catalog      *catalog.Controller
	Contact      *contact.Controller
}

// Router Route configuration
type Router struct {
	engine      *gin.Engine
	config      *config.Config
	controllers Controllers
	authn       gin.HandlerFunc
	metrics     *metrics.ServerMetrics
}

// NewRouter metrics 为 nil 时不暴露 /metrics
func NewRouter(
	cfg *config.Config,
	controllers Controllers,
	tokens middleware.TokenParser,
	m *metrics.ServerMetrics,
) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// 顺序有意义：请求 ID 最先生成
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	if m != nil {
		engine.Use(middleware.MetricsMiddleware(m))
	}
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit))

	return &Router{
		engine:      engine,
		config:      cfg,
		controllers: controllers,
		authn:       middleware.Auth(tokens),
		metrics:     m,
	}
}

// SetupRoutes Set up all routes
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	{
		r.controllers.Health.RegisterRoutes(apiGroup)
		r.controllers.Auth.RegisterRoutes(apiGroup)
		r.controllers.User.RegisterRoutes(apiGroup, r.authn)
		r.controllers.Cart.RegisterRoutes(apiGroup, r.authn)
		r.controllers.Order.RegisterRoutes(apiGroup, r.authn)
		r.controllers.Booking.RegisterRoutes(apiGroup, r.authn)
		r.controllers.Notification.RegisterRoutes(apiGroup, r.authn)
		r.controllers.Catalog.RegisterRoutes(apiGroup, r.authn)
		r.controllers.Contact.RegisterRoutes(apiGroup, r.authn)
	}

	// 上传文件由本服务直接提供
	if base := r.config.Storage.PublicBaseURL; strings.HasPrefix(base, "/") {
		r.engine.Static(base, r.config.Storage.UploadDir)
	}

	if r.metrics != nil {
		r.engine.GET(r.config.Metrics.Path, gin.WrapH(r.metrics.Handler()))
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

// GetEngine Get Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
