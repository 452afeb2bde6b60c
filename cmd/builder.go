package cmd

import (
	"context"
	"fmt"
	"net/http"

	"restaurant/api"
	apiauth "restaurant/api/auth"
	apibooking "restaurant/api/booking"
	apicart "restaurant/api/cart"
	apicatalog "restaurant/api/catalog"
	apicontact "restaurant/api/contact"
	"restaurant/api/health"
	"restaurant/api/middleware"
	apinotification "restaurant/api/notification"
	apiorder "restaurant/api/order"
	apiuser "restaurant/api/user"
	"restaurant/api/validation"
	bookingapp "restaurant/application/booking"
	catalogapp "restaurant/application/catalog"
	contactapp "restaurant/application/contact"
	notificationapp "restaurant/application/notification"
	orderapp "restaurant/application/order"
	userapp "restaurant/application/user"
	"restaurant/config"
	"restaurant/domain/booking"
	"restaurant/domain/catalog"
	"restaurant/domain/contact"
	"restaurant/domain/notification"
	"restaurant/domain/order"
	"restaurant/domain/shared"
	"restaurant/domain/user"
	"restaurant/infrastructure/auth"
	"restaurant/infrastructure/cache"
	"restaurant/infrastructure/mail"
	"restaurant/infrastructure/persistence/mocks"
	"restaurant/infrastructure/persistence/mysql"
	"restaurant/infrastructure/persistence/retry"
	"restaurant/infrastructure/storage"
	"restaurant/pkg/logger"
	"restaurant/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repositories 仓储集合：MySQL 或内存实现
type Repositories struct {
	Users         user.Repository
	Orders        order.Repository
	Lines         order.LineRepository
	Products      catalog.ProductRepository
	Categories    catalog.CategoryRepository
	Bookings      booking.Repository
	Notifications notification.Repository
	Contacts      contact.Repository
	UnitOfWork    shared.UnitOfWorkFactory
}

// NewMemoryRepositories 进程内实现，用于开发和测试
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Users:         mocks.NewMockUserRepository(),
		Orders:        mocks.NewMockOrderRepository(),
		Lines:         mocks.NewMockLineRepository(),
		Products:      mocks.NewMockProductRepository(),
		Categories:    mocks.NewMockCategoryRepository(),
		Bookings:      mocks.NewMockBookingRepository(),
		Notifications: mocks.NewMockNotificationRepository(),
		Contacts:      mocks.NewMockContactRepository(),
		UnitOfWork:    mocks.NewMockUnitOfWorkFactory(),
	}
}

// NewMySQLRepositories GORM 实现，共享同一个连接池
func NewMySQLRepositories(db *gorm.DB, cfg *config.Config) *Repositories {
	return &Repositories{
		Users:         mysql.NewUserRepository(db),
		Orders:        mysql.NewOrderRepository(db),
		Lines:         mysql.NewLineRepository(db),
		Products:      mysql.NewProductRepository(db),
		Categories:    mysql.NewCategoryRepository(db),
		Bookings:      mysql.NewBookingRepository(db),
		Notifications: mysql.NewNotificationRepository(db),
		Contacts:      mysql.NewContactRepository(db),
		UnitOfWork:    mysql.NewUnitOfWorkFactory(db, retry.FromAppConfig(cfg)),
	}
}

// AppBuilder builds an App with customizable components
type AppBuilder struct {
	cfg      *config.Config
	repos    *Repositories
	store    cache.Store
	registry prometheus.Registerer
	skipLog  bool
}

// NewBuilder creates a new AppBuilder
func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{cfg: cfg}
}

// WithRepositories 跳过数据库初始化，直接使用给定仓储
func (b *AppBuilder) WithRepositories(repos *Repositories) *AppBuilder {
	b.repos = repos
	return b
}

// WithStore 跳过 Redis 初始化
func (b *AppBuilder) WithStore(store cache.Store) *AppBuilder {
	b.store = store
	return b
}

// WithMetricsRegistry 测试中使用独立注册表，避免重复注册
func (b *AppBuilder) WithMetricsRegistry(reg prometheus.Registerer) *AppBuilder {
	b.registry = reg
	return b
}

// WithoutLoggerInit 保留调用方已经替换的全局 logger
func (b *AppBuilder) WithoutLoggerInit() *AppBuilder {
	b.skipLog = true
	return b
}

// Build creates the App instance
func (b *AppBuilder) Build(ctx context.Context) (*App, error) {
	if !b.skipLog {
		if err := logger.Init(&b.cfg.Log, b.cfg.App.Env); err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env))

	if err := validation.Register(); err != nil {
		return nil, err
	}

	app := &App{config: b.cfg}
	var probes []health.Probe

	repos := b.repos
	if repos == nil {
		if b.cfg.UsesMySQL() {
			db, err := b.initDatabase()
			if err != nil {
				return nil, err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return nil, err
			}
			app.closers = append(app.closers, sqlDB.Close)
			probes = append(probes, health.Probe{Name: "database", Ping: sqlDB.PingContext})
			repos = NewMySQLRepositories(db, b.cfg)
		} else {
			logger.Info("Using in-memory persistence layer")
			repos = NewMemoryRepositories()
		}
	}

	store := b.store
	if store == nil {
		if b.cfg.Redis.Enabled {
			client, err := cache.NewRedisClient(ctx, b.cfg.Redis)
			if err != nil {
				app.Close()
				return nil, err
			}
			app.closers = append(app.closers, client.Close)
			probes = append(probes, health.Probe{
				Name: "redis",
				Ping: func(ctx context.Context) error { return client.Ping(ctx).Err() },
			})
			store = cache.NewRedisStore(client)
			logger.Info("Using Redis cache", zap.String("addr", b.cfg.Redis.Addr))
		} else {
			store = cache.NewMemoryStore()
		}
	}

	transitions, err := order.TransitionsFor(b.cfg.Order.TransitionPolicy)
	if err != nil {
		app.Close()
		return nil, err
	}

	var serverMetrics *metrics.ServerMetrics
	if b.cfg.Metrics.Enabled {
		serverMetrics = metrics.NewServerMetrics(b.cfg.Metrics.Namespace, b.registry)
	}

	tokens := auth.NewTokenManager(b.cfg.Auth.JWTSecret, b.cfg.Auth.JWTTTL, b.cfg.Auth.Issuer)
	controllers := b.buildControllers(repos, store, tokens, transitions, serverMetrics, probes)

	router := api.NewRouter(b.cfg, controllers, tokens, serverMetrics)
	router.SetupRoutes()

	app.router = router
	app.server = &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}
	return app, nil
}

func (b *AppBuilder) buildControllers(
	repos *Repositories,
	store cache.Store,
	tokens *auth.TokenManager,
	transitions order.Transitions,
	serverMetrics *metrics.ServerMetrics,
	probes []health.Probe,
) api.Controllers {
	cfg := b.cfg
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	images := storage.NewLocalStorage(cfg.Storage)

	notificationService := notificationapp.NewApplicationService(repos.Notifications)
	sink := notificationapp.NewSinkAdapter(notificationService)

	orderDeps := orderapp.Dependencies{
		Orders:     repos.Orders,
		Lines:      repos.Lines,
		Users:      repos.Users,
		Products:   repos.Products,
		Categories: repos.Categories,
		UnitOfWork: repos.UnitOfWork,
		Sink:       sink,
	}

	authService := userapp.NewAuthService(userapp.AuthDependencies{
		Users:      repos.Users,
		Orders:     repos.Orders,
		Lines:      repos.Lines,
		Hasher:     hasher,
		Tokens:     tokens,
		OneTime:    cache.NewTokenStore(store, cfg.Redis.TokenTTL),
		Mailer:     mail.NewLoggingMailer(),
		UnitOfWork: repos.UnitOfWork,
		BaseURL:    cfg.App.BaseURL,
	})

	cacheFactory := func(key middleware.CacheKeyFunc) gin.HandlerFunc {
		return middleware.ResponseCache(store, cfg.Redis.CacheTTL, key, serverMetrics)
	}

	return api.Controllers{
		Health: health.NewController(cfg, probes...),
		Auth:   apiauth.NewController(authService),
		User: apiuser.NewController(
			userapp.NewApplicationService(repos.Users, hasher, repos.UnitOfWork, images),
			images.MaxBytes(),
		),
		Cart: apicart.NewController(
			orderapp.NewCartService(orderDeps),
			orderapp.NewFavouritesService(orderDeps),
		),
		Order: apiorder.NewController(orderapp.NewApplicationService(orderDeps, transitions)),
		Booking: apibooking.NewController(
			bookingapp.NewApplicationService(repos.Bookings, repos.Users, repos.UnitOfWork, sink),
		),
		Notification: apinotification.NewController(notificationService),
		Catalog: apicatalog.NewController(
			catalogapp.NewApplicationService(repos.Products, repos.Categories, store, images),
			images.MaxBytes(),
			cacheFactory,
		),
		Contact: apicontact.NewController(contactapp.NewApplicationService(repos.Contacts)),
	}
}

func (b *AppBuilder) initDatabase() (*gorm.DB, error) {
	logger.Info("Using MySQL/GORM persistence layer")

	db, err := NewMySQLConfig(b.cfg).Connect()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	if b.cfg.Database.AutoMigrate {
		if err := mysql.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to auto migrate: %w", err)
		}
	}

	logger.Info("Connected to MySQL successfully")
	return db, nil
}
