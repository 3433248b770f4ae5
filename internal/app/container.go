package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/cargorental/admin-dashboard/internal/account"
	accountHttp "github.com/cargorental/admin-dashboard/internal/account/http"
	"github.com/cargorental/admin-dashboard/internal/api"
	"github.com/cargorental/admin-dashboard/internal/audit"
	"github.com/cargorental/admin-dashboard/internal/auth"
	authHttp "github.com/cargorental/admin-dashboard/internal/auth/http"
	"github.com/cargorental/admin-dashboard/internal/backend"
	"github.com/cargorental/admin-dashboard/internal/booking"
	bookingHttp "github.com/cargorental/admin-dashboard/internal/booking/http"
	"github.com/cargorental/admin-dashboard/internal/complaint"
	complaintHttp "github.com/cargorental/admin-dashboard/internal/complaint/http"
	"github.com/cargorental/admin-dashboard/internal/config"
	"github.com/cargorental/admin-dashboard/internal/dashboard"
	dashboardHttp "github.com/cargorental/admin-dashboard/internal/dashboard/http"
	"github.com/cargorental/admin-dashboard/internal/db"
	"github.com/cargorental/admin-dashboard/internal/live"
	liveHttp "github.com/cargorental/admin-dashboard/internal/live/http"
	"github.com/cargorental/admin-dashboard/internal/media"
	mediaHttp "github.com/cargorental/admin-dashboard/internal/media/http"
	"github.com/cargorental/admin-dashboard/internal/owner"
	ownerHttp "github.com/cargorental/admin-dashboard/internal/owner/http"
	"github.com/cargorental/admin-dashboard/internal/pages"
	"github.com/cargorental/admin-dashboard/internal/pkg/format"
	"github.com/cargorental/admin-dashboard/internal/pkg/request"
	"github.com/cargorental/admin-dashboard/internal/pkg/storage"
	"github.com/cargorental/admin-dashboard/internal/querycache"
	"github.com/cargorental/admin-dashboard/internal/session"
	"github.com/cargorental/admin-dashboard/internal/user"
	userHttp "github.com/cargorental/admin-dashboard/internal/user/http"
	"github.com/cargorental/admin-dashboard/internal/vehicle"
	vehicleHttp "github.com/cargorental/admin-dashboard/internal/vehicle/http"
	"github.com/cargorental/admin-dashboard/internal/verdict"
)

const janitorInterval = 10 * time.Minute

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
	Cache  *querycache.Cache
	Hub    *live.Hub

	store     session.Store
	publisher audit.Publisher
	redis     *redis.Client
	pool      *pgxpool.Pool
	logger    *zap.Logger
}

// NewContainer initializes all modules and returns the container. It connects
// to the session store and the audit broker, so it can fail.
func NewContainer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if err := request.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	c := &Container{logger: logger}
	checks := map[string]api.HealthCheck{}

	// Session store
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		c.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := c.redis.Ping(ctx).Err(); err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.store = session.NewRedisStore(c.redis)
		checks["redis"] = func(ctx context.Context) error { return c.redis.Ping(ctx).Err() }
	case config.SessionStorePostgres:
		pool, err := db.NewPool(ctx, cfg.DBDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to db: %w", err)
		}
		c.pool = pool
		if err := db.Migrate(ctx, pool); err != nil {
			c.Close()
			return nil, err
		}
		c.store = session.NewPgxStore(pool)
		checks["postgres"] = pool.Ping
	default:
		c.store = session.NewMemoryStore()
	}

	// Audit
	if cfg.AMQPURL != "" {
		pub, err := audit.DialAMQP(cfg.AMQPURL, cfg.AuditExchange, logger)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.publisher = pub
		checks["rabbitmq"] = pub.Check
	} else {
		c.publisher = audit.NewLogPublisher(logger)
	}

	// Thumbnail store
	thumbs, err := storage.NewLocalStorage(cfg.MediaCacheDir)
	if err != nil {
		c.Close()
		return nil, err
	}

	// Init Components
	factory := backend.NewFactory(cfg.BackendBaseURL, cfg.BackendTimeout, logger)
	manager := session.NewManager(c.store, cfg.SessionSecret, cfg.SessionTTL)
	c.Cache = querycache.New(querycache.Options{StaleTime: cfg.QueryStaleTime, GCTime: cfg.QueryGCTime}, logger)
	c.Hub = live.NewHub(c.Cache, logger)
	workflow := verdict.NewWorkflow(c.Cache, c.publisher, logger)
	view := format.View{Location: cfg.Location, MediaEndpoint: cfg.SpacesEndpoint}

	// Modules
	authService := auth.NewService(factory, manager, logger)
	accountService := account.NewService(factory, logger)
	dashboardService := dashboard.NewService(c.Cache)
	ownerService := owner.NewService(owner.NewAPIRepository(), c.Cache, workflow)
	vehicleService := vehicle.NewService(vehicle.NewAPIRepository(), c.Cache, workflow)
	userService := user.NewService(user.NewAPIRepository(), c.Cache)
	bookingService := booking.NewService(booking.NewAPIRepository(), c.Cache)
	complaintService := complaint.NewService(complaint.NewAPIRepository(), c.Cache)
	mediaService := media.NewService(cfg.SpacesEndpoint, thumbs, logger)

	pagesHandler, err := pages.NewHandler(manager)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	// API Router Config
	routerParams := api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.Origins(),
		Logger:         logger,
		AuthMiddleware: session.RequireSession(manager, factory),
		HealthChecks:   checks,
		Pages:          pagesHandler,
		Auth:           authHttp.NewAuthHandler(authService, manager, cfg.IsProduction),
		Account:        accountHttp.NewHandler(accountService),
		Dashboard:      dashboardHttp.NewHandler(dashboardService, view),
		Owner:          ownerHttp.NewHandler(ownerService, view),
		Vehicle:        vehicleHttp.NewHandler(vehicleService, view),
		User:           userHttp.NewHandler(userService, view),
		Booking:        bookingHttp.NewHandler(bookingService, view),
		Complaint:      complaintHttp.NewHandler(complaintService, view),
		Media:          mediaHttp.NewMediaHandler(mediaService),
		Live:           liveHttp.NewLiveHandler(c.Hub, cfg.Origins(), logger),
	}

	// Router
	c.Router = api.NewRouter(routerParams)

	return c, nil
}

// Run starts the background loops: cache sweeping, live fan-out and session
// purging. They stop when ctx is done.
func (c *Container) Run(ctx context.Context) {
	go c.Cache.Run(ctx)
	go c.Hub.Run(ctx)
	go session.RunJanitor(ctx, c.store, janitorInterval, c.logger)
}

// Close releases connections held by the container.
func (c *Container) Close() {
	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil {
			c.logger.Warn("failed to close audit publisher", zap.Error(err))
		}
	}
	if c.redis != nil {
		_ = c.redis.Close()
	}
	if c.pool != nil {
		c.pool.Close()
	}
}
