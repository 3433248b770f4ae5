package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	accountHttp "github.com/cargorental/admin-dashboard/internal/account/http"
	authHttp "github.com/cargorental/admin-dashboard/internal/auth/http"
	bookingHttp "github.com/cargorental/admin-dashboard/internal/booking/http"
	complaintHttp "github.com/cargorental/admin-dashboard/internal/complaint/http"
	dashboardHttp "github.com/cargorental/admin-dashboard/internal/dashboard/http"
	liveHttp "github.com/cargorental/admin-dashboard/internal/live/http"
	"github.com/cargorental/admin-dashboard/internal/logger"
	mediaHttp "github.com/cargorental/admin-dashboard/internal/media/http"
	ownerHttp "github.com/cargorental/admin-dashboard/internal/owner/http"
	"github.com/cargorental/admin-dashboard/internal/pages"
	userHttp "github.com/cargorental/admin-dashboard/internal/user/http"
	vehicleHttp "github.com/cargorental/admin-dashboard/internal/vehicle/http"
)

// HealthCheck reports whether one dependency is usable.
type HealthCheck func(ctx context.Context) error

const healthTimeout = 2 * time.Second

// Config holds everything the router needs: settings, middleware and one
// handler per module.
type Config struct {
	IsProduction bool
	ProdOrigins  []string
	Logger       *zap.Logger

	// AuthMiddleware guards every private route.
	AuthMiddleware gin.HandlerFunc
	HealthChecks   map[string]HealthCheck

	Pages     *pages.Handler
	Auth      *authHttp.AuthHandler
	Account   *accountHttp.Handler
	Dashboard *dashboardHttp.Handler
	Owner     *ownerHttp.Handler
	Vehicle   *vehicleHttp.Handler
	User      *userHttp.UserHandler
	Booking   *bookingHttp.Handler
	Complaint *complaintHttp.Handler
	Media     *mediaHttp.MediaHandler
	Live      *liveHttp.LiveHandler
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - Logger: one structured line per request, tagged with a request id.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(logger.Middleware(cfg.Logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))

	r.GET("/healthz", healthz(cfg.HealthChecks))

	// Public pages and the unauthenticated JSON endpoints.
	pages.RegisterRoutes(r, cfg.Pages)
	root := r.Group("")
	authHttp.RegisterRoutes(root, cfg.Auth)
	accountHttp.RegisterRoutes(root, cfg.Account)

	// Private routes. Each module attaches the session middleware itself.
	authMiddleware := cfg.AuthMiddleware
	dashboardHttp.RegisterRoutes(root, cfg.Dashboard, authMiddleware)
	ownerHttp.RegisterRoutes(root, cfg.Owner, authMiddleware)
	vehicleHttp.RegisterRoutes(root, cfg.Vehicle, authMiddleware)
	userHttp.RegisterRoutes(root, cfg.User, authMiddleware)
	bookingHttp.RegisterRoutes(root, cfg.Booking, authMiddleware)
	complaintHttp.RegisterRoutes(root, cfg.Complaint, authMiddleware)
	mediaHttp.RegisterRoutes(root, cfg.Media, authMiddleware)
	liveHttp.RegisterRoutes(root, cfg.Live, authMiddleware)

	return r
}

func corsConfig(cfg Config) cors.Config {
	config := cors.DefaultConfig()
	if cfg.IsProduction {
		config.AllowOrigins = cfg.ProdOrigins
	} else {
		config.AllowOrigins = []string{
			"http://localhost:5173", // Vite dev server
			"http://localhost:8081",
		}
	}
	if len(config.AllowOrigins) == 0 {
		// cors.New panics without any origin; fall back to same-origin only.
		config.AllowOrigins = []string{"http://localhost"}
	}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", logger.RequestIDHeader}
	config.ExposeHeaders = []string{"Content-Disposition", logger.RequestIDHeader}
	config.AllowCredentials = true
	return config
}

func healthz(checks map[string]HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				results[name] = err.Error()
				continue
			}
			results[name] = "ok"
		}

		state := "ok"
		if status != http.StatusOK {
			state = "degraded"
		}
		c.JSON(status, gin.H{"status": state, "checks": results})
	}
}
