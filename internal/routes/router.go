package routes

import (
	"context"
	"net/http"
	"strings"

	"lost-and-found/internal/config"
	"lost-and-found/internal/delivery/http/handler"
	"lost-and-found/internal/logger"
	"lost-and-found/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
	Lost      *handler.LostHandler
	Found     *handler.FoundHandler
	Dashboard *handler.DashboardHandler
}

// Options carries the infrastructure the router needs besides handlers.
type Options struct {
	Config         *config.Config
	Verifier       middleware.AccessVerifier
	Health         func(ctx context.Context) error
	Metrics        middleware.HTTPRecorder
	MetricsHandler http.Handler
	GeneralLimiter *middleware.RateLimiter
	AuthLimiter    *middleware.RateLimiter
	// UploadsDir is served at Storage.PublicBaseURL when images live on local disk.
	UploadsDir string
}

func SetupRoutes(opts Options, h Handlers) *gin.Engine {
	cfg := opts.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	// request ID ahead of logging so access logs carry it
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	if opts.Metrics != nil {
		router.Use(middleware.MetricsMiddleware(opts.Metrics))
	}
	router.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	router.Use(middleware.CORSMiddleware(cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(cfg.Server.MaxBodyBytes))
	if opts.GeneralLimiter != nil {
		router.Use(middleware.RateLimitMiddleware(opts.GeneralLimiter))
	}

	router.GET("/health", func(c *gin.Context) {
		if opts.Health != nil {
			if err := opts.Health(c.Request.Context()); err != nil {
				middleware.RequestLogger(c).Error("Health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unhealthy",
					"message": "Database connection failed",
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	if opts.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(opts.MetricsHandler))
	}

	if opts.UploadsDir != "" && strings.HasPrefix(cfg.Storage.PublicBaseURL, "/") {
		router.Static(cfg.Storage.PublicBaseURL, opts.UploadsDir)
	}

	authMW := middleware.AuthMiddleware(opts.Verifier)

	api := router.Group("/api")
	{
		public := api.Group("")
		if opts.AuthLimiter != nil {
			public.Use(middleware.RateLimitMiddleware(opts.AuthLimiter))
		}
		h.Auth.RegisterRoutes(public, authMW)

		protected := api.Group("")
		protected.Use(authMW)
		{
			h.Users.RegisterProfileRoutes(protected)
			h.Lost.RegisterRoutes(protected)
			h.Found.RegisterRoutes(protected)
			h.Dashboard.RegisterRoutes(protected)

			admin := protected.Group("")
			admin.Use(middleware.AdminOnly())
			{
				h.Users.RegisterAdminRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized")
	return router
}
