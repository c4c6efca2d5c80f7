package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"lost-and-found/internal/cache"
	"lost-and-found/internal/config"
	"lost-and-found/internal/delivery/http/handler"
	"lost-and-found/internal/infrastructure/database/postgres"
	"lost-and-found/internal/logger"
	"lost-and-found/internal/mailer"
	"lost-and-found/internal/metrics"
	"lost-and-found/internal/middleware"
	"lost-and-found/internal/routes"
	"lost-and-found/internal/storage"
	authUsecase "lost-and-found/internal/usecase/auth"
	dashboardUsecase "lost-and-found/internal/usecase/dashboard"
	reportUsecase "lost-and-found/internal/usecase/report"
	userUsecase "lost-and-found/internal/usecase/user"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(cfg.Server.Environment, cfg.Server.LogLevel); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	logger.Info("Starting application",
		zap.String("environment", cfg.Server.Environment),
		zap.String("storage_driver", cfg.Storage.Driver),
	)

	if cfg.Database.MigrateOnStart {
		if err := postgres.RunMigrations(cfg.Database.URL()); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	db, err := postgres.NewDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	images, uploadsDir, err := newImageStore(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to initialize image storage", zap.Error(err))
	}

	redisClient := cache.NewRedisClient(cfg.Redis)
	if redisClient != nil {
		defer redisClient.Close()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	userRepo := postgres.NewUserRepository(db)
	tokenRepo := postgres.NewTokenRepository(db)
	otpRepo := postgres.NewOTPRepository(db)
	reportStore := postgres.NewReportStore(db)

	tokens := authUsecase.NewTokenIssuer(tokenRepo, cfg.JWT)
	authService := authUsecase.NewService(userRepo, otpRepo, tokens, mailer.New(cfg.SMTP), cfg).
		WithRecorder(collector)
	userService := userUsecase.NewService(userRepo, tokens)

	reconciler := reportUsecase.NewReconciler(reportStore).WithRecorder(collector)
	lostService := reportUsecase.NewLostService(reportStore, reconciler, images, cfg.Storage.MaxUploadBytes)
	foundService := reportUsecase.NewFoundService(reportStore, reconciler, images, cfg.Storage.MaxUploadBytes)
	dashboardService := dashboardUsecase.NewService(reportStore, userRepo,
		cache.New(redisClient, "lostfound:"), cfg.Redis.DashboardTTL)

	// A typed nil provider must not reach the handler as a non-nil interface.
	var oauth authUsecase.OAuthProvider
	if google := authUsecase.NewGoogleProvider(cfg.Google); google != nil {
		oauth = google
	}

	generalLimiter := middleware.NewRateLimiter(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst)
	authLimiter := middleware.NewRateLimiter(cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst)
	go generalLimiter.RunSweeper(ctx, 10*time.Minute)
	go authLimiter.RunSweeper(ctx, 10*time.Minute)

	if cfg.Cleanup.Interval > 0 {
		go authUsecase.NewCleaner(tokenRepo, otpRepo).Start(ctx, cfg.Cleanup.Interval)
	}

	router := routes.SetupRoutes(routes.Options{
		Config:         cfg,
		Verifier:       tokens,
		Health:         db.Health,
		Metrics:        collector,
		MetricsHandler: metrics.Handler(registry),
		GeneralLimiter: generalLimiter,
		AuthLimiter:    authLimiter,
		UploadsDir:     uploadsDir,
	}, routes.Handlers{
		Auth:      handler.NewAuthHandler(authService, userService, oauth, cfg),
		Users:     handler.NewUserHandler(userService),
		Lost:      handler.NewLostHandler(lostService, cfg.Storage.MaxUploadBytes),
		Found:     handler.NewFoundHandler(foundService, cfg.Storage.MaxUploadBytes),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	})

	host := cfg.Server.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	addr := net.JoinHostPort(host, port)

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("address", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	stop()

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("Server exited properly")
}

// newImageStore returns the configured image store and, for the local
// driver, the directory to serve uploads from.
func newImageStore(ctx context.Context, cfg config.StorageConfig) (storage.ImageStore, string, error) {
	if cfg.Driver == "s3" {
		client, err := storage.NewS3Client(ctx, cfg.S3Region, cfg.S3Endpoint)
		if err != nil {
			return nil, "", err
		}
		baseURL := cfg.PublicBaseURL
		if !strings.HasPrefix(baseURL, "http") {
			baseURL = storage.PublicBaseURL(cfg.S3Bucket, cfg.S3Region, cfg.S3Endpoint)
		}
		return storage.NewS3Store(client, cfg.S3Bucket, cfg.S3Prefix, baseURL), "", nil
	}

	local := storage.NewLocalStore(afero.NewOsFs(), cfg.LocalDir, cfg.PublicBaseURL)
	return local, local.Dir(), nil
}
