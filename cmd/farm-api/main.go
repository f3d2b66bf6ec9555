package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/farm-register-api/api/swagger"
	"github.com/noah-isme/farm-register-api/internal/handler"
	"github.com/noah-isme/farm-register-api/internal/repository"
	"github.com/noah-isme/farm-register-api/internal/router"
	"github.com/noah-isme/farm-register-api/internal/service"
	"github.com/noah-isme/farm-register-api/pkg/cache"
	"github.com/noah-isme/farm-register-api/pkg/config"
	"github.com/noah-isme/farm-register-api/pkg/database"
	"github.com/noah-isme/farm-register-api/pkg/logger"
)

// @title Farm Register API
// @version 1.0.0
// @description Labour forecast approvals, approved CSV issuance and farm registers
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	validate := service.NewValidator()
	metrics := service.NewMetricsService()

	userRepo := repository.NewUserRepository(db)
	forecastRepo := repository.NewForecastRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	artifactRepo := repository.NewArtifactRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Forecasts.CacheTTL, logr, redisClient != nil)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	userSvc := service.NewUserService(userRepo, validate, logr)
	forecastSvc := service.NewForecastService(forecastRepo, userRepo, notificationRepo, cacheSvc, metrics, validate, logr, service.ForecastConfig{
		CacheTTL: cfg.Forecasts.CacheTTL,
	})
	approvalSvc := service.NewApprovalService(forecastRepo, artifactRepo, notificationRepo, cacheSvc, metrics, logr)
	artifactSvc := service.NewArtifactService(artifactRepo)
	notificationSvc := service.NewNotificationService(notificationRepo)
	memberSvc := service.NewMemberService(memberRepo, validate)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, validate)

	if cfg.Bootstrap.AdminEmail != "" {
		created, err := userSvc.EnsureBootstrapAdmin(ctx, service.BootstrapAdmin{
			Email:    cfg.Bootstrap.AdminEmail,
			Password: cfg.Bootstrap.AdminPassword,
			FullName: cfg.Bootstrap.AdminName,
		})
		if err != nil {
			logr.Fatal("failed to bootstrap admin", zap.Error(err))
		}
		if created {
			logr.Info("bootstrap admin created", zap.String("email", cfg.Bootstrap.AdminEmail))
		}
	}

	r := router.New(router.Dependencies{
		Config:   cfg,
		Logger:   logr,
		Tokens:   authSvc,
		Observer: metrics,
	}, router.Handlers{
		Auth:          handler.NewAuthHandler(authSvc),
		Users:         handler.NewUserHandler(userSvc),
		Forecasts:     handler.NewForecastHandler(forecastSvc, approvalSvc),
		Artifacts:     handler.NewArtifactHandler(artifactSvc),
		Notifications: handler.NewNotificationHandler(notificationSvc),
		Registers:     handler.NewRegisterHandler(memberSvc, attendanceSvc),
		Metrics:       handler.NewMetricsHandler(metrics, db),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
