package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/farm-register-api/internal/handler"
	"github.com/noah-isme/farm-register-api/internal/middleware"
	"github.com/noah-isme/farm-register-api/internal/models"
	"github.com/noah-isme/farm-register-api/pkg/config"
	"github.com/noah-isme/farm-register-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/farm-register-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/farm-register-api/pkg/middleware/requestid"
)

// Handlers groups every HTTP handler mounted by the router.
type Handlers struct {
	Auth          *handler.AuthHandler
	Users         *handler.UserHandler
	Forecasts     *handler.ForecastHandler
	Artifacts     *handler.ArtifactHandler
	Notifications *handler.NotificationHandler
	Registers     *handler.RegisterHandler
	Metrics       *handler.MetricsHandler
}

// Dependencies carries the cross-cutting collaborators used by middleware.
type Dependencies struct {
	Config   *config.Config
	Logger   *zap.Logger
	Tokens   middleware.TokenValidator
	Observer middleware.HTTPObserver
}

// New builds the gin engine with ops endpoints and the versioned API group.
func New(deps Dependencies, h Handlers) *gin.Engine {
	cfg := deps.Config
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if cfg.Metrics.Enabled && deps.Observer != nil {
		r.Use(middleware.Metrics(deps.Observer))
	}

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", h.Metrics.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", h.Auth.Login)

	secured := api.Group("")
	secured.Use(middleware.JWT(deps.Tokens))
	{
		secured.GET("/auth/me", h.Auth.Me)

		secured.POST("/forecasts", h.Forecasts.Submit)
		secured.GET("/forecasts", h.Forecasts.List)
		secured.GET("/forecasts/export", h.Forecasts.Export)

		secured.GET("/notifications", h.Notifications.List)
		secured.PUT("/notifications/mark-read", h.Notifications.MarkAllRead)

		secured.GET("/members", h.Registers.ListMembers)
		secured.POST("/members", h.Registers.CreateMember)

		secured.GET("/attendance", h.Registers.ListAttendance)
		secured.GET("/attendance/filter", h.Registers.FilterAttendance)
		secured.POST("/attendance", h.Registers.CreateAttendance)
		secured.POST("/attendance/bulk", h.Registers.BulkAttendance)
		secured.DELETE("/attendance/:id", h.Registers.DeleteAttendance)
	}

	admin := secured.Group("")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/users", h.Users.List)
		admin.POST("/users", h.Users.Create)

		admin.PUT("/forecasts/:id/approve", h.Forecasts.Approve)
		admin.PUT("/forecasts/:id/decline", h.Forecasts.Decline)
		admin.PUT("/forecasts/:id", h.Forecasts.Update)
		admin.DELETE("/forecasts/:id", h.Forecasts.Delete)

		admin.GET("/approved-artifacts", h.Artifacts.List)
		admin.GET("/approved-artifacts/:id/download", h.Artifacts.Download)
	}

	return r
}
