package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/roadready/dsm-admin-gateway/api/swagger"
	"github.com/roadready/dsm-admin-gateway/internal/handler"
	"github.com/roadready/dsm-admin-gateway/internal/middleware"
	"github.com/roadready/dsm-admin-gateway/internal/platform"
	"github.com/roadready/dsm-admin-gateway/internal/service"
	"github.com/roadready/dsm-admin-gateway/pkg/cache"
	"github.com/roadready/dsm-admin-gateway/pkg/config"
	"github.com/roadready/dsm-admin-gateway/pkg/logger"
	corsmiddleware "github.com/roadready/dsm-admin-gateway/pkg/middleware/cors"
	reqidmiddleware "github.com/roadready/dsm-admin-gateway/pkg/middleware/requestid"
)

// @title DSM Admin Gateway
// @version 0.1.0
// @description Reschedule wizard gateway for the driving-school management platform
// @BasePath /api/v1
// @schemes http

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

	metrics := service.NewMetricsService()

	var store service.SessionStore
	if cfg.Wizard.Store == config.WizardStoreRedis {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect redis", "error", err)
		}
		defer redisClient.Close() //nolint:errcheck
		store = service.NewRedisSessionStore(redisClient)
	} else {
		store = service.NewMemorySessionStore()
	}

	validate := validator.New()
	platformClient := platform.NewClient(cfg.Platform, logr, platform.WithObserver(metrics))
	wizard := service.NewRescheduleService(platformClient, store, metrics, validate, logr, cfg.Wizard.SessionTTL)
	auth := service.NewAuthService(cfg.JWT.Secret)

	rescheduleHandler := handler.NewRescheduleHandler(wizard, nil)
	if cfg.Export.Enabled {
		rescheduleHandler = handler.NewRescheduleHandler(wizard, service.NewExportService())
	}
	enrollmentHandler := handler.NewEnrollmentHandler(wizard)
	metricsHandler := handler.NewMetricsHandler(metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.Auth(auth))

	api.GET("/enrollments", enrollmentHandler.List)

	wizardRoutes := api.Group("")
	wizardRoutes.Use(middleware.RequireReschedulePermission())
	wizardRoutes.POST("/enrollments/:id/reschedule", rescheduleHandler.Start)
	wizardRoutes.GET("/reschedule-sessions/:sid", rescheduleHandler.Get)
	wizardRoutes.POST("/reschedule-sessions/:sid/picks", rescheduleHandler.Pick)
	wizardRoutes.POST("/reschedule-sessions/:sid/back", rescheduleHandler.Back)
	wizardRoutes.POST("/reschedule-sessions/:sid/cancel", rescheduleHandler.Cancel)
	wizardRoutes.GET("/reschedule-sessions/:sid/summary", rescheduleHandler.Summary)
	wizardRoutes.GET("/reschedule-sessions/:sid/summary/export", rescheduleHandler.ExportSummary)
	wizardRoutes.POST("/reschedule-sessions/:sid/confirm", rescheduleHandler.Confirm)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("gateway starting",
		"addr", addr,
		"env", cfg.Env,
		"platform", cfg.Platform.BaseURL,
		"store", cfg.Wizard.Store)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("gateway failed", "error", err)
	}
}
