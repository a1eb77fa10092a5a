package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pavankrishan/test-backend-ecs--sub006/internal/handler"
	"github.com/pavankrishan/test-backend-ecs--sub006/internal/middleware"
	"github.com/pavankrishan/test-backend-ecs--sub006/internal/repository"
	"github.com/pavankrishan/test-backend-ecs--sub006/internal/service"
	"github.com/pavankrishan/test-backend-ecs--sub006/pkg/cache"
	"github.com/pavankrishan/test-backend-ecs--sub006/pkg/config"
	"github.com/pavankrishan/test-backend-ecs--sub006/pkg/database"
	"github.com/pavankrishan/test-backend-ecs--sub006/pkg/jobs"
	"github.com/pavankrishan/test-backend-ecs--sub006/pkg/logger"
	corsmiddleware "github.com/pavankrishan/test-backend-ecs--sub006/pkg/middleware/cors"
	reqidmiddleware "github.com/pavankrishan/test-backend-ecs--sub006/pkg/middleware/requestid"
)

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	// Redis is optional; without it the zone catalogue is read from the
	// database on every resolution.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, zone cache disabled", "error", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	purchaseRepo := repository.NewPurchaseRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	zoneRepo := repository.NewZoneRepository(db)
	slotRepo := repository.NewScheduleSlotRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	directory := service.NewHTTPTrainerDirectory(cfg.Directory.BaseURL, cfg.Directory.Timeout)
	mirror := service.NewHTTPCalendarMirror(cfg.Directory.BaseURL, cfg.Directory.Timeout)

	syncSvc := service.NewCalendarSyncService(mirror, jobs.QueueConfig{
		Workers:    cfg.Sync.Workers,
		BufferSize: cfg.Sync.BufferSize,
		MaxRetries: cfg.Sync.MaxRetries,
		RetryDelay: cfg.Sync.RetryDelay,
		Logger:     logr,
	}, logr)

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService(syncSvc.Depth)
	}

	zoneSvc := service.NewZoneService(zoneRepo, cacheRepo, cfg.Assignment.ZoneCacheTTL, logr)
	eligSvc := service.NewEligibilityService(slotRepo)
	assignSvc := service.NewAssignmentService(db, purchaseRepo, sessionRepo, slotRepo, zoneSvc,
		directory, eligSvc, syncSvc, metricsSvc, cfg.Assignment.CandidateFetchLimit, logr)
	purchaseSvc := service.NewPurchaseService(purchaseRepo, sessionRepo)
	calendarSvc := service.NewTrainerCalendarService(slotRepo)

	assignmentHandler := handler.NewAssignmentHandler(assignSvc)
	purchaseHandler := handler.NewPurchaseHandler(purchaseSvc)
	zoneHandler := handler.NewZoneHandler(zoneSvc)
	trainerHandler := handler.NewTrainerHandler(calendarSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	if metricsSvc != nil {
		r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/assignments", assignmentHandler.Assign)
		api.GET("/purchases/:id", purchaseHandler.Get)
		api.GET("/purchases/:id/roster.csv", purchaseHandler.RosterCSV)
		api.GET("/purchases/:id/roster.pdf", purchaseHandler.RosterPDF)
		api.GET("/zones", zoneHandler.List)
		api.GET("/zones/resolve", zoneHandler.Resolve)
		api.GET("/zones/:id", zoneHandler.Get)
		api.POST("/zones", zoneHandler.Create)
		api.GET("/trainers/:id/calendar", trainerHandler.Calendar)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	syncSvc.Start(ctx)
	defer syncSvc.Stop()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown failed", "error", err)
	}
}
