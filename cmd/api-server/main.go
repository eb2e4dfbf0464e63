package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/Dhruvina99/sevarthi-api/api/swagger"
	"github.com/Dhruvina99/sevarthi-api/internal/handler"
	"github.com/Dhruvina99/sevarthi-api/internal/middleware"
	"github.com/Dhruvina99/sevarthi-api/internal/repository"
	"github.com/Dhruvina99/sevarthi-api/internal/service"
	"github.com/Dhruvina99/sevarthi-api/pkg/cache"
	"github.com/Dhruvina99/sevarthi-api/pkg/config"
	"github.com/Dhruvina99/sevarthi-api/pkg/database"
	"github.com/Dhruvina99/sevarthi-api/pkg/logger"
	corsmiddleware "github.com/Dhruvina99/sevarthi-api/pkg/middleware/cors"
	reqidmiddleware "github.com/Dhruvina99/sevarthi-api/pkg/middleware/requestid"
)

// @title Sevarthi API
// @version 1.0.0
// @description Attendance, polls and reporting for the Sevarthi troupe
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

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, statistics cache disabled", zap.Error(err))
		redisClient = nil
	}

	location, err := time.LoadLocation(cfg.Export.Timezone)
	if err != nil {
		logr.Warn("unknown export timezone, using UTC", zap.String("timezone", cfg.Export.Timezone), zap.Error(err))
		location = time.UTC
	}

	validate := validator.New()
	metrics := service.NewMetricsService()

	memberRepo := repository.NewMemberRepository(db)
	storyRepo := repository.NewStoryRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	showRepo := repository.NewShowRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	pollRepo := repository.NewPollRepository(db)
	reportRepo := repository.NewMemberReportRepository(db)
	linkRepo := repository.NewPracticeLinkRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	cacheService := service.NewCacheService(cacheRepo, metrics, cfg.Stats.CacheTTL, logr, cfg.Stats.CacheEnabled && redisClient != nil)
	statsService := service.NewStatsService(service.StatsServiceParams{
		Members:       memberRepo,
		Attendance:    attendanceRepo,
		Shows:         showRepo,
		Notifications: notificationRepo,
		Cache:         cacheService,
		Logger:        logr,
		Config: service.StatsServiceConfig{
			CacheTTL:      cfg.Stats.CacheTTL,
			RecentWindow:  cfg.Stats.RecentWindow,
			PerformerSize: cfg.Stats.PerformerSize,
		},
	})
	authService := service.NewAuthService(memberRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	memberService := service.NewMemberService(memberRepo, statsService, validate, logr)
	attendanceService := service.NewAttendanceService(service.AttendanceServiceParams{
		Repo:      attendanceRepo,
		Members:   memberRepo,
		Stories:   storyRepo,
		Roles:     roleRepo,
		Stats:     statsService,
		Metrics:   metrics,
		Validator: validate,
		Logger:    logr,
	})
	pollService := service.NewPollService(pollRepo, memberRepo, logr)
	exportService := service.NewExportService(service.ExportServiceParams{
		Attendance: attendanceService,
		Polls:      pollService,
		Renderers:  service.DefaultRenderers(cfg.Export.PDFRowsPerPage, cfg.Export.ImageMaxRows),
		Metrics:    metrics,
		Logger:     logr,
		Config:     service.ExportConfig{Location: location},
	})

	h := handlers{
		auth:          handler.NewAuthHandler(authService),
		members:       handler.NewMemberHandler(memberService, attendanceService),
		stories:       handler.NewStoryHandler(service.NewStoryService(storyRepo, validate, logr)),
		roles:         handler.NewRoleHandler(service.NewRoleService(roleRepo, validate, logr)),
		shows:         handler.NewShowHandler(service.NewShowService(showRepo, statsService, validate, logr)),
		attendance:    handler.NewAttendanceHandler(attendanceService),
		stats:         handler.NewStatsHandler(statsService),
		exports:       handler.NewExportHandler(exportService),
		notifications: handler.NewNotificationHandler(service.NewNotificationService(notificationRepo, pollRepo, statsService, validate, logr)),
		polls:         handler.NewPollHandler(pollService),
		reports:       handler.NewMemberReportHandler(service.NewMemberReportService(reportRepo, memberRepo, validate, logr)),
		practiceLinks: handler.NewPracticeLinkHandler(service.NewPracticeLinkService(linkRepo, validate, logr)),
	}

	checks := map[string]handler.Pinger{"database": handler.PingFunc(db.PingContext)}
	if redisClient != nil {
		checks["redis"] = cacheRepo
	}
	ops := handler.NewMetricsHandler(metrics, checks)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", ops.Health)
	r.GET("/ready", ops.Ready)
	r.GET("/metrics", ops.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	registerRoutes(r.Group(cfg.APIPrefix), h, authService)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
