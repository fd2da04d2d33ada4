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

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/handler"
	"github.com/noah-isme/timetable-api/internal/repository"
	"github.com/noah-isme/timetable-api/internal/router"
	"github.com/noah-isme/timetable-api/internal/scheduler"
	"github.com/noah-isme/timetable-api/internal/service"
	"github.com/noah-isme/timetable-api/pkg/cache"
	"github.com/noah-isme/timetable-api/pkg/config"
	"github.com/noah-isme/timetable-api/pkg/database"
	"github.com/noah-isme/timetable-api/pkg/logger"
)

// @title Timetable API
// @version 1.0.0
// @description Course timetable generation, persistence and export
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
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db.DB, logr); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	var redisClient redis.UniversalClient
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		redisClient = client
	}
	cacheRepo := repository.NewCacheRepository(redisClient)
	defer cacheRepo.Close() //nolint:errcheck

	metrics := service.NewMetricsService()
	validate := validator.New()

	courseRepo := repository.NewCourseRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	entryRepo := repository.NewTimetableEntryRepository(db)
	store := repository.NewTimetableStore(courseRepo, facultyRepo, roomRepo, entryRepo, cfg.Timetable.StoreTimeout, metrics)

	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TimetableTTL, logr, cfg.Cache.Enabled)
	timetableSvc := service.NewTimetableService(store, scheduler.New(), cacheSvc, metrics, validate, logr,
		service.TimetableConfig{CacheTTL: cfg.Cache.TimetableTTL})
	courseSvc := service.NewCourseService(courseRepo, cacheSvc, validate, logr)
	facultySvc := service.NewFacultyService(facultyRepo, cacheSvc, validate, logr)
	roomSvc := service.NewRoomService(roomRepo, cacheSvc, validate, logr)
	importSvc := service.NewImportService(courseRepo, facultyRepo, roomRepo, validate, logr, cfg.Timetable.ImportMaxBytes)
	exportSvc := service.NewExportService(timetableSvc, logr, nil, nil, nil)
	authSvc := service.NewAuthService(logr, service.AuthConfig{Secret: cfg.Auth.Secret, Issuer: cfg.Auth.Issuer})

	// Prime the coordinator so status reports LOADED once storage answers.
	timetableSvc.Load(context.Background())

	checks := map[string]handler.ReadinessCheck{"postgres": db.PingContext}
	if cfg.Cache.Enabled {
		checks["redis"] = cacheRepo.Ping
	}

	handlers := router.Handlers{
		Courses:   handler.NewCourseHandler(courseSvc, importSvc),
		Faculty:   handler.NewFacultyHandler(facultySvc, importSvc),
		Rooms:     handler.NewRoomHandler(roomSvc, importSvc),
		TimeSlots: handler.NewTimeSlotHandler(),
		Timetable: handler.NewTimetableHandler(timetableSvc, exportSvc),
		Metrics:   handler.NewMetricsHandler(metrics.Handler(), checks),
	}
	engine := router.New(router.FromConfig(cfg), handlers, router.Dependencies{
		Logger:  logr,
		Metrics: metrics,
		Auth:    authSvc,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "auth", cfg.Auth.Enabled, "cache", cfg.Cache.Enabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case sig := <-quit:
		logr.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
