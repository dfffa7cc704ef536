// @title SyllabusAI Builder API
// @version 1.0
// @description Turns raw syllabus text into a structured multi-week course.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey SessionToken
// @in header
// @name Authorization
// @description Type 'Bearer <X-Session-Token>' to reuse a session outside the browser.
package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "syllabus-builder/cmd/api/docs"
	"syllabus-builder/internal/adapter"
	"syllabus-builder/internal/adapter/coursegen"
	"syllabus-builder/internal/cache"
	"syllabus-builder/internal/config"
	"syllabus-builder/internal/domain"
	"syllabus-builder/internal/logger"
	"syllabus-builder/internal/server"
	"syllabus-builder/internal/service"
	"syllabus-builder/internal/web"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()
	if cfg.File != "" {
		appLogger.Info("Using config file", zap.String("path", cfg.File))
	}

	generator, err := coursegen.NewFromConfig(cfg.LLM, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create course generator", zap.Error(err))
	}

	store, closeStore, err := newWorkspaceStore(cfg)
	if err != nil {
		appLogger.Fatal("Failed to create workspace store", zap.Error(err))
	}
	defer closeStore()

	courseService, err := service.NewCourseService(generator, store, cfg.Generation)
	if err != nil {
		appLogger.Fatal("Failed to create CourseService", zap.Error(err))
	}
	sessionService, err := service.NewSessionService(cfg.Session)
	if err != nil {
		appLogger.Fatal("Failed to create SessionService", zap.Error(err))
	}
	renderer, err := web.NewRenderer()
	if err != nil {
		appLogger.Fatal("Failed to parse templates", zap.Error(err))
	}

	app := server.New(cfg, server.Deps{
		Courses:  courseService,
		Sessions: sessionService,
		Renderer: renderer,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		return app.Listen(":" + strconv.Itoa(cfg.Server.Port))
	})
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Error("Server stopped with error", zap.Error(err))
		return
	}
	appLogger.Info("Server exited gracefully")
}

// newWorkspaceStore picks the store named by store.driver.
func newWorkspaceStore(cfg *config.Config) (domain.WorkspaceStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreRedis:
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		logger.Get().Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
		store, err := service.NewCacheWorkspaceStore(adapter.NewRedisCacheAdapter(redisClient), cfg.Store.TTL)
		if err != nil {
			_ = redisClient.Close()
			return nil, nil, err
		}
		return store, func() { _ = redisClient.Close() }, nil
	default:
		logger.Get().Info("Using in-memory workspace store", zap.Duration("ttl", cfg.Store.TTL))
		return service.NewMemoryWorkspaceStore(cfg.Store.TTL), func() {}, nil
	}
}
