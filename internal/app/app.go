package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"instiwise-api/internal/cache"
	"instiwise-api/internal/config"
	"instiwise-api/internal/database"
	"instiwise-api/internal/handler"
	"instiwise-api/internal/middleware"
	"instiwise-api/internal/repository"
	"instiwise-api/internal/router"
	"instiwise-api/internal/service"
)

type App struct {
	server       *http.Server
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}
	slog.Info("database ready")

	slog.Info("connecting to Redis")
	revocations, err := cache.New(context.Background(), cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	slog.Info("cache ready")

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	newsRepo := repository.NewNewsRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	demoRepo := repository.NewDemoRequestRepository(pool)

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	authService := service.NewAuthService(userRepo, tokenService, revocations)
	userService := service.NewUserService(userRepo)
	projectService := service.NewProjectService(projectRepo)
	newsService := service.NewNewsService(newsRepo)
	eventService := service.NewEventService(eventRepo)
	demoService := service.NewDemoService(demoRepo)
	dashboardService := service.NewDashboardService(newsRepo, projectRepo, eventRepo, userRepo, demoRepo)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:        handler.NewAuthHandler(authService, cfg.CookieSecure),
		User:        handler.NewUserHandler(userService),
		Project:     handler.NewProjectHandler(projectService),
		News:        handler.NewNewsHandler(newsService),
		Event:       handler.NewEventHandler(eventService),
		DemoRequest: handler.NewDemoRequestHandler(demoService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
		Health:      handler.NewHealthHandler(db, revocations),
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		cleanupFuncs: []func(){
			func() {
				if err := revocations.Close(); err != nil {
					slog.Warn("closing redis", "error", err)
				}
			},
			func() {
				db.Close()
			},
		},
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	slog.Info("server stopped")
	return nil
}
