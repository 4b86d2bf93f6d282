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

	"careerboard/internal/config"
	"careerboard/internal/database"
	"careerboard/internal/event"
	"careerboard/internal/handler"
	"careerboard/internal/middleware"
	"careerboard/internal/repository"
	"careerboard/internal/router"
	"careerboard/internal/service"
)

type App struct {
	server       *http.Server
	db           *database.DB
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

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	tokenRepo := repository.NewTokenRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)
	trashRepo := repository.NewTrashRepository(pool)
	jobPostRepo := repository.NewJobPostRepository(pool)
	communityRepo := repository.NewCommunityRepository(pool)
	blogRepo := repository.NewBlogRepository(pool)
	challengeRepo := repository.NewChallengeRepository(pool)
	txRunner := repository.NewTxRunner(pool)
	slog.Info("database ready")

	authService, err := service.NewAuthService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL, userRepo, tokenRepo)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	authMiddleware := middleware.NewAuthMiddleware(authService)
	authHandler := handler.NewAuthHandler(authService)

	bus := event.NewBus()

	auditService := service.NewAuditService(auditRepo, bus)
	auditCtx, auditCancel := context.WithCancel(context.Background())
	auditService.Start(auditCtx)
	auditHandler := handler.NewAuditHandler(auditService)

	strategies := service.NewStrategyRegistry(
		service.NewUserStrategy(userRepo),
		service.NewJobPostStrategy(jobPostRepo),
		service.NewThreadStrategy(communityRepo),
		service.NewBlogPostStrategy(blogRepo),
		service.NewChallengeStrategy(challengeRepo),
	)

	trashService := service.NewTrashService(trashRepo, txRunner, strategies, auditService, cfg.TrashRetention)
	trashHandler := handler.NewTrashHandler(trashService)

	contentService := service.NewContentService(jobPostRepo, communityRepo)
	contentHandler := handler.NewContentHandler(contentService)

	appRouter := router.New(cfg, authMiddleware, authHandler, trashHandler, auditHandler, contentHandler)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		db:     db,
		cleanupFuncs: []func(){
			func() {
				// Stop the audit writer and wait for buffered entries to land
				// before the pool goes away.
				auditCancel()
				auditService.Wait()
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
		slog.Error("graceful shutdown failed", "error", err)
	}

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	slog.Info("server stopped")
	return nil
}
