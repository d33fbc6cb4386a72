// Package main provides the entry point for the HTTP server.
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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/roster/internal/config"
	dbConfig "github.com/festy23/roster/internal/database/config"
	"github.com/festy23/roster/internal/database/database"
	"github.com/festy23/roster/internal/database/migrate"
	"github.com/festy23/roster/internal/health"
	"github.com/festy23/roster/internal/middleware"
	statsRouter "github.com/festy23/roster/internal/statistics/router"
	"github.com/festy23/roster/internal/team/router"
	"github.com/festy23/roster/internal/team/seed"
	"github.com/festy23/roster/internal/team/service"
	"github.com/festy23/roster/pkg/logger"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	if err := run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func run() error {
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	sugar, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = sugar.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbCfg := dbConfig.LoadConfigFromEnv()
	db, err := database.New(ctx, sugar)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			sugar.Errorw("failed to close database", "error", err)
		}
	}()

	if config.GetEnvBool("MIGRATIONS_ENABLED", true) {
		if err := migrate.Migrate(db, dbCfg.Driver, sugar); err != nil {
			return err
		}
	}

	gin.SetMode(cfg.GinMode)
	engine, teams := newRouter(cfg, db, sugar)

	if cfg.SeedData {
		if _, err := seed.Run(ctx, teams, sugar); err != nil {
			return fmt.Errorf("failed to seed data: %w", err)
		}
	}

	srv := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return serve(ctx, srv, cfg.Server, sugar)
}

// newRouter builds the gin engine with middleware, health, team and
// statistics routes.
func newRouter(cfg config.Config, db *gorm.DB, sugar *zap.SugaredLogger) (*gin.Engine, service.Service) {
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Logger(sugar),
		middleware.Recovery(sugar),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	health.New(db, sugar).Register(engine)

	api := engine.Group("")
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.TTL)
		api.Use(middleware.RateLimit(limiter, sugar))
	}
	teams := router.RegisterRoutes(api, db, sugar)
	statsRouter.RegisterRoutes(api, db, sugar)

	return engine, teams
}

// serve runs srv until ctx is cancelled, then drains in-flight requests
// within the shutdown timeout.
func serve(ctx context.Context, srv *http.Server, cfg config.ServerConfig, sugar *zap.SugaredLogger) error {
	errCh := make(chan error, 1)
	go func() {
		sugar.Infow("server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	sugar.Infow("shutting down server", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	sugar.Infow("server stopped")
	return nil
}
