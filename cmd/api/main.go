// @title EventHub API
// @version 1.0
// @description Event publishing, ticket booking and budget based event recommendations.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/festhub/eventhub/docs"
	"github.com/festhub/eventhub/internal/api/handlers"
	"github.com/festhub/eventhub/internal/api/router"
	"github.com/festhub/eventhub/internal/auth"
	"github.com/festhub/eventhub/internal/config"
	"github.com/festhub/eventhub/internal/domain/recommendation"
	"github.com/festhub/eventhub/internal/pkg/logger"
	"github.com/festhub/eventhub/internal/pkg/validator"
	"github.com/festhub/eventhub/internal/recommender"
	"github.com/festhub/eventhub/internal/repository/postgres"
	"github.com/festhub/eventhub/internal/services"
	"github.com/festhub/eventhub/internal/storage"
	"github.com/festhub/eventhub/internal/worker"
	"github.com/festhub/eventhub/migrations"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		OutputPath: cfg.Logging.OutputPath,
	})
	logger.SetGlobal(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	db, err := postgres.New(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	migrationsFS, err := migrations.ForDriver(cfg.Database.Driver)
	if err != nil {
		return err
	}
	applied, err := postgres.RunMigrations(db, migrationsFS)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	log.WithFields(map[string]interface{}{
		"driver":  cfg.Database.Driver,
		"applied": applied,
	}).Info("Database ready")

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	ticketRepo := postgres.NewTicketRepository(db)

	images, err := storage.New(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("initialize image storage: %w", err)
	}

	// Services
	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenExpiry, cfg.Auth.RefreshTokenExpiry)
	userService := services.NewUserService(userRepo, cfg.Auth.BCryptCost, log)
	eventService := services.NewEventService(eventRepo, images, log)
	ticketService := services.NewTicketService(ticketRepo, eventRepo, log)
	recommendationService := services.NewRecommendationService(newRunner(cfg.Recommender, log), log)

	// Handlers
	val := validator.New()
	h := &router.Handlers{
		Health:         handlers.NewHealthHandler(db.DB, log),
		Auth:           handlers.NewAuthHandler(userService, issuer, cfg, log, val),
		Event:          handlers.NewEventHandler(eventService, cfg, log, val),
		Ticket:         handlers.NewTicketHandler(ticketService, log, val),
		Recommendation: handlers.NewRecommendationHandler(recommendationService, log),
	}

	// Workers
	if cfg.Catalog.ExportEnabled {
		exporter := worker.NewCatalogExporter(eventRepo, cfg.Catalog, log)
		if err := exporter.Start(ctx); err != nil {
			return fmt.Errorf("start catalog exporter: %w", err)
		}
		defer exporter.Stop()
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(ctx, cfg, log, issuer, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(map[string]interface{}{
			"addr":        srv.Addr,
			"environment": cfg.Server.Environment,
		}).Info("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info("Server stopped")
	return nil
}

// newRunner builds the decision procedure runner from configuration
func newRunner(cfg config.RecommenderConfig, log *logger.Logger) recommendation.Runner {
	var args []string
	if cfg.Script != "" {
		args = append(args, cfg.Script)
	}

	if cfg.Timeout == 0 {
		log.Warn("Recommender timeout disabled; a hung decision procedure will hold its request open")
	}
	if cfg.MaxOutputBytes == 0 {
		log.Warn("Recommender output limit disabled")
	}

	var runner recommendation.Runner = recommender.NewInvoker(recommender.Config{
		Command:        cfg.Command,
		Args:           args,
		Dir:            cfg.WorkDir,
		Timeout:        cfg.Timeout,
		MaxOutputBytes: cfg.MaxOutputBytes,
	}, log)

	if cfg.BreakerEnabled {
		runner = recommender.NewBreakerRunner(runner, recommender.BreakerConfig{
			MinRequests: cfg.BreakerMinRequests,
			FailureRate: cfg.BreakerFailureRate,
			OpenTimeout: cfg.BreakerOpenTimeout,
		}, log)
	}

	log.WithFields(map[string]interface{}{
		"command": cfg.Command,
		"args":    args,
		"dir":     cfg.WorkDir,
		"breaker": cfg.BreakerEnabled,
	}).Info("Recommender configured")

	return runner
}
