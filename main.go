package main

import (
	"context"
	"database/sql"
	"log"
	"net"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for migrations
	"go.uber.org/zap"

	"github.com/fretbase/guitar-registry/pkg/config"
	"github.com/fretbase/guitar-registry/pkg/database"
	"github.com/fretbase/guitar-registry/pkg/handlers"
	"github.com/fretbase/guitar-registry/pkg/middleware"
	"github.com/fretbase/guitar-registry/pkg/repositories"
	"github.com/fretbase/guitar-registry/pkg/retry"
	"github.com/fretbase/guitar-registry/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load("config.yaml", Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("version", cfg.Version),
		zap.String("database", cfg.Database.Database),
		zap.String("database_host", cfg.Database.Host),
		zap.Int("max_page_size", cfg.Search.MaxPageSize))

	ctx := context.Background()

	// The database may still be starting when the service comes up; retry
	// transient connection failures with backoff.
	db, err := retry.DoWithResult(ctx, nil, func() (*database.DB, error) {
		return database.NewConnection(ctx, &database.Config{
			URL:            cfg.Database.ConnectionString(),
			MaxConnections: cfg.Database.MaxConnections,
		})
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// golang-migrate drives a database/sql connection, separate from the pool.
	sqlDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, cfg.Database.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("Failed to close migration connection", zap.Error(err))
	}

	modelRepo := repositories.NewModelSearchRepository(db)
	instrumentRepo := repositories.NewInstrumentSearchRepository(db)

	modelSearch := services.NewModelSearchService(modelRepo, cfg.Search, logger)
	instrumentSearch := services.NewInstrumentSearchService(instrumentRepo, modelSearch, cfg.Search, logger)

	mux := http.NewServeMux()

	handlers.NewHealthHandler(cfg, db, logger).RegisterRoutes(mux)
	handlers.NewSearchHandler(modelSearch, instrumentSearch, cfg.Search, logger).RegisterRoutes(mux)
	mux.HandleFunc("/", handlers.NotFound)

	handler := middleware.CORS()(middleware.RequestLogger(logger)(mux))

	addr := net.JoinHostPort(cfg.BindAddr, cfg.Port)
	logger.Info("Starting guitar-registry search API", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
