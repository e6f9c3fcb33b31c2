package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/jonesrussell/north-cloud/trend-tracker/internal/api"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/collector"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/config"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/feed"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/handler"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/logger"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/scheduler"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/storage"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/telemetry"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/tokenizer"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	log, err := createLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	db, err := connectDatabase(cfg, log)
	if err != nil {
		log.Error("Failed to connect to database", logger.Error(err))
		return 1
	}
	defer func() { _ = db.Close() }()

	return runServer(cfg, log, db)
}

// loadConfig loads and validates configuration.
func loadConfig() (*config.Config, error) {
	configPath := config.GetConfigPath("config.yml")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("validate config: %w", validationErr)
	}
	return cfg, nil
}

// createLogger creates a logger instance from configuration.
func createLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(logger.String("service", cfg.Service.Name)), nil
}

// connectDatabase opens and verifies the PostgreSQL connection.
func connectDatabase(cfg *config.Config, log logger.Logger) (*sqlx.DB, error) {
	db, err := storage.Connect(cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	log.Info("Database connected",
		logger.String("host", cfg.Database.Host),
		logger.Int("port", cfg.Database.Port),
		logger.String("database", cfg.Database.Database),
	)

	return db, nil
}

// runServer creates all dependencies and starts the HTTP server.
func runServer(cfg *config.Config, log logger.Logger, db *sqlx.DB) int {
	tp := telemetry.NewProvider()

	repo := storage.NewSnapshotRepository(db, log)
	feedClient := feed.NewClient(cfg.Feed.BaseURL, cfg.Feed.Timeout)
	tok := tokenizer.New(tokenizer.DefaultStopwords)

	col := collector.New(feedClient, tok, repo, tp, log, cfg.Collector.Source)

	// Optional in-process cron; disabled unless collector.schedule is set.
	sched := scheduler.New(cfg.Collector.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Collector.RunTimeout)
		defer cancel()
		_, _ = col.Run(ctx)
	}, log)
	if err := sched.Start(); err != nil {
		log.Error("Failed to start scheduler", logger.Error(err))
		return 1
	}
	defer sched.Stop()

	collectHandler := handler.NewCollectHandler(col, log)
	trendsHandler := handler.NewTrendsHandler(repo, tp, log, cfg.Trends)
	dashboardHandler := handler.NewDashboardHandler(repo, repo, log, cfg.Trends)
	snapshotHandler := handler.NewSnapshotHandler(repo, log)
	healthHandler := handler.NewHealthHandler(cfg.Service.Name, cfg.Service.Version, repo.Ping)

	server := api.NewServer(cfg, log, func(router *gin.Engine) {
		api.SetupRoutes(router,
			collectHandler, trendsHandler, dashboardHandler, snapshotHandler, healthHandler,
			tp.Handler())
	})

	log.Info("Trend-tracker starting",
		logger.Int("port", cfg.Service.Port),
		logger.String("feed", cfg.Feed.BaseURL),
	)

	if err := server.Run(); err != nil {
		log.Error("Server error", logger.Error(err))
		return 1
	}

	log.Info("Trend-tracker exited cleanly")
	return 0
}
