package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"fraud-investigation-system/internal/application/triage"
	"fraud-investigation-system/internal/domain/feedback"
	"fraud-investigation-system/internal/domain/priority"
	"fraud-investigation-system/internal/infrastructure/alerts"
	"fraud-investigation-system/internal/infrastructure/cache/redis"
	"fraud-investigation-system/internal/infrastructure/database/postgres"
	"fraud-investigation-system/internal/infrastructure/http/router"
	"fraud-investigation-system/internal/infrastructure/storage/jsonlog"
	"fraud-investigation-system/internal/interfaces/http/handler"
	"fraud-investigation-system/internal/pkg/config"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Warning: Could not load config file, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	log.Printf("Starting Fraud Investigation API v%s (model %s)", version, cfg.ML.ModelVersion)

	// Feedback store: Postgres when configured and reachable, otherwise the
	// JSON-file log. Both honor the same append-only contract.
	var store feedback.Store
	var dbClient *postgres.Client
	if cfg.Database.Enabled {
		dbClient, err = postgres.NewClient(postgres.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			Database:        cfg.Database.Name,
			SSLMode:         cfg.Database.SSLMode,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		})
		if err != nil {
			log.Printf("Warning: Database connection failed (falling back to file store): %v", err)
			dbClient = nil
		} else if err := dbClient.Migrate(); err != nil {
			log.Printf("Warning: Database migration failed (falling back to file store): %v", err)
			dbClient.Close()
			dbClient = nil
		}
	}
	if dbClient != nil {
		log.Printf("Feedback store: PostgreSQL at %s:%d", cfg.Database.Host, cfg.Database.Port)
		store = postgres.NewFeedbackRepository(dbClient)
	} else {
		log.Printf("Feedback store: JSON file at %s", cfg.Feedback.FilePath)
		store = jsonlog.New(cfg.Feedback.FilePath)
	}

	// Optional Redis stats cache
	var redisClient *redis.Client
	var statsCache *redis.StatsCache
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(redis.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			log.Printf("Warning: Redis connection failed (stats cache disabled): %v", err)
			redisClient = nil
		} else {
			log.Printf("Connected to Redis at %s:%d", cfg.Redis.Host, cfg.Redis.Port)
			statsCache = redis.NewStatsCache(redisClient, cfg.Redis.StatsTTL)
		}
	}

	// Domain services
	feedbackService := feedback.NewService(store, cfg.Feedback.InvestigatorID, cfg.ML.ModelVersion)
	priorityEngine := priority.NewEngine(feedbackService)
	alertSource := alerts.NewSource(cfg.Alerts.CSVPath)

	// Use cases
	submitDecision := triage.NewSubmitDecisionUseCase(feedbackService, statsCache)
	capturePattern := triage.NewCapturePatternUseCase(feedbackService)
	stats := triage.NewStatsUseCase(feedbackService, statsCache)
	retrainExport := triage.NewRetrainExportUseCase(feedbackService, cfg.Alerts.CSVPath, cfg.Alerts.TrainingDataPath)
	alertQueue := triage.NewAlertQueueUseCase(alertSource, feedbackService, priorityEngine, cfg.Alerts.QueueLimit)

	// Handlers
	feedbackHandler := handler.NewFeedbackHandler(submitDecision, capturePattern, stats, retrainExport, feedbackService)
	alertsHandler := handler.NewAlertsHandler(alertQueue)

	var dbHealthChecker handler.HealthChecker
	var redisHealthChecker handler.HealthChecker
	if dbClient != nil {
		dbHealthChecker = dbClient
	}
	if redisClient != nil {
		redisHealthChecker = redisClient
	}
	healthHandler := handler.NewHealthHandler(dbHealthChecker, redisHealthChecker, version)

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	r := router.NewRouter(feedbackHandler, alertsHandler, healthHandler, metricsPath)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("HTTP server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Printf("Server error: %v", err)
	}

	if dbClient != nil {
		dbClient.Close()
	}
	if redisClient != nil {
		redisClient.Close()
	}

	log.Println("Server stopped")
}
