package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"storefrontReco/business/recommendation"
	"storefrontReco/domain"
	"storefrontReco/internal/bootstrap"
	"storefrontReco/pkg/config"
	"storefrontReco/pkg/database"
	redisdb "storefrontReco/pkg/database/redis"
	"storefrontReco/pkg/logger"

	"github.com/google/uuid"
)

func main() {
	once := flag.Bool("once", false, "run a single batch and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer func() {
		if err := redisdb.CloseRedisClient(redisClient); err != nil {
			logger.Error("Failed to close Redis", "error", err)
		}
	}()

	svc := bootstrap.NewRecommendationService(cfg, db, redisClient)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *once {
		runBatch(ctx, svc)
		return
	}

	interval := cfg.Recommendation.BatchInterval
	logger.Info("Batch worker started", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	runBatch(ctx, svc)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Batch worker stopped")
			return
		case <-ticker.C:
			runBatch(ctx, svc)
		}
	}
}

type batchRunner interface {
	BatchGenerate(ctx context.Context) ([]domain.BatchResult, error)
}

// runBatch returns the number of users processed and how many failed.
func runBatch(ctx context.Context, svc batchRunner) (users, failed int) {
	traceID := uuid.NewString()
	ctx = recommendation.WithTraceID(ctx, traceID)
	start := time.Now()

	results, err := svc.BatchGenerate(ctx)
	if err != nil {
		logger.Error("Batch generation failed", "trace_id", traceID, "error", err)
		return 0, 0
	}

	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}

	logger.Info("Batch generation finished",
		"trace_id", traceID,
		"users", len(results),
		"failed", failed,
		"duration", time.Since(start).String(),
	)

	if ctx.Err() != nil {
		logger.Warn("Batch interrupted by shutdown", "trace_id", traceID)
	}
	return len(results), failed
}
