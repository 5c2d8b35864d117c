package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/address-verification/internal/config"
	"github.com/address-verification/internal/infrastructure/turkiye"
	"github.com/address-verification/internal/pkg/logger"
	"github.com/address-verification/internal/repository/cache"
	"github.com/address-verification/internal/repository/postgres"
	redisRepo "github.com/address-verification/internal/repository/redis"
	"github.com/address-verification/internal/usecase"
	"github.com/address-verification/internal/worker"
	syncWorker "github.com/address-verification/internal/worker/sync"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Address Sync Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.String("geo_base_url", cfg.Geo.BaseURL))

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Initialize repositories
	nodeRepo := postgres.NewGeoNodeRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	sourceRepo := turkiye.NewClient(&cfg.Geo, log)

	// 6. Initialize use cases
	resolverUC := usecase.NewResolverUseCase(
		nodeRepo,
		sourceRepo,
		cacheRepo,
		streamRepo,
		cfg.Cache.AddressListTTL,
		cfg.Geo.ProvinceCompleteCount,
		log,
	)

	// 7. Initialize workers
	addressSyncWorker := syncWorker.NewAddressSyncWorker(
		streamRepo,
		resolverUC,
		cfg.Worker.ConsumerGroup,
		log,
	)

	// 8. Create worker manager and register workers
	manager := worker.NewManager(log)
	manager.Register(addressSyncWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := manager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := manager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
