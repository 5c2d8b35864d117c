package main

// @title Address Verification API
// @version 1.0.0
// @description Adres doğrulama ve toplama servisi. Kişiler referans kodlarıyla adres bilgilerini günceller; değişiklikler yönetici onayından geçer.
// @description
// @description Temel özellikler:
// @description - Referans koduyla herkese açık form ve kayıt görüntüleme
// @description - İl / ilçe / mahalle kademeli adres seçimi (dış kaynaktan tembel doldurma)
// @description - Değişiklik taleplerinin onay/red akışı
// @description - Kişi dizini ve adres tanımı yönetimi

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/address-verification/docs/swagger"
	"github.com/address-verification/internal/config"
	httpDelivery "github.com/address-verification/internal/delivery/http"
	"github.com/address-verification/internal/delivery/http/handler"
	"github.com/address-verification/internal/infrastructure/turkiye"
	"github.com/address-verification/internal/pkg/logger"
	"github.com/address-verification/internal/repository/cache"
	"github.com/address-verification/internal/repository/postgres"
	redisRepo "github.com/address-verification/internal/repository/redis"
	"github.com/address-verification/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Address Verification Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

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
	log.Info("PostgreSQL connected")

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
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	log.Info("All connections healthy")

	// 6. Initialize repositories
	nodeRepo := postgres.NewGeoNodeRepository(db)
	personRepo := postgres.NewPersonRepository(db)
	changeRepo := postgres.NewChangeRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	sourceRepo := turkiye.NewClient(&cfg.Geo, log)
	log.Info("Repositories initialized")

	// 7. Initialize use cases
	resolverUC := usecase.NewResolverUseCase(
		nodeRepo,
		sourceRepo,
		cacheRepo,
		streamRepo,
		cfg.Cache.AddressListTTL,
		cfg.Geo.ProvinceCompleteCount,
		log,
	)
	submissionUC := usecase.NewSubmissionUseCase(personRepo, changeRepo, log)
	reviewUC := usecase.NewReviewUseCase(changeRepo, personRepo, resolverUC, log)
	personUC := usecase.NewPersonUseCase(personRepo, log)
	definitionUC := usecase.NewDefinitionUseCase(nodeRepo, cacheRepo, log)
	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	publicHandler := handler.NewPublicHandler(submissionUC, log)
	addressHandler := handler.NewAddressHandler(resolverUC, log)
	changeHandler := handler.NewChangeHandler(reviewUC, log)
	personHandler := handler.NewPersonHandler(personUC, log)
	definitionHandler := handler.NewDefinitionHandler(definitionUC, log)
	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		publicHandler,
		addressHandler,
		changeHandler,
		personHandler,
		definitionHandler,
	)
	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
