package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/ysonawan/duebook/internal/adapter/http"
	"github.com/ysonawan/duebook/internal/adapter/http/handler"
	"github.com/ysonawan/duebook/internal/adapter/http/middleware"
	postgresRepo "github.com/ysonawan/duebook/internal/adapter/repository/postgres"
	redisRepo "github.com/ysonawan/duebook/internal/adapter/repository/redis"
	"github.com/ysonawan/duebook/internal/infrastructure/config"
	"github.com/ysonawan/duebook/internal/infrastructure/eventpublisher"
	"github.com/ysonawan/duebook/internal/infrastructure/logger"
	"github.com/ysonawan/duebook/internal/infrastructure/postgres"
	"github.com/ysonawan/duebook/internal/infrastructure/redis"
	"github.com/ysonawan/duebook/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	log.Logger = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	customerRepo := postgresRepo.NewCustomerRepository(pool)
	shopRepo := postgresRepo.NewShopRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log.Logger)

	// Initialize use cases
	reportUC := usecase.NewReportUseCase(entryRepo, customerRepo).
		WithCache(cache).
		WithCacheTTL(cfg.ReportCacheTTL)
	ledgerUC := usecase.NewLedgerUseCase(txManager, entryRepo, customerRepo, shopRepo, auditRepo, idGen).
		WithRetrier(retrier).
		WithReportInvalidator(reportUC)
	customerUC := usecase.NewCustomerUseCase(customerRepo, shopRepo, auditRepo, idGen)
	shopUC := usecase.NewShopUseCase(shopRepo, auditRepo, idGen)

	// Initialize handlers
	routerCfg := httpAdapter.RouterConfig{
		LedgerHandler:   handler.NewLedgerHandler(ledgerUC),
		ReportHandler:   handler.NewReportHandler(reportUC),
		CustomerHandler: handler.NewCustomerHandler(customerUC),
		ShopHandler:     handler.NewShopHandler(shopUC),
		AuditHandler:    handler.NewAuditHandler(auditRepo),
		HealthHandler:   handler.NewHealthHandler(pool, redisClient),
		Logger:          log.Logger,
	}
	if cfg.RateLimitRPS > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		routerCfg.RateLimiter = limiter

		go func() {
			ticker := time.NewTicker(10 * time.Minute)
			defer ticker.Stop()
			for range ticker.C {
				limiter.CleanupLimiters()
			}
		}()
	}

	router := httpAdapter.NewRouter(routerCfg)

	// Start the audit event publisher
	publisherCtx, stopPublisher := context.WithCancel(ctx)
	defer stopPublisher()

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		AuditRepo: auditRepo,
		Publisher: eventpublisher.NewRedisPublisher(redisClient, ""),
		Logger:    log.Logger,
		BatchSize: cfg.AuditPublishBatch,
		Interval:  cfg.AuditPublishInterval,
	})
	go func() {
		if err := publisher.Start(publisherCtx); err != nil && publisherCtx.Err() == nil {
			log.Error().Err(err).Msg("audit event publisher stopped")
		}
	}()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopPublisher()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
