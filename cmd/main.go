/**
 * @description
 * This is the main entry point for the instrumental service. It initializes
 * and wires together all the components of the application: configuration,
 * the record store (Postgres, or in-memory when no DATABASE_URL is set),
 * the optional Redis rate limiter and RabbitMQ event producer, the
 * application services, the expiry sweep scheduler, and the HTTP router.
 * Finally, it starts the HTTP server and shuts everything down gracefully
 * on SIGINT/SIGTERM.
 */
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/sadaa/instrumental-service/internal/api"
	"github.com/sadaa/instrumental-service/internal/app"
	"github.com/sadaa/instrumental-service/internal/config"
	"github.com/sadaa/instrumental-service/internal/store"
	"github.com/sadaa/instrumental-service/pkg/rabbitmq"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Load .env for local development; ignored when absent.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Record store: Postgres in production, in-memory for local runs.
	var records store.Records
	if cfg.DatabaseURL != "" {
		poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
		if err != nil {
			logger.Error("unable to parse database URL", "error", err)
			os.Exit(1)
		}
		poolCfg.MaxConns = 20
		poolCfg.MaxConnLifetime = 30 * time.Minute
		poolCfg.MaxConnIdleTime = 5 * time.Minute

		dbpool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			logger.Error("unable to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbpool.Close()

		records, err = store.NewPostgresRecords(ctx, dbpool)
		if err != nil {
			logger.Error("unable to initialize record store", "error", err)
			os.Exit(1)
		}
		logger.Info("database connection established")
	} else {
		records = store.NewMemoryRecords()
		logger.Warn("no DATABASE_URL configured, using in-memory record store")
	}

	// Optional Redis-backed rate limiter for the subscription endpoints.
	var limiter *app.RedisRateLimiter
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("unable to parse redis URL", "error", err)
			os.Exit(1)
		}
		redisClient := redis.NewClient(opts)
		defer redisClient.Close()
		limiter = app.NewRedisRateLimiter(redisClient, cfg.RateLimitPrefix)
		logger.Info("redis rate limiter enabled")
	}

	// Optional RabbitMQ producer for subscription lifecycle events.
	var publisher rabbitmq.Publisher = &rabbitmq.NoopPublisher{Logger: logger}
	if cfg.RabbitMQURL != "" {
		producer, err := rabbitmq.NewEventProducer(cfg.RabbitMQURL)
		if err != nil {
			logger.Warn("rabbitmq unavailable, subscription events disabled", "error", err)
		} else {
			publisher = producer
			logger.Info("rabbitmq event producer connected")
		}
	}
	defer publisher.Close()

	// Initialize application layers
	entitlement := app.NewEntitlementService(records, publisher, cfg.EventExchange, logger)
	catalog := app.NewCatalogService(records, logger)
	identity := app.NewIdentityService(records, logger)
	handler := api.NewHandler(catalog, identity, entitlement, limiter, cfg.SubscribeRatePerMin, logger)
	router := api.NewRouter(handler)

	// Optional expiry sweep; disabled by default so status checks stay the
	// only expiry trigger.
	scheduler := app.NewScheduler(app.NewJobs(records, entitlement, logger), logger, cfg.SweepSchedule)
	scheduler.Start()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		logger.Info("starting server", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-sigCh
	logger.Info("shutdown signal received, gracefully shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	<-scheduler.Stop().Done()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	logger.Info("server stopped")
}
