package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cash-register/config"
	kafkaEvents "cash-register/internal/adapter/events/kafka"
	httpHandler "cash-register/internal/adapter/http/handler"
	memStorage "cash-register/internal/adapter/storage/memory"
	pgStorage "cash-register/internal/adapter/storage/postgres"
	redisStorage "cash-register/internal/adapter/storage/redis"
	"cash-register/internal/core/ports"
	"cash-register/internal/service"
	"cash-register/pkg/logger"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("CRG_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Str("storage", cfg.Storage.Driver).
		Int("port", cfg.Server.Port).
		Msg("Starting cash register")

	ctx := context.Background()
	var healthCheckers []ports.HealthChecker

	// Storage
	var (
		store     ports.RegisterStore
		auditRepo ports.AuditRepository
	)
	switch cfg.Storage.Driver {
	case "memory":
		store = memStorage.NewStore()
		auditRepo = memStorage.NewAuditRepo()
		log.Warn().Msg("memory storage selected, register state is lost on restart")
	default:
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		store = pgStorage.NewRegisterStore(pool)
		auditRepo = pgStorage.NewAuditRepository(pool)
		healthCheckers = append(healthCheckers, pgStorage.NewHealthCheck(pool))
	}

	// Redis: idempotency cache and rate limiting
	var (
		idempCache     ports.IdempotencyCache
		rateLimitStore *redisStorage.RateLimitStore
	)
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		idempCache = redisStorage.NewIdempotencyCache(rdb)
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
	} else {
		log.Warn().Msg("Redis disabled, idempotency relies on the store and rate limiting is off")
	}

	// Kafka: register events
	var publisher ports.EventPublisher
	if cfg.Kafka.Enabled {
		var signer ports.EventSigner
		if cfg.Kafka.SigningSecret != "" {
			signer = service.NewHMACEventSigner(cfg.Kafka.SigningSecret)
		}
		p := kafkaEvents.NewPublisher(cfg.Kafka, signer, log)
		defer closePublisher(p, log)
		publisher = p
		healthCheckers = append(healthCheckers, kafkaEvents.NewHealthCheck(cfg.Kafka.Brokers))
	}

	// Core services
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	authSvc := service.NewAuthService(cfg.Auth.OperatorUsername, cfg.Auth.OperatorPasswordHash, hashSvc, tokenSvc, log)
	auditSvc := service.NewAuditService(auditRepo, log)

	registerSvc := service.NewRegisterService(store, idempCache, publisher, service.RegisterOptions{
		LockTimeout:    cfg.Register.LockTimeout,
		IdempotencyTTL: cfg.Register.IdempotencyTTL,
	}, log)
	if err := registerSvc.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load register state")
	}
	if err := registerSvc.Seed(ctx, cfg.Register.Denominations); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed denominations")
	}

	deps := httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		RegisterSvc:    registerSvc,
		TokenSvc:       tokenSvc,
		HealthCheckers: healthCheckers,
		AuditSvc:       auditSvc,
		Logger:         log,
	}
	if rateLimitStore != nil {
		deps.RateLimitStore = rateLimitStore
	}
	router := httpHandler.SetupRouter(deps)

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(sigCtx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
	}

	log.Info().Msg("Server exited")
}

func closePublisher(p *kafkaEvents.Publisher, log zerolog.Logger) {
	if err := p.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close kafka publisher")
	}
}
