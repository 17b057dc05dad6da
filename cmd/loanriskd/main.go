package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bibbank/loanrisk/internal/application/usecase"
	"github.com/bibbank/loanrisk/internal/domain/port"
	"github.com/bibbank/loanrisk/internal/domain/service"
	"github.com/bibbank/loanrisk/internal/infrastructure/artifact"
	"github.com/bibbank/loanrisk/internal/infrastructure/config"
	"github.com/bibbank/loanrisk/internal/infrastructure/messaging"
	"github.com/bibbank/loanrisk/internal/infrastructure/persistence/memory"
	pgRepo "github.com/bibbank/loanrisk/internal/infrastructure/persistence/postgres"
	"github.com/bibbank/loanrisk/internal/infrastructure/telemetry"
	grpcPresentation "github.com/bibbank/loanrisk/internal/presentation/grpc"
	"github.com/bibbank/loanrisk/internal/presentation/middleware"
	"github.com/bibbank/loanrisk/internal/presentation/rest"
	"github.com/bibbank/loanrisk/internal/presentation/web"
	"github.com/bibbank/loanrisk/pkg/auth"
	pkgkafka "github.com/bibbank/loanrisk/pkg/kafka"
	"github.com/bibbank/loanrisk/pkg/observability"
	pkgpostgres "github.com/bibbank/loanrisk/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.Telemetry.LogLevel,
		Format:      cfg.Telemetry.LogFormat,
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
	})

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting loanrisk-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"artifact_dir", cfg.ArtifactDir,
	)

	// Tracing is optional.
	if cfg.Telemetry.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.ServiceName,
			Environment: cfg.Environment,
			Endpoint:    cfg.Telemetry.OTLPEndpoint,
			Insecure:    true,
			SampleRatio: cfg.Telemetry.SampleRatio,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer func() { _ = shutdown(context.Background()) }() //nolint:errcheck // best-effort tracer shutdown
		}
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck

	// Artifacts are loaded once and shared read-only.
	bundle, err := artifact.Load(artifact.DefaultPaths(cfg.ArtifactDir))
	if err != nil {
		logger.Error("failed to load model artifacts", "dir", cfg.ArtifactDir, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded model artifacts", "features", bundle.Features.Len())

	// Storage.
	checks := map[string]rest.ReadinessCheck{}
	repo, pool, err := buildRepository(ctx, cfg.DB, logger)
	if err != nil {
		logger.Error("failed to initialize prediction storage", "error", err)
		os.Exit(1)
	}
	if pool != nil {
		defer pool.Close()
		checks["postgres"] = func(ctx context.Context) error { return pkgpostgres.HealthCheck(ctx, pool) }
	}

	// Events.
	publisher, closePublisher, err := buildPublisher(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize event publisher", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := closePublisher(); err != nil {
			logger.Error("failed to close event publisher", "error", err)
		}
	}()

	predictionMetrics, err := telemetry.NewPredictionMetrics(meterProvider)
	if err != nil {
		logger.Error("failed to create prediction metrics", "error", err)
		os.Exit(1)
	}

	// Wire use cases.
	predictUC := usecase.NewPredictRiskUseCase(
		bundle.Features,
		service.NewFeatureAssembler(),
		bundle.Scaler,
		bundle.Model,
		repo,
		publisher,
		predictionMetrics,
		logger,
	)
	getUC := usecase.NewGetPredictionUseCase(repo)

	jwtSvc, err := buildAuth(cfg.Auth)
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}
	if jwtSvc != nil {
		logger.Info("bearer-token authentication enabled for the JSON API and gRPC")
	}

	// gRPC server.
	grpcServer, err := grpcPresentation.NewServer(
		grpcPresentation.NewLoanRiskHandler(predictUC, getUC),
		logger,
		grpcPresentation.ServerOptions{
			Auth:        jwtSvc,
			TLSCertFile: cfg.GRPC.TLSCertFile,
			TLSKeyFile:  cfg.GRPC.TLSKeyFile,
			Reflection:  cfg.GRPC.Reflection,
		},
	)
	if err != nil {
		logger.Error("failed to create gRPC server", "error", err)
		os.Exit(1)
	}

	// HTTP server: form, JSON API, health and metrics.
	var limiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimitRPS)
	}

	mux := http.NewServeMux()
	web.NewHandler(predictUC, getUC, logger, web.Options{
		Limiter: limiter,
		APIAuth: jwtSvc,
	}).RegisterRoutes(mux)
	rest.NewHealthHandler(cfg.ServiceName, checks, logger).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	handler := middleware.Chain(mux,
		middleware.Recover(logger),
		middleware.Tracing("loanrisk-http"),
		middleware.Logging(logger),
	)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("loanrisk-service stopped")
}

// buildRepository connects to PostgreSQL and applies migrations when a
// database is configured, and falls back to in-memory history otherwise.
func buildRepository(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (port.PredictionRepository, *pgxpool.Pool, error) {
	if !cfg.Enabled() {
		logger.Info("DATABASE_URL not set, keeping prediction history in memory")
		return memory.NewPredictionRepo(), nil, nil
	}

	dbCfg := pkgpostgres.Config{URL: cfg.URL, MaxConns: int32(cfg.MaxConns)} //nolint:gosec // bounded by config

	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, dbCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("connected to database")

	if err := pkgpostgres.RunMigrations(dbCfg.DSN(), cfg.MigrationsDir); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return pgRepo.NewPredictionRepo(pool), pool, nil
}

// buildPublisher returns a Kafka publisher when brokers are configured and a
// log publisher otherwise. The returned func releases the producer.
func buildPublisher(cfg config.Config, logger *slog.Logger) (port.EventPublisher, func() error, error) {
	if !cfg.Kafka.Enabled() {
		logger.Info("KAFKA_BROKERS not set, logging domain events")
		return messaging.NewLogEventPublisher(logger), func() error { return nil }, nil
	}

	producer, err := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers:       cfg.Kafka.Brokers,
		ClientID:      cfg.ServiceName,
		TLS:           cfg.Kafka.TLS,
		SASLEnabled:   cfg.Kafka.SASLEnabled,
		SASLMechanism: cfg.Kafka.SASLMechanism,
		SASLUsername:  cfg.Kafka.SASLUsername,
		SASLPassword:  cfg.Kafka.SASLPassword,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return messaging.NewKafkaEventPublisher(producer, cfg.Kafka.Topic, logger), producer.Close, nil
}

// buildAuth returns nil when no key material is configured.
func buildAuth(cfg config.AuthConfig) (*auth.JWTService, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	jwtCfg := auth.JWTConfig{Issuer: cfg.Issuer}
	if cfg.PublicKeyFile != "" {
		keyData, err := auth.LoadKeyFromFile(cfg.PublicKeyFile)
		if err != nil {
			return nil, err
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	} else {
		jwtCfg.Secret = cfg.Secret
	}
	return auth.NewJWTService(jwtCfg)
}
