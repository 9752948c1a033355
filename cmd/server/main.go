package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	grpclib "google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	grpcadapter "github.com/simaogato/payoutcompliance-backend/internal/adapter/grpc"
	"github.com/simaogato/payoutcompliance-backend/internal/adapter/httpadmin"
	"github.com/simaogato/payoutcompliance-backend/internal/adapter/ratesource/history"
	"github.com/simaogato/payoutcompliance-backend/internal/adapter/ratesource/rediscache"
	"github.com/simaogato/payoutcompliance-backend/internal/adapter/ratesource/static"
	"github.com/simaogato/payoutcompliance-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/payoutcompliance-backend/internal/clock"
	"github.com/simaogato/payoutcompliance-backend/internal/config"
	"github.com/simaogato/payoutcompliance-backend/internal/domain"
	"github.com/simaogato/payoutcompliance-backend/internal/logger"
	"github.com/simaogato/payoutcompliance-backend/internal/metrics"
	"github.com/simaogato/payoutcompliance-backend/internal/usecase/enrichment"
	"github.com/simaogato/payoutcompliance-backend/internal/usecase/fxrate"
	"github.com/simaogato/payoutcompliance-backend/internal/usecase/pipeline"
	"github.com/simaogato/payoutcompliance-backend/internal/usecase/seeder"
	"github.com/simaogato/payoutcompliance-backend/internal/usecase/tin"
	"github.com/simaogato/payoutcompliance-backend/internal/usecase/validation"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := run(ctx, cfg, zl); err != nil {
		zl.Fatal("server exited with error", zap.Error(err))
	}
	zl.Info("server stopped")
}

func run(ctx context.Context, cfg config.Config, zl *zap.Logger) error {
	// 1. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	checks := map[string]httpadmin.CheckFunc{}

	// 2. Rate storage: Postgres history when configured, otherwise an in-memory table
	var (
		rateSource domain.RateSource
		rateWriter seeder.RateWriter
	)
	if cfg.DB.DSN != "" {
		db, err := postgres.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			return err
		}

		repo := postgres.NewFxRateRepository(db)
		rateSource = history.NewSource(repo, cfg.Rates.MaxAge)
		rateWriter = repo
		checks["postgres"] = db.PingContext
		zl.Info("using postgres fx rate history")
	} else {
		table := static.NewSource()
		rateSource = table
		rateWriter = table
		zl.Warn("db.dsn not set, using in-memory fx rates")
	}

	// 3. Optional Redis cache in front of the rate source
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("parse redis url: %w", err)
		}
		client := redis.NewClient(opts)
		defer func() { _ = client.Close() }()

		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}

		rateSource = rediscache.NewSource(client, rateSource, cfg.Redis.TTL, zl.Named("ratecache"))
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		zl.Info("fx rate cache enabled", zap.Duration("ttl", cfg.Redis.TTL))
	}

	// 4. Seed reference rates
	if _, err := seeder.NewRateSeeder(rateWriter, cfg.Rates.Seed, zl.Named("seeder")).Seed(ctx); err != nil {
		return fmt.Errorf("seed fx rates: %w", err)
	}

	// 5. Initialize Services (Use Cases)
	validator := validation.NewValidationService(clock.Real{}, zl.Named("validation"), m)
	resolver := fxrate.NewResolver(rateSource, zl.Named("fxrate"), m)
	enricher := enrichment.NewEnrichmentService(resolver, zl.Named("enrichment"), m)
	processor := pipeline.NewPipelineService(validator, enricher, cfg.Pipeline.Workers)
	tinValidator := tin.NewValidator(m)

	// 6. gRPC and admin servers
	grpcServer, healthServer := grpcadapter.NewGRPCServer(
		grpcadapter.NewServer(validator, enricher, processor, tinValidator, zl.Named("grpc")),
		cfg.Auth.Token,
		zl.Named("grpc"),
	)

	lis, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.GRPC.Addr, err)
	}

	adminServer := &http.Server{
		Addr:              cfg.Admin.Addr,
		Handler:           httpadmin.New(registry, checks, zl.Named("admin")).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zl.Info("gRPC server listening", zap.String("addr", cfg.GRPC.Addr))
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpclib.ErrServerStopped) {
			return fmt.Errorf("serve grpc: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		zl.Info("admin server listening", zap.String("addr", cfg.Admin.Addr))
		if err := adminServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve admin: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		zl.Info("shutting down gracefully")

		healthServer.SetServingStatus(grpcadapter.ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-shutdownCtx.Done():
			grpcServer.Stop()
		}

		return adminServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
