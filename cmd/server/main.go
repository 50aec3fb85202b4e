package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	jwttoken "tradeverify/internal/jwt_token"
	"tradeverify/internal/platform/config"
	"tradeverify/internal/platform/database"
	"tradeverify/internal/platform/httpserver"
	"tradeverify/internal/platform/logger"
	"tradeverify/internal/platform/metrics"
	platformredis "tradeverify/internal/platform/redis"
	"tradeverify/internal/reference"
	httptransport "tradeverify/internal/transport/http"
	"tradeverify/internal/verification"
	"tradeverify/internal/verification/handler"
	verificationMetrics "tradeverify/internal/verification/metrics"
	"tradeverify/internal/verification/publisher"
	"tradeverify/internal/verification/store"
	"tradeverify/pkg/platform/circuit"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal/verification.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "tradeverify:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	data, err := reference.Load(cfg.Verification.ReferenceDataPath)
	if err != nil {
		return fmt.Errorf("load reference data: %w", err)
	}

	policy := verification.DefaultPolicy()
	if cfg.Verification.ValidityCutoff > 0 {
		policy.ValidityCutoff = cfg.Verification.ValidityCutoff
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc := verification.NewFromReference(data,
		verification.WithPolicy(policy),
		verification.WithLogger(log),
		verification.WithMetrics(verificationMetrics.NewWithRegisterer(reg)),
		verification.WithTracer(otel.Tracer("tradeverify/verification")),
	)

	results, ready, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	events, err := openPublisher(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer events.Close()

	h := handler.New(svc, results, events, log)
	deps := httptransport.Deps{
		API:      h,
		Metrics:  metrics.New(reg),
		Gatherer: reg,
		Ready:    ready,
		Logger:   log,
	}
	if cfg.Server.JWTSigningKey != "" {
		deps.Auth = jwttoken.NewJWTService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer, cfg.Server.JWTAudience)
	} else {
		log.Warn("JWT_SIGNING_KEY not set; API is unauthenticated")
	}

	srv := httpserver.New(cfg.Server.Addr, httptransport.NewRouter(deps))
	log.Info("starting tradeverify",
		"addr", cfg.Server.Addr,
		"store", cfg.Store.Driver,
		"kafka", len(cfg.Kafka.Brokers) > 0,
	)

	err = httpserver.Run(ctx, srv, cfg.Server.ShutdownTimeout, log)
	h.Wait()
	return err
}

type publisherCloser interface {
	handler.EventPublisher
	Close()
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, map[string]httptransport.ReadinessCheck, func(), error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		db, err := database.OpenPostgres(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := store.Migrate(ctx, db, store.DialectPostgres); err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		ready := map[string]httptransport.ReadinessCheck{"postgres": db.PingContext}
		return store.NewPostgres(db), ready, func() { _ = db.Close() }, nil

	case config.StoreSQLite:
		db, err := database.OpenSQLite(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := store.Migrate(ctx, db, store.DialectSQLite); err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		ready := map[string]httptransport.ReadinessCheck{"sqlite": db.PingContext}
		return store.NewSQLite(db), ready, func() { _ = db.Close() }, nil

	case config.StoreRedis:
		client, err := platformredis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, nil, err
		}
		ready := map[string]httptransport.ReadinessCheck{"redis": client.Health}
		return store.NewRedis(client.Client, store.WithTTL(cfg.Store.ResultTTL)), ready, func() { _ = client.Close() }, nil

	default:
		return store.NewInMemory(), nil, func() {}, nil
	}
}

func openPublisher(ctx context.Context, cfg config.Config, log *slog.Logger) (publisherCloser, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return publisher.Noop{}, nil
	}
	k, err := publisher.NewKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if err != nil {
		return nil, err
	}
	if err := k.EnsureTopic(ctx, cfg.Kafka.Partitions, 1); err != nil {
		k.Close()
		return nil, err
	}
	log.Info("publishing verification events", "topic", cfg.Kafka.Topic, "brokers", cfg.Kafka.Brokers)
	return publisher.NewGuarded(k, circuit.New("kafka"), log), nil
}
