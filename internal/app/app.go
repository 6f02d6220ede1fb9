// Package app assembles the reload service and its infrastructure from
// configuration. Both the server and facilitiesctl build through it.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"facilities/internal/collector"
	"facilities/internal/facility/store"
	"facilities/internal/platform/config"
	"facilities/internal/platform/kafka"
	"facilities/internal/platform/postgres"
	"facilities/internal/platform/redis"
	"facilities/internal/reload"
	"facilities/internal/reload/adapters"
	"facilities/internal/reload/metrics"
	"facilities/internal/reload/report"
	httptransport "facilities/internal/transport/http"
)

// App holds the assembled service and the resources it owns.
type App struct {
	Service   *reload.Service
	Scheduler *reload.Scheduler
	// Checks feeds /health, keyed by dependency name.
	Checks map[string]httptransport.HealthCheck

	closers []func(context.Context)
}

// Option customises the build.
type Option func(*buildOptions)

type buildOptions struct {
	metrics *metrics.Metrics
}

// WithMetrics registers reload metrics. The CLI builds without them.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *buildOptions) {
		o.metrics = m
	}
}

// Build wires stores, collector, report store and change publisher according
// to cfg. Absent URLs fall back to in-memory implementations.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}
	a := &App{Checks: map[string]httptransport.HealthCheck{}}

	var (
		facilities reload.FacilityStore
		graveyard  reload.GraveyardStore
		tx         reload.StoreTx
	)
	if cfg.Database.URL != "" {
		db, err := postgres.Open(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) { _ = db.Close() })
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			a.Close(ctx)
			return nil, err
		}
		facilities = store.NewPostgresFacilityStore(db)
		graveyard = store.NewPostgresGraveyardStore(db)
		tx = store.NewPostgresTx(db)
		a.Checks["postgres"] = pingCheck(db)
		logger.InfoContext(ctx, "using postgres facility store")
	} else {
		facilities = store.NewInMemoryFacilityStore()
		graveyard = store.NewInMemoryGraveyardStore()
		tx = store.NewInMemoryTx()
		logger.WarnContext(ctx, "DATABASE_URL not set, facility records are kept in memory")
	}

	var reports reload.ReportStore = report.NewInMemory()
	redisClient, err := redis.New(ctx, cfg.Redis.URL)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}
	if redisClient != nil {
		a.closers = append(a.closers, func(context.Context) { _ = redisClient.Close() })
		reports = report.NewRedis(redisClient.Client, report.WithTTL(cfg.Redis.ReportTTL))
		a.Checks["redis"] = redisClient.Health
	}

	serviceOpts := []reload.Option{
		reload.WithLogger(logger),
		reload.WithMetrics(o.metrics),
		reload.WithStoreTx(tx),
		reload.WithReportStore(reports),
		reload.WithGracePeriod(cfg.Reload.GracePeriod),
		reload.WithWorkers(cfg.Reload.Workers),
	}

	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafka.NewProducer(ctx, cfg.Kafka.Brokers, kafka.WithLogger(logger))
		if err != nil {
			a.Close(ctx)
			return nil, err
		}
		a.closers = append(a.closers, producer.Close)
		if err := producer.EnsureTopic(ctx, cfg.Kafka.ChangesTopic, 6, 1); err != nil {
			logger.WarnContext(ctx, "could not ensure change topic", "topic", cfg.Kafka.ChangesTopic, "error", err)
		}
		publisher, err := adapters.NewKafkaPublisher(producer, cfg.Kafka.ChangesTopic)
		if err != nil {
			a.Close(ctx)
			return nil, err
		}
		serviceOpts = append(serviceOpts, reload.WithChangePublisher(publisher))
	}

	svc, err := reload.New(newCollector(cfg.Collector, logger), facilities, graveyard, serviceOpts...)
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("build reload service: %w", err)
	}
	a.Service = svc
	a.Scheduler = reload.NewScheduler(svc, cfg.Reload.Interval, logger)
	return a, nil
}

// Close releases every resource in reverse order of acquisition.
func (a *App) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i](ctx)
	}
	a.closers = nil
}

// newCollector returns the HTTP collector, or one that always reports an
// outage when no URL is configured so a pull never reads as an empty list.
func newCollector(cfg config.Collector, logger *slog.Logger) reload.Collector {
	if cfg.URL == "" {
		unconfigured := collector.NewStatic()
		unconfigured.Fail(&collector.Error{
			Category:   collector.ErrorOutage,
			Message:    "collector URL is not configured",
			Underlying: errors.New("COLLECTOR_URL is empty"),
		})
		return unconfigured
	}
	return collector.NewHTTPClient(cfg.URL,
		collector.WithTimeout(cfg.Timeout),
		collector.WithLogger(logger),
	)
}

func pingCheck(db *sql.DB) httptransport.HealthCheck {
	return db.PingContext
}
