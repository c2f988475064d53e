// Package bootstrap is the composition root. Construction and wiring live
// here so module code stays framework-agnostic.
package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	contractlifecycle "steward/contexts/vendor-management/contract-lifecycle"
	postgresadapter "steward/contexts/vendor-management/contract-lifecycle/adapters/postgres"
	workerapp "steward/contexts/vendor-management/contract-lifecycle/application/workers"
	"steward/internal/platform/config"
	"steward/internal/platform/db"
	"steward/internal/platform/httpserver"
	"steward/internal/platform/messaging"
)

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres             *db.Postgres
	notifier             workerapp.ExpiryNotifier
	outboxRelay          workerapp.OutboxRelay
	enableExpiryNotifier bool
	enableOutboxRelay    bool
	pollInterval         time.Duration
	logger               *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)
	module := contractlifecycle.NewModule(contractlifecycle.Dependencies{
		Repository:  repo,
		Clock:       postgresadapter.SystemClock{},
		IDGenerator: postgresadapter.UUIDGenerator{},
		Logger:      logger,
	})

	server := httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)
	module := contractlifecycle.NewModule(contractlifecycle.Dependencies{
		Repository:  repo,
		Clock:       postgresadapter.SystemClock{},
		IDGenerator: postgresadapter.UUIDGenerator{},
		Logger:      logger,
	})

	return &WorkerApp{
		postgres: pg,
		notifier: workerapp.ExpiryNotifier{
			Service:     module.Service,
			Outbox:      repo,
			Clock:       postgresadapter.SystemClock{},
			IDGenerator: postgresadapter.UUIDGenerator{},
			AlertDays:   cfg.ContractExpiryAlertDays,
			Logger:      logger,
		},
		outboxRelay: workerapp.OutboxRelay{
			Outbox:    repo,
			Publisher: kafka,
			Clock:     postgresadapter.SystemClock{},
			Topic:     "contract.expiring",
			BatchSize: 100,
			Logger:    logger,
		},
		enableExpiryNotifier: cfg.EnableExpiryNotifier,
		enableOutboxRelay:    cfg.EnableOutboxRelay,
		pollInterval:         time.Duration(cfg.WorkerPollSeconds) * time.Second,
		logger:               logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if w.enableExpiryNotifier {
			if err := w.notifier.RunOnce(ctx); err != nil {
				return err
			}
		}
		if w.enableOutboxRelay {
			if err := w.outboxRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
