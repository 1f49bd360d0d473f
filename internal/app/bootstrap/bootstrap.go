package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	profileservice "soundmint/contexts/artist-identity/profile-service"
	profilepg "soundmint/contexts/artist-identity/profile-service/adapters/postgres"
	workregistry "soundmint/contexts/catalog/work-registry"
	workpg "soundmint/contexts/catalog/work-registry/adapters/postgres"
	workworkers "soundmint/contexts/catalog/work-registry/application/workers"
	royaltyledger "soundmint/contexts/finance-core/royalty-ledger"
	royaltypg "soundmint/contexts/finance-core/royalty-ledger/adapters/postgres"
	royaltyworkers "soundmint/contexts/finance-core/royalty-ledger/application/workers"
	treasuryservice "soundmint/contexts/platform-treasury/treasury-service"
	treasurypg "soundmint/contexts/platform-treasury/treasury-service/adapters/postgres"
	"soundmint/internal/platform/config"
	"soundmint/internal/platform/db"
	"soundmint/internal/platform/httpserver"
	"soundmint/internal/platform/ledger"
	"soundmint/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	workRelay    workworkers.OutboxRelay
	royaltyRelay royaltyworkers.OutboxRelay

	enableWorkRelay    bool
	enableRoyaltyRelay bool
	pollInterval       time.Duration
	logger             *slog.Logger
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

	book := ledger.New(logger)
	for account, amount := range cfg.LedgerSeedAccounts {
		book.Deposit(account, amount)
	}
	issuer := ledger.NewAssetIssuer(logger)

	treasuryModule := treasuryservice.NewModule(treasuryservice.Dependencies{
		Repository:   treasurypg.NewRepository(pg.DB, logger),
		Clock:        treasurypg.SystemClock{},
		Ledger:       book,
		FloatAccount: cfg.TreasuryFloatAccount,
		Logger:       logger,
	})

	profileModule := profileservice.NewModule(profileservice.Dependencies{
		Repository: profilepg.NewRepository(pg.DB, logger),
		Treasury:   treasuryAuthorityReader{service: treasuryModule.Service},
		Clock:      profilepg.SystemClock{},
		Logger:     logger,
	})

	workRepo := workpg.NewRepository(pg.DB, logger)
	registryModule := workregistry.NewModule(workregistry.Dependencies{
		Repository:  workRepo,
		Profiles:    profileDirectory{service: profileModule.Service},
		Treasury:    registryTreasury{service: treasuryModule.Service},
		Ledger:      book,
		AssetIssuer: issuer,
		Outbox:      workRepo,
		Clock:       workpg.SystemClock{},
		IDGenerator: workpg.UUIDGenerator{},
		Logger:      logger,
	})

	royaltyRepo := royaltypg.NewRepository(pg.DB, logger)
	royaltyModule := royaltyledger.NewModule(royaltyledger.Dependencies{
		Repository:    royaltyRepo,
		Works:         workDirectory{service: registryModule.Service},
		Treasury:      royaltyTreasury{service: treasuryModule.Service},
		Ledger:        book,
		Outbox:        royaltyRepo,
		Clock:         royaltypg.SystemClock{},
		IDGenerator:   royaltypg.UUIDGenerator{},
		EscrowAccount: cfg.RoyaltyEscrowAccount,
		Logger:        logger,
	})

	server := httpserver.New(
		treasuryModule,
		profileModule,
		registryModule,
		royaltyModule,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
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

	workRepo := workpg.NewRepository(pg.DB, logger)
	royaltyRepo := royaltypg.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		workRelay: workworkers.OutboxRelay{
			Outbox:    workRepo,
			Publisher: kafka,
			Clock:     workpg.SystemClock{},
			Topic:     "work.minted",
			BatchSize: 100,
			Logger:    logger,
		},
		royaltyRelay: royaltyworkers.OutboxRelay{
			Outbox:    royaltyRepo,
			Publisher: kafka,
			Clock:     royaltypg.SystemClock{},
			Topic:     "royalty.distributed",
			BatchSize: 100,
			Logger:    logger,
		},
		enableWorkRelay:    cfg.EnableWorkOutboxRelay,
		enableRoyaltyRelay: cfg.EnableRoyaltyOutboxRelay,
		pollInterval:       2 * time.Second,
		logger:             logger,
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
		if w.enableWorkRelay {
			if err := w.workRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		if w.enableRoyaltyRelay {
			if err := w.royaltyRelay.RunOnce(ctx); err != nil {
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
