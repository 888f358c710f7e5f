package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	settlement "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement"
	settlementmemory "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/adapters/memory"
	settlementpostgres "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/adapters/postgres"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/adapters/resultsource"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/adapters/walletbridge"
	settlementworkers "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/application/workers"
	walletledger "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger"
	walletpostgres "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/adapters/postgres"
	resultsengine "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine"
	resultsmemory "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine/adapters/memory"
	resultspostgres "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine/adapters/postgres"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine/adapters/votingsource"
	resultsapp "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine/application"
	resultsworkers "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine/application/workers"
	votingengine "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine"
	votingmemory "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/adapters/memory"
	votingpostgres "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/adapters/postgres"
	votingworkers "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/application/workers"
	"github.com/HarjjotSinghh/openwave-sub002/internal/platform/config"
	"github.com/HarjjotSinghh/openwave-sub002/internal/platform/db"
	"github.com/HarjjotSinghh/openwave-sub002/internal/platform/httpserver"
	"github.com/HarjjotSinghh/openwave-sub002/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type modules struct {
	wallet     walletledger.Module
	voting     votingengine.Module
	results    resultsengine.Module
	settlement settlement.Module

	votingOutbox     *votingpostgres.Repository
	settlementOutbox *settlementpostgres.Repository
}

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres        *db.Postgres
	votingRelay     votingworkers.OutboxRelay
	settlementRelay settlementworkers.OutboxRelay
	voteConsumer    resultsworkers.VoteCastConsumer
	cfg             config.Config
	pollInterval    time.Duration
	logger          *slog.Logger
}

// buildModules wires the four bounded-context modules. Postgres adapters are
// used when a DSN is configured; otherwise everything runs on the in-memory
// stores.
func buildModules(cfg config.Config, logger *slog.Logger) (modules, *db.Postgres, error) {
	policy := resultsapp.Policy{
		ApprovalThreshold: cfg.ApprovalThresholdPct,
		Quorum:            cfg.VoteQuorum,
		PoolAmount:        cfg.PoolAmount,
		ContributorRatio:  cfg.ContributorRatio,
	}

	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		walletModule := walletledger.NewInMemoryModule(logger)
		votingModule := votingengine.NewInMemoryModule(logger)
		resultsModule := resultsengine.NewInMemoryModule(
			votingsource.NewSource(votingModule.Store), policy, logger)
		settlementModule := settlement.NewInMemoryModule(
			resultsource.NewSource(resultsModule.Service),
			resultsource.NewSource(resultsModule.Service),
			walletbridge.NewLedger(walletModule.Service),
			cfg.PoolAccount,
			logger,
		)
		return modules{
			wallet:     walletModule,
			voting:     votingModule,
			results:    resultsModule,
			settlement: settlementModule,
		}, nil, nil
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return modules{}, nil, err
	}

	walletRepo := walletpostgres.NewRepository(pg.DB, logger)
	walletModule := walletledger.NewModule(walletledger.Dependencies{
		Repository:  walletRepo,
		Clock:       walletpostgres.SystemClock{},
		IDGenerator: walletpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	votingRepo := votingpostgres.NewRepository(pg.DB, logger)
	votingModule := votingengine.NewModule(votingengine.Dependencies{
		Votes:  votingRepo,
		Outbox: votingRepo,
		Clock:  votingmemory.SystemClock{},
		IDGen:  votingmemory.UUIDGenerator{},
		Logger: logger,
	})

	resultsRepo := resultspostgres.NewRepository(pg.DB, logger)
	resultsModule := resultsengine.NewModule(resultsengine.Dependencies{
		Results:  resultsRepo,
		Projects: resultsRepo,
		Votes:    votingsource.NewSource(votingRepo),
		Policy:   policy,
		Clock:    resultsmemory.SystemClock{},
		Logger:   logger,
	})

	settlementRepo := settlementpostgres.NewRepository(pg.DB, logger)
	resultsBridge := resultsource.NewSource(resultsModule.Service)
	settlementModule := settlement.NewModule(settlement.Dependencies{
		Payments:    settlementRepo,
		Results:     resultsBridge,
		Accounts:    resultsBridge,
		Ledger:      walletbridge.NewLedger(walletModule.Service),
		Outbox:      settlementRepo,
		Clock:       settlementmemory.SystemClock{},
		IDGen:       settlementmemory.UUIDGenerator{},
		PoolAccount: cfg.PoolAccount,
		Logger:      logger,
	})

	return modules{
		wallet:           walletModule,
		voting:           votingModule,
		results:          resultsModule,
		settlement:       settlementModule,
		votingOutbox:     votingRepo,
		settlementOutbox: settlementRepo,
	}, pg, nil
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	mods, pg, err := buildModules(cfg, logger)
	if err != nil {
		return nil, err
	}

	server := httpserver.New(
		mods.wallet,
		mods.voting,
		mods.results,
		mods.settlement,
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
		return nil, errors.New("POSTGRES_DSN is required for the worker process")
	}

	mods, pg, err := buildModules(cfg, logger)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	return &WorkerApp{
		postgres: pg,
		votingRelay: votingworkers.OutboxRelay{
			Outbox:    mods.votingOutbox,
			Publisher: kafka,
			Clock:     votingmemory.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		settlementRelay: settlementworkers.OutboxRelay{
			Outbox:    mods.settlementOutbox,
			Publisher: kafka,
			Clock:     settlementmemory.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		voteConsumer: resultsworkers.VoteCastConsumer{
			Subscriber: kafka,
			Service:    mods.results.Service,
			Logger:     logger,
		},
		cfg:          cfg,
		pollInterval: 2 * time.Second,
		logger:       logger,
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
	if w.cfg.EnableVoteCastConsumer {
		if err := w.voteConsumer.Start(ctx); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if w.cfg.EnableVotingOutboxRelay {
			if err := w.votingRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		if w.cfg.EnableSettlementOutboxRelay {
			if err := w.settlementRelay.RunOnce(ctx); err != nil {
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
