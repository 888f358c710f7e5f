package settlement

import (
	"log/slog"

	httpadapter "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/adapters/http"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/adapters/memory"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/application"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Payments    ports.SplitPaymentRepository
	Results     ports.ResultSource
	Accounts    ports.ProjectAccounts
	Ledger      ports.Ledger
	Outbox      ports.OutboxWriter
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	PoolAccount string
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Payments:    deps.Payments,
		Results:     deps.Results,
		Accounts:    deps.Accounts,
		Ledger:      deps.Ledger,
		Outbox:      deps.Outbox,
		Clock:       deps.Clock,
		IDGen:       deps.IDGen,
		Locks:       application.NewProjectLocks(),
		PoolAccount: deps.PoolAccount,
		Logger:      deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(
	results ports.ResultSource,
	accounts ports.ProjectAccounts,
	ledger ports.Ledger,
	poolAccount string,
	logger *slog.Logger,
) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Payments:    store,
		Results:     results,
		Accounts:    accounts,
		Ledger:      ledger,
		Outbox:      store,
		Clock:       memory.SystemClock{},
		IDGen:       memory.UUIDGenerator{},
		PoolAccount: poolAccount,
		Logger:      logger,
	})
	module.Store = store
	return module
}
