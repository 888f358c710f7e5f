package walletledger

import (
	"log/slog"

	httpadapter "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/adapters/http"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/adapters/memory"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/application"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository  ports.LedgerRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
		Clock:  deps.Clock,
		IDGen:  deps.IDGenerator,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:  store,
		Clock:       memory.SystemClock{},
		IDGenerator: memory.UUIDGenerator{},
		Logger:      logger,
	})
	module.Store = store
	return module
}
