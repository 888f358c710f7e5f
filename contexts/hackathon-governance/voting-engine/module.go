package votingengine

import (
	"log/slog"

	httpadapter "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/adapters/http"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/adapters/memory"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/application/commands"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/application/queries"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Votes   commands.VoteUseCase
	Tallies queries.TallyUseCase
	Store   *memory.Store
}

type Dependencies struct {
	Votes  ports.VoteRepository
	Outbox ports.OutboxWriter
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	voteUseCase := commands.VoteUseCase{
		Votes:  deps.Votes,
		Outbox: deps.Outbox,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	tallyUseCase := queries.TallyUseCase{
		Votes: deps.Votes,
	}
	return Module{
		Handler: httpadapter.Handler{
			Votes:   voteUseCase,
			Tallies: tallyUseCase,
			Logger:  deps.Logger,
		},
		Votes:   voteUseCase,
		Tallies: tallyUseCase,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Votes:  store,
		Outbox: store,
		Clock:  memory.SystemClock{},
		IDGen:  memory.UUIDGenerator{},
		Logger: logger,
	})
	module.Store = store
	return module
}
