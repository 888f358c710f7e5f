package resultsengine

import (
	"log/slog"

	httpadapter "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine/adapters/http"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine/adapters/memory"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine/application"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Results  ports.ResultRepository
	Projects ports.ProjectCatalog
	Votes    ports.VoteSource
	Policy   application.Policy
	Clock    ports.Clock
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Results:  deps.Results,
		Projects: deps.Projects,
		Votes:    deps.Votes,
		Policy:   deps.Policy,
		Clock:    deps.Clock,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(votes ports.VoteSource, policy application.Policy, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Results:  store,
		Projects: store,
		Votes:    votes,
		Policy:   policy,
		Clock:    memory.SystemClock{},
		Logger:   logger,
	})
	module.Store = store
	return module
}
