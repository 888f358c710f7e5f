package ports

import (
	"context"
	"time"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine/domain/entities"
	"github.com/HarjjotSinghh/openwave-sub002/internal/shared/events"
)

// ResultRepository owns durable result rows keyed (hackathon, project).
// UpsertResult preserves created_at on replace.
type ResultRepository interface {
	UpsertResult(ctx context.Context, result entities.Result) (entities.Result, error)
	GetResult(ctx context.Context, hackathonID string, projectID string) (entities.Result, error)
	GetResultByProject(ctx context.Context, projectID string) (entities.Result, error)
	ListResultsByHackathon(ctx context.Context, hackathonID string) ([]entities.Result, error)
}

// ProjectCatalog holds the mirrored project metadata the aggregator scores.
type ProjectCatalog interface {
	SaveProject(ctx context.Context, projection entities.ProjectProjection) error
	GetProject(ctx context.Context, projectID string) (entities.ProjectProjection, error)
	ListProjectsByHackathon(ctx context.Context, hackathonID string) ([]entities.ProjectProjection, error)
}

// VoteRecord is the aggregator's read-model view of one vote.
type VoteRecord struct {
	ProjectID string
	VoterID   string
	Kind      string
	Role      string
	CreatedAt time.Time
}

// VoteSource supplies one immutable snapshot of a hackathon's votes per call.
type VoteSource interface {
	ListVotes(ctx context.Context, hackathonID string) ([]VoteRecord, error)
}

type Clock interface {
	Now() time.Time
}

type EventEnvelope = events.Envelope

type EventSubscriber interface {
	Subscribe(ctx context.Context, topic string, group string, handler func(ctx context.Context, event EventEnvelope) error) error
}
