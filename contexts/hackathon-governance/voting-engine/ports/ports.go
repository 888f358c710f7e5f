package ports

import (
	"context"
	"time"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/domain/entities"
	"github.com/HarjjotSinghh/openwave-sub002/internal/shared/events"
)

// VoteRepository owns durable vote state. UpsertVote must serialize writes for
// one (project, voter) key so concurrent revotes collapse to a single winner
// by arrival order at the store, and returns whether an earlier vote was
// replaced.
type VoteRepository interface {
	UpsertVote(ctx context.Context, vote entities.Vote) (entities.Vote, bool, error)
	ListVotesByProject(ctx context.Context, projectID string) ([]entities.Vote, error)
	ListVotesByHackathon(ctx context.Context, hackathonID string) ([]entities.Vote, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type EventEnvelope = events.Envelope

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
