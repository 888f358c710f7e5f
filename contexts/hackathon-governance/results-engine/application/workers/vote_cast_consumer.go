package workers

import (
	"context"
	"log/slog"
	"strings"

	application "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine/application"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine/ports"
)

const (
	voteCastTopic            = "vote.cast"
	defaultVoteConsumerGroup = "results-engine-vote-cast-cg"
)

// VoteCastConsumer recomputes a hackathon's results whenever a vote lands.
// Recompute errors are logged and swallowed: the vote write already
// succeeded, and the next event or manual recompute will catch up.
type VoteCastConsumer struct {
	Subscriber    ports.EventSubscriber
	Service       application.Service
	ConsumerGroup string
	Logger        *slog.Logger
}

func (c VoteCastConsumer) Start(ctx context.Context) error {
	group := strings.TrimSpace(c.ConsumerGroup)
	if group == "" {
		group = defaultVoteConsumerGroup
	}
	return c.Subscriber.Subscribe(ctx, voteCastTopic, group, c.handleVoteCast)
}

func (c VoteCastConsumer) handleVoteCast(ctx context.Context, event ports.EventEnvelope) error {
	logger := application.ResolveLogger(c.Logger)

	hackathonID := strings.TrimSpace(event.PartitionKey)
	if hackathonID == "" {
		logger.Warn("vote.cast event missing hackathon partition key",
			"event", "results_vote_cast_missing_partition_key",
			"module", "hackathon-governance/results-engine",
			"layer", "worker",
			"event_id", event.EventID,
		)
		return nil
	}

	report, err := c.Service.ComputeResults(ctx, hackathonID)
	if err != nil {
		logger.Error("vote.cast recompute failed",
			"event", "results_vote_cast_recompute_failed",
			"module", "hackathon-governance/results-engine",
			"layer", "worker",
			"event_id", event.EventID,
			"hackathon_id", hackathonID,
			"error", err.Error(),
		)
		return nil
	}

	logger.Info("vote.cast recompute completed",
		"event", "results_vote_cast_recompute_completed",
		"module", "hackathon-governance/results-engine",
		"layer", "worker",
		"event_id", event.EventID,
		"hackathon_id", hackathonID,
		"updated_count", len(report.Updated),
		"failed_count", len(report.Failed),
	)
	return nil
}
