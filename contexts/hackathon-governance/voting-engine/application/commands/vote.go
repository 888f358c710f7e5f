package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	application "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/application"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/domain/entities"
	domainerrors "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/domain/errors"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/ports"
)

// CastVoteCommand is the write-model input for vote casting.
type CastVoteCommand struct {
	HackathonID string
	ProjectID   string
	VoterID     string
	Role        entities.VoterRole
	Kind        entities.VoteKind
}

// CastVoteResult returns final vote state and whether an earlier vote by the
// same voter on the same project was replaced.
type CastVoteResult struct {
	Vote    entities.Vote
	Updated bool
}

// VoteUseCase orchestrates vote writes: single-latest-vote upsert semantics
// plus vote.cast outbox emission.
type VoteUseCase struct {
	Votes  ports.VoteRepository
	Outbox ports.OutboxWriter
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// CastVote upserts the (project, voter) vote. Revoting is not an error: the
// latest vote wins and may flip kind or role.
func (uc VoteUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) (CastVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	hackathonID := strings.TrimSpace(cmd.HackathonID)
	projectID := strings.TrimSpace(cmd.ProjectID)
	voterID := strings.TrimSpace(cmd.VoterID)
	if hackathonID == "" || projectID == "" || voterID == "" {
		return CastVoteResult{}, domainerrors.ErrInvalidVoteInput
	}
	if cmd.Kind != entities.VoteKindSupport && cmd.Kind != entities.VoteKindOppose {
		return CastVoteResult{}, domainerrors.ErrInvalidVoteInput
	}
	if cmd.Role != entities.VoterRoleContributor && cmd.Role != entities.VoterRoleMaintainer {
		return CastVoteResult{}, domainerrors.ErrInvalidVoteInput
	}

	now := uc.Clock.Now().UTC()
	vote, updated, err := uc.Votes.UpsertVote(ctx, entities.Vote{
		HackathonID: hackathonID,
		ProjectID:   projectID,
		VoterID:     voterID,
		Role:        cmd.Role,
		Kind:        cmd.Kind,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return CastVoteResult{}, err
	}

	if err := uc.appendVoteCastEvent(ctx, vote); err != nil {
		return CastVoteResult{}, err
	}

	logger.Info("vote cast",
		"event", "voting_vote_cast",
		"module", "hackathon-governance/voting-engine",
		"layer", "application",
		"hackathon_id", hackathonID,
		"project_id", projectID,
		"voter_id", voterID,
		"kind", string(vote.Kind),
		"role", string(vote.Role),
		"updated", updated,
	)
	return CastVoteResult{Vote: vote, Updated: updated}, nil
}

func (uc VoteUseCase) appendVoteCastEvent(ctx context.Context, vote entities.Vote) error {
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(map[string]any{
		"hackathon_id": vote.HackathonID,
		"project_id":   vote.ProjectID,
		"voter_id":     vote.VoterID,
		"kind":         string(vote.Kind),
		"role":         string(vote.Role),
	})
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, ports.EventEnvelope{
		EventID:       eventID,
		EventType:     "vote.cast",
		SourceService: "openwave",
		OccurredAtUTC: vote.UpdatedAt.UTC(),
		EntityType:    "vote",
		EntityID:      vote.ProjectID + ":" + vote.VoterID,
		PartitionKey:  vote.HackathonID,
		SchemaVersion: 1,
		Payload:       payload,
	})
}
