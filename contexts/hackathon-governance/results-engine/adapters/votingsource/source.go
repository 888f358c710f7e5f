package votingsource

import (
	"context"

	votingports "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/ports"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine/ports"
)

// Source adapts the voting engine's read side into the aggregator's
// VoteSource port. Each call yields one consistent snapshot of the
// hackathon's votes.
type Source struct {
	Votes votingports.VoteRepository
}

func NewSource(votes votingports.VoteRepository) Source {
	return Source{Votes: votes}
}

func (s Source) ListVotes(ctx context.Context, hackathonID string) ([]ports.VoteRecord, error) {
	votes, err := s.Votes.ListVotesByHackathon(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	records := make([]ports.VoteRecord, 0, len(votes))
	for _, vote := range votes {
		records = append(records, ports.VoteRecord{
			ProjectID: vote.ProjectID,
			VoterID:   vote.VoterID,
			Kind:      string(vote.Kind),
			Role:      string(vote.Role),
			CreatedAt: vote.CreatedAt,
		})
	}
	return records, nil
}
