package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/application/commands"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/application/queries"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/domain/entities"
	httptransport "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/transport/http"
)

type Handler struct {
	Votes   commands.VoteUseCase
	Tallies queries.TallyUseCase
	Logger  *slog.Logger
}

func (h Handler) CastVoteHandler(ctx context.Context, req httptransport.CastVoteRequest) (httptransport.CastVoteResponse, error) {
	result, err := h.Votes.CastVote(ctx, commands.CastVoteCommand{
		HackathonID: req.HackathonID,
		ProjectID:   req.ProjectID,
		VoterID:     req.VoterID,
		Role:        entities.VoterRole(req.Role),
		Kind:        entities.VoteKind(req.Kind),
	})
	if err != nil {
		return httptransport.CastVoteResponse{}, err
	}
	return httptransport.CastVoteResponse{
		Vote:    toVoteDTO(result.Vote),
		Updated: result.Updated,
	}, nil
}

func (h Handler) ListProjectVotesHandler(ctx context.Context, projectID string) (httptransport.VoteListResponse, error) {
	votes, err := h.Votes.Votes.ListVotesByProject(ctx, projectID)
	if err != nil {
		return httptransport.VoteListResponse{}, err
	}
	items := make([]httptransport.VoteDTO, 0, len(votes))
	for _, vote := range votes {
		items = append(items, toVoteDTO(vote))
	}
	return httptransport.VoteListResponse{Items: items}, nil
}

func (h Handler) ProjectTallyHandler(ctx context.Context, projectID string) (httptransport.TallyResponse, error) {
	tally, err := h.Tallies.ProjectTally(ctx, projectID)
	if err != nil {
		return httptransport.TallyResponse{}, err
	}
	return httptransport.TallyResponse{Tally: toTallyDTO(tally)}, nil
}

func (h Handler) HackathonTalliesHandler(ctx context.Context, hackathonID string) (httptransport.TallyListResponse, error) {
	tallies, err := h.Tallies.HackathonTallies(ctx, hackathonID)
	if err != nil {
		return httptransport.TallyListResponse{}, err
	}
	items := make([]httptransport.TallyDTO, 0, len(tallies))
	for _, tally := range tallies {
		items = append(items, toTallyDTO(tally))
	}
	return httptransport.TallyListResponse{Items: items}, nil
}

func toVoteDTO(vote entities.Vote) httptransport.VoteDTO {
	return httptransport.VoteDTO{
		HackathonID: vote.HackathonID,
		ProjectID:   vote.ProjectID,
		VoterID:     vote.VoterID,
		Role:        string(vote.Role),
		Kind:        string(vote.Kind),
		CreatedAt:   vote.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   vote.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toTallyDTO(tally entities.Tally) httptransport.TallyDTO {
	return httptransport.TallyDTO{
		HackathonID:      tally.HackathonID,
		ProjectID:        tally.ProjectID,
		TotalVotes:       tally.TotalVotes,
		SupportVotes:     tally.SupportVotes,
		OpposeVotes:      tally.OpposeVotes,
		ContributorVotes: tally.ContributorVotes,
		MaintainerVotes:  tally.MaintainerVotes,
	}
}
