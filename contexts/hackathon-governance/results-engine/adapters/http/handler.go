package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine/application"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine/domain/entities"
	httptransport "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) RegisterProjectHandler(ctx context.Context, req httptransport.RegisterProjectRequest) (httptransport.RegisterProjectResponse, error) {
	projection := entities.ProjectProjection{
		ProjectID:          req.ProjectID,
		HackathonID:        req.HackathonID,
		ContributorAccount: req.ContributorAccount,
		MaintainerAccount:  req.MaintainerAccount,
	}
	if err := h.Service.RegisterProject(ctx, projection); err != nil {
		return httptransport.RegisterProjectResponse{}, err
	}
	stored, err := h.Service.GetProject(ctx, req.ProjectID)
	if err != nil {
		return httptransport.RegisterProjectResponse{}, err
	}
	return httptransport.RegisterProjectResponse{
		Project: httptransport.ProjectDTO{
			ProjectID:          stored.ProjectID,
			HackathonID:        stored.HackathonID,
			ContributorAccount: stored.ContributorAccount,
			MaintainerAccount:  stored.MaintainerAccount,
			CreatedAt:          stored.CreatedAt.UTC().Format(time.RFC3339),
		},
	}, nil
}

func (h Handler) ComputeResultsHandler(ctx context.Context, hackathonID string) (httptransport.ComputeResultsResponse, error) {
	report, err := h.Service.ComputeResults(ctx, hackathonID)
	if err != nil {
		return httptransport.ComputeResultsResponse{}, err
	}
	resp := httptransport.ComputeResultsResponse{
		HackathonID: report.HackathonID,
		Updated:     make([]httptransport.ResultDTO, 0, len(report.Updated)),
		Failed:      make([]httptransport.ProjectFailureDTO, 0, len(report.Failed)),
	}
	for _, result := range report.Updated {
		resp.Updated = append(resp.Updated, toResultDTO(result))
	}
	for _, failure := range report.Failed {
		resp.Failed = append(resp.Failed, httptransport.ProjectFailureDTO{
			ProjectID: failure.ProjectID,
			Reason:    failure.Reason,
		})
	}
	return resp, nil
}

func (h Handler) HackathonResultsHandler(ctx context.Context, hackathonID string) (httptransport.ResultListResponse, error) {
	results, err := h.Service.GetResults(ctx, hackathonID)
	if err != nil {
		return httptransport.ResultListResponse{}, err
	}
	items := make([]httptransport.ResultDTO, 0, len(results))
	for _, result := range results {
		items = append(items, toResultDTO(result))
	}
	return httptransport.ResultListResponse{Items: items}, nil
}

func (h Handler) ProjectResultHandler(ctx context.Context, projectID string) (httptransport.ResultResponse, error) {
	result, err := h.Service.GetProjectResult(ctx, projectID)
	if err != nil {
		return httptransport.ResultResponse{}, err
	}
	return httptransport.ResultResponse{Result: toResultDTO(result)}, nil
}

func toResultDTO(result entities.Result) httptransport.ResultDTO {
	return httptransport.ResultDTO{
		HackathonID:        result.HackathonID,
		ProjectID:          result.ProjectID,
		FinalRank:          result.FinalRank,
		TotalVotes:         result.TotalVotes,
		YesVotes:           result.YesVotes,
		NoVotes:            result.NoVotes,
		ApprovalPercentage: result.ApprovalPercentage.String(),
		VotingStatus:       string(result.VotingStatus),
		TotalFunding:       result.TotalFunding.String(),
		ContributorShare:   result.ContributorShare.String(),
		MaintainerShare:    result.MaintainerShare.String(),
		AwardCategory:      string(result.AwardCategory),
		Metrics:            result.Metrics,
		CreatedAt:          result.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:          result.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
