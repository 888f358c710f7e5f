package resultsource

import (
	"context"

	resultsapp "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine/application"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/ports"
)

// Source adapts the results engine into the dispatcher's ResultSource and
// ProjectAccounts ports.
type Source struct {
	Results resultsapp.Service
}

func NewSource(results resultsapp.Service) Source {
	return Source{Results: results}
}

func (s Source) GetProjectResult(ctx context.Context, projectID string) (ports.ResultView, error) {
	result, err := s.Results.GetProjectResult(ctx, projectID)
	if err != nil {
		return ports.ResultView{}, err
	}
	return ports.ResultView{
		HackathonID:      result.HackathonID,
		ProjectID:        result.ProjectID,
		VotingStatus:     string(result.VotingStatus),
		TotalFunding:     result.TotalFunding,
		ContributorShare: result.ContributorShare,
		MaintainerShare:  result.MaintainerShare,
	}, nil
}

func (s Source) PayoutAccounts(ctx context.Context, projectID string) (string, string, error) {
	projection, err := s.Results.GetProject(ctx, projectID)
	if err != nil {
		return "", "", err
	}
	return projection.ContributorAccount, projection.MaintainerAccount, nil
}
