package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine/domain/entities"
	domainerrors "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine/domain/errors"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine/ports"
)

var oneHundred = decimal.NewFromInt(100)

// Policy carries the externally-configured aggregation knobs.
type Policy struct {
	ApprovalThreshold decimal.Decimal
	Quorum            int
	PoolAmount        decimal.Decimal
	ContributorRatio  decimal.Decimal
}

// DefaultPolicy returns the platform defaults: 60% threshold, quorum of one,
// a 1000 funding pool per hackathon and a 70/30 contributor/maintainer split.
func DefaultPolicy() Policy {
	return Policy{
		ApprovalThreshold: decimal.NewFromInt(60),
		Quorum:            1,
		PoolAmount:        decimal.NewFromInt(1000),
		ContributorRatio:  decimal.RequireFromString("0.70"),
	}
}

// Service aggregates a hackathon's votes into ranked, funded results.
type Service struct {
	Results  ports.ResultRepository
	Projects ports.ProjectCatalog
	Votes    ports.VoteSource
	Policy   Policy
	Clock    ports.Clock
	Logger   *slog.Logger
}

type projectScore struct {
	projection entities.ProjectProjection
	total      int
	yes        int
	no         int
	roles      map[string]int
	pct        decimal.Decimal
	status     entities.VotingStatus
}

// ComputeResults scores every registered project of the hackathon from a
// single vote snapshot. One project's failure is reported in the returned
// report without blocking its siblings. Recomputing on an unchanged snapshot
// writes identical rows apart from updated_at.
func (s Service) ComputeResults(ctx context.Context, hackathonID string) (entities.ComputeReport, error) {
	logger := ResolveLogger(s.Logger)

	hackathonID = strings.TrimSpace(hackathonID)
	if hackathonID == "" {
		return entities.ComputeReport{}, domainerrors.ErrInvalidHackathonID
	}

	projections, err := s.Projects.ListProjectsByHackathon(ctx, hackathonID)
	if err != nil {
		return entities.ComputeReport{}, err
	}
	votes, err := s.Votes.ListVotes(ctx, hackathonID)
	if err != nil {
		return entities.ComputeReport{}, err
	}

	report := entities.ComputeReport{HackathonID: hackathonID}

	registered := make(map[string]entities.ProjectProjection, len(projections))
	for _, projection := range projections {
		registered[projection.ProjectID] = projection
	}

	votesByProject := make(map[string][]ports.VoteRecord)
	for _, vote := range votes {
		votesByProject[vote.ProjectID] = append(votesByProject[vote.ProjectID], vote)
	}

	// Votes for projects the catalog has never seen cannot be scored.
	unregistered := make([]string, 0)
	for projectID := range votesByProject {
		if _, ok := registered[projectID]; !ok {
			unregistered = append(unregistered, projectID)
		}
	}
	sort.Strings(unregistered)
	for _, projectID := range unregistered {
		report.Failed = append(report.Failed, entities.ProjectFailure{
			ProjectID: projectID,
			Reason:    "project not registered",
		})
	}

	scores := make([]projectScore, 0, len(projections))
	for _, projection := range projections {
		scores = append(scores, s.scoreProject(projection, votesByProject[projection.ProjectID]))
	}
	rankScores(scores)

	approvedCount := 0
	for _, score := range scores {
		if score.status == entities.VotingStatusApproved {
			approvedCount++
		}
	}
	perProjectFunding := decimal.Zero
	if approvedCount > 0 {
		perProjectFunding = s.Policy.PoolAmount.
			Div(decimal.NewFromInt(int64(approvedCount))).
			Truncate(8)
	}

	now := s.Clock.Now().UTC()
	for rank, score := range scores {
		result := s.buildResult(hackathonID, score, rank+1, perProjectFunding)
		result.CreatedAt = now
		result.UpdatedAt = now
		stored, err := s.Results.UpsertResult(ctx, result)
		if err != nil {
			report.Failed = append(report.Failed, entities.ProjectFailure{
				ProjectID: score.projection.ProjectID,
				Reason:    err.Error(),
			})
			continue
		}
		report.Updated = append(report.Updated, stored)
	}

	logger.Info("results computed",
		"event", "results_computed",
		"module", "hackathon-governance/results-engine",
		"layer", "application",
		"hackathon_id", hackathonID,
		"updated_count", len(report.Updated),
		"failed_count", len(report.Failed),
		"approved_count", approvedCount,
	)
	return report, nil
}

func (s Service) scoreProject(projection entities.ProjectProjection, votes []ports.VoteRecord) projectScore {
	score := projectScore{
		projection: projection,
		roles:      map[string]int{},
		pct:        decimal.Zero,
		status:     entities.VotingStatusPending,
	}
	for _, vote := range votes {
		score.total++
		switch vote.Kind {
		case "support":
			score.yes++
		case "oppose":
			score.no++
		}
		score.roles[vote.Role]++
	}
	if score.total > 0 {
		score.pct = decimal.NewFromInt(int64(score.yes)).
			Mul(oneHundred).
			Div(decimal.NewFromInt(int64(score.total)))
	}
	if score.total >= s.Policy.Quorum {
		if score.pct.GreaterThanOrEqual(s.Policy.ApprovalThreshold) {
			score.status = entities.VotingStatusApproved
		} else {
			score.status = entities.VotingStatusRejected
		}
	}
	return score
}

func (s Service) buildResult(hackathonID string, score projectScore, rank int, perProjectFunding decimal.Decimal) entities.Result {
	totalFunding := decimal.Zero
	contributorShare := decimal.Zero
	maintainerShare := decimal.Zero
	if score.status == entities.VotingStatusApproved {
		totalFunding = perProjectFunding
		contributorShare = totalFunding.Mul(s.Policy.ContributorRatio).Truncate(8)
		maintainerShare = totalFunding.Sub(contributorShare)
	}

	category := entities.AwardCategoryNone
	if score.status == entities.VotingStatusApproved {
		switch {
		case rank == 1:
			category = entities.AwardCategoryWinner
		case rank <= 3:
			category = entities.AwardCategoryRunnerUp
		default:
			category = entities.AwardCategoryFinalist
		}
	}

	metrics, _ := json.Marshal(struct {
		SupportVotes     int `json:"support_votes"`
		OpposeVotes      int `json:"oppose_votes"`
		ContributorVotes int `json:"contributor_votes"`
		MaintainerVotes  int `json:"maintainer_votes"`
	}{
		SupportVotes:     score.yes,
		OpposeVotes:      score.no,
		ContributorVotes: score.roles["contributor"],
		MaintainerVotes:  score.roles["maintainer"],
	})

	return entities.Result{
		HackathonID:        hackathonID,
		ProjectID:          score.projection.ProjectID,
		FinalRank:          rank,
		TotalVotes:         score.total,
		YesVotes:           score.yes,
		NoVotes:            score.no,
		ApprovalPercentage: score.pct,
		VotingStatus:       score.status,
		TotalFunding:       totalFunding,
		ContributorShare:   contributorShare,
		MaintainerShare:    maintainerShare,
		AwardCategory:      category,
		Metrics:            metrics,
	}
}

// rankScores orders by approval percentage, then vote count, then earliest
// project registration, then project id, so the ranking is total and stable
// across runs on the same snapshot.
func rankScores(scores []projectScore) {
	sort.Slice(scores, func(i, j int) bool {
		if cmp := scores[i].pct.Cmp(scores[j].pct); cmp != 0 {
			return cmp > 0
		}
		if scores[i].total != scores[j].total {
			return scores[i].total > scores[j].total
		}
		if !scores[i].projection.CreatedAt.Equal(scores[j].projection.CreatedAt) {
			return scores[i].projection.CreatedAt.Before(scores[j].projection.CreatedAt)
		}
		return scores[i].projection.ProjectID < scores[j].projection.ProjectID
	})
}

func (s Service) GetResults(ctx context.Context, hackathonID string) ([]entities.Result, error) {
	hackathonID = strings.TrimSpace(hackathonID)
	if hackathonID == "" {
		return nil, domainerrors.ErrInvalidHackathonID
	}
	return s.Results.ListResultsByHackathon(ctx, hackathonID)
}

func (s Service) GetProjectResult(ctx context.Context, projectID string) (entities.Result, error) {
	return s.Results.GetResultByProject(ctx, strings.TrimSpace(projectID))
}

// RegisterProject mirrors externally-owned project metadata into the catalog.
func (s Service) RegisterProject(ctx context.Context, projection entities.ProjectProjection) error {
	projection.ProjectID = strings.TrimSpace(projection.ProjectID)
	projection.HackathonID = strings.TrimSpace(projection.HackathonID)
	projection.ContributorAccount = strings.TrimSpace(projection.ContributorAccount)
	projection.MaintainerAccount = strings.TrimSpace(projection.MaintainerAccount)
	if projection.ProjectID == "" || projection.HackathonID == "" ||
		projection.ContributorAccount == "" || projection.MaintainerAccount == "" {
		return domainerrors.ErrInvalidProjection
	}
	if projection.CreatedAt.IsZero() {
		projection.CreatedAt = s.Clock.Now().UTC()
	}
	if err := s.Projects.SaveProject(ctx, projection); err != nil {
		return err
	}
	ResolveLogger(s.Logger).Info("project registered",
		"event", "results_project_registered",
		"module", "hackathon-governance/results-engine",
		"layer", "application",
		"hackathon_id", projection.HackathonID,
		"project_id", projection.ProjectID,
	)
	return nil
}

// GetProject exposes the catalog row, used by settlement to resolve payout
// accounts.
func (s Service) GetProject(ctx context.Context, projectID string) (entities.ProjectProjection, error) {
	return s.Projects.GetProject(ctx, strings.TrimSpace(projectID))
}
