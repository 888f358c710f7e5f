package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type VotingStatus string

const (
	VotingStatusPending  VotingStatus = "pending"
	VotingStatusApproved VotingStatus = "approved"
	VotingStatusRejected VotingStatus = "rejected"
)

type AwardCategory string

const (
	AwardCategoryWinner   AwardCategory = "winner"
	AwardCategoryRunnerUp AwardCategory = "runner_up"
	AwardCategoryFinalist AwardCategory = "finalist"
	AwardCategoryNone     AwardCategory = ""
)

// Result is one project's aggregated outcome for a hackathon. Rows are keyed
// (hackathon, project) and upserted in place on every recompute.
type Result struct {
	HackathonID        string
	ProjectID          string
	FinalRank          int
	TotalVotes         int
	YesVotes           int
	NoVotes            int
	ApprovalPercentage decimal.Decimal
	VotingStatus       VotingStatus
	TotalFunding       decimal.Decimal
	ContributorShare   decimal.Decimal
	MaintainerShare    decimal.Decimal
	AwardCategory      AwardCategory
	Metrics            json.RawMessage
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ProjectProjection mirrors the externally-owned project metadata the
// aggregator needs: identity plus the payout accounts settlement will target.
type ProjectProjection struct {
	ProjectID          string
	HackathonID        string
	ContributorAccount string
	MaintainerAccount  string
	CreatedAt          time.Time
}

// ProjectFailure reports one project the compute pass could not score.
type ProjectFailure struct {
	ProjectID string
	Reason    string
}

// ComputeReport is the outcome of one ComputeResults pass.
type ComputeReport struct {
	HackathonID string
	Updated     []Result
	Failed      []ProjectFailure
}
