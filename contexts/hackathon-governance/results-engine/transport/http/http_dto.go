package httptransport

import "encoding/json"

// ErrorResponse is the envelope returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

type RegisterProjectRequest struct {
	ProjectID          string `json:"project_id"`
	HackathonID        string `json:"hackathon_id"`
	ContributorAccount string `json:"contributor_account"`
	MaintainerAccount  string `json:"maintainer_account"`
}

type ProjectDTO struct {
	ProjectID          string `json:"project_id"`
	HackathonID        string `json:"hackathon_id"`
	ContributorAccount string `json:"contributor_account"`
	MaintainerAccount  string `json:"maintainer_account"`
	CreatedAt          string `json:"created_at"`
}

type RegisterProjectResponse struct {
	Project ProjectDTO `json:"project"`
}

type ResultDTO struct {
	HackathonID        string          `json:"hackathon_id"`
	ProjectID          string          `json:"project_id"`
	FinalRank          int             `json:"final_rank"`
	TotalVotes         int             `json:"total_votes"`
	YesVotes           int             `json:"yes_votes"`
	NoVotes            int             `json:"no_votes"`
	ApprovalPercentage string          `json:"approval_percentage"`
	VotingStatus       string          `json:"voting_status"`
	TotalFunding       string          `json:"total_funding"`
	ContributorShare   string          `json:"contributor_share"`
	MaintainerShare    string          `json:"maintainer_share"`
	AwardCategory      string          `json:"award_category"`
	Metrics            json.RawMessage `json:"metrics"`
	CreatedAt          string          `json:"created_at"`
	UpdatedAt          string          `json:"updated_at"`
}

type ResultResponse struct {
	Result ResultDTO `json:"result"`
}

type ResultListResponse struct {
	Items []ResultDTO `json:"items"`
}

type ProjectFailureDTO struct {
	ProjectID string `json:"project_id"`
	Reason    string `json:"reason"`
}

type ComputeResultsResponse struct {
	HackathonID string              `json:"hackathon_id"`
	Updated     []ResultDTO         `json:"updated"`
	Failed      []ProjectFailureDTO `json:"failed"`
}
