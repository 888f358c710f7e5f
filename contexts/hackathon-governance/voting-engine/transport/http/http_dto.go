package httptransport

// ErrorResponse is the envelope returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

type CastVoteRequest struct {
	HackathonID string `json:"hackathon_id"`
	ProjectID   string `json:"project_id"`
	VoterID     string `json:"voter_id"`
	Role        string `json:"role"`
	Kind        string `json:"kind"`
}

type VoteDTO struct {
	HackathonID string `json:"hackathon_id"`
	ProjectID   string `json:"project_id"`
	VoterID     string `json:"voter_id"`
	Role        string `json:"role"`
	Kind        string `json:"kind"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type CastVoteResponse struct {
	Vote    VoteDTO `json:"vote"`
	Updated bool    `json:"updated"`
}

type VoteListResponse struct {
	Items []VoteDTO `json:"items"`
}

type TallyDTO struct {
	HackathonID      string `json:"hackathon_id"`
	ProjectID        string `json:"project_id"`
	TotalVotes       int    `json:"total_votes"`
	SupportVotes     int    `json:"support_votes"`
	OpposeVotes      int    `json:"oppose_votes"`
	ContributorVotes int    `json:"contributor_votes"`
	MaintainerVotes  int    `json:"maintainer_votes"`
}

type TallyResponse struct {
	Tally TallyDTO `json:"tally"`
}

type TallyListResponse struct {
	Items []TallyDTO `json:"items"`
}
