package entities

import "time"

type VoteKind string

const (
	VoteKindSupport VoteKind = "support"
	VoteKindOppose  VoteKind = "oppose"
)

type VoterRole string

const (
	VoterRoleContributor VoterRole = "contributor"
	VoterRoleMaintainer  VoterRole = "maintainer"
)

// Vote is the single current vote of one voter on one project. Repeat votes
// overwrite kind and role in place; CreatedAt survives the overwrite.
type Vote struct {
	HackathonID string
	ProjectID   string
	VoterID     string
	Role        VoterRole
	Kind        VoteKind
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Tally is the per-project aggregate of current votes.
type Tally struct {
	ProjectID        string
	HackathonID      string
	TotalVotes       int
	SupportVotes     int
	OpposeVotes      int
	ContributorVotes int
	MaintainerVotes  int
}
