package queries

import (
	"context"
	"testing"
	"time"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/adapters/memory"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/domain/entities"
)

func seedVote(t *testing.T, store *memory.Store, projectID string, voterID string, role entities.VoterRole, kind entities.VoteKind) {
	t.Helper()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if _, _, err := store.UpsertVote(context.Background(), entities.Vote{
		HackathonID: "hack-1",
		ProjectID:   projectID,
		VoterID:     voterID,
		Role:        role,
		Kind:        kind,
		CreatedAt:   now,
		UpdatedAt:   now,
	}); err != nil {
		t.Fatalf("seed vote %s/%s: %v", projectID, voterID, err)
	}
}

func TestProjectTallyCountsKindsAndRoles(t *testing.T) {
	store := memory.NewStore()
	seedVote(t, store, "proj-1", "voter-1", entities.VoterRoleContributor, entities.VoteKindSupport)
	seedVote(t, store, "proj-1", "voter-2", entities.VoterRoleContributor, entities.VoteKindSupport)
	seedVote(t, store, "proj-1", "voter-3", entities.VoterRoleMaintainer, entities.VoteKindOppose)
	seedVote(t, store, "proj-2", "voter-1", entities.VoterRoleContributor, entities.VoteKindOppose)

	uc := TallyUseCase{Votes: store}
	tally, err := uc.ProjectTally(context.Background(), "proj-1")
	if err != nil {
		t.Fatalf("ProjectTally: %v", err)
	}
	if tally.TotalVotes != 3 || tally.SupportVotes != 2 || tally.OpposeVotes != 1 {
		t.Fatalf("tally = %+v, want 3 total, 2 support, 1 oppose", tally)
	}
	if tally.ContributorVotes != 2 || tally.MaintainerVotes != 1 {
		t.Fatalf("tally roles = %+v, want 2 contributor, 1 maintainer", tally)
	}
}

func TestHackathonTalliesOrderBySupportThenProjectID(t *testing.T) {
	store := memory.NewStore()
	seedVote(t, store, "proj-b", "voter-1", entities.VoterRoleContributor, entities.VoteKindSupport)
	seedVote(t, store, "proj-b", "voter-2", entities.VoterRoleContributor, entities.VoteKindSupport)
	seedVote(t, store, "proj-a", "voter-3", entities.VoterRoleContributor, entities.VoteKindSupport)
	seedVote(t, store, "proj-c", "voter-4", entities.VoterRoleContributor, entities.VoteKindSupport)

	uc := TallyUseCase{Votes: store}
	tallies, err := uc.HackathonTallies(context.Background(), "hack-1")
	if err != nil {
		t.Fatalf("HackathonTallies: %v", err)
	}
	if len(tallies) != 3 {
		t.Fatalf("tallies = %d, want 3", len(tallies))
	}
	if tallies[0].ProjectID != "proj-b" {
		t.Fatalf("first = %q, want proj-b with most support", tallies[0].ProjectID)
	}
	if tallies[1].ProjectID != "proj-a" || tallies[2].ProjectID != "proj-c" {
		t.Fatalf("ties must order by project id, got %q then %q", tallies[1].ProjectID, tallies[2].ProjectID)
	}
}
