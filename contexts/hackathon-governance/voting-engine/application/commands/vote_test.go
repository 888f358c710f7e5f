package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/adapters/memory"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/domain/entities"
	domainerrors "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/domain/errors"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type sequenceIDGen struct {
	next int
}

func (g *sequenceIDGen) NewID(_ context.Context) (string, error) {
	g.next++
	return fmt.Sprintf("event-%04d", g.next), nil
}

func newTestUseCase() (VoteUseCase, *memory.Store, *fixedClock) {
	store := memory.NewStore()
	clock := &fixedClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	uc := VoteUseCase{
		Votes:  store,
		Outbox: store,
		Clock:  clock,
		IDGen:  &sequenceIDGen{},
	}
	return uc, store, clock
}

func TestCastVoteStoresVoteAndEmitsOutboxEvent(t *testing.T) {
	uc, store, _ := newTestUseCase()
	ctx := context.Background()

	result, err := uc.CastVote(ctx, CastVoteCommand{
		HackathonID: "hack-1",
		ProjectID:   "proj-1",
		VoterID:     "voter-1",
		Role:        entities.VoterRoleContributor,
		Kind:        entities.VoteKindSupport,
	})
	if err != nil {
		t.Fatalf("CastVote: %v", err)
	}
	if result.Updated {
		t.Fatalf("first vote must not report updated")
	}
	if result.Vote.Kind != entities.VoteKindSupport {
		t.Fatalf("kind = %q, want support", result.Vote.Kind)
	}

	pending, err := store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("ListPendingOutbox: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending outbox = %d, want 1", len(pending))
	}
	if pending[0].EventType != "vote.cast" {
		t.Fatalf("event type = %q, want vote.cast", pending[0].EventType)
	}
}

func TestRevoteReplacesEarlierVoteAndLeavesOneRow(t *testing.T) {
	uc, store, clock := newTestUseCase()
	ctx := context.Background()

	first, err := uc.CastVote(ctx, CastVoteCommand{
		HackathonID: "hack-1",
		ProjectID:   "proj-1",
		VoterID:     "voter-1",
		Role:        entities.VoterRoleContributor,
		Kind:        entities.VoteKindSupport,
	})
	if err != nil {
		t.Fatalf("first CastVote: %v", err)
	}

	clock.now = clock.now.Add(time.Minute)
	second, err := uc.CastVote(ctx, CastVoteCommand{
		HackathonID: "hack-1",
		ProjectID:   "proj-1",
		VoterID:     "voter-1",
		Role:        entities.VoterRoleMaintainer,
		Kind:        entities.VoteKindOppose,
	})
	if err != nil {
		t.Fatalf("second CastVote: %v", err)
	}
	if !second.Updated {
		t.Fatalf("revote must report updated")
	}
	if second.Vote.Kind != entities.VoteKindOppose {
		t.Fatalf("revote kind = %q, want oppose", second.Vote.Kind)
	}
	if second.Vote.Role != entities.VoterRoleMaintainer {
		t.Fatalf("revote role = %q, want maintainer", second.Vote.Role)
	}
	if !second.Vote.CreatedAt.Equal(first.Vote.CreatedAt) {
		t.Fatalf("revote must keep original created_at")
	}

	votes, err := store.ListVotesByProject(ctx, "proj-1")
	if err != nil {
		t.Fatalf("ListVotesByProject: %v", err)
	}
	if len(votes) != 1 {
		t.Fatalf("stored votes = %d, want 1 after revote", len(votes))
	}
	if votes[0].Kind != entities.VoteKindOppose {
		t.Fatalf("stored kind = %q, want oppose", votes[0].Kind)
	}
}

func TestCastVoteRejectsInvalidInput(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	cases := []CastVoteCommand{
		{ProjectID: "proj-1", VoterID: "voter-1", Role: entities.VoterRoleContributor, Kind: entities.VoteKindSupport},
		{HackathonID: "hack-1", VoterID: "voter-1", Role: entities.VoterRoleContributor, Kind: entities.VoteKindSupport},
		{HackathonID: "hack-1", ProjectID: "proj-1", Role: entities.VoterRoleContributor, Kind: entities.VoteKindSupport},
		{HackathonID: "hack-1", ProjectID: "proj-1", VoterID: "voter-1", Role: entities.VoterRoleContributor, Kind: "abstain"},
		{HackathonID: "hack-1", ProjectID: "proj-1", VoterID: "voter-1", Role: "sponsor", Kind: entities.VoteKindSupport},
	}
	for i, cmd := range cases {
		if _, err := uc.CastVote(ctx, cmd); !errors.Is(err, domainerrors.ErrInvalidVoteInput) {
			t.Fatalf("case %d: err = %v, want ErrInvalidVoteInput", i, err)
		}
	}
}

func TestVotersAreIndependentAcrossProjects(t *testing.T) {
	uc, store, _ := newTestUseCase()
	ctx := context.Background()

	for _, projectID := range []string{"proj-1", "proj-2"} {
		if _, err := uc.CastVote(ctx, CastVoteCommand{
			HackathonID: "hack-1",
			ProjectID:   projectID,
			VoterID:     "voter-1",
			Role:        entities.VoterRoleContributor,
			Kind:        entities.VoteKindSupport,
		}); err != nil {
			t.Fatalf("CastVote %s: %v", projectID, err)
		}
	}

	votes, err := store.ListVotesByHackathon(ctx, "hack-1")
	if err != nil {
		t.Fatalf("ListVotesByHackathon: %v", err)
	}
	if len(votes) != 2 {
		t.Fatalf("hackathon votes = %d, want 2", len(votes))
	}
}
