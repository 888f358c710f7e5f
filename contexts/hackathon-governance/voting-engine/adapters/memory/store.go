package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/domain/entities"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/ports"
)

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

type Store struct {
	mu     sync.RWMutex
	votes  map[string]entities.Vote
	outbox map[string]outboxRecord
}

func NewStore() *Store {
	return &Store{
		votes:  make(map[string]entities.Vote),
		outbox: make(map[string]outboxRecord),
	}
}

// UpsertVote holds the store lock for the whole read-modify-write so
// concurrent revotes by the same voter collapse to a single winner by arrival
// order, not by client timestamps.
func (s *Store) UpsertVote(_ context.Context, vote entities.Vote) (entities.Vote, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := voteKey(vote.ProjectID, vote.VoterID)
	existing, updated := s.votes[key]
	if updated {
		vote.CreatedAt = existing.CreatedAt
	}
	s.votes[key] = vote
	return vote, updated, nil
}

func (s *Store) ListVotesByProject(_ context.Context, projectID string) ([]entities.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projectID = strings.TrimSpace(projectID)
	items := make([]entities.Vote, 0)
	for _, vote := range s.votes {
		if vote.ProjectID == projectID {
			items = append(items, vote)
		}
	}
	sortVotes(items)
	return items, nil
}

func (s *Store) ListVotesByHackathon(_ context.Context, hackathonID string) ([]entities.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hackathonID = strings.TrimSpace(hackathonID)
	items := make([]entities.Vote, 0)
	for _, vote := range s.votes {
		if vote.HackathonID == hackathonID {
			items = append(items, vote)
		}
	}
	sortVotes(items)
	return items, nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	outboxID := strings.TrimSpace(envelope.EventID)
	if outboxID == "" {
		outboxID = uuid.NewString()
	}
	createdAt := envelope.OccurredAtUTC.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	s.outbox[outboxID] = outboxRecord{
		message: ports.OutboxMessage{
			OutboxID:     outboxID,
			EventType:    strings.TrimSpace(envelope.EventType),
			PartitionKey: strings.TrimSpace(envelope.PartitionKey),
			Payload:      payload,
			CreatedAt:    createdAt,
		},
	}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxMessage, 0, len(s.outbox))
	for _, row := range s.outbox {
		if row.published {
			continue
		}
		items = append(items, row.message)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.outbox[strings.TrimSpace(outboxID)]
	if !ok {
		return nil
	}
	row.published = true
	s.outbox[strings.TrimSpace(outboxID)] = row
	return nil
}

func voteKey(projectID string, voterID string) string {
	return strings.TrimSpace(projectID) + "|" + strings.TrimSpace(voterID)
}

func sortVotes(items []entities.Vote) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].ProjectID == items[j].ProjectID {
			return items[i].VoterID < items[j].VoterID
		}
		return items[i].ProjectID < items[j].ProjectID
	})
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
