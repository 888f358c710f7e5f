package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/domain/entities"
	domainerrors "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/domain/errors"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/ports"
)

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

type Store struct {
	mu       sync.RWMutex
	payments map[string]entities.SplitPayment
	outbox   map[string]outboxRecord
}

func NewStore() *Store {
	return &Store{
		payments: make(map[string]entities.SplitPayment),
		outbox:   make(map[string]outboxRecord),
	}
}

func (s *Store) SaveSplitPayment(_ context.Context, payment entities.SplitPayment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments[payment.ID] = payment
	return nil
}

func (s *Store) GetSplitPayment(_ context.Context, paymentID string) (entities.SplitPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payment, ok := s.payments[strings.TrimSpace(paymentID)]
	if !ok {
		return entities.SplitPayment{}, domainerrors.ErrSettlementNotFound
	}
	return payment, nil
}

// GetSplitPaymentByProject returns the latest attempt for the project.
func (s *Store) GetSplitPaymentByProject(_ context.Context, projectID string) (entities.SplitPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projectID = strings.TrimSpace(projectID)
	var latest entities.SplitPayment
	found := false
	for _, payment := range s.payments {
		if payment.ProjectID != projectID {
			continue
		}
		if !found || payment.CreatedAt.After(latest.CreatedAt) {
			latest = payment
			found = true
		}
	}
	if !found {
		return entities.SplitPayment{}, domainerrors.ErrSettlementNotFound
	}
	return latest, nil
}

func (s *Store) ListSplitPaymentsByHackathon(_ context.Context, hackathonID string) ([]entities.SplitPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hackathonID = strings.TrimSpace(hackathonID)
	items := make([]entities.SplitPayment, 0)
	for _, payment := range s.payments {
		if payment.HackathonID == hackathonID {
			items = append(items, payment)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
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

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
