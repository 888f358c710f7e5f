package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/adapters/memory"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/ports"
)

type capturingPublisher struct {
	published []string
	failFirst bool
	calls     int
}

func (p *capturingPublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	p.calls++
	if p.failFirst && p.calls == 1 {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, topic+"/"+event.EventID)
	return nil
}

func seedOutbox(t *testing.T, store *memory.Store, eventID string, occurredAt time.Time) {
	t.Helper()
	err := store.AppendOutbox(context.Background(), ports.EventEnvelope{
		EventID:       eventID,
		EventType:     "vote.cast",
		SourceService: "openwave",
		OccurredAtUTC: occurredAt,
		EntityType:    "vote",
		EntityID:      eventID,
		PartitionKey:  "hack-1",
		SchemaVersion: 1,
	})
	if err != nil {
		t.Fatalf("AppendOutbox: %v", err)
	}
}

func TestRunOncePublishesPendingRowsOnce(t *testing.T) {
	store := memory.NewStore()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	seedOutbox(t, store, "evt-1", base)
	seedOutbox(t, store, "evt-2", base.Add(time.Second))

	publisher := &capturingPublisher{}
	relay := OutboxRelay{Outbox: store, Publisher: publisher, Clock: memory.SystemClock{}}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if len(publisher.published) != 2 {
		t.Fatalf("published = %v, want 2 events", publisher.published)
	}
	if publisher.published[0] != "vote.cast/evt-1" || publisher.published[1] != "vote.cast/evt-2" {
		t.Fatalf("published out of order: %v", publisher.published)
	}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("second RunOnce: %v", err)
	}
	if len(publisher.published) != 2 {
		t.Fatalf("published rows were relayed again: %v", publisher.published)
	}
}

func TestRunOnceKeepsRowPendingWhenPublishFails(t *testing.T) {
	store := memory.NewStore()
	seedOutbox(t, store, "evt-1", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	publisher := &capturingPublisher{failFirst: true}
	relay := OutboxRelay{Outbox: store, Publisher: publisher, Clock: memory.SystemClock{}}

	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatal("RunOnce should surface the publish failure")
	}
	if len(publisher.published) != 0 {
		t.Fatalf("failed publish recorded as delivered: %v", publisher.published)
	}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("retry RunOnce: %v", err)
	}
	if len(publisher.published) != 1 || publisher.published[0] != "vote.cast/evt-1" {
		t.Fatalf("retry did not republish the pending row: %v", publisher.published)
	}
}
