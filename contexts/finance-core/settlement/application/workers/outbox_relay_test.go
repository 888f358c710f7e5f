package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/adapters/memory"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/ports"
)

type recordingPublisher struct {
	delivered []string
	failAt    int
	calls     int
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	p.calls++
	if p.failAt > 0 && p.calls == p.failAt {
		return errors.New("broker unavailable")
	}
	p.delivered = append(p.delivered, topic+"/"+event.EventID)
	return nil
}

func seedOutbox(t *testing.T, store *memory.Store, eventID string, eventType string, occurredAt time.Time) {
	t.Helper()
	err := store.AppendOutbox(context.Background(), ports.EventEnvelope{
		EventID:       eventID,
		EventType:     eventType,
		SourceService: "openwave",
		OccurredAtUTC: occurredAt,
		EntityType:    "split_payment",
		EntityID:      eventID,
		PartitionKey:  "hack-1",
		SchemaVersion: 1,
	})
	if err != nil {
		t.Fatalf("AppendOutbox: %v", err)
	}
}

func TestRunOnceRoutesEventsByTypeAndMarksThemPublished(t *testing.T) {
	store := memory.NewStore()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	seedOutbox(t, store, "evt-1", "settlement.completed", base)
	seedOutbox(t, store, "evt-2", "settlement.failed", base.Add(time.Second))

	publisher := &recordingPublisher{}
	relay := OutboxRelay{Outbox: store, Publisher: publisher, Clock: memory.SystemClock{}}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	want := []string{"settlement.completed/evt-1", "settlement.failed/evt-2"}
	if len(publisher.delivered) != len(want) {
		t.Fatalf("delivered = %v, want %v", publisher.delivered, want)
	}
	for i := range want {
		if publisher.delivered[i] != want[i] {
			t.Fatalf("delivered[%d] = %q, want %q", i, publisher.delivered[i], want[i])
		}
	}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("second RunOnce: %v", err)
	}
	if len(publisher.delivered) != 2 {
		t.Fatalf("published rows were relayed again: %v", publisher.delivered)
	}
}

func TestRunOnceStopsOnFirstPublishFailure(t *testing.T) {
	store := memory.NewStore()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	seedOutbox(t, store, "evt-1", "settlement.completed", base)
	seedOutbox(t, store, "evt-2", "settlement.completed", base.Add(time.Second))

	publisher := &recordingPublisher{failAt: 2}
	relay := OutboxRelay{Outbox: store, Publisher: publisher, Clock: memory.SystemClock{}}

	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatal("RunOnce should surface the publish failure")
	}
	if len(publisher.delivered) != 1 || publisher.delivered[0] != "settlement.completed/evt-1" {
		t.Fatalf("delivered before failure = %v, want only evt-1", publisher.delivered)
	}

	// The failed row stays pending; only it is retried on the next cycle.
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("retry RunOnce: %v", err)
	}
	if len(publisher.delivered) != 2 || publisher.delivered[1] != "settlement.completed/evt-2" {
		t.Fatalf("retry delivered = %v, want evt-2 appended", publisher.delivered)
	}
}
