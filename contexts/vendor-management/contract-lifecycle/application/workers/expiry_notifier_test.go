package workers

import (
	"context"
	"testing"
	"time"

	"steward/contexts/vendor-management/contract-lifecycle/adapters/memory"
	"steward/contexts/vendor-management/contract-lifecycle/application"
	"steward/contexts/vendor-management/contract-lifecycle/ports"
)

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }

type recordingPublisher struct {
	published []ports.EventEnvelope
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, event ports.EventEnvelope) error {
	p.published = append(p.published, event)
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpiryNotifierStagesAndRelaysOnce(t *testing.T) {
	store := memory.NewStore()
	clock := fixedClock{now: date(2025, 6, 1)}
	service := application.Service{Repo: store, Clock: clock, IDGen: store}

	mk := func(publicID, vendorID string, end time.Time) {
		if _, err := service.CreateContract(context.Background(), ports.CreateContractInput{
			PublicID:  publicID,
			VendorID:  vendorID,
			Title:     "Support contract",
			Terms:     "Annual support",
			StartDate: date(2025, 1, 1),
			EndDate:   end,
		}); err != nil {
			t.Fatalf("create %s failed: %v", publicID, err)
		}
	}
	mk("CT-soon", "v1", date(2025, 6, 20))
	mk("CT-later", "v2", date(2026, 6, 20))

	notifier := ExpiryNotifier{
		Service:     service,
		Outbox:      store,
		Clock:       clock,
		IDGenerator: store,
		AlertDays:   30,
	}
	if err := notifier.RunOnce(context.Background()); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("staged = %d, want 1 (only the contract inside the window)", len(pending))
	}

	// A second sweep must not respawn the same alert.
	if err := notifier.RunOnce(context.Background()); err != nil {
		t.Fatalf("second sweep failed: %v", err)
	}
	pending, err = store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("second sweep staged duplicates: %d pending", len(pending))
	}

	publisher := &recordingPublisher{}
	relay := OutboxRelay{
		Outbox:    store,
		Publisher: publisher,
		Clock:     clock,
	}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay failed: %v", err)
	}
	if len(publisher.published) != 1 {
		t.Fatalf("published = %d, want 1", len(publisher.published))
	}
	if publisher.published[0].EventType != "contract.expiring" {
		t.Fatalf("event type = %s", publisher.published[0].EventType)
	}

	pending, err = store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("outbox not drained: %d pending", len(pending))
	}
}
