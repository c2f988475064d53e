package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"steward/contexts/vendor-management/contract-lifecycle/domain/entities"
	domainerrors "steward/contexts/vendor-management/contract-lifecycle/domain/errors"
	"steward/contexts/vendor-management/contract-lifecycle/ports"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func contract(id, publicID, vendorID string, start, end time.Time, status entities.ContractStatus) entities.Contract {
	return entities.Contract{
		ContractID: id,
		PublicID:   publicID,
		VendorID:   vendorID,
		Title:      "Service agreement",
		Terms:      "Standard terms",
		StartDate:  start,
		EndDate:    end,
		Status:     status,
		CreatedAt:  start,
		UpdatedAt:  start,
	}
}

func TestStoreEnforcesOverlapConstraint(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if err := store.CreateContract(ctx, contract("c1", "CT-1", "v1", date(2025, 1, 1), date(2025, 6, 30), entities.ContractStatusActive)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	err := store.CreateContract(ctx, contract("c2", "CT-2", "v1", date(2025, 6, 30), date(2025, 12, 31), entities.ContractStatusPending))
	if !errors.Is(err, domainerrors.ErrOverlappingContract) {
		t.Fatalf("expected overlap rejection at the store, got %v", err)
	}

	// The constraint only binds non-terminated rows of the same vendor.
	if err := store.CreateContract(ctx, contract("c3", "CT-3", "v2", date(2025, 6, 30), date(2025, 12, 31), entities.ContractStatusPending)); err != nil {
		t.Fatalf("other vendor should pass: %v", err)
	}
	if err := store.CreateContract(ctx, contract("c4", "CT-4", "v1", date(2025, 2, 1), date(2025, 3, 1), entities.ContractStatusTerminated)); err != nil {
		t.Fatalf("terminated row should pass: %v", err)
	}
}

func TestStoreEnforcesPublicIDUniqueness(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if err := store.CreateContract(ctx, contract("c1", "CT-1", "v1", date(2025, 1, 1), date(2025, 6, 30), entities.ContractStatusActive)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	err := store.CreateContract(ctx, contract("c2", "CT-1", "v2", date(2026, 1, 1), date(2026, 6, 30), entities.ContractStatusPending))
	if !errors.Is(err, domainerrors.ErrDuplicateContractID) {
		t.Fatalf("expected duplicate public id rejection, got %v", err)
	}
}

func TestStoreListExpiringWindow(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	now := date(2025, 6, 1)

	if err := store.CreateContract(ctx, contract("c1", "CT-1", "v1", date(2025, 1, 1), date(2025, 6, 15), entities.ContractStatusActive)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := store.CreateContract(ctx, contract("c2", "CT-2", "v2", date(2025, 1, 1), date(2025, 9, 1), entities.ContractStatusActive)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := store.CreateContract(ctx, contract("c3", "CT-3", "v3", date(2025, 1, 1), date(2025, 6, 20), entities.ContractStatusTerminated)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	items, err := store.ListContracts(ctx, ports.ContractListFilter{ExpiringWithinDays: 30}, now)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].ContractID != "c1" {
		t.Fatalf("expiring window = %+v, want only c1", items)
	}
}

func TestStoreExpiryAlertDedup(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	event := ports.ExpiringContractEvent{
		EventID:         "evt-1",
		ContractID:      "c1",
		PublicID:        "CT-1",
		VendorID:        "v1",
		Title:           "Service agreement",
		EndDate:         date(2025, 6, 15),
		DaysUntilExpiry: 14,
		OccurredAt:      date(2025, 6, 1),
	}
	created, err := store.AppendExpiryAlert(ctx, event)
	if err != nil || !created {
		t.Fatalf("first append = (%v, %v), want staged", created, err)
	}

	event.EventID = "evt-2"
	created, err = store.AppendExpiryAlert(ctx, event)
	if err != nil {
		t.Fatalf("second append failed: %v", err)
	}
	if created {
		t.Fatalf("same contract/end date staged twice")
	}

	pending, err := store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(pending))
	}

	if err := store.MarkOutboxSent(ctx, pending[0].OutboxID, date(2025, 6, 1)); err != nil {
		t.Fatalf("mark sent failed: %v", err)
	}
	pending, err = store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("pending after send = %d, want 0", len(pending))
	}
}
