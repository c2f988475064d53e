package services

import (
	"testing"
	"time"

	"steward/contexts/vendor-management/contract-lifecycle/domain/entities"
)

func TestDeriveStatusTimeOrdering(t *testing.T) {
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		now  time.Time
		want entities.ContractStatus
	}{
		{"before start", time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), entities.ContractStatusPending},
		{"at start", start, entities.ContractStatusActive},
		{"inside interval", time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC), entities.ContractStatusActive},
		{"at end", end, entities.ContractStatusActive},
		{"after end", time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), entities.ContractStatusExpired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveStatus(start, end, "", tc.now)
			if got != tc.want {
				t.Fatalf("DeriveStatus(now=%s) = %s, want %s", tc.now, got, tc.want)
			}
			if again := DeriveStatus(start, end, "", tc.now); again != got {
				t.Fatalf("DeriveStatus is not idempotent: %s then %s", got, again)
			}
		})
	}
}

func TestDeriveStatusTerminatedIsAbsorbing(t *testing.T) {
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)

	for _, now := range []time.Time{
		time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2030, time.June, 1, 0, 0, 0, 0, time.UTC),
	} {
		got := DeriveStatus(start, end, entities.ContractStatusTerminated, now)
		if got != entities.ContractStatusTerminated {
			t.Fatalf("terminated contract re-derived to %s at now=%s", got, now)
		}
	}
}

func TestDeriveStatusNonTerminalExplicitIsIgnored(t *testing.T) {
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	got := DeriveStatus(start, end, entities.ContractStatusActive, now)
	if got != entities.ContractStatusExpired {
		t.Fatalf("explicit ACTIVE past end derived %s, want EXPIRED", got)
	}
}
