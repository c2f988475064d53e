package services

import (
	"testing"
	"time"

	"steward/contexts/vendor-management/contract-lifecycle/domain/entities"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIntervalsOverlap(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"disjoint before", date(2025, 1, 1), date(2025, 3, 31), date(2025, 4, 1), date(2025, 6, 30), false},
		{"disjoint after", date(2025, 7, 1), date(2025, 12, 31), date(2025, 1, 1), date(2025, 6, 30), false},
		{"contained", date(2025, 3, 1), date(2025, 4, 1), date(2025, 1, 1), date(2025, 12, 31), true},
		{"partial", date(2025, 5, 1), date(2025, 8, 1), date(2025, 1, 1), date(2025, 6, 30), true},
		{"boundary touch end-start", date(2025, 1, 1), date(2025, 6, 30), date(2025, 6, 30), date(2025, 12, 31), true},
		{"boundary touch start-end", date(2025, 6, 30), date(2025, 12, 31), date(2025, 1, 1), date(2025, 6, 30), true},
		{"identical", date(2025, 1, 1), date(2025, 6, 30), date(2025, 1, 1), date(2025, 6, 30), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IntervalsOverlap(tc.s1, tc.e1, tc.s2, tc.e2); got != tc.want {
				t.Fatalf("IntervalsOverlap = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFindOverlapSkipsTerminatedAndExcluded(t *testing.T) {
	existing := []entities.Contract{
		{
			ContractID: "c-terminated",
			VendorID:   "v1",
			StartDate:  date(2025, 1, 1),
			EndDate:    date(2025, 12, 31),
			Status:     entities.ContractStatusTerminated,
		},
		{
			ContractID: "c-self",
			VendorID:   "v1",
			StartDate:  date(2025, 1, 1),
			EndDate:    date(2025, 6, 30),
			Status:     entities.ContractStatusActive,
		},
	}

	if conflict := FindOverlap(existing, date(2025, 2, 1), date(2025, 3, 1), "c-self"); conflict != nil {
		t.Fatalf("expected no conflict, got %s", conflict.ContractID)
	}
	conflict := FindOverlap(existing, date(2025, 2, 1), date(2025, 3, 1), "")
	if conflict == nil || conflict.ContractID != "c-self" {
		t.Fatalf("expected conflict with c-self, got %+v", conflict)
	}
}
