package services

import (
	"time"

	"steward/contexts/vendor-management/contract-lifecycle/domain/entities"
)

// IntervalsOverlap implements the vendor exclusivity predicate:
// [s1,e1] and [s2,e2] intersect iff NOT (e1 < s2 OR s1 > e2).
// Boundary-touching intervals (e1 == s2) count as overlapping; product has
// not confirmed whether back-to-back contracts should be allowed, so the
// stricter rule stands.
func IntervalsOverlap(s1, e1, s2, e2 time.Time) bool {
	return !(e1.Before(s2) || s1.After(e2))
}

// FindOverlap scans a vendor's existing contracts for one whose interval
// intersects [start, end]. Terminated contracts never block, and excludeID
// skips the record being updated so it cannot conflict with itself.
//
// This scan is the optimistic pre-check only; the repository's exclusion
// constraint is what makes concurrent writers safe.
func FindOverlap(
	existing []entities.Contract,
	start time.Time,
	end time.Time,
	excludeID string,
) *entities.Contract {
	for _, contract := range existing {
		if !contract.Blocking() {
			continue
		}
		if excludeID != "" && contract.ContractID == excludeID {
			continue
		}
		if IntervalsOverlap(contract.StartDate, contract.EndDate, start.UTC(), end.UTC()) {
			conflicting := contract
			return &conflicting
		}
	}
	return nil
}
