package services

import (
	"time"

	"steward/contexts/vendor-management/contract-lifecycle/domain/entities"
)

// DeriveStatus maps a validity interval and "now" to the contract status.
// An explicit TERMINATED pins the result: time never reopens a terminated
// contract. Pure and deterministic, safe to call from read and write paths.
func DeriveStatus(
	start time.Time,
	end time.Time,
	explicit entities.ContractStatus,
	now time.Time,
) entities.ContractStatus {
	if explicit == entities.ContractStatusTerminated {
		return entities.ContractStatusTerminated
	}
	instant := now.UTC()
	if end.UTC().Before(instant) {
		return entities.ContractStatusExpired
	}
	if start.UTC().After(instant) {
		return entities.ContractStatusPending
	}
	return entities.ContractStatusActive
}
