package entities

import (
	"strings"
	"time"

	domainerrors "steward/contexts/vendor-management/contract-lifecycle/domain/errors"
)

type ContractStatus string

const (
	ContractStatusPending    ContractStatus = "PENDING"
	ContractStatusActive     ContractStatus = "ACTIVE"
	ContractStatusExpired    ContractStatus = "EXPIRED"
	ContractStatusTerminated ContractStatus = "TERMINATED"
)

// Contract is a vendor agreement valid over the [StartDate, EndDate] interval.
// PublicID is the caller-supplied, globally unique contract identifier;
// ContractID is the store-owned internal key.
type Contract struct {
	ContractID  string
	PublicID    string
	VendorID    string
	Title       string
	Terms       string
	StartDate   time.Time
	EndDate     time.Time
	DocumentURL string
	Status      ContractStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewContract(
	contractID string,
	publicID string,
	vendorID string,
	title string,
	terms string,
	startDate time.Time,
	endDate time.Time,
	documentURL string,
	status ContractStatus,
	createdAt time.Time,
) (Contract, error) {
	if strings.TrimSpace(contractID) == "" ||
		strings.TrimSpace(publicID) == "" ||
		strings.TrimSpace(vendorID) == "" ||
		strings.TrimSpace(title) == "" ||
		strings.TrimSpace(terms) == "" {
		return Contract{}, domainerrors.ErrInvalidInput
	}
	if endDate.Before(startDate) {
		return Contract{}, domainerrors.ErrInvalidDateRange
	}
	if !status.Valid() {
		return Contract{}, domainerrors.ErrInvalidInput
	}

	return Contract{
		ContractID:  contractID,
		PublicID:    publicID,
		VendorID:    vendorID,
		Title:       title,
		Terms:       terms,
		StartDate:   startDate.UTC(),
		EndDate:     endDate.UTC(),
		DocumentURL: documentURL,
		Status:      status,
		CreatedAt:   createdAt.UTC(),
		UpdatedAt:   createdAt.UTC(),
	}, nil
}

func (s ContractStatus) Valid() bool {
	switch s {
	case ContractStatusPending, ContractStatusActive, ContractStatusExpired, ContractStatusTerminated:
		return true
	default:
		return false
	}
}

// Blocking reports whether the contract counts against the vendor's
// no-overlap rule. Terminated contracts never block new ones.
func (c Contract) Blocking() bool {
	return c.Status != ContractStatusTerminated
}

// CoversInstant reports whether now falls inside the validity interval.
func (c Contract) CoversInstant(now time.Time) bool {
	instant := now.UTC()
	return !c.StartDate.After(instant) && !c.EndDate.Before(instant)
}
