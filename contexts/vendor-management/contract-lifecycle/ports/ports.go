package ports

import (
	"context"
	"time"

	"steward/contexts/vendor-management/contract-lifecycle/domain/entities"
	"steward/internal/shared/events"
)

// Clock allows deterministic testing of status derivation and expiry windows.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts contract/event identifier generation.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// CreateContractInput carries validated, parsed fields for contract creation.
// Status is optional; blank means "derive from dates".
type CreateContractInput struct {
	PublicID    string
	VendorID    string
	Title       string
	Terms       string
	StartDate   time.Time
	EndDate     time.Time
	DocumentURL string
	Status      entities.ContractStatus
}

// UpdateContractInput carries partial updates; nil fields keep stored values.
type UpdateContractInput struct {
	PublicID    *string
	VendorID    *string
	Title       *string
	Terms       *string
	StartDate   *time.Time
	EndDate     *time.Time
	DocumentURL *string
	Status      *entities.ContractStatus
}

// ContractListFilter defines read-side filtering for contract listings.
// Active/Expired are derived predicates resolved against healed statuses in
// the application layer, not pushed into the store.
type ContractListFilter struct {
	VendorID           string
	Status             entities.ContractStatus
	Active             bool
	Expired            bool
	ExpiringWithinDays int
}

// ContractRepository owns contract persistence.
//
// CreateContract and UpdateContract must enforce public-id uniqueness and the
// vendor no-overlap rule atomically (constraint or serialized check) and
// report violations as the module's conflict sentinels; the application-level
// pre-checks are an optimization, not the safety mechanism.
type ContractRepository interface {
	GetContract(ctx context.Context, contractID string) (entities.Contract, error)
	GetContractByPublicID(ctx context.Context, publicID string) (entities.Contract, bool, error)
	// ListContracts returns rows ordered by end_date ascending.
	ListContracts(ctx context.Context, filter ContractListFilter, now time.Time) ([]entities.Contract, error)
	// ListVendorContracts returns the vendor's non-terminated contracts,
	// excluding excludeID when non-empty.
	ListVendorContracts(ctx context.Context, vendorID string, excludeID string) ([]entities.Contract, error)
	CreateContract(ctx context.Context, contract entities.Contract) error
	UpdateContract(ctx context.Context, contract entities.Contract) error
	// SaveContractStatus is the idempotent absolute write used by self-heal.
	SaveContractStatus(ctx context.Context, contractID string, status entities.ContractStatus, updatedAt time.Time) error
	SetDocumentURL(ctx context.Context, contractID string, url string, updatedAt time.Time) error
	DeleteContract(ctx context.Context, contractID string) error
}

// ExpiringContractEvent is the outbound alert payload persisted to outbox.
type ExpiringContractEvent struct {
	EventID         string
	ContractID      string
	PublicID        string
	VendorID        string
	Title           string
	EndDate         time.Time
	DaysUntilExpiry int
	OccurredAt      time.Time
}

// OutboxMessage is a row ready to relay from the module outbox.
type OutboxMessage struct {
	OutboxID  string
	EventType string
	Payload   []byte
	CreatedAt time.Time
}

// OutboxRepository models worker-side alert staging and relay.
// AppendExpiryAlert must be idempotent per (contract, end date) so repeated
// sweeps do not respawn alerts that were already staged or sent.
type OutboxRepository interface {
	AppendExpiryAlert(ctx context.Context, event ExpiringContractEvent) (bool, error)
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error
}

// EventEnvelope is the canonical cross-module event shape.
type EventEnvelope = events.Envelope

// EventPublisher publishes canonical envelopes to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
