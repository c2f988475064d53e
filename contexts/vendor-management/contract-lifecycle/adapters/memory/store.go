package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"steward/contexts/vendor-management/contract-lifecycle/domain/entities"
	domainerrors "steward/contexts/vendor-management/contract-lifecycle/domain/errors"
	"steward/contexts/vendor-management/contract-lifecycle/domain/services"
	"steward/contexts/vendor-management/contract-lifecycle/ports"
	"steward/internal/shared/events"

	"github.com/google/uuid"
)

// Store is the in-memory implementation of every contract-lifecycle port.
// Check-then-write sequences run under one mutex, which makes the overlap
// and public-id constraints atomic in-process, mirroring what the postgres
// adapter delegates to database constraints.
type Store struct {
	mu sync.RWMutex

	contracts map[string]entities.Contract
	outbox    map[string]outboxRecord
	alertKeys map[string]string
}

type outboxRecord struct {
	Message ports.OutboxMessage
	Status  string
	SentAt  *time.Time
}

const (
	outboxStatusPending = "pending"
	outboxStatusSent    = "sent"
)

func NewStore() *Store {
	return &Store{
		contracts: make(map[string]entities.Contract),
		outbox:    make(map[string]outboxRecord),
		alertKeys: make(map[string]string),
	}
}

func (s *Store) GetContract(_ context.Context, contractID string) (entities.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	contract, ok := s.contracts[strings.TrimSpace(contractID)]
	if !ok {
		return entities.Contract{}, domainerrors.ErrContractNotFound
	}
	return contract, nil
}

func (s *Store) GetContractByPublicID(_ context.Context, publicID string) (entities.Contract, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	contract, ok := s.findByPublicID(strings.TrimSpace(publicID))
	return contract, ok, nil
}

func (s *Store) ListContracts(_ context.Context, filter ports.ContractListFilter, now time.Time) ([]entities.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Contract, 0)
	windowEnd := now.UTC().AddDate(0, 0, filter.ExpiringWithinDays)
	for _, contract := range s.contracts {
		if filter.VendorID != "" && contract.VendorID != strings.TrimSpace(filter.VendorID) {
			continue
		}
		if filter.Status != "" && contract.Status != filter.Status {
			continue
		}
		if filter.ExpiringWithinDays > 0 {
			if !contract.Blocking() {
				continue
			}
			if contract.EndDate.Before(now.UTC()) || contract.EndDate.After(windowEnd) {
				continue
			}
		}
		items = append(items, contract)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].EndDate.Equal(items[j].EndDate) {
			return items[i].ContractID < items[j].ContractID
		}
		return items[i].EndDate.Before(items[j].EndDate)
	})
	return items, nil
}

func (s *Store) ListVendorContracts(_ context.Context, vendorID string, excludeID string) ([]entities.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.blockingVendorContracts(strings.TrimSpace(vendorID), excludeID), nil
}

func (s *Store) CreateContract(_ context.Context, contract entities.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(contract.ContractID)
	if id == "" {
		return domainerrors.ErrInvalidInput
	}
	if _, exists := s.contracts[id]; exists {
		return domainerrors.ErrDuplicateContractID
	}
	if _, exists := s.findByPublicID(contract.PublicID); exists {
		return domainerrors.ErrDuplicateContractID
	}
	if contract.Blocking() {
		existing := s.blockingVendorContracts(contract.VendorID, id)
		if services.FindOverlap(existing, contract.StartDate, contract.EndDate, id) != nil {
			return domainerrors.ErrOverlappingContract
		}
	}
	s.contracts[id] = contract
	return nil
}

func (s *Store) UpdateContract(_ context.Context, contract entities.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(contract.ContractID)
	if _, ok := s.contracts[id]; !ok {
		return domainerrors.ErrContractNotFound
	}
	if existing, ok := s.findByPublicID(contract.PublicID); ok && existing.ContractID != id {
		return domainerrors.ErrDuplicateContractID
	}
	if contract.Blocking() {
		existing := s.blockingVendorContracts(contract.VendorID, id)
		if services.FindOverlap(existing, contract.StartDate, contract.EndDate, id) != nil {
			return domainerrors.ErrOverlappingContract
		}
	}
	s.contracts[id] = contract
	return nil
}

func (s *Store) SaveContractStatus(_ context.Context, contractID string, status entities.ContractStatus, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	contract, ok := s.contracts[strings.TrimSpace(contractID)]
	if !ok {
		return domainerrors.ErrContractNotFound
	}
	contract.Status = status
	contract.UpdatedAt = updatedAt.UTC()
	s.contracts[contract.ContractID] = contract
	return nil
}

func (s *Store) SetDocumentURL(_ context.Context, contractID string, url string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	contract, ok := s.contracts[strings.TrimSpace(contractID)]
	if !ok {
		return domainerrors.ErrContractNotFound
	}
	contract.DocumentURL = url
	contract.UpdatedAt = updatedAt.UTC()
	s.contracts[contract.ContractID] = contract
	return nil
}

func (s *Store) DeleteContract(_ context.Context, contractID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(contractID)
	if _, ok := s.contracts[id]; !ok {
		return domainerrors.ErrContractNotFound
	}
	delete(s.contracts, id)
	return nil
}

func (s *Store) AppendExpiryAlert(_ context.Context, event ports.ExpiringContractEvent) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(event.EventID) == "" || strings.TrimSpace(event.ContractID) == "" {
		return false, domainerrors.ErrInvalidInput
	}
	alertKey := event.ContractID + "|" + event.EndDate.UTC().Format("2006-01-02")
	if _, exists := s.alertKeys[alertKey]; exists {
		return false, nil
	}

	envelope := events.Envelope{
		EventID:        event.EventID,
		EventType:      "contract.expiring",
		SourceService:  "contract-lifecycle",
		OccurredAtUTC:  event.OccurredAt.UTC(),
		EntityType:     "contract",
		EntityID:       event.ContractID,
		PayloadVersion: 1,
		Payload: map[string]any{
			"contract_id":       event.PublicID,
			"vendor_id":         event.VendorID,
			"title":             event.Title,
			"end_date":          event.EndDate.UTC().Format("2006-01-02"),
			"days_until_expiry": event.DaysUntilExpiry,
		},
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return false, err
	}

	s.alertKeys[alertKey] = event.EventID
	s.outbox[event.EventID] = outboxRecord{
		Message: ports.OutboxMessage{
			OutboxID:  event.EventID,
			EventType: "contract.expiring",
			Payload:   payload,
			CreatedAt: event.OccurredAt.UTC(),
		},
		Status: outboxStatusPending,
	}
	return true, nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxMessage, 0)
	for _, row := range s.outbox {
		if row.Status == outboxStatusPending {
			items = append(items, row.Message)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkOutboxSent(_ context.Context, outboxID string, sentAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.outbox[strings.TrimSpace(outboxID)]
	if !ok {
		return domainerrors.ErrContractNotFound
	}
	ts := sentAt.UTC()
	row.Status = outboxStatusSent
	row.SentAt = &ts
	s.outbox[strings.TrimSpace(outboxID)] = row
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) findByPublicID(publicID string) (entities.Contract, bool) {
	for _, contract := range s.contracts {
		if contract.PublicID == publicID {
			return contract, true
		}
	}
	return entities.Contract{}, false
}

func (s *Store) blockingVendorContracts(vendorID string, excludeID string) []entities.Contract {
	items := make([]entities.Contract, 0)
	for _, contract := range s.contracts {
		if contract.VendorID != vendorID || !contract.Blocking() {
			continue
		}
		if excludeID != "" && contract.ContractID == excludeID {
			continue
		}
		items = append(items, contract)
	}
	return items
}
