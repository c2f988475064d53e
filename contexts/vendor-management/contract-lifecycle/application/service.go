package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"steward/contexts/vendor-management/contract-lifecycle/domain/entities"
	domainerrors "steward/contexts/vendor-management/contract-lifecycle/domain/errors"
	"steward/contexts/vendor-management/contract-lifecycle/domain/services"
	"steward/contexts/vendor-management/contract-lifecycle/ports"
)

type Service struct {
	Repo   ports.ContractRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// CreateContract validates input, runs the overlap and public-id pre-checks,
// derives the initial status, and persists. The repository's own constraints
// close the check-then-insert race; their violations surface as the same
// conflict sentinels the pre-checks produce.
func (s Service) CreateContract(ctx context.Context, input ports.CreateContractInput) (entities.Contract, error) {
	logger := ResolveLogger(s.Logger)
	now := s.now()

	if input.Status != "" && !input.Status.Valid() {
		return entities.Contract{}, domainerrors.ErrInvalidInput
	}
	if input.EndDate.Before(input.StartDate) {
		return entities.Contract{}, domainerrors.ErrInvalidDateRange
	}

	if err := s.ensureNoOverlap(ctx, input.VendorID, input.StartDate, input.EndDate, ""); err != nil {
		logger.Warn("contract create rejected",
			"event", "contract_create_rejected",
			"module", "vendor-management/contract-lifecycle",
			"layer", "application",
			"vendor_id", input.VendorID,
			"error", err.Error(),
		)
		return entities.Contract{}, err
	}

	if _, found, err := s.Repo.GetContractByPublicID(ctx, input.PublicID); err != nil {
		return entities.Contract{}, err
	} else if found {
		return entities.Contract{}, domainerrors.ErrDuplicateContractID
	}

	contractID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Contract{}, err
	}

	status := services.DeriveStatus(input.StartDate, input.EndDate, input.Status, now)
	contract, err := entities.NewContract(
		contractID,
		strings.TrimSpace(input.PublicID),
		strings.TrimSpace(input.VendorID),
		strings.TrimSpace(input.Title),
		input.Terms,
		input.StartDate,
		input.EndDate,
		input.DocumentURL,
		status,
		now,
	)
	if err != nil {
		return entities.Contract{}, err
	}

	if err := s.Repo.CreateContract(ctx, contract); err != nil {
		return entities.Contract{}, err
	}

	logger.Info("contract created",
		"event", "contract_created",
		"module", "vendor-management/contract-lifecycle",
		"layer", "application",
		"contract_id", contract.ContractID,
		"public_id", contract.PublicID,
		"vendor_id", contract.VendorID,
		"status", contract.Status,
	)
	return contract, nil
}

// UpdateContract merges partial input over the stored record, re-validating
// date ordering, vendor overlap (excluding the record's own id), and
// public-id uniqueness where the relevant fields changed. Status is
// re-derived with the explicit status from the input taking precedence, so
// an explicit TERMINATED pins the record and an explicit non-terminal status
// reopens time-driven derivation.
func (s Service) UpdateContract(ctx context.Context, contractID string, input ports.UpdateContractInput) (entities.Contract, error) {
	logger := ResolveLogger(s.Logger)
	now := s.now()

	contract, err := s.Repo.GetContract(ctx, contractID)
	if err != nil {
		return entities.Contract{}, err
	}

	start := contract.StartDate
	if input.StartDate != nil {
		start = input.StartDate.UTC()
	}
	end := contract.EndDate
	if input.EndDate != nil {
		end = input.EndDate.UTC()
	}
	if end.Before(start) {
		return entities.Contract{}, domainerrors.ErrInvalidDateRange
	}

	vendorID := contract.VendorID
	if input.VendorID != nil {
		vendorID = strings.TrimSpace(*input.VendorID)
		if vendorID == "" {
			return entities.Contract{}, domainerrors.ErrInvalidInput
		}
	}

	if input.VendorID != nil || input.StartDate != nil || input.EndDate != nil {
		if err := s.ensureNoOverlap(ctx, vendorID, start, end, contract.ContractID); err != nil {
			logger.Warn("contract update rejected",
				"event", "contract_update_rejected",
				"module", "vendor-management/contract-lifecycle",
				"layer", "application",
				"contract_id", contract.ContractID,
				"vendor_id", vendorID,
				"error", err.Error(),
			)
			return entities.Contract{}, err
		}
	}

	if input.PublicID != nil && *input.PublicID != contract.PublicID {
		publicID := strings.TrimSpace(*input.PublicID)
		if publicID == "" {
			return entities.Contract{}, domainerrors.ErrInvalidInput
		}
		if _, found, err := s.Repo.GetContractByPublicID(ctx, publicID); err != nil {
			return entities.Contract{}, err
		} else if found {
			return entities.Contract{}, domainerrors.ErrDuplicateContractID
		}
		contract.PublicID = publicID
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return entities.Contract{}, domainerrors.ErrInvalidInput
		}
		contract.Title = strings.TrimSpace(*input.Title)
	}
	if input.Terms != nil {
		if strings.TrimSpace(*input.Terms) == "" {
			return entities.Contract{}, domainerrors.ErrInvalidInput
		}
		contract.Terms = *input.Terms
	}
	if input.DocumentURL != nil {
		contract.DocumentURL = *input.DocumentURL
	}

	explicit := contract.Status
	if input.Status != nil {
		if !input.Status.Valid() {
			return entities.Contract{}, domainerrors.ErrInvalidInput
		}
		explicit = *input.Status
	}

	contract.VendorID = vendorID
	contract.StartDate = start
	contract.EndDate = end
	contract.Status = services.DeriveStatus(start, end, explicit, now)
	contract.UpdatedAt = now

	if err := s.Repo.UpdateContract(ctx, contract); err != nil {
		return entities.Contract{}, err
	}

	logger.Info("contract updated",
		"event", "contract_updated",
		"module", "vendor-management/contract-lifecycle",
		"layer", "application",
		"contract_id", contract.ContractID,
		"vendor_id", contract.VendorID,
		"status", contract.Status,
	)
	return contract, nil
}

// GetContract loads a record and runs HealContractStatus before returning,
// so callers always observe a status consistent with "now".
func (s Service) GetContract(ctx context.Context, contractID string) (entities.Contract, error) {
	contract, err := s.Repo.GetContract(ctx, contractID)
	if err != nil {
		return entities.Contract{}, err
	}
	return s.HealContractStatus(ctx, contract), nil
}

// ListContracts fetches by stored predicates, heals every row, and only then
// applies the derived Active/Expired filters, which depend on "now".
// Ordering by end date ascending comes from the repository.
func (s Service) ListContracts(ctx context.Context, filter ports.ContractListFilter) ([]entities.Contract, error) {
	now := s.now()

	rows, err := s.Repo.ListContracts(ctx, filter, now)
	if err != nil {
		return nil, err
	}

	items := make([]entities.Contract, 0, len(rows))
	for _, row := range rows {
		healed := s.HealContractStatus(ctx, row)
		if filter.Active && (healed.Status != entities.ContractStatusActive || !healed.CoversInstant(now)) {
			continue
		}
		if filter.Expired && (healed.Status != entities.ContractStatusExpired || !healed.EndDate.Before(now)) {
			continue
		}
		items = append(items, healed)
	}
	return items, nil
}

// HealContractStatus is the explicit self-heal operation: it recomputes the
// time-derived status and, on drift, persists the correction. The corrective
// write is best-effort; if it fails the caller still gets the corrected
// in-memory value and the next read repairs the store.
func (s Service) HealContractStatus(ctx context.Context, contract entities.Contract) entities.Contract {
	now := s.now()
	derived := services.DeriveStatus(contract.StartDate, contract.EndDate, contract.Status, now)
	if derived == contract.Status {
		return contract
	}

	contract.Status = derived
	contract.UpdatedAt = now
	if err := s.Repo.SaveContractStatus(ctx, contract.ContractID, derived, now); err != nil {
		ResolveLogger(s.Logger).Warn("contract status self-heal write failed",
			"event", "contract_status_heal_failed",
			"module", "vendor-management/contract-lifecycle",
			"layer", "application",
			"contract_id", contract.ContractID,
			"status", derived,
			"error", err.Error(),
		)
		return contract
	}

	ResolveLogger(s.Logger).Info("contract status healed",
		"event", "contract_status_healed",
		"module", "vendor-management/contract-lifecycle",
		"layer", "application",
		"contract_id", contract.ContractID,
		"status", derived,
	)
	return contract
}

// DeleteContract is a hard delete; there is no tombstone or cascade.
func (s Service) DeleteContract(ctx context.Context, contractID string) error {
	if err := s.Repo.DeleteContract(ctx, contractID); err != nil {
		return err
	}
	ResolveLogger(s.Logger).Info("contract deleted",
		"event", "contract_deleted",
		"module", "vendor-management/contract-lifecycle",
		"layer", "application",
		"contract_id", contractID,
	)
	return nil
}

// AttachDocument records the URL produced by the upload collaborator. It
// writes only the document pointer: no status recomputation, no interval
// re-validation.
func (s Service) AttachDocument(ctx context.Context, contractID string, url string) (entities.Contract, error) {
	if strings.TrimSpace(url) == "" {
		return entities.Contract{}, domainerrors.ErrInvalidInput
	}

	contract, err := s.Repo.GetContract(ctx, contractID)
	if err != nil {
		return entities.Contract{}, err
	}

	now := s.now()
	if err := s.Repo.SetDocumentURL(ctx, contract.ContractID, url, now); err != nil {
		return entities.Contract{}, err
	}
	contract.DocumentURL = url
	contract.UpdatedAt = now
	return contract, nil
}

func (s Service) ensureNoOverlap(ctx context.Context, vendorID string, start, end time.Time, excludeID string) error {
	if strings.TrimSpace(vendorID) == "" {
		return domainerrors.ErrInvalidInput
	}
	if end.Before(start) {
		return domainerrors.ErrInvalidDateRange
	}

	existing, err := s.Repo.ListVendorContracts(ctx, vendorID, excludeID)
	if err != nil {
		return err
	}
	if conflict := services.FindOverlap(existing, start, end, excludeID); conflict != nil {
		return domainerrors.ErrOverlappingContract
	}
	return nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
