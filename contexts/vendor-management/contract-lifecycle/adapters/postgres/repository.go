package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"steward/contexts/vendor-management/contract-lifecycle/domain/entities"
	domainerrors "steward/contexts/vendor-management/contract-lifecycle/domain/errors"
	"steward/contexts/vendor-management/contract-lifecycle/ports"
	"steward/internal/shared/events"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending = "pending"
	outboxStatusSent    = "sent"
)

// Repository is the postgres ContractRepository/OutboxRepository.
//
// The vendor no-overlap rule is enforced by the vendor_contracts_no_overlap
// exclusion constraint:
//
//	EXCLUDE USING gist (vendor_id WITH =, daterange(start_date, end_date, '[]') WITH &&)
//	WHERE (status <> 'TERMINATED')
//
// and public-id uniqueness by vendor_contracts_public_id_key. The service's
// pre-checks only shortcut the common case; these constraints close the
// check-then-write race across concurrent instances.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) GetContract(ctx context.Context, contractID string) (entities.Contract, error) {
	var row contractModel
	err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Contract{}, domainerrors.ErrContractNotFound
		}
		return entities.Contract{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetContractByPublicID(ctx context.Context, publicID string) (entities.Contract, bool, error) {
	var row contractModel
	err := r.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Contract{}, false, nil
		}
		return entities.Contract{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListContracts(ctx context.Context, filter ports.ContractListFilter, now time.Time) ([]entities.Contract, error) {
	tx := r.db.WithContext(ctx).Model(&contractModel{})
	if strings.TrimSpace(filter.VendorID) != "" {
		tx = tx.Where("vendor_id = ?", strings.TrimSpace(filter.VendorID))
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if filter.ExpiringWithinDays > 0 {
		windowEnd := now.UTC().AddDate(0, 0, filter.ExpiringWithinDays)
		tx = tx.Where("status <> ?", string(entities.ContractStatusTerminated)).
			Where("end_date BETWEEN ? AND ?", now.UTC(), windowEnd)
	}

	var rows []contractModel
	if err := tx.
		Order(clause.OrderByColumn{Column: clause.Column{Name: "end_date"}, Desc: false}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "contract_id"}, Desc: false}).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.Contract, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListVendorContracts(ctx context.Context, vendorID string, excludeID string) ([]entities.Contract, error) {
	tx := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Where("status <> ?", string(entities.ContractStatusTerminated))
	if excludeID != "" {
		tx = tx.Where("contract_id <> ?", excludeID)
	}

	var rows []contractModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Contract, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CreateContract(ctx context.Context, contract entities.Contract) error {
	row := contractModelFromEntity(contract)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return translateConstraintViolation(err)
	}
	return nil
}

func (r *Repository) UpdateContract(ctx context.Context, contract entities.Contract) error {
	row := contractModelFromEntity(contract)
	result := r.db.WithContext(ctx).
		Model(&contractModel{}).
		Where("contract_id = ?", contract.ContractID).
		Updates(map[string]any{
			"public_id":    row.PublicID,
			"vendor_id":    row.VendorID,
			"title":        row.Title,
			"terms":        row.Terms,
			"start_date":   row.StartDate,
			"end_date":     row.EndDate,
			"document_url": row.DocumentURL,
			"status":       row.Status,
			"updated_at":   row.UpdatedAt,
		})
	if result.Error != nil {
		return translateConstraintViolation(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrContractNotFound
	}
	return nil
}

func (r *Repository) SaveContractStatus(ctx context.Context, contractID string, status entities.ContractStatus, updatedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&contractModel{}).
		Where("contract_id = ?", contractID).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": updatedAt.UTC(),
		})
	if result.Error != nil {
		return translateConstraintViolation(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrContractNotFound
	}
	return nil
}

func (r *Repository) SetDocumentURL(ctx context.Context, contractID string, url string, updatedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&contractModel{}).
		Where("contract_id = ?", contractID).
		Updates(map[string]any{
			"document_url": url,
			"updated_at":   updatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrContractNotFound
	}
	return nil
}

func (r *Repository) DeleteContract(ctx context.Context, contractID string) error {
	result := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Delete(&contractModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrContractNotFound
	}
	return nil
}

func (r *Repository) AppendExpiryAlert(ctx context.Context, event ports.ExpiringContractEvent) (bool, error) {
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

	row := outboxModel{
		OutboxID:  event.EventID,
		EventType: "contract.expiring",
		AlertKey:  event.ContractID + "|" + event.EndDate.UTC().Format("2006-01-02"),
		Payload:   payload,
		Status:    outboxStatusPending,
		CreatedAt: event.OccurredAt.UTC(),
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "alert_key"}},
			DoNothing: true,
		}).
		Create(&row)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:  row.OutboxID,
			EventType: row.EventType,
			Payload:   append([]byte(nil), row.Payload...),
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":  outboxStatusSent,
			"sent_at": sentAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrContractNotFound
	}
	return nil
}

// SystemClock is the production Clock adapter.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// UUIDGenerator is the production IDGenerator adapter.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type contractModel struct {
	ContractID  string    `gorm:"column:contract_id;primaryKey"`
	PublicID    string    `gorm:"column:public_id"`
	VendorID    string    `gorm:"column:vendor_id"`
	Title       string    `gorm:"column:title"`
	Terms       string    `gorm:"column:terms"`
	StartDate   time.Time `gorm:"column:start_date"`
	EndDate     time.Time `gorm:"column:end_date"`
	DocumentURL string    `gorm:"column:document_url"`
	Status      string    `gorm:"column:status"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (contractModel) TableName() string {
	return "vendor_contracts"
}

func contractModelFromEntity(contract entities.Contract) contractModel {
	return contractModel{
		ContractID:  contract.ContractID,
		PublicID:    contract.PublicID,
		VendorID:    contract.VendorID,
		Title:       contract.Title,
		Terms:       contract.Terms,
		StartDate:   contract.StartDate.UTC(),
		EndDate:     contract.EndDate.UTC(),
		DocumentURL: contract.DocumentURL,
		Status:      string(contract.Status),
		CreatedAt:   contract.CreatedAt.UTC(),
		UpdatedAt:   contract.UpdatedAt.UTC(),
	}
}

func (m contractModel) toEntity() entities.Contract {
	return entities.Contract{
		ContractID:  m.ContractID,
		PublicID:    m.PublicID,
		VendorID:    m.VendorID,
		Title:       m.Title,
		Terms:       m.Terms,
		StartDate:   m.StartDate.UTC(),
		EndDate:     m.EndDate.UTC(),
		DocumentURL: m.DocumentURL,
		Status:      entities.ContractStatus(m.Status),
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

type outboxModel struct {
	OutboxID  string     `gorm:"column:outbox_id;primaryKey"`
	EventType string     `gorm:"column:event_type"`
	AlertKey  string     `gorm:"column:alert_key"`
	Payload   []byte     `gorm:"column:payload"`
	Status    string     `gorm:"column:status"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	SentAt    *time.Time `gorm:"column:sent_at"`
}

func (outboxModel) TableName() string {
	return "vendor_contract_outbox"
}

func translateConstraintViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23P01": // exclusion_violation
		return domainerrors.ErrOverlappingContract
	case "23505": // unique_violation
		return domainerrors.ErrDuplicateContractID
	default:
		return err
	}
}
