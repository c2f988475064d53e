package workers

import (
	"context"
	"log/slog"
	"time"

	"steward/contexts/vendor-management/contract-lifecycle/application"
	"steward/contexts/vendor-management/contract-lifecycle/ports"
)

// ExpiryNotifier sweeps contracts whose end date falls within the alert
// window and stages one contract.expiring alert per contract in the outbox.
// It reads through the lifecycle service so statuses are healed before the
// window predicate is trusted.
type ExpiryNotifier struct {
	Service     application.Service
	Outbox      ports.OutboxRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	AlertDays   int
	Logger      *slog.Logger
}

func (n ExpiryNotifier) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(n.Logger)
	days := n.AlertDays
	if days <= 0 {
		days = 30
	}
	now := time.Now().UTC()
	if n.Clock != nil {
		now = n.Clock.Now().UTC()
	}

	expiring, err := n.Service.ListContracts(ctx, ports.ContractListFilter{ExpiringWithinDays: days})
	if err != nil {
		logger.Error("expiry sweep failed",
			"event", "contract_expiry_sweep_failed",
			"module", "vendor-management/contract-lifecycle",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if len(expiring) == 0 {
		return nil
	}

	staged := 0
	for _, contract := range expiring {
		eventID, err := n.IDGenerator.NewID(ctx)
		if err != nil {
			return err
		}
		daysLeft := int(contract.EndDate.Sub(now).Hours() / 24)
		if daysLeft < 0 {
			daysLeft = 0
		}
		created, err := n.Outbox.AppendExpiryAlert(ctx, ports.ExpiringContractEvent{
			EventID:         eventID,
			ContractID:      contract.ContractID,
			PublicID:        contract.PublicID,
			VendorID:        contract.VendorID,
			Title:           contract.Title,
			EndDate:         contract.EndDate,
			DaysUntilExpiry: daysLeft,
			OccurredAt:      now,
		})
		if err != nil {
			logger.Error("expiry alert staging failed",
				"event", "contract_expiry_alert_stage_failed",
				"module", "vendor-management/contract-lifecycle",
				"layer", "worker",
				"contract_id", contract.ContractID,
				"error", err.Error(),
			)
			return err
		}
		if created {
			staged++
		}
	}

	if staged > 0 {
		logger.Info("expiry sweep completed",
			"event", "contract_expiry_sweep_completed",
			"module", "vendor-management/contract-lifecycle",
			"layer", "worker",
			"expiring_count", len(expiring),
			"staged_count", staged,
		)
	}
	return nil
}
