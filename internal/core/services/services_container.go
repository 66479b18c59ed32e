package services

import (
	"time"

	portsrepo "github.com/SscSPs/pos_shift_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_shift_app/internal/core/ports/services"
	"github.com/SscSPs/pos_shift_app/internal/platform/config"
	"github.com/SscSPs/pos_shift_app/internal/utils/accounting"
)

// BulkSettingsFromConfig maps the reconciliation config onto bulk run settings.
func BulkSettingsFromConfig(rc config.ReconciliationConfig) BulkSettings {
	return BulkSettings{
		PageSize:     rc.PageSize,
		BatchSize:    rc.BatchSize,
		MaxRetries:   rc.BatchRetries,
		RetryBackoff: rc.RetryBackoff,
	}.normalized()
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) (*portssvc.ServiceContainer, error) {
	policy, err := accounting.RentalPolicyByName(cfg.Reconciliation.RentalPolicy)
	if err != nil {
		return nil, err
	}
	bulk := BulkSettingsFromConfig(cfg.Reconciliation)
	clock := func() time.Time { return time.Now().UTC() }

	container := &portssvc.ServiceContainer{}

	container.Shift = NewShiftService(
		repos.ShiftRepo,
		repos.TransactionRepo,
		WithShiftRentalPolicy(policy),
		WithShiftClock(clock),
	)

	container.Reconciliation = NewReconciliationService(
		repos.ShiftRepo,
		repos.TransactionRepo,
		repos.CatalogRepo,
		WithRentalPolicy(policy),
		WithBulkSettings(bulk),
		WithReconciliationClock(clock),
	)

	container.Stats = NewStatsService(
		repos.TransactionRepo,
		repos.DailyStatsRepo,
		WithStatsBulkSettings(bulk),
		WithBusinessLocation(cfg.Location),
		WithStatsClock(clock),
	)

	return container, nil
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ShiftSvcFacade    = (*shiftService)(nil)
	_ portssvc.ReconciliationSvc = (*reconciliationService)(nil)
	_ portssvc.StatsSvc          = (*statsService)(nil)
)
