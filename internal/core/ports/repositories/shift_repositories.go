package repositories

import (
	"context"

	"github.com/SscSPs/pos_shift_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ShiftReader defines read operations for shift data
type ShiftReader interface {
	// FindShiftByID retrieves a shift by its ID.
	FindShiftByID(ctx context.Context, shiftID string) (*domain.Shift, error)

	// ListClosedShiftsPage retrieves one page of the shifts in scope, ordered by (start_time, shift_id).
	ListClosedShiftsPage(ctx context.Context, scope ClosedShiftScope, page PageRequest) ([]domain.Shift, *string, error)
}

// ShiftWriter defines write operations for shift data
type ShiftWriter interface {
	// SaveShift persists a new open shift. A second open shift for the same staff member
	// fails with apperrors.ErrConflict.
	SaveShift(ctx context.Context, shift domain.Shift) error
}

// ShiftCloser defines the locked read-compute-write cycle used to close a shift.
type ShiftCloser interface {
	// FindShiftForUpdate reads a shift and locks its row within tx.
	FindShiftForUpdate(ctx context.Context, tx pgx.Tx, shiftID string) (*domain.Shift, error)

	// FindShiftForShare reads a shift and takes a shared lock so it cannot close concurrently.
	FindShiftForShare(ctx context.Context, tx pgx.Tx, shiftID string) (*domain.Shift, error)

	// CloseShiftInTx writes the close overwrite only if the shift is still open;
	// otherwise it returns apperrors.ErrConflict.
	CloseShiftInTx(ctx context.Context, tx pgx.Tx, closing domain.ShiftClose) error
}

// ShiftTotalsWriter applies backfill corrections.
type ShiftTotalsWriter interface {
	// UpdateShiftTotalsBatch writes all updates atomically as one batch. An update applies only while
	// the shift's last_updated_at still equals ExpectedUpdatedAt; otherwise the batch fails with
	// apperrors.ErrConflict.
	UpdateShiftTotalsBatch(ctx context.Context, updates []domain.ShiftTotalsUpdate) error
}

// ShiftRepositoryFacade combines all shift-related repository interfaces
type ShiftRepositoryFacade interface {
	ShiftReader
	ShiftWriter
	ShiftCloser
	ShiftTotalsWriter
}

// ShiftRepositoryWithTx extends ShiftRepositoryFacade with transaction capabilities
type ShiftRepositoryWithTx interface {
	ShiftRepositoryFacade
	TransactionManager
}
