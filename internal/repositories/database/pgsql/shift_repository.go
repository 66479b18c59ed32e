package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/SscSPs/pos_shift_app/internal/apperrors"
	"github.com/SscSPs/pos_shift_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_shift_app/internal/core/ports/repositories"
	"github.com/SscSPs/pos_shift_app/internal/models"
	"github.com/SscSPs/pos_shift_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const shiftColumns = `shift_id, staff_email, shift_period, start_time, end_time,
	pc_rental_total, services_total, expenses_total, system_total, total_cash, total_gcash, total_ar,
	reconciliation, created_at, created_by, last_updated_at, last_updated_by`

type PgxShiftRepository struct {
	BaseRepository
}

// newPgxShiftRepository creates a new repository for shift data.
func newPgxShiftRepository(pool *pgxpool.Pool) portsrepo.ShiftRepositoryWithTx {
	return &PgxShiftRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxShiftRepository implements portsrepo.ShiftRepositoryWithTx
var _ portsrepo.ShiftRepositoryWithTx = (*PgxShiftRepository)(nil)

func scanShift(row pgx.Row) (*domain.Shift, error) {
	var m models.Shift
	err := row.Scan(
		&m.ShiftID,
		&m.StaffEmail,
		&m.ShiftPeriod,
		&m.StartTime,
		&m.EndTime,
		&m.PCRentalTotal,
		&m.ServicesTotal,
		&m.ExpensesTotal,
		&m.SystemTotal,
		&m.TotalCash,
		&m.TotalGcash,
		&m.TotalAr,
		&m.Reconciliation,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	shift, err := mapping.ToDomainShift(m)
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *PgxShiftRepository) findShift(ctx context.Context, q querier, shiftID, lockClause string) (*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE shift_id = $1 ` + lockClause + `;`
	shift, err := scanShift(q.QueryRow(ctx, query, shiftID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewIOError("failed to find shift "+shiftID, err)
	}
	return shift, nil
}

// FindShiftByID retrieves a shift by its ID.
func (r *PgxShiftRepository) FindShiftByID(ctx context.Context, shiftID string) (*domain.Shift, error) {
	return r.findShift(ctx, r.Pool, shiftID, "")
}

// FindShiftForUpdate reads a shift and holds its row lock until tx ends.
func (r *PgxShiftRepository) FindShiftForUpdate(ctx context.Context, tx pgx.Tx, shiftID string) (*domain.Shift, error) {
	return r.findShift(ctx, tx, shiftID, "FOR UPDATE")
}

// FindShiftForShare reads a shift under a shared lock, blocking a concurrent close.
func (r *PgxShiftRepository) FindShiftForShare(ctx context.Context, tx pgx.Tx, shiftID string) (*domain.Shift, error) {
	return r.findShift(ctx, tx, shiftID, "FOR SHARE")
}

// SaveShift inserts a new open shift.
func (r *PgxShiftRepository) SaveShift(ctx context.Context, shift domain.Shift) error {
	m, err := mapping.ToModelShift(shift)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode shift "+shift.ShiftID, err)
	}
	query := `
		INSERT INTO shifts (` + shiftColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = r.Pool.Exec(ctx, query,
		m.ShiftID,
		m.StaffEmail,
		m.ShiftPeriod,
		m.StartTime,
		m.EndTime,
		m.PCRentalTotal,
		m.ServicesTotal,
		m.ExpensesTotal,
		m.SystemTotal,
		m.TotalCash,
		m.TotalGcash,
		m.TotalAr,
		m.Reconciliation,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("staff member " + shift.StaffEmail + " already has an open shift")
		}
		return apperrors.NewIOError("failed to insert shift "+shift.ShiftID, err)
	}
	return nil
}

// CloseShiftInTx writes the close overwrite. The end_time guard makes it a conditional write:
// if another closer got there first no row matches and ErrConflict is returned.
func (r *PgxShiftRepository) CloseShiftInTx(ctx context.Context, tx pgx.Tx, closing domain.ShiftClose) error {
	recon, err := mapping.ToModelReconciliation(&closing.Reconciliation)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode reconciliation for shift "+closing.ShiftID, err)
	}
	query := `
		UPDATE shifts
		SET end_time = $2, pc_rental_total = $3, services_total = $4, expenses_total = $5,
		    system_total = $6, total_cash = $7, total_gcash = $8, total_ar = $9,
		    reconciliation = $10, last_updated_at = $2, last_updated_by = $11
		WHERE shift_id = $1 AND end_time IS NULL;
	`
	t := closing.Totals
	tag, err := tx.Exec(ctx, query,
		closing.ShiftID,
		closing.EndTime,
		t.PCRentalTotal,
		t.ServicesTotal,
		t.ExpensesTotal,
		t.SystemTotal,
		t.TotalCash,
		t.TotalGcash,
		t.TotalAr,
		recon,
		closing.ClosedBy,
	)
	if err != nil {
		return apperrors.NewIOError("failed to close shift "+closing.ShiftID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("shift " + closing.ShiftID + " is already closed")
	}
	return nil
}

// UpdateShiftTotalsBatch applies backfill corrections in a single transaction.
func (r *PgxShiftRepository) UpdateShiftTotalsBatch(ctx context.Context, updates []domain.ShiftTotalsUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	query := `
		UPDATE shifts
		SET pc_rental_total = $2, services_total = $3, expenses_total = $4, system_total = $5,
		    total_cash = $6, total_gcash = $7, total_ar = $8, reconciliation = $9,
		    last_updated_at = $10, last_updated_by = $11
		WHERE shift_id = $1 AND end_time IS NOT NULL AND last_updated_at = $12;
	`
	return r.withTx(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, u := range updates {
			recon, err := mapping.ToModelReconciliation(&u.Reconciliation)
			if err != nil {
				return apperrors.NewAppError(500, "failed to encode reconciliation for shift "+u.ShiftID, err)
			}
			t := u.Totals
			batch.Queue(query,
				u.ShiftID,
				t.PCRentalTotal,
				t.ServicesTotal,
				t.ExpensesTotal,
				t.SystemTotal,
				t.TotalCash,
				t.TotalGcash,
				t.TotalAr,
				recon,
				u.UpdatedAt,
				u.UpdatedBy,
				u.ExpectedUpdatedAt,
			)
		}

		br := tx.SendBatch(ctx, batch)
		for _, u := range updates {
			tag, err := br.Exec()
			if err != nil {
				br.Close()
				return apperrors.NewIOError("failed to update totals for shift "+u.ShiftID, err)
			}
			if tag.RowsAffected() == 0 {
				br.Close()
				return apperrors.NewConflictError("shift " + u.ShiftID + " changed since its totals were recomputed")
			}
		}
		if err := br.Close(); err != nil {
			return apperrors.NewIOError("failed to execute shift totals batch", err)
		}
		return nil
	})
}

// ListClosedShiftsPage retrieves the closed shifts in scope using keyset pagination.
func (r *PgxShiftRepository) ListClosedShiftsPage(ctx context.Context, scope portsrepo.ClosedShiftScope, page portsrepo.PageRequest) ([]domain.Shift, *string, error) {
	limit := normalizeLimit(page.Limit)
	args := []any{}

	where, args := windowClause("start_time", scope.Window, args)
	closed, args := closedBeforeClause("end_time", scope.ClosedBefore, args)
	where += closed
	cursor, args, err := cursorClause("start_time", "shift_id", page.NextToken, args)
	if err != nil {
		return nil, nil, err
	}
	args = append(args, limit+1)
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE end_time IS NOT NULL` + where + cursor +
		` ORDER BY start_time, shift_id LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewIOError("failed to query closed shifts", err)
	}
	defer rows.Close()

	shifts := make([]domain.Shift, 0, limit+1)
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, nil, apperrors.NewIOError("failed to scan shift row", err)
		}
		shifts = append(shifts, *shift)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewIOError("error iterating shift rows", err)
	}

	shifts, next := trimPage(shifts, limit, func(s domain.Shift) (time.Time, string) {
		return s.StartTime, s.ShiftID
	})
	return shifts, next, nil
}
