package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/pos_shift_app/internal/apperrors"
	portsrepo "github.com/SscSPs/pos_shift_app/internal/core/ports/repositories"
	"github.com/SscSPs/pos_shift_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultPageSize = 500
	maxPageSize     = 1000

	pgUniqueViolation = "23505"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// querier is satisfied by both the pool and an open pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewIOError("failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewIOError("failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewIOError("failed to rollback transaction", err)
	}
	return nil
}

// withTx runs fn inside a transaction, committing on success and rolling back otherwise.
func (r *BaseRepository) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	if err := fn(tx); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

// windowClause appends half-open bounds on column to args and returns the SQL fragment.
func windowClause(column string, window portsrepo.TimeWindow, args []any) (string, []any) {
	clause := ""
	if !window.From.IsZero() {
		args = append(args, window.From)
		clause += fmt.Sprintf(" AND %s >= $%d", column, len(args))
	}
	if !window.To.IsZero() {
		args = append(args, window.To)
		clause += fmt.Sprintf(" AND %s < $%d", column, len(args))
	}
	return clause, args
}

// closedBeforeClause restricts a closed-shift query to shifts whose end time precedes cutoff.
func closedBeforeClause(column string, cutoff time.Time, args []any) (string, []any) {
	if cutoff.IsZero() {
		return "", args
	}
	args = append(args, cutoff)
	return fmt.Sprintf(" AND %s < $%d", column, len(args)), args
}

// cursorClause decodes nextToken and appends an "after this row" tuple comparison.
func cursorClause(orderCol, idCol string, nextToken *string, args []any) (string, []any, error) {
	if nextToken == nil || *nextToken == "" {
		return "", args, nil
	}
	at, id, err := pagination.DecodeToken(*nextToken)
	if err != nil {
		return "", args, apperrors.NewAppError(400, "invalid nextToken", err)
	}
	args = append(args, at, id)
	return fmt.Sprintf(" AND (%s, %s) > ($%d, $%d)", orderCol, idCol, len(args)-1, len(args)), args, nil
}

// trimPage cuts the look-ahead row and returns the token pointing at the last kept row.
func trimPage[T any](rows []T, limit int, key func(T) (time.Time, string)) ([]T, *string) {
	if len(rows) <= limit {
		return rows, nil
	}
	rows = rows[:limit]
	at, id := key(rows[limit-1])
	token := pagination.EncodeToken(at, id)
	return rows, &token
}
