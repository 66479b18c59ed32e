package pgsql

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/pos_shift_app/internal/apperrors"
	portsrepo "github.com/SscSPs/pos_shift_app/internal/core/ports/repositories"
	"github.com/SscSPs/pos_shift_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowClause(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	clause, args := windowClause("start_time", portsrepo.TimeWindow{}, nil)
	assert.Empty(t, clause)
	assert.Empty(t, args)

	clause, args = windowClause("start_time", portsrepo.TimeWindow{From: from, To: to}, []any{"x"})
	assert.Equal(t, " AND start_time >= $2 AND start_time < $3", clause)
	assert.Equal(t, []any{"x", from, to}, args)

	clause, args = windowClause("ts", portsrepo.TimeWindow{To: to}, nil)
	assert.Equal(t, " AND ts < $1", clause)
	assert.Len(t, args, 1)
}

func TestClosedBeforeClause(t *testing.T) {
	clause, args := closedBeforeClause("end_time", time.Time{}, []any{"x"})
	assert.Empty(t, clause)
	assert.Equal(t, []any{"x"}, args)

	cutoff := time.Date(2024, 4, 1, 3, 0, 0, 0, time.UTC)
	clause, args = closedBeforeClause("s.end_time", cutoff, []any{"x", "y"})
	assert.Equal(t, " AND s.end_time < $3", clause)
	assert.Equal(t, []any{"x", "y", cutoff}, args)
}

func TestCursorClause(t *testing.T) {
	clause, args, err := cursorClause("ts", "id", nil, []any{1})
	require.NoError(t, err)
	assert.Empty(t, clause)
	assert.Len(t, args, 1)

	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	token := pagination.EncodeToken(at, "txn-9")
	clause, args, err = cursorClause("ts", "id", &token, []any{1})
	require.NoError(t, err)
	assert.Equal(t, " AND (ts, id) > ($2, $3)", clause)
	assert.Equal(t, []any{1, at, "txn-9"}, args)

	bad := "!!"
	_, _, err = cursorClause("ts", "id", &bad, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestTrimPage(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	type row struct {
		at time.Time
		id string
	}
	key := func(r row) (time.Time, string) { return r.at, r.id }
	rows := []row{{base, "a"}, {base, "b"}, {base.Add(time.Minute), "c"}}

	page, next := trimPage(rows, 3, key)
	assert.Len(t, page, 3)
	assert.Nil(t, next, "no look-ahead row means last page")

	page, next = trimPage(rows, 2, key)
	require.Len(t, page, 2)
	require.NotNil(t, next)
	at, id, err := pagination.DecodeToken(*next)
	require.NoError(t, err)
	assert.True(t, base.Equal(at))
	assert.Equal(t, "b", id, "token points at the last row kept")
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, defaultPageSize, normalizeLimit(0))
	assert.Equal(t, 25, normalizeLimit(25))
	assert.Equal(t, maxPageSize, normalizeLimit(maxPageSize+1))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}
