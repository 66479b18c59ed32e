package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SscSPs/pos_shift_app/internal/core/domain"
	portssvc "github.com/SscSPs/pos_shift_app/internal/core/ports/services"
	"github.com/SscSPs/pos_shift_app/internal/core/services"
	"github.com/SscSPs/pos_shift_app/internal/platform/config"
	"github.com/SscSPs/pos_shift_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/pos_shift_app/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

// app holds what every subcommand shares. The pool is opened lazily so that
// commands like issue-token work without a database.
type app struct {
	logger *slog.Logger
	cfg    *config.Config
	pool   *pgxpool.Pool
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	a := &app{logger: logger}

	root := &cobra.Command{
		Use:           "reconcilectl",
		Short:         "Operator tooling for shift reconciliation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if a.pool != nil {
				database.ClosePgxPool(a.pool)
			}
		},
	}

	root.AddCommand(
		newBackfillCmd(a),
		newAuditCmd(a),
		newRebuildStatsCmd(a),
		newCloseShiftCmd(a),
		newMigrateCmd(a),
		newIssueTokenCmd(a),
	)
	return root
}

func (a *app) services(ctx context.Context) (*portssvc.ServiceContainer, error) {
	if a.pool == nil {
		pool, err := database.NewPgxPool(ctx, a.cfg.DatabaseURL, "reconcilectl", true)
		if err != nil {
			return nil, err
		}
		a.pool = pool
	}
	return services.NewServiceContainer(a.cfg, pgsql.NewRepositoryProvider(a.pool))
}

// fail annotates err for the single error line main logs on exit.
func (a *app) fail(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// finishRun prints whatever report the run produced and turns an incomplete run into an error.
func (a *app) finishRun(cmd *cobra.Command, report *domain.RunReport, err error) error {
	if report != nil {
		if perr := printJSON(cmd.OutOrStdout(), report); perr != nil {
			return perr
		}
		a.logger.Info("Run finished", slog.String("run_id", report.RunID), slog.String("status", report.Status()))
	}
	if err != nil {
		return a.fail("Run failed", err)
	}
	if report != nil && !report.Completed {
		return fmt.Errorf("run %s did not complete: %s", report.RunID, report.Status())
	}
	return nil
}

// parseTimeFlag accepts RFC 3339 or a bare YYYY-MM-DD date, which is read as
// midnight in loc.
func parseTimeFlag(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(time.DateOnly, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: expected RFC 3339 or YYYY-MM-DD", value)
	}
	return t, nil
}
