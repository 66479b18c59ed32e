package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/pos_shift_app/internal/dto"
	"github.com/SscSPs/pos_shift_app/internal/utils"
	"github.com/SscSPs/pos_shift_app/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const cliActor = "reconcilectl"

func newBackfillCmd(a *app) *cobra.Command {
	var from, to string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Recompute stored totals for closed shifts started in [from, to)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, err := parseTimeFlag(from, a.cfg.Location)
			if err != nil {
				return err
			}
			end, err := parseTimeFlag(to, a.cfg.Location)
			if err != nil {
				return err
			}
			svc, err := a.services(cmd.Context())
			if err != nil {
				return a.fail("Failed to initialize services", err)
			}
			report, err := svc.Reconciliation.Backfill(cmd.Context(), dto.BackfillRequest{From: start, To: end, DryRun: dryRun}, cliActor)
			return a.finishRun(cmd, report, err)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "window start (RFC 3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "window end, exclusive")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report pending corrections without writing")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newAuditCmd(a *app) *cobra.Command {
	var shiftID string
	var params dto.AuditShiftParams

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Compare a shift's classification under two rule sets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return a.fail("Failed to initialize services", err)
			}
			report, err := svc.Reconciliation.AuditShift(cmd.Context(), shiftID, params)
			if err != nil {
				return a.fail("Audit failed", err)
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVar(&shiftID, "shift", "", "shift ID")
	cmd.Flags().StringVar(&params.Primary, "primary", "", "primary rule set (standard, catalog, text)")
	cmd.Flags().StringVar(&params.Alternate, "alternate", "", "alternate rule set")
	_ = cmd.MarkFlagRequired("shift")
	return cmd
}

func newRebuildStatsCmd(a *app) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "rebuild-stats",
		Short: "Rebuild daily statistics from the transaction history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req dto.RebuildStatsRequest
			if from != "" {
				t, err := parseTimeFlag(from, a.cfg.Location)
				if err != nil {
					return err
				}
				req.From = &t
			}
			if to != "" {
				t, err := parseTimeFlag(to, a.cfg.Location)
				if err != nil {
					return err
				}
				req.To = &t
			}
			svc, err := a.services(cmd.Context())
			if err != nil {
				return a.fail("Failed to initialize services", err)
			}
			report, err := svc.Stats.RebuildDailyStats(cmd.Context(), req)
			return a.finishRun(cmd, report, err)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first business day (optional)")
	cmd.Flags().StringVar(&to, "to", "", "end bound (optional)")
	return cmd
}

func newCloseShiftCmd(a *app) *cobra.Command {
	var shiftID, rental, actor string

	cmd := &cobra.Command{
		Use:   "close-shift",
		Short: "Close a shift with the operator-entered PC rental total",
		RunE: func(cmd *cobra.Command, _ []string) error {
			amount, err := decimal.NewFromString(rental)
			if err != nil {
				return fmt.Errorf("invalid --rental %q: %w", rental, err)
			}
			svc, err := a.services(cmd.Context())
			if err != nil {
				return a.fail("Failed to initialize services", err)
			}
			shift, err := svc.Shift.CloseShift(cmd.Context(), shiftID, dto.CloseShiftRequest{PCRentalTotal: &amount}, actor)
			if err != nil {
				return a.fail("Failed to close shift", err)
			}
			return printJSON(cmd.OutOrStdout(), dto.ToShiftResponse(shift))
		},
	}
	cmd.Flags().StringVar(&shiftID, "shift", "", "shift ID")
	cmd.Flags().StringVar(&rental, "rental", "", "PC rental total entered by the operator")
	cmd.Flags().StringVar(&actor, "actor", cliActor, "recorded as the closer")
	_ = cmd.MarkFlagRequired("shift")
	_ = cmd.MarkFlagRequired("rental")
	return cmd
}

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			applied, err := database.RunMigrations(a.cfg.DatabaseURL, a.cfg.MigrationsPath, a.logger)
			if err != nil {
				return a.fail("Failed to apply migrations", err)
			}
			a.logger.Info("Migrations finished", slog.Bool("changed", applied))
			return nil
		},
	}
}

func newIssueTokenCmd(a *app) *cobra.Command {
	var actor, role string

	cmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Sign a bearer token for a staff member or admin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if role != utils.RoleStaff && role != utils.RoleAdmin {
				return errors.New("--role must be staff or admin")
			}
			token, err := utils.GenerateJWT(actor, role, a.cfg.JWTSecret, a.cfg.JWTExpiryDuration, a.cfg.JWTIssuer)
			if err != nil {
				return a.fail("Failed to sign token", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&actor, "actor", "", "staff email recorded as the token subject")
	cmd.Flags().StringVar(&role, "role", utils.RoleStaff, "staff or admin")
	_ = cmd.MarkFlagRequired("actor")
	return cmd
}
