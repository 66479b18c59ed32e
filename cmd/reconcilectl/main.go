package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata" // BUSINESS_TIMEZONE must resolve in minimal images

	"github.com/SscSPs/pos_shift_app/internal/middleware"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// An interrupt cancels the running batch loop; the partial report is still printed.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = middleware.WithLogger(ctx, logger)

	if err := newRootCmd(logger).ExecuteContext(ctx); err != nil {
		logger.Error("reconcilectl failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
