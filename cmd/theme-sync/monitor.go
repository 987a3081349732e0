package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/theme-sync/internal/daemon"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Watch theme preference changes and apply them live",
	Long: `Watch the desktop color scheme preference and apply every change to all
configured applications.

Each reported change is applied in full, in configuration order. The first
application that cannot be updated stops the monitor with an error; a failing
reload command only logs a warning.`,
	Args: cobra.NoArgs,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	src, err := newSource()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting monitor", "version", version, "apps", len(cfg.Apps))

	m := daemon.NewMonitor(src, newApplier(), cfg.Apps, logger)
	if err := m.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("monitor stopped", "events", m.Handled())
			return nil
		}
		return err
	}
	return nil
}
