package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/webiokit/gen"
	"github.com/randalmurphal/webiokit/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Regenerate whenever source or configuration changes",
	Long: `Watch runs the pre-build pass once, then keeps watching the given
directories and reruns it after each batch of changes. Diagnostics
are reported and watching continues; stop with interrupt.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dirs := args
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := newLogger(cmd)
	g := gen.New(cfg, logger)
	regenerate := func(ctx context.Context) error {
		report, err := g.Run(ctx, dirs, gen.RunOptions{Mode: gen.ModeWrite})
		if err != nil {
			return err
		}
		if len(report.Diags) > 0 {
			printDiags(cmd, report.Diags)
		}
		return nil
	}

	if err := regenerate(ctx); err != nil {
		return err
	}
	w := watch.New(dirs, watch.WithLogger(logger))
	return w.Run(ctx, regenerate)
}
