package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	runsLimit int
	runsFull  bool
)

// runsCmd lists stored sync runs.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent sync runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		svc, err := a.syncService("")
		if err != nil {
			return err
		}

		runs, err := svc.Runs(cmd.Context(), runsLimit)
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			a.log.Info("No runs recorded yet.")
			return nil
		}
		for _, r := range runs {
			a.log.Info("Run",
				zap.String("id", r.ID),
				zap.Time("started_at", r.StartedAt),
				zap.Bool("dry_run", r.DryRun),
				zap.Bool("complete", r.Complete),
				zap.Int("total", r.Total),
				zap.Int("creates", r.Creates),
				zap.Int("updates", r.PriceUpdates+r.StockUpdates+r.BothUpdates),
				zap.Int("failed", r.Failed),
			)
		}
		return nil
	},
}

// runsShowCmd prints one run as JSON.
var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a sync run as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		svc, err := a.syncService("")
		if err != nil {
			return err
		}

		ctx := cmd.Context()

		if runsFull {
			rep, err := svc.ArchivedReport(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to load archived report: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), rep)
		}

		run, err := svc.RunDetail(ctx, args[0])
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), run)
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 0, "Maximum number of runs (default from sync.history_limit)")
	runsShowCmd.Flags().BoolVar(&runsFull, "full", false, "Load the full report from the storage archive")

	runsCmd.AddCommand(runsShowCmd)
	RootCmd.AddCommand(runsCmd)
}
