package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"catalog-sync/feature/catalog"

	"github.com/spf13/cobra"
)

var (
	dryRunSync      bool
	yesConfirm      bool
	jsonSync        bool
	marketplaceSync string
)

// syncCmd plans and applies one sync run.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the feed with the marketplace (plan + apply)",
	Long: `Fetch the feed and the current marketplace listings, build the plan and apply it.

The plan is always reported first. Applying it requires confirmation unless --yes is set.

Examples:
  # Report the plan only
  catalog-sync sync --dry-run

  # Apply with interactive confirmation
  catalog-sync sync

  # Apply without confirmation and print the run report as JSON
  catalog-sync sync --yes --json

  # Try the pipeline against the in-memory marketplace
  catalog-sync sync --marketplace memory --dry-run`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Plan only, do not call the marketplace")
	syncCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm the plan (non-interactive)")
	syncCmd.Flags().BoolVar(&jsonSync, "json", false, "Print the run report as JSON to stdout")
	syncCmd.Flags().StringVar(&marketplaceSync, "marketplace", "", "Override the marketplace provider (ozon, yandex-fbs, yandex-dbs, memory)")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	// Interrupts stop issuing marketplace calls; the partial run is still reported.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp()
	if err != nil {
		return err
	}
	l := a.log
	defer l.Sync()

	svc, err := a.syncService(marketplaceSync)
	if err != nil {
		return err
	}

	dryRun := dryRunSync || (a.cfg.Sync.DryRun && !cmd.Flags().Changed("dry-run"))

	if !dryRun {
		l.Info("Planning sync...")
		plan, err := svc.Plan(ctx)
		if err != nil {
			return fmt.Errorf("failed to plan sync: %w", err)
		}
		catalog.LogPlan(l, plan)

		if plan.Summary.Mutations() == 0 {
			l.Info("Marketplace is already in sync. No changes required.")
			return nil
		}
		if !confirmSync(cmd.InOrStdin(), cmd.OutOrStdout(), yesConfirm) {
			l.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}
		l.Info("Applying plan...")
	}

	rep, _, err := svc.Sync(ctx, dryRun)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	if jsonSync {
		if err := writeJSON(cmd.OutOrStdout(), rep); err != nil {
			return err
		}
	}

	if !rep.DryRun && !rep.Complete() {
		return fmt.Errorf("sync finished with %d failed actions (run %s)", rep.Execution.Failed, rep.RunID)
	}
	return nil
}

// confirmSync prompts for confirmation unless yes is set.
func confirmSync(in io.Reader, out io.Writer, yes bool) bool {
	if yes {
		fmt.Fprintln(out, "\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Fprint(out, "\n⚠️  Type 'yes' to publish these changes to the marketplace: ")
	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
