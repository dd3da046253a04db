package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check storage and database integrity",
	Long:  `Checks the bucket folders, the feed object and the run report tables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, true)
	},
}

// storageCmd represents the integrity storage command
var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check bucket folders and the feed object",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false)
	},
}

// databaseCmd represents the integrity database command
var databaseCmd = &cobra.Command{
	Use:   "database",
	Short: "Check the run report tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(storageCmd, databaseCmd)

	storageCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing folders")
}

func runIntegrityChecks(ctx context.Context, runStorage, runDatabase bool) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	logg := a.log
	svc := a.integrityService()
	healthy := true

	if runStorage {
		logg.Info("Checking folder structure...")
		missing, err := svc.CheckStructure(ctx)
		if err != nil {
			return fmt.Errorf("structure check failed: %w", err)
		}

		if len(missing) == 0 {
			logg.Info("Structure is intact.")
		} else {
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))

			if fixFlag {
				logg.Info("Fixing missing folders...")
				if err := svc.FixStructure(ctx, missing); err != nil {
					return fmt.Errorf("failed to fix structure: %w", err)
				}
				logg.Info("Structure fixed successfully.")
			} else {
				healthy = false
				logg.Info("Run 'integrity storage --fix' to create missing folders.")
			}
		}

		logg.Info("Checking feed object...")
		feed, err := svc.CheckFeed(ctx)
		switch {
		case err != nil:
			return fmt.Errorf("feed check failed: %w", err)
		case feed == nil:
			logg.Info("Feed is not read from storage, skipping.")
		case feed.Status == "ok":
			logg.Info("Feed object is present.",
				zap.String("object", feed.Object),
				zap.Int64("size", feed.Size),
				zap.Time("last_modified", feed.LastModified))
		default:
			healthy = false
			logg.Warn("Feed object is not usable",
				zap.String("object", feed.Object),
				zap.String("status", feed.Status),
				zap.Int64("age_seconds", feed.AgeSeconds))
		}
	}

	if runDatabase {
		logg.Info("Checking report tables...")
		report, err := svc.CheckDatabase()
		if err != nil {
			logg.Warn("Database check skipped", zap.Error(err))
		} else if report.Matched {
			logg.Info("Report tables match the expected schema.", zap.String("driver", report.Driver))
		} else {
			healthy = false
			for table, tbl := range report.Tables {
				if tbl.Status != "ok" {
					logg.Warn("Table mismatch",
						zap.String("table", table),
						zap.String("status", tbl.Status),
						zap.Strings("missing_columns", tbl.MissingColumns))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
		}
	}

	if !healthy {
		return fmt.Errorf("integrity checks found problems")
	}
	return nil
}
