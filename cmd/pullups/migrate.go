// ABOUTME: CLI command for moving guest data between local storage backends.
// ABOUTME: Copies today's tally and goal, then switches the configured backend.
package main

import (
	"fmt"

	"github.com/harperreed/pullups/internal/config"
	"github.com/harperreed/pullups/internal/storage"
	"github.com/harperreed/pullups/internal/tally"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	migrateTo     string
	migrateDryRun bool
	migrateForce  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Move guest data to another local backend",
	Long: `Copy today's guest tally and goal from the configured backend to another
one, then make the new backend the default.

IMPORTANT:

  - Only data stored on this device is moved; server history is untouched
  - A non-empty Badger directory is refused unless --force is given
  - Run with --dry-run first to see what would be migrated

USAGE:

  pullups migrate --to badger --dry-run   # Preview what would be migrated
  pullups migrate --to badger             # Perform the migration`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{noTracker: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		from := c.GetBackend()
		if migrateTo == "" {
			return fmt.Errorf("--to is required")
		}
		if migrateTo == from {
			return fmt.Errorf("already using %s backend", from)
		}

		if migrateTo == config.BackendBadger && !migrateForce {
			nonEmpty, err := storage.IsDirNonEmpty(config.BadgerDir(c.GetDataDir()))
			if err != nil {
				return err
			}
			if nonEmpty {
				return fmt.Errorf("badger directory is not empty (use --force to overwrite)")
			}
		}

		src, err := c.OpenBackend(from)
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", from, err)
		}
		defer src.Close()

		// A dry run never touches the destination.
		var dst storage.KV = storage.NewMemory()
		if !migrateDryRun {
			dst, err = c.OpenBackend(migrateTo)
			if err != nil {
				return fmt.Errorf("failed to open %s storage: %w", migrateTo, err)
			}
		}
		defer dst.Close()

		out := cmd.OutOrStdout()
		if migrateDryRun {
			yellow.Fprintln(out, "Dry run mode - no changes will be made")
		}

		summary, err := storage.MigrateKeys(src, dst, tally.Keys(), migrateDryRun)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Debug("migrated guest data",
			zap.String("from", from),
			zap.String("to", migrateTo),
			zap.Int("copied", summary.Copied))

		if migrateDryRun {
			fmt.Fprintf(out, "Would copy %d records from %s to %s\n", summary.Copied, from, migrateTo)
			return nil
		}

		if err := c.Set("backend", migrateTo); err != nil {
			return err
		}
		if err := c.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		success(out, "Copied %d records from %s to %s", summary.Copied, from, migrateTo)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend (sqlite, badger, or charm)")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "overwrite records in a non-empty destination")
	rootCmd.AddCommand(migrateCmd)
}
