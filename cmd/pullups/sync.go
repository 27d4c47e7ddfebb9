// ABOUTME: CLI command for syncing guest data with Charm Cloud.
// ABOUTME: Only meaningful when the charm backend is configured.
package main

import (
	"fmt"

	"github.com/harperreed/pullups/internal/charm"
	"github.com/harperreed/pullups/internal/config"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync guest data with Charm Cloud",
	Long: `Push and pull today's guest tally and goal through Charm Cloud so every
device linked to your Charm account sees the same count.

Requires the charm backend:

  pullups config set backend charm`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{noTracker: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if c.GetBackend() != config.BackendCharm {
			return fmt.Errorf("sync needs the charm backend (current: %s)", c.GetBackend())
		}

		client, err := charm.InitClient()
		if err != nil {
			return fmt.Errorf("open charm kv: %w", err)
		}
		defer client.Close()

		out := cmd.OutOrStdout()
		if client.IsReadOnly() {
			warn(out, "Database is locked by another process; showing local data only")
			return nil
		}
		if err := client.Sync(); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

		id, err := client.ID()
		if err != nil {
			return err
		}
		success(out, "Synced with Charm Cloud")
		fmt.Fprintf(out, "  %s %s\n", faint.Sprint("Account:"), id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
