// ABOUTME: CLI commands for viewing and changing pullups configuration.
// ABOUTME: Reads and writes ~/.config/pullups/config.json.
package main

import (
	"fmt"

	"github.com/harperreed/pullups/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "View or change settings",
	Annotations: map[string]string{noTracker: "true"},
	Long: `View or change pullups settings.

KEYS:

  backend            Local store: sqlite (default), badger, or charm
  data_dir           Directory for local data
  poll_interval      How often to check for a new day (e.g. 1m)
  query_retries      Retries for failed server reads (default 2)
  query_retry_delay  Pause between retries (default 1s)

EXAMPLES:

  pullups config show
  pullups config set backend badger`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", faint.Sprint(config.GetConfigPath()))
		eff := c.Effective()
		for _, k := range config.Keys() {
			fmt.Fprintf(out, "  %s %s\n", padRight(k+":", 19), eff[k])
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		if err := c.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := c.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		success(cmd.OutOrStdout(), "Set %s = %s", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
