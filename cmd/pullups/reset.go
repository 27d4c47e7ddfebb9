// ABOUTME: CLI command for zeroing today's guest count.
// ABOUTME: Asks for confirmation; not available once signed in.
package main

import (
	"fmt"

	"github.com/harperreed/pullups/internal/tracker"
	"github.com/spf13/cobra"
)

var resetSkipConfirm bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset today's count (guest mode)",
	Long: `Reset today's reps and sets to zero.

CAUTION:
  This discards today's count on this device. There is no undo.
  Signed-in users cannot reset; the server keeps every set.

Examples:
  pullups reset        # asks before resetting
  pullups reset --yes  # no prompt`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if app.IsAuthenticated() {
			return tracker.ErrResetUnavailable
		}

		out := cmd.OutOrStdout()
		if !resetSkipConfirm {
			m := app.Counter(cmd.Context())
			prompt := fmt.Sprintf("Reset today's %d reps in %d sets? [y/N] ", m.Reps, m.Sets)
			ok, err := confirm(cmd.InOrStdin(), out, prompt)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Reset canceled.")
				return nil
			}
		}

		if err := app.ResetToday(cmd.Context()); err != nil {
			return err
		}
		yellow.Fprintln(out, "✗ Reset today's count")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetSkipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}
