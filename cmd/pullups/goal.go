// ABOUTME: CLI commands for today's pull-up goal.
// ABOUTME: Set, clear, and show the daily goal.
package main

import (
	"github.com/harperreed/pullups/internal/tracker"
	"github.com/spf13/cobra"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage today's goal",
	Long: `Manage today's pull-up goal. Goals apply to the current day only.

Examples:
  pullups goal set 50
  pullups goal clear`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		showModel(cmd.OutOrStdout(), app.Counter(cmd.Context()), false)
		return nil
	},
}

var goalSetCmd = &cobra.Command{
	Use:   "set <reps>",
	Short: "Set today's goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		goal, err := tracker.ParseGoal(args[0])
		if err != nil {
			return err
		}
		if goal == nil {
			return clearGoal(cmd)
		}
		if err := app.SetGoal(cmd.Context(), *goal); err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "Goal set to %d", *goal)
		return nil
	},
}

var goalClearCmd = &cobra.Command{
	Use:     "clear",
	Aliases: []string{"rm"},
	Short:   "Remove today's goal",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return clearGoal(cmd)
	},
}

func clearGoal(cmd *cobra.Command) error {
	if err := app.ClearGoal(cmd.Context()); err != nil {
		return err
	}
	success(cmd.OutOrStdout(), "Goal cleared")
	return nil
}

func init() {
	goalCmd.AddCommand(goalSetCmd)
	goalCmd.AddCommand(goalClearCmd)
	rootCmd.AddCommand(goalCmd)
}
