// ABOUTME: CLI commands for viewing today's counter and daily stats.
// ABOUTME: Render the reconciled view for today or a selected date.
package main

import (
	"github.com/spf13/cobra"
)

var statsDate string

var todayCmd = &cobra.Command{
	Use:     "today",
	Aliases: []string{"counter", "t"},
	Short:   "Show today's total and goal progress",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		showModel(cmd.OutOrStdout(), app.Counter(cmd.Context()), false)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show reps, sets, and average reps per set for a day",
	Long: `Show statistics for today or a past day.

Guests only keep today; past days need a signed-in account.

Examples:
  pullups stats
  pullups stats --date 2025-06-01`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := app.Stats(cmd.Context(), statsDate)
		if err != nil {
			return err
		}
		showModel(cmd.OutOrStdout(), m, true)
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVarP(&statsDate, "date", "d", "", "Day to show (YYYY-MM-DD), defaults to today")
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(statsCmd)
}
