// ABOUTME: CLI command for logging a set of pull-ups.
// ABOUTME: Adds reps to today's total and shows the new count.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:     "log <reps>",
	Aliases: []string{"l", "add"},
	Short:   "Log a set of pull-ups",
	Long: `Log one set of pull-ups for today.

Examples:
  pullups log 8
  pullups l 12`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reps, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid reps: %s", args[0])
		}

		total, err := app.LogSet(cmd.Context(), reps)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		success(out, "Logged %d reps", reps)
		fmt.Fprintf(out, "  %s %d\n", faint.Sprint("Today:"), total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
}
