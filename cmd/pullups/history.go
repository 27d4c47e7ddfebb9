// ABOUTME: CLI commands for account history and profile.
// ABOUTME: Both need a signed-in account.
package main

import (
	"fmt"
	"strings"

	"github.com/harperreed/pullups/internal/daykey"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"h"},
	Short:   "Show daily totals (signed in)",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := app.History(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		days := h.DailyTrends
		if len(days) == 0 {
			faint.Fprintln(out, "No history yet.")
			return nil
		}
		if historyLimit > 0 && len(days) > historyLimit {
			days = days[len(days)-historyLimit:]
		}

		var peak int64
		for _, d := range days {
			if d.Reps > peak {
				peak = d.Reps
			}
		}
		for _, d := range days {
			bar := ""
			if peak > 0 {
				bar = strings.Repeat("█", int(d.Reps*30/peak))
			}
			fmt.Fprintf(out, "%s %5d %s\n", daykey.StampDate(d.DayStamp), d.Reps, faint.Sprint(bar))
		}
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile [name]",
	Short: "Show or set your display name (signed in)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 1 {
			if err := app.SaveProfile(cmd.Context(), args[0]); err != nil {
				return err
			}
			success(out, "Name set to %s", strings.TrimSpace(args[0]))
			return nil
		}

		p, err := app.Profile(cmd.Context())
		if err != nil {
			return err
		}
		if p == nil {
			faint.Fprintln(out, "No profile yet. Set one with 'pullups profile <name>'.")
			return nil
		}
		fmt.Fprintf(out, "%s %s\n", faint.Sprint("Name:"), p.Name)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 30, "Show at most this many days (0 for all)")
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(profileCmd)
}
