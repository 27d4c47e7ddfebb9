// ABOUTME: CLI command that keeps today's counter on screen across midnight.
// ABOUTME: Runs the rollover watcher and reprints when the local day changes.
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/pullups/internal/tally"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show today's counter and refresh it at midnight",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		showModel(out, app.Counter(ctx), false)

		w := tally.NewWatcher(app.Store(), cfg.GetPollInterval(), func(r tally.Rollover) {
			logger.Debug("day rolled over",
				zap.String("previous", r.Previous), zap.String("current", r.Current))
			app.Rollover()
			fmt.Fprintln(out)
			faint.Fprintf(out, "New day: %s\n", r.Current)
			showModel(out, app.Counter(ctx), false)
		})

		err := w.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
