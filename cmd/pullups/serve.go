// ABOUTME: CLI command for hosting the pullups backend API.
// ABOUTME: Serves accounts and daily stats from a SQLite database.
package main

import (
	"github.com/harperreed/pullups/internal/db"
	"github.com/harperreed/pullups/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	serveAddr   string
	serveDBPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host a pullups server",
	Long: `Host the pullups HTTP API that signed-in clients talk to.

"Today" on the server is the current UTC day.

Examples:
  pullups serve
  pullups serve --addr :9000 --db /var/lib/pullups/backend.db`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{noTracker: "true", logLevel: "info"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := serveDBPath
		if path == "" {
			path = db.GetDefaultDBPath()
		}

		conn, err := db.InitDB(path)
		if err != nil {
			return err
		}
		defer conn.Close()

		logger.Info("opened database", zap.String("path", path))
		return server.New(conn, nil, logger).ListenAndServe(cmd.Context(), serveAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveDBPath, "db", "", "Database path (default $XDG_DATA_HOME/pullups/backend.db)")
	rootCmd.AddCommand(serveCmd)
}
