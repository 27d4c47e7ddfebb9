// ABOUTME: Root Cobra command for pullups CLI.
// ABOUTME: Builds logger, local store, backend client, and tracker before each command.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/pullups/internal/auth"
	"github.com/harperreed/pullups/internal/backend"
	"github.com/harperreed/pullups/internal/config"
	"github.com/harperreed/pullups/internal/query"
	"github.com/harperreed/pullups/internal/storage"
	"github.com/harperreed/pullups/internal/tally"
	"github.com/harperreed/pullups/internal/tracker"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Command annotations.
const (
	// noTracker marks commands that run without opening local storage.
	noTracker = "no-tracker"
	// logLevel overrides the default warn level for long-running commands.
	logLevel = "log-level"
)

var (
	verbose bool

	logger  *zap.Logger
	cfg     *config.Config
	kvStore storage.KV
	app     *tracker.Tracker
)

var rootCmd = &cobra.Command{
	Use:   "pullups",
	Short: "Daily pull-up counter",
	Long: `Pullups counts your pull-ups for the day.

Without an account everything stays on this device and today's count starts
fresh at local midnight. Sign in to a pullups server to keep history.

QUICK START:

  $ pullups log 8                  # Log a set of 8
  $ pullups today                  # Today's total and goal progress
  $ pullups goal set 50            # Aim for 50 today
  $ pullups stats                  # Reps, sets, and average per set
  $ pullups stats --date 2025-06-01

ACCOUNTS:

  $ pullups serve --addr :8080                            # Host a server
  $ pullups login --server http://localhost:8080 --name me
  $ pullups history                                       # Daily totals
  $ pullups logout

MCP INTEGRATION:

  Run 'pullups mcp' to start the Model Context Protocol server. Add to your
  Claude config:

  {
    "mcpServers": {
      "pullups": { "command": "pullups", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Guest data lives in ~/.local/share/pullups (SQLite by default; see
  'pullups config set backend badger|charm'). Credentials are kept in
  ~/.config/pullups/auth.json.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initLogger(cmd.Annotations[logLevel]); err != nil {
			return err
		}
		if skipsTracker(cmd) {
			return nil
		}
		return setupTracker()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command with signal-aware context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer closeApp()
	return rootCmd.ExecuteContext(ctx)
}

func initLogger(level string) error {
	zc := zap.NewProductionConfig()
	lvl := zap.WarnLevel
	if level != "" {
		if err := lvl.Set(level); err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	if verbose {
		lvl = zap.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	l, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	logger = l
	return nil
}

func skipsTracker(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[noTracker] == "true" {
			return true
		}
	}
	return cmd.Name() == "help" || cmd.Name() == "completion"
}

func setupTracker() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	kvStore, err = cfg.OpenStorage()
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
	}

	creds, err := auth.Load()
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}

	opts := tracker.Options{
		Store:  tally.New(kvStore, nil, logger),
		Cache:  query.NewCache(cfg.GetQueryRetries(), cfg.GetQueryRetryDelay(), logger),
		Logger: logger,
	}
	if creds.IsAuthenticated() {
		opts.Backend = backend.NewClient(creds.Server, creds.Token, nil)
		logger.Debug("using backend", zap.String("server", creds.Server))
	}
	app = tracker.New(opts)
	return nil
}

// closeApp releases whatever the last command opened. Safe to call twice.
func closeApp() {
	if kvStore != nil {
		if err := kvStore.Close(); err != nil && logger != nil {
			logger.Warn("failed to close storage", zap.Error(err))
		}
		kvStore = nil
	}
	app = nil
	if logger != nil {
		_ = logger.Sync()
	}
}
