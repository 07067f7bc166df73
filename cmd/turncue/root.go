package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"turncue/internal/config"
	"turncue/internal/hook"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

var (
	globalOpts struct {
		verbose    bool
		configPath string
		dataDir    string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "turncue",
	Short: "Notification sounds for CLI agent turn completion",
	Long: `turncue is a notify hook for CLI agent tools.

On each turn-completion event it classifies the outcome (acknowledge,
permission, error, resource limit, rapid-turn annoyance, greeting) and plays
a short cue from a themed sound pack, with cooldown and overlap controls.

Wire the agent's notify hook to "turncue notify" or pass the raw JSON
payload as the first argument.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the CLI. A raw JSON first argument is the hook fast path:
// agents invoke the binary with the payload directly, bypassing subcommands.
func Execute() {
	if len(os.Args) >= 2 && strings.HasPrefix(strings.TrimSpace(os.Args[1]), "{") {
		setupLogger()
		newRunner().HandlePayload(os.Args[1])
		return
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/turncue/config.json)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.dataDir, "data-dir", "",
		"Path to data directory holding state and packs (default: ~/.local/share/turncue)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// newRunner builds the hook runner honoring the global path overrides.
func newRunner() *hook.Runner {
	r := hook.NewRunner(logger)
	if globalOpts.configPath != "" {
		r.ConfigPath = globalOpts.configPath
	}
	if globalOpts.dataDir != "" {
		r.StatePath = filepath.Join(globalOpts.dataDir, "state.json")
		r.PacksDir = filepath.Join(globalOpts.dataDir, "packs")
		r.PausePath = filepath.Join(globalOpts.dataDir, "paused")
	}
	return r
}

// configFilePath returns the active config file path.
func configFilePath() string {
	if globalOpts.configPath != "" {
		return globalOpts.configPath
	}
	return config.ConfigPath()
}

// loadConfigStrict loads config, failing loudly on a malformed file.
// Explicit commands use this; the notify path tolerates bad config.
func loadConfigStrict() (*config.Config, error) {
	return config.Load(configFilePath())
}
