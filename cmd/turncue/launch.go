package main

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"turncue/internal/event"
	"turncue/internal/state"
)

var launchCmd = &cobra.Command{
	Use:   "launch [-- args]",
	Short: "Play the greeting (if enabled) and launch the agent",
	Long: `Play the greeting sound when greeting_mode is "launch" or "both",
then replace this process with the configured agent command.

Arguments after -- are forwarded to the agent:

  turncue launch -- --help`,
	RunE: runLaunch,
}

func init() {
	rootCmd.AddCommand(launchCmd)
}

func runLaunch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigStrict()
	if err != nil {
		logger.Warn("config unusable, falling back to defaults", "error", err)
	}

	r := newRunner()
	if cfg.Enabled && !r.Paused() && cfg.GreetOnLaunch() {
		store := state.NewStore(r.StatePath, logger)
		st := store.Load()
		r.MaybePlay(cfg, st, event.CategoryGreeting, event.DefaultThreadID, r.Now())
		if err := store.Save(st); err != nil {
			logger.Warn("failed to save state", "error", err)
		}
	}

	agent, err := exec.LookPath(cfg.LaunchCommand)
	if err != nil {
		return fmt.Errorf("%q executable not found on PATH", cfg.LaunchCommand)
	}

	return execAgent(agent, append([]string{agent}, args...))
}
