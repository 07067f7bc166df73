package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Mute sounds",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPaused(true)
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Unmute sounds",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPaused(false)
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle mute",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPaused(!newRunner().Paused())
	},
}

func init() {
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(toggleCmd)
}

// setPaused creates or removes the pause marker file.
func setPaused(paused bool) error {
	path := newRunner().PausePath

	if paused {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		f.Close()
		fmt.Println("turncue: sounds paused")
		return nil
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	fmt.Println("turncue: sounds resumed")
	return nil
}
