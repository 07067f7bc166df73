package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var enableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable hook playback",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(true)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable hook playback",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(false)
	},
}

func init() {
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
}

func setEnabled(enabled bool) error {
	cfg, err := loadConfigStrict()
	if err != nil {
		return err
	}

	cfg.Enabled = enabled
	if err := cfg.Save(configFilePath()); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	if enabled {
		fmt.Println("turncue: enabled")
	} else {
		fmt.Println("turncue: disabled")
	}
	return nil
}
