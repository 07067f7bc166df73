package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"turncue/internal/config"
	"turncue/internal/event"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and write configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get a config key (or the full config)",
	Long: `Print a config value by dot path, or the full config without a key.

Examples:
  turncue config get volume
  turncue config get cooldowns_seconds.acknowledge`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config key",
	Long: `Set a config value by dot path. The value is parsed as a JSON
literal (0.7, true, ["a","b"]) and falls back to a plain string.

Examples:
  turncue config set volume 0.7
  turncue config set greeting_mode turn_start
  turncue config set cooldowns_seconds.error 30`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configKeywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Manage keyword lists",
}

var configKeywordsAddCmd = &cobra.Command{
	Use:   "add <category> <phrase>",
	Short: "Add a keyword phrase",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKeywords(args[0], args[1], true)
	},
}

var configKeywordsRemoveCmd = &cobra.Command{
	Use:   "remove <category> <phrase>",
	Short: "Remove a keyword phrase",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKeywords(args[0], args[1], false)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeywordsCmd)
	configKeywordsCmd.AddCommand(configKeywordsAddCmd)
	configKeywordsCmd.AddCommand(configKeywordsRemoveCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigStrict()
	if err != nil {
		return err
	}

	key := ""
	if len(args) == 1 {
		key = args[0]
	}

	value, err := cfg.Get(key)
	if err != nil {
		return err
	}

	switch v := value.(type) {
	case map[string]any, []any:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		fmt.Println(v)
		return nil
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigStrict()
	if err != nil {
		return err
	}

	key := args[0]
	value := config.ParseValue(args[1])
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := cfg.Save(configFilePath()); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	encoded, _ := json.Marshal(value)
	fmt.Printf("turncue: set %s = %s\n", key, encoded)
	return nil
}

func runKeywords(category, phrase string, add bool) error {
	valid := false
	for _, c := range event.KeywordCategories() {
		if c == category {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("keyword category must be one of: permission, error, resource_limit")
	}

	cfg, err := loadConfigStrict()
	if err != nil {
		return err
	}

	if add {
		if !cfg.AddKeyword(category, phrase) {
			fmt.Printf("turncue: keyword already present for %s\n", category)
			return nil
		}
	} else {
		if !cfg.RemoveKeyword(category, phrase) {
			return fmt.Errorf("keyword not found for %s: %s", category, phrase)
		}
	}

	if err := cfg.Save(configFilePath()); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	if add {
		fmt.Printf("turncue: added keyword to %s: %s\n", category, phrase)
	} else {
		fmt.Printf("turncue: removed keyword from %s: %s\n", category, phrase)
	}
	return nil
}
