package config

import (
	"os"
	"path/filepath"
)

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "turncue", "config.json")
}

// DataPath returns the path to the data directory.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share.
func DataPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "turncue")
}

// StatePath returns the path to the persistent state file.
func StatePath() string {
	return filepath.Join(DataPath(), "state.json")
}

// PacksDir returns the directory that holds installed sound packs.
func PacksDir() string {
	return filepath.Join(DataPath(), "packs")
}

// PausePath returns the path of the pause marker file. Its presence mutes
// the notify and launch paths without touching config.
func PausePath() string {
	return filepath.Join(DataPath(), "paused")
}
