// Package config handles configuration file loading, merging, and persistence.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"turncue/internal/event"
)

// Greeting modes control when the greeting category may play.
const (
	GreetingLaunch    = "launch"
	GreetingTurnStart = "turn_start"
	GreetingBoth      = "both"
	GreetingOff       = "off"
)

// Overlap scopes for playback overlap prevention.
const (
	ScopeThread = "thread"
	ScopeGlobal = "global"
)

// CooldownDefaultKey is the fallback key in the cooldown map.
const CooldownDefaultKey = "default"

// DefaultPack is used when the configured pack has no manifest.
const DefaultPack = "peon"

// Config is the runtime configuration, loaded fresh on every invocation.
type Config struct {
	ActivePack              string              `json:"active_pack"`
	Volume                  float64             `json:"volume"`
	Enabled                 bool                `json:"enabled"`
	GreetingMode            string              `json:"greeting_mode"`
	DesktopNotify           bool                `json:"desktop_notify"`
	LaunchCommand           string              `json:"launch_command"`
	Categories              map[string]bool     `json:"categories"`
	AnnoyedThreshold        int                 `json:"annoyed_threshold"`
	AnnoyedWindowSeconds    float64             `json:"annoyed_window_seconds"`
	SessionStartIdleSeconds float64             `json:"session_start_idle_seconds"`
	PreventOverlap          bool                `json:"prevent_overlap"`
	OverlapScope            string              `json:"overlap_scope"`
	CooldownsSeconds        map[string]float64  `json:"cooldowns_seconds"`
	Keywords                map[string][]string `json:"keywords"`
}

// DefaultConfig returns a Config with built-in defaults.
func DefaultConfig() *Config {
	categories := make(map[string]bool, len(event.Categories()))
	cooldowns := map[string]float64{CooldownDefaultKey: 0}
	for _, c := range event.Categories() {
		categories[c] = true
		cooldowns[c] = 0
	}

	return &Config{
		ActivePack:              DefaultPack,
		Volume:                  0.5,
		Enabled:                 true,
		GreetingMode:            GreetingLaunch,
		DesktopNotify:           false,
		LaunchCommand:           "codex",
		Categories:              categories,
		AnnoyedThreshold:        3,
		AnnoyedWindowSeconds:    10,
		SessionStartIdleSeconds: 120,
		PreventOverlap:          true,
		OverlapScope:            ScopeThread,
		CooldownsSeconds:        cooldowns,
		Keywords: map[string][]string{
			event.CategoryPermission: {
				"needs your approval",
				"need your approval",
				"approval requested",
				"approve this",
				"approve the command",
				"approve running",
				"allow this command",
				"permission prompt",
			},
			event.CategoryError: {
				"error",
				"failed",
				"unable",
				"cannot",
				"can't",
				"denied",
				"permission denied",
				"not found",
				"timed out",
				"exception",
			},
			event.CategoryResourceLimit: {
				"rate limit",
				"quota",
				"429",
				"token limit",
				"context length",
				"context window",
			},
		},
	}
}

// Load reads the config file at path and merges it over built-in defaults.
// User values win; map entries merge by key. A missing file yields defaults
// with a nil error. A malformed file yields defaults with a non-nil error so
// the notify path can proceed while explicit config commands fail loudly.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return DefaultConfig(), fmt.Errorf("read config %s: %w", path, err)
	}

	// Unmarshaling into the populated struct merges map keys in place,
	// which gives the deep-merge-by-key semantics user overrides expect.
	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.normalize()
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, append(data, '\n'), 0644)
}

// normalize clamps out-of-range values back to usable ones.
func (c *Config) normalize() {
	if c.Volume < 0 {
		c.Volume = 0
	}
	if c.AnnoyedThreshold < 2 {
		c.AnnoyedThreshold = 2
	}
	if c.AnnoyedWindowSeconds < 1 {
		c.AnnoyedWindowSeconds = 1
	}
	if c.SessionStartIdleSeconds < 1 {
		c.SessionStartIdleSeconds = 1
	}
	switch c.GreetingMode {
	case GreetingLaunch, GreetingTurnStart, GreetingBoth, GreetingOff:
	default:
		c.GreetingMode = GreetingLaunch
	}
	switch c.OverlapScope {
	case ScopeThread, ScopeGlobal:
	default:
		c.OverlapScope = ScopeThread
	}
	if c.ActivePack == "" {
		c.ActivePack = DefaultPack
	}
	if c.Categories == nil {
		c.Categories = DefaultConfig().Categories
	}
	if c.CooldownsSeconds == nil {
		c.CooldownsSeconds = DefaultConfig().CooldownsSeconds
	}
	if c.Keywords == nil {
		c.Keywords = DefaultConfig().Keywords
	}
	for k, v := range c.CooldownsSeconds {
		if v < 0 {
			c.CooldownsSeconds[k] = 0
		}
	}
}

// CategoryEnabled reports whether the given category is enabled.
// Unknown categories default to enabled.
func (c *Config) CategoryEnabled(category string) bool {
	enabled, ok := c.Categories[category]
	if !ok {
		return true
	}
	return enabled
}

// CooldownFor returns the cooldown duration for a category, falling back to
// the "default" key, then zero.
func (c *Config) CooldownFor(category string) time.Duration {
	seconds, ok := c.CooldownsSeconds[category]
	if !ok {
		seconds = c.CooldownsSeconds[CooldownDefaultKey]
	}
	if seconds < 0 {
		seconds = 0
	}
	return time.Duration(seconds * float64(time.Second))
}

// AnnoyedWindow returns the rapid-turn detection window.
func (c *Config) AnnoyedWindow() time.Duration {
	return time.Duration(c.AnnoyedWindowSeconds * float64(time.Second))
}

// SessionIdle returns the idle gap that marks a session start.
func (c *Config) SessionIdle() time.Duration {
	return time.Duration(c.SessionStartIdleSeconds * float64(time.Second))
}

// PlaybackVolume returns the volume clamped to [0, 1] for the player.
func (c *Config) PlaybackVolume() float64 {
	v := c.Volume
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}

// GreetOnTurnStart reports whether the classifier may greet at session start.
func (c *Config) GreetOnTurnStart() bool {
	return c.GreetingMode == GreetingTurnStart || c.GreetingMode == GreetingBoth
}

// GreetOnLaunch reports whether the launch command should greet.
func (c *Config) GreetOnLaunch() bool {
	return c.GreetingMode == GreetingLaunch || c.GreetingMode == GreetingBoth
}

// AddKeyword appends a phrase to a category's keyword list.
// It returns false when the phrase is already present.
func (c *Config) AddKeyword(category, phrase string) bool {
	for _, existing := range c.Keywords[category] {
		if existing == phrase {
			return false
		}
	}
	if c.Keywords == nil {
		c.Keywords = make(map[string][]string)
	}
	c.Keywords[category] = append(c.Keywords[category], phrase)
	return true
}

// RemoveKeyword deletes a phrase from a category's keyword list.
// It returns false when the phrase was not present.
func (c *Config) RemoveKeyword(category, phrase string) bool {
	terms, ok := c.Keywords[category]
	if !ok {
		return false
	}
	kept := terms[:0]
	found := false
	for _, t := range terms {
		if t == phrase {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if found {
		c.Keywords[category] = kept
	}
	return found
}
