package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrKeyNotFound is returned by Get for an unknown dot path.
var ErrKeyNotFound = fmt.Errorf("config key not found")

// splitKeyPath splits a dot path like "cooldowns_seconds.acknowledge"
// into its non-empty segments.
func splitKeyPath(key string) []string {
	var parts []string
	for _, p := range strings.Split(key, ".") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// asMap round-trips the config through JSON into a generic map so dot-path
// access works on the same key names users see in the file.
func (c *Config) asMap() (map[string]any, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Get returns the value at a dot path, or ErrKeyNotFound.
// An empty key returns the whole config as a generic map.
func (c *Config) Get(key string) (any, error) {
	m, err := c.asMap()
	if err != nil {
		return nil, err
	}
	if key == "" {
		return m, nil
	}

	var cur any = m
	for _, part := range splitKeyPath(key) {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}
		cur, ok = obj[part]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}
	}
	return cur, nil
}

// Set assigns a value at a dot path and reloads the typed config from the
// result, so type mismatches surface as errors instead of silent corruption.
func (c *Config) Set(key string, value any) error {
	parts := splitKeyPath(key)
	if len(parts) == 0 {
		return fmt.Errorf("key cannot be empty")
	}

	m, err := c.asMap()
	if err != nil {
		return err
	}

	cur := m
	for _, part := range parts[:len(parts)-1] {
		child, ok := cur[part].(map[string]any)
		if !ok {
			child = make(map[string]any)
			cur[part] = child
		}
		cur = child
	}
	cur[parts[len(parts)-1]] = value

	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	updated := DefaultConfig()
	if err := json.Unmarshal(data, updated); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	updated.normalize()
	*c = *updated
	return nil
}

// ParseValue interprets a CLI-provided value as a JSON literal, falling
// back to the raw string when it doesn't parse.
func ParseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}
