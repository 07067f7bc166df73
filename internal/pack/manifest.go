// Package pack loads sound pack manifests and resolves concrete sound files.
package pack

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Sound is one entry in a pack category.
type Sound struct {
	File  string `json:"file"`
	Title string `json:"title,omitempty"`
}

// CategorySounds holds the sounds available for one category.
type CategorySounds struct {
	Sounds []Sound `json:"sounds"`
}

// Manifest describes a sound pack. Read-only at runtime.
type Manifest struct {
	Name        string                    `json:"name"`
	DisplayName string                    `json:"display_name"`
	Categories  map[string]CategorySounds `json:"categories"`
}

// Info is a pack listing entry.
type Info struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// LoadManifest reads the manifest for a named pack under packsDir.
func LoadManifest(packsDir, name string) (*Manifest, error) {
	path := filepath.Join(packsDir, name, "manifest.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest for pack %q: %w", name, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest for pack %q: %w", name, err)
	}
	if m.Name == "" {
		m.Name = name
	}
	if m.DisplayName == "" {
		m.DisplayName = m.Name
	}
	return &m, nil
}

// List returns all installed packs, sorted by name. Packs with unreadable
// manifests are skipped.
func List(packsDir string) []Info {
	entries, err := os.ReadDir(packsDir)
	if err != nil {
		return nil
	}

	var packs []Info
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		m, err := LoadManifest(packsDir, e.Name())
		if err != nil {
			continue
		}
		packs = append(packs, Info{Name: m.Name, DisplayName: m.DisplayName})
	}

	sort.Slice(packs, func(i, j int) bool { return packs[i].Name < packs[j].Name })
	return packs
}

// SoundPath returns the on-disk path for a sound file inside a pack.
func SoundPath(packsDir, packName, file string) string {
	return filepath.Join(packsDir, packName, "sounds", file)
}
