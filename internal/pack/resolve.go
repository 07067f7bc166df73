package pack

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"turncue/internal/config"
	"turncue/internal/event"
	"turncue/internal/state"
)

// ErrNoSound means no candidate category in the fallback chain had a
// playable sound. Callers treat this as a silent no-op, not a failure.
var ErrNoSound = errors.New("no sound available")

// Resolution is the outcome of picking a sound for a category.
type Resolution struct {
	Pack     string
	Category string
	File     string
	Path     string
}

// Resolver picks sound files from installed packs with non-repeating
// random choice per (pack, category).
type Resolver struct {
	packsDir string
	// pick selects an index in [0, n); replaceable in tests.
	pick func(n int) int
}

// NewResolver creates a Resolver rooted at packsDir.
func NewResolver(packsDir string) *Resolver {
	return &Resolver{packsDir: packsDir, pick: rand.IntN}
}

// ActiveManifest loads the configured pack's manifest, falling back to the
// default pack when the configured one is missing.
func (r *Resolver) ActiveManifest(cfg *config.Config) (*Manifest, error) {
	m, err := LoadManifest(r.packsDir, cfg.ActivePack)
	if err == nil {
		return m, nil
	}
	if cfg.ActivePack == config.DefaultPack {
		return nil, err
	}
	m, fbErr := LoadManifest(r.packsDir, config.DefaultPack)
	if fbErr != nil {
		return nil, err
	}
	return m, nil
}

// Resolve picks a sound for category from the manifest, walking the fallback
// chain (category, acknowledge, complete) when a category is absent or empty.
// With two or more candidates it never re-picks the file recorded in the
// state's last-sound memory; with exactly one it returns that file. The
// chosen file is recorded back into st.
func (r *Resolver) Resolve(m *Manifest, st *state.State, category string) (Resolution, error) {
	if m == nil || m.Categories == nil {
		return Resolution{}, ErrNoSound
	}

	for _, cat := range event.FallbackChain(category) {
		entry, ok := m.Categories[cat]
		if !ok || len(entry.Sounds) == 0 {
			continue
		}

		files := make([]string, 0, len(entry.Sounds))
		for _, s := range entry.Sounds {
			if s.File != "" {
				files = append(files, s.File)
			}
		}
		if len(files) == 0 {
			continue
		}

		memoryKey := fmt.Sprintf("%s:%s", m.Name, cat)
		candidates := files
		if last, ok := st.LastSound[memoryKey]; ok && len(files) > 1 {
			filtered := make([]string, 0, len(files))
			for _, f := range files {
				if f != last {
					filtered = append(filtered, f)
				}
			}
			if len(filtered) > 0 {
				candidates = filtered
			}
		}

		picked := candidates[r.pick(len(candidates))]
		st.LastSound[memoryKey] = picked

		path := SoundPath(r.packsDir, m.Name, picked)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return Resolution{Pack: m.Name, Category: cat, File: picked, Path: path}, nil
	}

	return Resolution{}, ErrNoSound
}
