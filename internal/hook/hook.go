// Package hook orchestrates the notify path: payload in, classified
// category out, sound played, state saved. Everything here is fail-silent;
// a broken sound must never break the calling tool's turn-completion flow.
package hook

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"turncue/internal/classify"
	"turncue/internal/config"
	"turncue/internal/desktop"
	"turncue/internal/event"
	"turncue/internal/noise"
	"turncue/internal/pack"
	"turncue/internal/player"
	"turncue/internal/state"
)

// TypeTurnComplete is the only payload type the notify path reacts to.
const TypeTurnComplete = "agent-turn-complete"

// Payload is the inbound notify event. Field names are a contract with the
// external caller and round-trip losslessly.
type Payload struct {
	Type                 string `json:"type"`
	ThreadID             string `json:"thread-id"`
	LastAssistantMessage string `json:"last-assistant-message"`
}

// Runner wires the notify pipeline. Collaborators are fields so tests can
// substitute the audio and desktop sinks.
type Runner struct {
	Logger     *slog.Logger
	ConfigPath string
	StatePath  string
	PacksDir   string
	PausePath  string

	Now           func() time.Time
	Play          func(path string, volume float64) (player.Handle, error)
	PlayBlocking  func(path string, volume float64) error
	Bell          func()
	DesktopNotify func(summary, body string, urgency byte, expireMs int32) error
}

// NewRunner creates a Runner bound to the default paths and real backends.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	p := player.NewPlayer(logger)
	return &Runner{
		Logger:        logger,
		ConfigPath:    config.ConfigPath(),
		StatePath:     config.StatePath(),
		PacksDir:      config.PacksDir(),
		PausePath:     config.PausePath(),
		Now:           time.Now,
		Play:          p.Play,
		PlayBlocking:  p.PlayBlocking,
		Bell:          p.Bell,
		DesktopNotify: desktop.Notify,
	}
}

// Paused reports whether the pause marker file exists.
func (r *Runner) Paused() bool {
	_, err := os.Stat(r.PausePath)
	return err == nil
}

// HandlePayload runs the full notify pipeline for one raw JSON payload.
// It never returns an error: malformed input, bad config, missing packs,
// and playback failures all degrade to a silent no-op.
func (r *Runner) HandlePayload(raw string) {
	var payload Payload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		r.Logger.Debug("ignoring unparsable payload", "error", err)
		return
	}
	if payload.Type != TypeTurnComplete {
		return
	}

	cfg, err := config.Load(r.ConfigPath)
	if err != nil {
		// Bad config never blocks a notification; defaults are used.
		r.Logger.Warn("config unusable, falling back to defaults", "error", err)
	}
	if !cfg.Enabled || r.Paused() {
		return
	}

	store := state.NewStore(r.StatePath, r.Logger)
	st := store.Load()

	ev := event.Event{
		ThreadID:             threadKey(payload.ThreadID),
		Timestamp:            r.Now(),
		LastAssistantMessage: payload.LastAssistantMessage,
	}

	dec := classify.Classify(ev, st, cfg)
	if !dec.Silent {
		r.playResolved(cfg, st, dec.Category, ev.ThreadID, ev.Timestamp)
	}

	if cfg.DesktopNotify {
		r.notifyDesktop(dec)
	}

	if err := store.Save(st); err != nil {
		r.Logger.Warn("failed to save state", "error", err)
	}
}

// MaybePlay resolves a raw category through the enabled-fallback chain and
// plays it, honoring cooldown and overlap policy. Returns whether a sound
// was triggered. Used by the launch greeting path.
func (r *Runner) MaybePlay(cfg *config.Config, st *state.State, rawCategory, threadID string, now time.Time) bool {
	resolved := classify.ResolveEnabled(cfg, rawCategory)
	if resolved == "" {
		return false
	}
	return r.playResolved(cfg, st, resolved, threadID, now)
}

// playResolved applies noise control and plays an already-resolved category.
func (r *Runner) playResolved(cfg *config.Config, st *state.State, category, threadID string, now time.Time) bool {
	verdict := noise.ShouldPlay(category, threadID, st, cfg, now)
	if !verdict.Play {
		r.Logger.Debug("playback suppressed", "category", category, "reason", verdict.Reason)
		return false
	}

	resolver := pack.NewResolver(r.PacksDir)
	manifest, err := resolver.ActiveManifest(cfg)
	if err != nil {
		r.Logger.Warn("no usable sound pack", "pack", cfg.ActivePack, "error", err)
		return false
	}

	res, err := resolver.Resolve(manifest, st, category)
	if err != nil {
		r.Logger.Debug("no sound for category", "category", category, "pack", manifest.Name)
		return false
	}

	volume := cfg.PlaybackVolume()
	handle, err := r.Play(res.Path, volume)
	switch {
	case err == nil:
	case errors.Is(err, player.ErrNoBackend):
		// No platform player; try the in-process backend, then the bell.
		if fbErr := r.PlayBlocking(res.Path, volume); fbErr != nil {
			r.Logger.Debug("in-process playback unavailable", "error", fbErr)
			r.Bell()
		}
		handle = player.Handle{}
	default:
		r.Logger.Warn("playback invocation failed", "path", res.Path, "error", err)
		return false
	}

	noise.RecordPlay(category, threadID, st, cfg, now, handle.PID, handle.TTL)
	r.Logger.Debug("played sound", "category", res.Category, "file", res.File, "pack", res.Pack)
	return true
}

// notifyDesktop mirrors attention-demanding categories to the desktop.
func (r *Runner) notifyDesktop(dec classify.Decision) {
	var summary string
	urgency := desktop.UrgencyNormal
	switch dec.Raw {
	case event.CategoryPermission:
		summary = "Agent needs your approval"
		urgency = desktop.UrgencyCritical
	case event.CategoryError:
		summary = "Agent turn ended with an error"
	case event.CategoryResourceLimit:
		summary = "Agent hit a resource limit"
	default:
		return
	}

	if err := r.DesktopNotify(summary, "", urgency, 0); err != nil {
		r.Logger.Debug("desktop notification failed", "error", err)
	}
}

// threadKey normalizes the payload thread id, defaulting blank ids to a
// shared key so single-session setups still get rapid-turn detection.
func threadKey(raw string) string {
	key := strings.TrimSpace(raw)
	if key == "" {
		return event.DefaultThreadID
	}
	return key
}
