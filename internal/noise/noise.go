// Package noise applies cooldown and overlap policy to play decisions.
package noise

import (
	"time"

	"github.com/oklog/ulid/v2"

	"turncue/internal/config"
	"turncue/internal/state"
)

// Reason explains a suppression decision.
type Reason string

const (
	// ReasonOK means playback may proceed (or the system is disabled,
	// which is a silent no-op rather than an error).
	ReasonOK Reason = "ok"
	// ReasonCooldown means the category played too recently.
	ReasonCooldown Reason = "cooldown"
	// ReasonOverlap means a prior playback is still considered active.
	ReasonOverlap Reason = "overlap"
)

// Verdict is the outcome of a play-or-suppress decision.
type Verdict struct {
	Play   bool
	Reason Reason
}

// ScopeKey returns the running-marker key for the configured overlap scope.
func ScopeKey(cfg *config.Config, threadID string) string {
	if cfg.OverlapScope == config.ScopeGlobal {
		return state.GlobalScopeKey
	}
	if threadID == "" {
		return state.GlobalScopeKey
	}
	return threadID
}

// ShouldPlay decides whether a sound for category may play now. It clears
// stale overlap markers but otherwise leaves state untouched.
func ShouldPlay(category, threadID string, st *state.State, cfg *config.Config, now time.Time) Verdict {
	if !cfg.Enabled {
		return Verdict{Play: false, Reason: ReasonOK}
	}

	if cd := cfg.CooldownFor(category); cd > 0 {
		if last, ok := st.LastPlay(category); ok && now.Sub(last) < cd {
			return Verdict{Play: false, Reason: ReasonCooldown}
		}
	}

	if cfg.PreventOverlap {
		if _, active := st.ActiveMarker(ScopeKey(cfg, threadID), now); active {
			return Verdict{Play: false, Reason: ReasonOverlap}
		}
	}

	return Verdict{Play: true, Reason: ReasonOK}
}

// RecordPlay stamps the category cooldown clock and sets the running marker
// for the scope. The marker expires after ttl; liveness is judged by that
// expiry rather than by polling the player process.
func RecordPlay(category, threadID string, st *state.State, cfg *config.Config, now time.Time, pid int, ttl time.Duration) {
	st.RecordPlay(category, now)

	if ttl <= 0 {
		return
	}
	st.SetMarker(ScopeKey(cfg, threadID), state.Marker{
		Token:     ulid.Make().String(),
		PID:       pid,
		ExpiresAt: now.Add(ttl),
	})
}
