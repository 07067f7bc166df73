// Package state persists the small cross-invocation state shared by every
// hook process: per-thread event windows, last-played memory, cooldown
// stamps, and running-playback markers.
package state

import (
	"time"
)

// Bounds on state growth. Entries beyond these are dropped oldest-first.
const (
	maxRecentEvents = 32
	maxThreads      = 256
)

// GlobalScopeKey is the running-marker key used when overlap prevention
// applies across all threads.
const GlobalScopeKey = "__global__"

// ThreadState tracks the event history for one conversation thread.
type ThreadState struct {
	LastEventTime    time.Time   `json:"last_event_time"`
	RecentEventTimes []time.Time `json:"recent_event_times,omitempty"`
}

// Marker records an in-flight playback for overlap prevention. Liveness is
// judged by the TTL expiry; the pid and token are diagnostics.
type Marker struct {
	Token     string    `json:"token"`
	PID       int       `json:"pid,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// State is the persistent record, one per installation.
type State struct {
	Threads        map[string]ThreadState `json:"threads"`
	LastSound      map[string]string      `json:"last_sound"`
	LastPlayTime   map[string]time.Time   `json:"last_play_time"`
	RunningMarkers map[string]Marker      `json:"running_markers"`
}

// New returns an empty state with all maps initialized.
func New() *State {
	return &State{
		Threads:        make(map[string]ThreadState),
		LastSound:      make(map[string]string),
		LastPlayTime:   make(map[string]time.Time),
		RunningMarkers: make(map[string]Marker),
	}
}

// normalize ensures all maps are non-nil after loading from disk.
func (s *State) normalize() {
	if s.Threads == nil {
		s.Threads = make(map[string]ThreadState)
	}
	if s.LastSound == nil {
		s.LastSound = make(map[string]string)
	}
	if s.LastPlayTime == nil {
		s.LastPlayTime = make(map[string]time.Time)
	}
	if s.RunningMarkers == nil {
		s.RunningMarkers = make(map[string]Marker)
	}
}

// LastEvent returns the previous event time for a thread, if any.
func (s *State) LastEvent(threadID string) (time.Time, bool) {
	ts, ok := s.Threads[threadID]
	if !ok || ts.LastEventTime.IsZero() {
		return time.Time{}, false
	}
	return ts.LastEventTime, true
}

// AppendEvent records an event for a thread, prunes entries older than the
// window relative to now, and returns the number of events remaining inside
// the window (including the new one).
func (s *State) AppendEvent(threadID string, now time.Time, window time.Duration) int {
	if window < time.Second {
		window = time.Second
	}

	ts := s.Threads[threadID]
	kept := ts.RecentEventTimes[:0]
	for _, t := range ts.RecentEventTimes {
		if now.Sub(t) <= window {
			kept = append(kept, t)
		}
	}
	kept = append(kept, now)
	if len(kept) > maxRecentEvents {
		kept = kept[len(kept)-maxRecentEvents:]
	}

	ts.RecentEventTimes = kept
	ts.LastEventTime = now
	s.Threads[threadID] = ts
	s.pruneThreads(now)
	return len(kept)
}

// pruneThreads bounds the thread map by evicting the stalest entries.
func (s *State) pruneThreads(now time.Time) {
	if len(s.Threads) <= maxThreads {
		return
	}
	for id, ts := range s.Threads {
		if len(s.Threads) <= maxThreads {
			return
		}
		if now.Sub(ts.LastEventTime) > 24*time.Hour {
			delete(s.Threads, id)
		}
	}
	for id := range s.Threads {
		if len(s.Threads) <= maxThreads {
			return
		}
		delete(s.Threads, id)
	}
}

// LastPlay returns the last time a category's sound was played.
func (s *State) LastPlay(category string) (time.Time, bool) {
	t, ok := s.LastPlayTime[category]
	return t, ok
}

// RecordPlay stamps the cooldown clock for a category.
func (s *State) RecordPlay(category string, now time.Time) {
	s.LastPlayTime[category] = now
}

// ActiveMarker returns the running marker for a scope key when it is still
// live at now. Stale markers are cleared as a side effect.
func (s *State) ActiveMarker(scopeKey string, now time.Time) (Marker, bool) {
	m, ok := s.RunningMarkers[scopeKey]
	if !ok {
		return Marker{}, false
	}
	if !now.Before(m.ExpiresAt) {
		delete(s.RunningMarkers, scopeKey)
		return Marker{}, false
	}
	return m, true
}

// SetMarker records a running playback for a scope key.
func (s *State) SetMarker(scopeKey string, m Marker) {
	s.RunningMarkers[scopeKey] = m
}
