package hook

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"turncue/internal/config"
	"turncue/internal/event"
	"turncue/internal/player"
	"turncue/internal/state"
)

var base = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

// testRig wires a Runner against temp dirs and recording fakes.
type testRig struct {
	runner   *Runner
	plays    []string
	blocking []string
	bells    int
	desktops []string
	now      time.Time
}

func newRig(t *testing.T) *testRig {
	t.Helper()
	dir := t.TempDir()

	rig := &testRig{now: base}
	rig.runner = &Runner{
		Logger:     slog.New(slog.NewTextHandler(os.Stderr, nil)),
		ConfigPath: filepath.Join(dir, "config.json"),
		StatePath:  filepath.Join(dir, "state.json"),
		PacksDir:   filepath.Join(dir, "packs"),
		PausePath:  filepath.Join(dir, "paused"),
		Now:        func() time.Time { return rig.now },
		Play: func(path string, volume float64) (player.Handle, error) {
			rig.plays = append(rig.plays, path)
			return player.Handle{PID: 4242, TTL: 5 * time.Second}, nil
		},
		PlayBlocking: func(path string, volume float64) error {
			rig.blocking = append(rig.blocking, path)
			return nil
		},
		Bell: func() { rig.bells++ },
		DesktopNotify: func(summary, body string, urgency byte, expireMs int32) error {
			rig.desktops = append(rig.desktops, summary)
			return nil
		},
	}

	rig.installPack(t, "peon", map[string][]string{
		"greeting":    {"hello.wav"},
		"acknowledge": {"ok.wav"},
		"complete":    {"done.wav"},
		"permission":  {"ask.wav"},
		"error":       {"uhoh.wav"},
		"annoyed":     {"stop.wav"},
	})
	return rig
}

func (rig *testRig) installPack(t *testing.T, name string, cats map[string][]string) {
	t.Helper()
	dir := filepath.Join(rig.runner.PacksDir, name)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sounds"), 0755))

	manifest := fmt.Sprintf(`{"name": %q, "categories": {`, name)
	first := true
	for cat, files := range cats {
		if !first {
			manifest += ","
		}
		first = false
		manifest += fmt.Sprintf(`%q: {"sounds": [`, cat)
		for i, f := range files {
			if i > 0 {
				manifest += ","
			}
			manifest += fmt.Sprintf(`{"file": %q}`, f)
			require.NoError(t, os.WriteFile(filepath.Join(dir, "sounds", f), []byte("RIFF"), 0644))
		}
		manifest += "]}"
	}
	manifest += "}}"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.json"), []byte(manifest), 0644))
}

func (rig *testRig) saveConfig(t *testing.T, cfg *config.Config) {
	t.Helper()
	require.NoError(t, cfg.Save(rig.runner.ConfigPath))
}

func (rig *testRig) loadState() *state.State {
	return state.NewStore(rig.runner.StatePath, rig.runner.Logger).Load()
}

func payload(thread, message string) string {
	return fmt.Sprintf(`{"type": "agent-turn-complete", "thread-id": %q, "last-assistant-message": %q}`,
		thread, message)
}

func TestHandlePayload_PlaysAcknowledge(t *testing.T) {
	rig := newRig(t)

	rig.runner.HandlePayload(payload("t1", "all done"))

	require.Len(t, rig.plays, 1)
	assert.Contains(t, rig.plays[0], "ok.wav")

	st := rig.loadState()
	assert.Len(t, st.Threads["t1"].RecentEventTimes, 1)
	_, ok := st.LastPlay(event.CategoryAcknowledge)
	assert.True(t, ok)
	m, active := st.ActiveMarker("t1", base.Add(time.Second))
	assert.True(t, active)
	assert.Equal(t, 4242, m.PID)
}

func TestHandlePayload_IgnoresOtherTypes(t *testing.T) {
	rig := newRig(t)

	rig.runner.HandlePayload(`{"type": "session-start", "thread-id": "t1"}`)
	assert.Empty(t, rig.plays)
}

func TestHandlePayload_IgnoresMalformedJSON(t *testing.T) {
	rig := newRig(t)

	rig.runner.HandlePayload(`{{{ nope`)
	assert.Empty(t, rig.plays)
}

func TestHandlePayload_KeywordSelectsCategory(t *testing.T) {
	rig := newRig(t)

	rig.runner.HandlePayload(payload("t1", "I need your approval to continue"))

	require.Len(t, rig.plays, 1)
	assert.Contains(t, rig.plays[0], "ask.wav")
}

func TestHandlePayload_RapidTurnsPlayAnnoyed(t *testing.T) {
	rig := newRig(t)
	cfg := config.DefaultConfig()
	cfg.PreventOverlap = false
	rig.saveConfig(t, cfg)

	for i := 0; i < 3; i++ {
		rig.now = base.Add(time.Duration(2*i) * time.Second)
		rig.runner.HandlePayload(payload("t1", "ok"))
	}

	require.Len(t, rig.plays, 3)
	assert.Contains(t, rig.plays[2], "stop.wav")
}

func TestHandlePayload_DisabledConfig(t *testing.T) {
	rig := newRig(t)
	cfg := config.DefaultConfig()
	cfg.Enabled = false
	rig.saveConfig(t, cfg)

	rig.runner.HandlePayload(payload("t1", "done"))
	assert.Empty(t, rig.plays)
}

func TestHandlePayload_Paused(t *testing.T) {
	rig := newRig(t)
	require.NoError(t, os.WriteFile(rig.runner.PausePath, nil, 0644))

	rig.runner.HandlePayload(payload("t1", "done"))
	assert.Empty(t, rig.plays)
}

func TestHandlePayload_CooldownSuppressesSecondPlay(t *testing.T) {
	rig := newRig(t)
	cfg := config.DefaultConfig()
	cfg.CooldownsSeconds[event.CategoryAcknowledge] = 60
	rig.saveConfig(t, cfg)

	rig.runner.HandlePayload(payload("t1", "first"))
	rig.now = base.Add(10 * time.Second)
	rig.runner.HandlePayload(payload("t1", "second"))

	assert.Len(t, rig.plays, 1)
}

func TestHandlePayload_OverlapSuppressesConcurrentPlay(t *testing.T) {
	rig := newRig(t)

	rig.runner.HandlePayload(payload("t1", "first"))
	// Within the running marker's TTL
	rig.now = base.Add(2 * time.Second)
	rig.runner.HandlePayload(payload("t1", "second"))

	assert.Len(t, rig.plays, 1)
}

func TestHandlePayload_MalformedConfigUsesDefaults(t *testing.T) {
	rig := newRig(t)
	require.NoError(t, os.WriteFile(rig.runner.ConfigPath, []byte("{broken"), 0644))

	rig.runner.HandlePayload(payload("t1", "done"))
	assert.Len(t, rig.plays, 1)
}

func TestHandlePayload_MalformedStateStartsFresh(t *testing.T) {
	rig := newRig(t)
	require.NoError(t, os.WriteFile(rig.runner.StatePath, []byte("garbage"), 0644))

	rig.runner.HandlePayload(payload("t1", "done"))
	assert.Len(t, rig.plays, 1)

	st := rig.loadState()
	assert.Len(t, st.Threads["t1"].RecentEventTimes, 1)
}

func TestHandlePayload_NoPackIsSilentNoOp(t *testing.T) {
	rig := newRig(t)
	require.NoError(t, os.RemoveAll(rig.runner.PacksDir))

	rig.runner.HandlePayload(payload("t1", "done"))
	assert.Empty(t, rig.plays)
	assert.Zero(t, rig.bells)
}

func TestHandlePayload_NoBackendFallsBackToBlocking(t *testing.T) {
	rig := newRig(t)
	rig.runner.Play = func(path string, volume float64) (player.Handle, error) {
		return player.Handle{}, player.ErrNoBackend
	}

	rig.runner.HandlePayload(payload("t1", "done"))
	assert.Len(t, rig.blocking, 1)
	assert.Zero(t, rig.bells)
}

func TestHandlePayload_BellAsLastResort(t *testing.T) {
	rig := newRig(t)
	rig.runner.Play = func(path string, volume float64) (player.Handle, error) {
		return player.Handle{}, player.ErrNoBackend
	}
	rig.runner.PlayBlocking = func(path string, volume float64) error {
		return fmt.Errorf("no speaker")
	}

	rig.runner.HandlePayload(payload("t1", "done"))
	assert.Equal(t, 1, rig.bells)
}

func TestHandlePayload_EmptyThreadIDUsesDefaultKey(t *testing.T) {
	rig := newRig(t)

	rig.runner.HandlePayload(payload("", "done"))

	st := rig.loadState()
	assert.Contains(t, st.Threads, event.DefaultThreadID)
}

func TestHandlePayload_DesktopNotify(t *testing.T) {
	rig := newRig(t)
	cfg := config.DefaultConfig()
	cfg.DesktopNotify = true
	rig.saveConfig(t, cfg)

	rig.runner.HandlePayload(payload("t1", "I need your approval to continue"))
	require.Len(t, rig.desktops, 1)
	assert.Contains(t, rig.desktops[0], "approval")

	// Plain acknowledgements stay off the desktop.
	rig.now = base.Add(time.Hour)
	rig.runner.HandlePayload(payload("t1", "done"))
	assert.Len(t, rig.desktops, 1)
}

func TestMaybePlay_GreetingForLaunch(t *testing.T) {
	rig := newRig(t)
	cfg := config.DefaultConfig()
	st := state.New()

	played := rig.runner.MaybePlay(cfg, st, event.CategoryGreeting, event.DefaultThreadID, base)
	assert.True(t, played)
	require.Len(t, rig.plays, 1)
	assert.Contains(t, rig.plays[0], "hello.wav")
}

func TestMaybePlay_DisabledGreetingFallsBack(t *testing.T) {
	rig := newRig(t)
	cfg := config.DefaultConfig()
	cfg.Categories[event.CategoryGreeting] = false
	st := state.New()

	played := rig.runner.MaybePlay(cfg, st, event.CategoryGreeting, event.DefaultThreadID, base)
	assert.True(t, played)
	assert.Contains(t, rig.plays[0], "ok.wav")
}

func TestPaused(t *testing.T) {
	rig := newRig(t)
	assert.False(t, rig.runner.Paused())

	require.NoError(t, os.WriteFile(rig.runner.PausePath, nil, 0644))
	assert.True(t, rig.runner.Paused())
}
