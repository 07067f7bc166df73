package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLoad_MissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "state.json"), nil)

	st := store.Load()
	require.NotNil(t, st)
	assert.Empty(t, st.Threads)
	assert.Empty(t, st.LastSound)
	assert.Empty(t, st.LastPlayTime)
	assert.Empty(t, st.RunningMarkers)
}

func TestStoreLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{ not json"), 0644))

	st := NewStore(path, nil).Load()
	require.NotNil(t, st)
	assert.Empty(t, st.Threads)
}

func TestStoreLoad_PartialFileGetsUsableMaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"last_sound":{"peon:complete":"done.wav"}}`), 0644))

	st := NewStore(path, nil).Load()
	assert.Equal(t, "done.wav", st.LastSound["peon:complete"])
	// Unset maps must still be writable.
	st.RecordPlay("complete", time.Now())
	st.SetMarker("t1", Marker{Token: "x", ExpiresAt: time.Now()})
	st.AppendEvent("t1", time.Now(), time.Second)
}

func TestStoreSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := NewStore(path, nil)

	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	st := New()
	st.AppendEvent("t1", ts, 10*time.Second)
	st.LastSound["peon:complete"] = "done.wav"
	st.RecordPlay("complete", ts)
	st.SetMarker("t1", Marker{Token: "tok", PID: 7, ExpiresAt: ts.Add(5 * time.Second)})

	require.NoError(t, store.Save(st))

	loaded := store.Load()
	assert.Equal(t, "done.wav", loaded.LastSound["peon:complete"])
	assert.True(t, loaded.LastPlayTime["complete"].Equal(ts))
	assert.Equal(t, 7, loaded.RunningMarkers["t1"].PID)
	assert.Len(t, loaded.Threads["t1"].RecentEventTimes, 1)

	// Saving an unmodified loaded state is idempotent.
	require.NoError(t, store.Save(loaded))
	again := store.Load()
	assert.Equal(t, loaded, again)
}

func TestStoreSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "state.json"), nil)

	st := New()
	st.RecordPlay("complete", time.Now())
	require.NoError(t, store.Save(st))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "state.json", entries[0].Name())
}

func TestStoreSave_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "state.json")
	store := NewStore(path, nil)

	require.NoError(t, store.Save(New()))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}
