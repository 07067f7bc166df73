package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var base = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func TestAppendEvent_CountsWithinWindow(t *testing.T) {
	st := New()
	window := 10 * time.Second

	assert.Equal(t, 1, st.AppendEvent("t1", base, window))
	assert.Equal(t, 2, st.AppendEvent("t1", base.Add(2*time.Second), window))
	assert.Equal(t, 3, st.AppendEvent("t1", base.Add(4*time.Second), window))
}

func TestAppendEvent_PrunesOldEntries(t *testing.T) {
	st := New()
	window := 10 * time.Second

	st.AppendEvent("t1", base, window)
	st.AppendEvent("t1", base.Add(2*time.Second), window)

	// 20s later both prior entries fall out of the window.
	count := st.AppendEvent("t1", base.Add(20*time.Second), window)
	assert.Equal(t, 1, count)
	assert.Len(t, st.Threads["t1"].RecentEventTimes, 1)
}

func TestAppendEvent_BoundsWindowSize(t *testing.T) {
	st := New()
	window := time.Hour

	for i := 0; i < 50; i++ {
		st.AppendEvent("t1", base.Add(time.Duration(i)*time.Second), window)
	}
	assert.Len(t, st.Threads["t1"].RecentEventTimes, maxRecentEvents)
}

func TestAppendEvent_ThreadsAreIndependent(t *testing.T) {
	st := New()
	window := 10 * time.Second

	st.AppendEvent("t1", base, window)
	st.AppendEvent("t1", base.Add(time.Second), window)
	count := st.AppendEvent("t2", base.Add(2*time.Second), window)
	assert.Equal(t, 1, count)
}

func TestLastEvent(t *testing.T) {
	st := New()

	_, ok := st.LastEvent("t1")
	assert.False(t, ok)

	st.AppendEvent("t1", base, 10*time.Second)
	last, ok := st.LastEvent("t1")
	assert.True(t, ok)
	assert.True(t, last.Equal(base))
}

func TestActiveMarker_RespectsTTL(t *testing.T) {
	st := New()
	st.SetMarker("t1", Marker{Token: "tok", PID: 42, ExpiresAt: base.Add(5 * time.Second)})

	m, active := st.ActiveMarker("t1", base.Add(2*time.Second))
	assert.True(t, active)
	assert.Equal(t, 42, m.PID)

	// Expired markers are cleared on lookup.
	_, active = st.ActiveMarker("t1", base.Add(6*time.Second))
	assert.False(t, active)
	_, exists := st.RunningMarkers["t1"]
	assert.False(t, exists)
}

func TestRecordPlay(t *testing.T) {
	st := New()
	st.RecordPlay("complete", base)

	last, ok := st.LastPlay("complete")
	assert.True(t, ok)
	assert.True(t, last.Equal(base))

	_, ok = st.LastPlay("error")
	assert.False(t, ok)
}
