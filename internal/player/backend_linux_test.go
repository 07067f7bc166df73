//go:build linux

package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinuxPlaybackCommand_PrefersPaplay(t *testing.T) {
	orig := lookPath
	defer func() { lookPath = orig }()
	lookPath = stubLookPath("paplay", "aplay", "ffplay")

	argv, err := linuxPlaybackCommand("/tmp/ding.wav")
	require.NoError(t, err)
	assert.Equal(t, []string{"paplay", "/tmp/ding.wav"}, argv)
}

func TestLinuxPlaybackCommand_FallsBackToFfplay(t *testing.T) {
	orig := lookPath
	defer func() { lookPath = orig }()
	lookPath = stubLookPath("ffplay")

	argv, err := linuxPlaybackCommand("/tmp/ding.wav")
	require.NoError(t, err)
	assert.Equal(t, "ffplay", argv[0])
	assert.Contains(t, argv, "-autoexit")
	assert.Equal(t, "/tmp/ding.wav", argv[len(argv)-1])
}

func TestLinuxPlaybackCommand_NoBackend(t *testing.T) {
	orig := lookPath
	defer func() { lookPath = orig }()
	lookPath = stubLookPath()

	_, err := linuxPlaybackCommand("/tmp/ding.wav")
	assert.ErrorIs(t, err, ErrNoBackend)
}

func TestMediaPlayerScript(t *testing.T) {
	script := mediaPlayerScript("C:/Users/x/ding.wav", 0.5)
	assert.Contains(t, script, "file:///C:/Users/x/ding.wav")
	assert.Contains(t, script, "$p.Volume = 0.5")
	assert.Contains(t, script, "MediaPlayer")
}
