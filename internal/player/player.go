// Package player invokes a platform audio backend to play a sound file.
//
// The default path is spawn-and-detach: an external player process is
// started and left to finish on its own, and the caller gets back the pid
// plus a conservative estimate of how long the clip runs. An in-process
// blocking backend and a terminal bell serve as fallbacks.
package player

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"
)

// ErrNoBackend means no platform player binary was found.
var ErrNoBackend = errors.New("no audio backend available")

// DefaultClipTTL is the assumed playback duration for detached playback.
// Notification clips are short; the overlap marker uses this as its TTL.
const DefaultClipTTL = 5 * time.Second

// Handle describes a started playback.
type Handle struct {
	// PID of the detached player process; zero for in-process playback.
	PID int
	// TTL is how long the playback should be considered active.
	TTL time.Duration
}

// Player selects and invokes audio backends.
type Player struct {
	logger *slog.Logger
}

// NewPlayer creates a Player.
func NewPlayer(logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{logger: logger}
}

// Play starts detached playback of the file at path. It returns ErrNoBackend
// when no platform player exists; other errors mean the backend was found
// but failed to start.
func (p *Player) Play(path string, volume float64) (Handle, error) {
	argv, err := playbackCommand(path, volume)
	if err != nil {
		return Handle{}, err
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return Handle{}, fmt.Errorf("start %s: %w", argv[0], err)
	}

	pid := cmd.Process.Pid
	// Detach; the short-lived hook process exits before the clip ends.
	if err := cmd.Process.Release(); err != nil {
		p.logger.Debug("failed to release player process", "pid", pid, "error", err)
	}

	p.logger.Debug("playback started", "backend", argv[0], "pid", pid, "path", path)
	return Handle{PID: pid, TTL: DefaultClipTTL}, nil
}

// Bell emits the terminal bell as a last-resort cue.
func (p *Player) Bell() {
	fmt.Fprint(os.Stdout, "\a")
}

// lookPath is swapped in tests to control backend discovery.
var lookPath = exec.LookPath

// haveBinary reports whether name resolves on PATH.
func haveBinary(name string) bool {
	_, err := lookPath(name)
	return err == nil
}
