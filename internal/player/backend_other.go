//go:build !linux && !darwin && !windows

package player

// playbackCommand has no known external player on this platform; callers
// fall through to the in-process backend or the terminal bell.
func playbackCommand(path string, volume float64) ([]string, error) {
	return nil, ErrNoBackend
}
