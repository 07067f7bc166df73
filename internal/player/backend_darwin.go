//go:build darwin

package player

import "strconv"

// playbackCommand builds the player argv for macOS using afplay.
func playbackCommand(path string, volume float64) ([]string, error) {
	if !haveBinary("afplay") {
		return nil, ErrNoBackend
	}
	return []string{"afplay", "-v", strconv.FormatFloat(volume, 'f', -1, 64), path}, nil
}
