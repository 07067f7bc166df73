//go:build windows

package player

import (
	"fmt"
	"strings"
)

// playbackCommand builds the player argv for Windows via PowerShell's
// MediaPlayer, which handles wav and mp3.
func playbackCommand(path string, volume float64) ([]string, error) {
	if !haveBinary("powershell") {
		return nil, ErrNoBackend
	}
	uriPath := strings.ReplaceAll(path, `\`, "/")
	script := fmt.Sprintf("Add-Type -AssemblyName PresentationCore; "+
		"$p = New-Object System.Windows.Media.MediaPlayer; "+
		"$p.Open([Uri]::new('file:///%s')); "+
		"$p.Volume = %g; "+
		"Start-Sleep -Milliseconds 150; "+
		"$p.Play(); "+
		"Start-Sleep -Seconds 3; "+
		"$p.Close()", uriPath, volume)
	return []string{"powershell", "-NoProfile", "-NonInteractive", "-Command", script}, nil
}
