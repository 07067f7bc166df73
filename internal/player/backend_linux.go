//go:build linux

package player

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// isWSL reports whether we are running under Windows Subsystem for Linux.
func isWSL() bool {
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}
	release := strings.ToLower(string(data))
	return strings.Contains(release, "microsoft") || strings.Contains(release, "wsl")
}

// playbackCommand builds the player argv for Linux. Under WSL the Windows
// MediaPlayer honors volume; native Linux players are tried in order.
func playbackCommand(path string, volume float64) ([]string, error) {
	if isWSL() && haveBinary("powershell.exe") && haveBinary("wslpath") {
		out, err := exec.Command("wslpath", "-w", path).Output()
		if err == nil {
			winPath := strings.ReplaceAll(strings.TrimSpace(string(out)), `\`, "/")
			return []string{"powershell.exe", "-NoProfile", "-NonInteractive", "-Command",
				mediaPlayerScript(winPath, volume)}, nil
		}
	}

	return linuxPlaybackCommand(path)
}

// linuxPlaybackCommand picks the first available native player.
// None of these take a volume flag uniformly, so volume is left to the mixer.
func linuxPlaybackCommand(path string) ([]string, error) {
	candidates := [][]string{
		{"paplay", path},
		{"aplay", path},
		{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", path},
	}
	for _, argv := range candidates {
		if haveBinary(argv[0]) {
			return argv, nil
		}
	}
	return nil, ErrNoBackend
}

// mediaPlayerScript builds the PowerShell snippet that plays a clip through
// System.Windows.Media.MediaPlayer, which handles wav and mp3 asynchronously.
func mediaPlayerScript(winPath string, volume float64) string {
	return fmt.Sprintf("Add-Type -AssemblyName PresentationCore; "+
		"$p = New-Object System.Windows.Media.MediaPlayer; "+
		"$p.Open([Uri]::new('file:///%s')); "+
		"$p.Volume = %g; "+
		"Start-Sleep -Milliseconds 150; "+
		"$p.Play(); "+
		"Start-Sleep -Seconds 3; "+
		"$p.Close()", winPath, volume)
}
