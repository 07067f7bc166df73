package player

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

var (
	speakerOnce sync.Once
	speakerRate beep.SampleRate
	speakerErr  error
)

// PlayBlocking decodes and plays the file in-process, returning after the
// clip finishes. Supports WAV, OGG, and MP3. Used by blocking preview and
// as a fallback when no external player binary exists.
func (p *Player) PlayBlocking(path string, volume float64) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open sound file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		return fmt.Errorf("unsupported audio format: %s", ext)
	}
	if err != nil {
		return fmt.Errorf("decode sound: %w", err)
	}
	defer func() { _ = streamer.Close() }()

	if err := initSpeaker(format.SampleRate); err != nil {
		return err
	}

	var stream beep.Streamer = streamer
	if format.SampleRate != speakerRate {
		stream = beep.Resample(4, format.SampleRate, speakerRate, stream)
	}
	if volume < 1.0 {
		stream = &effects.Volume{
			Streamer: stream,
			Base:     2,
			Volume:   volumeExponent(volume),
			Silent:   volume == 0,
		}
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(stream, beep.Callback(func() { close(done) })))
	<-done
	return nil
}

// initSpeaker initializes the speaker once per process.
func initSpeaker(rate beep.SampleRate) error {
	speakerOnce.Do(func() {
		bufferSize := rate.N(time.Millisecond * 100)
		speakerErr = speaker.Init(rate, bufferSize)
		speakerRate = rate
	})
	if speakerErr != nil {
		return fmt.Errorf("initialize speaker: %w", speakerErr)
	}
	return nil
}

// volumeExponent converts a linear volume (0-1) to the base-2 exponent the
// effects.Volume streamer expects (0.5 -> -1, 0.25 -> -2).
func volumeExponent(volume float64) float64 {
	if volume <= 0 {
		return -100
	}
	return math.Log2(volume)
}
