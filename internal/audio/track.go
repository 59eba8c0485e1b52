// Package audio decodes the optional soundtrack and exposes its loudness.
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

// ErrUnsupported is returned for files with an unknown extension.
var ErrUnsupported = errors.New("unsupported audio format")

// Track is a decoded, endlessly looping soundtrack.
// The chain is streamer -> loop -> volume -> tap -> ctrl.
type Track struct {
	Path   string
	Format beep.Format

	file     *os.File
	streamer beep.StreamSeekCloser
	volume   *effects.Volume
	tap      *Tap
	ctrl     *beep.Ctrl
}

// Open decodes a wav, mp3 or flac file. The returned track starts paused.
// volume is in log2 units (0 leaves the signal unchanged).
func Open(path string, volume float64, ringSize int) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open soundtrack: %w", err)
	}

	streamer, format, err := decode(f, filepath.Ext(path))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	vol := &effects.Volume{
		Streamer: beep.Loop(-1, streamer),
		Base:     2,
		Volume:   volume,
	}
	tap := NewTap(vol, ringSize)

	return &Track{
		Path:     path,
		Format:   format,
		file:     f,
		streamer: streamer,
		volume:   vol,
		tap:      tap,
		ctrl:     &beep.Ctrl{Streamer: tap, Paused: true},
	}, nil
}

func decode(f *os.File, ext string) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(ext) {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	}
	return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupported, ext)
}

// Streamer is what gets handed to the speaker.
func (t *Track) Streamer() beep.Streamer { return t.ctrl }

// SetPaused and Paused touch state read by the speaker goroutine; callers
// must hold speaker.Lock once the track is playing.
func (t *Track) SetPaused(paused bool) { t.ctrl.Paused = paused }

func (t *Track) Paused() bool { return t.ctrl.Paused }

// Level is the recent loudness of the track, see Tap.Level.
func (t *Track) Level(n int) float64 { return t.tap.Level(n) }

func (t *Track) Duration() time.Duration {
	return t.Format.SampleRate.D(t.streamer.Len())
}

func (t *Track) Close() error {
	err := t.streamer.Close()
	// the decoder usually closes the file already
	if ferr := t.file.Close(); ferr != nil && !errors.Is(ferr, os.ErrClosed) && err == nil {
		err = ferr
	}
	return err
}
