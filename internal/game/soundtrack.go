package game

import (
	"errors"
	"log"
	"time"

	"github.com/faiface/beep/speaker"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/floating-lines/internal/audio"
	"github.com/iburimskiy/floating-lines/internal/config"
	"github.com/iburimskiy/floating-lines/internal/effects"
)

// levelWindow is how many recent samples feed the loudness meter.
const levelWindow = 2048

func (g *Game) openSoundtrackDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Soundtrack"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	return g.loadSoundtrack(filename)
}

// loadSoundtrack replaces the current soundtrack. Playback starts on the next
// tick if the hero is visible.
func (g *Game) loadSoundtrack(path string) error {
	track, err := audio.Open(path, g.cfg.Soundtrack.Volume, config.VisualRingSize)
	if err != nil {
		return err
	}

	rate := track.Format.SampleRate
	bufferSize := rate.N(time.Second / 20)
	switch {
	case !g.speakerReady:
		if err := speaker.Init(rate, bufferSize); err != nil {
			_ = track.Close()
			return err
		}
		g.speakerReady = true
	case g.speakerRate != rate:
		speaker.Clear()
		if err := speaker.Init(rate, bufferSize); err != nil {
			_ = track.Close()
			return err
		}
	default:
		speaker.Clear()
	}
	g.speakerRate = rate

	if g.track != nil {
		_ = g.track.Close()
	}
	g.track = track
	g.playing = false
	g.userPaused = false

	speaker.Play(track.Streamer())
	log.Printf("[Soundtrack] loaded %s (%s, %d Hz)", path, formatDuration(track.Duration()), rate)
	return nil
}

func (g *Game) togglePause() {
	if g.track == nil {
		return
	}
	g.userPaused = !g.userPaused
}

// updateSoundtrack plays the track while enough of the hero is on screen and
// feeds its loudness into the line stroke.
func (g *Game) updateSoundtrack() {
	stroke := g.baseStroke
	if g.track == nil {
		g.renderer.SetStroke(stroke)
		return
	}

	visible := effects.Visibility(g.parallax.HeroTop(), float64(g.heroHeight()), float64(g.viewportH))
	shouldPlay := effects.ShouldPlay(visible, g.cfg.Soundtrack.VisibilityThreshold, g.userPaused)
	if shouldPlay != g.playing {
		speaker.Lock()
		g.track.SetPaused(!shouldPlay)
		speaker.Unlock()
		g.playing = shouldPlay
	}

	level := 0.0
	if g.playing {
		level = g.track.Level(levelWindow)
	}
	pulse := g.meter.Update(level)

	alpha := float64(stroke.Color.A) / 0xff * (1 + g.cfg.Soundtrack.Pulse*pulse)
	stroke.Color.A = uint8(clamp01(alpha) * 0xff)
	g.renderer.SetStroke(stroke)
}

func (g *Game) closeSoundtrack() {
	if g.track == nil {
		return
	}
	speaker.Clear()
	if err := g.track.Close(); err != nil {
		log.Printf("[Soundtrack] close: %v", err)
	}
	g.track = nil
}
