package game

import (
	"path/filepath"
	"testing"

	"github.com/iburimskiy/floating-lines/internal/config"
)

func newTestGame(t *testing.T, cfg config.Config, opts Options) *Game {
	t.Helper()
	g, err := New(cfg, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(g.Close)
	return g
}

func TestLayoutResizesCanvas(t *testing.T) {
	tests := []struct {
		name         string
		heroHeight   int
		outW, outH   int
		wantW, wantH int
	}{
		{"follows viewport", 0, 1024, 300, 1024, 300},
		{"fixed hero height", 400, 1024, 300, 1024, 400},
		{"grows with viewport", 0, 1920, 1080, 1920, 1080},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Hero.Height = tt.heroHeight
			g := newTestGame(t, cfg, Options{})

			w, h := g.Layout(tt.outW, tt.outH)
			if w != tt.outW || h != tt.outH {
				t.Errorf("Layout = %dx%d, want %dx%d", w, h, tt.outW, tt.outH)
			}
			if w, h := g.renderer.Size(); w != tt.wantW || h != tt.wantH {
				t.Errorf("renderer size = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
			if g.canvas.width != tt.wantW || g.canvas.height != tt.wantH {
				t.Errorf("canvas size = %dx%d, want %dx%d", g.canvas.width, g.canvas.height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestNewSizesCanvasToWindow(t *testing.T) {
	cfg := config.Default()
	g := newTestGame(t, cfg, Options{})

	if w, h := g.renderer.Size(); w != cfg.Window.Width || h != cfg.Window.Height {
		t.Errorf("renderer size = %dx%d, want %dx%d", w, h, cfg.Window.Width, cfg.Window.Height)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Lines.Segments = 0
	if g, err := New(cfg, Options{}); err == nil || g != nil {
		t.Errorf("New = (%v, %v), want error", g, err)
	}
}

func TestNewSurvivesMissingSoundtrack(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.mp3")
	g := newTestGame(t, config.Default(), Options{Soundtrack: missing})

	if g.track != nil {
		t.Errorf("track loaded from missing file")
	}
	if g.speakerReady {
		t.Errorf("speaker initialised without a track")
	}
	// the backdrop keeps running without audio
	g.updateSoundtrack()
	if g.renderer.Stroke() != g.baseStroke {
		t.Errorf("stroke = %+v, want base %+v", g.renderer.Stroke(), g.baseStroke)
	}
}
