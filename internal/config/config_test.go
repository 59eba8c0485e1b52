package config

import (
	"errors"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iburimskiy/floating-lines/internal/wave"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if got := cfg.Lines.Params(); got != wave.DefaultParams() {
		t.Errorf("Lines.Params() = %+v, want %+v", got, wave.DefaultParams())
	}
	if got := cfg.Lines.Stroke(); got != wave.DefaultStroke {
		t.Errorf("Lines.Stroke() = %+v, want %+v", got, wave.DefaultStroke)
	}
	if cfg.Hero.Height != 0 {
		t.Errorf("Hero.Height = %d, want 0 (follow viewport)", cfg.Hero.Height)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") = %v", err)
	}
	if cfg != Default() {
		t.Error("Load(\"\") differs from Default()")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lines.yaml")
	data := `
window:
  width: 800
  title: test
hero:
  height: 400
lines:
  count: 9
  color: "#ff000080"
effects:
  ripple_duration: 250ms
soundtrack:
  path: theme.mp3
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}

	if cfg.Window.Width != 800 || cfg.Window.Height != WindowHeight {
		t.Errorf("window = %dx%d, want 800x%d", cfg.Window.Width, cfg.Window.Height, WindowHeight)
	}
	if cfg.Hero.Height != 400 {
		t.Errorf("Hero.Height = %d, want 400", cfg.Hero.Height)
	}
	if cfg.Lines.Count != 9 || cfg.Lines.Segments != wave.DefaultSegments {
		t.Errorf("lines = %+v", cfg.Lines)
	}
	if want := (color.NRGBA{R: 255, A: 128}); cfg.Lines.Stroke().Color != want {
		t.Errorf("stroke color = %v, want %v", cfg.Lines.Stroke().Color, want)
	}
	if cfg.Effects.RippleDuration != 250*time.Millisecond {
		t.Errorf("RippleDuration = %v", cfg.Effects.RippleDuration)
	}
	if cfg.Soundtrack.Path != "theme.mp3" || cfg.Soundtrack.VisibilityThreshold != VisibilityThreshold {
		t.Errorf("soundtrack = %+v", cfg.Soundtrack)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Load of a missing file succeeded")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error %v does not wrap fs.ErrNotExist", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantKey string
	}{
		{"unknown key", "lines:\n  colour: red\n", "colour"},
		{"zero lines", "lines:\n  count: 0\n", "lines"},
		{"bad line color", "lines:\n  color: teal\n", "lines.color"},
		{"bad background", "hero:\n  background: \"#12\"\n", "hero.background"},
		{"negative hero", "hero:\n  height: -1\n", "hero.height"},
		{"threshold above one", "soundtrack:\n  visibility_threshold: 2\n", "soundtrack.visibility_threshold"},
		{"short page", "effects:\n  page_height: 0.5\n", "effects.page_height"},
		{"zero tps", "window:\n  tps: 0\n", "window.tps"},
		{"NaN baseline", "lines:\n  baseline: .nan\n", "lines"},
		{"NaN line alpha", "lines:\n  color: \"rgba(1,2,3,nan)\"\n", "lines.color"},
		{"NaN line width", "lines:\n  width: .nan\n", "lines.width"},
		{"NaN threshold", "soundtrack:\n  visibility_threshold: .nan\n", "soundtrack.visibility_threshold"},
		{"infinite page", "effects:\n  page_height: .inf\n", "effects.page_height"},
		{"too many segments", "lines:\n  segments: 100000\n", "lines"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Parse() succeeded")
			}
			if !strings.Contains(err.Error(), tt.wantKey) {
				t.Errorf("error %q does not mention %q", err, tt.wantKey)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"rgba(60, 180, 172, 0.55)", color.NRGBA{R: 60, G: 180, B: 172, A: 140}, false},
		{"RGB(1,2,3)", color.NRGBA{R: 1, G: 2, B: 3, A: 255}, false},
		{"#0b1117", color.NRGBA{R: 0x0b, G: 0x11, B: 0x17, A: 0xff}, false},
		{"#ffffff00", color.NRGBA{R: 0xff, G: 0xff, B: 0xff}, false},
		{"  rgba(0, 0, 0, 1) ", color.NRGBA{A: 255}, false},
		{"rgba(0, 0, 0)", color.NRGBA{}, true},
		{"rgb(256, 0, 0)", color.NRGBA{}, true},
		{"rgba(0, 0, 0, 1.5)", color.NRGBA{}, true},
		{"rgba(1, 2, 3, nan)", color.NRGBA{}, true},
		{"#xyzxyz", color.NRGBA{}, true},
		{"teal", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
