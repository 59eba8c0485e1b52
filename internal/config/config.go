package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/floating-lines/internal/wave"
)

const (
	WindowWidth  = 1280
	WindowHeight = 720
	WindowTitle  = "Floating Lines - Wheel: scroll, O: soundtrack, S: snapshot, Esc/Q: quit"
	TPS          = 60

	BackgroundColor = "#0b1117"

	// Line appearance
	LineColor = "rgba(60, 180, 172, 0.55)"
	LineWidth = 4.0

	// Effect parameters
	RippleRadius      = 120.0
	RippleDuration    = 600 * time.Millisecond
	GlowRadius        = 180.0
	ParallaxFactor    = 0.3
	ScrollStep        = 40.0
	PageHeightScreens = 3.0

	// Soundtrack
	SoundtrackVolume    = 0.0
	VisibilityThreshold = 0.25
	SoundtrackPulse     = 0.35
	VisualRingSize      = 8192
	SmoothingFactor     = 0.6
)

// Config is the full runtime configuration. Keys missing from a YAML file
// keep their defaults.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Hero       HeroConfig       `yaml:"hero"`
	Lines      LinesConfig      `yaml:"lines"`
	Effects    EffectsConfig    `yaml:"effects"`
	Soundtrack SoundtrackConfig `yaml:"soundtrack"`
}

type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
	TPS       int    `yaml:"tps"`
}

// HeroConfig describes the container the wave canvas fills.
type HeroConfig struct {
	// Height in pixels; 0 follows the viewport height.
	Height     int    `yaml:"height"`
	Background string `yaml:"background"`
}

type LinesConfig struct {
	Count        int     `yaml:"count"`
	Distance     float64 `yaml:"distance"`
	BendStrength float64 `yaml:"bend_strength"`
	Segments     int     `yaml:"segments"`
	Baseline     float64 `yaml:"baseline"`
	PhaseStep    float64 `yaml:"phase_step"`
	TimeStep     float64 `yaml:"time_step"`
	Color        string  `yaml:"color"`
	Width        float64 `yaml:"width"`
}

type EffectsConfig struct {
	RippleRadius   float64       `yaml:"ripple_radius"`
	RippleDuration time.Duration `yaml:"ripple_duration"`
	GlowRadius     float64       `yaml:"glow_radius"`
	ParallaxFactor float64       `yaml:"parallax_factor"`
	ScrollStep     float64       `yaml:"scroll_step"`
	// PageHeight is the scrollable page length in viewport heights.
	PageHeight float64 `yaml:"page_height"`
}

type SoundtrackConfig struct {
	Path string `yaml:"path"`
	// Volume is in beep's log2 units: 0 is unchanged, -1 is half.
	Volume              float64 `yaml:"volume"`
	VisibilityThreshold float64 `yaml:"visibility_threshold"`
	Pulse               float64 `yaml:"pulse"`
}

// Default returns the built-in configuration.
func Default() Config {
	p := wave.DefaultParams()
	return Config{
		Window: WindowConfig{
			Width:     WindowWidth,
			Height:    WindowHeight,
			Title:     WindowTitle,
			Resizable: true,
			TPS:       TPS,
		},
		Hero: HeroConfig{
			Background: BackgroundColor,
		},
		Lines: LinesConfig{
			Count:        p.LineCount,
			Distance:     p.LineDistance,
			BendStrength: p.BendStrength,
			Segments:     p.Segments,
			Baseline:     p.Baseline,
			PhaseStep:    p.PhaseStep,
			TimeStep:     p.TimeStep,
			Color:        LineColor,
			Width:        LineWidth,
		},
		Effects: EffectsConfig{
			RippleRadius:   RippleRadius,
			RippleDuration: RippleDuration,
			GlowRadius:     GlowRadius,
			ParallaxFactor: ParallaxFactor,
			ScrollStep:     ScrollStep,
			PageHeight:     PageHeightScreens,
		},
		Soundtrack: SoundtrackConfig{
			Volume:              SoundtrackVolume,
			VisibilityThreshold: VisibilityThreshold,
			Pulse:               SoundtrackPulse,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window: size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 {
		return fmt.Errorf("window.tps: %d must be positive", c.Window.TPS)
	}
	if c.Hero.Height < 0 {
		return fmt.Errorf("hero.height: %d must not be negative", c.Hero.Height)
	}
	if _, err := ParseColor(c.Hero.Background); err != nil {
		return fmt.Errorf("hero.background: %w", err)
	}
	if err := c.Lines.Params().Validate(); err != nil {
		return fmt.Errorf("lines: %w", err)
	}
	if _, err := ParseColor(c.Lines.Color); err != nil {
		return fmt.Errorf("lines.color: %w", err)
	}
	if !(c.Lines.Width > 0) || math.IsInf(c.Lines.Width, 0) {
		return fmt.Errorf("lines.width: %v must be positive", c.Lines.Width)
	}
	if c.Effects.RippleDuration <= 0 {
		return fmt.Errorf("effects.ripple_duration: %v must be positive", c.Effects.RippleDuration)
	}
	if !(c.Effects.PageHeight >= 1) || math.IsInf(c.Effects.PageHeight, 0) {
		return fmt.Errorf("effects.page_height: %v must be at least 1", c.Effects.PageHeight)
	}
	if t := c.Soundtrack.VisibilityThreshold; !(t >= 0 && t <= 1) {
		return fmt.Errorf("soundtrack.visibility_threshold: %v must be within [0, 1]", t)
	}
	return nil
}

// Params converts the line section into wave parameters.
func (l LinesConfig) Params() wave.Params {
	return wave.Params{
		LineCount:    l.Count,
		LineDistance: l.Distance,
		BendStrength: l.BendStrength,
		Segments:     l.Segments,
		Baseline:     l.Baseline,
		PhaseStep:    l.PhaseStep,
		TimeStep:     l.TimeStep,
	}
}

// Stroke returns the line paint. An unparsable color falls back to the
// default stroke color.
func (l LinesConfig) Stroke() wave.Stroke {
	c, err := ParseColor(l.Color)
	if err != nil {
		c = wave.DefaultStroke.Color
	}
	return wave.Stroke{Color: c, Width: float32(l.Width)}
}

// Fill returns the hero background, falling back to opaque black.
func (h HeroConfig) Fill() color.NRGBA {
	c, err := ParseColor(h.Background)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return c
}
