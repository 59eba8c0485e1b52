// Package game hosts the floating-lines backdrop in an ebiten window and
// owns the render loop.
package game

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"time"

	"github.com/faiface/beep"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/floating-lines/internal/audio"
	"github.com/iburimskiy/floating-lines/internal/config"
	"github.com/iburimskiy/floating-lines/internal/effects"
	"github.com/iburimskiy/floating-lines/internal/wave"
)

// glowRings is the number of stacked translucent discs that fake a radial
// gradient.
const glowRings = 8

type Options struct {
	Debug bool
	// Soundtrack overrides the configured soundtrack path.
	Soundtrack string
}

type Game struct {
	cfg config.Config

	// viz
	canvas     *canvasSurface
	renderer   *wave.Renderer
	baseStroke wave.Stroke
	background color.NRGBA

	viewportW, viewportH int

	// effects
	ripples  *effects.Ripples
	glow     effects.Glow
	parallax effects.Parallax

	// soundtrack
	track        *audio.Track
	meter        audio.Meter
	speakerRate  beep.SampleRate
	speakerReady bool
	playing      bool
	userPaused   bool

	// snapshot handoff: requested in Update, captured in Draw, saved in Update
	snapshotRequested bool
	snapshot          *image.RGBA

	// state
	debug   bool
	frames  int
	started time.Time
	lastErr error
}

// New builds the game for cfg. A soundtrack that fails to start is logged and
// skipped.
func New(cfg config.Config, opts Options) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	g := &Game{
		cfg:        cfg,
		canvas:     newCanvasSurface(),
		baseStroke: cfg.Lines.Stroke(),
		background: cfg.Hero.Fill(),
		viewportW:  cfg.Window.Width,
		viewportH:  cfg.Window.Height,
		ripples:    effects.NewRipples(cfg.Effects.RippleRadius, cfg.Effects.RippleDuration, cfg.Window.TPS),
		glow:       effects.NewGlow(),
		parallax:   effects.Parallax{Factor: cfg.Effects.ParallaxFactor},
		meter:      audio.Meter{Smoothing: config.SmoothingFactor},
		debug:      opts.Debug,
		started:    time.Now(),
	}
	renderer, err := wave.NewRenderer(g.canvas, g.measureHero, cfg.Lines.Params())
	if err != nil {
		return nil, err
	}
	g.renderer = renderer
	g.renderer.SetStroke(g.baseStroke)

	soundtrack := opts.Soundtrack
	if soundtrack == "" {
		soundtrack = cfg.Soundtrack.Path
	}
	if soundtrack != "" {
		if err := g.loadSoundtrack(soundtrack); err != nil {
			log.Printf("[Soundtrack] autoplay failed: %v", err)
		}
	}

	return g, nil
}

// heroHeight is the container height: configured, or the viewport's.
func (g *Game) heroHeight() int {
	if g.cfg.Hero.Height > 0 {
		return g.cfg.Hero.Height
	}
	return g.viewportH
}

func (g *Game) measureHero() (int, int) {
	return g.viewportW, g.heroHeight()
}

func (g *Game) heroBounds() effects.Rect {
	return effects.Rect{
		X: 0,
		Y: g.parallax.HeroTop(),
		W: float64(g.viewportW),
		H: float64(g.heroHeight()),
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.Close()
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		if err := g.openSoundtrackDialog(); err != nil {
			g.lastErr = err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.snapshotRequested = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.debug = !g.debug
	}

	// wheel up is positive; scrolling down the page moves content up
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.parallax.Scroll(-dy*g.cfg.Effects.ScrollStep, float64(g.viewportH), g.cfg.Effects.PageHeight)
	}

	mouseX, mouseY := ebiten.CursorPosition()
	g.glow.Track(float64(mouseX), float64(mouseY), g.heroBounds())
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.ripples.Spawn(float64(mouseX), float64(mouseY))
	}
	g.ripples.Update()

	g.updateSoundtrack()

	if g.snapshot != nil {
		if err := saveSnapshotDialog(g.snapshot); err != nil {
			g.lastErr = err
		}
		g.snapshot = nil
	}

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)

	g.renderer.Frame()
	g.frames++
	if g.snapshotRequested {
		g.snapshot = g.canvas.capture(g.background)
		g.snapshotRequested = false
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, g.parallax.HeroTop())
	screen.DrawImage(g.canvas.target(), op)

	g.drawGlow(screen)
	g.drawRipples(screen)
	g.drawStatus(screen)
}

func (g *Game) drawGlow(screen *ebiten.Image) {
	radius := g.cfg.Effects.GlowRadius
	if radius <= 0 {
		return
	}
	x, y := g.glow.Position(g.heroBounds())
	c := g.baseStroke.Color
	c.A = 6
	for i := 0; i < glowRings; i++ {
		r := radius * float64(glowRings-i) / glowRings
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(r), c, true)
	}
}

func (g *Game) drawRipples(screen *ebiten.Image) {
	for _, r := range g.ripples.Active() {
		c := color.NRGBA{R: 255, G: 255, B: 255, A: uint8(clamp01(r.Alpha()*0.6) * 0xff)}
		radius := r.Radius(g.ripples.MaxRadius)
		vector.StrokeCircle(screen, float32(r.X), float32(r.Y), float32(radius), 2, c, true)
		c.A /= 3
		vector.DrawFilledCircle(screen, float32(r.X), float32(r.Y), float32(radius), c, true)
	}
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	status := ""
	if g.debug {
		w, h := g.renderer.Size()
		status = fmt.Sprintf("t=%.3f frames=%d canvas=%dx%d scroll=%.0f up=%s fps=%.0f",
			g.renderer.Time(), g.frames, w, h, g.parallax.Scrolled,
			formatDuration(time.Since(g.started)), ebiten.ActualFPS())
		if g.track != nil {
			state := "playing"
			if !g.playing {
				state = "paused"
			}
			status += fmt.Sprintf(" | soundtrack %s level=%.2f", state, g.meter.Value())
		}
	}
	if g.lastErr != nil {
		if status != "" {
			status += " | "
		}
		status += "Error: " + g.lastErr.Error()
	}
	if status != "" {
		ebitenutil.DebugPrintAt(screen, status, 12, 12)
	}
}

// Layout is the viewport-resize notification. The canvas is resized here,
// before the next Draw, so no frame is painted at a stale size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.viewportW || outsideHeight != g.viewportH {
		g.viewportW, g.viewportH = outsideWidth, outsideHeight
		g.renderer.Resize()
	}
	return outsideWidth, outsideHeight
}

// Close stops the soundtrack and releases its file.
func (g *Game) Close() {
	g.closeSoundtrack()
}
