package wave

import (
	"fmt"
	"image/color"
)

// Stroke is the paint applied to every line.
type Stroke struct {
	Color color.NRGBA
	Width float32
}

// DefaultStroke is rgba(60, 180, 172, 0.55) at 4px.
var DefaultStroke = Stroke{
	Color: color.NRGBA{R: 60, G: 180, B: 172, A: 140},
	Width: 4,
}

// Surface is a 2D drawing target owned by a Renderer.
type Surface interface {
	Resize(width, height int)
	Clear()
	StrokePath(points []Point, s Stroke)
}

// MeasureFunc reports the current size of the container the surface fills.
type MeasureFunc func() (width, height int)

// Renderer repaints the line set onto its surface once per frame.
type Renderer struct {
	surface Surface
	measure MeasureFunc
	params  Params
	lines   []Line
	clock   *Clock
	stroke  Stroke

	width, height int
	points        []Point
}

// NewRenderer sizes surface from measure and returns a renderer ready to draw.
// A nil surface yields a renderer that never draws. params must pass
// Params.Validate.
func NewRenderer(surface Surface, measure MeasureFunc, params Params) (*Renderer, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("wave params: %w", err)
	}
	r := &Renderer{
		surface: surface,
		measure: measure,
		params:  params,
		lines:   Lines(params),
		clock:   NewClock(params.TimeStep),
		stroke:  DefaultStroke,
		points:  make([]Point, 0, params.Segments+1),
	}
	r.Resize()
	return r, nil
}

func (r *Renderer) Active() bool { return r.surface != nil }

// Resize re-measures the container and resizes the surface to match.
func (r *Renderer) Resize() {
	if !r.Active() || r.measure == nil {
		return
	}
	w, h := r.measure()
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	r.width, r.height = w, h
	r.surface.Resize(w, h)
}

// Frame clears the surface, strokes every line at the current clock value and
// advances the clock.
func (r *Renderer) Frame() {
	if !r.Active() {
		return
	}
	r.surface.Clear()

	t := r.clock.Now()
	w, h := float64(r.width), float64(r.height)
	for _, l := range r.lines {
		r.points = r.params.Sample(l, t, w, h, r.points)
		r.surface.StrokePath(r.points, r.stroke)
	}

	r.clock.Tick()
}

func (r *Renderer) SetStroke(s Stroke) { r.stroke = s }

func (r *Renderer) Stroke() Stroke { return r.stroke }

func (r *Renderer) Size() (width, height int) { return r.width, r.height }

// Time returns the clock value the next frame will be drawn at.
func (r *Renderer) Time() float64 { return r.clock.Now() }

// Lines returns a copy of the line set.
func (r *Renderer) Lines() []Line {
	out := make([]Line, len(r.lines))
	copy(out, r.lines)
	return out
}

func (r *Renderer) Params() Params { return r.params }
