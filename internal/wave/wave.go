// Package wave evaluates and renders the floating-lines backdrop: a fixed set
// of horizontally offset curves, each a sum of three sinusoids driven by a
// monotonic clock.
package wave

import (
	"errors"
	"fmt"
	"math"
)

// Default curve parameters.
const (
	DefaultLineCount    = 7
	DefaultLineDistance = 30.0
	DefaultBendStrength = 70.0
	DefaultSegments     = 120
	DefaultBaseline     = 0.55
	DefaultPhaseStep    = 0.6
	DefaultTimeStep     = 0.012

	// MaxSegments keeps a stroked line within ebiten's uint16 vertex indices.
	MaxSegments = 4096
)

// Params describes the line set and the curve shape.
type Params struct {
	LineCount    int
	LineDistance float64
	BendStrength float64
	Segments     int
	// Baseline is the vertical centre of the set as a fraction of surface height.
	Baseline  float64
	PhaseStep float64
	TimeStep  float64
}

// DefaultParams returns the stock 7-line configuration.
func DefaultParams() Params {
	return Params{
		LineCount:    DefaultLineCount,
		LineDistance: DefaultLineDistance,
		BendStrength: DefaultBendStrength,
		Segments:     DefaultSegments,
		Baseline:     DefaultBaseline,
		PhaseStep:    DefaultPhaseStep,
		TimeStep:     DefaultTimeStep,
	}
}

// Validate rejects parameters that cannot be drawn: non-positive counts,
// more than MaxSegments segments, a non-positive time step, a baseline
// outside [0, 1] and non-finite distances or phases.
func (p Params) Validate() error {
	switch {
	case p.LineCount <= 0:
		return errors.New("line count must be positive")
	case p.Segments <= 0 || p.Segments > MaxSegments:
		return fmt.Errorf("segments must be within [1, %d]", MaxSegments)
	case !(p.TimeStep > 0) || math.IsInf(p.TimeStep, 0):
		return errors.New("time step must be positive")
	case !(p.Baseline >= 0 && p.Baseline <= 1):
		return errors.New("baseline must be within [0, 1]")
	case !finite(p.LineDistance) || !finite(p.BendStrength) || !finite(p.PhaseStep):
		return errors.New("distance, bend strength and phase step must be finite")
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Line is one curve of the set. Its offsets are fixed at construction.
type Line struct {
	Index   int
	YOffset float64
	Phase   float64
}

// Lines builds the line set for p.
func Lines(p Params) []Line {
	lines := make([]Line, p.LineCount)
	half := float64(p.LineCount) / 2
	for i := range lines {
		lines[i] = Line{
			Index:   i,
			YOffset: (float64(i) - half) * p.LineDistance,
			Phase:   float64(i) * p.PhaseStep,
		}
	}
	return lines
}

type Point struct {
	X, Y float64
}

// Y returns the curve height of l at normalized x (nx in [-1, 1]) and clock t
// on a surface of the given height.
func (p Params) Y(l Line, nx, t, height float64) float64 {
	a := p.BendStrength
	w := l.Phase

	wave1 := math.Sin(nx*2.5+t*0.4+w) * a
	wave2 := math.Sin(nx*4+t*0.25+w*0.7) * (a * 0.25)
	wave3 := math.Cos(nx*1.5+t*0.5+w*1.2) * (a * 0.15)

	return height*p.Baseline + l.YOffset + wave1 + wave2 + wave3
}

// Sample evaluates Segments+1 evenly spaced points of l across a surface of
// width w and height h, appending them to dst[:0].
func (p Params) Sample(l Line, t, w, h float64, dst []Point) []Point {
	dst = dst[:0]
	for k := 0; k <= p.Segments; k++ {
		f := float64(k) / float64(p.Segments)
		nx := f*2 - 1
		dst = append(dst, Point{X: f * w, Y: p.Y(l, nx, t, h)})
	}
	return dst
}

// Clock is the monotonically advancing time scalar that drives wave phase.
type Clock struct {
	t    float64
	step float64
}

func NewClock(step float64) *Clock {
	return &Clock{step: step}
}

func (c *Clock) Now() float64 { return c.t }

// Tick advances the clock by one frame.
func (c *Clock) Tick() { c.t += c.step }
