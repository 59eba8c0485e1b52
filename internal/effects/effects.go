// Package effects holds the per-tick state of the hero decorations: click
// ripples, the cursor glow and the scroll parallax.
package effects

import (
	"math"
	"time"
)

// Rect is an axis-aligned rectangle in screen pixels.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Ripple is an expanding, fading ring spawned by a click.
type Ripple struct {
	X, Y float64
	Age  int
	Life int
}

// Progress runs from 0 at spawn to 1 at expiry.
func (r Ripple) Progress() float64 {
	if r.Life <= 0 {
		return 1
	}
	return clamp01(float64(r.Age) / float64(r.Life))
}

func (r Ripple) Radius(maxRadius float64) float64 { return r.Progress() * maxRadius }

func (r Ripple) Alpha() float64 { return 1 - r.Progress() }

// Ripples is the set of live ripples.
type Ripples struct {
	MaxRadius float64
	Life      int
	items     []Ripple
}

// NewRipples converts duration into a lifetime in ticks at the given TPS.
func NewRipples(maxRadius float64, duration time.Duration, tps int) *Ripples {
	life := int(math.Round(duration.Seconds() * float64(tps)))
	if life < 1 {
		life = 1
	}
	return &Ripples{MaxRadius: maxRadius, Life: life}
}

func (rs *Ripples) Spawn(x, y float64) {
	rs.items = append(rs.items, Ripple{X: x, Y: y, Life: rs.Life})
}

// Update ages every ripple by one tick and drops the expired ones.
func (rs *Ripples) Update() {
	live := rs.items[:0]
	for _, r := range rs.items {
		r.Age++
		if r.Age < r.Life {
			live = append(live, r)
		}
	}
	rs.items = live
}

func (rs *Ripples) Active() []Ripple { return rs.items }

func (rs *Ripples) Len() int { return len(rs.items) }

// Glow tracks the cursor as a fraction of the hero rectangle.
type Glow struct {
	X, Y float64
}

func NewGlow() Glow { return Glow{X: 0.5, Y: 0.5} }

// Track follows the cursor while it is inside bounds and recentres otherwise.
func (g *Glow) Track(cx, cy float64, bounds Rect) {
	if bounds.W <= 0 || bounds.H <= 0 || !bounds.Contains(cx, cy) {
		g.X, g.Y = 0.5, 0.5
		return
	}
	g.X = (cx - bounds.X) / bounds.W
	g.Y = (cy - bounds.Y) / bounds.H
}

// Position maps the glow back into screen pixels.
func (g Glow) Position(bounds Rect) (x, y float64) {
	return bounds.X + g.X*bounds.W, bounds.Y + g.Y*bounds.H
}

// Parallax moves the hero at a fraction of the page scroll.
type Parallax struct {
	Factor   float64
	Scrolled float64
	Offset   float64
}

// Scroll moves the page by delta pixels, keeping it within a page of
// pageScreens viewport heights.
func (p *Parallax) Scroll(delta, viewportH, pageScreens float64) {
	limit := math.Max(0, (pageScreens-1)*viewportH)
	p.Scrolled = math.Max(0, math.Min(limit, p.Scrolled+delta))
	// the offset freezes once the hero has scrolled a full viewport
	if p.Scrolled < viewportH {
		p.Offset = p.Scrolled * p.Factor
	}
}

// HeroTop is the on-screen y of the hero's top edge.
func (p Parallax) HeroTop() float64 { return p.Offset - p.Scrolled }

// Visibility is the fraction of a hero of height heroH, whose top is at
// heroTop, that lies within a viewport of height viewportH.
func Visibility(heroTop, heroH, viewportH float64) float64 {
	if heroH <= 0 {
		return 0
	}
	top := math.Max(heroTop, 0)
	bottom := math.Min(heroTop+heroH, viewportH)
	return clamp01((bottom - top) / heroH)
}

// ShouldPlay reports whether hero media plays: the user has not paused it and
// at least threshold of the hero is visible.
func ShouldPlay(visible, threshold float64, userPaused bool) bool {
	return !userPaused && visible >= threshold
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
