package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/floating-lines/internal/capture"
	"github.com/iburimskiy/floating-lines/internal/wave"
)

// canvasSurface is an offscreen ebiten image the wave renderer paints into.
// The image is (re)allocated lazily on the first draw after a resize.
type canvasSurface struct {
	image         *ebiten.Image
	width, height int

	brush    *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func newCanvasSurface() *canvasSurface {
	return &canvasSurface{width: 1, height: 1}
}

func (s *canvasSurface) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w == s.width && h == s.height {
		return
	}
	s.width, s.height = w, h
	if s.image != nil {
		s.image.Deallocate()
		s.image = nil
	}
}

func (s *canvasSurface) target() *ebiten.Image {
	if s.image == nil {
		s.image = ebiten.NewImage(s.width, s.height)
	}
	return s.image
}

func (s *canvasSurface) Clear() {
	s.target().Clear()
}

// StrokePath strokes a polyline with round joins.
func (s *canvasSurface) StrokePath(points []wave.Point, st wave.Stroke) {
	if len(points) < 2 {
		return
	}

	var path vector.Path
	path.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}

	s.vertices, s.indices = path.AppendVerticesAndIndicesForStroke(s.vertices[:0], s.indices[:0], &vector.StrokeOptions{
		Width:    st.Width,
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	})

	r := float32(st.Color.R) / 0xff
	g := float32(st.Color.G) / 0xff
	b := float32(st.Color.B) / 0xff
	a := float32(st.Color.A) / 0xff
	for i := range s.vertices {
		s.vertices[i].SrcX = 1
		s.vertices[i].SrcY = 1
		s.vertices[i].ColorR = r
		s.vertices[i].ColorG = g
		s.vertices[i].ColorB = b
		s.vertices[i].ColorA = a
	}

	// NonZero keeps overlapping join triangles from blending twice
	s.target().DrawTriangles(s.vertices, s.indices, s.whiteBrush(), &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
		FillRule:  ebiten.FillRuleNonZero,
	})
}

func (s *canvasSurface) whiteBrush() *ebiten.Image {
	if s.brush == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		s.brush = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return s.brush
}

// capture reads the canvas back and flattens it over bg.
func (s *canvasSurface) capture(bg color.Color) *image.RGBA {
	img := s.target()
	pix := image.NewRGBA(img.Bounds())
	img.ReadPixels(pix.Pix)
	return capture.Composite(bg, pix)
}
