// Package capture turns canvas pixels into PNG snapshots.
package capture

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// Composite flattens the premultiplied canvas src over an opaque background.
func Composite(bg color.Color, src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, &image.Uniform{C: bg}, image.Point{}, draw.Src)
	draw.Draw(out, b, src, b.Min, draw.Over)
	return out
}

// WritePNG encodes img to path, appending ".png" when the name has no
// extension.
func WritePNG(path string, img image.Image) (string, error) {
	if filepath.Ext(path) == "" {
		path += ".png"
	} else if !strings.EqualFold(filepath.Ext(path), ".png") {
		return "", fmt.Errorf("snapshot %s: only .png is supported", filepath.Base(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create snapshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close snapshot: %w", err)
	}
	return path, nil
}
