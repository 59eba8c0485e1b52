package capture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestComposite(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	// opaque red, and half-transparent white (premultiplied)
	src.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	src.SetRGBA(1, 0, color.RGBA{R: 128, G: 128, B: 128, A: 128})

	out := Composite(color.RGBA{A: 255}, src)

	if got := out.RGBAAt(0, 0); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("opaque pixel = %v", got)
	}
	got := out.RGBAAt(1, 0)
	if got.A != 255 || got.R != 128 || got.G != 128 || got.B != 128 {
		t.Errorf("translucent pixel over black = %v, want grey 128", got)
	}
	if src.RGBAAt(1, 0).A != 128 {
		t.Error("Composite modified its source")
	}
}

func TestWritePNG(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.SetRGBA(2, 1, color.RGBA{G: 200, A: 255})

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"explicit extension", "shot.png", "shot.png", false},
		{"upper-case extension", "shot2.PNG", "shot2.PNG", false},
		{"no extension", "shot3", "shot3.png", false},
		{"wrong extension", "shot.jpg", "", true},
		{"missing directory", filepath.Join("nope", "shot.png"), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WritePNG(filepath.Join(dir, tt.path), img)
			if (err != nil) != tt.wantErr {
				t.Fatalf("WritePNG() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got != filepath.Join(dir, tt.want) {
				t.Errorf("path = %q, want %q", got, filepath.Join(dir, tt.want))
			}

			f, err := os.Open(got)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			decoded, err := png.Decode(f)
			if err != nil {
				t.Fatalf("png.Decode() = %v", err)
			}
			if decoded.Bounds() != img.Bounds() {
				t.Errorf("bounds = %v, want %v", decoded.Bounds(), img.Bounds())
			}
			r, g, b, a := decoded.At(2, 1).RGBA()
			if r != 0 || g>>8 != 200 || b != 0 || a>>8 != 255 {
				t.Errorf("pixel (2,1) = %d %d %d %d", r, g, b, a)
			}
		})
	}
}
