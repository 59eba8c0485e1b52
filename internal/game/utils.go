package game

import (
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/floating-lines/internal/capture"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func saveSnapshotDialog(img image.Image) error {
	filename, err := zenity.SelectFileSave(
		zenity.Title("Save Snapshot"),
		zenity.Filename("floating-lines.png"),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}

	path, err := capture.WritePNG(filename, img)
	if err != nil {
		return err
	}
	log.Printf("[Snapshot] saved %s", path)
	return nil
}
