package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseColor accepts "#rrggbb", "#rrggbbaa", "rgb(r, g, b)" and
// "rgba(r, g, b, a)" with a in [0, 1].
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[len("rgba("):len(s)-1], 4)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[len("rgb("):len(s)-1], 3)
	}
	return color.NRGBA{}, fmt.Errorf("unrecognized color %q", s)
}

func parseHex(h string) (color.NRGBA, error) {
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("hex color %q must have 6 or 8 digits", h)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("hex color %q: %w", h, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func parseFunc(args string, n int) (color.NRGBA, error) {
	parts := strings.Split(args, ",")
	if len(parts) != n {
		return color.NRGBA{}, fmt.Errorf("color needs %d components, got %d", n, len(parts))
	}

	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return color.NRGBA{}, fmt.Errorf("color component %q out of range [0, 255]", strings.TrimSpace(parts[i]))
		}
		rgb[i] = uint8(v)
	}

	alpha := 1.0
	if n == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || !(a >= 0 && a <= 1) {
			return color.NRGBA{}, fmt.Errorf("alpha %q out of range [0, 1]", strings.TrimSpace(parts[3]))
		}
		alpha = a
	}

	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: uint8(alpha*255 + 0.5)}, nil
}
