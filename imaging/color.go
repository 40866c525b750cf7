package imaging

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ParseHexColor parses "#RRGGBB" (or "RRGGBB", or short "#RGB") into 8-bit
// components. Returns an error wrapping ErrInvalidInput on malformed input.
func ParseHexColor(hex string) (r, g, b uint8, err error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	// colorful.Hex scans leniently, so the digit-count check happens here.
	if len(s) != 3 && len(s) != 6 || !isHex(s) {
		return 0, 0, 0, fmt.Errorf("%w: bad hex color %q", ErrInvalidInput, hex)
	}
	c, err := colorful.Hex("#" + s)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: bad hex color %q: %v", ErrInvalidInput, hex, err)
	}
	r8, g8, b8 := c.RGB255()
	return r8, g8, b8, nil
}

func isHex(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// HexFromRGB formats 8-bit components as "#RRGGBB".
func HexFromRGB(r, g, b uint8) string {
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// Hue returns the HSL hue (0-360 degrees) of an RGB color. Achromatic
// colors report hue 0.
func Hue(r, g, b uint8) float64 {
	rf := float64(r) / 255.0
	gf := float64(g) / 255.0
	bf := float64(b) / 255.0

	max := rf
	if gf > max {
		max = gf
	}
	if bf > max {
		max = bf
	}
	min := rf
	if gf < min {
		min = gf
	}
	if bf < min {
		min = bf
	}
	if max == min {
		return 0
	}

	var h float64
	switch max {
	case rf:
		h = (gf - bf) / (max - min)
		if gf < bf {
			h += 6
		}
	case gf:
		h = 2.0 + (bf-rf)/(max-min)
	case bf:
		h = 4.0 + (rf-gf)/(max-min)
	}
	return h * 60
}

// HueDistance returns the angular distance between two hues in degrees,
// wrapping around the color wheel (range 0-180).
func HueDistance(a, b float64) float64 {
	d := a - b
	if d < 0 {
		d = -d
	}
	if d > 180 {
		d = 360 - d
	}
	return d
}
