package metrics

import (
	"math"

	"github.com/slidekit/visioncv/imaging"
)

// WCAGResult reports the WCAG 2.x contrast ratio between a foreground and
// background color and the pass/fail outcomes at each conformance level.
type WCAGResult struct {
	Ratio float64 `json:"ratio"`

	// LargeText is true when the supplied font size is at least 24px,
	// which relaxes the AA/AAA thresholds.
	LargeText bool `json:"large_text"`

	PassesAA  bool `json:"passes_aa"`
	PassesAAA bool `json:"passes_aaa"`
}

// largeTextPx is the font size at which WCAG treats text as "large".
const largeTextPx = 24.0

// ContrastRatio computes the WCAG contrast ratio between two hex colors.
//
// Each sRGB channel is linearized (c/12.92 for c <= 0.04045, otherwise
// ((c+0.055)/1.055)^2.4), relative luminance is the Rec.709-weighted sum of
// the linear channels, and the ratio is (Lmax+0.05)/(Lmin+0.05). Thresholds
// are 4.5/3.0 for AA normal/large text and 7.0/4.5 for AAA.
//
// Returns an error wrapping imaging.ErrInvalidInput for malformed colors or
// a non-positive font size.
func ContrastRatio(fgHex, bgHex string, fontSizePx float64) (*WCAGResult, error) {
	if fontSizePx <= 0 {
		return nil, imaging.ErrInvalidInput
	}
	fl, err := relativeLuminance(fgHex)
	if err != nil {
		return nil, err
	}
	bl, err := relativeLuminance(bgHex)
	if err != nil {
		return nil, err
	}

	hi, lo := fl, bl
	if lo > hi {
		hi, lo = lo, hi
	}
	ratio := (hi + 0.05) / (lo + 0.05)

	large := fontSizePx >= largeTextPx
	aa, aaa := 4.5, 7.0
	if large {
		aa, aaa = 3.0, 4.5
	}

	return &WCAGResult{
		Ratio:     math.Round(ratio*100) / 100,
		LargeText: large,
		PassesAA:  ratio >= aa,
		PassesAAA: ratio >= aaa,
	}, nil
}

func relativeLuminance(hex string) (float64, error) {
	r, g, b, err := imaging.ParseHexColor(hex)
	if err != nil {
		return 0, err
	}
	return 0.2126*linearize(r) + 0.7152*linearize(g) + 0.0722*linearize(b), nil
}

func linearize(c uint8) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}
