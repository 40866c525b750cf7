package palette

import (
	"fmt"
	"math"

	"github.com/slidekit/visioncv/imaging"
)

// defaultTolerance is the maximum Euclidean RGB distance at which a brand
// color is considered present in the palette.
const defaultTolerance = 60.0

// BrandMatch pairs a brand color with its nearest palette swatch.
type BrandMatch struct {
	BrandHex   string  `json:"brand_hex"`
	MatchedHex string  `json:"matched_hex"`
	Distance   float64 `json:"distance"`
	Fraction   float64 `json:"fraction"`
}

// BrandResult reports how well an image's palette covers a brand color set.
type BrandResult struct {
	// Coverage is the summed fraction of palette swatches matched by at
	// least one brand color.
	Coverage float64 `json:"coverage"`

	// Matches lists each brand color with its nearest in-tolerance swatch.
	Matches []BrandMatch `json:"matches"`

	// Missing lists brand colors with no swatch within tolerance.
	Missing []string `json:"missing"`

	// Extras lists palette swatches unmatched by any brand color.
	Extras []Swatch `json:"extras"`
}

// ValidateBrand extracts the image palette and checks each brand hex color
// against it by nearest squared-RGB distance.
//
// tolerance <= 0 selects the default of 60; paletteSize <= 0 selects 8.
// Returns an error wrapping imaging.ErrInvalidInput for malformed hex
// strings or an empty brand list.
func ValidateBrand(img *imaging.Image, brandHexes []string, tolerance float64, paletteSize int) (*BrandResult, error) {
	if len(brandHexes) == 0 {
		return nil, fmt.Errorf("%w: no brand colors given", imaging.ErrInvalidInput)
	}
	if tolerance <= 0 {
		tolerance = defaultTolerance
	}
	if paletteSize <= 0 {
		paletteSize = 8
	}

	pal, err := Dominant(img, paletteSize)
	if err != nil {
		return nil, err
	}

	matchedSwatch := make([]bool, len(pal.Swatches))
	matches := make([]BrandMatch, 0, len(brandHexes))
	missing := make([]string, 0)
	coverage := 0.0

	for _, brand := range brandHexes {
		br, bg, bb, err := imaging.ParseHexColor(brand)
		if err != nil {
			return nil, err
		}

		bestIdx := -1
		bestSq := math.MaxFloat64
		for i, sw := range pal.Swatches {
			dr := float64(sw.RGB.R) - float64(br)
			dg := float64(sw.RGB.G) - float64(bg)
			db := float64(sw.RGB.B) - float64(bb)
			sq := dr*dr + dg*dg + db*db
			if sq < bestSq {
				bestSq = sq
				bestIdx = i
			}
		}

		dist := math.Sqrt(bestSq)
		if bestIdx >= 0 && dist <= tolerance {
			sw := pal.Swatches[bestIdx]
			matches = append(matches, BrandMatch{
				BrandHex:   brand,
				MatchedHex: sw.Hex,
				Distance:   math.Round(dist*100) / 100,
				Fraction:   sw.Fraction,
			})
			if !matchedSwatch[bestIdx] {
				matchedSwatch[bestIdx] = true
				coverage += sw.Fraction
			}
		} else {
			missing = append(missing, brand)
		}
	}

	extras := make([]Swatch, 0)
	for i, sw := range pal.Swatches {
		if !matchedSwatch[i] {
			extras = append(extras, sw)
		}
	}

	return &BrandResult{
		Coverage: math.Round(coverage*10000) / 10000,
		Matches:  matches,
		Missing:  missing,
		Extras:   extras,
	}, nil
}
