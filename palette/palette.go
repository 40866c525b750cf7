// Package palette extracts dominant color palettes via median-cut
// quantization and validates them against brand color sets.
package palette

import (
	"fmt"
	"math"
	"sort"

	dimaging "github.com/disintegration/imaging"

	"github.com/slidekit/visioncv/imaging"
)

// Quantization works on a fixed small resample; 128x128 keeps the cut
// stable across input resolutions.
const sampleSize = 128

// maxColors caps the palette size.
const maxColors = 16

// RGB holds 8-bit color components.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Swatch is one palette entry. Fractions across a palette sum to at most 1
// (within rounding).
type Swatch struct {
	Hex      string  `json:"hex"`
	RGB      RGB     `json:"rgb"`
	Fraction float64 `json:"fraction"`
}

// Result is an extracted palette, sorted by fraction descending.
type Result struct {
	Swatches []Swatch `json:"swatches"`
	Count    int      `json:"count"`
}

// Dominant extracts the n most dominant colors of an image.
//
// The image is resampled to 128x128 and adaptively quantized with median
// cut; each returned swatch carries the fraction of sampled pixels it
// covers. n is clamped to [1, 16]. Fewer swatches may be returned when the
// image has fewer distinct colors.
func Dominant(img *imaging.Image, n int) (*Result, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: color count must be positive", imaging.ErrInvalidInput)
	}
	if n > maxColors {
		n = maxColors
	}

	small := dimaging.Resize(img.ToNRGBA(), sampleSize, sampleSize, dimaging.Lanczos)

	pixels := make([][3]uint8, 0, sampleSize*sampleSize)
	for y := 0; y < sampleSize; y++ {
		i := y * small.Stride
		for x := 0; x < sampleSize; x++ {
			pixels = append(pixels, [3]uint8{small.Pix[i], small.Pix[i+1], small.Pix[i+2]})
			i += 4
		}
	}

	buckets := medianCut(pixels, n)
	total := float64(len(pixels))

	swatches := make([]Swatch, 0, len(buckets))
	for _, b := range buckets {
		if len(b) == 0 {
			continue
		}
		r, g, bl := bucketMean(b)
		swatches = append(swatches, Swatch{
			Hex:      imaging.HexFromRGB(r, g, bl),
			RGB:      RGB{R: r, G: g, B: bl},
			Fraction: math.Round(float64(len(b))/total*10000) / 10000,
		})
	}

	sort.Slice(swatches, func(i, j int) bool {
		return swatches[i].Fraction > swatches[j].Fraction
	})

	return &Result{Swatches: swatches, Count: len(swatches)}, nil
}

// medianCut recursively splits the widest-spread bucket at its median until
// n buckets exist or no bucket can be split further.
func medianCut(pixels [][3]uint8, n int) [][][3]uint8 {
	buckets := [][][3]uint8{pixels}

	for len(buckets) < n {
		// Pick the splittable bucket with the widest channel range.
		best := -1
		bestRange := 0
		bestCh := 0
		for i, b := range buckets {
			if len(b) < 2 {
				continue
			}
			ch, span := widestChannel(b)
			if span > bestRange {
				best, bestRange, bestCh = i, span, ch
			}
		}
		if best < 0 || bestRange == 0 {
			break
		}

		b := buckets[best]
		sort.Slice(b, func(i, j int) bool { return b[i][bestCh] < b[j][bestCh] })
		mid := len(b) / 2
		buckets[best] = b[:mid]
		buckets = append(buckets, b[mid:])
	}
	return buckets
}

func widestChannel(b [][3]uint8) (ch, span int) {
	var lo, hi [3]uint8
	lo = [3]uint8{255, 255, 255}
	for _, p := range b {
		for c := 0; c < 3; c++ {
			if p[c] < lo[c] {
				lo[c] = p[c]
			}
			if p[c] > hi[c] {
				hi[c] = p[c]
			}
		}
	}
	for c := 0; c < 3; c++ {
		if d := int(hi[c]) - int(lo[c]); d > span {
			ch, span = c, d
		}
	}
	return ch, span
}

func bucketMean(b [][3]uint8) (r, g, bl uint8) {
	var sr, sg, sb int
	for _, p := range b {
		sr += int(p[0])
		sg += int(p[1])
		sb += int(p[2])
	}
	n := len(b)
	return uint8(sr / n), uint8(sg / n), uint8(sb / n)
}
