package chart

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/slidekit/visioncv/imaging"
)

// Column runs narrower than this are noise, not bars.
const minBarWidth = 2

// Bar is one detected bar.
type Bar struct {
	XStart   int     `json:"x_start"`
	XEnd     int     `json:"x_end"`
	HeightPx int     `json:"height_px"`
	// Value is the bar height relative to the tallest detected bar (0..1).
	Value float64 `json:"value"`
}

// BarsResult lists detected bars left to right. Found is false when no
// column run clears the projection threshold; that is a normal result, not
// an error.
type BarsResult struct {
	Found bool  `json:"found"`
	Bars  []Bar `json:"bars"`
	Count int   `json:"count"`
}

// DigitizeBars extracts bar positions and relative heights from a bar
// chart image.
//
// The BT.601 luma plane is inverted and normalized so ink is bright. Bars
// are contiguous column runs whose mean ink exceeds the 65th percentile of
// the column projection. Each bar's height is measured by scanning rows
// from the image bottom while the bar's mean row ink stays at or above that
// bar's own 60th-percentile threshold.
func DigitizeBars(img *imaging.Image) *BarsResult {
	ink := inkField(img)

	// Column projection.
	proj := make([]float64, img.Width)
	for x := 0; x < img.Width; x++ {
		var sum float64
		for y := 0; y < img.Height; y++ {
			sum += ink.At(x, y)
		}
		proj[x] = sum / float64(img.Height)
	}

	threshold := percentile(proj, 65)

	type run struct{ start, end int }
	var runs []run
	start := -1
	for x := 0; x <= img.Width; x++ {
		on := x < img.Width && proj[x] > threshold
		if on && start < 0 {
			start = x
		}
		if !on && start >= 0 {
			if x-start >= minBarWidth {
				runs = append(runs, run{start, x - 1})
			}
			start = -1
		}
	}

	bars := make([]Bar, 0, len(runs))
	maxHeight := 0
	for _, r := range runs {
		h := barHeight(ink, r.start, r.end)
		bars = append(bars, Bar{XStart: r.start, XEnd: r.end, HeightPx: h})
		if h > maxHeight {
			maxHeight = h
		}
	}
	for i := range bars {
		if maxHeight > 0 {
			bars[i].Value = math.Round(float64(bars[i].HeightPx)/float64(maxHeight)*10000) / 10000
		}
	}

	return &BarsResult{Found: len(bars) > 0, Bars: bars, Count: len(bars)}
}

// inkField is 1 - luma/255: dark pixels (ink) score high.
func inkField(img *imaging.Image) *imaging.Grid {
	luma := img.LumaBT601()
	ink := imaging.NewGrid(luma.Cols, luma.Rows)
	for i, v := range luma.Data {
		ink.Data[i] = 1 - v/255.0
	}
	return ink
}

// barHeight scans rows bottom-up inside [x0, x1] while the mean row ink
// stays at or above the bar's 60th-percentile row threshold.
func barHeight(ink *imaging.Grid, x0, x1 int) int {
	rows := make([]float64, ink.Rows)
	for y := 0; y < ink.Rows; y++ {
		var sum float64
		for x := x0; x <= x1; x++ {
			sum += ink.At(x, y)
		}
		rows[y] = sum / float64(x1-x0+1)
	}

	threshold := percentile(rows, 60)

	height := 0
	for y := ink.Rows - 1; y >= 0; y-- {
		if rows[y] < threshold {
			break
		}
		height++
	}
	return height
}

// percentile returns the p-th percentile (0-100) of vals.
func percentile(vals []float64, p float64) float64 {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	return stat.Quantile(p/100, stat.Empirical, sorted, nil)
}
