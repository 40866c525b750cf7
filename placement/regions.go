package placement

import (
	"sort"

	"github.com/slidekit/visioncv/imaging"
)

// Edge energy is evaluated on a coarse grid; 64x36 matches a 16:9 slide.
const (
	gridCols = 64
	gridRows = 36
)

// Region-filter defaults.
const (
	defaultMinAreaFraction = 1.0 / 50
	defaultMaxAspect       = 12.0
	maxRegions             = 20
)

// Rect is an axis-aligned rectangle in pixel coordinates.
//
// Invariants: X, Y, Width, Height >= 0, X+Width <= image width and
// Y+Height <= image height.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Area returns Width*Height.
func (r Rect) Area() int { return r.Width * r.Height }

// Intersects reports whether two rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// EmptyRegion is a detected low-edge-energy rectangle.
type EmptyRegion struct {
	Rect Rect `json:"rect"`
	Area int  `json:"area"`
}

// RegionOptions tunes the empty-region search. The zero value selects the
// defaults noted on each field.
type RegionOptions struct {
	// MinAreaFraction drops regions smaller than this fraction of the
	// image area. Default 1/50.
	MinAreaFraction float64

	// MaxAspect drops regions with width:height (or height:width) ratios
	// above this. Default 12.
	MaxAspect float64
}

// EmptyRegionsResult lists detected empty regions, largest first.
type EmptyRegionsResult struct {
	Regions []EmptyRegion `json:"regions"`
	Count   int           `json:"count"`
}

// EmptyRegions detects maximal empty rectangles in an image.
//
// Sobel gradient magnitude is block-averaged to a 64x36 energy grid. Cells
// at or below the 50th percentile are empty; a second pass marks cells at
// or below the 55th percentile of a 3x3-smoothed copy, and the two masks
// are OR-combined to broaden empty zones. Maximal all-empty rectangles are
// found row-by-row with a monotonic stack, projected back to pixel
// coordinates, filtered by area and aspect ratio, and returned largest
// first (top 20).
func EmptyRegions(img *imaging.Image, opts RegionOptions) *EmptyRegionsResult {
	if opts.MinAreaFraction <= 0 {
		opts.MinAreaFraction = defaultMinAreaFraction
	}
	if opts.MaxAspect <= 0 {
		opts.MaxAspect = defaultMaxAspect
	}

	energy := imaging.Downsample(imaging.SobelMagnitude(img.Luma()), gridCols, gridRows)
	empty := emptyMask(energy)

	rects := maximalRectangles(empty)

	imgArea := img.Width * img.Height
	minArea := int(opts.MinAreaFraction * float64(imgArea))

	regions := make([]EmptyRegion, 0, len(rects))
	for _, gr := range rects {
		pr := scaleToPixels(gr, empty.Cols, empty.Rows, img.Width, img.Height)
		if pr.Width <= 0 || pr.Height <= 0 {
			continue
		}
		aspect := float64(pr.Width) / float64(pr.Height)
		if aspect < 1 {
			aspect = 1 / aspect
		}
		if pr.Area() < minArea || aspect > opts.MaxAspect {
			continue
		}
		regions = append(regions, EmptyRegion{Rect: pr, Area: pr.Area()})
	}

	sort.Slice(regions, func(i, j int) bool {
		return regions[i].Area > regions[j].Area
	})
	if len(regions) > maxRegions {
		regions = regions[:maxRegions]
	}

	return &EmptyRegionsResult{Regions: regions, Count: len(regions)}
}

// emptyMask builds the 0/1 empty-cell grid from an energy grid using the
// double-threshold described on EmptyRegions.
func emptyMask(energy *imaging.Grid) *imaging.Grid {
	p50 := energy.Percentile(50)
	smoothed := imaging.BoxSmooth(energy, 3)
	p55 := smoothed.Percentile(55)

	mask := imaging.NewGrid(energy.Cols, energy.Rows)
	for i := range mask.Data {
		if energy.Data[i] <= p50 || smoothed.Data[i] <= p55 {
			mask.Data[i] = 1
		}
	}
	return mask
}

// maximalRectangles enumerates maximal all-1 rectangles in a 0/1 grid via
// the largest-rectangle-in-histogram algorithm applied to each row with a
// monotonic stack. Runs in O(rows*cols); duplicates are removed.
func maximalRectangles(mask *imaging.Grid) []Rect {
	type key struct{ x, y, w, h int }
	seen := make(map[key]bool)
	var rects []Rect

	heights := make([]int, mask.Cols)
	stack := make([]int, 0, mask.Cols)

	for y := 0; y < mask.Rows; y++ {
		for x := 0; x < mask.Cols; x++ {
			if mask.At(x, y) > 0 {
				heights[x]++
			} else {
				heights[x] = 0
			}
		}

		stack = stack[:0]
		for x := 0; x <= mask.Cols; x++ {
			h := 0
			if x < mask.Cols {
				h = heights[x]
			}
			for len(stack) > 0 && heights[stack[len(stack)-1]] > h {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				height := heights[top]
				left := 0
				if len(stack) > 0 {
					left = stack[len(stack)-1] + 1
				}
				width := x - left
				if width == 0 || height == 0 {
					continue
				}
				k := key{left, y - height + 1, width, height}
				if !seen[k] {
					seen[k] = true
					rects = append(rects, Rect{X: k.x, Y: k.y, Width: k.w, Height: k.h})
				}
			}
			stack = append(stack, x)
		}
	}
	return rects
}

// scaleToPixels projects a grid-space rectangle back to pixel coordinates.
func scaleToPixels(gr Rect, gridW, gridH, imgW, imgH int) Rect {
	x0 := gr.X * imgW / gridW
	y0 := gr.Y * imgH / gridH
	x1 := (gr.X + gr.Width) * imgW / gridW
	y1 := (gr.Y + gr.Height) * imgH / gridH
	if x1 > imgW {
		x1 = imgW
	}
	if y1 > imgH {
		y1 = imgH
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
