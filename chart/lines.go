package chart

import (
	"math"

	"github.com/anthonynsimon/bild/blur"

	"github.com/slidekit/visioncv/imaging"
)

// Axis detection parameters.
const (
	cannyLow  = 50.0
	cannyHigh = 150.0

	// An axis candidate must cover at least this fraction of the image
	// span in its direction.
	axisMinCoverage = 0.4

	// Hough angular tolerance around horizontal/vertical, in degrees.
	axisAngleSlack = 2

	// Fallback axis margin when Hough finds nothing.
	axisFallbackMargin = 0.08
)

// Plot-area binarization and tracking parameters.
const (
	adaptiveWindow = 15
	adaptiveBias   = 10.0 // on the 0-255 ink scale

	// Tracks shorter than ROI width / minTrackDivisor are discarded.
	minTrackDivisor = 8

	maxSeries = 5
)

// Point is a pixel coordinate in full-image space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NormPoint is a plot-area coordinate normalized to [0,1] with Y flipped,
// so larger Y means higher on the chart.
type NormPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Axes reports the detected chart axes.
type Axes struct {
	// XAxisY is the image row of the x-axis (lowest long horizontal line).
	XAxisY int `json:"x_axis_y"`
	// YAxisX is the image column of the y-axis (leftmost long vertical line).
	YAxisX int `json:"y_axis_x"`
	// FromHough is false when the percentage-margin fallback was used.
	FromHough bool `json:"from_hough"`
}

// Series is one recovered data track, left to right.
type Series struct {
	Points     []Point     `json:"points"`
	Normalized []NormPoint `json:"normalized"`
	Length     int         `json:"length"`
}

// LineOptions tunes line-graph digitization. The zero value selects the
// defaults noted on each field.
type LineOptions struct {
	// MaxDY is the largest per-column vertical jump a track may take.
	// Default ROI height / 20, minimum 3.
	MaxDY int

	// HueWeight scales the hue term of the track-continuation cost.
	// Default 0.5.
	HueWeight float64
}

// LinesResult reports the recovered series, top-to-bottom by first point.
// Found is false when no track is long enough; that is a normal result.
type LinesResult struct {
	Found  bool     `json:"found"`
	Axes   Axes     `json:"axes"`
	Series []Series `json:"series"`
	Count  int      `json:"count"`
}

// DigitizeLines recovers data series from a line-graph image.
//
// Axes are located with a Hough transform restricted to near-horizontal
// and near-vertical angles over a Canny edge map of the Gaussian-blurred
// image; the x-axis is the lowest long horizontal line and the y-axis the
// leftmost long vertical one, with an 8% margin fallback when neither is
// found. The axis-bounded plot area is adaptively binarized, closed,
// opened and eroded to an approximate skeleton. Per-column foreground run
// centers are then chained into tracks by nearest-y continuation within
// MaxDY, with a hue-weighted cost so crossing series of different colors
// stay separate. Matching is greedy: tracks are tried in creation order
// and the first acceptable candidate wins, matching the behavior this
// digitizer is calibrated against.
func DigitizeLines(img *imaging.Image, opts LineOptions) *LinesResult {
	smoothed := imaging.FromImage(blur.Gaussian(img.ToNRGBA(), 1.5))
	edges := imaging.EdgeMap(smoothed.LumaBT601(), cannyLow, cannyHigh)

	axes := findAxes(edges)

	roiX0 := axes.YAxisX
	roiY1 := axes.XAxisY
	roiW := img.Width - roiX0
	roiH := roiY1
	if roiW < minTrackDivisor || roiH < 4 {
		return &LinesResult{Found: false, Axes: axes, Series: []Series{}}
	}

	mask := binarizePlot(img, roiX0, roiY1)
	mask = morphClose(mask)
	mask = morphOpen(mask)
	mask = erode(mask)

	tracks := followTracks(img, mask, roiX0, roiY1, opts)

	minLen := roiW / minTrackDivisor
	kept := tracks[:0]
	for _, t := range tracks {
		if len(t.points) >= minLen {
			kept = append(kept, t)
		}
	}

	// Longest five, then top-to-bottom by first point.
	sortTracks(kept)
	if len(kept) > maxSeries {
		kept = kept[:maxSeries]
	}
	sortByFirstY(kept)

	series := make([]Series, 0, len(kept))
	for _, t := range kept {
		s := Series{
			Points:     t.points,
			Normalized: make([]NormPoint, len(t.points)),
			Length:     len(t.points),
		}
		for i, p := range t.points {
			s.Normalized[i] = NormPoint{
				X: float64(p.X-roiX0) / float64(roiW),
				Y: 1 - float64(p.Y)/float64(roiH),
			}
		}
		series = append(series, s)
	}

	return &LinesResult{
		Found:  len(series) > 0,
		Axes:   axes,
		Series: series,
		Count:  len(series),
	}
}

// findAxes runs a Hough transform restricted to near-horizontal and
// near-vertical angles. In (rho, theta) space, theta near 90 degrees
// collects horizontal lines (rho is the row) and theta near 0 collects
// vertical lines (rho is the column).
func findAxes(edges *imaging.Grid) Axes {
	width, height := edges.Cols, edges.Rows

	horizVotes := make([]int, height)
	vertVotes := make([]int, width)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if edges.At(x, y) == 0 {
				continue
			}
			for dt := -axisAngleSlack; dt <= axisAngleSlack; dt++ {
				// theta ~ 90: rho = x cos + y sin ~ y
				a := float64(90+dt) * math.Pi / 180
				rho := int(math.Round(float64(x)*math.Cos(a) + float64(y)*math.Sin(a)))
				if rho >= 0 && rho < height {
					horizVotes[rho]++
				}
				// theta ~ 0: rho ~ x
				a = float64(dt) * math.Pi / 180
				rho = int(math.Round(float64(x)*math.Cos(a) + float64(y)*math.Sin(a)))
				if rho >= 0 && rho < width {
					vertVotes[rho]++
				}
			}
		}
	}

	// A line of length L lands ~L votes in its dt=0 bin; the off-angle
	// votes spread to neighboring bins, so the threshold is per span.
	minHoriz := int(axisMinCoverage * float64(width))
	minVert := int(axisMinCoverage * float64(height))

	// Off-angle votes smear into the bins next to a line, so several
	// adjacent bins can clear the threshold. Walk the contiguous
	// above-threshold run and take its peak as the line position.
	xAxisY := -1
	for y := height - 1; y >= 0; y-- { // lowest long horizontal line
		if horizVotes[y] < minHoriz {
			continue
		}
		best := y
		for y >= 0 && horizVotes[y] >= minHoriz {
			if horizVotes[y] > horizVotes[best] {
				best = y
			}
			y--
		}
		xAxisY = best
		break
	}
	yAxisX := -1
	for x := 0; x < width; x++ { // leftmost long vertical line
		if vertVotes[x] < minVert {
			continue
		}
		best := x
		for x < width && vertVotes[x] >= minVert {
			if vertVotes[x] > vertVotes[best] {
				best = x
			}
			x++
		}
		yAxisX = best
		break
	}

	fromHough := xAxisY >= 0 && yAxisX >= 0
	if xAxisY < 0 {
		xAxisY = height - int(axisFallbackMargin*float64(height)) - 1
	}
	if yAxisX < 0 {
		yAxisX = int(axisFallbackMargin * float64(width))
	}

	return Axes{XAxisY: xAxisY, YAxisX: yAxisX, FromHough: fromHough}
}

// binarizePlot adaptively thresholds the plot area: a pixel is foreground
// when its ink level exceeds the local window mean by a fixed bias. The
// returned mask covers the full image but is zero outside the ROI.
func binarizePlot(img *imaging.Image, roiX0, roiY1 int) *imaging.Grid {
	luma := img.LumaBT601()
	ink := imaging.NewGrid(luma.Cols, luma.Rows)
	for i, v := range luma.Data {
		ink.Data[i] = 255 - v
	}
	local := imaging.BoxSmooth(ink, adaptiveWindow)

	mask := imaging.NewGrid(luma.Cols, luma.Rows)
	for y := 0; y < roiY1; y++ {
		for x := roiX0; x < luma.Cols; x++ {
			if ink.At(x, y) > local.At(x, y)+adaptiveBias {
				mask.Set(x, y, 1)
			}
		}
	}
	return mask
}

// 3x3 binary morphology on 0/1 grids.

func dilate(mask *imaging.Grid) *imaging.Grid {
	out := imaging.NewGrid(mask.Cols, mask.Rows)
	for y := 0; y < mask.Rows; y++ {
		for x := 0; x < mask.Cols; x++ {
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					px, py := x+kx, y+ky
					if px >= 0 && px < mask.Cols && py >= 0 && py < mask.Rows && mask.At(px, py) > 0 {
						out.Set(x, y, 1)
					}
				}
			}
		}
	}
	return out
}

func erode(mask *imaging.Grid) *imaging.Grid {
	out := imaging.NewGrid(mask.Cols, mask.Rows)
	for y := 0; y < mask.Rows; y++ {
		for x := 0; x < mask.Cols; x++ {
			all := true
			for ky := -1; ky <= 1 && all; ky++ {
				for kx := -1; kx <= 1 && all; kx++ {
					px, py := x+kx, y+ky
					if px < 0 || px >= mask.Cols || py < 0 || py >= mask.Rows || mask.At(px, py) == 0 {
						all = false
					}
				}
			}
			if all {
				out.Set(x, y, 1)
			}
		}
	}
	return out
}

func morphClose(mask *imaging.Grid) *imaging.Grid { return erode(dilate(mask)) }
func morphOpen(mask *imaging.Grid) *imaging.Grid  { return dilate(erode(mask)) }
