package chart

import (
	"math"
	"sort"

	"github.com/slidekit/visioncv/imaging"
)

// track accumulates one series during column scanning. The hue estimate is
// a running blend used only while matching; it is discarded once tracking
// finishes.
type track struct {
	points []Point
	lastY  int
	hue    float64
}

// hueBlend is the weight of the newest sample in the running hue estimate.
const hueBlend = 0.3

// followTracks chains per-column foreground run centers into tracks.
//
// Columns are scanned left to right. Within a column, candidates are taken
// top to bottom; each claims the cheapest not-yet-claimed track whose last
// point is within maxDy rows, where cost is the vertical jump plus a
// hue-distance term. Unclaimed candidates start new tracks. The
// first-match-wins claim order makes the result deterministic.
func followTracks(img *imaging.Image, mask *imaging.Grid, roiX0, roiY1 int, opts LineOptions) []*track {
	maxDy := opts.MaxDY
	if maxDy <= 0 {
		maxDy = roiY1 / 20
	}
	if maxDy < 3 {
		maxDy = 3
	}
	hueWeight := opts.HueWeight
	if hueWeight <= 0 {
		hueWeight = 0.5
	}

	var tracks []*track

	for x := roiX0; x < mask.Cols; x++ {
		candidates := columnRunCenters(mask, x)
		claimed := make(map[*track]bool)

		for _, y := range candidates {
			r, g, b := img.RGBAt(x, y)
			hue := imaging.Hue(r, g, b)

			var best *track
			bestCost := math.MaxFloat64
			for _, t := range tracks {
				if claimed[t] {
					continue
				}
				dy := y - t.lastY
				if dy < 0 {
					dy = -dy
				}
				if dy > maxDy {
					continue
				}
				cost := float64(dy) + hueWeight*imaging.HueDistance(hue, t.hue)/180*float64(maxDy)
				if cost < bestCost {
					bestCost = cost
					best = t
				}
			}

			if best != nil {
				claimed[best] = true
				best.points = append(best.points, Point{X: x, Y: y})
				best.lastY = y
				best.hue = (1-hueBlend)*best.hue + hueBlend*hue
			} else {
				t := &track{points: []Point{{X: x, Y: y}}, lastY: y, hue: hue}
				tracks = append(tracks, t)
				claimed[t] = true
			}
		}
	}
	return tracks
}

// columnRunCenters returns the center row of each contiguous foreground
// run in column x, top to bottom.
func columnRunCenters(mask *imaging.Grid, x int) []int {
	var centers []int
	start := -1
	for y := 0; y <= mask.Rows; y++ {
		on := y < mask.Rows && mask.At(x, y) > 0
		if on && start < 0 {
			start = y
		}
		if !on && start >= 0 {
			centers = append(centers, (start+y-1)/2)
			start = -1
		}
	}
	return centers
}

func sortTracks(tracks []*track) {
	sort.Slice(tracks, func(i, j int) bool {
		return len(tracks[i].points) > len(tracks[j].points)
	})
}

func sortByFirstY(tracks []*track) {
	sort.Slice(tracks, func(i, j int) bool {
		return tracks[i].points[0].Y < tracks[j].points[0].Y
	})
}
