// Package logodetect locates a reference logo inside a target image using
// ORB features and a RANSAC homography.
//
// The matcher is an optional native capability: it requires OpenCV and is
// compiled in only under the "cv" build tag. Without the tag, Detect
// returns an error wrapping imaging.ErrBackendUnavailable and Available
// reports false, so callers can surface "capability not supported" rather
// than a fault. A run that completes but finds too few matches is a normal
// Found=false result, never an error.
package logodetect

// Matching thresholds.
const (
	// maxHammingDistance is the largest descriptor distance kept as a
	// good match.
	maxHammingDistance = 64

	// minGoodMatches is the minimum number of good matches required
	// before attempting a homography.
	minGoodMatches = 8

	// ransacReprojThreshold is the RANSAC reprojection error ceiling in
	// pixels.
	ransacReprojThreshold = 5.0
)

// Point is a pixel coordinate in the target image.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Result reports the outcome of a logo search.
type Result struct {
	// Found is false when matching or the homography failed to produce a
	// confident localization.
	Found bool `json:"logo_found"`

	// MatchCount is the number of good (distance-filtered) matches.
	MatchCount int `json:"match_count"`

	// MatchQualityScore is the RANSAC inlier count, 0 when not found.
	MatchQualityScore int `json:"match_quality_score"`

	// Corners are the reference image corners projected into the target,
	// in order top-left, top-right, bottom-right, bottom-left. Empty when
	// not found.
	Corners []Point `json:"corners,omitempty"`

	// BoundingBox is the axis-aligned box around Corners. Zero when not
	// found.
	BoundingBox BoundingBox `json:"bounding_box"`
}

// BoundingBox is an axis-aligned rectangle in target pixel coordinates.
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func boxAround(corners []Point) BoundingBox {
	minX, minY := corners[0].X, corners[0].Y
	maxX, maxY := minX, minY
	for _, c := range corners[1:] {
		if c.X < minX {
			minX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
		if c.X > maxX {
			maxX = c.X
		}
		if c.Y > maxY {
			maxY = c.Y
		}
	}
	return BoundingBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
