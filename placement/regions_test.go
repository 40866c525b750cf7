package placement

import (
	"math/rand"
	"testing"

	"github.com/slidekit/visioncv/imaging"
)

// halfBusyImage is flat on the right and noisy on the left, so empty
// regions should concentrate on the right half.
func halfBusyImage(width, height int) *imaging.Image {
	rng := rand.New(rand.NewSource(7))
	img := &imaging.Image{Width: width, Height: height, Pix: make([]uint8, width*height*3)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(220)
			if x < width/2 {
				v = uint8(rng.Intn(256))
			}
			i := (y*width + x) * 3
			img.Pix[i], img.Pix[i+1], img.Pix[i+2] = v, v, v
		}
	}
	return img
}

func TestRectArea(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	if r.Area() != 1200 {
		t.Errorf("Area = %d, want 1200", r.Area())
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	cases := []struct {
		b    Rect
		want bool
	}{
		{Rect{X: 5, Y: 5, Width: 10, Height: 10}, true},
		{Rect{X: 10, Y: 0, Width: 5, Height: 5}, false}, // touching edges do not overlap
		{Rect{X: 20, Y: 20, Width: 5, Height: 5}, false},
		{Rect{X: 2, Y: 2, Width: 2, Height: 2}, true}, // contained
	}
	for _, tc := range cases {
		if got := a.Intersects(tc.b); got != tc.want {
			t.Errorf("Intersects(%+v) = %v, want %v", tc.b, got, tc.want)
		}
	}
}

func TestEmptyRegionsInvariants(t *testing.T) {
	img := halfBusyImage(320, 180)
	result := EmptyRegions(img, RegionOptions{})

	if result.Count != len(result.Regions) {
		t.Errorf("Count = %d, regions = %d", result.Count, len(result.Regions))
	}
	if result.Count == 0 {
		t.Fatal("expected at least one empty region on a half-flat image")
	}
	if result.Count > 20 {
		t.Errorf("Count = %d, want at most 20", result.Count)
	}

	minArea := int(float64(img.Width*img.Height) / 50)
	for i, region := range result.Regions {
		r := region.Rect
		if r.X < 0 || r.Y < 0 || r.Width <= 0 || r.Height <= 0 {
			t.Errorf("region %d has invalid geometry %+v", i, r)
		}
		if r.X+r.Width > img.Width || r.Y+r.Height > img.Height {
			t.Errorf("region %d exceeds image bounds: %+v", i, r)
		}
		if region.Area != r.Area() {
			t.Errorf("region %d Area = %d, rect area = %d", i, region.Area, r.Area())
		}
		if region.Area < minArea {
			t.Errorf("region %d area %d below default minimum %d", i, region.Area, minArea)
		}
		if i > 0 && result.Regions[i-1].Area < region.Area {
			t.Errorf("regions not sorted by area: %d before %d", result.Regions[i-1].Area, region.Area)
		}
	}
}

func TestEmptyRegionsLargestIsOnFlatSide(t *testing.T) {
	img := halfBusyImage(320, 180)
	result := EmptyRegions(img, RegionOptions{})
	if result.Count == 0 {
		t.Fatal("expected empty regions")
	}

	best := result.Regions[0].Rect
	cx := best.X + best.Width/2
	if cx < img.Width/2 {
		t.Errorf("largest empty region centered at x=%d, expected the flat right half", cx)
	}
}

func TestEmptyRegionsMinAreaFilter(t *testing.T) {
	img := halfBusyImage(320, 180)
	// A huge minimum should filter out everything but near-full-frame rects.
	result := EmptyRegions(img, RegionOptions{MinAreaFraction: 0.9})
	for i, region := range result.Regions {
		if float64(region.Area) < 0.9*float64(img.Width*img.Height) {
			t.Errorf("region %d area %d violates the 0.9 area fraction floor", i, region.Area)
		}
	}
}

func TestMaximalRectanglesSimpleMask(t *testing.T) {
	// 4x4 mask with an all-empty 2x4 bottom band.
	mask := imaging.NewGrid(4, 4)
	for y := 2; y < 4; y++ {
		for x := 0; x < 4; x++ {
			mask.Set(x, y, 1)
		}
	}

	rects := maximalRectangles(mask)
	found := false
	for _, r := range rects {
		if r.X == 0 && r.Y == 2 && r.Width == 4 && r.Height == 2 {
			found = true
		}
		if r.Width <= 0 || r.Height <= 0 {
			t.Errorf("degenerate rect %+v", r)
		}
	}
	if !found {
		t.Errorf("expected the full 4x2 band among %v", rects)
	}
}
