package logodetect

import (
	"errors"
	"testing"

	"github.com/slidekit/visioncv/imaging"
)

func grayImage(width, height int, v uint8) *imaging.Image {
	img := &imaging.Image{Width: width, Height: height, Pix: make([]uint8, width*height*3)}
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func TestDetectWithoutBackend(t *testing.T) {
	if Available() {
		t.Skip("OpenCV backend compiled in")
	}

	_, err := Detect(grayImage(32, 32, 128), grayImage(64, 64, 128))
	if err == nil {
		t.Fatal("expected an error without the OpenCV backend")
	}
	if !errors.Is(err, imaging.ErrBackendUnavailable) {
		t.Errorf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestBoxAround(t *testing.T) {
	corners := []Point{
		{X: 10, Y: 40},
		{X: 50, Y: 20},
		{X: 45, Y: 70},
		{X: 5, Y: 60},
	}
	box := boxAround(corners)
	want := BoundingBox{X: 5, Y: 20, Width: 45, Height: 50}
	if box != want {
		t.Errorf("boxAround = %+v, want %+v", box, want)
	}
}

func TestBoxAroundSinglePoint(t *testing.T) {
	box := boxAround([]Point{{X: 7, Y: 9}})
	want := BoundingBox{X: 7, Y: 9, Width: 0, Height: 0}
	if box != want {
		t.Errorf("boxAround = %+v, want %+v", box, want)
	}
}
