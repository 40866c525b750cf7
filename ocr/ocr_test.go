package ocr

import (
	"errors"
	"testing"

	"github.com/slidekit/visioncv/imaging"
)

// halfToneImage is black on the left half and white on the right half.
func halfToneImage(width, height int) *imaging.Image {
	img := &imaging.Image{Width: width, Height: height, Pix: make([]uint8, width*height*3)}
	for y := 0; y < height; y++ {
		for x := width / 2; x < width; x++ {
			i := (y*width + x) * 3
			img.Pix[i], img.Pix[i+1], img.Pix[i+2] = 255, 255, 255
		}
	}
	return img
}

func TestExtractWordsWithoutBackend(t *testing.T) {
	if Available() {
		t.Skip("Tesseract backend compiled in")
	}

	_, err := ExtractWords(halfToneImage(32, 32), Options{})
	if err == nil {
		t.Fatal("expected an error without the Tesseract backend")
	}
	if !errors.Is(err, imaging.ErrBackendUnavailable) {
		t.Errorf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestBinarizeGlobalMeanThreshold(t *testing.T) {
	out := binarize(halfToneImage(40, 20))

	// Mean luma is 127.5, so the black half stays 0 and the white half
	// becomes 255.
	if got := out.GrayAt(5, 10).Y; got != 0 {
		t.Errorf("dark half binarized to %d, want 0", got)
	}
	if got := out.GrayAt(35, 10).Y; got != 255 {
		t.Errorf("bright half binarized to %d, want 255", got)
	}
}

func TestCropRegion(t *testing.T) {
	src := binarize(halfToneImage(40, 20))
	cropped := cropRegion(src, &Bounds{X1: 10, Y1: 5, X2: 30, Y2: 15})

	b := cropped.Bounds()
	if b.Dx() != 20 || b.Dy() != 10 {
		t.Errorf("cropped to %dx%d, want 20x10", b.Dx(), b.Dy())
	}
}
