package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// encodePNG builds a base64 PNG payload from a stdlib image.
func encodePNG(t *testing.T, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestDecodeDataURL(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 50), G: uint8(y * 80), B: 7, A: 255})
		}
	}

	img, err := Decode("data:image/png;base64," + encodePNG(t, src))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.Width != 4 || img.Height != 3 {
		t.Errorf("expected 4x3, got %dx%d", img.Width, img.Height)
	}
	r, g, b := img.RGBAt(2, 1)
	if r != 100 || g != 80 || b != 7 {
		t.Errorf("pixel (2,1) = (%d,%d,%d), want (100,80,7)", r, g, b)
	}
}

func TestDecodeRawBase64(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img, err := Decode(encodePNG(t, src))
	if err != nil {
		t.Fatalf("Decode of raw base64 failed: %v", err)
	}
	if img.Width != 2 || img.Height != 2 {
		t.Errorf("expected 2x2, got %dx%d", img.Width, img.Height)
	}
}

func TestDecodeInvalidInput(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"not base64", "!!!not-base64!!!"},
		{"valid base64 not an image", base64.StdEncoding.EncodeToString([]byte("hello"))},
		{"data URL without payload", "data:image/png;base64"},
		{"data URL not base64 encoded", "data:image/png,rawdata"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.data)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestToNRGBARoundTrip(t *testing.T) {
	img := &Image{Width: 2, Height: 1, Pix: []uint8{10, 20, 30, 200, 100, 50}}
	back := FromImage(img.ToNRGBA())
	if back.Width != 2 || back.Height != 1 {
		t.Fatalf("expected 2x1, got %dx%d", back.Width, back.Height)
	}
	for i := range img.Pix {
		if back.Pix[i] != img.Pix[i] {
			t.Errorf("Pix[%d] = %d, want %d", i, back.Pix[i], img.Pix[i])
		}
	}
}

func TestLumaWeightings(t *testing.T) {
	// Pure green separates the two weightings cleanly.
	img := &Image{Width: 1, Height: 1, Pix: []uint8{0, 255, 0}}

	rec709 := img.Luma().At(0, 0)
	if diff := rec709 - 0.7152*255; diff > 0.01 || diff < -0.01 {
		t.Errorf("Rec.709 luma of green = %f, want %f", rec709, 0.7152*255)
	}

	bt601 := img.LumaBT601().At(0, 0)
	if diff := bt601 - 0.587*255; diff > 0.01 || diff < -0.01 {
		t.Errorf("BT.601 luma of green = %f, want %f", bt601, 0.587*255)
	}
}
