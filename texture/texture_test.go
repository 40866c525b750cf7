package texture

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image/png"
	"testing"

	"github.com/slidekit/visioncv/imaging"
)

func decodeResult(t *testing.T, r *Result) ([]byte, int, int) {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(r.ImageBase64)
	if err != nil {
		t.Fatalf("result is not valid base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("result is not a valid PNG: %v", err)
	}
	b := img.Bounds()
	return raw, b.Dx(), b.Dy()
}

func TestGenerateRejectsBadDimensions(t *testing.T) {
	for _, opts := range []Options{
		{Width: 0, Height: 10},
		{Width: 10, Height: 0},
		{Width: -5, Height: 10},
	} {
		if _, err := Generate(opts); !errors.Is(err, imaging.ErrInvalidInput) {
			t.Errorf("Generate(%+v): expected ErrInvalidInput, got %v", opts, err)
		}
	}
}

func TestGenerateRejectsUnknownKind(t *testing.T) {
	_, err := Generate(Options{Width: 16, Height: 16, Kind: "perlin"})
	if !errors.Is(err, imaging.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGenerateRejectsBadPaletteStop(t *testing.T) {
	_, err := Generate(Options{Width: 16, Height: 16, Palette: []string{"#012345", "nope"}})
	if !errors.Is(err, imaging.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGenerateFractalDimensions(t *testing.T) {
	result, err := Generate(Options{Width: 48, Height: 32, Seed: 3})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result.Kind != KindFractal {
		t.Errorf("kind = %q, want default fractal", result.Kind)
	}
	if result.MimeType != "image/png" {
		t.Errorf("mime type = %q, want image/png", result.MimeType)
	}
	_, w, h := decodeResult(t, result)
	if w != 48 || h != 32 {
		t.Errorf("decoded texture is %dx%d, want 48x32", w, h)
	}
}

func TestGenerateCellularDimensions(t *testing.T) {
	result, err := Generate(Options{Width: 40, Height: 40, Kind: KindCellular, Seed: 5})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result.Kind != KindCellular {
		t.Errorf("kind = %q, want cellular", result.Kind)
	}
	_, w, h := decodeResult(t, result)
	if w != 40 || h != 40 {
		t.Errorf("decoded texture is %dx%d, want 40x40", w, h)
	}
}

func TestGenerateDeterministicBySeed(t *testing.T) {
	opts := Options{Width: 32, Height: 32, Seed: 42}
	a, err := Generate(opts)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, err := Generate(opts)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if a.ImageBase64 != b.ImageBase64 {
		t.Error("same seed should reproduce the same texture")
	}

	opts.Seed = 43
	c, err := Generate(opts)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if a.ImageBase64 == c.ImageBase64 {
		t.Error("different seeds should produce different textures")
	}
}

func TestGenerateSingleStopPaletteIsUniform(t *testing.T) {
	result, err := Generate(Options{
		Width: 16, Height: 16,
		Kind:    KindCellular,
		Palette: []string{"#3366CC"},
		Seed:    9,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	raw, _, _ := decodeResult(t, result)
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if uint8(r>>8) != 0x33 || uint8(g>>8) != 0x66 || uint8(b>>8) != 0xCC {
				t.Fatalf("pixel (%d,%d) = (%d,%d,%d), want uniform #3366CC", x, y, r>>8, g>>8, b>>8)
			}
		}
	}
}

func TestColorizeEndpoints(t *testing.T) {
	field := imaging.NewGrid(2, 1)
	field.Set(0, 0, 0)
	field.Set(1, 0, 1)
	stops := [][3]uint8{{0, 0, 0}, {255, 255, 255}}

	out := colorize(field, stops)
	if c := out.NRGBAAt(0, 0); c.R != 0 || c.G != 0 || c.B != 0 {
		t.Errorf("field value 0 colorized to %+v, want black", c)
	}
	if c := out.NRGBAAt(1, 0); c.R != 255 || c.G != 255 || c.B != 255 {
		t.Errorf("field value 1 colorized to %+v, want white", c)
	}
}
