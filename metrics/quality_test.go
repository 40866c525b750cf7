package metrics

import (
	"math/rand"
	"testing"

	"github.com/slidekit/visioncv/imaging"
)

// solidImage builds a single-color test image.
func solidImage(width, height int, r, g, b uint8) *imaging.Image {
	img := &imaging.Image{Width: width, Height: height, Pix: make([]uint8, width*height*3)}
	for i := 0; i < len(img.Pix); i += 3 {
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
	}
	return img
}

// checkerboard builds a high-detail black/white test image.
func checkerboard(width, height, cell int) *imaging.Image {
	img := &imaging.Image{Width: width, Height: height, Pix: make([]uint8, width*height*3)}
	i := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.Pix[i] = 255
				img.Pix[i+1] = 255
				img.Pix[i+2] = 255
			}
			i += 3
		}
	}
	return img
}

// noisyImage builds a gray image with seeded per-pixel noise.
func noisyImage(width, height int, amplitude int, seed int64) *imaging.Image {
	rng := rand.New(rand.NewSource(seed))
	img := &imaging.Image{Width: width, Height: height, Pix: make([]uint8, width*height*3)}
	for i := 0; i < len(img.Pix); i += 3 {
		v := uint8(128 + rng.Intn(2*amplitude+1) - amplitude)
		img.Pix[i] = v
		img.Pix[i+1] = v
		img.Pix[i+2] = v
	}
	return img
}

func TestBlurFlatImage(t *testing.T) {
	result := Blur(solidImage(64, 64, 128, 128, 128))
	if result.Score != 0 {
		t.Errorf("flat image blur score = %f, want 0", result.Score)
	}
	if !result.Blurry {
		t.Error("flat image should be flagged blurry")
	}
}

func TestBlurSharpImage(t *testing.T) {
	result := Blur(checkerboard(64, 64, 2))
	if result.Score <= 100 {
		t.Errorf("checkerboard blur score = %f, want > 100", result.Score)
	}
	if result.Blurry {
		t.Error("checkerboard should not be flagged blurry")
	}
}

func TestBlurScoreOrdersByDetail(t *testing.T) {
	fine := Blur(checkerboard(64, 64, 2))
	coarse := Blur(checkerboard(64, 64, 16))
	if fine.Score <= coarse.Score {
		t.Errorf("fine detail score %f should exceed coarse detail score %f", fine.Score, coarse.Score)
	}
}

func TestNoiseFlatImage(t *testing.T) {
	result := Noise(solidImage(64, 64, 100, 150, 200))
	if result.StdDev != 0 {
		t.Errorf("flat image noise std dev = %f, want 0", result.StdDev)
	}
	if result.Score != 0 {
		t.Errorf("flat image noise score = %f, want 0", result.Score)
	}
}

func TestNoiseDetectsPerPixelNoise(t *testing.T) {
	quiet := Noise(noisyImage(64, 64, 5, 1))
	loud := Noise(noisyImage(64, 64, 60, 1))
	if quiet.Score <= 0 {
		t.Errorf("mild noise score = %f, want > 0", quiet.Score)
	}
	if loud.Score <= quiet.Score {
		t.Errorf("heavy noise score %f should exceed mild noise score %f", loud.Score, quiet.Score)
	}
	if loud.Score > 1 {
		t.Errorf("noise score %f exceeds 1", loud.Score)
	}
}

func TestGlobalContrastBrightFlat(t *testing.T) {
	result := GlobalContrast(solidImage(64, 64, 230, 230, 230))
	if !result.RecommendDarken {
		t.Error("bright flat image should recommend darkening")
	}
	if result.OverlayAlpha < 0.25 || result.OverlayAlpha > 0.55 {
		t.Errorf("overlay alpha %f outside [0.25, 0.55]", result.OverlayAlpha)
	}
}

func TestGlobalContrastDarkImage(t *testing.T) {
	result := GlobalContrast(solidImage(64, 64, 30, 30, 30))
	if result.RecommendDarken {
		t.Error("dark image should not recommend darkening")
	}
	if result.OverlayAlpha != 0 {
		t.Errorf("overlay alpha = %f, want 0", result.OverlayAlpha)
	}
}

func TestGlobalContrastBusyBrightImage(t *testing.T) {
	// Bright but high-variance: alternating 170 and 255 rows average above
	// 170 yet vary too much for the darken recommendation.
	img := &imaging.Image{Width: 32, Height: 32, Pix: make([]uint8, 32*32*3)}
	for y := 0; y < 32; y++ {
		v := uint8(170)
		if y%2 == 1 {
			v = 255
		}
		for x := 0; x < 32; x++ {
			i := (y*32 + x) * 3
			img.Pix[i], img.Pix[i+1], img.Pix[i+2] = v, v, v
		}
	}

	result := GlobalContrast(img)
	if result.MeanLuma <= 170 {
		t.Fatalf("test image mean luma = %f, want > 170", result.MeanLuma)
	}
	if result.RecommendDarken {
		t.Error("high-variance image should not recommend darkening")
	}
}
