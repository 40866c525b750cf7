package metrics

import (
	"math"

	"github.com/slidekit/visioncv/imaging"
)

// BlurResult reports image sharpness via the variance of the Laplacian.
type BlurResult struct {
	// Score is the variance of the Laplacian-filtered luma. Lower values
	// mean a blurrier image.
	Score float64 `json:"score"`

	// Blurry is true when Score falls below the conventional variance
	// threshold of 100 for screen-sized renders.
	Blurry bool `json:"blurry"`
}

// blurVarianceThreshold marks the score below which a slide render is
// flagged as blurry.
const blurVarianceThreshold = 100.0

// Blur computes the Laplacian-variance blur score of an image.
func Blur(img *imaging.Image) *BlurResult {
	luma := img.Luma()
	lap := imaging.Convolve(luma, imaging.Laplacian, imaging.PadClamp)
	score := lap.Variance()
	return &BlurResult{
		Score:  math.Round(score*100) / 100,
		Blurry: score < blurVarianceThreshold,
	}
}

// NoiseResult reports the high-frequency residual noise estimate.
type NoiseResult struct {
	// StdDev is the standard deviation of luma minus its Gaussian-blurred
	// copy, in 0-255 luma units.
	StdDev float64 `json:"std_dev"`

	// Score is the normalized heuristic min(1, StdDev/50).
	Score float64 `json:"score"`
}

// Noise estimates image noise as the spread of the high-frequency residual
// left after subtracting a 5x5 Gaussian blur from the luma plane.
func Noise(img *imaging.Image) *NoiseResult {
	luma := img.Luma()
	blurred := imaging.GaussianSmooth(luma, 5, 1.4)

	residual := imaging.NewGrid(luma.Cols, luma.Rows)
	for i := range residual.Data {
		residual.Data[i] = luma.Data[i] - blurred.Data[i]
	}

	_, std := residual.MeanStd()
	return &NoiseResult{
		StdDev: math.Round(std*100) / 100,
		Score:  math.Min(1, std/50),
	}
}

// ContrastResult reports global luma statistics and a darkening
// recommendation for text overlays.
type ContrastResult struct {
	MeanLuma     float64 `json:"mean_luma"`
	LumaVariance float64 `json:"luma_variance"`

	// RecommendDarken is true for bright, low-variance backgrounds where
	// overlay text would wash out.
	RecommendDarken bool `json:"recommend_darken"`

	// OverlayAlpha is the suggested darkening overlay opacity, 0 when no
	// darkening is recommended.
	OverlayAlpha float64 `json:"overlay_alpha"`
}

// GlobalContrast computes mean and variance of the luma plane and derives
// the darken-overlay recommendation. Darkening is suggested when the mean
// exceeds 170 with variance below 800; the overlay alpha then grows
// linearly with the mean, clamped to [0.25, 0.55].
func GlobalContrast(img *imaging.Image) *ContrastResult {
	luma := img.Luma()
	mean, _ := luma.MeanStd()
	variance := luma.Variance()

	recommend := mean > 170 && variance < 800
	alpha := 0.0
	if recommend {
		alpha = 0.25 + 0.3*(mean-170)/85
		if alpha > 0.55 {
			alpha = 0.55
		}
	}

	return &ContrastResult{
		MeanLuma:        math.Round(mean*100) / 100,
		LumaVariance:    math.Round(variance*100) / 100,
		RecommendDarken: recommend,
		OverlayAlpha:    math.Round(alpha*100) / 100,
	}
}
