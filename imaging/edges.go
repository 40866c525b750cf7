package imaging

import "math"

// EdgeMap performs Canny edge detection on a luma grid with values in
// [0, 255] and returns a 0/1 mask of the same dimensions.
//
// The pipeline is the classic one: Gaussian blur to suppress noise, Sobel
// gradients, non-maximum suppression to thin edges to one pixel, then double
// thresholding with hysteresis. Thresholds are on the 0-255 scale; weak
// edges between the two survive only when 8-connected to a strong edge.
func EdgeMap(luma *Grid, thresholdLow, thresholdHigh float64) *Grid {
	blurred := GaussianSmooth(luma, 5, 1.4)

	gx := Convolve(blurred, SobelX, PadClamp)
	gy := Convolve(blurred, SobelY, PadClamp)

	magnitude := NewGrid(luma.Cols, luma.Rows)
	direction := NewGrid(luma.Cols, luma.Rows)
	for i := range magnitude.Data {
		magnitude.Data[i] = math.Hypot(gx.Data[i], gy.Data[i])
		direction.Data[i] = math.Atan2(gy.Data[i], gx.Data[i])
	}

	suppressed := nonMaxSuppress(magnitude, direction)

	out := NewGrid(luma.Cols, luma.Rows)
	for y := 0; y < luma.Rows; y++ {
		for x := 0; x < luma.Cols; x++ {
			v := suppressed.At(x, y)
			if v >= thresholdHigh {
				out.Set(x, y, 1)
			} else if v >= thresholdLow && hasStrongNeighbor(suppressed, x, y, thresholdHigh) {
				out.Set(x, y, 1)
			}
		}
	}
	return out
}

// nonMaxSuppress keeps only gradient magnitudes that are local maxima along
// the gradient direction. Border cells are zeroed.
func nonMaxSuppress(magnitude, direction *Grid) *Grid {
	out := NewGrid(magnitude.Cols, magnitude.Rows)
	for y := 1; y < magnitude.Rows-1; y++ {
		for x := 1; x < magnitude.Cols-1; x++ {
			angle := direction.At(x, y)
			mag := magnitude.At(x, y)

			var n1, n2 float64
			switch {
			case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
				n1 = magnitude.At(x-1, y)
				n2 = magnitude.At(x+1, y)
			case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
				n1 = magnitude.At(x+1, y-1)
				n2 = magnitude.At(x-1, y+1)
			case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
				n1 = magnitude.At(x, y-1)
				n2 = magnitude.At(x, y+1)
			default:
				n1 = magnitude.At(x-1, y-1)
				n2 = magnitude.At(x+1, y+1)
			}

			if mag >= n1 && mag >= n2 {
				out.Set(x, y, mag)
			}
		}
	}
	return out
}

func hasStrongNeighbor(suppressed *Grid, x, y int, high float64) bool {
	for ky := -1; ky <= 1; ky++ {
		for kx := -1; kx <= 1; kx++ {
			px := clamp(x+kx, 0, suppressed.Cols-1)
			py := clamp(y+ky, 0, suppressed.Rows-1)
			if suppressed.At(px, py) >= high {
				return true
			}
		}
	}
	return false
}
