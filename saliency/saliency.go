// Package saliency estimates where a viewer's attention lands on a slide
// image. Two estimators are provided: a cheap Sobel-gradient map and the
// spectral-residual method of Hou & Zhang, which isolates the novel
// (non-smooth) components of the image spectrum.
//
// Both produce heatmaps normalized to [0, 1].
package saliency

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/slidekit/visioncv/imaging"
)

// Heatmap grids are kept small for transport; 64x36 matches a 16:9 slide.
const (
	GridCols = 64
	GridRows = 36
)

// Result is a normalized saliency heatmap.
type Result struct {
	Method   string      `json:"method"`
	GridCols int         `json:"grid_cols"`
	GridRows int         `json:"grid_rows"`
	Heatmap  [][]float64 `json:"heatmap"`
}

// Gradient computes Sobel gradient-magnitude saliency, block-averaged to a
// fixed 64x36 grid and min-max normalized.
func Gradient(img *imaging.Image) *Result {
	mag := imaging.SobelMagnitude(img.Luma())
	small := imaging.Downsample(mag, GridCols, GridRows)
	small.Normalize()
	return &Result{
		Method:   "gradient",
		GridCols: small.Cols,
		GridRows: small.Rows,
		Heatmap:  small.Rows2D(),
	}
}

// SpectralResidual computes Hou & Zhang spectral-residual saliency.
//
// The luma plane is normalized to [0,1] and transformed to the frequency
// domain. The log-amplitude spectrum is smoothed with a 9x9 mean filter;
// the residual (log-amplitude minus its smoothed copy) is recombined with
// the original phase and inverse-transformed. The squared magnitude of the
// reconstruction is Gaussian-smoothed (9x9, sigma 2) and min-max
// normalized.
//
// When outCols/outRows are positive the map is block-mean downsampled to
// that size; otherwise the full-resolution map is returned.
func SpectralResidual(img *imaging.Image, outCols, outRows int) *Result {
	luma := img.Luma()
	cols, rows := luma.Cols, luma.Rows

	field := make([]complex128, cols*rows)
	for i, v := range luma.Data {
		field[i] = complex(v/255.0, 0)
	}

	rowFFT := fourier.NewCmplxFFT(cols)
	colFFT := fourier.NewCmplxFFT(rows)
	fft2(field, cols, rows, rowFFT, colFFT, false)

	logAmp := imaging.NewGrid(cols, rows)
	phase := imaging.NewGrid(cols, rows)
	for i, v := range field {
		logAmp.Data[i] = math.Log(cmplx.Abs(v) + 1e-9)
		phase.Data[i] = cmplx.Phase(v)
	}

	smoothed := imaging.BoxSmooth(logAmp, 9)
	for i := range field {
		residual := logAmp.Data[i] - smoothed.Data[i]
		field[i] = cmplx.Rect(math.Exp(residual), phase.Data[i])
	}

	fft2(field, cols, rows, rowFFT, colFFT, true)

	sal := imaging.NewGrid(cols, rows)
	n := float64(cols * rows)
	for i, v := range field {
		m := cmplx.Abs(v) / n // gonum transforms are unnormalized
		sal.Data[i] = m * m
	}

	sal = imaging.GaussianSmooth(sal, 9, 2)
	sal.Normalize()

	if outCols > 0 && outRows > 0 {
		sal = imaging.Downsample(sal, outCols, outRows)
	}

	return &Result{
		Method:   "spectral_residual",
		GridCols: sal.Cols,
		GridRows: sal.Rows,
		Heatmap:  sal.Rows2D(),
	}
}

// fft2 transforms the row-major field in place, rows first then columns.
// The inverse pass leaves the result unnormalized.
func fft2(field []complex128, cols, rows int, rowFFT, colFFT *fourier.CmplxFFT, inverse bool) {
	rowBuf := make([]complex128, cols)
	for y := 0; y < rows; y++ {
		row := field[y*cols : (y+1)*cols]
		if inverse {
			copy(rowBuf, row)
			rowFFT.Sequence(row, rowBuf)
		} else {
			copy(rowBuf, row)
			rowFFT.Coefficients(row, rowBuf)
		}
	}

	colIn := make([]complex128, rows)
	colOut := make([]complex128, rows)
	for x := 0; x < cols; x++ {
		for y := 0; y < rows; y++ {
			colIn[y] = field[y*cols+x]
		}
		if inverse {
			colFFT.Sequence(colOut, colIn)
		} else {
			colFFT.Coefficients(colOut, colIn)
		}
		for y := 0; y < rows; y++ {
			field[y*cols+x] = colOut[y]
		}
	}
}

// GridFromResult rebuilds a Grid from a heatmap result, for callers that
// compose saliency with other tools.
func GridFromResult(r *Result) *imaging.Grid {
	g := imaging.NewGrid(r.GridCols, r.GridRows)
	for y, row := range r.Heatmap {
		for x, v := range row {
			g.Set(x, y, v)
		}
	}
	return g
}
