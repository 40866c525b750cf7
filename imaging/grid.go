package imaging

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Grid is a 2D float array used for luma planes, heatmaps and masks.
// Data is stored row-major; Data[y*Cols+x] addresses cell (x, y).
type Grid struct {
	Cols int
	Rows int
	Data []float64
}

// NewGrid allocates a zeroed cols x rows grid.
func NewGrid(cols, rows int) *Grid {
	return &Grid{
		Cols: cols,
		Rows: rows,
		Data: make([]float64, cols*rows),
	}
}

// At returns the value at (x, y).
func (g *Grid) At(x, y int) float64 { return g.Data[y*g.Cols+x] }

// Set stores v at (x, y).
func (g *Grid) Set(x, y int, v float64) { g.Data[y*g.Cols+x] = v }

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := NewGrid(g.Cols, g.Rows)
	copy(out.Data, g.Data)
	return out
}

// Normalize rescales the grid in place to [0, 1] by min-max. A flat grid
// (max == min) becomes all zeros so heatmap invariants still hold.
func (g *Grid) Normalize() {
	if len(g.Data) == 0 {
		return
	}
	lo, hi := g.Data[0], g.Data[0]
	for _, v := range g.Data {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span < 1e-12 {
		for i := range g.Data {
			g.Data[i] = 0
		}
		return
	}
	for i, v := range g.Data {
		g.Data[i] = (v - lo) / span
	}
}

// MeanStd returns the mean and standard deviation of all cells.
func (g *Grid) MeanStd() (mean, std float64) {
	mean = stat.Mean(g.Data, nil)
	std = stat.StdDev(g.Data, nil)
	return mean, std
}

// Variance returns the population variance of all cells.
func (g *Grid) Variance() float64 {
	mean := stat.Mean(g.Data, nil)
	var sum float64
	for _, v := range g.Data {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(g.Data))
}

// Percentile returns the p-th percentile (0-100) of the grid values.
func (g *Grid) Percentile(p float64) float64 {
	sorted := make([]float64, len(g.Data))
	copy(sorted, g.Data)
	sort.Float64s(sorted)
	return stat.Quantile(p/100, stat.Empirical, sorted, nil)
}

// Downsample block-mean pools the grid to cols x rows. Each output cell is
// the mean of the source cells its footprint covers. Requested dimensions
// larger than the source are clamped to the source size.
func Downsample(g *Grid, cols, rows int) *Grid {
	if cols > g.Cols {
		cols = g.Cols
	}
	if rows > g.Rows {
		rows = g.Rows
	}
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	out := NewGrid(cols, rows)
	for oy := 0; oy < rows; oy++ {
		y0 := oy * g.Rows / rows
		y1 := (oy + 1) * g.Rows / rows
		if y1 <= y0 {
			y1 = y0 + 1
		}
		for ox := 0; ox < cols; ox++ {
			x0 := ox * g.Cols / cols
			x1 := (ox + 1) * g.Cols / cols
			if x1 <= x0 {
				x1 = x0 + 1
			}
			var sum float64
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					sum += g.At(x, y)
				}
			}
			out.Set(ox, oy, sum/float64((y1-y0)*(x1-x0)))
		}
	}
	return out
}

// Rows2D copies the grid into a nested slice, the shape transport expects
// for heatmaps.
func (g *Grid) Rows2D() [][]float64 {
	out := make([][]float64, g.Rows)
	for y := 0; y < g.Rows; y++ {
		row := make([]float64, g.Cols)
		copy(row, g.Data[y*g.Cols:(y+1)*g.Cols])
		out[y] = row
	}
	return out
}
