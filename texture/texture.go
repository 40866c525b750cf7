// Package texture synthesizes procedural background textures: multi-octave
// fractal noise and cellular (Voronoi-style) noise, colorized over a hex
// palette and returned as base64 PNG.
package texture

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"math/rand"

	dimaging "github.com/disintegration/imaging"

	"github.com/slidekit/visioncv/imaging"
)

// Noise kinds.
const (
	KindFractal  = "fractal"
	KindCellular = "cellular"
)

// Options configures texture synthesis. Zero-valued fields select the
// defaults noted on each field.
type Options struct {
	// Width and Height of the output image. Required, must be positive.
	Width  int
	Height int

	// Kind is KindFractal (default) or KindCellular.
	Kind string

	// Octaves for fractal noise. Default 4.
	Octaves int

	// Points for cellular noise. Default 24.
	Points int

	// Seed for the noise generator. Same seed, same texture.
	Seed int64

	// Palette is the list of hex color stops interpolated across the
	// noise field. Default black to white.
	Palette []string
}

// Result is a synthesized texture encoded as base64 PNG.
type Result struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Kind        string `json:"kind"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Generate synthesizes a texture per the options.
//
// Fractal noise sums successive octaves of small seeded random lattices,
// each bicubically upsampled to the output size, with amplitude halving
// per octave. Cellular noise is the inverted, normalized distance to the
// nearest of a set of random points. The field is normalized to [0,1] and
// colorized by linear per-channel interpolation across the palette stops.
func Generate(opts Options) (*Result, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: texture dimensions must be positive", imaging.ErrInvalidInput)
	}
	kind := opts.Kind
	if kind == "" {
		kind = KindFractal
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	var field *imaging.Grid
	switch kind {
	case KindFractal:
		octaves := opts.Octaves
		if octaves <= 0 {
			octaves = 4
		}
		field = fractalField(opts.Width, opts.Height, octaves, rng)
	case KindCellular:
		points := opts.Points
		if points <= 0 {
			points = 24
		}
		field = cellularField(opts.Width, opts.Height, points, rng)
	default:
		return nil, fmt.Errorf("%w: unknown texture kind %q", imaging.ErrInvalidInput, opts.Kind)
	}
	field.Normalize()

	stops, err := parseStops(opts.Palette)
	if err != nil {
		return nil, err
	}
	out := colorize(field, stops)

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode texture: %w", err)
	}

	return &Result{
		Width:       opts.Width,
		Height:      opts.Height,
		Kind:        kind,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// fractalField sums octaves of random lattices upsampled to full size.
// Octave k uses a (4<<k)-cell lattice and amplitude 1/2^k.
func fractalField(width, height, octaves int, rng *rand.Rand) *imaging.Grid {
	field := imaging.NewGrid(width, height)
	amplitude := 1.0

	for oct := 0; oct < octaves; oct++ {
		cells := 4 << oct
		lw := cells
		lh := cells
		if lw > width {
			lw = width
		}
		if lh > height {
			lh = height
		}

		lattice := image.NewGray(image.Rect(0, 0, lw, lh))
		for i := range lattice.Pix {
			lattice.Pix[i] = uint8(rng.Intn(256))
		}

		up := dimaging.Resize(lattice, width, height, dimaging.CatmullRom)
		for y := 0; y < height; y++ {
			i := y * up.Stride
			for x := 0; x < width; x++ {
				field.Data[y*width+x] += amplitude * float64(up.Pix[i]) / 255.0
				i += 4
			}
		}
		amplitude /= 2
	}
	return field
}

// cellularField is the distance-to-nearest-random-point field, inverted so
// cell centers are bright.
func cellularField(width, height, points int, rng *rand.Rand) *imaging.Grid {
	px := make([]float64, points)
	py := make([]float64, points)
	for i := 0; i < points; i++ {
		px[i] = rng.Float64() * float64(width)
		py[i] = rng.Float64() * float64(height)
	}

	field := imaging.NewGrid(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			best := math.MaxFloat64
			for i := 0; i < points; i++ {
				d := math.Hypot(float64(x)-px[i], float64(y)-py[i])
				if d < best {
					best = d
				}
			}
			field.Set(x, y, -best) // negate: Normalize brightens centers
		}
	}
	return field
}

func parseStops(palette []string) ([][3]uint8, error) {
	if len(palette) == 0 {
		palette = []string{"#000000", "#FFFFFF"}
	}
	if len(palette) == 1 {
		palette = append(palette, palette[0])
	}
	stops := make([][3]uint8, len(palette))
	for i, hex := range palette {
		r, g, b, err := imaging.ParseHexColor(hex)
		if err != nil {
			return nil, err
		}
		stops[i] = [3]uint8{r, g, b}
	}
	return stops, nil
}

// colorize maps field values through evenly spaced palette stops with
// per-channel linear interpolation.
func colorize(field *imaging.Grid, stops [][3]uint8) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, field.Cols, field.Rows))
	segments := float64(len(stops) - 1)

	for y := 0; y < field.Rows; y++ {
		for x := 0; x < field.Cols; x++ {
			v := field.At(x, y)
			pos := v * segments
			idx := int(pos)
			if idx >= len(stops)-1 {
				idx = len(stops) - 2
			}
			t := pos - float64(idx)

			a, b := stops[idx], stops[idx+1]
			out.SetNRGBA(x, y, color.NRGBA{
				R: lerp8(a[0], b[0], t),
				G: lerp8(a[1], b[1], t),
				B: lerp8(a[2], b[2], t),
				A: 255,
			})
		}
	}
	return out
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}
