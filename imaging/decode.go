package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"strings"

	"github.com/chai2010/webp"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Sentinel errors for the three fault kinds every tool distinguishes.
// "Not found / low confidence" is a normal result, never an error.
var (
	// ErrInvalidInput indicates missing or malformed image data or an
	// out-of-range parameter. No partial result accompanies it.
	ErrInvalidInput = errors.New("invalid input")

	// ErrBackendUnavailable indicates an optional native dependency
	// (OpenCV, Tesseract) is not compiled in. Callers should treat it as
	// "capability not supported", not as a bug.
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// Image is an owned RGB8 pixel buffer.
//
// Invariant: len(Pix) == Width*Height*3. Pixels are stored row-major as
// R,G,B triples. An Image is immutable once decoded and owned exclusively
// by the call that decoded it.
type Image struct {
	Width  int
	Height int
	Pix    []uint8
}

// Decode parses a "data:<mime>;base64,<payload>" string, or a raw base64
// payload, into an RGB Image.
//
// Supported formats are PNG, JPEG, GIF and WebP. The returned buffer is
// freshly allocated on every call.
//
// Returns an error wrapping ErrInvalidInput if the string is not valid
// base64 or does not decode to a supported image format.
func Decode(dataURL string) (*Image, error) {
	payload := dataURL
	mime := ""
	if strings.HasPrefix(dataURL, "data:") {
		comma := strings.IndexByte(dataURL, ',')
		if comma < 0 {
			return nil, fmt.Errorf("%w: data URL has no payload separator", ErrInvalidInput)
		}
		header := dataURL[len("data:"):comma]
		if !strings.HasSuffix(header, ";base64") {
			return nil, fmt.Errorf("%w: data URL is not base64 encoded", ErrInvalidInput)
		}
		mime = strings.TrimSuffix(header, ";base64")
		payload = dataURL[comma+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Some producers omit padding.
		raw, err = base64.RawStdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: bad base64 payload: %v", ErrInvalidInput, err)
		}
	}

	var img image.Image
	if strings.Contains(mime, "webp") {
		img, err = webp.Decode(bytes.NewReader(raw))
	} else {
		img, _, err = image.Decode(bytes.NewReader(raw))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: undecodable image data: %v", ErrInvalidInput, err)
	}

	return FromImage(img), nil
}

// FromImage copies a standard library image into an owned RGB buffer.
// Alpha is discarded; 16-bit channels are scaled down to 8-bit.
func FromImage(img image.Image) *Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	out := &Image{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}

	i := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			out.Pix[i] = uint8(r >> 8)
			out.Pix[i+1] = uint8(g >> 8)
			out.Pix[i+2] = uint8(b >> 8)
			i += 3
		}
	}
	return out
}

// RGBAt returns the 8-bit color components at (x, y). The caller must keep
// coordinates in bounds.
func (im *Image) RGBAt(x, y int) (r, g, b uint8) {
	i := (y*im.Width + x) * 3
	return im.Pix[i], im.Pix[i+1], im.Pix[i+2]
}

// ToNRGBA converts the buffer back to a standard library image, for handoff
// to encoders and resize libraries.
func (im *Image) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, im.Width, im.Height))
	for y := 0; y < im.Height; y++ {
		si := y * im.Width * 3
		di := y * out.Stride
		for x := 0; x < im.Width; x++ {
			out.Pix[di] = im.Pix[si]
			out.Pix[di+1] = im.Pix[si+1]
			out.Pix[di+2] = im.Pix[si+2]
			out.Pix[di+3] = 255
			si += 3
			di += 4
		}
	}
	return out
}

// Luma converts the image to a Rec.709 luma grid with values in [0, 255].
// This is the weighting used by the primitives, metrics and saliency tools.
func (im *Image) Luma() *Grid {
	return im.lumaWeighted(0.2126, 0.7152, 0.0722)
}

// LumaBT601 converts the image to an ITU-R BT.601 luma grid
// (0.299/0.587/0.114). Only the chart digitizers use this weighting.
func (im *Image) LumaBT601() *Grid {
	return im.lumaWeighted(0.299, 0.587, 0.114)
}

func (im *Image) lumaWeighted(wr, wg, wb float64) *Grid {
	g := NewGrid(im.Width, im.Height)
	i := 0
	for p := 0; p < len(im.Pix); p += 3 {
		g.Data[i] = wr*float64(im.Pix[p]) + wg*float64(im.Pix[p+1]) + wb*float64(im.Pix[p+2])
		i++
	}
	return g
}
