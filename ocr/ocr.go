// Package ocr extracts word-level text from slide images.
//
// Recognition runs on Tesseract via gosseract and is an optional native
// capability: without cgo, ExtractWords returns an error wrapping
// imaging.ErrBackendUnavailable and Available reports false. Images are
// binarized with a global mean threshold before recognition, which
// stabilizes Tesseract on anti-aliased slide text.
package ocr

import (
	"image"
	"image/color"

	dimaging "github.com/disintegration/imaging"

	"github.com/slidekit/visioncv/imaging"
)

// Bounds is a word bounding box in original-image pixel coordinates.
// (X1, Y1) is the inclusive top-left corner, (X2, Y2) the exclusive
// bottom-right corner.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Word is one recognized word with its OCR confidence (0 to 1).
type Word struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Bounds     Bounds  `json:"bounds"`
}

// Result contains the recognized text of an image.
type Result struct {
	// FullText is all recognized text with original spacing and newlines.
	FullText string `json:"full_text"`

	// Words lists individual words with bounding boxes and confidences.
	// May be empty while FullText is still populated, when box extraction
	// fails.
	Words []Word `json:"words"`

	Count int `json:"count"`
}

// Options tunes word extraction.
type Options struct {
	// Language is the Tesseract language code. Default "eng".
	Language string

	// Region, when non-nil, restricts recognition to that part of the
	// image. Returned bounds stay in original-image coordinates.
	Region *Bounds
}

// binarize thresholds the image at its global mean luma, producing the
// black-on-white bitmap Tesseract prefers.
func binarize(img *imaging.Image) *image.Gray {
	luma := img.Luma()
	mean, _ := luma.MeanStd()

	out := image.NewGray(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if luma.At(x, y) >= mean {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out
}

// cropRegion cuts the requested region out of a prepared bitmap.
func cropRegion(img *image.Gray, r *Bounds) image.Image {
	return dimaging.Crop(img, image.Rect(r.X1, r.Y1, r.X2, r.Y2))
}
