//go:build cgo

package ocr

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/otiai10/gosseract/v2"

	"github.com/slidekit/visioncv/imaging"
)

// Available reports whether the Tesseract backend is compiled in.
func Available() bool { return true }

// ExtractWords recognizes word-level text in an image.
//
// The image is binarized at its global mean luma, optionally cropped to
// opts.Region, and fed to Tesseract. Word boxes use the RIL_WORD iterator
// level and are reported in original-image coordinates with confidences
// scaled to 0-1. If box extraction fails the full text is still returned
// with an empty word list.
func ExtractWords(img *imaging.Image, opts Options) (*Result, error) {
	if opts.Region != nil {
		r := opts.Region
		if r.X1 < 0 || r.Y1 < 0 || r.X2 > img.Width || r.Y2 > img.Height || r.X1 >= r.X2 || r.Y1 >= r.Y2 {
			return nil, fmt.Errorf("%w: region outside image bounds", imaging.ErrInvalidInput)
		}
	}
	language := opts.Language
	if language == "" {
		language = "eng"
	}

	var prepared image.Image = binarize(img)
	offX, offY := 0, 0
	if opts.Region != nil {
		prepared = cropRegion(prepared.(*image.Gray), opts.Region)
		offX, offY = opts.Region.X1, opts.Region.Y1
	}

	// Tesseract wants a file path.
	tmpFile, err := os.CreateTemp("", "visioncv-ocr-*.png")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmpFile, prepared); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to encode temp image: %w", err)
	}
	tmpFile.Close()

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(tmpPath); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return &Result{FullText: text, Words: []Word{}}, nil
	}

	words := make([]Word, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		words = append(words, Word{
			Text:       box.Word,
			Confidence: box.Confidence / 100.0,
			Bounds: Bounds{
				X1: box.Box.Min.X + offX,
				Y1: box.Box.Min.Y + offY,
				X2: box.Box.Max.X + offX,
				Y2: box.Box.Max.Y + offY,
			},
		})
	}

	return &Result{FullText: text, Words: words, Count: len(words)}, nil
}
