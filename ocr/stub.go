//go:build !cgo

package ocr

import (
	"fmt"

	"github.com/slidekit/visioncv/imaging"
)

// Available reports whether the Tesseract backend is compiled in.
func Available() bool { return false }

// ExtractWords reports the missing Tesseract capability. Build with cgo
// and an installed Tesseract to enable text extraction.
func ExtractWords(img *imaging.Image, opts Options) (*Result, error) {
	return nil, fmt.Errorf("%w: OCR requires Tesseract (build with cgo enabled)", imaging.ErrBackendUnavailable)
}
