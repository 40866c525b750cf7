//go:build !cv

package logodetect

import (
	"fmt"

	"github.com/slidekit/visioncv/imaging"
)

// Available reports whether the OpenCV backend is compiled in.
func Available() bool { return false }

// Detect reports the missing OpenCV capability. Build with -tags cv and an
// OpenCV installation to enable logo detection.
func Detect(reference, target *imaging.Image) (*Result, error) {
	return nil, fmt.Errorf("%w: logo detection requires OpenCV (build with -tags cv)", imaging.ErrBackendUnavailable)
}
