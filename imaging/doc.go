// Package imaging provides the image primitives shared by every VisionCV tool:
// data-URL decoding into owned RGB buffers, luma extraction, float grids,
// 2D convolution, block-mean downsampling and Canny edge maps.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner;
// X increases rightward and Y increases downward.
//
// # Ownership
//
// Decode returns a freshly allocated buffer for every call. Nothing in this
// package caches or shares pixel data, so arbitrary calls may run concurrently
// without locking.
//
// # Error Handling
//
// Malformed input (bad base64, undecodable image data, out-of-range
// parameters) is reported as an error wrapping ErrInvalidInput. Missing
// optional native backends are reported by other packages as errors wrapping
// ErrBackendUnavailable. A tool that ran successfully but found nothing
// returns a normal result value, never an error.
package imaging
