// Package placement finds empty regions of a slide image and scores them as
// candidate locations for new content.
//
// Region search binarizes a downsampled Sobel edge-energy grid and extracts
// maximal all-empty rectangles with the largest-rectangle-in-histogram
// algorithm. Scoring blends composition rules (thirds, golden ratio,
// Fibonacci-spiral focal points, diagonals) with mean saliency and a visual
// weight estimate.
package placement
