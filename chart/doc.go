// Package chart digitizes rasterized bar and line charts back into numeric
// series.
//
// The bar digitizer works on column-projection statistics; the line-graph
// digitizer locates axes with a restricted Hough transform over a Canny
// edge map, binarizes the plot area adaptively, thins it morphologically
// and follows per-column candidate points into tracks.
//
// Both digitizers use ITU-R BT.601 luma (0.299/0.587/0.114), unlike the
// Rec.709 weights used elsewhere in the library.
package chart
