// Package metrics scores single still images for design quality: blur,
// noise, global contrast and WCAG foreground/background contrast.
//
// All metrics consume only the imaging primitives and are pure functions of
// their inputs; nothing here keeps state between calls.
package metrics
