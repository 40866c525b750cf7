// Package server implements the MCP (Model Context Protocol) server for the
// VisionCV image analysis tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the library's
// computer-vision capabilities through the MCP protocol, enabling AI systems
// to inspect rendered slides and screenshots with precision.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// The server provides 14 tools organized into categories:
//
// Quality Metrics:
//   - analyze_blur: Laplacian-variance sharpness score
//   - analyze_noise: High-frequency residual noise estimate
//   - analyze_contrast: Global luma statistics and overlay recommendation
//   - check_wcag_contrast: WCAG 2.x contrast ratio for two hex colors
//
// Saliency:
//   - saliency_map: Gradient or spectral-residual saliency heatmap
//
// Placement:
//   - find_empty_regions: Maximal low-edge-energy rectangles
//   - suggest_placements: Composition-rule scored placement candidates
//
// Color & Texture:
//   - extract_palette: Median-cut dominant color palette
//   - validate_brand_colors: Brand color coverage report
//   - generate_texture: Procedural fractal or cellular background
//
// Structural Extraction:
//   - detect_logo: ORB + homography logo localization (OpenCV backend)
//   - extract_text: Word-level OCR (Tesseract backend)
//   - digitize_bar_chart: Bar positions and relative heights
//   - digitize_line_graph: Data series recovered from a line graph
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses:
//   - code -32602: invalid input (bad image data, out-of-range parameters)
//   - code -32002: capability not compiled in (OpenCV or Tesseract backend)
//   - code -32000: other tool execution failures
//
// "Nothing detected" outcomes (no logo match, no bars found) are successful
// results with a found=false or empty payload, never errors.
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
