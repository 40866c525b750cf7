package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/slidekit/visioncv/chart"
	"github.com/slidekit/visioncv/imaging"
	"github.com/slidekit/visioncv/logodetect"
	"github.com/slidekit/visioncv/metrics"
	"github.com/slidekit/visioncv/ocr"
	"github.com/slidekit/visioncv/palette"
	"github.com/slidekit/visioncv/placement"
	"github.com/slidekit/visioncv/saliency"
	"github.com/slidekit/visioncv/texture"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "analyze_blur").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Fault kinds map to distinct JSON-RPC error codes so clients can tell bad
// input (-32602) and missing native capabilities (-32002) apart from
// execution faults (-32000). "Nothing found" outcomes are successful
// results, not errors.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		switch {
		case errors.Is(err, imaging.ErrInvalidInput):
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		case errors.Is(err, imaging.ErrBackendUnavailable):
			return s.errorResponse(req.ID, -32002, "Capability not supported", err.Error())
		default:
			return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
		}
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Quality Metrics
	case "analyze_blur":
		return s.handleAnalyzeBlur(args)
	case "analyze_noise":
		return s.handleAnalyzeNoise(args)
	case "analyze_contrast":
		return s.handleAnalyzeContrast(args)
	case "check_wcag_contrast":
		return s.handleCheckWCAGContrast(args)

	// Saliency
	case "saliency_map":
		return s.handleSaliencyMap(args)

	// Placement
	case "find_empty_regions":
		return s.handleFindEmptyRegions(args)
	case "suggest_placements":
		return s.handleSuggestPlacements(args)

	// Color & Texture
	case "extract_palette":
		return s.handleExtractPalette(args)
	case "validate_brand_colors":
		return s.handleValidateBrandColors(args)
	case "generate_texture":
		return s.handleGenerateTexture(args)

	// Structural Extraction
	case "detect_logo":
		return s.handleDetectLogo(args)
	case "extract_text":
		return s.handleExtractText(args)
	case "digitize_bar_chart":
		return s.handleDigitizeBarChart(args)
	case "digitize_line_graph":
		return s.handleDigitizeLineGraph(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// imageArgs carries the canonical image field. Tools accept either name;
// screenshotDataUrl wins when both are set.
type imageArgs struct {
	ScreenshotDataURL string `json:"screenshotDataUrl"`
	ImageDataURL      string `json:"imageDataUrl"`
}

func (a imageArgs) decode() (*imaging.Image, error) {
	payload := a.ScreenshotDataURL
	if payload == "" {
		payload = a.ImageDataURL
	}
	if payload == "" {
		return nil, fmt.Errorf("%w: missing image data", imaging.ErrInvalidInput)
	}
	return imaging.Decode(payload)
}

// === Quality Metric Handlers ===

func (s *Server) handleAnalyzeBlur(args json.RawMessage) (interface{}, error) {
	var a imageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := a.decode()
	if err != nil {
		return nil, err
	}
	return metrics.Blur(img), nil
}

func (s *Server) handleAnalyzeNoise(args json.RawMessage) (interface{}, error) {
	var a imageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := a.decode()
	if err != nil {
		return nil, err
	}
	return metrics.Noise(img), nil
}

func (s *Server) handleAnalyzeContrast(args json.RawMessage) (interface{}, error) {
	var a imageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := a.decode()
	if err != nil {
		return nil, err
	}
	return metrics.GlobalContrast(img), nil
}

type wcagArgs struct {
	Foreground string  `json:"foreground"`
	Background string  `json:"background"`
	FontSizePx float64 `json:"fontSizePx"`
}

func (s *Server) handleCheckWCAGContrast(args json.RawMessage) (interface{}, error) {
	var a wcagArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.FontSizePx == 0 {
		a.FontSizePx = 16
	}
	return metrics.ContrastRatio(a.Foreground, a.Background, a.FontSizePx)
}

// === Saliency Handlers ===

type saliencyArgs struct {
	imageArgs
	Method   string `json:"method"`
	GridCols int    `json:"gridCols"`
	GridRows int    `json:"gridRows"`
}

func (s *Server) handleSaliencyMap(args json.RawMessage) (interface{}, error) {
	var a saliencyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := a.decode()
	if err != nil {
		return nil, err
	}
	switch a.Method {
	case "", "gradient":
		return saliency.Gradient(img), nil
	case "spectral_residual":
		return saliency.SpectralResidual(img, a.GridCols, a.GridRows), nil
	default:
		return nil, fmt.Errorf("%w: unknown saliency method %q", imaging.ErrInvalidInput, a.Method)
	}
}

// === Placement Handlers ===

type emptyRegionsArgs struct {
	imageArgs
	MinAreaFraction float64 `json:"minAreaFraction"`
}

func (s *Server) handleFindEmptyRegions(args json.RawMessage) (interface{}, error) {
	var a emptyRegionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := a.decode()
	if err != nil {
		return nil, err
	}
	return placement.EmptyRegions(img, placement.RegionOptions{
		MinAreaFraction: a.MinAreaFraction,
	}), nil
}

type suggestPlacementsArgs struct {
	imageArgs
	Rules      []string           `json:"rules"`
	Preference string             `json:"preference"`
	Weights    *placement.Weights `json:"weights"`
}

func (s *Server) handleSuggestPlacements(args json.RawMessage) (interface{}, error) {
	var a suggestPlacementsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := a.decode()
	if err != nil {
		return nil, err
	}
	opts := placement.ScoreOptions{
		Rules:      a.Rules,
		Preference: a.Preference,
	}
	if a.Weights != nil {
		opts.Weights = *a.Weights
	}
	return placement.SuggestPlacements(img, opts)
}

// === Color & Texture Handlers ===

type extractPaletteArgs struct {
	imageArgs
	Colors int `json:"colors"`
}

func (s *Server) handleExtractPalette(args json.RawMessage) (interface{}, error) {
	var a extractPaletteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Colors == 0 {
		a.Colors = 8
	}
	img, err := a.decode()
	if err != nil {
		return nil, err
	}
	return palette.Dominant(img, a.Colors)
}

type validateBrandArgs struct {
	imageArgs
	BrandColors []string `json:"brandColors"`
	Tolerance   float64  `json:"tolerance"`
	Colors      int      `json:"colors"`
}

func (s *Server) handleValidateBrandColors(args json.RawMessage) (interface{}, error) {
	var a validateBrandArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := a.decode()
	if err != nil {
		return nil, err
	}
	return palette.ValidateBrand(img, a.BrandColors, a.Tolerance, a.Colors)
}

type generateTextureArgs struct {
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Kind    string   `json:"kind"`
	Octaves int      `json:"octaves"`
	Points  int      `json:"points"`
	Seed    int64    `json:"seed"`
	Palette []string `json:"palette"`
}

func (s *Server) handleGenerateTexture(args json.RawMessage) (interface{}, error) {
	var a generateTextureArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return texture.Generate(texture.Options{
		Width:   a.Width,
		Height:  a.Height,
		Kind:    a.Kind,
		Octaves: a.Octaves,
		Points:  a.Points,
		Seed:    a.Seed,
		Palette: a.Palette,
	})
}

// === Structural Extraction Handlers ===

type detectLogoArgs struct {
	imageArgs
	LogoDataURL string `json:"logoDataUrl"`
}

func (s *Server) handleDetectLogo(args json.RawMessage) (interface{}, error) {
	var a detectLogoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	target, err := a.decode()
	if err != nil {
		return nil, err
	}
	if a.LogoDataURL == "" {
		return nil, fmt.Errorf("%w: missing logo data", imaging.ErrInvalidInput)
	}
	reference, err := imaging.Decode(a.LogoDataURL)
	if err != nil {
		return nil, err
	}
	return logodetect.Detect(reference, target)
}

type extractTextArgs struct {
	imageArgs
	Language string      `json:"language"`
	Region   *ocr.Bounds `json:"region"`
}

func (s *Server) handleExtractText(args json.RawMessage) (interface{}, error) {
	var a extractTextArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := a.decode()
	if err != nil {
		return nil, err
	}
	return ocr.ExtractWords(img, ocr.Options{Language: a.Language, Region: a.Region})
}

func (s *Server) handleDigitizeBarChart(args json.RawMessage) (interface{}, error) {
	var a imageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := a.decode()
	if err != nil {
		return nil, err
	}
	return chart.DigitizeBars(img), nil
}

type digitizeLinesArgs struct {
	imageArgs
	MaxDy     int     `json:"maxDy"`
	HueWeight float64 `json:"hueWeight"`
}

func (s *Server) handleDigitizeLineGraph(args json.RawMessage) (interface{}, error) {
	var a digitizeLinesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := a.decode()
	if err != nil {
		return nil, err
	}
	return chart.DigitizeLines(img, chart.LineOptions{
		MaxDY:     a.MaxDy,
		HueWeight: a.HueWeight,
	}), nil
}
