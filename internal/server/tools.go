package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// imageProperty is the canonical image argument every tool accepts.
func imageProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Image as a data:<mime>;base64,<payload> string (or raw base64)",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Quality Metrics
		{
			Name:        "analyze_blur",
			Description: "Score image sharpness via Laplacian variance. Lower scores mean a blurrier image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"imageDataUrl": imageProperty(),
				},
				"required": []string{"imageDataUrl"},
			},
		},
		{
			Name:        "analyze_noise",
			Description: "Estimate image noise from the high-frequency residual after Gaussian blur. Returns a 0-1 score.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"imageDataUrl": imageProperty(),
				},
				"required": []string{"imageDataUrl"},
			},
		},
		{
			Name:        "analyze_contrast",
			Description: "Compute global luma statistics and recommend whether a darkening overlay is needed for legible text.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"imageDataUrl": imageProperty(),
				},
				"required": []string{"imageDataUrl"},
			},
		},
		{
			Name:        "check_wcag_contrast",
			Description: "Compute the WCAG contrast ratio between two hex colors and the AA/AAA pass results.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"foreground": map[string]interface{}{
						"type":        "string",
						"description": "Foreground color as #RRGGBB",
					},
					"background": map[string]interface{}{
						"type":        "string",
						"description": "Background color as #RRGGBB",
					},
					"fontSizePx": map[string]interface{}{
						"type":        "number",
						"description": "Text size in pixels; 24px and larger counts as large text. Default 16",
						"default":     16,
					},
				},
				"required": []string{"foreground", "background"},
			},
		},

		// Saliency
		{
			Name:        "saliency_map",
			Description: "Compute a normalized saliency heatmap using gradient magnitude or the spectral-residual method.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"screenshotDataUrl": imageProperty(),
					"method": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"gradient", "spectral_residual"},
						"description": "Saliency estimator. Default gradient",
						"default":     "gradient",
					},
					"gridCols": map[string]interface{}{
						"type":        "integer",
						"description": "Optional heatmap width for spectral_residual output",
					},
					"gridRows": map[string]interface{}{
						"type":        "integer",
						"description": "Optional heatmap height for spectral_residual output",
					},
				},
				"required": []string{"screenshotDataUrl"},
			},
		},

		// Placement
		{
			Name:        "find_empty_regions",
			Description: "Detect maximal low-edge-energy rectangles suitable for placing new content, largest first.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"screenshotDataUrl": imageProperty(),
					"minAreaFraction": map[string]interface{}{
						"type":        "number",
						"description": "Minimum region area as a fraction of image area. Default 0.02",
					},
				},
				"required": []string{"screenshotDataUrl"},
			},
		},
		{
			Name:        "suggest_placements",
			Description: "Score empty regions against composition rules (thirds, golden ratio, Fibonacci spiral, diagonals), saliency and visual weight; returns the best candidates first.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"screenshotDataUrl": imageProperty(),
					"rules": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Composition rules to score. Empty means combined mode (best rule wins)",
					},
					"preference": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"away_from_salient", "near_salient"},
						"description": "Whether placements should avoid or seek salient areas. Default away_from_salient",
					},
					"weights": map[string]interface{}{
						"type":        "object",
						"description": "Optional override of the area/composition/saliency/visual_weight blend",
					},
				},
				"required": []string{"screenshotDataUrl"},
			},
		},

		// Color & Texture
		{
			Name:        "extract_palette",
			Description: "Extract the dominant color palette via median-cut quantization, sorted by coverage.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"imageDataUrl": imageProperty(),
					"colors": map[string]interface{}{
						"type":        "integer",
						"description": "Number of palette colors (1-16). Default 8",
						"default":     8,
					},
				},
				"required": []string{"imageDataUrl"},
			},
		},
		{
			Name:        "validate_brand_colors",
			Description: "Check how well the image palette covers a set of brand colors; reports coverage, missing brand colors and extra palette colors.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"imageDataUrl": imageProperty(),
					"brandColors": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Brand colors as #RRGGBB strings",
					},
					"tolerance": map[string]interface{}{
						"type":        "number",
						"description": "Maximum RGB distance for a match. Default 60",
						"default":     60,
					},
				},
				"required": []string{"imageDataUrl", "brandColors"},
			},
		},
		{
			Name:        "generate_texture",
			Description: "Synthesize a procedural background texture (fractal or cellular noise) colorized over a hex palette; returns base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width":  map[string]interface{}{"type": "integer"},
					"height": map[string]interface{}{"type": "integer"},
					"kind": map[string]interface{}{
						"type":    "string",
						"enum":    []string{"fractal", "cellular"},
						"default": "fractal",
					},
					"octaves": map[string]interface{}{
						"type":        "integer",
						"description": "Fractal octave count. Default 4",
					},
					"points": map[string]interface{}{
						"type":        "integer",
						"description": "Cellular seed point count. Default 24",
					},
					"palette": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "string"},
					},
					"seed": map[string]interface{}{"type": "integer"},
				},
				"required": []string{"width", "height"},
			},
		},

		// Structural Extraction
		{
			Name:        "detect_logo",
			Description: "Locate a reference logo inside a target image using ORB features and a RANSAC homography. Requires the OpenCV backend.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"imageDataUrl": imageProperty(),
					"logoDataUrl":  imageProperty(),
				},
				"required": []string{"imageDataUrl", "logoDataUrl"},
			},
		},
		{
			Name:        "extract_text",
			Description: "Extract word-level text with bounding boxes and confidences. Requires the Tesseract backend.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"imageDataUrl": imageProperty(),
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code. Default eng",
						"default":     "eng",
					},
					"region": map[string]interface{}{
						"type":        "object",
						"description": "Optional {x1,y1,x2,y2} pixel bounds restricting recognition",
					},
				},
				"required": []string{"imageDataUrl"},
			},
		},
		{
			Name:        "digitize_bar_chart",
			Description: "Recover bar positions and relative heights from a rendered bar chart.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"imageDataUrl": imageProperty(),
				},
				"required": []string{"imageDataUrl"},
			},
		},
		{
			Name:        "digitize_line_graph",
			Description: "Recover data series from a rendered line graph: axis detection, plot-area binarization and track following.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"imageDataUrl": imageProperty(),
					"maxDy": map[string]interface{}{
						"type":        "integer",
						"description": "Largest per-column vertical jump a track may take",
					},
					"hueWeight": map[string]interface{}{
						"type":        "number",
						"description": "Weight of the hue term in track continuation. Default 0.5",
					},
				},
				"required": []string{"imageDataUrl"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
