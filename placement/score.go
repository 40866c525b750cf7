package placement

import (
	"fmt"
	"math"
	"sort"

	"github.com/slidekit/visioncv/imaging"
	"github.com/slidekit/visioncv/saliency"
)

const invPhi = 0.6180339887498949 // 1/φ

// Composition rule names accepted in ScoreOptions.Rules.
const (
	RuleThirds          = "thirds"
	RuleGoldenRatio     = "golden_ratio"
	RuleFibonacciSpiral = "fibonacci_spiral"
	RuleDiagonals       = "diagonals"
)

var allRules = []string{RuleThirds, RuleGoldenRatio, RuleFibonacciSpiral, RuleDiagonals}

// Saliency preferences.
const (
	// PreferAway rewards regions with low mean saliency (default).
	PreferAway = "away_from_salient"
	// PreferNear rewards regions with high mean saliency.
	PreferNear = "near_salient"
)

// Weights blends the four scoring terms. Fields must sum to roughly 1 for
// scores to stay comparable across calls, but this is not enforced.
type Weights struct {
	Area         float64 `json:"area"`
	Composition  float64 `json:"composition"`
	Saliency     float64 `json:"saliency"`
	VisualWeight float64 `json:"visual_weight"`
}

// DefaultWeights is the standard term blend.
var DefaultWeights = Weights{Area: 0.3, Composition: 0.4, Saliency: 0.2, VisualWeight: 0.1}

// ScoreOptions tunes placement scoring.
type ScoreOptions struct {
	// Rules selects the composition rules to score against. Empty means
	// combined mode: every rule is evaluated and the best one counts.
	// A single name scores only that rule; several names are averaged.
	Rules []string

	// Preference is PreferAway (default) or PreferNear.
	Preference string

	// Weights overrides DefaultWeights when any field is non-zero.
	Weights Weights

	// Regions overrides the empty-region search options.
	Regions RegionOptions

	// MaxCandidates caps the returned list. Default 10.
	MaxCandidates int
}

// Candidate is a scored placement suggestion.
//
// Candidates are returned sorted by Score descending; ties are broken by
// larger area first.
type Candidate struct {
	Rect         Rect               `json:"rect"`
	Area         int                `json:"area"`
	Score        float64            `json:"score"`
	RuleScores   map[string]float64 `json:"rule_scores"`
	MeanSaliency float64            `json:"mean_saliency"`
	VisualWeight float64            `json:"visual_weight"`
}

// PlacementsResult lists scored candidates, best first.
type PlacementsResult struct {
	Candidates []Candidate `json:"candidates"`
	Count      int         `json:"count"`
}

// SuggestPlacements detects empty regions and scores each against the
// enabled composition rules, mean saliency and a visual-weight estimate.
//
// Per region, the composition score is the closeness (1 - distance to the
// nearest rule point, normalized by the image diagonal) of the region
// centroid. The final score is
//
//	wA*areaFraction + wC*composition + wS*saliencyTerm + wV*(1-visualWeight)
//
// with the saliency term flipped under PreferAway. Returns an error
// wrapping imaging.ErrInvalidInput for unknown rule or preference names.
func SuggestPlacements(img *imaging.Image, opts ScoreOptions) (*PlacementsResult, error) {
	for _, r := range opts.Rules {
		if !validRule(r) {
			return nil, fmt.Errorf("%w: unknown composition rule %q", imaging.ErrInvalidInput, r)
		}
	}
	switch opts.Preference {
	case "", PreferAway, PreferNear:
	default:
		return nil, fmt.Errorf("%w: unknown saliency preference %q", imaging.ErrInvalidInput, opts.Preference)
	}

	weights := opts.Weights
	if weights == (Weights{}) {
		weights = DefaultWeights
	}
	maxCandidates := opts.MaxCandidates
	if maxCandidates <= 0 {
		maxCandidates = 10
	}

	regions := EmptyRegions(img, opts.Regions)
	salGrid := saliency.GridFromResult(saliency.Gradient(img))
	luma := img.Luma()
	diag := math.Hypot(float64(img.Width), float64(img.Height))
	imgArea := float64(img.Width * img.Height)

	candidates := make([]Candidate, 0, len(regions.Regions))
	for _, region := range regions.Regions {
		r := region.Rect
		cx := float64(r.X) + float64(r.Width)/2
		cy := float64(r.Y) + float64(r.Height)/2

		ruleScores := make(map[string]float64, len(allRules))
		for _, rule := range allRules {
			ruleScores[rule] = ruleCloseness(rule, cx, cy, img.Width, img.Height, diag)
		}
		composition := combineRules(ruleScores, opts.Rules)

		meanSal := meanSaliency(salGrid, r, img.Width, img.Height)
		salTerm := meanSal
		if opts.Preference == "" || opts.Preference == PreferAway {
			salTerm = 1 - meanSal
		}

		areaFrac := float64(r.Area()) / imgArea
		vw := visualWeight(luma, r, areaFrac)

		score := weights.Area*areaFrac +
			weights.Composition*composition +
			weights.Saliency*salTerm +
			weights.VisualWeight*(1-vw)

		candidates = append(candidates, Candidate{
			Rect:         r,
			Area:         r.Area(),
			Score:        math.Round(score*10000) / 10000,
			RuleScores:   roundScores(ruleScores),
			MeanSaliency: math.Round(meanSal*10000) / 10000,
			VisualWeight: math.Round(vw*10000) / 10000,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Area > candidates[j].Area
	})
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	return &PlacementsResult{Candidates: candidates, Count: len(candidates)}, nil
}

func validRule(name string) bool {
	for _, r := range allRules {
		if r == name {
			return true
		}
	}
	return false
}

// combineRules implements the three scoring modes: combined (max over all
// rules), single rule, or the mean of several named rules.
func combineRules(scores map[string]float64, rules []string) float64 {
	if len(rules) == 0 {
		best := 0.0
		for _, s := range scores {
			if s > best {
				best = s
			}
		}
		return best
	}
	if len(rules) == 1 {
		return scores[rules[0]]
	}
	var sum float64
	for _, r := range rules {
		sum += scores[r]
	}
	return sum / float64(len(rules))
}

// ruleCloseness returns 1 - d/diag where d is the distance from (cx, cy)
// to the nearest point of the rule.
func ruleCloseness(rule string, cx, cy float64, w, h int, diag float64) float64 {
	points := rulePoints(rule, float64(w), float64(h))
	best := math.MaxFloat64
	for _, p := range points {
		d := math.Hypot(cx-p[0], cy-p[1])
		if d < best {
			best = d
		}
	}
	score := 1 - best/diag
	if score < 0 {
		score = 0
	}
	return score
}

func rulePoints(rule string, w, h float64) [][2]float64 {
	switch rule {
	case RuleThirds:
		return [][2]float64{
			{w / 3, h / 3}, {2 * w / 3, h / 3},
			{w / 3, 2 * h / 3}, {2 * w / 3, 2 * h / 3},
		}
	case RuleGoldenRatio:
		xs := []float64{w * invPhi, w * (1 - invPhi)}
		ys := []float64{h * invPhi, h * (1 - invPhi)}
		var pts [][2]float64
		for _, x := range xs {
			for _, y := range ys {
				pts = append(pts, [2]float64{x, y})
			}
		}
		return pts
	case RuleFibonacciSpiral:
		// One focal point per quadrant, offset 1/φ into the quadrant.
		xs := []float64{w / 2 * invPhi, w - w/2*invPhi}
		ys := []float64{h / 2 * invPhi, h - h/2*invPhi}
		var pts [][2]float64
		for _, x := range xs {
			for _, y := range ys {
				pts = append(pts, [2]float64{x, y})
			}
		}
		return pts
	case RuleDiagonals:
		var pts [][2]float64
		for _, t := range []float64{0.25, 0.5, 0.75} {
			pts = append(pts, [2]float64{t * w, t * h})        // main diagonal
			pts = append(pts, [2]float64{(1 - t) * w, t * h}) // anti-diagonal
		}
		return pts
	}
	return nil
}

// meanSaliency averages the saliency grid cells covered by a pixel rect.
func meanSaliency(sal *imaging.Grid, r Rect, imgW, imgH int) float64 {
	gx0 := r.X * sal.Cols / imgW
	gy0 := r.Y * sal.Rows / imgH
	gx1 := (r.X + r.Width) * sal.Cols / imgW
	gy1 := (r.Y + r.Height) * sal.Rows / imgH
	if gx1 <= gx0 {
		gx1 = gx0 + 1
	}
	if gy1 <= gy0 {
		gy1 = gy0 + 1
	}
	if gx1 > sal.Cols {
		gx1 = sal.Cols
	}
	if gy1 > sal.Rows {
		gy1 = sal.Rows
	}

	var sum float64
	n := 0
	for y := gy0; y < gy1; y++ {
		for x := gx0; x < gx1; x++ {
			sum += sal.At(x, y)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// visualWeight estimates how heavy a region looks:
// 0.4*(1-meanIntensity) + 0.4*stdIntensity + 0.2*sqrt(areaFraction).
// Dark, busy, large regions weigh more; lower weight is better for
// placement, so callers invert before combining.
func visualWeight(luma *imaging.Grid, r Rect, areaFrac float64) float64 {
	var sum, sumSq float64
	n := 0
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			v := luma.At(x, y) / 255.0
			sum += v
			sumSq += v * v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	mean := sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	if variance < 0 {
		variance = 0
	}
	std := math.Sqrt(variance)

	return 0.4*(1-mean) + 0.4*std + 0.2*math.Sqrt(areaFrac)
}

func roundScores(scores map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(scores))
	for k, v := range scores {
		out[k] = math.Round(v*10000) / 10000
	}
	return out
}
