package placement

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/slidekit/visioncv/imaging"
)

// cornerBusyImage is flat except for a noisy square in the top-left corner.
func cornerBusyImage(width, height, busySize int) *imaging.Image {
	rng := rand.New(rand.NewSource(11))
	img := &imaging.Image{Width: width, Height: height, Pix: make([]uint8, width*height*3)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(210)
			if x < busySize && y < busySize {
				v = uint8(rng.Intn(256))
			}
			i := (y*width + x) * 3
			img.Pix[i], img.Pix[i+1], img.Pix[i+2] = v, v, v
		}
	}
	return img
}

func TestSuggestPlacementsRejectsUnknownRule(t *testing.T) {
	img := cornerBusyImage(320, 180, 80)
	_, err := SuggestPlacements(img, ScoreOptions{Rules: []string{"rule_of_fifths"}})
	if !errors.Is(err, imaging.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSuggestPlacementsRejectsUnknownPreference(t *testing.T) {
	img := cornerBusyImage(320, 180, 80)
	_, err := SuggestPlacements(img, ScoreOptions{Preference: "toward_the_light"})
	if !errors.Is(err, imaging.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSuggestPlacementsInvariants(t *testing.T) {
	img := cornerBusyImage(320, 180, 80)
	result, err := SuggestPlacements(img, ScoreOptions{})
	if err != nil {
		t.Fatalf("SuggestPlacements failed: %v", err)
	}
	if result.Count != len(result.Candidates) {
		t.Errorf("Count = %d, candidates = %d", result.Count, len(result.Candidates))
	}
	if result.Count == 0 {
		t.Fatal("expected candidates on a mostly flat image")
	}
	if result.Count > 10 {
		t.Errorf("Count = %d, want at most 10", result.Count)
	}

	for i, c := range result.Candidates {
		if c.Rect.X < 0 || c.Rect.Y < 0 ||
			c.Rect.X+c.Rect.Width > img.Width || c.Rect.Y+c.Rect.Height > img.Height {
			t.Errorf("candidate %d out of bounds: %+v", i, c.Rect)
		}
		if c.MeanSaliency < 0 || c.MeanSaliency > 1 {
			t.Errorf("candidate %d mean saliency %f outside [0,1]", i, c.MeanSaliency)
		}
		for rule, score := range c.RuleScores {
			if score < 0 || score > 1 {
				t.Errorf("candidate %d rule %q score %f outside [0,1]", i, rule, score)
			}
		}
		if i > 0 {
			prev := result.Candidates[i-1]
			if prev.Score < c.Score {
				t.Errorf("candidates not sorted by score: %f before %f", prev.Score, c.Score)
			}
			if prev.Score == c.Score && prev.Area < c.Area {
				t.Errorf("score ties not broken by area: %d before %d", prev.Area, c.Area)
			}
		}
	}
}

func TestSuggestPlacementsRuleScoresCoverAllRules(t *testing.T) {
	img := cornerBusyImage(320, 180, 80)
	result, err := SuggestPlacements(img, ScoreOptions{})
	if err != nil {
		t.Fatalf("SuggestPlacements failed: %v", err)
	}
	for _, rule := range []string{RuleThirds, RuleGoldenRatio, RuleFibonacciSpiral, RuleDiagonals} {
		if _, ok := result.Candidates[0].RuleScores[rule]; !ok {
			t.Errorf("rule %q missing from rule scores", rule)
		}
	}
}

func TestSuggestPlacementsAvoidsSalientCorner(t *testing.T) {
	img := cornerBusyImage(320, 180, 80)
	result, err := SuggestPlacements(img, ScoreOptions{Preference: PreferAway})
	if err != nil {
		t.Fatalf("SuggestPlacements failed: %v", err)
	}
	if result.Count == 0 {
		t.Fatal("expected candidates")
	}

	busy := Rect{X: 0, Y: 0, Width: 80, Height: 80}
	best := result.Candidates[0]
	if best.Rect.Intersects(busy) {
		// Overlap is tolerable only if the salient part barely contributes.
		if best.MeanSaliency > 0.3 {
			t.Errorf("top candidate %+v sits on the salient corner (mean saliency %f)", best.Rect, best.MeanSaliency)
		}
	}
}

func TestSuggestPlacementsSingleRuleMatchesRuleScore(t *testing.T) {
	img := cornerBusyImage(320, 180, 80)
	result, err := SuggestPlacements(img, ScoreOptions{Rules: []string{RuleThirds}})
	if err != nil {
		t.Fatalf("SuggestPlacements failed: %v", err)
	}
	if result.Count == 0 {
		t.Fatal("expected candidates")
	}
}

func TestCombineRules(t *testing.T) {
	scores := map[string]float64{
		RuleThirds:      0.8,
		RuleGoldenRatio: 0.4,
		RuleDiagonals:   0.6,
	}
	if got := combineRules(scores, nil); got != 0.8 {
		t.Errorf("combined mode = %f, want max 0.8", got)
	}
	if got := combineRules(scores, []string{RuleGoldenRatio}); got != 0.4 {
		t.Errorf("single rule = %f, want 0.4", got)
	}
	if got := combineRules(scores, []string{RuleThirds, RuleGoldenRatio}); math.Abs(got-0.6) > 1e-9 {
		t.Errorf("mean of two rules = %f, want 0.6", got)
	}
}

func TestRulePointsCounts(t *testing.T) {
	cases := []struct {
		rule string
		want int
	}{
		{RuleThirds, 4},
		{RuleGoldenRatio, 4},
		{RuleFibonacciSpiral, 4},
		{RuleDiagonals, 6},
	}
	for _, tc := range cases {
		pts := rulePoints(tc.rule, 320, 180)
		if len(pts) != tc.want {
			t.Errorf("rulePoints(%q) returned %d points, want %d", tc.rule, len(pts), tc.want)
		}
		for _, p := range pts {
			if p[0] < 0 || p[0] > 320 || p[1] < 0 || p[1] > 180 {
				t.Errorf("rule %q point %v outside the frame", tc.rule, p)
			}
		}
	}
}
