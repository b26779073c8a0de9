// Package compat scores how well foods combine. Scoring is delegated to a
// PairScorer, normally a remote model, with HeuristicScorer as the
// rule-based fallback.
package compat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vaidya/ahara/internal/incompat"
	"github.com/vaidya/ahara/internal/models"
)

//go:generate go tool mockgen -source=compat.go -destination=compat_mock_test.go -package=compat

// PairScorer returns a compatibility score in [0,1] for two foods. Scores
// above CompatibleThreshold mean the foods combine well. Implementations
// wrap models.ErrScorerUnavailable when no model can be reached.
type PairScorer interface {
	ScorePair(ctx context.Context, a, b string) (float64, error)
}

const (
	// CompatibleThreshold separates compatible from incompatible pairs.
	CompatibleThreshold = 0.5

	// DefaultScore is the heuristic score for a pair with no known conflict.
	DefaultScore = 0.7

	maxSuggestions = 3
)

var severityPenalty = map[models.Severity]float64{
	models.SeverityLow:    0.4,
	models.SeverityMedium: 0.6,
	models.SeverityHigh:   0.8,
}

// HeuristicScorer derives a pair score from the incompatibility rules.
type HeuristicScorer struct{}

// ScorePair implements PairScorer.
func (HeuristicScorer) ScorePair(_ context.Context, a, b string) (float64, error) {
	r := incompat.CheckPair(a, b)
	return DefaultScore * (1 - severityPenalty[r.Severity]), nil
}

// PairAdvice tells the patient how to handle a pair.
type PairAdvice struct {
	Action string `json:"action"`
	Timing string `json:"timing"`
	Note   string `json:"note"`
}

// PairResult is the compatibility verdict for two foods.
type PairResult struct {
	FoodA          string     `json:"food_a"`
	FoodB          string     `json:"food_b"`
	Compatible     bool       `json:"compatible"`
	Score          float64    `json:"score"`
	Explanation    string     `json:"explanation"`
	Recommendation PairAdvice `json:"recommendations"`
}

// Conflict is an incompatible pair found in a meal.
type Conflict struct {
	FoodA       string  `json:"food1"`
	FoodB       string  `json:"food2"`
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

// MealResult is the compatibility verdict for a whole meal.
type MealResult struct {
	Compatible  bool       `json:"compatible"`
	Score       float64    `json:"score"`
	Conflicts   []Conflict `json:"conflicts"`
	Status      string     `json:"status"`
	Message     string     `json:"message"`
	Suggestions []string   `json:"suggestions,omitempty"`
}

// Checker scores pairs and meals with a PairScorer, falling back to
// HeuristicScorer when the scorer is missing or fails.
type Checker struct {
	scorer PairScorer
	logger *slog.Logger
}

// NewChecker creates a Checker. A nil scorer uses HeuristicScorer; a nil
// logger uses slog.Default().
func NewChecker(scorer PairScorer, logger *slog.Logger) *Checker {
	if scorer == nil {
		scorer = HeuristicScorer{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{scorer: scorer, logger: logger}
}

// Score returns the pair score, using the heuristic if the scorer fails.
func (c *Checker) Score(ctx context.Context, a, b string) float64 {
	score, err := c.scorer.ScorePair(ctx, a, b)
	if err == nil && score >= 0 && score <= 1 {
		return score
	}
	if err == nil {
		err = fmt.Errorf("score %v out of range", score)
	}
	c.logger.Warn("pair scorer failed, using heuristic", "scorer", "compat", "food_a", a, "food_b", b, "error", err)
	score, _ = HeuristicScorer{}.ScorePair(ctx, a, b)
	return score
}

// CheckPair explains the compatibility of two foods.
func (c *Checker) CheckPair(ctx context.Context, a, b string) PairResult {
	score := c.Score(ctx, a, b)
	compatible := score > CompatibleThreshold
	return PairResult{
		FoodA:          a,
		FoodB:          b,
		Compatible:     compatible,
		Score:          score,
		Explanation:    explain(a, b, score),
		Recommendation: advise(compatible),
	}
}

// CheckMeal averages the score over every unordered pair. A meal with fewer
// than two foods is fully compatible.
func (c *Checker) CheckMeal(ctx context.Context, foods []string) MealResult {
	res := MealResult{Compatible: true, Score: 1, Conflicts: []Conflict{}}
	if len(foods) < 2 {
		res.Status, res.Message = "Good", "All foods in the meal are compatible"
		return res
	}

	var total float64
	pairs := 0
	for i := 0; i < len(foods); i++ {
		for j := i + 1; j < len(foods); j++ {
			pr := c.CheckPair(ctx, foods[i], foods[j])
			total += pr.Score
			pairs++
			if !pr.Compatible {
				res.Conflicts = append(res.Conflicts, Conflict{
					FoodA:       foods[i],
					FoodB:       foods[j],
					Score:       pr.Score,
					Explanation: pr.Explanation,
				})
			}
		}
	}
	res.Score = total / float64(pairs)
	res.Compatible = len(res.Conflicts) == 0

	if res.Compatible {
		res.Status, res.Message = "Good", "All foods in the meal are compatible"
		return res
	}
	res.Status = "Issues found"
	res.Message = fmt.Sprintf("Found %d compatibility conflicts", len(res.Conflicts))
	for _, cf := range res.Conflicts[:min(len(res.Conflicts), maxSuggestions)] {
		res.Suggestions = append(res.Suggestions, fmt.Sprintf("Consider removing %s or %s", cf.FoodA, cf.FoodB))
	}
	return res
}

func explain(a, b string, score float64) string {
	switch {
	case score > 0.8:
		return fmt.Sprintf("%s and %s are highly compatible and work well together", a, b)
	case score > 0.6:
		return fmt.Sprintf("%s and %s are moderately compatible", a, b)
	case score > 0.4:
		return fmt.Sprintf("%s and %s have some compatibility issues", a, b)
	default:
		return fmt.Sprintf("%s and %s are incompatible and should not be eaten together", a, b)
	}
}

func advise(compatible bool) PairAdvice {
	if compatible {
		return PairAdvice{
			Action: "Safe to combine",
			Timing: "Can be eaten together",
			Note:   "These foods complement each other well",
		}
	}
	return PairAdvice{
		Action: "Avoid combining",
		Timing: "Eat at least 2-3 hours apart",
		Note:   "These foods may cause digestive issues when combined",
	}
}
