// Package compliance folds the individual scorers into meal, chart and
// patient level compliance figures.
package compliance

import (
	"context"
	"log/slog"
	"slices"

	"github.com/vaidya/ahara/internal/agni"
	"github.com/vaidya/ahara/internal/compat"
	"github.com/vaidya/ahara/internal/guna"
	"github.com/vaidya/ahara/internal/models"
	"github.com/vaidya/ahara/internal/nutrition"
	"github.com/vaidya/ahara/internal/rasa"
)

// DefaultWorkers bounds how many meals ScoreChart scores at once.
const DefaultWorkers = 4

// Patient is everything about the patient that scoring depends on. A zero
// Patient is valid: default demographics, no dosha data and unknown agni.
type Patient struct {
	Profile models.PatientProfile `json:"profile"`
	Dosha   models.DoshaScores    `json:"dosha"`
	Agni    *models.AgniState     `json:"agni,omitempty"`
}

// MealResult is a scored meal with the analyses behind it.
type MealResult struct {
	Index         int                       `json:"index"`
	Type          models.MealType           `json:"type"`
	Compliance    models.ComplianceResult   `json:"compliance"`
	Compatibility compat.MealResult         `json:"compatibility"`
	Taste         rasa.Recommendation       `json:"taste"`
	Thermal       guna.MealAnalysis         `json:"thermal"`
	Nutrients     nutrition.BalanceAnalysis `json:"nutrients"`
	AgniImpact    agni.MealImpact           `json:"agni_impact"`
}

// Scorer computes compliance. It is safe for concurrent use.
type Scorer struct {
	checker *compat.Checker
	workers int
	seed    int64
	logger  *slog.Logger
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithWorkers bounds parallel meal scoring in ScoreChart. Values below one
// are ignored.
func WithWorkers(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithBootstrapSeed fixes the seed of the chart confidence interval.
func WithBootstrapSeed(seed int64) Option {
	return func(s *Scorer) {
		s.seed = seed
	}
}

// NewScorer creates a Scorer. A nil checker uses the heuristic pair scorer.
func NewScorer(checker *compat.Checker, logger *slog.Logger, opts ...Option) *Scorer {
	if logger == nil {
		logger = slog.Default()
	}
	if checker == nil {
		checker = compat.NewChecker(nil, logger)
	}
	s := &Scorer{checker: checker, workers: DefaultWorkers, seed: -1, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScoreMeal scores one meal. The overall score starts at 0.5 and averages
// in the compatibility score and then the taste balance score, so
// compatibility carries more weight. The thermal, nutrient and agni
// sub-scores are reported but not blended.
func (s *Scorer) ScoreMeal(ctx context.Context, meal models.Meal, p Patient) (MealResult, error) {
	if err := meal.Validate(0); err != nil {
		return MealResult{}, err
	}
	return s.scoreMeal(ctx, 0, meal, p), nil
}

// scoreMeal expects a validated meal.
func (s *Scorer) scoreMeal(ctx context.Context, index int, meal models.Meal, p Patient) MealResult {
	mealType, _ := models.ParseMealType(string(meal.Type))

	compatibility := s.checker.CheckMeal(ctx, models.FoodNames(meal.Foods))
	taste := rasa.Recommend(p.Dosha.Normalize(), rasa.MealTastes(meal.Foods))
	thermal, _ := guna.AnalyzeMeal(meal.Foods)
	nutrients := mealNutrients(mealType, meal.Foods, p.Profile)
	features, _ := agni.MealFeatures(meal.Foods)
	impact := agni.PredictMealImpact(features, p.Agni.CurrentLevel())

	score := models.NeutralScore
	score = (score + compatibility.Score) / 2
	score = (score + taste.BalanceScore) / 2

	balance := macroBalance(nutrients)

	return MealResult{
		Index: index,
		Type:  mealType,
		Compliance: models.ComplianceResult{
			OverallScore: score,
			SubScores: map[models.SubScore]float64{
				models.SubScoreCompatibility: compatibility.Score,
				models.SubScoreTaste:         taste.BalanceScore,
				models.SubScoreThermal:       thermal.BalanceScore,
				models.SubScoreNutrient:      nutrients.Overall,
				models.SubScoreAgni:          impact.ImpactScore,
			},
			ImprovementAreas: IdentifyImprovementAreas(map[models.MealType]float64{mealType: score}, balance, score),
			Recommendations:  mealRecommendations(compatibility, taste, thermal, nutrients, impact),
		},
		Compatibility: compatibility,
		Taste:         taste,
		Thermal:       thermal,
		Nutrients:     nutrients,
		AgniImpact:    impact,
	}
}

// mealNutrients compares a meal with its share of the daily requirement.
func mealNutrients(t models.MealType, foods []models.FoodItem, profile models.PatientProfile) nutrition.BalanceAnalysis {
	total, _ := nutrition.AggregateMeal(foods)
	target := nutrition.DailyRequirement(profile).Scaled(nutrition.MealShare(t))
	return nutrition.AnalyzeBalance(total, target)
}

func mealRecommendations(
	c compat.MealResult,
	taste rasa.Recommendation,
	thermal guna.MealAnalysis,
	nutrients nutrition.BalanceAnalysis,
	impact agni.MealImpact,
) []string {
	var recs []string
	recs = append(recs, c.Suggestions...)
	if taste.Priority != models.PriorityLow {
		recs = append(recs, taste.Advice)
	}
	if thermal.Recommendation.Status != guna.StatusBalanced {
		recs = append(recs, thermal.Recommendation.Message)
	}
	recs = append(recs, nutrients.Recommendations...)
	if impact.ImpactLevel == agni.LevelNegative || impact.ImpactLevel == agni.LevelHighNegative {
		recs = append(recs, impact.Recommendations...)
	}
	return unique(recs)
}

// unique drops empty and repeated strings, keeping first occurrences.
func unique(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
