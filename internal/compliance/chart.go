package compliance

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vaidya/ahara/internal/models"
	"github.com/vaidya/ahara/internal/nutrition"
	"github.com/vaidya/ahara/internal/statistics"
)

// Thresholds for improvement areas.
const (
	MealComplianceThreshold  = 0.6
	NutrientBalanceThreshold = 0.7
	AdherenceThreshold       = 0.6
)

// ChartConfidenceLevel is the level of ChartResult.Interval.
const ChartConfidenceLevel = 0.95

// balancedNutrients are the macronutrients improvement areas report on.
var balancedNutrients = []models.Macronutrient{models.NutrientProtein, models.NutrientCarbs, models.NutrientFat}

var (
	idealCalorieShare = map[models.Macronutrient]float64{
		models.NutrientProtein: 0.15,
		models.NutrientCarbs:   0.55,
		models.NutrientFat:     0.30,
	}
	kcalPerGram = map[models.Macronutrient]float64{
		models.NutrientProtein: 4,
		models.NutrientCarbs:   4,
		models.NutrientFat:     9,
	}
)

// ChartResult is a scored diet chart.
type ChartResult struct {
	Compliance       models.ComplianceResult          `json:"compliance"`
	Meals            []MealResult                     `json:"meals"`
	MealCompliance   map[models.MealType]float64      `json:"meal_compliance"`
	// NutritionBalance compares the chart's macronutrient totals with the
	// summed meal targets, capped at 1.
	NutritionBalance map[models.Macronutrient]float64 `json:"nutrition_balance"`
	Adherence        float64                          `json:"ayurvedic_adherence"`
	Interval         statistics.ConfidenceInterval    `json:"confidence_interval"`
}

// ScoreChart scores every meal and averages the results. All meals are
// validated before any is scored. A chart with no meals scores 0.5; dosha
// scores that are all zero are scored as a uniform split.
func (s *Scorer) ScoreChart(ctx context.Context, meals []models.Meal, p Patient) (ChartResult, error) {
	for i, m := range meals {
		if err := m.Validate(i); err != nil {
			return ChartResult{}, err
		}
	}
	if err := p.Dosha.Validate(); err != nil {
		return ChartResult{}, err
	}
	if len(meals) == 0 {
		s.logger.Debug("chart has no meals to score")
		return neutralChart(), nil
	}

	results := make([]MealResult, len(meals))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, m := range meals {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.scoreMeal(gctx, i, m, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ChartResult{}, fmt.Errorf("scoring chart: %w", err)
	}

	return s.summarize(results), nil
}

func (s *Scorer) summarize(results []MealResult) ChartResult {
	scores := make([]float64, len(results))
	subs := make(map[models.SubScore][]float64, len(models.SubScores))
	byType := make(map[models.MealType][]float64)
	var total, required models.NutrientProfile
	var recs []string
	for i, r := range results {
		scores[i] = r.Compliance.OverallScore
		for _, k := range models.SubScores {
			subs[k] = append(subs[k], r.Compliance.SubScores[k])
		}
		byType[r.Type] = append(byType[r.Type], r.Compliance.OverallScore)
		total.Add(r.Nutrients.Totals)
		required.Add(r.Nutrients.Requirements)
		recs = append(recs, r.Compliance.Recommendations...)
	}

	mealCompliance := make(map[models.MealType]float64, len(byType))
	for t, v := range byType {
		mealCompliance[t] = statistics.Mean(v)
	}
	subScores := make(map[models.SubScore]float64, len(models.SubScores))
	for k, v := range subs {
		subScores[k] = statistics.Mean(v)
	}

	overall := statistics.Mean(scores)
	balance := macroBalance(nutrition.AnalyzeBalance(total, required))
	return ChartResult{
		Compliance: models.ComplianceResult{
			OverallScore:     overall,
			SubScores:        subScores,
			ImprovementAreas: IdentifyImprovementAreas(mealCompliance, balance, overall),
			Recommendations:  unique(recs),
		},
		Meals:            results,
		MealCompliance:   mealCompliance,
		NutritionBalance: balance,
		Adherence:        overall,
		Interval:         statistics.BootstrapCIWithSeed(scores, ChartConfidenceLevel, s.seed),
	}
}

func neutralChart() ChartResult {
	subScores := make(map[models.SubScore]float64, len(models.SubScores))
	for _, k := range models.SubScores {
		subScores[k] = models.NeutralScore
	}
	return ChartResult{
		Compliance: models.ComplianceResult{
			OverallScore:     models.NeutralScore,
			SubScores:        subScores,
			ImprovementAreas: []string{},
			Recommendations:  []string{},
		},
		Meals:            []MealResult{},
		MealCompliance:   map[models.MealType]float64{},
		NutritionBalance: map[models.Macronutrient]float64{},
		Adherence:        models.NeutralScore,
		Interval: statistics.ConfidenceInterval{
			Lower:           models.NeutralScore,
			Upper:           models.NeutralScore,
			Mean:            models.NeutralScore,
			ConfidenceLevel: ChartConfidenceLevel,
		},
	}
}

// IdentifyImprovementAreas lists, in order: meal types (breakfast, lunch,
// dinner, snack) whose compliance is below 0.6; protein, carbs and fat when
// their balance is below 0.7; and food combining when adherence is below
// 0.6. Meal types and nutrients missing from the maps are skipped.
func IdentifyImprovementAreas(mealCompliance map[models.MealType]float64, balance map[models.Macronutrient]float64, adherence float64) []string {
	areas := []string{}
	for _, t := range models.MealTypes {
		if v, ok := mealCompliance[t]; ok && v < MealComplianceThreshold {
			areas = append(areas, fmt.Sprintf("Improve %s compliance", t))
		}
	}
	for _, n := range balancedNutrients {
		if v, ok := balance[n]; ok && v < NutrientBalanceThreshold {
			areas = append(areas, fmt.Sprintf("Balance %s intake", n))
		}
	}
	if adherence < AdherenceThreshold {
		areas = append(areas, "Improve Ayurvedic food combining")
	}
	return areas
}

func macroBalance(a nutrition.BalanceAnalysis) map[models.Macronutrient]float64 {
	out := make(map[models.Macronutrient]float64, len(balancedNutrients))
	for _, n := range balancedNutrients {
		out[n] = a.Scores[n]
	}
	return out
}

// NutritionBalance scores the calorie share of protein, carbs and fat
// against ideal shares of 15%, 55% and 30%, capped at 1. Without calories
// every score is 0.5. Patient summaries use it where no meal targets exist.
func NutritionBalance(p models.NutrientProfile) map[models.Macronutrient]float64 {
	out := make(map[models.Macronutrient]float64, len(balancedNutrients))
	for _, n := range balancedNutrients {
		if p.Calories <= 0 {
			out[n] = models.NeutralScore
			continue
		}
		share := p.Get(n) * kcalPerGram[n] / p.Calories
		out[n] = min(share/idealCalorieShare[n], 1)
	}
	return out
}
