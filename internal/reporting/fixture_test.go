package reporting

import (
	"github.com/vaidya/ahara/internal/compat"
	"github.com/vaidya/ahara/internal/compliance"
	"github.com/vaidya/ahara/internal/guna"
	"github.com/vaidya/ahara/internal/models"
	"github.com/vaidya/ahara/internal/statistics"
)

func subScores(compat, taste, thermal, nutrient, agni float64) map[models.SubScore]float64 {
	return map[models.SubScore]float64{
		models.SubScoreCompatibility: compat,
		models.SubScoreTaste:         taste,
		models.SubScoreThermal:       thermal,
		models.SubScoreNutrient:      nutrient,
		models.SubScoreAgni:          agni,
	}
}

func newTestChart() *compliance.ChartResult {
	return &compliance.ChartResult{
		Compliance: models.ComplianceResult{
			OverallScore:     0.6,
			SubScores:        subScores(0.57, 0.8, 0.4, 0.45, 0.6),
			ImprovementAreas: []string{"Improve dinner compliance", "Improve Ayurvedic food combining"},
			Recommendations:  []string{"Consider removing milk or fish"},
		},
		Meals: []compliance.MealResult{
			{
				Index: 0,
				Type:  models.MealLunch,
				Compliance: models.ComplianceResult{
					OverallScore: 0.875,
					SubScores:    subScores(1, 1, 0.3, 0.4, 0.57),
				},
				Thermal: guna.MealAnalysis{Foods: []guna.FoodGuna{{Food: "rice"}}},
			},
			{
				Index: 1,
				Type:  models.MealDinner,
				Compliance: models.ComplianceResult{
					OverallScore:    0.325,
					SubScores:       subScores(0.14, 0.6, 0.5, 0.5, 0.63),
					Recommendations: []string{"Consider removing milk or fish"},
				},
				Compatibility: compat.MealResult{
					Conflicts: []compat.Conflict{{FoodA: "milk", FoodB: "fish", Score: 0.14}},
				},
				Thermal: guna.MealAnalysis{Foods: []guna.FoodGuna{{Food: "milk"}, {Food: "fish"}}},
			},
		},
		MealCompliance: map[models.MealType]float64{models.MealLunch: 0.875, models.MealDinner: 0.325},
		Adherence:      0.6,
		Interval: statistics.ConfidenceInterval{
			Lower: 0.325, Upper: 0.875, Mean: 0.6, ConfidenceLevel: 0.95, NumBootstraps: 1000,
		},
	}
}
