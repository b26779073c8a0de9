package agni

import "github.com/vaidya/ahara/internal/models"

var improvementAreas = [FeatureCount]string{
	"Appetite regulation",
	"Digestive health",
	"Bowel regularity",
	"Energy management",
	"Sleep hygiene",
	"Stress management",
	"Meal timing",
	"Hydration",
	"Physical activity",
	"Environmental adaptation",
}

// DailyAssessment is a single-day agni reading.
type DailyAssessment struct {
	AgniScore        float64          `json:"agni_score"`
	Level            models.AgniLevel `json:"agni_level"`
	Strength         models.Strength  `json:"strength"`
	Recommendations  []string         `json:"recommendations"`
	ImprovementAreas []string         `json:"improvement_areas"`
}

// AssessDaily scores one day's metrics with the heuristic. A record with
// nothing filled in gets the neutral default assessment.
func AssessDaily(m DailyMetrics) DailyAssessment {
	if m == (DailyMetrics{}) {
		return DailyAssessment{
			AgniScore:        models.NeutralScore,
			Level:            models.AgniModerate,
			Strength:         models.StrengthModerate,
			Recommendations:  []string{"Follow balanced approach", "Listen to your body"},
			ImprovementAreas: []string{"General wellness"},
		}
	}

	features := m.Features()
	score := HeuristicScore(features)

	areas := []string{}
	for i, v := range features {
		if i == FeatureStress {
			v = 1 - v
		}
		if v < 0.4 {
			areas = append(areas, improvementAreas[i])
		}
	}

	return DailyAssessment{
		AgniScore:        score,
		Level:            models.ClassifyAgniLevel(score),
		Strength:         models.StrengthForScore(score),
		Recommendations:  dailyRecommendations(score),
		ImprovementAreas: areas,
	}
}

func dailyRecommendations(score float64) []string {
	switch {
	case score < 0.4:
		return []string{
			"Start the day with warm water and ginger",
			"Eat light, easily digestible foods",
			"Include digestive spices in every meal",
			"Avoid cold drinks and raw foods",
		}
	case score < 0.6:
		return []string{
			"Maintain regular meal times",
			"Include some warming spices",
			"Stay hydrated with warm water",
		}
	default:
		return []string{
			"Your Agni is strong today!",
			"Continue with your current routine",
			"Consider trying new healthy foods",
		}
	}
}
