package compliance

import (
	"github.com/vaidya/ahara/internal/models"
	"github.com/vaidya/ahara/internal/statistics"
)

// TrendStatus says whether a compliance trend could be computed.
type TrendStatus string

const (
	TrendNoData       TrendStatus = "no_data"
	TrendInsufficient TrendStatus = "insufficient_data"
	TrendAnalyzed     TrendStatus = "analyzed"
)

const (
	recentCharts   = 3
	trendThreshold = 0.1
)

// Trend compares the latest chart scores with the earlier ones.
type Trend struct {
	Status         TrendStatus           `json:"trend"`
	Direction      models.TrendDirection `json:"direction"`
	RecentAverage  float64               `json:"recent_avg,omitempty"`
	EarlierAverage float64               `json:"earlier_avg,omitempty"`
}

// AnalyzeTrend compares the mean of the last three scores, oldest first,
// with the mean of the rest. With three or fewer scores both means are the
// recent one, so the direction is stable.
func AnalyzeTrend(scores []float64) Trend {
	switch len(scores) {
	case 0:
		return Trend{Status: TrendNoData, Direction: models.TrendStable}
	case 1:
		return Trend{Status: TrendInsufficient, Direction: models.TrendStable}
	}

	recent, earlier, ok := statistics.SplitMeans(scores, recentCharts)
	if !ok {
		recent = statistics.Mean(scores)
		earlier = recent
	}

	t := Trend{Status: TrendAnalyzed, Direction: models.TrendStable, RecentAverage: recent, EarlierAverage: earlier}
	switch {
	case recent > earlier+trendThreshold:
		t.Direction = models.TrendImproving
	case recent < earlier-trendThreshold:
		t.Direction = models.TrendDeclining
	}
	return t
}

// PatientRecommendations advises a patient from their average compliance,
// trend and protein balance.
func PatientRecommendations(avgCompliance float64, trend Trend, balance map[models.Macronutrient]float64) []string {
	var recs []string
	if avgCompliance < MealComplianceThreshold {
		recs = append(recs, "Focus on following diet recommendations more closely")
	}
	if trend.Direction == models.TrendDeclining {
		recs = append(recs, "Consider consulting with your doctor about recent changes")
	}
	if v, ok := balance[models.NutrientProtein]; ok && v < NutrientBalanceThreshold {
		recs = append(recs, "Increase protein intake in your meals")
	}
	if len(recs) == 0 {
		recs = append(recs, "Keep up the good work with your current diet plan")
	}
	return recs
}

// PatientSummary aggregates a patient's charts.
type PatientSummary struct {
	Charts            int                              `json:"total_charts"`
	AverageCompliance float64                          `json:"avg_compliance"`
	Trend             Trend                            `json:"recent_trends"`
	AverageNutrition  models.NutrientProfile           `json:"avg_daily_nutrition"`
	NutritionBalance  map[models.Macronutrient]float64 `json:"nutrition_balance"`
	Recommendations   []string                         `json:"recommendations"`
}

// SummarizePatient summarises chart scores, oldest first, and each chart's
// daily nutrition. No charts means an average compliance of 0.5.
func SummarizePatient(chartScores []float64, nutrition []models.NutrientProfile) PatientSummary {
	avg := models.NeutralScore
	if len(chartScores) > 0 {
		avg = statistics.Mean(chartScores)
	}

	var total models.NutrientProfile
	for _, n := range nutrition {
		total.Add(n)
	}
	if len(nutrition) > 0 {
		total = total.Scaled(1 / float64(len(nutrition)))
	}

	balance := NutritionBalance(total)
	trend := AnalyzeTrend(chartScores)
	return PatientSummary{
		Charts:            len(chartScores),
		AverageCompliance: avg,
		Trend:             trend,
		AverageNutrition:  total,
		NutritionBalance:  balance,
		Recommendations:   PatientRecommendations(avg, trend, balance),
	}
}
