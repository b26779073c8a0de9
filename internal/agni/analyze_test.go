package agni

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaidya/ahara/internal/models"
)

func TestAnalyze_NoDataIsSama(t *testing.T) {
	res := Analyze(PatientData{})

	assert.Equal(t, models.AgniSama, res.State.Type)
	assert.Equal(t, models.StrengthWeak, res.State.Strength)
	assert.Len(t, res.State.Indicators, len(models.Indicators))
	assert.Equal(t, "Maintain current good habits", res.Recommendations[0])
	assert.Equal(t, "Balanced, seasonal diet", res.Strategies.Diet)
}

func TestAnalyze_Manda(t *testing.T) {
	res := Analyze(PatientData{
		Symptoms: map[models.Indicator]string{
			models.IndicatorAppetite:      "poor, weak",
			models.IndicatorDigestion:     "slow heavy incomplete",
			models.IndicatorBowelMovement: "infrequent hard",
			models.IndicatorEnergyLevel:   "low sluggish heavy",
		},
	})

	assert.Equal(t, models.AgniManda, res.State.Type)
	assert.Equal(t, models.StrengthStrong, res.State.Strength)
	assert.Contains(t, res.Foods.Beneficial, "black_pepper")
	assert.Contains(t, res.Foods.Avoid, "heavy_foods")
	assert.Equal(t, "Vigorous, warming exercises", res.Strategies.Exercise)
}

func TestAnalyze_ResultsAreIndependent(t *testing.T) {
	a := Analyze(PatientData{})
	a.Recommendations[0] = "changed"
	a.Foods.Beneficial[0] = "changed"

	b := Analyze(PatientData{})
	assert.Equal(t, "Maintain current good habits", b.Recommendations[0])
	assert.NotEqual(t, "changed", b.Foods.Beneficial[0])
}

func TestSuggestBalancingFoods(t *testing.T) {
	t.Run("dosha adjustments are appended", func(t *testing.T) {
		got := SuggestBalancingFoods(models.AgniManda, &models.DoshaScores{Vata: 0.2, Pitta: 0.6, Kapha: 0.2})
		assert.Equal(t, models.Pitta, got.PrimaryDosha)
		assert.Equal(t, "ginger", got.Beneficial[0])
		assert.Contains(t, got.Beneficial, "cooling_foods")
		assert.Contains(t, got.Avoid, "spicy_foods")
		assert.Equal(t, "Light meals, warming spices", got.Timing)
		assert.Equal(t, "Pitta needs cooling foods to balance sharp Agni", got.DoshaAdvice)
	})

	t.Run("missing scores mean vata", func(t *testing.T) {
		got := SuggestBalancingFoods(models.AgniSama, nil)
		assert.Equal(t, models.Vata, got.PrimaryDosha)
		assert.Contains(t, got.Beneficial, "ghee")
	})

	t.Run("unknown type falls back to sama", func(t *testing.T) {
		got := SuggestBalancingFoods(models.AgniType("other"), nil)
		assert.Equal(t, models.AgniSama, got.AgniType)
		assert.Equal(t, "Maintain current good habits", got.Timing)
	})
}

func TestAssessMealTraditional(t *testing.T) {
	t.Run("warming helps manda", func(t *testing.T) {
		got := AssessMealTraditional([]string{"ginger", "Ginger Tea"}, models.AgniManda)
		assert.Equal(t, ImpactPositive, got.Overall)
		assert.InDelta(t, 0.5, got.Score, 1e-9)
		require.Len(t, got.Foods, 2)
		assert.Equal(t, "Ginger Tea", got.Foods[1].Food)
	})

	t.Run("warming hurts tikshna", func(t *testing.T) {
		got := AssessMealTraditional([]string{"chili"}, models.AgniTikshna)
		assert.Equal(t, ImpactNegative, got.Overall)
		assert.Equal(t, "Warming food increases already sharp Agni", got.Foods[0].Reason)
	})

	t.Run("cooling helps tikshna", func(t *testing.T) {
		got := AssessMealTraditional([]string{"coconut"}, models.AgniTikshna)
		assert.Equal(t, ImpactPositive, got.Overall)
	})

	t.Run("plain food is neutral", func(t *testing.T) {
		got := AssessMealTraditional([]string{"rice"}, models.AgniManda)
		assert.Equal(t, ImpactNeutral, got.Overall)
		assert.Zero(t, got.Score)
	})

	t.Run("empty meal is neutral", func(t *testing.T) {
		got := AssessMealTraditional(nil, models.AgniSama)
		assert.Equal(t, ImpactNeutral, got.Overall)
		assert.Empty(t, got.Foods)
	})
}
