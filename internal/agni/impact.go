package agni

import (
	"github.com/vaidya/ahara/internal/catalog"
	"github.com/vaidya/ahara/internal/models"
)

var (
	spicyFoods = []string{"chili", "pepper", "garlic", "onion", "ginger", "spices"}
	easyFoods  = []string{"rice", "dal", "soup", "cooked_vegetables"}
	hardFoods  = []string{"meat", "cheese", "fried_foods", "raw_foods"}
)

// fullMealGrams is the meal size that scores 1.0.
const fullMealGrams = 200

// MealFeatureSet summarises a meal for impact prediction. Each value is in
// [0,1].
type MealFeatureSet struct {
	Heating       float64 `json:"heating_foods"`
	Digestibility float64 `json:"digestibility"`
	Size          float64 `json:"meal_size"`
	Timing        float64 `json:"timing"`
	SpiceLevel    float64 `json:"spice_level"`
}

// ImpactLevel bands a meal's effect on agni.
type ImpactLevel string

const (
	LevelHighPositive ImpactLevel = "high_positive"
	LevelPositive     ImpactLevel = "positive"
	LevelNeutral      ImpactLevel = "neutral"
	LevelNegative     ImpactLevel = "negative"
	LevelHighNegative ImpactLevel = "high_negative"
)

// MealImpact is the predicted effect of a meal.
type MealImpact struct {
	ImpactScore     float64     `json:"impact_score"`
	AgniChange      float64     `json:"predicted_agni_change"`
	ImpactLevel     ImpactLevel `json:"impact_level"`
	Recommendations []string    `json:"recommendations"`
	TimingAdvice    string      `json:"timing_advice"`
}

// MealFeatures derives impact features from quantities in grams.
func MealFeatures(foods []models.FoodItem) (MealFeatureSet, error) {
	if err := models.ValidateFoods(foods); err != nil {
		return MealFeatureSet{}, err
	}

	var total, heating, spicy, easy, hard float64
	for _, f := range foods {
		g := f.Grams()
		name := catalog.Normalize(f.Name)
		total += g
		if containsAny(name, warmingFoods) {
			heating += g
		}
		if containsAny(name, spicyFoods) {
			spicy += g
		}
		if containsAny(name, easyFoods) {
			easy += g
		}
		if containsAny(name, hardFoods) {
			hard += g
		}
	}

	fs := MealFeatureSet{
		Heating:       missingFeature,
		Digestibility: missingFeature,
		Size:          min(total/fullMealGrams, 1),
		Timing:        0.8,
		SpiceLevel:    missingFeature,
	}
	if total > 0 {
		fs.Heating = heating / total
		fs.Digestibility = models.Clamp01((easy - 0.5*hard) / total)
		fs.SpiceLevel = spicy / total
	}
	return fs, nil
}

// PredictMealImpact estimates how a meal moves agni from current, a level in
// [0,1]. Weak fire amplifies the impact and strong fire dampens it.
func PredictMealImpact(fs MealFeatureSet, current float64) MealImpact {
	score := 0.3*fs.Heating + 0.25*fs.Digestibility + 0.2*fs.Size + 0.15*fs.Timing + 0.1*fs.SpiceLevel
	switch {
	case current < 0.4:
		score *= 1.2
	case current > 0.8:
		score *= 0.8
	}
	score = models.Clamp01(score)

	return MealImpact{
		ImpactScore:     score,
		AgniChange:      models.Clamp01(current + (score-0.5)*0.2),
		ImpactLevel:     impactLevel(score),
		Recommendations: impactRecommendations(score),
		TimingAdvice:    timingAdvice(score, current),
	}
}

func impactLevel(score float64) ImpactLevel {
	switch {
	case score >= 0.7:
		return LevelHighPositive
	case score >= 0.6:
		return LevelPositive
	case score >= 0.4:
		return LevelNeutral
	case score >= 0.3:
		return LevelNegative
	default:
		return LevelHighNegative
	}
}

func impactRecommendations(score float64) []string {
	switch {
	case score >= 0.6:
		return []string{"This meal will strengthen your Agni", "Good choice for digestive health"}
	case score >= 0.4:
		return []string{"This meal is neutral for Agni", "Consider adding digestive spices"}
	default:
		return []string{"This meal may weaken Agni", "Consider lighter alternatives", "Add warming spices"}
	}
}

func timingAdvice(score, current float64) string {
	switch {
	case current < 0.4:
		return "Eat when you feel hungry, avoid overeating"
	case score < 0.4:
		return "Eat smaller portions and wait 2-3 hours before next meal"
	default:
		return "Good timing for this meal"
	}
}
