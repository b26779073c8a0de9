package agni

import (
	"slices"
	"strings"

	"github.com/vaidya/ahara/internal/models"
)

// PatientData is the input to Analyze. Symptoms and habits are free text per
// indicator; missing indicators are assessed as sama.
type PatientData struct {
	Symptoms map[models.Indicator]string `json:"symptoms,omitempty" yaml:"symptoms,omitempty" mapstructure:"symptoms"`
	Habits   map[models.Indicator]string `json:"dietary_habits,omitempty" yaml:"dietary_habits,omitempty" mapstructure:"dietary_habits"`
	Dosha    *models.DoshaScores         `json:"dosha,omitempty" yaml:"dosha,omitempty" mapstructure:"dosha"`
}

// Strategy is lifestyle guidance for an agni type.
type Strategy struct {
	Diet      string `json:"diet"`
	Lifestyle string `json:"lifestyle"`
	Exercise  string `json:"exercise"`
}

// FoodGuide lists foods to favour and to avoid.
type FoodGuide struct {
	Beneficial []string `json:"beneficial"`
	Avoid      []string `json:"avoid"`
}

// Result is the outcome of Analyze.
type Result struct {
	State           models.AgniState `json:"state"`
	Recommendations []string         `json:"recommendations"`
	Strategies      Strategy         `json:"balancing_strategies"`
	Foods           FoodGuide        `json:"food_recommendations"`
}

var typeRecommendations = map[models.AgniType][]string{
	models.AgniVishama: {
		"Establish regular meal times",
		"Eat warm, cooked foods",
		"Include digestive spices like ginger and cumin",
		"Avoid cold and raw foods",
		"Practice mindful eating",
	},
	models.AgniTikshna: {
		"Eat cooling, sweet foods",
		"Avoid spicy and hot foods",
		"Eat moderate portions",
		"Include coconut and mint",
		"Avoid excessive eating",
	},
	models.AgniManda: {
		"Include warming spices",
		"Eat light, easily digestible foods",
		"Avoid heavy, cold foods",
		"Include ginger and black pepper",
		"Eat only when hungry",
	},
	models.AgniSama: {
		"Maintain current good habits",
		"Eat balanced, seasonal foods",
		"Continue regular meal times",
		"Listen to your body",
		"Maintain variety in diet",
	},
}

var strategies = map[models.AgniType]Strategy{
	models.AgniVishama: {
		Diet:      "Regular, warm, cooked meals with digestive spices",
		Lifestyle: "Stable routine, adequate rest, stress management",
		Exercise:  "Moderate, regular exercise",
	},
	models.AgniTikshna: {
		Diet:      "Cooling foods, moderate portions, avoid excess",
		Lifestyle: "Cool environment, relaxation, avoid overstimulation",
		Exercise:  "Gentle, cooling exercises",
	},
	models.AgniManda: {
		Diet:      "Light, warming foods, spices, avoid heavy foods",
		Lifestyle: "Active lifestyle, regular exercise, avoid excessive sleep",
		Exercise:  "Vigorous, warming exercises",
	},
	models.AgniSama: {
		Diet:      "Balanced, seasonal diet",
		Lifestyle: "Balanced routine, moderate activity",
		Exercise:  "Regular, balanced exercise",
	},
}

var foodGuides = map[models.AgniType]FoodGuide{
	models.AgniVishama: {
		Beneficial: []string{"ginger", "cumin", "fennel", "warm_water", "cooked_vegetables", "ghee"},
		Avoid:      []string{"cold_foods", "raw_foods", "ice_cream", "cold_drinks"},
	},
	models.AgniTikshna: {
		Beneficial: []string{"coconut", "mint", "coriander", "sweet_fruits", "cucumber", "milk"},
		Avoid:      []string{"chili", "garlic", "onion", "spicy_foods", "hot_foods"},
	},
	models.AgniManda: {
		Beneficial: []string{"ginger", "black_pepper", "garlic", "warming_spices", "light_grains"},
		Avoid:      []string{"heavy_foods", "cold_foods", "dairy", "sweet_foods"},
	},
	models.AgniSama: {
		Beneficial: []string{"seasonal_foods", "balanced_diet", "fresh_vegetables", "whole_grains"},
		Avoid:      []string{"excess_of_any_type", "processed_foods"},
	},
}

// Analyze classifies a patient's agni from symptom and habit text and
// attaches the guidance for the resulting type.
func Analyze(p PatientData) Result {
	scores := make(map[models.Indicator]models.IndicatorScore, len(models.Indicators))
	for _, ind := range models.Indicators {
		scores[ind] = AssessIndicator(ind, p.Symptoms[ind], p.Habits[ind])
	}
	t := DetermineType(scores)
	guide := foodGuides[t]
	return Result{
		State: models.AgniState{
			Type:       t,
			Strength:   StrengthOf(scores),
			Indicators: scores,
		},
		Recommendations: slices.Clone(typeRecommendations[t]),
		Strategies:      strategies[t],
		Foods: FoodGuide{
			Beneficial: slices.Clone(guide.Beneficial),
			Avoid:      slices.Clone(guide.Avoid),
		},
	}
}

type balancing struct {
	beneficial []string
	avoid      []string
	timing     string
}

var balancingFoods = map[models.AgniType]balancing{
	models.AgniVishama: {
		beneficial: []string{"ginger", "cumin", "fennel", "warm_water", "cooked_vegetables"},
		avoid:      []string{"cold_foods", "raw_foods", "irregular_meals"},
		timing:     "Regular meal times, warm foods",
	},
	models.AgniTikshna: {
		beneficial: []string{"coconut", "mint", "coriander", "cooling_foods", "sweet_fruits"},
		avoid:      []string{"spicy_foods", "hot_foods", "excessive_eating"},
		timing:     "Moderate portions, cooling foods",
	},
	models.AgniManda: {
		beneficial: []string{"ginger", "black_pepper", "garlic", "warming_spices", "light_foods"},
		avoid:      []string{"heavy_foods", "cold_foods", "excessive_water"},
		timing:     "Light meals, warming spices",
	},
	models.AgniSama: {
		beneficial: []string{"balanced_diet", "seasonal_foods", "moderate_spices"},
		avoid:      []string{"excess_of_any_type", "irregular_habits"},
		timing:     "Maintain current good habits",
	},
}

type doshaAdjustment struct {
	add    []string
	avoid  []string
	advice string
}

var doshaAdjustments = map[models.Dosha]doshaAdjustment{
	models.Vata: {
		add:    []string{"warm_foods", "ghee", "cooked_vegetables"},
		avoid:  []string{"cold_foods", "raw_foods"},
		advice: "Vata needs warming, grounding foods to balance irregular Agni",
	},
	models.Pitta: {
		add:    []string{"cooling_foods", "sweet_fruits", "coconut"},
		avoid:  []string{"spicy_foods", "hot_foods"},
		advice: "Pitta needs cooling foods to balance sharp Agni",
	},
	models.Kapha: {
		add:    []string{"warming_spices", "light_foods", "bitter_vegetables"},
		avoid:  []string{"heavy_foods", "cold_foods"},
		advice: "Kapha needs warming, stimulating foods to balance slow Agni",
	},
}

// BalancingFoods is the food plan for bringing an agni type into balance.
type BalancingFoods struct {
	AgniType     models.AgniType `json:"agni_type"`
	PrimaryDosha models.Dosha    `json:"primary_dosha"`
	Beneficial   []string        `json:"beneficial_foods"`
	Avoid        []string        `json:"avoid_foods"`
	Timing       string          `json:"timing_advice"`
	DoshaAdvice  string          `json:"dosha_specific_advice"`
}

// SuggestBalancingFoods combines the agni type's food plan with adjustments
// for the primary dosha. Missing or all-zero scores mean vata.
func SuggestBalancingFoods(t models.AgniType, scores *models.DoshaScores) BalancingFoods {
	primary := models.Vata
	if scores != nil && !scores.IsZero() {
		primary = scores.Primary()
	}
	b, ok := balancingFoods[t]
	if !ok {
		b = balancingFoods[models.AgniSama]
		t = models.AgniSama
	}
	adj := doshaAdjustments[primary]
	return BalancingFoods{
		AgniType:     t,
		PrimaryDosha: primary,
		Beneficial:   slices.Concat(b.beneficial, adj.add),
		Avoid:        slices.Concat(b.avoid, adj.avoid),
		Timing:       b.timing,
		DoshaAdvice:  adj.advice,
	}
}

var (
	warmingFoods = []string{"ginger", "garlic", "onion", "chili", "black_pepper", "cinnamon"}
	coolingFoods = []string{"coconut", "mint", "cucumber", "watermelon", "milk", "coriander"}
)

// Impact is the direction of a food's or meal's effect on agni.
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNeutral  Impact = "neutral"
	ImpactNegative Impact = "negative"
)

// FoodImpact explains one food's effect on a given agni type.
type FoodImpact struct {
	Food   string  `json:"food"`
	Impact Impact  `json:"impact"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// TraditionalImpact is the rule-based verdict on a meal for an agni type.
type TraditionalImpact struct {
	Overall         Impact       `json:"overall_impact"`
	Score           float64      `json:"score"`
	Foods           []FoodImpact `json:"food_impacts"`
	Recommendations []string     `json:"recommendations"`
}

// AssessMealTraditional rates each food as warming, cooling or neither and
// scores it against the agni type: warming helps manda and hurts tikshna,
// cooling the reverse. The meal score is the mean food score.
func AssessMealTraditional(foods []string, t models.AgniType) TraditionalImpact {
	out := TraditionalImpact{Foods: make([]FoodImpact, 0, len(foods))}
	var total float64
	for _, f := range foods {
		fi := foodImpact(f, t)
		out.Foods = append(out.Foods, fi)
		total += fi.Score
	}
	if len(foods) > 0 {
		out.Score = total / float64(len(foods))
	}

	switch {
	case out.Score > 0.3:
		out.Overall = ImpactPositive
		out.Recommendations = []string{"Good meal for your Agni type", "Continue with similar food choices"}
	case out.Score < -0.3:
		out.Overall = ImpactNegative
		out.Recommendations = []string{"Consider different food choices", "This meal may not suit your Agni"}
	default:
		out.Overall = ImpactNeutral
		out.Recommendations = []string{"Meal has neutral impact on Agni", "Consider adding balancing foods"}
	}
	return out
}

func foodImpact(food string, t models.AgniType) FoodImpact {
	name := normalizeText(food)
	fi := FoodImpact{Food: food, Impact: ImpactNeutral, Reason: "Food has neutral Agni impact"}
	switch {
	case containsAny(name, warmingFoods):
		switch t {
		case models.AgniTikshna:
			fi.Impact, fi.Score, fi.Reason = ImpactNegative, -0.5, "Warming food increases already sharp Agni"
		case models.AgniManda:
			fi.Impact, fi.Score, fi.Reason = ImpactPositive, 0.5, "Warming food helps slow Agni"
		default:
			fi.Reason = "Warming food has neutral effect"
		}
	case containsAny(name, coolingFoods):
		switch t {
		case models.AgniTikshna:
			fi.Impact, fi.Score, fi.Reason = ImpactPositive, 0.5, "Cooling food balances sharp Agni"
		case models.AgniManda:
			fi.Impact, fi.Score, fi.Reason = ImpactNegative, -0.5, "Cooling food worsens slow Agni"
		default:
			fi.Reason = "Cooling food has neutral effect"
		}
	}
	return fi
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
