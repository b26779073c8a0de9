// Package rasa scores the six-taste balance of meals against a patient's
// dominant dosha.
package rasa

import (
	"fmt"
	"slices"

	"github.com/vaidya/ahara/internal/catalog"
	"github.com/vaidya/ahara/internal/models"
)

type doshaBalance struct {
	increase []models.Taste
	decrease []models.Taste
}

// balances partitions the six tastes for each dosha.
var balances = map[models.Dosha]doshaBalance{
	models.Vata: {
		increase: []models.Taste{models.TasteSweet, models.TasteSour, models.TasteSalty},
		decrease: []models.Taste{models.TastePungent, models.TasteBitter, models.TasteAstringent},
	},
	models.Pitta: {
		increase: []models.Taste{models.TasteSweet, models.TasteBitter, models.TasteAstringent},
		decrease: []models.Taste{models.TasteSour, models.TasteSalty, models.TastePungent},
	},
	models.Kapha: {
		increase: []models.Taste{models.TastePungent, models.TasteBitter, models.TasteAstringent},
		decrease: []models.Taste{models.TasteSweet, models.TasteSour, models.TasteSalty},
	},
}

var advice = map[models.Dosha]map[Level]string{
	models.Vata: {
		LevelGood:     "Focus on sweet, sour, and salty tastes to balance Vata",
		LevelModerate: "Include some sweet and sour foods to pacify Vata",
		LevelPoor:     "Increase sweet, sour, and salty foods; reduce pungent, bitter, astringent",
	},
	models.Pitta: {
		LevelGood:     "Good balance of sweet, bitter, and astringent tastes",
		LevelModerate: "Include more sweet and bitter foods to cool Pitta",
		LevelPoor:     "Focus on sweet, bitter, astringent; avoid sour, salty, pungent",
	},
	models.Kapha: {
		LevelGood:     "Good use of pungent, bitter, and astringent tastes",
		LevelModerate: "Include more pungent and bitter foods to stimulate Kapha",
		LevelPoor:     "Increase pungent, bitter, astringent; reduce sweet, sour, salty",
	},
}

var tasteFoods = map[models.Taste][]string{
	models.TasteSweet:      {"rice", "wheat", "milk", "ghee", "dates", "honey", "sweet fruits"},
	models.TasteSour:       {"lemon", "lime", "tamarind", "yogurt", "fermented foods", "citrus fruits"},
	models.TasteSalty:      {"sea salt", "rock salt", "seaweed", "pickles", "salted nuts"},
	models.TastePungent:    {"ginger", "garlic", "onion", "chili", "black pepper", "mustard"},
	models.TasteBitter:     {"bitter gourd", "neem", "turmeric", "coffee", "dark leafy greens"},
	models.TasteAstringent: {"pomegranate", "green tea", "unripe banana", "lentils", "cabbage"},
}

// Level grades a balance score for advice selection.
type Level string

const (
	LevelGood     Level = "good"
	LevelModerate Level = "moderate"
	LevelPoor     Level = "poor"
)

// LevelFor bands a balance score: good above 0.7, moderate above 0.4.
func LevelFor(score float64) Level {
	switch {
	case score > 0.7:
		return LevelGood
	case score > 0.4:
		return LevelModerate
	default:
		return LevelPoor
	}
}

// PriorityFor maps a balance score to how urgently it should be addressed.
func PriorityFor(score float64) models.Priority {
	switch {
	case score < 0.4:
		return models.PriorityHigh
	case score < 0.7:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

// Recommendation is the taste guidance for a patient.
type Recommendation struct {
	PrimaryDosha    models.Dosha              `json:"primary_dosha"`
	Recommended     []models.Taste            `json:"recommended_rasas"`
	Avoid           []models.Taste            `json:"avoid_rasas"`
	BalanceScore    float64                   `json:"balance_score"`
	Advice          string                    `json:"dosha_advice"`
	Priority        models.Priority           `json:"priority"`
	FoodSuggestions map[models.Taste][]string `json:"food_suggestions"`
}

// Recommend picks the tastes to favour and avoid for the primary dosha and
// scores how well currentTastes follow that advice. An empty currentTastes
// scores exactly 0.5.
func Recommend(scores models.DoshaScores, currentTastes []models.Taste) Recommendation {
	primary := scores.Primary()
	b := balances[primary]
	score := BalanceScore(primary, currentTastes)

	suggestions := make(map[models.Taste][]string, len(b.increase))
	for _, t := range b.increase {
		suggestions[t] = slices.Clone(tasteFoods[t])
	}

	return Recommendation{
		PrimaryDosha:    primary,
		Recommended:     slices.Clone(b.increase),
		Avoid:           slices.Clone(b.decrease),
		BalanceScore:    score,
		Advice:          advice[primary][LevelFor(score)],
		Priority:        PriorityFor(score),
		FoodSuggestions: suggestions,
	}
}

// BalanceScore is ((favoured - avoided)/n + 1)/2 clamped to [0,1], or 0.5 for
// no tastes.
func BalanceScore(d models.Dosha, tastes []models.Taste) float64 {
	if len(tastes) == 0 {
		return models.NeutralScore
	}
	b, ok := balances[d]
	if !ok {
		return models.NeutralScore
	}
	var in, out int
	for _, t := range tastes {
		if slices.Contains(b.increase, t) {
			in++
		}
		if slices.Contains(b.decrease, t) {
			out++
		}
	}
	score := float64(in-out) / float64(len(tastes))
	return models.Clamp01((score + 1) / 2)
}

// FoodsFor returns example foods carrying taste t.
func FoodsFor(t models.Taste) []string {
	return slices.Clone(tasteFoods[t])
}

// MealTastes collects the catalog tastes of every food in order, repeating a
// taste once per food that carries it.
func MealTastes(foods []models.FoodItem) []models.Taste {
	var tastes []models.Taste
	for _, f := range foods {
		tastes = append(tastes, catalog.Lookup(f.Name).Tastes...)
	}
	return tastes
}

// MealStatus summarises the taste balance of a meal.
type MealStatus string

const (
	StatusGood         MealStatus = "Good"
	StatusImbalanced   MealStatus = "Imbalanced"
	StatusNeedsVariety MealStatus = "Needs variety"
)

// MealAnalysis describes the taste composition of a meal.
type MealAnalysis struct {
	Composition        map[models.Taste]int     `json:"rasa_composition"`
	Balance            map[models.Taste]float64 `json:"rasa_balance"`
	Diversity          int                      `json:"rasa_diversity"`
	DominantTaste      models.Taste             `json:"dominant_rasa,omitempty"`
	DominantPercentage float64                  `json:"dominant_percentage"`
	Balanced           bool                     `json:"is_balanced"`
	Dominant           bool                     `json:"is_dominant"`
	Status             MealStatus               `json:"status"`
	Message            string                   `json:"message"`
	Suggestions        []string                 `json:"suggestions"`
}

// AnalyzeMeal analyses the tastes of foods as tagged in the catalog.
func AnalyzeMeal(foods []models.FoodItem) MealAnalysis {
	return AnalyzeTastes(MealTastes(foods))
}

// AnalyzeTastes analyses a flat list of tastes. A meal is balanced with at
// least three distinct tastes and a dominant share under 0.6, and dominated
// when one taste exceeds 0.7.
func AnalyzeTastes(tastes []models.Taste) MealAnalysis {
	a := MealAnalysis{
		Composition: make(map[models.Taste]int),
		Balance:     make(map[models.Taste]float64),
	}
	for _, t := range tastes {
		a.Composition[t]++
	}
	for t, n := range a.Composition {
		a.Balance[t] = float64(n) / float64(len(tastes))
	}
	a.Diversity = len(a.Composition)

	// Ties resolve to the earliest taste in canonical order.
	for _, t := range models.AllTastes {
		if share, ok := a.Balance[t]; ok && share > a.DominantPercentage {
			a.DominantTaste = t
			a.DominantPercentage = share
		}
	}

	a.Balanced = a.Diversity >= 3 && a.DominantPercentage < 0.6
	a.Dominant = a.DominantPercentage > 0.7

	switch {
	case a.Balanced:
		a.Status = StatusGood
		a.Message = "Meal has good rasa balance"
		a.Suggestions = []string{}
	case a.Dominant:
		a.Status = StatusImbalanced
		a.Message = fmt.Sprintf("Too much %s taste", a.DominantTaste)
		a.Suggestions = []string{
			fmt.Sprintf("Reduce %s foods", a.DominantTaste),
			"Add more variety of tastes",
			"Include complementary rasas",
		}
	default:
		a.Status = StatusNeedsVariety
		a.Message = "Meal needs more rasa diversity"
		a.Suggestions = []string{
			"Include more different tastes",
			"Add herbs and spices",
			"Consider seasonal foods",
		}
	}
	return a
}
