package guna

import (
	"slices"

	"github.com/vaidya/ahara/internal/models"
)

type preference struct {
	preferred []models.ThermalClass
	avoid     []models.ThermalClass
}

var preferences = map[models.Dosha]preference{
	models.Vata:  {preferred: []models.ThermalClass{models.ThermalHot, models.ThermalNeutral}, avoid: []models.ThermalClass{models.ThermalCold}},
	models.Pitta: {preferred: []models.ThermalClass{models.ThermalCold, models.ThermalNeutral}, avoid: []models.ThermalClass{models.ThermalHot}},
	models.Kapha: {preferred: []models.ThermalClass{models.ThermalHot}, avoid: []models.ThermalClass{models.ThermalCold, models.ThermalNeutral}},
}

var doshaSuggestions = map[models.Dosha][]string{
	models.Vata: {
		"Include more heating foods to balance cold nature",
		"Use warming spices like ginger and cinnamon",
		"Avoid excessive cold foods",
		"Prefer cooked over raw foods",
	},
	models.Pitta: {
		"Include more cooling foods to balance hot nature",
		"Use cooling herbs like mint and coriander",
		"Avoid excessive heating foods",
		"Include fresh, cooling foods",
	},
	models.Kapha: {
		"Include heating foods to stimulate sluggish nature",
		"Use warming spices and pungent foods",
		"Avoid heavy, cold foods",
		"Prefer light, warm, dry foods",
	},
}

var doshaFoods = map[models.Dosha]map[string][]string{
	models.Vata: {
		"heating": {"ginger", "garlic", "cinnamon", "cardamom", "cumin"},
		"neutral": {"rice", "ghee", "milk", "wheat"},
		"avoid":   {"cucumber", "watermelon", "mint", "coconut"},
	},
	models.Pitta: {
		"cooling": {"mint", "coconut", "cucumber", "watermelon", "coriander"},
		"neutral": {"rice", "ghee", "milk"},
		"avoid":   {"ginger", "garlic", "chili", "black_pepper"},
	},
	models.Kapha: {
		"heating": {"ginger", "garlic", "chili", "black_pepper", "cinnamon"},
		"avoid":   {"milk", "coconut", "cucumber", "heavy foods"},
	},
}

// Distribution summarises the gunas a patient currently eats.
type Distribution struct {
	Shares    map[models.ThermalClass]float64 `json:"distribution"`
	Dominant  models.ThermalClass             `json:"dominant_guna"`
	Diversity int                             `json:"diversity"`
}

// DoshaRecommendation is thermal guidance for a constitution.
type DoshaRecommendation struct {
	PrimaryDosha        models.Dosha          `json:"primary_dosha"`
	Preferred           []models.ThermalClass `json:"preferred_gunas"`
	Avoid               []models.ThermalClass `json:"avoid_gunas"`
	Current             Distribution          `json:"current_balance"`
	Suggestions         []string              `json:"suggestions"`
	FoodRecommendations map[string][]string   `json:"food_recommendations"`
}

// RecommendForDosha returns the gunas to favour for the primary dosha along
// with the distribution of current.
func RecommendForDosha(scores models.DoshaScores, current []models.ThermalClass) DoshaRecommendation {
	primary := scores.Primary()
	pref := preferences[primary]

	foods := make(map[string][]string, len(doshaFoods[primary]))
	for k, v := range doshaFoods[primary] {
		foods[k] = slices.Clone(v)
	}

	return DoshaRecommendation{
		PrimaryDosha:        primary,
		Preferred:           slices.Clone(pref.preferred),
		Avoid:               slices.Clone(pref.avoid),
		Current:             Distribute(current),
		Suggestions:         slices.Clone(doshaSuggestions[primary]),
		FoodRecommendations: foods,
	}
}

// Distribute computes shares of each guna. The dominant guna is the most
// frequent, ties going to the one seen first; no input means neutral.
func Distribute(gunas []models.ThermalClass) Distribution {
	d := Distribution{
		Shares:   make(map[models.ThermalClass]float64),
		Dominant: models.ThermalNeutral,
	}
	if len(gunas) == 0 {
		return d
	}

	counts := make(map[models.ThermalClass]int)
	var order []models.ThermalClass
	for _, g := range gunas {
		if counts[g] == 0 {
			order = append(order, g)
		}
		counts[g]++
	}
	best := 0
	for _, g := range order {
		d.Shares[g] = float64(counts[g]) / float64(len(gunas))
		if counts[g] > best {
			best = counts[g]
			d.Dominant = g
		}
	}
	d.Diversity = len(counts)
	return d
}
