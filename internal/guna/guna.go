// Package guna scores the thermal (guna/virya) balance of meals.
package guna

import (
	"math"

	"github.com/vaidya/ahara/internal/catalog"
	"github.com/vaidya/ahara/internal/models"
)

// Ideal heating and cooling shares of a meal's thermal energy.
const (
	IdealHeating = 0.35
	IdealCooling = 0.35

	// defaultRatio is used for both heating and cooling when a meal has no
	// thermal energy at all.
	defaultRatio = 0.33
)

// FoodGuna describes the thermal properties of a single food.
type FoodGuna struct {
	Food        string               `json:"food"`
	Guna        models.ThermalClass  `json:"guna"`
	Virya       models.ThermalEnergy `json:"virya"`
	Intensity   float64              `json:"intensity"`
	Description string               `json:"description"`
	Known       bool                 `json:"known"`
}

// LookupFood returns the thermal properties of a food.
func LookupFood(name string) FoodGuna {
	p := catalog.Lookup(name)
	return FoodGuna{
		Food:        name,
		Guna:        p.ThermalClass,
		Virya:       p.ThermalEnergy,
		Intensity:   p.Intensity,
		Description: Describe(p.ThermalEnergy, p.Intensity),
		Known:       p.Known,
	}
}

// Describe renders a thermal energy and intensity as prose.
func Describe(energy models.ThermalEnergy, intensity float64) string {
	degree := "strongly"
	switch {
	case intensity < 0.4:
		degree = "mildly"
	case intensity < 0.7:
		degree = "moderately"
	}
	switch energy {
	case models.EnergyHeating:
		return degree + " heating, good for cold conditions and Vata/Kapha constitution"
	case models.EnergyCooling:
		return degree + " cooling, good for hot conditions and Pitta constitution"
	default:
		return "neutral energy, suitable for all constitutions"
	}
}

// Status is the verdict on a meal's thermal balance.
type Status string

const (
	StatusTooHeating Status = "Too heating"
	StatusTooCooling Status = "Too cooling"
	StatusBalanced   Status = "Balanced"
)

// Recommendation tells the caller how to rebalance a meal.
type Recommendation struct {
	Status      Status   `json:"status"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
}

// MealAnalysis is the thermal breakdown of a meal.
type MealAnalysis struct {
	Foods          []FoodGuna           `json:"foods"`
	OverallEnergy  models.ThermalEnergy `json:"overall_energy"`
	HeatingRatio   float64              `json:"heating_ratio"`
	CoolingRatio   float64              `json:"cooling_ratio"`
	NeutralRatio   float64              `json:"neutral_ratio"`
	BalanceScore   float64              `json:"balance_score"`
	Recommendation Recommendation       `json:"recommendations"`
}

// AnalyzeMeal weights each food's intensity by grams/100 and accumulates it
// by virya. Foods are validated first; an invalid quantity or unit is
// returned as *models.InvalidInputError.
func AnalyzeMeal(foods []models.FoodItem) (MealAnalysis, error) {
	if err := models.ValidateFoods(foods); err != nil {
		return MealAnalysis{}, err
	}

	a := MealAnalysis{Foods: make([]FoodGuna, 0, len(foods))}
	var heating, cooling, neutral float64
	for _, f := range foods {
		g := LookupFood(f.Name)
		a.Foods = append(a.Foods, g)

		weighted := g.Intensity * f.Grams() / 100
		switch g.Virya {
		case models.EnergyHeating:
			heating += weighted
		case models.EnergyCooling:
			cooling += weighted
		default:
			neutral += weighted
		}
	}

	total := heating + cooling + neutral
	if total > 0 {
		a.HeatingRatio = heating / total
		a.CoolingRatio = cooling / total
	} else {
		a.HeatingRatio = defaultRatio
		a.CoolingRatio = defaultRatio
	}
	a.NeutralRatio = 1 - a.HeatingRatio - a.CoolingRatio

	switch {
	case a.HeatingRatio > 0.5:
		a.OverallEnergy = models.EnergyHeating
	case a.CoolingRatio > 0.5:
		a.OverallEnergy = models.EnergyCooling
	default:
		a.OverallEnergy = models.EnergyNeutral
	}

	a.BalanceScore = BalanceScore(a.HeatingRatio, a.CoolingRatio)
	a.Recommendation = recommend(a.HeatingRatio, a.CoolingRatio)
	return a, nil
}

// BalanceScore is 1 minus the total deviation from the ideal shares, clamped
// to [0,1]. It is 1 only when both ratios equal 0.35.
func BalanceScore(heatingRatio, coolingRatio float64) float64 {
	dev := math.Abs(heatingRatio-IdealHeating) + math.Abs(coolingRatio-IdealCooling)
	return models.Clamp01(1 - dev)
}

func recommend(heatingRatio, coolingRatio float64) Recommendation {
	switch {
	case heatingRatio > 0.7:
		return Recommendation{
			Status:      StatusTooHeating,
			Message:     "Meal is too heating, add cooling foods",
			Suggestions: []string{"Add cucumber", "Include mint", "Use coconut", "Add yogurt"},
		}
	case coolingRatio > 0.7:
		return Recommendation{
			Status:      StatusTooCooling,
			Message:     "Meal is too cooling, add heating foods",
			Suggestions: []string{"Add ginger", "Use spices", "Include garlic", "Add warm foods"},
		}
	default:
		return Recommendation{
			Status:      StatusBalanced,
			Message:     "Meal has good guna balance",
			Suggestions: []string{"Maintain current balance", "Consider seasonal adjustments"},
		}
	}
}

