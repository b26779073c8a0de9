// Package nutrition aggregates meal nutrients and compares them with
// age and gender specific daily requirements.
package nutrition

import (
	"fmt"
	"sort"

	"github.com/vaidya/ahara/internal/catalog"
	"github.com/vaidya/ahara/internal/models"
)

// Defaults applied when a patient profile leaves a field unset.
const (
	DefaultAge    = 30
	DefaultGender = models.GenderMale
)

// Balance thresholds.
const (
	DeficitThreshold = 0.7
	ExcessThreshold  = 1.3
)

func req(cal, protein, carbs, fat, fiber float64) models.NutrientProfile {
	return models.NutrientProfile{Calories: cal, Protein: protein, Carbs: carbs, Fat: fat, Fiber: fiber}
}

var (
	adult = map[models.Gender]models.NutrientProfile{
		models.GenderMale:   req(2500, 65, 300, 83, 38),
		models.GenderFemale: req(2000, 50, 250, 67, 25),
	}
	elderly = map[models.Gender]models.NutrientProfile{
		models.GenderMale:   req(2200, 60, 275, 73, 30),
		models.GenderFemale: req(1800, 45, 225, 60, 21),
	}
	child1to3  = req(1000, 13, 130, 30, 14)
	child4to8  = req(1200, 19, 130, 25, 20)
	child9to13 = req(1600, 34, 130, 25, 25)
)

// mealShares is the fraction of the daily requirement each meal should supply.
var mealShares = map[models.MealType]float64{
	models.MealBreakfast: 0.25,
	models.MealLunch:     0.35,
	models.MealDinner:    0.30,
	models.MealSnack:     0.10,
}

// MealShare returns the share of daily intake expected from a meal type.
// Unknown types get the snack share.
func MealShare(t models.MealType) float64 {
	if s, ok := mealShares[t]; ok {
		return s
	}
	return mealShares[models.MealSnack]
}

// AggregateMeal sums the quantity-scaled catalog profile of each food. The
// result is linear in every quantity.
func AggregateMeal(foods []models.FoodItem) (models.NutrientProfile, error) {
	if err := models.ValidateFoods(foods); err != nil {
		return models.NutrientProfile{}, err
	}
	return aggregate(foods), nil
}

func aggregate(foods []models.FoodItem) models.NutrientProfile {
	var total models.NutrientProfile
	for _, f := range foods {
		total.Add(catalog.Nutrients(f.Name).Scaled(f.Grams() / 100))
	}
	return total
}

// DailyRequirement selects the requirement row for a patient. Ages under 18
// use the child bands 1-3, 4-8 and 9-13; 65 and over is elderly.
func DailyRequirement(p models.PatientProfile) models.NutrientProfile {
	age := p.Age
	if age <= 0 {
		age = DefaultAge
	}
	gender := p.Gender
	if _, ok := adult[gender]; !ok {
		gender = DefaultGender
	}

	switch {
	case age <= 3:
		return child1to3
	case age <= 8:
		return child4to8
	case age < 18:
		return child9to13
	case age >= 65:
		return elderly[gender]
	default:
		return adult[gender]
	}
}

// Status bands the overall balance.
type Status string

const (
	StatusExcellent Status = "Excellent"
	StatusGood      Status = "Good"
	StatusFair      Status = "Fair"
	StatusPoor      Status = "Poor"
)

// StatusFor bands an overall balance score.
func StatusFor(overall float64) Status {
	switch {
	case overall >= 0.9:
		return StatusExcellent
	case overall >= 0.7:
		return StatusGood
	case overall >= 0.5:
		return StatusFair
	default:
		return StatusPoor
	}
}

// BalanceAnalysis compares actual intake with a requirement.
type BalanceAnalysis struct {
	Totals          models.NutrientProfile           `json:"totals"`
	Requirements    models.NutrientProfile           `json:"requirements"`
	Scores          map[models.Macronutrient]float64 `json:"balance_scores"`
	Ratios          map[models.Macronutrient]float64 `json:"ratios"`
	Overall         float64                          `json:"overall_balance"`
	Status          Status                           `json:"status"`
	Recommendations []string                         `json:"recommendations"`
}

// AnalyzeBalance scores each macronutrient as min(actual/required, 1) and
// averages them. Deficits below 0.7 and excesses above 1.3 of the unclamped
// ratio produce a recommendation.
func AnalyzeBalance(actual, required models.NutrientProfile) BalanceAnalysis {
	a := BalanceAnalysis{
		Totals:          models.NutrientProfile{Calories: actual.Calories, Protein: actual.Protein, Carbs: actual.Carbs, Fat: actual.Fat, Fiber: actual.Fiber},
		Requirements:    required,
		Scores:          make(map[models.Macronutrient]float64, len(models.Macronutrients)),
		Ratios:          make(map[models.Macronutrient]float64, len(models.Macronutrients)),
		Recommendations: []string{},
	}

	var sum float64
	for _, n := range models.Macronutrients {
		need := required.Get(n)
		var ratio float64
		if need > 0 {
			ratio = actual.Get(n) / need
		}
		score := min(ratio, 1.0)
		a.Ratios[n] = ratio
		a.Scores[n] = score
		sum += score

		switch {
		case score < DeficitThreshold:
			a.Recommendations = append(a.Recommendations, fmt.Sprintf("Increase %s by %.1fg", n, need*(1-score)))
		case ratio > ExcessThreshold:
			a.Recommendations = append(a.Recommendations, fmt.Sprintf("Reduce %s by %.1fg", n, need*(ratio-1)))
		}
	}
	a.Overall = sum / float64(len(models.Macronutrients))
	a.Status = StatusFor(a.Overall)
	return a
}

// AnalyzeDietBalance totals a day's meals and compares them with the
// patient's requirement.
func AnalyzeDietBalance(meals []models.Meal, p models.PatientProfile) (BalanceAnalysis, error) {
	var total models.NutrientProfile
	for i, m := range meals {
		if err := m.Validate(i); err != nil {
			return BalanceAnalysis{}, err
		}
		total.Add(aggregate(m.Foods))
	}
	return AnalyzeBalance(total, DailyRequirement(p)), nil
}

var nutrientFoods = map[models.Macronutrient][]string{
	models.NutrientProtein:  {"dal", "milk", "paneer", "nuts", "seeds"},
	models.NutrientCarbs:    {"rice", "wheat", "oats", "quinoa", "sweet potato"},
	models.NutrientFat:      {"ghee", "nuts", "seeds", "avocado", "coconut"},
	models.NutrientFiber:    {"vegetables", "fruits", "whole grains", "legumes"},
	models.NutrientCalories: {"nuts", "dried fruits", "ghee", "whole grains"},
}

// Improvement describes a shortfall against a target.
type Improvement struct {
	Deficit     float64  `json:"deficit"`
	Percentage  float64  `json:"percentage"`
	Suggestions []string `json:"suggestions"`
}

// Improvements lists every shortfall and the three largest by percentage.
type Improvements struct {
	Needed   map[models.Macronutrient]Improvement `json:"improvements_needed"`
	Priority []models.Macronutrient               `json:"priority_nutrients"`
}

// SuggestImprovements reports each macronutrient below its positive target.
func SuggestImprovements(current, target models.NutrientProfile) Improvements {
	out := Improvements{
		Needed:   make(map[models.Macronutrient]Improvement),
		Priority: []models.Macronutrient{},
	}
	for _, n := range models.Macronutrients {
		want := target.Get(n)
		if want <= 0 {
			continue
		}
		deficit := want - current.Get(n)
		if deficit <= 0 {
			continue
		}
		out.Needed[n] = Improvement{
			Deficit:     deficit,
			Percentage:  deficit / want * 100,
			Suggestions: append([]string(nil), nutrientFoods[n]...),
		}
		out.Priority = append(out.Priority, n)
	}

	sort.SliceStable(out.Priority, func(i, j int) bool {
		return out.Needed[out.Priority[i]].Percentage > out.Needed[out.Priority[j]].Percentage
	})
	if len(out.Priority) > 3 {
		out.Priority = out.Priority[:3]
	}
	return out
}
