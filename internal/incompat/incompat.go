// Package incompat detects traditionally incompatible food combinations
// (viruddha ahara) using category tags from the catalog.
package incompat

import (
	"fmt"

	"github.com/vaidya/ahara/internal/catalog"
	"github.com/vaidya/ahara/internal/models"
)

// SafeRatio is the incompatibility ratio at and above which a meal is unsafe.
const SafeRatio = 0.3

type categorySet map[catalog.Category]bool

func set(cats ...catalog.Category) categorySet {
	s := make(categorySet, len(cats))
	for _, c := range cats {
		s[c] = true
	}
	return s
}

// forbidden is stored one-way; queries check both directions.
var forbidden = map[catalog.Category]categorySet{
	catalog.CategoryMilk:       set(catalog.CategoryFish, catalog.CategorySourFruits, catalog.CategoryBanana, catalog.CategoryYogurt, catalog.CategorySalt, catalog.CategoryMeat),
	catalog.CategoryYogurt:     set(catalog.CategoryMilk, catalog.CategorySourFruits, catalog.CategoryHotFoods, catalog.CategoryFish),
	catalog.CategoryBanana:     set(catalog.CategoryMilk, catalog.CategoryYogurt, catalog.CategorySourFruits),
	catalog.CategorySourFruits: set(catalog.CategoryMilk, catalog.CategoryYogurt, catalog.CategoryBanana, catalog.CategorySweetFruits),
	catalog.CategoryFish:       set(catalog.CategoryMilk, catalog.CategoryYogurt, catalog.CategoryHoney, catalog.CategoryJaggery),
	catalog.CategoryMeat:       set(catalog.CategoryMilk, catalog.CategoryFish, catalog.CategoryHoney),
	catalog.CategoryHoney:      set(catalog.CategoryFish, catalog.CategoryMeat, catalog.CategoryHotWater, catalog.CategoryGhee),
	catalog.CategoryJaggery:    set(catalog.CategoryFish, catalog.CategoryMilk),
	catalog.CategorySalt:       set(catalog.CategoryMilk, catalog.CategoryHoney),
	catalog.CategoryHotFoods:   set(catalog.CategoryColdFoods, catalog.CategoryYogurt),
	catalog.CategoryRawFoods:   set(catalog.CategoryCookedFoods, catalog.CategoryMilk),
	catalog.CategoryFermented:  set(catalog.CategoryMilk, catalog.CategorySourFruits),
}

// severe categories escalate any conflict they take part in to high.
var severe = set(catalog.CategoryMilk, catalog.CategoryFish, catalog.CategoryHoney, catalog.CategoryGhee)

type categoryPair struct{ a, b catalog.Category }

var reasons = map[categoryPair]string{
	{catalog.CategoryMilk, catalog.CategoryFish}:            "Milk and fish have opposite properties and cause digestive issues",
	{catalog.CategoryMilk, catalog.CategorySourFruits}:      "Sour fruits curdle milk and create toxins",
	{catalog.CategoryMilk, catalog.CategoryBanana}:          "Banana and milk combination is heavy and hard to digest",
	{catalog.CategoryHoney, catalog.CategoryGhee}:           "Honey and ghee in equal quantities are considered poisonous",
	{catalog.CategoryHotFoods, catalog.CategoryColdFoods}:   "Hot and cold foods together confuse digestive fire",
	{catalog.CategoryRawFoods, catalog.CategoryCookedFoods}: "Raw and cooked foods have different digestion times",
}

// Conflict is one pair of clashing categories.
type Conflict struct {
	CategoryA catalog.Category `json:"category_a"`
	CategoryB catalog.Category `json:"category_b"`
	Reason    string           `json:"reason"`
}

func (c Conflict) isSevere() bool {
	return severe[c.CategoryA] || severe[c.CategoryB]
}

// PairResult is the outcome of checking two foods.
type PairResult struct {
	FoodA           string          `json:"food_a"`
	FoodB           string          `json:"food_b"`
	Incompatible    bool            `json:"incompatible"`
	Conflicts       []Conflict      `json:"conflicts"`
	Severity        models.Severity `json:"severity"`
	Recommendations []string        `json:"recommendations"`
}

// Pair is an unordered pair of food names as supplied by the caller.
type Pair struct {
	A string `json:"food_a"`
	B string `json:"food_b"`
}

// MealRecommendation summarises what to do about a meal's conflicts.
type MealRecommendation struct {
	Status      string          `json:"status"`
	Message     string          `json:"message"`
	Suggestions []string        `json:"suggestions"`
	Priority    models.Priority `json:"priority,omitempty"`
}

// MealResult is the outcome of checking every pair in a meal.
type MealResult struct {
	IncompatiblePairs    []Pair             `json:"incompatible_pairs"`
	Conflicts            []Conflict         `json:"conflicts"`
	TotalConflicts       int                `json:"total_conflicts"`
	IncompatibilityRatio float64            `json:"incompatibility_ratio"`
	Severity             models.Severity    `json:"severity"`
	SafeToEat            bool               `json:"safe_to_eat"`
	Recommendation       MealRecommendation `json:"recommendation"`
}

// CheckPair reports whether two foods conflict. The check is symmetric:
// CheckPair(a, b) and CheckPair(b, a) find the same conflicts.
func CheckPair(a, b string) PairResult {
	conflicts := conflictsBetween(catalog.Categories(a), catalog.Categories(b))
	return PairResult{
		FoodA:           a,
		FoodB:           b,
		Incompatible:    len(conflicts) > 0,
		Conflicts:       conflicts,
		Severity:        pairSeverity(conflicts),
		Recommendations: pairRecommendations(conflicts),
	}
}

// CheckMeal evaluates every unordered pair of foods exactly once.
func CheckMeal(foods []string) MealResult {
	res := MealResult{
		IncompatiblePairs: []Pair{},
		Conflicts:         []Conflict{},
	}

	totalPairs := 0
	for i := 0; i < len(foods); i++ {
		for j := i + 1; j < len(foods); j++ {
			totalPairs++
			pr := CheckPair(foods[i], foods[j])
			if !pr.Incompatible {
				continue
			}
			res.IncompatiblePairs = append(res.IncompatiblePairs, Pair{A: foods[i], B: foods[j]})
			res.Conflicts = append(res.Conflicts, pr.Conflicts...)
		}
	}

	res.TotalConflicts = len(res.Conflicts)
	if totalPairs > 0 {
		res.IncompatibilityRatio = float64(len(res.IncompatiblePairs)) / float64(totalPairs)
	}
	res.SafeToEat = res.IncompatibilityRatio < SafeRatio
	res.Severity = mealSeverity(res.Conflicts)
	res.Recommendation = mealRecommendation(res.IncompatiblePairs, res.TotalConflicts)
	return res
}

func conflictsBetween(catsA, catsB []catalog.Category) []Conflict {
	conflicts := []Conflict{}
	seen := make(map[categoryPair]bool)
	for _, ca := range catsA {
		for _, cb := range catsB {
			if !clash(ca, cb) {
				continue
			}
			key := unordered(ca, cb)
			if seen[key] {
				continue
			}
			seen[key] = true
			conflicts = append(conflicts, Conflict{CategoryA: ca, CategoryB: cb, Reason: reason(ca, cb)})
		}
	}
	return conflicts
}

func clash(a, b catalog.Category) bool {
	return forbidden[a][b] || forbidden[b][a]
}

func unordered(a, b catalog.Category) categoryPair {
	if b < a {
		return categoryPair{b, a}
	}
	return categoryPair{a, b}
}

func reason(a, b catalog.Category) string {
	if r, ok := reasons[categoryPair{a, b}]; ok {
		return r
	}
	if r, ok := reasons[categoryPair{b, a}]; ok {
		return r
	}
	return fmt.Sprintf("%s and %s are incompatible according to Ayurveda", a, b)
}

func pairSeverity(conflicts []Conflict) models.Severity {
	if len(conflicts) == 0 {
		return models.SeverityNone
	}
	for _, c := range conflicts {
		if c.isSevere() {
			return models.SeverityHigh
		}
	}
	switch {
	case len(conflicts) > 2:
		return models.SeverityHigh
	case len(conflicts) > 1:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

func mealSeverity(conflicts []Conflict) models.Severity {
	if len(conflicts) == 0 {
		return models.SeverityNone
	}
	for _, c := range conflicts {
		if c.isSevere() {
			return models.SeverityHigh
		}
	}
	if len(conflicts) > 3 {
		return models.SeverityMedium
	}
	return models.SeverityLow
}

func pairRecommendations(conflicts []Conflict) []string {
	if len(conflicts) == 0 {
		return []string{"No incompatibilities found"}
	}
	recs := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		recs = append(recs, fmt.Sprintf("Avoid %s with %s: %s", c.CategoryA, c.CategoryB, c.Reason))
	}
	return recs
}

func mealRecommendation(pairs []Pair, totalConflicts int) MealRecommendation {
	if len(pairs) == 0 {
		return MealRecommendation{
			Status:      "Safe",
			Message:     "No incompatibilities found in the meal",
			Suggestions: []string{},
		}
	}
	rec := MealRecommendation{
		Status:   "Incompatible",
		Message:  fmt.Sprintf("Found %d incompatible food pairs", len(pairs)),
		Priority: models.PriorityMedium,
	}
	for i, p := range pairs {
		if i == 3 {
			break
		}
		rec.Suggestions = append(rec.Suggestions, fmt.Sprintf("Remove %s or %s from the meal", p.A, p.B))
	}
	if totalConflicts > 2 {
		rec.Priority = models.PriorityHigh
	}
	return rec
}
