package catalog

import (
	"strings"

	"github.com/vaidya/ahara/internal/models"
)

type nutrientEntry struct {
	name    string
	profile models.NutrientProfile
}

// nutrientTable holds per-100 g profiles, searched in order for partial matches.
var nutrientTable = []nutrientEntry{
	{"rice", models.NutrientProfile{
		Calories: 130, Protein: 2.7, Carbs: 28, Fat: 0.3, Fiber: 0.4,
		Vitamins: map[string]float64{"B1": 0.07, "B3": 1.6},
		Minerals: map[string]float64{"iron": 0.8, "zinc": 0.6},
	}},
	{"wheat", models.NutrientProfile{
		Calories: 340, Protein: 13.7, Carbs: 71, Fat: 2.0, Fiber: 10.7,
		Vitamins: map[string]float64{"B1": 0.4, "B3": 5.5},
		Minerals: map[string]float64{"iron": 3.6, "zinc": 2.8},
	}},
	{"milk", models.NutrientProfile{
		Calories: 42, Protein: 3.4, Carbs: 5, Fat: 1.0, Fiber: 0,
		Vitamins: map[string]float64{"B2": 0.18, "B12": 0.5},
		Minerals: map[string]float64{"calcium": 113, "phosphorus": 84},
	}},
	{"ghee", models.NutrientProfile{
		Calories: 900, Protein: 0, Carbs: 0, Fat: 100, Fiber: 0,
		Vitamins: map[string]float64{"A": 3069, "E": 2.8},
		Minerals: map[string]float64{"sodium": 0},
	}},
	{"dal", models.NutrientProfile{
		Calories: 116, Protein: 7.6, Carbs: 20, Fat: 0.4, Fiber: 7.6,
		Vitamins: map[string]float64{"B1": 0.2, "B9": 0.2},
		Minerals: map[string]float64{"iron": 2.5, "zinc": 1.0},
	}},
	{"vegetables", models.NutrientProfile{
		Calories: 25, Protein: 2, Carbs: 5, Fat: 0.2, Fiber: 2.5,
		Vitamins: map[string]float64{"C": 60, "A": 500},
		Minerals: map[string]float64{"iron": 0.8, "calcium": 30},
	}},
}

var defaultNutrients = models.NutrientProfile{
	Calories: 50, Protein: 2, Carbs: 10, Fat: 1, Fiber: 2,
	Vitamins: map[string]float64{"C": 20},
	Minerals: map[string]float64{"iron": 0.5},
}

// Nutrients returns the per-100 g profile for a food: exact match, then a
// partial match in either direction, then a generic default. The returned
// profile is a copy and may be modified.
func Nutrients(name string) models.NutrientProfile {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, e := range nutrientTable {
		if e.name == n {
			return e.profile.Scaled(1)
		}
	}
	if n != "" {
		for _, e := range nutrientTable {
			if strings.Contains(n, e.name) || strings.Contains(e.name, n) {
				return e.profile.Scaled(1)
			}
		}
	}
	return defaultNutrients.Scaled(1)
}

// HasNutrients reports whether name resolves to a catalogued profile rather
// than the default.
func HasNutrients(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return false
	}
	for _, e := range nutrientTable {
		if e.name == n || strings.Contains(n, e.name) || strings.Contains(e.name, n) {
			return true
		}
	}
	return false
}
