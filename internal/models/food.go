package models

import (
	"fmt"
	"math"
	"strings"
)

// Unit is the unit a FoodItem quantity is expressed in.
type Unit string

const (
	UnitGrams  Unit = "grams"
	UnitKg     Unit = "kg"
	UnitCups   Unit = "cups"
	UnitTbsp   Unit = "tbsp"
	UnitTsp    Unit = "tsp"
	UnitPieces Unit = "pieces"
	UnitSlices Unit = "slices"
)

// gramsPerUnit holds the fixed conversion factors. Cups, pieces and slices are
// household approximations.
var gramsPerUnit = map[Unit]float64{
	UnitGrams:  1,
	UnitKg:     1000,
	UnitCups:   250,
	UnitTbsp:   15,
	UnitTsp:    5,
	UnitPieces: 50,
	UnitSlices: 25,
}

// ParseUnit converts a user-supplied unit. An empty string means grams.
func ParseUnit(s string) (Unit, error) {
	u := Unit(strings.ToLower(strings.TrimSpace(s)))
	if u == "" {
		return UnitGrams, nil
	}
	if _, ok := gramsPerUnit[u]; !ok {
		return UnitGrams, fmt.Errorf("invalid unit %q: must be grams, kg, cups, tbsp, tsp, pieces, or slices", s)
	}
	return u, nil
}

// GramsPer returns how many grams one of u weighs.
func (u Unit) GramsPer() float64 {
	if u == "" {
		return 1
	}
	return gramsPerUnit[u]
}

// FoodItem is one entry of a meal.
type FoodItem struct {
	Name     string  `json:"name" yaml:"name"`
	Quantity float64 `json:"quantity" yaml:"quantity"`
	Unit     Unit    `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// Grams returns the quantity normalized to grams.
func (f FoodItem) Grams() float64 {
	return f.Quantity * f.Unit.GramsPer()
}

// Validate checks the quantity and unit. field prefixes the reported field
// name, e.g. "meals[0].foods[2]".
func (f FoodItem) Validate(field string) error {
	if math.IsNaN(f.Quantity) || math.IsInf(f.Quantity, 0) || f.Quantity <= 0 {
		return NewInvalidInput(field+".quantity", f.Quantity, "must be a positive number")
	}
	if _, err := ParseUnit(string(f.Unit)); err != nil {
		return NewInvalidInput(field+".unit", f.Unit, err.Error())
	}
	return nil
}

// ValidateFoods validates every item and returns the first failure.
func ValidateFoods(foods []FoodItem) error {
	for i, f := range foods {
		if err := f.Validate(fmt.Sprintf("foods[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

// FoodNames returns the names of foods in order.
func FoodNames(foods []FoodItem) []string {
	names := make([]string, len(foods))
	for i, f := range foods {
		names[i] = f.Name
	}
	return names
}

// Taste is one of the six rasas.
type Taste string

const (
	TasteSweet      Taste = "sweet"
	TasteSour       Taste = "sour"
	TasteSalty      Taste = "salty"
	TastePungent    Taste = "pungent"
	TasteBitter     Taste = "bitter"
	TasteAstringent Taste = "astringent"
)

// AllTastes lists the rasas in their canonical order. Ties between tastes
// are always resolved in this order.
var AllTastes = []Taste{TasteSweet, TasteSour, TasteSalty, TastePungent, TasteBitter, TasteAstringent}

// ParseTaste converts a string to a Taste.
func ParseTaste(s string) (Taste, error) {
	t := Taste(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllTastes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid taste %q", s)
}

// ThermalClass is a food's guna: hot, cold or neutral.
type ThermalClass string

const (
	ThermalHot     ThermalClass = "hot"
	ThermalCold    ThermalClass = "cold"
	ThermalNeutral ThermalClass = "neutral"
)

// ThermalEnergy is a food's virya: heating, cooling or neutral.
type ThermalEnergy string

const (
	EnergyHeating ThermalEnergy = "heating"
	EnergyCooling ThermalEnergy = "cooling"
	EnergyNeutral ThermalEnergy = "neutral"
)

// FoodProperties describes a catalogued food. Values are shared and must not
// be modified by callers.
type FoodProperties struct {
	Name          string        `json:"name"`
	Tastes        []Taste       `json:"tastes"`
	ThermalClass  ThermalClass  `json:"thermal_class"`
	ThermalEnergy ThermalEnergy `json:"thermal_energy"`
	Intensity     float64       `json:"intensity"`
	Known         bool          `json:"known"`
}

// NutrientProfile holds macro- and micronutrients. Catalog profiles are per
// 100 g; aggregates are absolute.
type NutrientProfile struct {
	Calories float64            `json:"calories" yaml:"calories"`
	Protein  float64            `json:"protein" yaml:"protein"`
	Carbs    float64            `json:"carbs" yaml:"carbs"`
	Fat      float64            `json:"fat" yaml:"fat"`
	Fiber    float64            `json:"fiber" yaml:"fiber"`
	Vitamins map[string]float64 `json:"vitamins,omitempty" yaml:"vitamins,omitempty"`
	Minerals map[string]float64 `json:"minerals,omitempty" yaml:"minerals,omitempty"`
}

// Macronutrient names a scalar field of NutrientProfile.
type Macronutrient string

const (
	NutrientCalories Macronutrient = "calories"
	NutrientProtein  Macronutrient = "protein"
	NutrientCarbs    Macronutrient = "carbs"
	NutrientFat      Macronutrient = "fat"
	NutrientFiber    Macronutrient = "fiber"
)

// Macronutrients lists the scalar nutrients in report order.
var Macronutrients = []Macronutrient{NutrientCalories, NutrientProtein, NutrientCarbs, NutrientFat, NutrientFiber}

// Get returns the value of a scalar nutrient.
func (p NutrientProfile) Get(n Macronutrient) float64 {
	switch n {
	case NutrientCalories:
		return p.Calories
	case NutrientProtein:
		return p.Protein
	case NutrientCarbs:
		return p.Carbs
	case NutrientFat:
		return p.Fat
	case NutrientFiber:
		return p.Fiber
	}
	return 0
}

// Scaled returns a copy with every field multiplied by factor.
func (p NutrientProfile) Scaled(factor float64) NutrientProfile {
	out := NutrientProfile{
		Calories: p.Calories * factor,
		Protein:  p.Protein * factor,
		Carbs:    p.Carbs * factor,
		Fat:      p.Fat * factor,
		Fiber:    p.Fiber * factor,
	}
	out.Vitamins = scaleMap(p.Vitamins, factor)
	out.Minerals = scaleMap(p.Minerals, factor)
	return out
}

// Add accumulates o into p component-wise, taking the keyed union of the
// vitamin and mineral maps.
func (p *NutrientProfile) Add(o NutrientProfile) {
	p.Calories += o.Calories
	p.Protein += o.Protein
	p.Carbs += o.Carbs
	p.Fat += o.Fat
	p.Fiber += o.Fiber
	p.Vitamins = addMap(p.Vitamins, o.Vitamins)
	p.Minerals = addMap(p.Minerals, o.Minerals)
}

func scaleMap(m map[string]float64, factor float64) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v * factor
	}
	return out
}

func addMap(dst, src map[string]float64) map[string]float64 {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]float64, len(src))
	}
	for k, v := range src {
		dst[k] += v
	}
	return dst
}
