// Package catalog is the static food reference: thermal and taste properties,
// incompatibility category tags and per-100 g nutrient profiles.
//
// All tables are built at package initialisation and never modified, so
// lookups are safe from any number of goroutines.
package catalog

import (
	"slices"
	"strings"

	"github.com/vaidya/ahara/internal/models"
)

// Default values for foods that are not catalogued.
const (
	DefaultIntensity = 0.3
)

type entry struct {
	name      string
	class     models.ThermalClass
	energy    models.ThermalEnergy
	intensity float64
	tastes    []models.Taste
}

const (
	sweet      = models.TasteSweet
	sour       = models.TasteSour
	salty      = models.TasteSalty
	pungent    = models.TastePungent
	bitter     = models.TasteBitter
	astringent = models.TasteAstringent
)

func hot(name string, intensity float64, tastes ...models.Taste) entry {
	return entry{name: name, class: models.ThermalHot, energy: models.EnergyHeating, intensity: intensity, tastes: tastes}
}

func cold(name string, intensity float64, tastes ...models.Taste) entry {
	return entry{name: name, class: models.ThermalCold, energy: models.EnergyCooling, intensity: intensity, tastes: tastes}
}

func neutral(name string, intensity float64, tastes ...models.Taste) entry {
	return entry{name: name, class: models.ThermalNeutral, energy: models.EnergyNeutral, intensity: intensity, tastes: tastes}
}

// entries is searched in order for substring matches after an exact match
// fails, so the first entry a name overlaps wins: "coconut milk" resolves to
// coconut and a bare "salt" to sea_salt.
var entries = []entry{
	hot("ginger", 0.8, pungent, sweet),
	hot("garlic", 0.9, pungent),
	hot("onion", 0.6, pungent),
	hot("chili", 1.0, pungent),
	hot("black_pepper", 0.9, pungent),
	hot("cinnamon", 0.7, sweet, pungent),
	hot("cardamom", 0.6, sweet, pungent),
	hot("cumin", 0.5, pungent, bitter),

	cold("coriander", 0.4, bitter, astringent),
	cold("mint", 0.8, pungent),
	cold("coconut", 0.6, sweet),
	cold("cucumber", 0.7, sweet, astringent),
	cold("watermelon", 0.8, sweet),
	cold("milk", 0.5, sweet),

	neutral("ghee", 0.3, sweet),
	neutral("rice", 0.2, sweet),
	neutral("wheat", 0.3, sweet),
	neutral("dal", 0.2, astringent, sweet),

	// Taste-only entries keep the neutral thermal default.
	neutral("dates", DefaultIntensity, sweet),
	neutral("honey", DefaultIntensity, sweet, astringent),
	neutral("lemon", DefaultIntensity, sour),
	neutral("lime", DefaultIntensity, sour),
	neutral("tamarind", DefaultIntensity, sour),
	neutral("yogurt", DefaultIntensity, sour),
	neutral("fermented_foods", DefaultIntensity, sour),
	neutral("citrus_fruits", DefaultIntensity, sour),
	neutral("sea_salt", DefaultIntensity, salty),
	neutral("rock_salt", DefaultIntensity, salty),
	neutral("seaweed", DefaultIntensity, salty),
	neutral("pickles", DefaultIntensity, salty, sour),
	neutral("salted_nuts", DefaultIntensity, salty),
	neutral("mustard", DefaultIntensity, pungent),
	neutral("bitter_gourd", DefaultIntensity, bitter),
	neutral("neem", DefaultIntensity, bitter),
	neutral("turmeric", DefaultIntensity, bitter, pungent),
	neutral("coffee", DefaultIntensity, bitter),
	neutral("dark_leafy_greens", DefaultIntensity, bitter),
	neutral("pomegranate", DefaultIntensity, astringent, sweet),
	neutral("green_tea", DefaultIntensity, astringent, bitter),
	neutral("unripe_banana", DefaultIntensity, astringent),
	neutral("lentils", DefaultIntensity, astringent),
	neutral("cabbage", DefaultIntensity, astringent),
}

var byName = func() map[string]entry {
	m := make(map[string]entry, len(entries))
	for _, e := range entries {
		m[e.name] = e
	}
	return m
}()

// Normalize lower-cases a food name, trims it and replaces spaces and hyphens
// with underscores.
func Normalize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(n)
}

// Lookup returns the properties of a food. Matching is exact first, then a
// substring match in either direction against catalogued names, and finally
// the neutral default. It never fails.
func Lookup(name string) models.FoodProperties {
	n := Normalize(name)
	if e, ok := find(n); ok {
		return e.properties()
	}
	return Default(n)
}

// Default returns the properties used for uncatalogued foods.
func Default(name string) models.FoodProperties {
	return models.FoodProperties{
		Name:          name,
		ThermalClass:  models.ThermalNeutral,
		ThermalEnergy: models.EnergyNeutral,
		Intensity:     DefaultIntensity,
	}
}

// Names returns the catalogued food names in search order.
func Names() []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

func find(n string) (entry, bool) {
	if n == "" {
		return entry{}, false
	}
	if e, ok := byName[n]; ok {
		return e, true
	}
	for _, e := range entries {
		if strings.Contains(n, e.name) || strings.Contains(e.name, n) {
			return e, true
		}
	}
	return entry{}, false
}

func (e entry) properties() models.FoodProperties {
	return models.FoodProperties{
		Name:          e.name,
		Tastes:        slices.Clone(e.tastes),
		ThermalClass:  e.class,
		ThermalEnergy: e.energy,
		Intensity:     e.intensity,
		Known:         true,
	}
}
