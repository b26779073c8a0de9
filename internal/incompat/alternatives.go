package incompat

import (
	"fmt"
	"strings"

	"github.com/vaidya/ahara/internal/catalog"
)

var alternativeFoods = map[catalog.Category][]string{
	catalog.CategoryMilk:       {"coconut_milk", "almond_milk", "soy_milk"},
	catalog.CategoryFish:       {"paneer", "tofu", "mushrooms"},
	catalog.CategorySourFruits: {"sweet_fruits", "neutral_fruits"},
	catalog.CategoryBanana:     {"apple", "pear", "grapes"},
	catalog.CategoryYogurt:     {"coconut_yogurt", "almond_yogurt"},
}

var defaultAlternatives = []string{"Try different preparation method", "Use in different meal"}

var generalAdvice = []string{
	"Follow traditional food combining principles",
	"Eat foods in their natural season",
	"Consider your dosha constitution when combining foods",
	"When in doubt, keep it simple and traditional",
}

// Alternative holds substitutions and timing advice for one incompatible pair.
type Alternative struct {
	Pair              Pair     `json:"incompatible_pair"`
	Alternatives      []string `json:"alternatives"`
	TimingSuggestions []string `json:"timing_suggestions"`
}

// Alternatives is the result of SuggestAlternatives.
type Alternatives struct {
	Pairs         []Alternative `json:"pairs"`
	GeneralAdvice []string      `json:"general_advice"`
}

// SuggestAlternatives proposes replacements for the first food of each pair
// and ways to separate the two in time.
func SuggestAlternatives(pairs []Pair) Alternatives {
	out := Alternatives{
		Pairs:         make([]Alternative, 0, len(pairs)),
		GeneralAdvice: append([]string(nil), generalAdvice...),
	}
	for _, p := range pairs {
		out.Pairs = append(out.Pairs, Alternative{
			Pair:         p,
			Alternatives: alternativesFor(p.A),
			TimingSuggestions: []string{
				fmt.Sprintf("Eat %s and %s at least 2-3 hours apart", p.A, p.B),
				"Have one in the morning and other in the evening",
				"Consider having them on different days",
			},
		})
	}
	return out
}

// alternativesFor matches the food name itself first, then its categories.
func alternativesFor(food string) []string {
	if alts, ok := alternativeFoods[catalog.Category(strings.ToLower(strings.TrimSpace(food)))]; ok {
		return append([]string(nil), alts...)
	}
	for _, c := range catalog.Categories(food) {
		if alts, ok := alternativeFoods[c]; ok {
			return append([]string(nil), alts...)
		}
	}
	return append([]string(nil), defaultAlternatives...)
}
