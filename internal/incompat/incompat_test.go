package incompat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaidya/ahara/internal/catalog"
	"github.com/vaidya/ahara/internal/models"
)

func TestCheckPair_MilkAndFish(t *testing.T) {
	res := CheckPair("milk", "fish")

	assert.True(t, res.Incompatible)
	assert.Equal(t, models.SeverityHigh, res.Severity)
	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, "Milk and fish have opposite properties and cause digestive issues", res.Conflicts[0].Reason)
	assert.Equal(t, []string{
		"Avoid milk with fish: Milk and fish have opposite properties and cause digestive issues",
	}, res.Recommendations)
}

func TestCheckPair_Severity(t *testing.T) {
	tests := []struct {
		a, b string
		want models.Severity
	}{
		{"banana", "lemon", models.SeverityLow},
		{"chili", "cucumber", models.SeverityLow},
		{"honey", "ghee", models.SeverityHigh},
		{"rice", "ginger", models.SeverityNone},
		{"yogurt", "fish", models.SeverityHigh},
	}
	for _, tt := range tests {
		t.Run(tt.a+"+"+tt.b, func(t *testing.T) {
			res := CheckPair(tt.a, tt.b)
			assert.Equal(t, tt.want, res.Severity)
			assert.Equal(t, tt.want != models.SeverityNone, res.Incompatible)
		})
	}
}

func TestCheckPair_ReverseReasonLookup(t *testing.T) {
	res := CheckPair("cucumber", "chili")
	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, "Hot and cold foods together confuse digestive fire", res.Conflicts[0].Reason)
}

func TestCheckPair_FallbackReason(t *testing.T) {
	res := CheckPair("banana", "lemon")
	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, "banana and sour_fruits are incompatible according to Ayurveda", res.Conflicts[0].Reason)
}

func TestCheckPair_Symmetric(t *testing.T) {
	foods := []string{"milk", "fish", "banana", "lemon", "yogurt", "honey", "chili", "cucumber", "salad", "rice", "pickle", "chicken", "jaggery", "mango"}
	for _, a := range foods {
		for _, b := range foods {
			ab := CheckPair(a, b)
			ba := CheckPair(b, a)
			assert.Equal(t, ab.Incompatible, ba.Incompatible, "%s/%s", a, b)
			assert.Equal(t, ab.Severity, ba.Severity, "%s/%s", a, b)
			assert.ElementsMatch(t, conflictKeys(ab.Conflicts), conflictKeys(ba.Conflicts), "%s/%s", a, b)
		}
	}
}

func conflictKeys(cs []Conflict) []categoryPair {
	keys := make([]categoryPair, len(cs))
	for i, c := range cs {
		keys[i] = unordered(c.CategoryA, c.CategoryB)
	}
	return keys
}

func TestCheckMeal_Trivial(t *testing.T) {
	for _, foods := range [][]string{nil, {}, {"milk"}} {
		res := CheckMeal(foods)
		assert.Zero(t, res.IncompatibilityRatio)
		assert.True(t, res.SafeToEat)
		assert.Equal(t, models.SeverityNone, res.Severity)
		assert.Equal(t, "Safe", res.Recommendation.Status)
		assert.Empty(t, res.IncompatiblePairs)
	}
}

func TestCheckMeal_Conflicts(t *testing.T) {
	res := CheckMeal([]string{"milk", "fish", "ginger"})

	assert.Equal(t, []Pair{{A: "milk", B: "fish"}}, res.IncompatiblePairs)
	assert.Equal(t, 1, res.TotalConflicts)
	assert.InDelta(t, 1.0/3, res.IncompatibilityRatio, 1e-9)
	assert.False(t, res.SafeToEat)
	assert.Equal(t, models.SeverityHigh, res.Severity)
	assert.Equal(t, "Incompatible", res.Recommendation.Status)
	assert.Equal(t, "Found 1 incompatible food pairs", res.Recommendation.Message)
	assert.Equal(t, []string{"Remove milk or fish from the meal"}, res.Recommendation.Suggestions)
	assert.Equal(t, models.PriorityMedium, res.Recommendation.Priority)
}

func TestCheckMeal_SafeBelowRatio(t *testing.T) {
	res := CheckMeal([]string{"banana", "lemon", "ginger", "wheat"})

	assert.Len(t, res.IncompatiblePairs, 1)
	assert.InDelta(t, 1.0/6, res.IncompatibilityRatio, 1e-9)
	assert.True(t, res.SafeToEat)
	assert.Equal(t, models.SeverityLow, res.Severity)
}

func TestCheckMeal_ManyConflictsHighPriority(t *testing.T) {
	res := CheckMeal([]string{"banana", "lemon", "yogurt"})

	assert.Equal(t, 3, res.TotalConflicts)
	assert.Equal(t, models.PriorityHigh, res.Recommendation.Priority)
	assert.Len(t, res.Recommendation.Suggestions, 3)
}

func TestSuggestAlternatives(t *testing.T) {
	alts := SuggestAlternatives([]Pair{{A: "milk", B: "fish"}, {A: "Paneer", B: "lemon"}, {A: "quinoa", B: "honey"}})

	require.Len(t, alts.Pairs, 3)
	assert.Equal(t, []string{"coconut_milk", "almond_milk", "soy_milk"}, alts.Pairs[0].Alternatives)
	assert.Equal(t, "Eat milk and fish at least 2-3 hours apart", alts.Pairs[0].TimingSuggestions[0])
	assert.Equal(t, alternativeFoods[catalog.CategoryMilk], alts.Pairs[1].Alternatives)
	assert.Equal(t, defaultAlternatives, alts.Pairs[2].Alternatives)
	assert.Len(t, alts.GeneralAdvice, 4)
}
