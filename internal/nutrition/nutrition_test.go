package nutrition

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaidya/ahara/internal/models"
)

func TestAggregateMeal(t *testing.T) {
	p, err := AggregateMeal([]models.FoodItem{
		{Name: "rice", Quantity: 200},
		{Name: "ghee", Quantity: 1, Unit: models.UnitTbsp},
	})
	require.NoError(t, err)

	assert.InDelta(t, 260+135, p.Calories, 1e-9)
	assert.InDelta(t, 5.4, p.Protein, 1e-9)
	assert.InDelta(t, 0.6+15, p.Fat, 1e-9)
	assert.InDelta(t, 1.6, p.Minerals["iron"], 1e-9)
	assert.InDelta(t, 460.35, p.Vitamins["A"], 1e-9)
	assert.Contains(t, p.Minerals, "sodium")
}

func TestAggregateMeal_Linear(t *testing.T) {
	foods := []models.FoodItem{
		{Name: "rice", Quantity: 150},
		{Name: "dal", Quantity: 0.5, Unit: models.UnitCups},
		{Name: "unknown leaf", Quantity: 3, Unit: models.UnitPieces},
	}
	doubled := make([]models.FoodItem, len(foods))
	for i, f := range foods {
		f.Quantity *= 2
		doubled[i] = f
	}

	single, err := AggregateMeal(foods)
	require.NoError(t, err)
	double, err := AggregateMeal(doubled)
	require.NoError(t, err)

	assert.Equal(t, single.Scaled(2), double)
}

func TestAggregateMeal_Invalid(t *testing.T) {
	_, err := AggregateMeal([]models.FoodItem{{Name: "rice", Quantity: -1}})

	var invalid *models.InvalidInputError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "foods[0].quantity", invalid.Field)

	_, err = AggregateMeal([]models.FoodItem{{Name: "rice", Quantity: 1, Unit: "bowls"}})
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "foods[0].unit", invalid.Field)
}

func TestDailyRequirement(t *testing.T) {
	tests := []struct {
		name    string
		profile models.PatientProfile
		want    float64
	}{
		{"toddler", models.PatientProfile{Age: 2}, 1000},
		{"young child", models.PatientProfile{Age: 5, Gender: models.GenderFemale}, 1200},
		{"older child", models.PatientProfile{Age: 12}, 1600},
		{"teen", models.PatientProfile{Age: 17}, 1600},
		{"adult male", models.PatientProfile{Age: 40, Gender: models.GenderMale}, 2500},
		{"adult female", models.PatientProfile{Age: 40, Gender: models.GenderFemale}, 2000},
		{"elderly male", models.PatientProfile{Age: 65, Gender: models.GenderMale}, 2200},
		{"elderly female", models.PatientProfile{Age: 70, Gender: models.GenderFemale}, 1800},
		{"defaults", models.PatientProfile{}, 2500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DailyRequirement(tt.profile).Calories)
		})
	}
}

func TestAnalyzeBalance_ExactRequirement(t *testing.T) {
	need := DailyRequirement(models.PatientProfile{Age: 30, Gender: models.GenderMale})

	a := AnalyzeBalance(need, need)

	assert.Equal(t, 1.0, a.Overall)
	assert.Equal(t, StatusExcellent, a.Status)
	assert.Empty(t, a.Recommendations)
	for _, n := range models.Macronutrients {
		assert.Equal(t, 1.0, a.Scores[n], string(n))
	}
}

func TestAnalyzeBalance_Deficit(t *testing.T) {
	need := DailyRequirement(models.PatientProfile{})

	a := AnalyzeBalance(models.NutrientProfile{}, need)

	assert.Zero(t, a.Overall)
	assert.Equal(t, StatusPoor, a.Status)
	assert.Equal(t, []string{
		"Increase calories by 2500.0g",
		"Increase protein by 65.0g",
		"Increase carbs by 300.0g",
		"Increase fat by 83.0g",
		"Increase fiber by 38.0g",
	}, a.Recommendations)
}

func TestAnalyzeBalance_Excess(t *testing.T) {
	need := DailyRequirement(models.PatientProfile{})
	actual := need
	actual.Protein = 130

	a := AnalyzeBalance(actual, need)

	assert.Equal(t, 1.0, a.Scores[models.NutrientProtein])
	assert.Equal(t, 2.0, a.Ratios[models.NutrientProtein])
	assert.Equal(t, []string{"Reduce protein by 65.0g"}, a.Recommendations)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, StatusExcellent, StatusFor(0.9))
	assert.Equal(t, StatusGood, StatusFor(0.7))
	assert.Equal(t, StatusFair, StatusFor(0.5))
	assert.Equal(t, StatusPoor, StatusFor(0.49))
}

func TestAnalyzeDietBalance(t *testing.T) {
	meals := []models.Meal{
		{Type: models.MealBreakfast, Foods: []models.FoodItem{{Name: "milk", Quantity: 250}}},
		{Type: models.MealLunch, Foods: []models.FoodItem{{Name: "rice", Quantity: 200}, {Name: "dal", Quantity: 150}}},
	}

	a, err := AnalyzeDietBalance(meals, models.PatientProfile{Age: 35, Gender: models.GenderFemale})
	require.NoError(t, err)

	assert.InDelta(t, 105+260+174, a.Totals.Calories, 1e-9)
	assert.Equal(t, 2000.0, a.Requirements.Calories)
	assert.Less(t, a.Overall, 0.7)
	assert.NotEmpty(t, a.Recommendations)
}

func TestAnalyzeDietBalance_InvalidMeal(t *testing.T) {
	_, err := AnalyzeDietBalance([]models.Meal{
		{Type: models.MealLunch, Foods: []models.FoodItem{{Name: "rice", Quantity: 100}}},
		{Type: "brunch"},
	}, models.PatientProfile{})

	var invalid *models.InvalidInputError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "meals[1].type", invalid.Field)
}

func TestSuggestImprovements(t *testing.T) {
	target := DailyRequirement(models.PatientProfile{})
	current := models.NutrientProfile{Calories: 2000, Protein: 13, Carbs: 300, Fat: 0, Fiber: 19}

	imp := SuggestImprovements(current, target)

	assert.Len(t, imp.Needed, 4)
	assert.NotContains(t, imp.Needed, models.NutrientCarbs)
	assert.Equal(t, []models.Macronutrient{models.NutrientFat, models.NutrientProtein, models.NutrientFiber}, imp.Priority)
	assert.InDelta(t, 80.0, imp.Needed[models.NutrientProtein].Percentage, 1e-9)
	assert.Contains(t, imp.Needed[models.NutrientFat].Suggestions, "ghee")
}

func TestMealShare(t *testing.T) {
	var total float64
	for _, mt := range models.MealTypes {
		total += MealShare(mt)
	}
	assert.InDelta(t, 1.0, total, 1e-9)
	assert.Equal(t, 0.35, MealShare(models.MealLunch))
}
