package models

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoodItem_Grams(t *testing.T) {
	tests := []struct {
		item FoodItem
		want float64
	}{
		{item: FoodItem{Name: "rice", Quantity: 200}, want: 200},
		{item: FoodItem{Name: "rice", Quantity: 1, Unit: UnitCups}, want: 250},
		{item: FoodItem{Name: "ghee", Quantity: 2, Unit: UnitTsp}, want: 10},
		{item: FoodItem{Name: "dal", Quantity: 0.5, Unit: UnitKg}, want: 500},
		{item: FoodItem{Name: "bread", Quantity: 2, Unit: UnitSlices}, want: 50},
	}
	for _, tt := range tests {
		t.Run(string(tt.item.Unit), func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.item.Grams(), 1e-9)
		})
	}
}

func TestFoodItem_Validate(t *testing.T) {
	tests := []struct {
		name  string
		item  FoodItem
		field string
	}{
		{name: "valid", item: FoodItem{Name: "rice", Quantity: 1, Unit: "Cups"}},
		{name: "zero quantity", item: FoodItem{Name: "rice"}, field: "foods[0].quantity"},
		{name: "negative quantity", item: FoodItem{Name: "rice", Quantity: -1}, field: "foods[0].quantity"},
		{name: "nan quantity", item: FoodItem{Name: "rice", Quantity: math.NaN()}, field: "foods[0].quantity"},
		{name: "unknown unit", item: FoodItem{Name: "rice", Quantity: 1, Unit: "bushels"}, field: "foods[0].unit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFoods([]FoodItem{tt.item})
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var invalid *InvalidInputError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestParseTaste(t *testing.T) {
	got, err := ParseTaste(" Pungent")
	require.NoError(t, err)
	assert.Equal(t, TastePungent, got)

	_, err = ParseTaste("umami")
	assert.Error(t, err)
}

func TestNutrientProfile_ScaledAndAdd(t *testing.T) {
	base := NutrientProfile{Calories: 100, Protein: 10, Vitamins: map[string]float64{"C": 4}}

	half := base.Scaled(0.5)
	assert.InDelta(t, 50, half.Calories, 1e-9)
	assert.InDelta(t, 2, half.Vitamins["C"], 1e-9)

	half.Vitamins["C"] = 99
	assert.InDelta(t, 4, base.Vitamins["C"], 1e-9, "Scaled must copy maps")

	var total NutrientProfile
	total.Add(base)
	total.Add(NutrientProfile{Calories: 20, Minerals: map[string]float64{"iron": 1}})
	assert.InDelta(t, 120, total.Get(NutrientCalories), 1e-9)
	assert.InDelta(t, 10, total.Get(NutrientProtein), 1e-9)
	assert.Equal(t, map[string]float64{"iron": 1}, total.Minerals)
	assert.Equal(t, []string{"rice", "dal"}, FoodNames([]FoodItem{{Name: "rice"}, {Name: "dal"}}))
}
