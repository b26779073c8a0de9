package models

import (
	"fmt"
	"strings"
)

// MealType identifies when in the day a meal is eaten.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MealTypes lists meal types in report order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// ParseMealType accepts the canonical names and the timing aliases morning,
// afternoon and evening.
func ParseMealType(s string) (MealType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "breakfast", "morning":
		return MealBreakfast, nil
	case "lunch", "afternoon":
		return MealLunch, nil
	case "dinner", "evening":
		return MealDinner, nil
	case "snack":
		return MealSnack, nil
	default:
		return "", fmt.Errorf("invalid meal type %q: must be breakfast, lunch, dinner, or snack", s)
	}
}

// Meal is one diet-chart entry. The engine never mutates it.
type Meal struct {
	Type  MealType   `json:"type" yaml:"type"`
	Foods []FoodItem `json:"foods" yaml:"foods"`
}

// Validate checks the meal type and each food. index is used in field names.
func (m Meal) Validate(index int) error {
	if _, err := ParseMealType(string(m.Type)); err != nil {
		return NewInvalidInput(fmt.Sprintf("meals[%d].type", index), m.Type, err.Error())
	}
	for i, f := range m.Foods {
		if err := f.Validate(fmt.Sprintf("meals[%d].foods[%d]", index, i)); err != nil {
			return err
		}
	}
	return nil
}

// Gender selects a row of the requirement table.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ParseGender converts a string to a Gender.
func ParseGender(s string) (Gender, error) {
	switch Gender(strings.ToLower(strings.TrimSpace(s))) {
	case GenderMale:
		return GenderMale, nil
	case GenderFemale:
		return GenderFemale, nil
	default:
		return GenderMale, fmt.Errorf("invalid gender %q: must be male or female", s)
	}
}

// PatientProfile carries the demographics used for nutrient targets.
type PatientProfile struct {
	Age    int    `json:"age,omitempty" yaml:"age,omitempty"`
	Gender Gender `json:"gender,omitempty" yaml:"gender,omitempty"`
}
