package agni

import (
	"errors"
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/vaidya/ahara/internal/models"
)

// Feature positions in a daily feature vector.
const (
	FeatureAppetite = iota
	FeatureDigestion
	FeatureBowelFrequency
	FeatureEnergy
	FeatureSleep
	FeatureStress
	FeatureMealTiming
	FeatureWater
	FeatureExercise
	FeatureWeather

	FeatureCount
)

// FeatureNames names the daily features in vector order.
var FeatureNames = [FeatureCount]string{
	"appetite_score",
	"digestion_quality",
	"bowel_movement_frequency",
	"energy_level",
	"sleep_quality",
	"stress_level",
	"meal_timing_consistency",
	"water_intake",
	"exercise_frequency",
	"weather_impact",
}

// missingFeature stands in for any metric that was not recorded.
const missingFeature = 0.5

// DailyMetrics is one day of self-reported digestive data. Nil fields were
// not recorded.
type DailyMetrics struct {
	AppetiteScore          *float64 `json:"appetite_score,omitempty" yaml:"appetite_score,omitempty" mapstructure:"appetite_score"`
	DigestionQuality       *float64 `json:"digestion_quality,omitempty" yaml:"digestion_quality,omitempty" mapstructure:"digestion_quality"`
	BowelMovementFrequency *float64 `json:"bowel_movement_frequency,omitempty" yaml:"bowel_movement_frequency,omitempty" mapstructure:"bowel_movement_frequency"`
	EnergyLevel            *float64 `json:"energy_level,omitempty" yaml:"energy_level,omitempty" mapstructure:"energy_level"`
	SleepQuality           *float64 `json:"sleep_quality,omitempty" yaml:"sleep_quality,omitempty" mapstructure:"sleep_quality"`
	StressLevel            *float64 `json:"stress_level,omitempty" yaml:"stress_level,omitempty" mapstructure:"stress_level"`
	MealTimingConsistency  *bool    `json:"meal_timing_consistency,omitempty" yaml:"meal_timing_consistency,omitempty" mapstructure:"meal_timing_consistency"`
	WaterIntake            *float64 `json:"water_intake,omitempty" yaml:"water_intake,omitempty" mapstructure:"water_intake"`
	ExerciseFrequency      *float64 `json:"exercise_frequency,omitempty" yaml:"exercise_frequency,omitempty" mapstructure:"exercise_frequency"`
	WeatherImpact          *float64 `json:"weather_impact,omitempty" yaml:"weather_impact,omitempty" mapstructure:"weather_impact"`
}

func scaled(v *float64, lo, hi float64) float64 {
	if v == nil {
		return missingFeature
	}
	return min(max(*v, lo), hi) / hi
}

// Features converts the metrics to a vector in FeatureNames order, each in
// [0,1]. Scales are appetite, digestion, energy, sleep and stress 0-10,
// bowel movements 0-3 a day, water 0-3 litres, exercise 0-7 a week and
// weather -5..5.
func (m DailyMetrics) Features() []float64 {
	f := make([]float64, FeatureCount)
	f[FeatureAppetite] = scaled(m.AppetiteScore, 0, 10)
	f[FeatureDigestion] = scaled(m.DigestionQuality, 0, 10)
	f[FeatureBowelFrequency] = scaled(m.BowelMovementFrequency, 0, 3)
	f[FeatureEnergy] = scaled(m.EnergyLevel, 0, 10)
	f[FeatureSleep] = scaled(m.SleepQuality, 0, 10)
	f[FeatureStress] = scaled(m.StressLevel, 0, 10)
	f[FeatureMealTiming] = missingFeature
	if m.MealTimingConsistency != nil {
		f[FeatureMealTiming] = 0
		if *m.MealTimingConsistency {
			f[FeatureMealTiming] = 1
		}
	}
	f[FeatureWater] = scaled(m.WaterIntake, 0, 3)
	f[FeatureExercise] = scaled(m.ExerciseFrequency, 0, 7)
	f[FeatureWeather] = missingFeature
	if m.WeatherImpact != nil {
		f[FeatureWeather] = (min(max(*m.WeatherImpact, -5), 5) + 5) / 10
	}
	return f
}

// DecodeDailyMetrics decodes a loosely typed record, such as a parsed YAML or
// JSON object. Unknown keys and non-numeric values are rejected.
func DecodeDailyMetrics(raw map[string]any) (DailyMetrics, error) {
	var m DailyMetrics
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &m,
		ErrorUnused: true,
	})
	if err != nil {
		return DailyMetrics{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return DailyMetrics{}, models.NewInvalidInput("daily_metrics", nil, err.Error())
	}
	return m, nil
}

// DecodeHistory decodes each record of a history, naming the failing index.
func DecodeHistory(raw []map[string]any) ([]DailyMetrics, error) {
	out := make([]DailyMetrics, 0, len(raw))
	for i, r := range raw {
		m, err := DecodeDailyMetrics(r)
		if err != nil {
			return nil, models.NewInvalidInput(fmt.Sprintf("history[%d]", i), nil, reasonOf(err))
		}
		out = append(out, m)
	}
	return out, nil
}

func reasonOf(err error) string {
	var invalid *models.InvalidInputError
	if errors.As(err, &invalid) {
		return invalid.Reason
	}
	return err.Error()
}
