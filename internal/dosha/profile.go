package dosha

import (
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/vaidya/ahara/internal/models"
)

// Profile is the self-description a constitution is classified from. Empty
// fields are unknown.
type Profile struct {
	Age               float64 `json:"age,omitempty" yaml:"age,omitempty" mapstructure:"age"`
	Gender            string  `json:"gender,omitempty" yaml:"gender,omitempty" mapstructure:"gender"`
	BodyType          string  `json:"body_type,omitempty" yaml:"body_type,omitempty" mapstructure:"body_type"`
	SkinType          string  `json:"skin_type,omitempty" yaml:"skin_type,omitempty" mapstructure:"skin_type"`
	HairType          string  `json:"hair_type,omitempty" yaml:"hair_type,omitempty" mapstructure:"hair_type"`
	Appetite          string  `json:"appetite,omitempty" yaml:"appetite,omitempty" mapstructure:"appetite"`
	Digestion         string  `json:"digestion,omitempty" yaml:"digestion,omitempty" mapstructure:"digestion"`
	SleepPattern      string  `json:"sleep_pattern,omitempty" yaml:"sleep_pattern,omitempty" mapstructure:"sleep_pattern"`
	EnergyLevel       string  `json:"energy_level,omitempty" yaml:"energy_level,omitempty" mapstructure:"energy_level"`
	MoodStability     string  `json:"mood_stability,omitempty" yaml:"mood_stability,omitempty" mapstructure:"mood_stability"`
	WeatherPreference string  `json:"weather_preference,omitempty" yaml:"weather_preference,omitempty" mapstructure:"weather_preference"`
	ExerciseTolerance string  `json:"exercise_tolerance,omitempty" yaml:"exercise_tolerance,omitempty" mapstructure:"exercise_tolerance"`
}

// FeatureNames names the FeaturesFromProfile vector.
var FeatureNames = []string{
	"age", "gender", "body_type", "skin_type", "hair_type",
	"appetite", "digestion", "sleep_pattern", "energy_level",
	"mood_stability", "weather_preference", "exercise_tolerance",
}

// unknownFeature stands in for missing or unrecognised answers.
const unknownFeature = 0.5

// scale maps a three-level answer to 0, 0.5 and 1.
type scale [3]string

func (s scale) value(answer string) float64 {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case s[0]:
		return 0
	case s[2]:
		return 1
	}
	return unknownFeature
}

var (
	bodyScale     = scale{"thin", "medium", "heavy"}
	textureScale  = scale{"dry", "normal", "oily"}
	levelScale    = scale{"low", "normal", "high"}
	speedScale    = scale{"slow", "normal", "fast"}
	sleepScale    = scale{"light", "normal", "deep"}
	energyScale   = scale{"low", "moderate", "high"}
	moodScale     = scale{"unstable", "moderate", "stable"}
	weatherScale  = scale{"cold", "moderate", "warm"}
	exerciseScale = scale{"low", "moderate", "high"}
)

// FeaturesFromProfile converts a profile to a vector in FeatureNames order,
// each value in [0,1].
func FeaturesFromProfile(p Profile) []float64 {
	age := unknownFeature
	if p.Age > 0 {
		age = min(p.Age/100, 1)
	}
	gender := unknownFeature
	switch strings.ToLower(strings.TrimSpace(p.Gender)) {
	case string(models.GenderMale):
		gender = 1
	case string(models.GenderFemale):
		gender = 0
	}
	return []float64{
		age,
		gender,
		bodyScale.value(p.BodyType),
		textureScale.value(p.SkinType),
		textureScale.value(p.HairType),
		levelScale.value(p.Appetite),
		speedScale.value(p.Digestion),
		sleepScale.value(p.SleepPattern),
		energyScale.value(p.EnergyLevel),
		moodScale.value(p.MoodStability),
		weatherScale.value(p.WeatherPreference),
		exerciseScale.value(p.ExerciseTolerance),
	}
}

// DecodeProfile decodes a loosely typed profile. Unknown keys are rejected.
func DecodeProfile(raw map[string]any) (Profile, error) {
	var p Profile
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &p,
		ErrorUnused: true,
	})
	if err != nil {
		return Profile{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Profile{}, models.NewInvalidInput("profile", nil, err.Error())
	}
	return p, nil
}

// DecodeScores decodes a {vata, pitta, kapha} map. Missing doshas are zero.
// Unknown keys, non-numeric values and negative values are rejected with an
// error naming the key. The result is not normalised.
func DecodeScores(raw map[string]any) (models.DoshaScores, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var out models.DoshaScores
	for _, k := range keys {
		field := "dosha_scores." + k
		d, err := models.ParseDosha(k)
		if err != nil {
			return models.DoshaScores{}, models.NewInvalidInput(field, nil, "unknown dosha")
		}
		var v float64
		if err := mapstructure.Decode(raw[k], &v); err != nil || raw[k] == nil {
			return models.DoshaScores{}, models.NewInvalidInput(field, raw[k], "must be a number")
		}
		switch d {
		case models.Vata:
			out.Vata = v
		case models.Pitta:
			out.Pitta = v
		case models.Kapha:
			out.Kapha = v
		}
	}
	if err := out.Validate(); err != nil {
		return models.DoshaScores{}, err
	}
	return out, nil
}
