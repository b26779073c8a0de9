// Package intake loads diet charts, daily agni histories and symptom
// questionnaires from YAML or JSON and converts them to engine inputs.
package intake

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vaidya/ahara/internal/agni"
	"github.com/vaidya/ahara/internal/compliance"
	"github.com/vaidya/ahara/internal/dosha"
	"github.com/vaidya/ahara/internal/models"
)

// Chart is a diet chart file.
type Chart struct {
	Name    string        `yaml:"name,omitempty" json:"name,omitempty"`
	Patient *PatientInput `yaml:"patient,omitempty" json:"patient,omitempty"`
	Meals   []models.Meal `yaml:"meals" json:"meals"`
}

// PatientInput is the optional patient block of a chart. Dosha is kept
// loose so that bad values are reported against their key.
type PatientInput struct {
	Age    int            `yaml:"age,omitempty" json:"age,omitempty"`
	Gender string         `yaml:"gender,omitempty" json:"gender,omitempty"`
	Dosha  map[string]any `yaml:"dosha,omitempty" json:"dosha,omitempty"`
	Agni   *AgniInput     `yaml:"agni,omitempty" json:"agni,omitempty"`
}

// AgniInput is a previously assessed agni state.
type AgniInput struct {
	Type     string `yaml:"type" json:"type"`
	Strength string `yaml:"strength,omitempty" json:"strength,omitempty"`
}

// History is a file of daily agni metrics, oldest first.
type History struct {
	Days []map[string]any `yaml:"days" json:"days"`
}

// ParseChart decodes chart bytes. Unknown keys are rejected.
func ParseChart(data []byte) (*Chart, error) {
	var c Chart
	if err := decodeStrict(data, &c); err != nil {
		return nil, fmt.Errorf("parsing chart: %w", err)
	}
	c.NormalizeMealTypes()
	return &c, nil
}

// NormalizeMealTypes replaces timing aliases such as "afternoon" with the
// canonical meal type. Invalid types are left for validation to report.
func (c *Chart) NormalizeMealTypes() {
	for i := range c.Meals {
		if t, err := models.ParseMealType(string(c.Meals[i].Type)); err == nil {
			c.Meals[i].Type = t
		}
	}
}

// LoadChart reads and decodes a chart file. The raw bytes are returned
// alongside for cache keying.
func LoadChart(path string) (*Chart, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading chart %s: %w", path, err)
	}
	c, err := ParseChart(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, data, nil
}

// PatientFor converts the chart's patient block. Demographics missing from
// the chart are taken from defaults.
func (c *Chart) PatientFor(defaults models.PatientProfile) (compliance.Patient, error) {
	p := compliance.Patient{Profile: defaults}
	in := c.Patient
	if in == nil {
		return p, nil
	}

	if in.Age < 0 {
		return compliance.Patient{}, models.NewInvalidInput("patient.age", in.Age, "must not be negative")
	}
	if in.Age > 0 {
		p.Profile.Age = in.Age
	}
	if in.Gender != "" {
		g, err := models.ParseGender(in.Gender)
		if err != nil {
			return compliance.Patient{}, models.NewInvalidInput("patient.gender", in.Gender, err.Error())
		}
		p.Profile.Gender = g
	}

	scores, err := dosha.DecodeScores(in.Dosha)
	if err != nil {
		return compliance.Patient{}, err
	}
	p.Dosha = scores

	if in.Agni != nil {
		state, err := in.Agni.State()
		if err != nil {
			return compliance.Patient{}, err
		}
		p.Agni = state
	}
	return p, nil
}

// State validates the input and returns it as an AgniState.
func (a AgniInput) State() (*models.AgniState, error) {
	t, err := models.ParseAgniType(a.Type)
	if err != nil {
		return nil, models.NewInvalidInput("patient.agni.type", a.Type, err.Error())
	}
	s := models.Strength(strings.ToLower(strings.TrimSpace(a.Strength)))
	switch s {
	case "", models.StrengthWeak, models.StrengthModerate, models.StrengthStrong:
	default:
		return nil, models.NewInvalidInput("patient.agni.strength", a.Strength, "must be weak, moderate, or strong")
	}
	return &models.AgniState{Type: t, Strength: s}, nil
}

// ParseHistory decodes a history document into daily metrics.
func ParseHistory(data []byte) ([]agni.DailyMetrics, error) {
	var h History
	if err := decodeStrict(data, &h); err != nil {
		return nil, fmt.Errorf("parsing history: %w", err)
	}
	return agni.DecodeHistory(h.Days)
}

// LoadHistory reads and decodes a history file.
func LoadHistory(path string) ([]agni.DailyMetrics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading history %s: %w", path, err)
	}
	days, err := ParseHistory(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return days, nil
}

// ParseSymptoms decodes a symptoms questionnaire.
func ParseSymptoms(data []byte) (agni.PatientData, error) {
	var pd agni.PatientData
	if err := decodeStrict(data, &pd); err != nil {
		return agni.PatientData{}, fmt.Errorf("parsing symptoms: %w", err)
	}
	if pd.Dosha != nil {
		if err := pd.Dosha.Validate(); err != nil {
			return agni.PatientData{}, err
		}
	}
	return pd, nil
}

// LoadSymptoms reads and decodes a symptoms file.
func LoadSymptoms(path string) (agni.PatientData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return agni.PatientData{}, fmt.Errorf("reading symptoms %s: %w", path, err)
	}
	pd, err := ParseSymptoms(data)
	if err != nil {
		return agni.PatientData{}, fmt.Errorf("%s: %w", path, err)
	}
	return pd, nil
}

// decodeStrict decodes YAML (and therefore JSON) rejecting unknown keys.
// An empty document decodes to the zero value.
func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
