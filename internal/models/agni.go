package models

import (
	"fmt"
	"strings"
)

// AgniType classifies digestive fire.
type AgniType string

const (
	AgniVishama AgniType = "vishama" // irregular
	AgniTikshna AgniType = "tikshna" // sharp
	AgniManda   AgniType = "manda"   // slow
	AgniSama    AgniType = "sama"    // balanced
)

// AgniTypes lists the types in tie-breaking order.
var AgniTypes = []AgniType{AgniVishama, AgniTikshna, AgniManda, AgniSama}

// ParseAgniType converts a string to an AgniType.
func ParseAgniType(s string) (AgniType, error) {
	t := AgniType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AgniTypes {
		if t == known {
			return t, nil
		}
	}
	return AgniSama, fmt.Errorf("invalid agni type %q: must be vishama, tikshna, manda, or sama", s)
}

// Strength is the coarse strength band of digestive fire.
type Strength string

const (
	StrengthWeak     Strength = "weak"
	StrengthModerate Strength = "moderate"
	StrengthStrong   Strength = "strong"
)

// Level maps a strength band onto the [0,1] agni scale used for meal impact.
// An empty strength is treated as the neutral midpoint.
func (s Strength) Level() float64 {
	switch s {
	case StrengthWeak:
		return 0.35
	case StrengthModerate:
		return 0.6
	case StrengthStrong:
		return 0.85
	}
	return 0.5
}

// Indicator is a symptom family used to classify agni.
type Indicator string

const (
	IndicatorAppetite      Indicator = "appetite"
	IndicatorDigestion     Indicator = "digestion"
	IndicatorBowelMovement Indicator = "bowel_movement"
	IndicatorEnergyLevel   Indicator = "energy_level"
)

// Indicators lists the indicators in voting order.
var Indicators = []Indicator{IndicatorAppetite, IndicatorDigestion, IndicatorBowelMovement, IndicatorEnergyLevel}

// IndicatorScore is the classification of a single indicator.
type IndicatorScore struct {
	Type       AgniType         `json:"type"`
	Confidence float64          `json:"confidence"`
	Scores     map[AgniType]int `json:"scores,omitempty"`
}

// AgniState is a transient digestive-fire classification.
type AgniState struct {
	Type       AgniType                     `json:"type"`
	Strength   Strength                     `json:"strength"`
	Indicators map[Indicator]IndicatorScore `json:"indicators,omitempty"`
}

// CurrentLevel returns the numeric agni level for s; nil means unknown.
func (s *AgniState) CurrentLevel() float64 {
	if s == nil {
		return 0.5
	}
	return s.Strength.Level()
}

// TrendDirection describes how a score series is moving.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendStable    TrendDirection = "stable"
	TrendDeclining TrendDirection = "declining"
)

// AgniLevel is a five-band label for an agni score.
type AgniLevel string

const (
	AgniExcellent AgniLevel = "excellent"
	AgniGood      AgniLevel = "good"
	AgniModerate  AgniLevel = "moderate"
	AgniPoor      AgniLevel = "poor"
	AgniVeryPoor  AgniLevel = "very_poor"
)

// ClassifyAgniLevel bands a score into an AgniLevel.
func ClassifyAgniLevel(score float64) AgniLevel {
	switch {
	case score >= 0.8:
		return AgniExcellent
	case score >= 0.6:
		return AgniGood
	case score >= 0.4:
		return AgniModerate
	case score >= 0.2:
		return AgniPoor
	default:
		return AgniVeryPoor
	}
}

// StrengthForScore bands a numeric agni score into a strength.
func StrengthForScore(score float64) Strength {
	switch {
	case score >= 0.7:
		return StrengthStrong
	case score >= 0.4:
		return StrengthModerate
	default:
		return StrengthWeak
	}
}
