package models

import (
	"fmt"
	"math"
	"strings"
)

// Dosha is one of the three constitutional types.
type Dosha string

const (
	Vata  Dosha = "vata"
	Pitta Dosha = "pitta"
	Kapha Dosha = "kapha"
)

// AllDoshas lists the doshas in tie-breaking order.
var AllDoshas = []Dosha{Vata, Pitta, Kapha}

// ParseDosha converts a string to a Dosha.
func ParseDosha(s string) (Dosha, error) {
	switch Dosha(strings.ToLower(strings.TrimSpace(s))) {
	case Vata:
		return Vata, nil
	case Pitta:
		return Pitta, nil
	case Kapha:
		return Kapha, nil
	default:
		return Vata, fmt.Errorf("invalid dosha %q: must be vata, pitta, or kapha", s)
	}
}

// DoshaScores is a patient's constitutional distribution.
type DoshaScores struct {
	Vata  float64 `json:"vata" yaml:"vata"`
	Pitta float64 `json:"pitta" yaml:"pitta"`
	Kapha float64 `json:"kapha" yaml:"kapha"`
}

// Get returns the score for d.
func (s DoshaScores) Get(d Dosha) float64 {
	switch d {
	case Vata:
		return s.Vata
	case Pitta:
		return s.Pitta
	case Kapha:
		return s.Kapha
	}
	return 0
}

// Sum returns the total of the three scores.
func (s DoshaScores) Sum() float64 {
	return s.Vata + s.Pitta + s.Kapha
}

// IsZero reports whether no dosha data is present.
func (s DoshaScores) IsZero() bool {
	return s.Vata == 0 && s.Pitta == 0 && s.Kapha == 0
}

// IsNormalized reports whether the scores sum to 1 within 0.01.
func (s DoshaScores) IsNormalized() bool {
	return math.Abs(s.Sum()-1) < 0.01
}

// Normalize rescales the scores to sum to 1. A zero sum yields a uniform
// distribution.
func (s DoshaScores) Normalize() DoshaScores {
	total := s.Sum()
	if total == 0 {
		return DoshaScores{Vata: 1.0 / 3, Pitta: 1.0 / 3, Kapha: 1.0 / 3}
	}
	return DoshaScores{Vata: s.Vata / total, Pitta: s.Pitta / total, Kapha: s.Kapha / total}
}

// Primary returns the highest-scoring dosha, preferring vata, then pitta,
// then kapha on ties.
func (s DoshaScores) Primary() Dosha {
	best := Vata
	for _, d := range AllDoshas[1:] {
		if s.Get(d) > s.Get(best) {
			best = d
		}
	}
	return best
}

// Validate rejects negative or non-finite scores.
func (s DoshaScores) Validate() error {
	for _, d := range AllDoshas {
		v := s.Get(d)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewInvalidInput("dosha_scores."+string(d), v, "must be a finite number")
		}
		if v < 0 {
			return NewInvalidInput("dosha_scores."+string(d), v, "must not be negative")
		}
	}
	return nil
}
