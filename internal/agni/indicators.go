// Package agni models digestive fire: classification from symptoms, daily
// assessment, trend prediction over a history window and meal impact.
package agni

import (
	"slices"
	"strings"

	"github.com/vaidya/ahara/internal/models"
)

// keywords maps each indicator to the symptom words of each agni type.
// Matching is by substring on lower-cased text with spaces as underscores.
var keywords = map[models.Indicator]map[models.AgniType][]string{
	models.IndicatorAppetite: {
		models.AgniVishama: {"irregular", "sometimes_strong_sometimes_weak", "unpredictable"},
		models.AgniTikshna: {"excessive", "always_strong", "burning_sensation"},
		models.AgniManda:   {"poor", "weak", "no_desire"},
		models.AgniSama:    {"regular", "moderate", "healthy"},
	},
	models.IndicatorDigestion: {
		models.AgniVishama: {"irregular", "sometimes_good_sometimes_bad", "unpredictable"},
		models.AgniTikshna: {"fast", "burning", "excessive_acid"},
		models.AgniManda:   {"slow", "heavy", "incomplete"},
		models.AgniSama:    {"smooth", "complete", "comfortable"},
	},
	models.IndicatorBowelMovement: {
		models.AgniVishama: {"irregular", "constipation_diarrhea_alternating", "unpredictable"},
		models.AgniTikshna: {"frequent", "loose", "burning"},
		models.AgniManda:   {"infrequent", "hard", "incomplete"},
		models.AgniSama:    {"regular", "well_formed", "complete"},
	},
	models.IndicatorEnergyLevel: {
		models.AgniVishama: {"fluctuating", "unpredictable", "irregular"},
		models.AgniTikshna: {"high_but_burning", "restless", "hyperactive"},
		models.AgniManda:   {"low", "sluggish", "heavy"},
		models.AgniSama:    {"stable", "sustained", "balanced"},
	},
}

// Keywords returns the symptom words for an indicator and type.
func Keywords(ind models.Indicator, t models.AgniType) []string {
	return append([]string(nil), keywords[ind][t]...)
}

func normalizeText(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

// AssessIndicator scores each agni type by counting its keywords in the
// symptom text and, separately, in the habit text. With no match the result
// is sama at 0.5 confidence; otherwise the best type wins, ties going to the
// earlier type in vishama, tikshna, manda, sama order, with confidence
// min(score/3, 1).
func AssessIndicator(ind models.Indicator, symptomText, habitText string) models.IndicatorScore {
	symptom := normalizeText(symptomText)
	habit := normalizeText(habitText)

	scores := make(map[models.AgniType]int, len(models.AgniTypes))
	best, bestScore := models.AgniSama, 0
	for _, t := range models.AgniTypes {
		score := 0
		for _, kw := range keywords[ind][t] {
			if symptom != "" && strings.Contains(symptom, kw) {
				score++
			}
			if habit != "" && strings.Contains(habit, kw) {
				score++
			}
		}
		scores[t] = score
		if score > bestScore {
			best, bestScore = t, score
		}
	}

	if bestScore == 0 {
		return models.IndicatorScore{Type: models.AgniSama, Confidence: 0.5, Scores: scores}
	}
	return models.IndicatorScore{
		Type:       best,
		Confidence: min(float64(bestScore)/3, 1),
		Scores:     scores,
	}
}

// DetermineType sums confidence per type across indicators and returns the
// type with the largest total. Ties go to the type that received a vote
// first in indicator order; no indicators yields sama.
func DetermineType(scores map[models.Indicator]models.IndicatorScore) models.AgniType {
	votes := make(map[models.AgniType]float64)
	var order []models.AgniType
	for _, ind := range indicatorOrder(scores) {
		s := scores[ind]
		if _, seen := votes[s.Type]; !seen {
			order = append(order, s.Type)
		}
		votes[s.Type] += s.Confidence
	}
	if len(order) == 0 {
		return models.AgniSama
	}

	best := order[0]
	for _, t := range order[1:] {
		if votes[t] > votes[best] {
			best = t
		}
	}
	return best
}

// StrengthOf bands the mean indicator confidence: above 0.8 strong, above
// 0.6 moderate, otherwise weak.
func StrengthOf(scores map[models.Indicator]models.IndicatorScore) models.Strength {
	if len(scores) == 0 {
		return models.StrengthWeak
	}
	var total float64
	for _, s := range scores {
		total += s.Confidence
	}
	avg := total / float64(len(scores))
	switch {
	case avg > 0.8:
		return models.StrengthStrong
	case avg > 0.6:
		return models.StrengthModerate
	default:
		return models.StrengthWeak
	}
}

// indicatorOrder lists the known indicators first, then any others in the
// map sorted by name.
func indicatorOrder(scores map[models.Indicator]models.IndicatorScore) []models.Indicator {
	order := make([]models.Indicator, 0, len(scores))
	for _, ind := range models.Indicators {
		if _, ok := scores[ind]; ok {
			order = append(order, ind)
		}
	}
	if len(order) == len(scores) {
		return order
	}
	var extra []models.Indicator
	for ind := range scores {
		if _, ok := keywords[ind]; !ok {
			extra = append(extra, ind)
		}
	}
	slices.Sort(extra)
	return append(order, extra...)
}
