package dosha

import (
	"fmt"

	"github.com/vaidya/ahara/internal/models"
)

// Recommendations is lifestyle guidance for a constitution.
type Recommendations struct {
	Diet      string `json:"diet"`
	Lifestyle string `json:"lifestyle"`
	Avoid     string `json:"avoid"`
	Note      string `json:"note,omitempty"`
}

var byDosha = map[models.Dosha]Recommendations{
	models.Vata: {
		Diet:      "Warm, cooked, moist foods. Sweet, sour, and salty tastes.",
		Lifestyle: "Regular routine, gentle exercise, adequate rest.",
		Avoid:     "Cold, dry, raw foods. Excessive travel and irregular schedule.",
	},
	models.Pitta: {
		Diet:      "Cooling, sweet, bitter, and astringent foods.",
		Lifestyle: "Moderate exercise, avoid excessive heat.",
		Avoid:     "Hot, spicy, sour foods. Excessive sun exposure.",
	},
	models.Kapha: {
		Diet:      "Light, warm, dry foods. Pungent, bitter, astringent tastes.",
		Lifestyle: "Regular vigorous exercise, variety in routine.",
		Avoid:     "Heavy, oily, sweet foods. Excessive sleep and inactivity.",
	},
}

// secondaryShare is the share above which the runner-up dosha is noted.
const secondaryShare = 0.3

// DefaultRecommendations is the guidance given with FallbackScores.
func DefaultRecommendations() Recommendations {
	return Recommendations{
		Diet:      "Warm, moist, grounding foods",
		Lifestyle: "Regular routine, gentle exercise",
		Avoid:     "Cold, dry, raw foods",
	}
}

// RecommendationsFor returns the guidance for the primary dosha of scores,
// noting a dual constitution when the runner-up exceeds 0.3.
func RecommendationsFor(scores models.DoshaScores) Recommendations {
	primary := scores.Primary()
	rec := byDosha[primary]

	var secondary models.Dosha
	for _, d := range models.AllDoshas {
		if d == primary {
			continue
		}
		if secondary == "" || scores.Get(d) > scores.Get(secondary) {
			secondary = d
		}
	}
	if scores.Get(secondary) > secondaryShare {
		rec.Note = fmt.Sprintf("Balanced %s-%s constitution", primary, secondary)
	}
	return rec
}
