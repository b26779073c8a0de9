package agni

import (
	"context"

	"github.com/vaidya/ahara/internal/models"
)

//go:generate go tool mockgen -source=predictor.go -destination=predictor_mock_test.go -package=agni

// WindowSize is the number of daily records a Predictor sees.
const WindowSize = 7

// Predictor scores digestive fire from a window of daily feature vectors,
// oldest first, each of length FeatureCount. Implementations return a score
// in [0,1] or an error wrapping models.ErrScorerUnavailable when no model can
// be reached.
type Predictor interface {
	PredictAgni(ctx context.Context, window [][]float64) (float64, error)
}

// heuristicWeights sum to 1 so a vector of missing values scores 0.5.
var heuristicWeights = [FeatureCount]float64{0.2, 0.2, 0.15, 0.15, 0.1, 0.1, 0.05, 0.03, 0.01, 0.01}

// HeuristicScore is the weighted average of one day's features. Stress
// counts against the score.
func HeuristicScore(features []float64) float64 {
	var score float64
	for i, w := range heuristicWeights {
		v := missingFeature
		if i < len(features) {
			v = features[i]
		}
		if i == FeatureStress {
			v = 1 - v
		}
		score += w * v
	}
	return models.Clamp01(score)
}

// HeuristicPredictor is the deterministic fallback Predictor: the heuristic
// score of the most recent day.
type HeuristicPredictor struct{}

// PredictAgni implements Predictor.
func (HeuristicPredictor) PredictAgni(_ context.Context, window [][]float64) (float64, error) {
	if len(window) == 0 {
		return models.NeutralScore, nil
	}
	return HeuristicScore(window[len(window)-1]), nil
}
