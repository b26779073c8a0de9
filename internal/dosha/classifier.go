// Package dosha classifies a patient's constitution and decodes dosha
// scores supplied by callers.
package dosha

import (
	"context"
	"log/slog"

	"github.com/vaidya/ahara/internal/models"
)

//go:generate go tool mockgen -source=classifier.go -destination=classifier_mock_test.go -package=dosha

// Classifier predicts a dosha distribution from a FeaturesFromProfile
// vector. Implementations wrap models.ErrScorerUnavailable when no model
// can be reached.
type Classifier interface {
	Classify(ctx context.Context, features []float64) (models.DoshaScores, error)
}

// FallbackConfidence is reported for FallbackScores.
const FallbackConfidence = 0.5

// FallbackScores is the distribution used when no classifier is available.
var FallbackScores = models.DoshaScores{Vata: 0.4, Pitta: 0.35, Kapha: 0.25}

// FallbackClassifier always returns FallbackScores.
type FallbackClassifier struct{}

// Classify implements Classifier.
func (FallbackClassifier) Classify(context.Context, []float64) (models.DoshaScores, error) {
	return FallbackScores, nil
}

// Prediction is a classified constitution.
type Prediction struct {
	PrimaryDosha    models.Dosha       `json:"primary_dosha"`
	Scores          models.DoshaScores `json:"dosha_scores"`
	Confidence      float64            `json:"confidence"`
	Fallback        bool               `json:"fallback"`
	Recommendations Recommendations    `json:"recommendations"`
}

// Service runs a Classifier and applies the fallback.
type Service struct {
	classifier Classifier
	logger     *slog.Logger
}

// NewService creates a Service. A nil classifier always falls back.
func NewService(c Classifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{classifier: c, logger: logger}
}

// Classify predicts the constitution for features. Live predictions are
// normalised and report a confidence of (1+max)/2, which always exceeds
// FallbackConfidence. Any classifier failure, or a distribution that is
// negative or all zero, yields the fallback prediction.
func (s *Service) Classify(ctx context.Context, features []float64) Prediction {
	if s.classifier == nil {
		return fallbackPrediction()
	}
	if _, ok := s.classifier.(FallbackClassifier); ok {
		return fallbackPrediction()
	}

	scores, err := s.classifier.Classify(ctx, features)
	if err == nil {
		err = scores.Validate()
	}
	if err == nil && scores.IsZero() {
		err = models.NewInvalidInput("dosha_scores", nil, "all scores are zero")
	}
	if err != nil {
		s.logger.Warn("dosha classifier failed, using fallback", "scorer", "dosha", "error", err)
		return fallbackPrediction()
	}

	scores = scores.Normalize()
	primary := scores.Primary()
	return Prediction{
		PrimaryDosha:    primary,
		Scores:          scores,
		Confidence:      (1 + scores.Get(primary)) / 2,
		Recommendations: RecommendationsFor(scores),
	}
}

func fallbackPrediction() Prediction {
	return Prediction{
		PrimaryDosha:    FallbackScores.Primary(),
		Scores:          FallbackScores,
		Confidence:      FallbackConfidence,
		Fallback:        true,
		Recommendations: DefaultRecommendations(),
	}
}
