package agni

import (
	"context"
	"log/slog"
	"math"

	"github.com/vaidya/ahara/internal/models"
	"github.com/vaidya/ahara/internal/statistics"
)

// Confidence reported for results that did not come from a live model.
const (
	DefaultConfidence   = 0.3
	HeuristicConfidence = 0.4
)

const (
	forecastDays   = 7
	trendThreshold = 0.1
	trailingWindow = 3
)

// Source records which path produced a trend.
type Source string

const (
	SourceModel     Source = "model"
	SourceHeuristic Source = "heuristic"
	SourceDefault   Source = "default"
)

// ForecastDay is one day of the weekly outlook.
type ForecastDay struct {
	Day        int              `json:"day"`
	AgniScore  float64          `json:"agni_score"`
	Level      models.AgniLevel `json:"agni_level"`
	Confidence float64          `json:"confidence"`
}

// Trend is the outcome of PredictTrend.
type Trend struct {
	AgniScore       float64               `json:"agni_score"`
	Direction       models.TrendDirection `json:"trend_direction"`
	Confidence      float64               `json:"confidence"`
	Source          Source                `json:"source"`
	Recommendations []string              `json:"recommendations"`
	Forecast        []ForecastDay         `json:"next_week_forecast"`
}

// DefaultTrend is returned when there is not enough history to predict.
func DefaultTrend() Trend {
	return Trend{
		AgniScore:       models.NeutralScore,
		Direction:       models.TrendStable,
		Confidence:      DefaultConfidence,
		Source:          SourceDefault,
		Recommendations: []string{"Follow traditional Ayurvedic principles", "Maintain regular routine"},
		Forecast:        []ForecastDay{},
	}
}

// Forecaster predicts agni trends with an optional Predictor, falling back
// to HeuristicScore when the predictor is missing or fails.
type Forecaster struct {
	predictor Predictor
	logger    *slog.Logger
}

// NewForecaster creates a Forecaster. A nil predictor always uses the
// heuristic; a nil logger uses slog.Default().
func NewForecaster(p Predictor, logger *slog.Logger) *Forecaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Forecaster{predictor: p, logger: logger}
}

// PredictTrend scores the last WindowSize records of history. Histories
// shorter than the window get DefaultTrend. A predictor error, including a
// cancelled or expired ctx, is logged and replaced by the heuristic at
// HeuristicConfidence.
func (f *Forecaster) PredictTrend(ctx context.Context, history []DailyMetrics) Trend {
	if len(history) < WindowSize {
		f.logger.Debug("agni history shorter than window", "records", len(history), "window", WindowSize)
		return DefaultTrend()
	}

	window := make([][]float64, WindowSize)
	for i, m := range history[len(history)-WindowSize:] {
		window[i] = m.Features()
	}
	latest := window[WindowSize-1]

	t := Trend{
		AgniScore:  HeuristicScore(latest),
		Confidence: HeuristicConfidence,
		Source:     SourceHeuristic,
	}
	if score, ok := f.predict(ctx, window); ok {
		t.AgniScore = score
		t.Confidence = 0.5 + 0.5*windowQuality(window)
		t.Source = SourceModel
	}

	t.Direction = direction(t.AgniScore, history)
	t.Recommendations = trendRecommendations(t.AgniScore, t.Direction)
	t.Forecast = forecast(latest)
	return t
}

func (f *Forecaster) predict(ctx context.Context, window [][]float64) (float64, bool) {
	if f.predictor == nil {
		return 0, false
	}
	if _, heuristic := f.predictor.(HeuristicPredictor); heuristic {
		return 0, false
	}
	score, err := f.predictor.PredictAgni(ctx, window)
	if err != nil {
		f.logger.Warn("agni predictor failed, using heuristic", "scorer", "agni", "error", err)
		return 0, false
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		f.logger.Warn("agni predictor returned a non-finite score, using heuristic", "scorer", "agni", "score", score)
		return 0, false
	}
	return models.Clamp01(score), true
}

// windowQuality rewards recorded (non-default) values and low spread.
func windowQuality(window [][]float64) float64 {
	var flat []float64
	for _, row := range window {
		flat = append(flat, row...)
	}
	if len(flat) == 0 {
		return 0
	}
	recorded := 0
	for _, v := range flat {
		if v != missingFeature {
			recorded++
		}
	}
	completeness := float64(recorded) / float64(len(flat))
	consistency := 1 - statistics.StdDev(flat)
	return models.Clamp01((completeness + consistency) / 2)
}

// direction compares score with the heuristic mean of the last three days.
func direction(score float64, history []DailyMetrics) models.TrendDirection {
	if len(history) < 2 {
		return models.TrendStable
	}
	start := max(len(history)-trailingWindow, 0)
	recent := make([]float64, 0, trailingWindow)
	for _, m := range history[start:] {
		recent = append(recent, HeuristicScore(m.Features()))
	}
	avg := statistics.Mean(recent)
	switch {
	case score > avg+trendThreshold:
		return models.TrendImproving
	case score < avg-trendThreshold:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}

func forecast(latest []float64) []ForecastDay {
	features := append([]float64(nil), latest...)
	out := make([]ForecastDay, 0, forecastDays)
	for day := 0; day < forecastDays; day++ {
		score := HeuristicScore(features) * (0.95 + 0.01*float64(day))
		out = append(out, ForecastDay{
			Day:        day + 1,
			AgniScore:  score,
			Level:      models.ClassifyAgniLevel(score),
			Confidence: max(0.5, 1-0.1*float64(day)),
		})
		for i := range features {
			features[i] *= 0.95
		}
	}
	return out
}

func trendRecommendations(score float64, dir models.TrendDirection) []string {
	var recs []string
	switch {
	case score < 0.4:
		recs = []string{
			"Focus on improving digestive fire with warming foods",
			"Include ginger, black pepper, and cumin in your diet",
			"Eat at regular times to strengthen Agni",
			"Avoid cold and heavy foods",
		}
	case score < 0.6:
		recs = []string{
			"Maintain current good practices",
			"Consider adding more digestive spices",
			"Ensure regular meal timing",
		}
	default:
		recs = []string{
			"Excellent Agni! Maintain current practices",
			"Continue with balanced diet and regular routine",
		}
	}
	switch dir {
	case models.TrendDeclining:
		recs = append(recs, "Agni is declining - focus on digestive health")
	case models.TrendImproving:
		recs = append(recs, "Great! Agni is improving - keep it up")
	}
	return recs
}
