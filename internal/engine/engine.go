// Package engine is the library facade over the scoring packages. An Engine
// owns the predictive scorers, their caches and deadlines; everything else
// is delegated to the pure packages.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/vaidya/ahara/internal/agni"
	"github.com/vaidya/ahara/internal/catalog"
	"github.com/vaidya/ahara/internal/compat"
	"github.com/vaidya/ahara/internal/compliance"
	"github.com/vaidya/ahara/internal/dosha"
	"github.com/vaidya/ahara/internal/guna"
	"github.com/vaidya/ahara/internal/incompat"
	"github.com/vaidya/ahara/internal/models"
	"github.com/vaidya/ahara/internal/nutrition"
	"github.com/vaidya/ahara/internal/rasa"
)

// DefaultScorerTimeout bounds each predictive scorer call.
const DefaultScorerTimeout = 5 * time.Second

// Config wires an Engine. The zero value uses the heuristic scorers only.
type Config struct {
	Predictor  agni.Predictor
	PairScorer compat.PairScorer
	Classifier dosha.Classifier

	// ScorerTimeout bounds each live scorer call. Zero means
	// DefaultScorerTimeout; negative disables the deadline.
	ScorerTimeout time.Duration

	// PairCacheSize and DoshaCacheSize size the LRU caches in front of live
	// scorers. Zero disables a cache.
	PairCacheSize  int
	DoshaCacheSize int

	Workers       int
	BootstrapSeed *int64
	Logger        *slog.Logger
}

// Engine is safe for concurrent use.
type Engine struct {
	forecaster *agni.Forecaster
	checker    *compat.Checker
	classifier *dosha.Service
	scorer     *compliance.Scorer
	pairCache  *compat.CachedScorer
	doshaCache *dosha.CachedClassifier
	logger     *slog.Logger
}

// New builds an Engine. Live scorers are bounded by the scorer timeout and
// then cached; the heuristic scorers are used as is.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.ScorerTimeout
	if timeout == 0 {
		timeout = DefaultScorerTimeout
	}

	e := &Engine{logger: logger}

	predictor := cfg.Predictor
	if livePredictor(predictor) {
		predictor = boundedPredictor{next: predictor, timeout: timeout}
	}

	pairs := cfg.PairScorer
	if livePairScorer(pairs) {
		pairs = boundedPairScorer{next: pairs, timeout: timeout}
		if cfg.PairCacheSize > 0 {
			cached, err := compat.NewCachedScorer(pairs, cfg.PairCacheSize, logger)
			if err != nil {
				return nil, fmt.Errorf("creating pair cache: %w", err)
			}
			e.pairCache = cached
			pairs = cached
		}
	}

	classifier := cfg.Classifier
	if liveClassifier(classifier) {
		classifier = boundedClassifier{next: classifier, timeout: timeout}
		if cfg.DoshaCacheSize > 0 {
			cached, err := dosha.NewCachedClassifier(classifier, cfg.DoshaCacheSize, logger)
			if err != nil {
				return nil, fmt.Errorf("creating dosha cache: %w", err)
			}
			e.doshaCache = cached
			classifier = cached
		}
	}

	e.forecaster = agni.NewForecaster(predictor, logger)
	e.checker = compat.NewChecker(pairs, logger)
	e.classifier = dosha.NewService(classifier, logger)

	opts := []compliance.Option{compliance.WithWorkers(cfg.Workers)}
	if cfg.BootstrapSeed != nil {
		opts = append(opts, compliance.WithBootstrapSeed(*cfg.BootstrapSeed))
	}
	e.scorer = compliance.NewScorer(e.checker, logger, opts...)

	logger.Debug("engine ready",
		"agni_model", livePredictor(cfg.Predictor),
		"compat_model", livePairScorer(cfg.PairScorer),
		"dosha_model", liveClassifier(cfg.Classifier),
		"timeout", timeout)
	return e, nil
}

// LookupFoodProperties returns the catalog properties of a food, or the
// neutral default for unknown foods.
func (e *Engine) LookupFoodProperties(name string) models.FoodProperties {
	return catalog.Lookup(name)
}

// CheckMealIncompatibilities runs the rule-based incompatibility detector.
func (e *Engine) CheckMealIncompatibilities(names []string) incompat.MealResult {
	return incompat.CheckMeal(names)
}

// SuggestAlternatives proposes replacements for conflicting pairs.
func (e *Engine) SuggestAlternatives(pairs []incompat.Pair) incompat.Alternatives {
	return incompat.SuggestAlternatives(pairs)
}

// RecommendRasas returns taste guidance for the primary dosha.
func (e *Engine) RecommendRasas(scores models.DoshaScores, tastes []models.Taste) rasa.Recommendation {
	return rasa.Recommend(scores, tastes)
}

// AnalyzeMealGuna returns the thermal balance of a meal.
func (e *Engine) AnalyzeMealGuna(foods []models.FoodItem) (guna.MealAnalysis, error) {
	return guna.AnalyzeMeal(foods)
}

// CalculateMealNutrition totals the nutrients of a meal.
func (e *Engine) CalculateMealNutrition(foods []models.FoodItem) (models.NutrientProfile, error) {
	return nutrition.AggregateMeal(foods)
}

// AnalyzeDietNutrition compares a day's meals with the patient's
// requirement and suggests improvements for the largest deficits.
func (e *Engine) AnalyzeDietNutrition(meals []models.Meal, p models.PatientProfile) (nutrition.BalanceAnalysis, nutrition.Improvements, error) {
	balance, err := nutrition.AnalyzeDietBalance(meals, p)
	if err != nil {
		return nutrition.BalanceAnalysis{}, nutrition.Improvements{}, err
	}
	return balance, nutrition.SuggestImprovements(balance.Totals, balance.Requirements), nil
}

// AnalyzeAgni classifies digestive fire from symptoms and habits.
func (e *Engine) AnalyzeAgni(ctx context.Context, patient agni.PatientData) agni.Result {
	e.logger.DebugContext(ctx, "analyzing agni", "symptoms", len(patient.Symptoms), "habits", len(patient.Habits))
	return agni.Analyze(patient)
}

// PredictAgniTrend scores the latest window of daily records.
func (e *Engine) PredictAgniTrend(ctx context.Context, history []agni.DailyMetrics) agni.Trend {
	return e.forecaster.PredictTrend(ctx, history)
}

// AssessDailyAgni scores a single day's record.
func (e *Engine) AssessDailyAgni(m agni.DailyMetrics) agni.DailyAssessment {
	return agni.AssessDaily(m)
}

// PredictMealImpact estimates how a meal moves agni from current. Finite
// values outside [0,1] are clamped; NaN and infinities are rejected.
func (e *Engine) PredictMealImpact(foods []models.FoodItem, current float64) (agni.MealImpact, error) {
	if math.IsNaN(current) || math.IsInf(current, 0) {
		return agni.MealImpact{}, models.NewInvalidInput("current_agni", current, "must be a finite number")
	}
	fs, err := agni.MealFeatures(foods)
	if err != nil {
		return agni.MealImpact{}, err
	}
	return agni.PredictMealImpact(fs, models.Clamp01(current)), nil
}

// CheckPairCompatibility scores two foods with the compatibility scorer.
func (e *Engine) CheckPairCompatibility(ctx context.Context, a, b string) compat.PairResult {
	return e.checker.CheckPair(ctx, a, b)
}

// MealCompatibility scores every pair in a meal.
func (e *Engine) MealCompatibility(ctx context.Context, foods []string) compat.MealResult {
	return e.checker.CheckMeal(ctx, foods)
}

// ClassifyDosha predicts a constitution from a questionnaire profile.
func (e *Engine) ClassifyDosha(ctx context.Context, p dosha.Profile) dosha.Prediction {
	return e.classifier.Classify(ctx, dosha.FeaturesFromProfile(p))
}

// ScoreDietChart scores a chart for a patient known only by dosha scores.
func (e *Engine) ScoreDietChart(ctx context.Context, meals []models.Meal, scores models.DoshaScores) (models.ComplianceResult, error) {
	res, err := e.scorer.ScoreChart(ctx, meals, compliance.Patient{Dosha: scores})
	if err != nil {
		return models.ComplianceResult{}, err
	}
	return res.Compliance, nil
}

// ScoreChart scores a chart with the full per-meal breakdown.
func (e *Engine) ScoreChart(ctx context.Context, meals []models.Meal, p compliance.Patient) (compliance.ChartResult, error) {
	return e.scorer.ScoreChart(ctx, meals, p)
}

// ScoreMeal scores a single meal.
func (e *Engine) ScoreMeal(ctx context.Context, meal models.Meal, p compliance.Patient) (compliance.MealResult, error) {
	return e.scorer.ScoreMeal(ctx, meal, p)
}

// SummarizePatient aggregates chart scores, oldest first, and daily
// nutrition into patient-level metrics.
func (e *Engine) SummarizePatient(chartScores []float64, daily []models.NutrientProfile) compliance.PatientSummary {
	return compliance.SummarizePatient(chartScores, daily)
}

// CacheStats reports how many entries the scorer caches hold.
func (e *Engine) CacheStats() (pairs, doshas int) {
	if e.pairCache != nil {
		pairs = e.pairCache.Len()
	}
	if e.doshaCache != nil {
		doshas = e.doshaCache.Len()
	}
	return pairs, doshas
}
