package engine

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaidya/ahara/internal/agni"
	"github.com/vaidya/ahara/internal/compat"
	"github.com/vaidya/ahara/internal/dosha"
	"github.com/vaidya/ahara/internal/modelclient"
	"github.com/vaidya/ahara/internal/models"
	"github.com/vaidya/ahara/internal/projectconfig"
)

type predictorFunc func(context.Context, [][]float64) (float64, error)

func (f predictorFunc) PredictAgni(ctx context.Context, w [][]float64) (float64, error) {
	return f(ctx, w)
}

type pairFunc func(context.Context, string, string) (float64, error)

func (f pairFunc) ScorePair(ctx context.Context, a, b string) (float64, error) { return f(ctx, a, b) }

type classifierFunc func(context.Context, []float64) (models.DoshaScores, error)

func (f classifierFunc) Classify(ctx context.Context, features []float64) (models.DoshaScores, error) {
	return f(ctx, features)
}

var vata = models.DoshaScores{Vata: 0.6, Pitta: 0.3, Kapha: 0.1}

func rice(grams float64) models.FoodItem {
	return models.FoodItem{Name: "rice", Quantity: grams, Unit: models.UnitGrams}
}

func newEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e, err := New(cfg)
	require.NoError(t, err)
	return e
}

func TestCallWithTimeout(t *testing.T) {
	t.Run("returns the result", func(t *testing.T) {
		v, err := callWithTimeout(t.Context(), time.Second, func(context.Context) (int, error) { return 7, nil })
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	})

	t.Run("passes errors through", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := callWithTimeout(t.Context(), time.Second, func(context.Context) (int, error) { return 0, boom })
		assert.ErrorIs(t, err, boom)
	})

	t.Run("stops waiting for a call that ignores its context", func(t *testing.T) {
		release := make(chan struct{})
		t.Cleanup(func() { close(release) })

		start := time.Now()
		_, err := callWithTimeout(t.Context(), 20*time.Millisecond, func(context.Context) (int, error) {
			<-release
			return 1, nil
		})
		require.ErrorIs(t, err, models.ErrScorerUnavailable)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(start), 2*time.Second)
	})

	t.Run("honours a cancelled parent", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		_, err := callWithTimeout(ctx, -1, func(ctx context.Context) (int, error) {
			<-ctx.Done()
			return 0, ctx.Err()
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLiveScorerDetection(t *testing.T) {
	assert.False(t, livePredictor(nil))
	assert.False(t, livePredictor(agni.HeuristicPredictor{}))
	assert.True(t, livePredictor(predictorFunc(nil)))

	assert.False(t, livePairScorer(nil))
	assert.False(t, livePairScorer(compat.HeuristicScorer{}))
	assert.True(t, livePairScorer(pairFunc(nil)))

	assert.False(t, liveClassifier(nil))
	assert.False(t, liveClassifier(dosha.FallbackClassifier{}))
	assert.True(t, liveClassifier(classifierFunc(nil)))
}

func TestEngine_ScoreDietChart(t *testing.T) {
	e := newEngine(t, Config{})

	res, err := e.ScoreDietChart(t.Context(), []models.Meal{
		{Type: models.MealLunch, Foods: []models.FoodItem{rice(200)}},
	}, vata)
	require.NoError(t, err)
	assert.Equal(t, 0.875, res.OverallScore)
	assert.Len(t, res.SubScores, len(models.SubScores))
}

func TestEngine_ScoreDietChart_Neutral(t *testing.T) {
	e := newEngine(t, Config{})

	res, err := e.ScoreDietChart(t.Context(), nil, vata)
	require.NoError(t, err)
	assert.Equal(t, 0.5, res.OverallScore)

	meals := []models.Meal{{Type: models.MealLunch, Foods: []models.FoodItem{
		{Name: "milk", Quantity: 200, Unit: models.UnitGrams},
		{Name: "fish", Quantity: 100, Unit: models.UnitGrams},
	}}}
	zero, err := e.ScoreDietChart(t.Context(), meals, models.DoshaScores{})
	require.NoError(t, err)
	uniform, err := e.ScoreDietChart(t.Context(), meals, models.DoshaScores{Vata: 1, Pitta: 1, Kapha: 1})
	require.NoError(t, err)
	assert.Equal(t, uniform.OverallScore, zero.OverallScore)
	assert.Equal(t, uniform.ImprovementAreas, zero.ImprovementAreas)
}

func TestEngine_ScoreDietChart_InvalidInput(t *testing.T) {
	e := newEngine(t, Config{})

	_, err := e.ScoreDietChart(t.Context(), []models.Meal{
		{Type: models.MealLunch, Foods: []models.FoodItem{{Name: "rice", Quantity: 100, Unit: "bushels"}}},
	}, vata)
	var invalid *models.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "meals[0].foods[0].unit", invalid.Field)
}

func TestEngine_PairScorerTimeoutFallsBack(t *testing.T) {
	slow := pairFunc(func(ctx context.Context, _, _ string) (float64, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	e := newEngine(t, Config{PairScorer: slow, ScorerTimeout: 10 * time.Millisecond})

	res := e.CheckPairCompatibility(t.Context(), "milk", "fish")
	assert.InDelta(t, 0.14, res.Score, 1e-9)
	assert.False(t, res.Compatible)
}

func TestEngine_PairCache(t *testing.T) {
	var calls atomic.Int32
	scorer := pairFunc(func(context.Context, string, string) (float64, error) {
		calls.Add(1)
		return 0.9, nil
	})
	e := newEngine(t, Config{PairScorer: scorer, PairCacheSize: 8})

	first := e.CheckPairCompatibility(t.Context(), "rice", "ghee")
	second := e.CheckPairCompatibility(t.Context(), "Ghee", "rice")

	assert.Equal(t, 0.9, first.Score)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, int32(1), calls.Load())
	pairs, doshas := e.CacheStats()
	assert.Equal(t, 1, pairs)
	assert.Equal(t, 0, doshas)
}

func TestEngine_ClassifyDosha(t *testing.T) {
	var calls atomic.Int32
	classifier := classifierFunc(func(context.Context, []float64) (models.DoshaScores, error) {
		calls.Add(1)
		return models.DoshaScores{Vata: 0.2, Pitta: 0.6, Kapha: 0.2}, nil
	})
	e := newEngine(t, Config{Classifier: classifier, DoshaCacheSize: 4})

	profile := dosha.Profile{BodyType: "medium", Appetite: "strong"}
	got := e.ClassifyDosha(t.Context(), profile)
	again := e.ClassifyDosha(t.Context(), profile)

	assert.Equal(t, models.Pitta, got.PrimaryDosha)
	assert.InDelta(t, 0.8, got.Confidence, 1e-9)
	assert.False(t, got.Fallback)
	assert.Equal(t, got, again)
	assert.Equal(t, int32(1), calls.Load())
}

func TestEngine_ClassifyDosha_Fallback(t *testing.T) {
	e := newEngine(t, Config{})

	got := e.ClassifyDosha(t.Context(), dosha.Profile{})
	assert.True(t, got.Fallback)
	assert.Equal(t, dosha.FallbackScores, got.Scores)
	assert.Equal(t, dosha.FallbackConfidence, got.Confidence)
}

func TestEngine_PredictAgniTrend(t *testing.T) {
	history := make([]agni.DailyMetrics, agni.WindowSize)

	t.Run("live predictor", func(t *testing.T) {
		var seen [][]float64
		p := predictorFunc(func(_ context.Context, w [][]float64) (float64, error) {
			seen = w
			return 0.9, nil
		})
		e := newEngine(t, Config{Predictor: p})

		trend := e.PredictAgniTrend(t.Context(), history)
		assert.Equal(t, agni.SourceModel, trend.Source)
		assert.Equal(t, 0.9, trend.AgniScore)
		assert.Len(t, seen, agni.WindowSize)
	})

	t.Run("slow predictor falls back", func(t *testing.T) {
		p := predictorFunc(func(ctx context.Context, _ [][]float64) (float64, error) {
			<-ctx.Done()
			return 0, ctx.Err()
		})
		e := newEngine(t, Config{Predictor: p, ScorerTimeout: 10 * time.Millisecond})

		trend := e.PredictAgniTrend(t.Context(), history)
		assert.Equal(t, agni.SourceHeuristic, trend.Source)
		assert.Equal(t, agni.HeuristicConfidence, trend.Confidence)
	})

	t.Run("heuristic predictor", func(t *testing.T) {
		e := newEngine(t, Config{Predictor: agni.HeuristicPredictor{}})
		assert.Equal(t, agni.SourceHeuristic, e.PredictAgniTrend(t.Context(), history).Source)
	})
}

func TestEngine_PredictMealImpact(t *testing.T) {
	e := newEngine(t, Config{})

	got, err := e.PredictMealImpact([]models.FoodItem{rice(200)}, 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.57*0.8, got.ImpactScore, 1e-9)

	_, err = e.PredictMealImpact([]models.FoodItem{rice(-1)}, 0.5)
	var invalid *models.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestEngine_PredictMealImpact_NonFiniteCurrent(t *testing.T) {
	e := newEngine(t, Config{})

	for _, current := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := e.PredictMealImpact([]models.FoodItem{rice(200)}, current)
		var invalid *models.InvalidInputError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "current_agni", invalid.Field)
	}
}

func TestEngine_AnalyzeDietNutrition(t *testing.T) {
	e := newEngine(t, Config{})

	balance, improvements, err := e.AnalyzeDietNutrition([]models.Meal{
		{Type: models.MealLunch, Foods: []models.FoodItem{rice(200)}},
	}, models.PatientProfile{})
	require.NoError(t, err)
	assert.InDelta(t, 260, balance.Totals.Calories, 1e-9)
	assert.NotEmpty(t, improvements.Priority)

	_, _, err = e.AnalyzeDietNutrition([]models.Meal{{Type: "brunch"}}, models.PatientProfile{})
	var invalid *models.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestEngine_Passthroughs(t *testing.T) {
	e := newEngine(t, Config{})

	assert.Equal(t, models.ThermalHot, e.LookupFoodProperties("Ginger").ThermalClass)
	assert.False(t, e.LookupFoodProperties("durian").Known)

	incompatible := e.CheckMealIncompatibilities([]string{"milk", "fish"})
	assert.NotEmpty(t, incompatible.IncompatiblePairs)

	rec := e.RecommendRasas(vata, nil)
	assert.Equal(t, models.Vata, rec.PrimaryDosha)
	assert.Equal(t, 0.5, rec.BalanceScore)

	nutrients, err := e.CalculateMealNutrition([]models.FoodItem{rice(100)})
	require.NoError(t, err)
	assert.InDelta(t, 130, nutrients.Calories, 1e-9)

	thermal, err := e.AnalyzeMealGuna([]models.FoodItem{rice(100)})
	require.NoError(t, err)
	assert.InDelta(t, 0.3, thermal.BalanceScore, 1e-9)

	result := e.AnalyzeAgni(t.Context(), agni.PatientData{})
	assert.Equal(t, models.AgniSama, result.State.Type)
}

func TestFromProject_Defaults(t *testing.T) {
	e, err := FromProject(projectconfig.New(), nil)
	require.NoError(t, err)

	got := e.ClassifyDosha(t.Context(), dosha.Profile{})
	assert.True(t, got.Fallback)
}

func TestFromProject_ModelServer(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, modelclient.DoshaPath, r.URL.Path)
		assert.Equal(t, "Bearer k1", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"probabilities": map[string]float64{"vata": 0.1, "pitta": 0.2, "kapha": 0.7},
		})
	}))
	t.Cleanup(srv.Close)

	pc := projectconfig.New()
	enabled := true
	pc.Scorers.Enabled = &enabled
	pc.Scorers.Endpoint = srv.URL
	pc.Scorers.APIKey = "k1"

	e, err := FromProject(pc, nil)
	require.NoError(t, err)

	got := e.ClassifyDosha(t.Context(), dosha.Profile{BodyType: "large"})
	assert.Equal(t, models.Kapha, got.PrimaryDosha)
	assert.False(t, got.Fallback)

	e.ClassifyDosha(t.Context(), dosha.Profile{BodyType: "large"})
	assert.Equal(t, int32(1), calls.Load())
}

func TestDefaultProfile(t *testing.T) {
	pc := projectconfig.New()
	pc.Patient.Gender = "Female"
	assert.Equal(t, models.PatientProfile{Age: 30, Gender: models.GenderFemale}, DefaultProfile(pc))

	pc.Patient.Gender = "other"
	assert.Equal(t, models.GenderMale, DefaultProfile(pc).Gender)
}
