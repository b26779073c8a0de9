package jsonrpc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaidya/ahara/internal/agni"
	"github.com/vaidya/ahara/internal/compliance"
	"github.com/vaidya/ahara/internal/dosha"
	"github.com/vaidya/ahara/internal/engine"
	"github.com/vaidya/ahara/internal/guna"
	"github.com/vaidya/ahara/internal/models"
	"github.com/vaidya/ahara/internal/rasa"
)

// helper to send a JSON-RPC request and decode the response
func rpcCall(t *testing.T, server *Server, method string, params any) Response {
	t.Helper()
	paramsJSON, err := json.Marshal(params)
	require.NoError(t, err)

	reqLine := fmt.Sprintf(`{"jsonrpc":"2.0","method":"%s","params":%s,"id":1}`, method, string(paramsJSON))
	var out bytes.Buffer
	require.NoError(t, server.ServeStdio(t.Context(), strings.NewReader(reqLine+"\n"), &out))

	var resp Response
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	return resp
}

// decodeResult re-decodes a generic result into v.
func decodeResult(t *testing.T, resp Response, v any) {
	t.Helper()
	require.Nil(t, resp.Error, "unexpected error: %+v", resp.Error)
	require.NoError(t, json.Unmarshal(resp.Result, v))
}

// requireInvalidInput checks for a CodeInvalidInput error naming field.
func requireInvalidInput(t *testing.T, resp Response, field string) {
	t.Helper()
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeInvalidInput, resp.Error.Code)
	data, ok := resp.Error.Data.(map[string]any)
	require.True(t, ok, "error data should be an object, got %T", resp.Error.Data)
	assert.Equal(t, field, data["field"])
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	seed := int64(7)
	e, err := engine.New(engine.Config{BootstrapSeed: &seed})
	require.NoError(t, err)

	registry := NewMethodRegistry()
	hctx := NewHandlerContext(e, models.PatientProfile{Age: 30, Gender: models.GenderMale})
	RegisterHandlers(registry, hctx)
	return NewServer(registry, nil)
}

func TestRegisterHandlers(t *testing.T) {
	registry := NewMethodRegistry()
	RegisterHandlers(registry, NewHandlerContext(nil, models.PatientProfile{}))

	var names []string
	for _, m := range registry.Methods() {
		names = append(names, m.Name)
		assert.NotEmpty(t, m.Summary, m.Name)
		assert.NotNil(t, m.Handler, m.Name)
	}
	assert.Equal(t, []string{
		"agni.analyze",
		"agni.mealImpact",
		"agni.trend",
		"chart.score",
		"dosha.classify",
		"food.lookup",
		"guna.analyze",
		"meal.incompatibilities",
		"nutrition.calculate",
		"rasa.recommend",
	}, names)
}

func TestHandler_InvalidParams(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		method string
		params any
	}{
		{method: "food.lookup", params: "not an object"},
		{method: "food.lookup", params: map[string]string{}},
		{method: "meal.incompatibilities", params: map[string]any{"food": []string{"milk"}}},
		{method: "guna.analyze", params: []int{1, 2}},
		{method: "chart.score", params: map[string]any{"menu": []string{}}},
		{method: "agni.trend", params: map[string]any{"history": "yesterday"}},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			resp := rpcCall(t, server, tt.method, tt.params)
			require.NotNil(t, resp.Error)
			assert.Equal(t, CodeInvalidParams, resp.Error.Code)
		})
	}
}

func TestHandler_FoodLookup(t *testing.T) {
	server := newTestServer(t)

	var props models.FoodProperties
	decodeResult(t, rpcCall(t, server, "food.lookup", FoodLookupParams{Food: "Rice"}), &props)
	assert.Equal(t, "rice", props.Name)
	assert.True(t, props.Known)
	assert.Equal(t, models.ThermalNeutral, props.ThermalClass)

	decodeResult(t, rpcCall(t, server, "food.lookup", FoodLookupParams{Food: "durian"}), &props)
	assert.False(t, props.Known)
}

func TestHandler_MealIncompatibilities(t *testing.T) {
	server := newTestServer(t)

	var result MealIncompatibilitiesResult
	decodeResult(t, rpcCall(t, server, "meal.incompatibilities", MealIncompatibilitiesParams{
		Foods:        []string{"milk", "fish"},
		Alternatives: true,
	}), &result)
	require.Len(t, result.Check.IncompatiblePairs, 1)
	assert.False(t, result.Check.SafeToEat)
	require.NotNil(t, result.Alternatives)
	assert.Len(t, result.Alternatives.Pairs, 1)

	result = MealIncompatibilitiesResult{}
	decodeResult(t, rpcCall(t, server, "meal.incompatibilities", MealIncompatibilitiesParams{
		Foods:        []string{"rice", "dal"},
		Alternatives: true,
	}), &result)
	assert.Empty(t, result.Check.IncompatiblePairs)
	assert.True(t, result.Check.SafeToEat)
	assert.Nil(t, result.Alternatives)
}

func TestHandler_RasaRecommend(t *testing.T) {
	server := newTestServer(t)

	var rec rasa.Recommendation
	decodeResult(t, rpcCall(t, server, "rasa.recommend", map[string]any{
		"dosha":  map[string]any{"vata": 0.6, "pitta": 0.3, "kapha": 0.1},
		"tastes": []string{"sweet"},
	}), &rec)
	assert.Equal(t, models.Vata, rec.PrimaryDosha)
	assert.Contains(t, rec.Recommended, models.TasteSweet)

	requireInvalidInput(t, rpcCall(t, server, "rasa.recommend", map[string]any{
		"dosha": map[string]any{"vata": -1},
	}), "dosha_scores.vata")

	requireInvalidInput(t, rpcCall(t, server, "rasa.recommend", map[string]any{
		"dosha":  map[string]any{"kapha": 1},
		"tastes": []string{"umami"},
	}), "tastes[0]")
}

func TestHandler_GunaAnalyze(t *testing.T) {
	server := newTestServer(t)

	var analysis guna.MealAnalysis
	decodeResult(t, rpcCall(t, server, "guna.analyze", FoodsParams{
		Foods: []models.FoodItem{{Name: "ginger", Quantity: 10}, {Name: "rice", Quantity: 200}},
	}), &analysis)
	assert.Len(t, analysis.Foods, 2)

	requireInvalidInput(t, rpcCall(t, server, "guna.analyze", FoodsParams{
		Foods: []models.FoodItem{{Name: "rice", Quantity: 1, Unit: "bushels"}},
	}), "foods[0].unit")
}

func TestHandler_NutritionCalculate(t *testing.T) {
	server := newTestServer(t)

	var profile models.NutrientProfile
	decodeResult(t, rpcCall(t, server, "nutrition.calculate", FoodsParams{
		Foods: []models.FoodItem{{Name: "rice", Quantity: 200}},
	}), &profile)
	assert.Greater(t, profile.Calories, 0.0)

	requireInvalidInput(t, rpcCall(t, server, "nutrition.calculate", FoodsParams{
		Foods: []models.FoodItem{{Name: "rice", Quantity: 0}},
	}), "foods[0].quantity")
}

func TestHandler_AgniAnalyze(t *testing.T) {
	server := newTestServer(t)

	var result agni.Result
	decodeResult(t, rpcCall(t, server, "agni.analyze", map[string]any{
		"symptoms": map[string]string{
			"appetite":       "irregular and unpredictable",
			"digestion":      "irregular and unpredictable",
			"bowel_movement": "irregular and unpredictable",
			"energy_level":   "irregular and unpredictable",
		},
	}), &result)
	assert.Equal(t, models.AgniVishama, result.State.Type)
	assert.NotEmpty(t, result.Recommendations)

	requireInvalidInput(t, rpcCall(t, server, "agni.analyze", map[string]any{
		"dosha": map[string]float64{"pitta": -0.2},
	}), "dosha_scores.pitta")
}

func TestHandler_AgniTrend(t *testing.T) {
	server := newTestServer(t)

	var trend agni.Trend
	decodeResult(t, rpcCall(t, server, "agni.trend", AgniTrendParams{
		History: []map[string]any{{"appetite_score": 7}},
	}), &trend)
	assert.Equal(t, agni.SourceDefault, trend.Source)
	assert.Equal(t, 0.5, trend.AgniScore)

	history := make([]map[string]any, agni.WindowSize)
	for i := range history {
		history[i] = map[string]any{"appetite_score": 8, "digestion_quality": 8}
	}
	trend = agni.Trend{}
	decodeResult(t, rpcCall(t, server, "agni.trend", AgniTrendParams{History: history}), &trend)
	assert.Equal(t, agni.SourceHeuristic, trend.Source)
	assert.Equal(t, agni.HeuristicConfidence, trend.Confidence)

	requireInvalidInput(t, rpcCall(t, server, "agni.trend", AgniTrendParams{
		History: []map[string]any{{"appetite_score": 7}, {"mood": "great"}},
	}), "history[1]")
}

func TestHandler_AgniMealImpact(t *testing.T) {
	server := newTestServer(t)
	foods := []models.FoodItem{{Name: "rice", Quantity: 200}}

	var atDefault, atStrong agni.MealImpact
	decodeResult(t, rpcCall(t, server, "agni.mealImpact", AgniMealImpactParams{Foods: foods}), &atDefault)
	strong := 0.9
	decodeResult(t, rpcCall(t, server, "agni.mealImpact", AgniMealImpactParams{Foods: foods, CurrentAgni: &strong}), &atStrong)

	assert.InDelta(t, 0.57, atDefault.ImpactScore, 1e-9)
	assert.InDelta(t, 0.57*0.8, atStrong.ImpactScore, 1e-9)
	assert.NotEqual(t, atDefault.ImpactScore, atStrong.ImpactScore)
}

func TestHandler_ChartScore(t *testing.T) {
	server := newTestServer(t)

	var result compliance.ChartResult
	decodeResult(t, rpcCall(t, server, "chart.score", map[string]any{
		"patient": map[string]any{"dosha": map[string]any{"vata": 0.6, "pitta": 0.3, "kapha": 0.1}},
		"meals": []map[string]any{
			{"type": "afternoon", "foods": []map[string]any{{"name": "rice", "quantity": 200}}},
		},
	}), &result)
	assert.Equal(t, 0.875, result.Compliance.OverallScore)
	assert.Equal(t, map[models.MealType]float64{models.MealLunch: 0.875}, result.MealCompliance)
	require.Len(t, result.Meals, 1)
}

func TestHandler_ChartScore_WithoutPatientScoresMeals(t *testing.T) {
	server := newTestServer(t)
	meals := []map[string]any{
		{"type": "lunch", "foods": []map[string]any{{"name": "milk", "quantity": 200}, {"name": "fish", "quantity": 100}}},
	}

	var bare, uniform compliance.ChartResult
	decodeResult(t, rpcCall(t, server, "chart.score", map[string]any{"meals": meals}), &bare)
	decodeResult(t, rpcCall(t, server, "chart.score", map[string]any{
		"patient": map[string]any{"dosha": map[string]any{"vata": 1, "pitta": 1, "kapha": 1}},
		"meals":   meals,
	}), &uniform)

	require.Len(t, bare.Meals, 1)
	assert.Equal(t, uniform.Compliance.OverallScore, bare.Compliance.OverallScore)
	assert.InDelta(t, 0.66, bare.Compliance.OverallScore, 1e-9)
}

func TestHandler_ChartScore_Invalid(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name   string
		params map[string]any
		field  string
	}{
		{
			name:   "bad meal type",
			params: map[string]any{"meals": []map[string]any{{"type": "brunch", "foods": []any{}}}},
			field:  "meals[0].type",
		},
		{
			name: "bad quantity",
			params: map[string]any{"meals": []map[string]any{
				{"type": "lunch", "foods": []map[string]any{{"name": "rice", "quantity": -5}}},
			}},
			field: "meals[0].foods[0].quantity",
		},
		{
			name:   "bad gender",
			params: map[string]any{"patient": map[string]any{"gender": "robot"}, "meals": []any{}},
			field:  "patient.gender",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireInvalidInput(t, rpcCall(t, server, "chart.score", tt.params), tt.field)
		})
	}
}

func TestHandler_DoshaClassify(t *testing.T) {
	server := newTestServer(t)

	var pred dosha.Prediction
	decodeResult(t, rpcCall(t, server, "dosha.classify", DoshaClassifyParams{
		Profile: map[string]any{"age": 35, "body_type": "thin"},
	}), &pred)
	assert.True(t, pred.Fallback)
	assert.Equal(t, dosha.FallbackConfidence, pred.Confidence)
	assert.Equal(t, models.Vata, pred.PrimaryDosha)

	requireInvalidInput(t, rpcCall(t, server, "dosha.classify", DoshaClassifyParams{
		Profile: map[string]any{"favourite_colour": "blue"},
	}), "profile")
}
