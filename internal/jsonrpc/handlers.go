package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/vaidya/ahara/internal/agni"
	"github.com/vaidya/ahara/internal/dosha"
	"github.com/vaidya/ahara/internal/engine"
	"github.com/vaidya/ahara/internal/incompat"
	"github.com/vaidya/ahara/internal/intake"
	"github.com/vaidya/ahara/internal/models"
)

// HandlerContext provides shared state for method handlers.
type HandlerContext struct {
	engine *engine.Engine

	// defaults fills in demographics a chart omits.
	defaults models.PatientProfile
}

// NewHandlerContext creates a new handler context.
func NewHandlerContext(e *engine.Engine, defaults models.PatientProfile) *HandlerContext {
	return &HandlerContext{engine: e, defaults: defaults}
}

// RegisterHandlers registers all scoring method handlers.
func RegisterHandlers(registry *MethodRegistry, hctx *HandlerContext) {
	for _, m := range []Method{
		{Name: "food.lookup", Summary: "Catalog properties of one food", Handler: hctx.handleFoodLookup},
		{Name: "meal.incompatibilities", Summary: "Incompatible food pairs in a meal, optionally with alternatives", Handler: hctx.handleMealIncompatibilities},
		{Name: "rasa.recommend", Summary: "Tastes to favour and avoid for a dosha profile", Handler: hctx.handleRasaRecommend},
		{Name: "guna.analyze", Summary: "Heating and cooling balance of a meal", Handler: hctx.handleGunaAnalyze},
		{Name: "nutrition.calculate", Summary: "Nutrient totals of a meal", Handler: hctx.handleNutritionCalculate},
		{Name: "agni.analyze", Summary: "Digestive fire type and strength from symptoms", Handler: hctx.handleAgniAnalyze},
		{Name: "agni.trend", Summary: "Agni score and 7-day forecast from daily records", Handler: hctx.handleAgniTrend},
		{Name: "agni.mealImpact", Summary: "Predicted effect of a meal on agni", Handler: hctx.handleAgniMealImpact},
		{Name: "chart.score", Summary: "Compliance score of a diet chart", Handler: hctx.handleChartScore},
		{Name: "dosha.classify", Summary: "Constitution from a questionnaire profile", Handler: hctx.handleDoshaClassify},
	} {
		registry.Register(m)
	}
}

// decodeParams unmarshals params into v, rejecting unknown fields.
func decodeParams(params json.RawMessage, v any) error {
	if len(params) == 0 {
		return ErrInvalidParams("params are required")
	}
	dec := json.NewDecoder(bytes.NewReader(params))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return ErrInvalidParams(err.Error())
	}
	return nil
}

// --- food.lookup ---

type FoodLookupParams struct {
	Food string `json:"food"`
}

func (h *HandlerContext) handleFoodLookup(_ context.Context, params json.RawMessage) (any, error) {
	var p FoodLookupParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if p.Food == "" {
		return nil, ErrInvalidParams("food is required")
	}
	return h.engine.LookupFoodProperties(p.Food), nil
}

// --- meal.incompatibilities ---

type MealIncompatibilitiesParams struct {
	Foods        []string `json:"foods"`
	Alternatives bool     `json:"alternatives,omitempty"`
}

type MealIncompatibilitiesResult struct {
	Check        incompat.MealResult    `json:"check"`
	Alternatives *incompat.Alternatives `json:"alternatives,omitempty"`
}

func (h *HandlerContext) handleMealIncompatibilities(_ context.Context, params json.RawMessage) (any, error) {
	var p MealIncompatibilitiesParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	check := h.engine.CheckMealIncompatibilities(p.Foods)
	result := &MealIncompatibilitiesResult{Check: check}
	if p.Alternatives && len(check.IncompatiblePairs) > 0 {
		alts := h.engine.SuggestAlternatives(check.IncompatiblePairs)
		result.Alternatives = &alts
	}
	return result, nil
}

// --- rasa.recommend ---

type RasaRecommendParams struct {
	Dosha  map[string]any `json:"dosha"`
	Tastes []string       `json:"tastes,omitempty"`
}

func (h *HandlerContext) handleRasaRecommend(_ context.Context, params json.RawMessage) (any, error) {
	var p RasaRecommendParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	scores, err := dosha.DecodeScores(p.Dosha)
	if err != nil {
		return nil, err
	}
	tastes := make([]models.Taste, 0, len(p.Tastes))
	for i, raw := range p.Tastes {
		t, err := models.ParseTaste(raw)
		if err != nil {
			return nil, ErrInvalidInput(fmt.Sprintf("tastes[%d]", i), err.Error())
		}
		tastes = append(tastes, t)
	}
	return h.engine.RecommendRasas(scores, tastes), nil
}

// --- guna.analyze / nutrition.calculate ---

type FoodsParams struct {
	Foods []models.FoodItem `json:"foods"`
}

func (h *HandlerContext) handleGunaAnalyze(_ context.Context, params json.RawMessage) (any, error) {
	var p FoodsParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	analysis, err := h.engine.AnalyzeMealGuna(p.Foods)
	if err != nil {
		return nil, err
	}
	return analysis, nil
}

func (h *HandlerContext) handleNutritionCalculate(_ context.Context, params json.RawMessage) (any, error) {
	var p FoodsParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	profile, err := h.engine.CalculateMealNutrition(p.Foods)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// --- agni.analyze ---

func (h *HandlerContext) handleAgniAnalyze(ctx context.Context, params json.RawMessage) (any, error) {
	var p agni.PatientData
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if p.Dosha != nil {
		if err := p.Dosha.Validate(); err != nil {
			return nil, err
		}
	}
	return h.engine.AnalyzeAgni(ctx, p), nil
}

// --- agni.trend ---

type AgniTrendParams struct {
	History []map[string]any `json:"history"`
}

func (h *HandlerContext) handleAgniTrend(ctx context.Context, params json.RawMessage) (any, error) {
	var p AgniTrendParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	history, err := agni.DecodeHistory(p.History)
	if err != nil {
		return nil, err
	}
	return h.engine.PredictAgniTrend(ctx, history), nil
}

// --- agni.mealImpact ---

type AgniMealImpactParams struct {
	Foods []models.FoodItem `json:"foods"`
	// CurrentAgni defaults to the neutral 0.5 when absent.
	CurrentAgni *float64 `json:"current_agni,omitempty"`
}

func (h *HandlerContext) handleAgniMealImpact(_ context.Context, params json.RawMessage) (any, error) {
	var p AgniMealImpactParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	current := 0.5
	if p.CurrentAgni != nil {
		current = *p.CurrentAgni
	}
	impact, err := h.engine.PredictMealImpact(p.Foods, current)
	if err != nil {
		return nil, err
	}
	return impact, nil
}

// --- chart.score ---

func (h *HandlerContext) handleChartScore(ctx context.Context, params json.RawMessage) (any, error) {
	var chart intake.Chart
	if err := decodeParams(params, &chart); err != nil {
		return nil, err
	}
	chart.NormalizeMealTypes()
	patient, err := chart.PatientFor(h.defaults)
	if err != nil {
		return nil, err
	}
	result, err := h.engine.ScoreChart(ctx, chart.Meals, patient)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// --- dosha.classify ---

type DoshaClassifyParams struct {
	Profile map[string]any `json:"profile"`
}

func (h *HandlerContext) handleDoshaClassify(ctx context.Context, params json.RawMessage) (any, error) {
	var p DoshaClassifyParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	profile, err := dosha.DecodeProfile(p.Profile)
	if err != nil {
		return nil, err
	}
	return h.engine.ClassifyDosha(ctx, profile), nil
}
