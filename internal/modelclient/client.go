// Package modelclient talks to a remote model server that hosts the agni
// predictor, the food-pair compatibility model and the dosha classifier.
//
// Every call is a JSON POST. Any transport, status or decoding failure is
// returned wrapped around models.ErrScorerUnavailable so callers fall back
// to their heuristics.
package modelclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vaidya/ahara/internal/models"
)

// Paths served by the model server.
const (
	AgniPath   = "/v1/agni/predict"
	CompatPath = "/v1/compat/score"
	DoshaPath  = "/v1/dosha/classify"
)

// DefaultTimeout bounds a single request when the caller does not supply an
// http.Client.
const DefaultTimeout = 5 * time.Second

// maxErrorBody limits how much of an error response is quoted.
const maxErrorBody = 512

// Config configures a Client.
type Config struct {
	// Endpoint is the base URL, e.g. http://localhost:8500. Empty disables
	// the client: every call fails with models.ErrScorerUnavailable.
	Endpoint string

	// APIKey is sent as a bearer token when set.
	APIKey string

	HTTPClient *http.Client
}

// Client implements agni.Predictor, compat.PairScorer and dosha.Classifier.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
}

// New creates a Client.
func New(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		httpClient: hc,
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:     cfg.APIKey,
	}
}

// Enabled reports whether an endpoint is configured.
func (c *Client) Enabled() bool {
	return c.endpoint != ""
}

type agniRequest struct {
	Window [][]float64 `json:"window"`
}

type scoreResponse struct {
	Score *float64 `json:"score"`
}

type pairRequest struct {
	FoodA string `json:"food_a"`
	FoodB string `json:"food_b"`
}

type doshaRequest struct {
	Features []float64 `json:"features"`
}

type doshaResponse struct {
	Probabilities *models.DoshaScores `json:"probabilities"`
}

// PredictAgni implements agni.Predictor.
func (c *Client) PredictAgni(ctx context.Context, window [][]float64) (float64, error) {
	var resp scoreResponse
	if err := c.post(ctx, AgniPath, agniRequest{Window: window}, &resp); err != nil {
		return 0, err
	}
	return resp.score(AgniPath)
}

// ScorePair implements compat.PairScorer.
func (c *Client) ScorePair(ctx context.Context, a, b string) (float64, error) {
	var resp scoreResponse
	if err := c.post(ctx, CompatPath, pairRequest{FoodA: a, FoodB: b}, &resp); err != nil {
		return 0, err
	}
	return resp.score(CompatPath)
}

// Classify implements dosha.Classifier.
func (c *Client) Classify(ctx context.Context, features []float64) (models.DoshaScores, error) {
	var resp doshaResponse
	if err := c.post(ctx, DoshaPath, doshaRequest{Features: features}, &resp); err != nil {
		return models.DoshaScores{}, err
	}
	if resp.Probabilities == nil {
		return models.DoshaScores{}, fmt.Errorf("%s: response has no probabilities: %w", DoshaPath, models.ErrScorerUnavailable)
	}
	return *resp.Probabilities, nil
}

func (r scoreResponse) score(path string) (float64, error) {
	if r.Score == nil {
		return 0, fmt.Errorf("%s: response has no score: %w", path, models.ErrScorerUnavailable)
	}
	return *r.Score, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	if c.endpoint == "" {
		return fmt.Errorf("no model endpoint configured: %w", models.ErrScorerUnavailable)
	}

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", unavailable(err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", unavailable(err))
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", path, unavailable(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%s: status %d: %s: %w", path, resp.StatusCode, strings.TrimSpace(string(msg)), models.ErrScorerUnavailable)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", path, unavailable(err))
	}
	return nil
}

// unavailable joins err with models.ErrScorerUnavailable so both match errors.Is.
func unavailable(err error) error {
	return fmt.Errorf("%w: %w", models.ErrScorerUnavailable, err)
}
