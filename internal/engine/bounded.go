package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/vaidya/ahara/internal/agni"
	"github.com/vaidya/ahara/internal/compat"
	"github.com/vaidya/ahara/internal/dosha"
	"github.com/vaidya/ahara/internal/models"
)

// callWithTimeout runs fn under a deadline of d and stops waiting when the
// deadline passes, even if fn ignores its context. A late result is
// discarded. d <= 0 means no deadline beyond ctx.
func callWithTimeout[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("%w: %w", models.ErrScorerUnavailable, ctx.Err())
	}
}

type boundedPredictor struct {
	next    agni.Predictor
	timeout time.Duration
}

func (b boundedPredictor) PredictAgni(ctx context.Context, window [][]float64) (float64, error) {
	return callWithTimeout(ctx, b.timeout, func(ctx context.Context) (float64, error) {
		return b.next.PredictAgni(ctx, window)
	})
}

type boundedPairScorer struct {
	next    compat.PairScorer
	timeout time.Duration
}

func (b boundedPairScorer) ScorePair(ctx context.Context, x, y string) (float64, error) {
	return callWithTimeout(ctx, b.timeout, func(ctx context.Context) (float64, error) {
		return b.next.ScorePair(ctx, x, y)
	})
}

type boundedClassifier struct {
	next    dosha.Classifier
	timeout time.Duration
}

func (b boundedClassifier) Classify(ctx context.Context, features []float64) (models.DoshaScores, error) {
	return callWithTimeout(ctx, b.timeout, func(ctx context.Context) (models.DoshaScores, error) {
		return b.next.Classify(ctx, features)
	})
}

// livePredictor reports whether p calls a model, as opposed to being absent
// or the built-in heuristic.
func livePredictor(p agni.Predictor) bool {
	if p == nil {
		return false
	}
	_, heuristic := p.(agni.HeuristicPredictor)
	return !heuristic
}

func livePairScorer(s compat.PairScorer) bool {
	if s == nil {
		return false
	}
	_, heuristic := s.(compat.HeuristicScorer)
	return !heuristic
}

func liveClassifier(c dosha.Classifier) bool {
	if c == nil {
		return false
	}
	_, fallback := c.(dosha.FallbackClassifier)
	return !fallback
}
