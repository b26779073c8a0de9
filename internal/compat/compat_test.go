package compat

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vaidya/ahara/internal/models"
)

func TestHeuristicScorer(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{a: "rice", b: "ginger", want: 0.7},
		{a: "banana", b: "lemon", want: 0.42},
		{a: "milk", b: "fish", want: 0.14},
	}
	for _, tt := range tests {
		t.Run(tt.a+"+"+tt.b, func(t *testing.T) {
			got, err := HeuristicScorer{}.ScorePair(t.Context(), tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)

			rev, err := HeuristicScorer{}.ScorePair(t.Context(), tt.b, tt.a)
			require.NoError(t, err)
			assert.Equal(t, got, rev)
		})
	}
}

func TestChecker_CheckPair(t *testing.T) {
	c := NewChecker(nil, nil)

	good := c.CheckPair(t.Context(), "rice", "ginger")
	assert.True(t, good.Compatible)
	assert.Equal(t, "rice and ginger are moderately compatible", good.Explanation)
	assert.Equal(t, "Safe to combine", good.Recommendation.Action)

	bad := c.CheckPair(t.Context(), "milk", "fish")
	assert.False(t, bad.Compatible)
	assert.Equal(t, "milk and fish are incompatible and should not be eaten together", bad.Explanation)
	assert.Equal(t, "Eat at least 2-3 hours apart", bad.Recommendation.Timing)
}

func TestChecker_CheckMeal(t *testing.T) {
	c := NewChecker(nil, nil)

	t.Run("fewer than two foods", func(t *testing.T) {
		for _, foods := range [][]string{nil, {"rice"}} {
			res := c.CheckMeal(t.Context(), foods)
			assert.True(t, res.Compatible)
			assert.Equal(t, 1.0, res.Score)
			assert.Empty(t, res.Conflicts)
		}
	})

	t.Run("conflicting meal", func(t *testing.T) {
		res := c.CheckMeal(t.Context(), []string{"milk", "fish", "rice"})
		assert.False(t, res.Compatible)
		assert.InDelta(t, (0.14+0.7+0.7)/3, res.Score, 1e-9)
		require.Len(t, res.Conflicts, 1)
		assert.Equal(t, "milk", res.Conflicts[0].FoodA)
		assert.Equal(t, "fish", res.Conflicts[0].FoodB)
		assert.Equal(t, "Issues found", res.Status)
		assert.Equal(t, "Found 1 compatibility conflicts", res.Message)
		assert.Equal(t, []string{"Consider removing milk or fish"}, res.Suggestions)
	})

	t.Run("suggestions capped at three", func(t *testing.T) {
		res := c.CheckMeal(t.Context(), []string{"milk", "fish", "banana", "lemon"})
		assert.Greater(t, len(res.Conflicts), 3)
		assert.Len(t, res.Suggestions, 3)
	})
}

func TestChecker_UsesScorer(t *testing.T) {
	ctrl := gomock.NewController(t)
	scorer := NewMockPairScorer(ctrl)
	scorer.EXPECT().ScorePair(gomock.Any(), "milk", "fish").Return(0.9, nil)

	res := NewChecker(scorer, nil).CheckPair(t.Context(), "milk", "fish")
	assert.True(t, res.Compatible)
	assert.Equal(t, 0.9, res.Score)
	assert.Equal(t, "milk and fish are highly compatible and work well together", res.Explanation)
}

func TestChecker_FallsBackOnScorerFailure(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		err   error
	}{
		{name: "unavailable", err: fmt.Errorf("dial: %w", models.ErrScorerUnavailable)},
		{name: "out of range", score: 1.5},
		{name: "not a number", score: math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			scorer := NewMockPairScorer(ctrl)
			scorer.EXPECT().ScorePair(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.score, tt.err)

			got := NewChecker(scorer, nil).Score(t.Context(), "milk", "fish")
			assert.InDelta(t, 0.14, got, 1e-9)
		})
	}
}

func TestCachedScorer(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := NewMockPairScorer(ctrl)
	next.EXPECT().ScorePair(gomock.Any(), "Milk", "fish").Return(0.2, nil).Times(1)

	s, err := NewCachedScorer(next, DefaultCacheSize, nil)
	require.NoError(t, err)

	v, err := s.ScorePair(t.Context(), "Milk", "fish")
	require.NoError(t, err)
	assert.Equal(t, 0.2, v)

	// Reversed and differently cased names hit the same entry.
	v, err = s.ScorePair(t.Context(), "fish", " milk ")
	require.NoError(t, err)
	assert.Equal(t, 0.2, v)
	assert.Equal(t, 1, s.Len())

	s.Purge()
	assert.Zero(t, s.Len())
}

func TestCachedScorer_DoesNotCacheErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := NewMockPairScorer(ctrl)
	gomock.InOrder(
		next.EXPECT().ScorePair(gomock.Any(), "rice", "dal").Return(0.0, models.ErrScorerUnavailable),
		next.EXPECT().ScorePair(gomock.Any(), "rice", "dal").Return(0.8, nil),
	)

	s, err := NewCachedScorer(next, 4, nil)
	require.NoError(t, err)

	_, err = s.ScorePair(t.Context(), "rice", "dal")
	require.ErrorIs(t, err, models.ErrScorerUnavailable)

	v, err := s.ScorePair(t.Context(), "rice", "dal")
	require.NoError(t, err)
	assert.Equal(t, 0.8, v)
}

func TestNewCachedScorer_RejectsBadSize(t *testing.T) {
	_, err := NewCachedScorer(HeuristicScorer{}, 0, nil)
	require.Error(t, err)
}
