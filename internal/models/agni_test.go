package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyAgniLevel(t *testing.T) {
	tests := []struct {
		score float64
		want  AgniLevel
	}{
		{0.95, AgniExcellent},
		{0.8, AgniExcellent},
		{0.6, AgniGood},
		{0.5, AgniModerate},
		{0.2, AgniPoor},
		{0.1, AgniVeryPoor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyAgniLevel(tt.score), "score %v", tt.score)
	}
}

func TestStrength(t *testing.T) {
	assert.Equal(t, StrengthStrong, StrengthForScore(0.7))
	assert.Equal(t, StrengthModerate, StrengthForScore(0.4))
	assert.Equal(t, StrengthWeak, StrengthForScore(0.39))

	assert.InDelta(t, 0.35, StrengthWeak.Level(), 1e-12)
	assert.InDelta(t, 0.5, Strength("").Level(), 1e-12)

	var unknown *AgniState
	assert.InDelta(t, 0.5, unknown.CurrentLevel(), 1e-12)
	assert.InDelta(t, 0.85, (&AgniState{Type: AgniTikshna, Strength: StrengthStrong}).CurrentLevel(), 1e-12)
}

func TestParseAgniType(t *testing.T) {
	got, err := ParseAgniType(" Manda ")
	assert.NoError(t, err)
	assert.Equal(t, AgniManda, got)

	_, err = ParseAgniType("fierce")
	assert.Error(t, err)
}

func TestSeverityAtLeast(t *testing.T) {
	assert.True(t, SeverityHigh.AtLeast(SeverityMedium))
	assert.True(t, SeverityLow.AtLeast(SeverityLow))
	assert.False(t, SeverityNone.AtLeast(SeverityLow))
	assert.InDelta(t, 1.0, Clamp01(1.4), 1e-12)
	assert.InDelta(t, 0.0, Clamp01(-0.2), 1e-12)
}
