package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand(t *testing.T) {
	dir := projectDir(t)
	chart := writeFile(t, dir, "chart.yaml", riceChartYAML)
	history := writeFile(t, dir, "history.yaml", "days:\n  - appetite_score: 7\n")
	symptoms := writeFile(t, dir, "symptoms.yaml", vishamaSymptomsYAML)

	out, err := runCommand(newValidateCommand(), chart, history, symptoms)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ "+chart+" (chart)")
	assert.Contains(t, out, "✓ "+history+" (history)")
	assert.Contains(t, out, "✓ "+symptoms+" (symptoms)")
}

func TestValidateCommand_Invalid(t *testing.T) {
	dir := projectDir(t)
	good := writeFile(t, dir, "good.yaml", riceChartYAML)
	bad := writeFile(t, dir, "bad.yaml", "meals:\n  - type: brunch\n    foods: []\n")

	out, err := runCommand(newValidateCommand(), good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 file(s) failed validation")
	assert.Contains(t, out, "✗ "+bad+" (chart)")
	assert.Contains(t, out, "/meals/0/type")
}

func TestValidateCommand_UnknownKind(t *testing.T) {
	dir := projectDir(t)
	path := writeFile(t, dir, "recipes.yaml", "recipes: []\n")

	_, err := runCommand(newValidateCommand(), path)
	require.Error(t, err)
}
