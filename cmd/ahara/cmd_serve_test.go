package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTCPAddr(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	tests := []struct {
		name        string
		addr        string
		allowRemote bool
		want        string
	}{
		{name: "bare port", addr: "7400", want: "127.0.0.1:7400"},
		{name: "empty host", addr: ":7400", want: "127.0.0.1:7400"},
		{name: "all interfaces without flag", addr: "0.0.0.0:7400", want: "127.0.0.1:7400"},
		{name: "ipv6 any without flag", addr: "[::]:7400", want: "127.0.0.1:7400"},
		{name: "explicit host", addr: "192.168.1.5:7400", want: "192.168.1.5:7400"},
		{name: "remote allowed", addr: "0.0.0.0:7400", allowRemote: true, want: "0.0.0.0:7400"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveTCPAddr(tt.addr, tt.allowRemote, logger))
		})
	}
}

func TestServeCommand_Stdio(t *testing.T) {
	projectDir(t)

	requests := strings.Join([]string{
		`{"jsonrpc":"2.0","method":"food.lookup","params":{"food":"ghee"},"id":1}`,
		`{"jsonrpc":"2.0","method":"meal.incompatibilities","params":{"foods":["milk","fish"]},"id":2}`,
		`{"jsonrpc":"2.0","method":"no.such","id":3}`,
		`{"jsonrpc":"2.0","method":"nutrition.calculate","params":{"foods":[{"name":"rice","quantity":0}]},"id":4}`,
	}, "\n") + "\n"

	cmd := newServeCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(requests))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, stderr.String(), "JSON-RPC server running on stdio")

	var responses []map[string]any
	scanner := bufio.NewScanner(&stdout)
	for scanner.Scan() {
		var resp map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &resp))
		responses = append(responses, resp)
	}
	require.Len(t, responses, 4)

	lookup, ok := responses[0]["result"].(map[string]any)
	require.True(t, ok, "food.lookup should return a result: %v", responses[0])
	assert.Equal(t, true, lookup["known"])

	check, ok := responses[1]["result"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, check["check"].(map[string]any)["safe_to_eat"])

	rpcErr, ok := responses[2]["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(-32601), rpcErr["code"])

	rpcErr, ok = responses[3]["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(-32001), rpcErr["code"])
	assert.Equal(t, "foods[0].quantity", rpcErr["data"].(map[string]any)["field"])
}

func TestServeCommand_HelpListsMethods(t *testing.T) {
	cmd := newServeCommand()
	for _, m := range []string{"chart.score", "agni.mealImpact", "dosha.classify"} {
		assert.Contains(t, cmd.Long, m)
	}
	assert.Contains(t, cmd.Long, "Compliance score of a diet chart")
}
