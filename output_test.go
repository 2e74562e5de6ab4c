package tokenkit

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/tokenkit/internal/tokens"
)

func sampleResult() *Result {
	toks := []tokens.Token{
		{ID: "primary-1", Name: "Primary 1", Value: "#fff5f5", Type: tokens.TypeColor},
		{ID: "space-0", Name: "Step 1", Value: "8px", Type: tokens.TypeSpacing},
		{ID: "space-1", Name: "Step 2", Value: "16px", Type: tokens.TypeSpacing},
	}
	return &Result{
		Tokens: toks,
		Counts: countByType(toks),
		Theme:  map[string]string{"--primary-1": "#fff5f5", "--radius-md": "6px"},
		Output: "web/tokens.css",
		Format: FormatCSS,
	}
}

func TestDetermineOutputFormat(t *testing.T) {
	tests := []struct {
		flag  string
		quiet bool
		want  OutputFormat
	}{
		{"", false, OutputSummary},
		{"summary", false, OutputSummary},
		{"tokens", false, OutputTokens},
		{"full", false, OutputTokens},
		{"json", false, OutputJSON},
		{"json", true, OutputQuiet},
		{"bogus", false, OutputSummary},
	}
	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineOutputFormat(tt.flag, tt.quiet))
		})
	}
}

func TestWriteOutput_Summary(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, sampleResult(), OutputSummary, false))
	out := buf.String()
	assert.Contains(t, out, "Generated 3 tokens to web/tokens.css")
	assert.Contains(t, out, "Colors: 1, Spacing: 2")
}

func TestWriteOutput_Tokens(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, sampleResult(), OutputTokens, false))
	out := buf.String()
	assert.Contains(t, out, "--space-1")
	assert.Contains(t, out, "Generated 3 tokens")
}

func TestWriteOutput_Quiet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, sampleResult(), OutputQuiet, false))
	assert.Empty(t, buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, sampleResult(), OutputJSON, false))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, 3, out.Summary.TotalTokens)
	assert.Equal(t, map[string]int{"color": 1, "spacing": 2}, out.Summary.ByType)
	assert.Equal(t, 2, out.Summary.Variables)
	assert.Equal(t, "css", out.Summary.Format)
	require.Len(t, out.Groups, 2)
	assert.Equal(t, []string{"space-0", "space-1"}, out.Groups[1].IDs)
}

func TestBuildJSONOutput_Timestamp(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	out := buildJSONOutput(sampleResult(), now)
	assert.Equal(t, "2026-03-01T11:00:00Z", out.Timestamp)
}
