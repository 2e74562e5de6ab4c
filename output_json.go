package tokenkit

import (
	"encoding/json"
	"io"
	"time"

	"github.com/yacobolo/tokenkit/internal/export"
	"github.com/yacobolo/tokenkit/internal/tokens"
)

// JSONOutput represents the structured JSON report schema
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Summary   JSONSummary `json:"summary"`
	Groups    []JSONGroup `json:"groups"`
}

// JSONSummary contains high-level counts
type JSONSummary struct {
	TotalTokens int            `json:"total_tokens"`
	ByType      map[string]int `json:"by_type"`
	Variables   int            `json:"theme_variables"`
	Output      string         `json:"output,omitempty"`
	Format      string         `json:"format"`
}

// JSONGroup lists the token ids of one category
type JSONGroup struct {
	Type  string   `json:"type"`
	Label string   `json:"label"`
	IDs   []string `json:"ids"`
}

// WriteJSON writes the generation report as JSON
func WriteJSON(w io.Writer, result *Result) error {
	output := buildJSONOutput(result, time.Now())
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts a Result to JSONOutput
func buildJSONOutput(result *Result, now time.Time) JSONOutput {
	byType := make(map[string]int, len(result.Counts))
	for _, t := range tokens.Types() {
		if n := result.Counts[t]; n > 0 {
			byType[string(t)] = n
		}
	}

	groups := make([]JSONGroup, 0, len(tokens.Types()))
	for _, g := range export.Groups(result.Tokens) {
		ids := make([]string, 0, len(g.Tokens))
		for _, t := range g.Tokens {
			ids = append(ids, t.ID)
		}
		groups = append(groups, JSONGroup{Type: string(g.Type), Label: g.Type.Label(), IDs: ids})
	}

	return JSONOutput{
		Version:   export.SchemaVersion,
		Timestamp: now.UTC().Format(time.RFC3339),
		Summary: JSONSummary{
			TotalTokens: result.Total(),
			ByType:      byType,
			Variables:   len(result.Theme),
			Output:      result.Output,
			Format:      string(result.Format),
		},
		Groups: groups,
	}
}
