package tokenkit

import (
	"fmt"
	"io"

	"github.com/yacobolo/tokenkit/internal/preview"
)

// OutputFormat selects how a generation result is reported.
type OutputFormat string

const (
	OutputSummary OutputFormat = "summary" // one line plus per-type counts
	OutputTokens  OutputFormat = "tokens"  // every token with swatches
	OutputJSON    OutputFormat = "json"    // machine-readable report
	OutputQuiet   OutputFormat = "quiet"   // nothing
)

// DetermineOutputFormat selects the report format from flags.
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	// Explicit --quiet wins
	if quiet {
		return OutputQuiet
	}

	switch formatFlag {
	case "summary":
		return OutputSummary
	case "tokens", "full":
		return OutputTokens
	case "json":
		return OutputJSON
	case "quiet":
		return OutputQuiet
	default:
		return OutputSummary
	}
}

// WriteOutput reports result in format.
func WriteOutput(w io.Writer, result *Result, format OutputFormat, forceColors bool) error {
	switch format {
	case OutputQuiet:
		return nil
	case OutputJSON:
		return WriteJSON(w, result)
	case OutputTokens:
		reporter := preview.NewReporter(w, forceColors)
		reporter.PrintTokens(result.Tokens)
		fmt.Fprintln(w)
		reporter.PrintSummary(result.Counts, result.Output)
	default:
		preview.NewReporter(w, forceColors).PrintSummary(result.Counts, result.Output)
	}
	return nil
}
