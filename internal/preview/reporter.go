// Package preview renders design tokens for people: colored terminal
// listings and the HTML preview page.
package preview

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yacobolo/tokenkit/internal/export"
	"github.com/yacobolo/tokenkit/internal/scale"
	"github.com/yacobolo/tokenkit/internal/tokens"
)

// Reporter writes human-readable listings.
type Reporter struct {
	w         io.Writer
	useColors bool
}

// NewReporter creates a reporter. forceColors skips terminal detection.
func NewReporter(w io.Writer, forceColors bool) *Reporter {
	return &Reporter{w: w, useColors: shouldUseColors(forceColors)}
}

func shouldUseColors(force bool) bool {
	if force {
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}
	return false
}

// UseColors reports whether colors are enabled.
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// PrintScale lists a generated color scale, one stop per line.
func (r *Reporter) PrintScale(label string, s scale.ColorScale) {
	fmt.Fprintln(r.w, RenderStyle(StyleHeader, label, r.useColors))
	if s.Empty() {
		fmt.Fprintln(r.w, RenderStyle(StyleWarn, "  invalid color, no scale generated", r.useColors))
		return
	}
	for i, c := range s.Colors {
		fmt.Fprintf(r.w, "  %s %4d  %s\n", Swatch(c, r.useColors), s.Stops[i], c)
	}
}

// PrintPalette lists a 12-step catalog palette.
func (r *Reporter) PrintPalette(name string, steps []string) {
	fmt.Fprintln(r.w, RenderStyle(StyleHeader, name, r.useColors))
	for i, c := range steps {
		fmt.Fprintf(r.w, "  %s %4d  %s\n", Swatch(c, r.useColors), i+1, c)
	}
}

// PrintTokens lists tokens grouped by category.
func (r *Reporter) PrintTokens(toks []tokens.Token) {
	for i, g := range export.Groups(toks) {
		if i > 0 {
			fmt.Fprintln(r.w)
		}
		fmt.Fprintln(r.w, RenderStyle(StyleHeader, g.Type.Label(), r.useColors))
		width := 0
		for _, t := range g.Tokens {
			width = max(width, len(t.Name))
		}
		for _, t := range g.Tokens {
			prefix := "  "
			if g.Type == tokens.TypeColor && scale.ValidColor(t.Value) {
				prefix = "  " + Swatch(t.Value, r.useColors) + " "
			}
			fmt.Fprintf(r.w, "%s%-*s  %s  %s\n", prefix, width, t.Name, t.Value,
				RenderStyle(StyleMuted, "--"+t.ID, r.useColors))
		}
	}
}

// PrintSummary reports a generation run.
func (r *Reporter) PrintSummary(counts map[tokens.Type]int, output string) {
	total := 0
	parts := make([]string, 0, len(counts))
	for _, t := range tokens.Types() {
		if counts[t] == 0 {
			continue
		}
		total += counts[t]
		parts = append(parts, fmt.Sprintf("%s: %d", t.Label(), counts[t]))
	}

	line := fmt.Sprintf("Generated %s", pluralizeCount(total, "token", "tokens"))
	if output != "" {
		line += " to " + output
	}
	fmt.Fprintln(r.w, RenderStyle(StyleOK, line, r.useColors))
	if len(parts) > 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleMuted, "  "+strings.Join(parts, ", "), r.useColors))
	}
}

// PrintImport reports an import run.
func (r *Reporter) PrintImport(stats export.ImportStats) {
	fmt.Fprintf(r.w, "%s from %s",
		pluralizeCount(stats.Declarations-stats.Duplicates, "token", "tokens"),
		pluralizeCount(stats.FilesScanned, "file", "files"))
	if stats.FilesSkipped > 0 || stats.Duplicates > 0 {
		fmt.Fprint(r.w, RenderStyle(StyleWarn,
			fmt.Sprintf(" (%d ignored files, %d duplicates)", stats.FilesSkipped, stats.Duplicates), r.useColors))
	}
	fmt.Fprintln(r.w)
}

func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
