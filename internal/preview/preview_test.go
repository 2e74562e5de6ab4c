package preview

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/tokenkit/internal/export"
	"github.com/yacobolo/tokenkit/internal/scale"
	"github.com/yacobolo/tokenkit/internal/theme"
	"github.com/yacobolo/tokenkit/internal/tokens"
)

func TestRenderStyle_NoColors(t *testing.T) {
	assert.Equal(t, "plain", RenderStyle(StyleHeader, "plain", false))
	assert.Equal(t, "[#ffffff]", Swatch("#ffffff", false))
}

func TestReporter_PrintScale(t *testing.T) {
	var buf bytes.Buffer
	r := &Reporter{w: &buf}

	s := scale.GenerateColorScale("#3b82f6")
	r.PrintScale("Primary", s)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 11)
	assert.Equal(t, "Primary", lines[0])
	assert.Contains(t, lines[1], "  50  "+s.Colors[0])

	buf.Reset()
	r.PrintScale("Broken", scale.GenerateColorScale("nope"))
	assert.Contains(t, buf.String(), "invalid color")
}

func TestReporter_PrintTokens(t *testing.T) {
	var buf bytes.Buffer
	r := &Reporter{w: &buf}
	r.PrintTokens(tokens.Defaults())

	out := buf.String()
	assert.Contains(t, out, "Colors\n")
	assert.Contains(t, out, "[#3b82f6] Primary 500")
	assert.Contains(t, out, "--spacing-4")
	assert.Less(t, strings.Index(out, "Colors"), strings.Index(out, "Spacing"))
}

func TestReporter_Summaries(t *testing.T) {
	var buf bytes.Buffer
	r := &Reporter{w: &buf}
	r.PrintSummary(map[tokens.Type]int{tokens.TypeColor: 3, tokens.TypeSpacing: 1}, "tokens.css")
	assert.Equal(t, "Generated 4 tokens to tokens.css\n  Colors: 3, Spacing: 1\n", buf.String())

	buf.Reset()
	r.PrintImport(export.ImportStats{FilesScanned: 1, Declarations: 1})
	assert.Equal(t, "1 token from 1 file\n", buf.String())
}

func TestPage(t *testing.T) {
	toks := []tokens.Token{
		{ID: "primary-1", Name: "Primary 1", Value: "#eff6ff", Type: tokens.TypeColor},
		{ID: "evil", Name: "<script>", Value: "x", Type: tokens.TypeTypography},
	}
	m := theme.Compose(theme.Inputs{Tokens: toks, Shadows: scale.DefaultShadowLayers()})

	var buf bytes.Buffer
	require.NoError(t, Page(PageData{Theme: m, Tokens: toks, Dark: true}).Render(context.Background(), &buf))
	html := buf.String()

	assert.Contains(t, html, `data-mode="dark"`)
	assert.Contains(t, html, "--primary-1: #eff6ff;")
	assert.Contains(t, html, `background: var(--primary-1)`)
	assert.Contains(t, html, "box-shadow: var(--shadow-layer-1)")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.NotContains(t, html, "new WebSocket")
}

func TestPage_Structure(t *testing.T) {
	toks := []tokens.Token{
		{ID: "primary-1", Name: "Primary 1", Value: "#eff6ff", Type: tokens.TypeColor},
		{ID: "font-family-primary", Name: "Font Family Primary", Value: `"Inter", sans-serif`, Type: tokens.TypeTypography},
	}
	m := theme.Compose(theme.Inputs{Tokens: toks})

	var buf bytes.Buffer
	require.NoError(t, Page(PageData{Title: "Brand", Theme: m, Tokens: toks, Live: true}).Render(context.Background(), &buf))
	html := buf.String()

	assert.True(t, strings.HasPrefix(html, "<!doctype html>"))
	assert.Contains(t, html, `data-mode="light"`)
	assert.Contains(t, html, "<title>Brand</title>")
	assert.Contains(t, html, "<h1>Brand</h1>")
	assert.Contains(t, html, `<section data-type="color"><h2>`)
	assert.Contains(t, html, `<li data-id="primary-1"><span class="swatch" style="background: var(--primary-1);"></span>`)
	assert.Contains(t, html, `<strong>Primary 1</strong> <code>--primary-1</code> <span>#eff6ff</span>`)
	assert.Contains(t, html, `<li data-id="font-family-primary"><strong>`)

	// Quoted families are escaped exactly once in the root style.
	assert.Contains(t, html, `--font-family-primary: &#34;Inter&#34;, sans-serif;`)
	assert.NotContains(t, html, "&amp;#34;")

	assert.Contains(t, html, "new WebSocket")
	assert.True(t, strings.HasSuffix(html, "</script></body></html>"))
}
