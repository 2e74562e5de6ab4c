// Package tokenkit generates design tokens from a declarative design and
// exports them as CSS custom properties, JSON or YAML.
//
// A design selects a base color or catalog brand, a modular type scale, a
// spacing base unit and the surface tables (radius, shadows, grids,
// interaction opacities). Generation projects those inputs into tokens,
// composes the theme and writes the export:
//
//	design, err := tokenkit.LoadDesign("design.yaml")
//	if err != nil {
//		return err
//	}
//	result, err := tokenkit.Generate(tokenkit.Config{
//		Design: design,
//		Output: "web/tokens.css",
//		Format: tokenkit.FormatCSS,
//	})
//
// # CLI Tool
//
// tokenkit also provides a CLI tool with a live preview server. Install with:
//
//	go install github.com/yacobolo/tokenkit/cmd/tokenkit@latest
package tokenkit

import (
	"github.com/yacobolo/tokenkit/internal/app"
	"github.com/yacobolo/tokenkit/internal/export"
	"github.com/yacobolo/tokenkit/internal/logging"
	"github.com/yacobolo/tokenkit/internal/theme"
	"github.com/yacobolo/tokenkit/internal/tokens"
)

// Design is the declarative input of a generation run.
type Design = app.Design

// Format selects the export encoding.
type Format = export.Format

// Export formats.
const (
	FormatCSS  = export.FormatCSS
	FormatJSON = export.FormatJSON
	FormatYAML = export.FormatYAML
)

// LoadDesign reads and validates a design file.
func LoadDesign(path string) (Design, error) {
	return app.LoadDesign(path)
}

// ParseDesign decodes and validates design YAML.
func ParseDesign(raw []byte) (Design, error) {
	return app.ParseDesign(raw)
}

// Config holds generation configuration.
type Config struct {
	Design Design
	// DesignFile, when set, is loaded instead of Design.
	DesignFile string
	// Output is the export path. Empty keeps the export in Result.Content.
	Output   string
	Format   Format
	Selector string
	Storage  StorageConfig
	Log      *logging.Logger
	Verbose  bool
}

// StorageConfig selects where persisted store state lives between runs.
type StorageConfig struct {
	Driver string // memory | file | sqlite
	Path   string
}

// Result describes a finished generation run.
type Result struct {
	Tokens  []tokens.Token
	Counts  map[tokens.Type]int
	Theme   theme.Map
	Output  string
	Format  Format
	Content []byte // set when Config.Output is empty
}

// Total returns the number of generated tokens.
func (r *Result) Total() int {
	return len(r.Tokens)
}
