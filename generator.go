package tokenkit

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yacobolo/tokenkit/internal/app"
	"github.com/yacobolo/tokenkit/internal/export"
	"github.com/yacobolo/tokenkit/internal/logging"
	"github.com/yacobolo/tokenkit/internal/persist"
	"github.com/yacobolo/tokenkit/internal/tokens"
)

// Generate is the main entry point
func Generate(config Config) (*Result, error) {
	log := config.Log
	if log == nil {
		log = logging.Nop()
	}

	// 1. Resolve the design
	design := config.Design
	if config.DesignFile != "" {
		loaded, err := app.LoadDesign(config.DesignFile)
		if err != nil {
			return nil, fmt.Errorf("load design: %w", err)
		}
		design = loaded
	}

	format := config.Format
	if format == "" {
		format = export.FormatCSS
	}
	if _, err := export.ParseFormat(string(format)); err != nil {
		return nil, err
	}

	// 2. Build the application context on the configured storage
	adapter, err := persist.Open(config.Storage.Driver, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	a, err := app.New(app.Options{Adapter: adapter, Log: log})
	if err != nil {
		_ = persist.Close(adapter)
		return nil, err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Error(err, "closing storage")
		}
	}()

	// 3. Apply the design and run every pending projection now
	if err := a.ApplyDesign(design); err != nil {
		return nil, fmt.Errorf("apply design: %w", err)
	}
	a.Flush()

	result := &Result{
		Tokens: a.TokenList(""),
		Theme:  a.Theme(),
		Output: config.Output,
		Format: format,
	}
	result.Counts = countByType(result.Tokens)

	if config.Verbose {
		log.WithFields(map[string]any{"tokens": result.Total(), "format": string(format)}).Info("generated tokens")
	}

	// 4. Render the export
	var buf bytes.Buffer
	if err := a.Export(&buf, format, config.Selector); err != nil {
		return nil, fmt.Errorf("render export: %w", err)
	}
	if config.Output == "" {
		result.Content = buf.Bytes()
		return result, nil
	}
	if err := writeFile(config.Output, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("write failed: %w", err)
	}
	return result, nil
}

func countByType(toks []tokens.Token) map[tokens.Type]int {
	counts := make(map[tokens.Type]int, len(tokens.Types()))
	for _, t := range toks {
		counts[t.Type]++
	}
	return counts
}

// writeFile writes data, creating parent directories as needed.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
