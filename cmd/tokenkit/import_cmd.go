package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/tokenkit/internal/export"
	"github.com/yacobolo/tokenkit/internal/preview"
)

var importCmd = &cobra.Command{
	Use:   "import <glob>...",
	Short: "Import CSS custom properties as tokens",
	Long: `Read custom properties from CSS files matching the globs (** supported,
gitignored files skipped), infer each token's type and write them in
the chosen export format.`,
	Example: `  tokenkit import "web/styles/**/*.css" --format yaml -o tokens.yaml`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runImport,
}

func init() {
	f := importCmd.Flags()
	f.StringP("output", "o", "", "Output file path (default: stdout)")
	f.String("format", "yaml", "Output format: css|json|yaml")
	f.String("selector", ":root", "Selector wrapping the CSS declarations")
}

func runImport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(getStringWithDefault("format", "yaml"))
	if err != nil {
		return err
	}

	toks, stats, err := export.ImportFiles(args)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, toks, format, getStringWithDefault("selector", "")); err != nil {
		return err
	}

	// The report goes to stderr when the tokens themselves are on stdout.
	output := getStringWithDefault("output", "")
	report := cmd.OutOrStdout()
	if output == "" {
		report = cmd.ErrOrStderr()
		if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
			return err
		}
	} else if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	if !getBoolWithDefault("quiet", false) {
		preview.NewReporter(report, getBoolWithDefault("color", false)).PrintImport(stats)
	}
	return nil
}
