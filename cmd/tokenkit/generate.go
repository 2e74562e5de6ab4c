package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/tokenkit"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate design tokens and write the export",
	Long: `Apply the design to the token scales and export every token.
Without --output the export is written to stdout.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringP("output", "o", "", "Export file path (default: stdout)")
	f.String("format", "css", "Export format: css|json|yaml")
	f.String("selector", ":root", "Selector wrapping the CSS declarations")
	f.String("report", "summary", "Report format: summary|tokens|json")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	log, err := buildLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	config, err := buildGenerateConfig(log)
	if err != nil {
		return err
	}

	result, err := tokenkit.Generate(config)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if result.Content != nil {
		_, err := out.Write(result.Content)
		return err
	}

	format := tokenkit.DetermineOutputFormat(
		getStringWithDefault("report", "summary"),
		getBoolWithDefault("quiet", false),
	)
	return tokenkit.WriteOutput(out, result, format, getBoolWithDefault("color", false))
}
