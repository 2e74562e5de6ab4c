package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tokenkit",
	Short: "Design token generator with a live preview server",
	Long: `Generate color, typography and spacing scales from a design file and
export them as CSS custom properties, JSON or YAML.
Run "tokenkit serve" to edit the design live in a browser.`,
	// Default behavior: run generate when no subcommand is given.
	// loadConfig is called here because PreRunE of generateCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runGenerate(cmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	pf := rootCmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable verbose logging")
	pf.Bool("quiet", false, "Suppress all output (exit code only)")
	pf.Bool("color", false, "Force color output")
	pf.String("config", ".tokenkit.yaml", "Config file path")
	pf.String("log-level", "info", "Log level: debug|info|warn|error")
	pf.String("design-file", "", "Design YAML file (overrides the design section of the config)")
	pf.String("storage", "memory", "State storage driver: memory|file|sqlite")
	pf.String("storage-path", "", "Storage directory (file) or database path (sqlite)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(scaleCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
