package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/tokenkit/internal/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the generated tokens in the terminal or as an HTML page",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runPreview,
}

func init() {
	f := previewCmd.Flags()
	f.String("html", "", "Write a static HTML preview page to this path")
	f.String("title", "tokenkit preview", "HTML page title")
}

func runPreview(cmd *cobra.Command, _ []string) error {
	log, err := buildLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	s, err := openSession(log, nil)
	if err != nil {
		return err
	}
	defer s.app.Close()

	path, _ := cmd.Flags().GetString("html")
	if path == "" {
		preview.NewReporter(cmd.OutOrStdout(), getBoolWithDefault("color", false)).PrintTokens(s.app.TokenList(""))
		return nil
	}

	title, _ := cmd.Flags().GetString("title")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	page := preview.Page(preview.PageData{
		Title:  title,
		Theme:  s.app.Theme(),
		Tokens: s.app.TokenList(""),
		Dark:   s.app.Builder.Dark(),
	})
	if err := page.Render(contextOf(cmd), f); err != nil {
		_ = f.Close()
		return fmt.Errorf("render preview: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	if !getBoolWithDefault("quiet", false) {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote preview to %s\n", path)
	}
	return nil
}
