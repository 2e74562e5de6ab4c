package main

import (
	"bytes"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yacobolo/tokenkit/internal/app"
	"github.com/yacobolo/tokenkit/internal/export"
	"github.com/yacobolo/tokenkit/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the export whenever the design file changes",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runWatch,
}

func init() {
	f := watchCmd.Flags()
	f.StringP("output", "o", "tokens.css", "Export file path")
	f.String("format", "css", "Export format: css|json|yaml")
	f.String("selector", ":root", "Selector wrapping the CSS declarations")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	log, err := buildLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if getStringWithDefault("design-file", "") == "" {
		return fmt.Errorf("watch needs --design-file")
	}
	format, err := export.ParseFormat(getStringWithDefault("format", "css"))
	if err != nil {
		return err
	}
	output := getStringWithDefault("output", "tokens.css")
	selector := getStringWithDefault("selector", "")

	s, err := openSession(log, nil)
	if err != nil {
		return err
	}
	defer s.app.Close()

	write := func() error {
		var buf bytes.Buffer
		if err := s.app.Export(&buf, format, selector); err != nil {
			return err
		}
		if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		if !getBoolWithDefault("quiet", false) {
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d tokens to %s\n", s.app.Tokens.Len(), output)
		}
		return nil
	}
	if err := write(); err != nil {
		return err
	}

	w, err := watch.New(s.designFile, func(d app.Design) error {
		if err := s.app.ApplyDesign(d); err != nil {
			return err
		}
		s.app.Flush()
		return write()
	}, watch.Options{Log: log.With("component", "watch")})
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	return nil
}
