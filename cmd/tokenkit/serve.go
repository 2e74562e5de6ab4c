package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yacobolo/tokenkit/internal/server"
	"github.com/yacobolo/tokenkit/internal/watch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the live preview and editing API",
	Long: `Start the preview server. Browsers connected to the page receive every
theme rebuild over a websocket and may send editing actions back.
With --watch the design file is re-applied whenever it changes.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.String("addr", server.DefaultAddr, "Listen address")
	f.String("title", "tokenkit preview", "Preview page title")
	f.String("selector", ":root", "Selector wrapping exported CSS declarations")
	f.Bool("watch", false, "Re-apply the design file when it changes")
	f.Float64("action-rate", 20, "Websocket actions per second per client")
	f.Int("action-burst", 40, "Websocket action burst per client")
}

func runServe(cmd *cobra.Command, _ []string) error {
	log, err := buildLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	metrics := server.NewMetrics()
	s, err := openSession(log, metrics.ObserveProjection)
	if err != nil {
		return err
	}
	defer s.app.Close()

	actionRate, _ := cmd.Flags().GetFloat64("action-rate")
	title, _ := cmd.Flags().GetString("title")
	srv := server.New(s.app, server.Options{
		Addr:        getStringWithDefault("serve.addr", server.DefaultAddr),
		Title:       title,
		Selector:    getStringWithDefault("selector", ""),
		Log:         log.With("component", "server"),
		Metrics:     metrics,
		ActionRate:  actionRate,
		ActionBurst: getIntWithDefault("action-burst", 40),
	})
	defer srv.Close()

	if watchFlag, _ := cmd.Flags().GetBool("watch"); watchFlag {
		if s.designFile == "" {
			return fmt.Errorf("--watch needs --design-file")
		}
		w, err := watch.New(s.designFile, s.app.ApplyDesign, watch.Options{Log: log.With("component", "watch")})
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}
		defer w.Stop()
	}

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Start(ctx)
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
