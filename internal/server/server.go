// Package server exposes an App to browser preview consumers: the HTML
// preview page, JSON and export endpoints, action intake, a websocket that
// pushes every theme rebuild, and Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/coder/websocket"
	"golang.org/x/time/rate"

	"github.com/yacobolo/tokenkit/internal/app"
	"github.com/yacobolo/tokenkit/internal/export"
	"github.com/yacobolo/tokenkit/internal/logging"
	"github.com/yacobolo/tokenkit/internal/preview"
	"github.com/yacobolo/tokenkit/internal/stores"
	"github.com/yacobolo/tokenkit/internal/theme"
	"github.com/yacobolo/tokenkit/internal/tokens"
)

// DefaultAddr is the listen address used when Options.Addr is empty.
const DefaultAddr = "127.0.0.1:7420"

// Options configures New.
type Options struct {
	Addr     string
	Title    string
	Selector string
	Log      *logging.Logger
	// Metrics is shared with app.Options.OnProjection when set; New
	// creates one otherwise.
	Metrics *Metrics
	// ActionRate and ActionBurst limit websocket actions per client.
	ActionRate  float64
	ActionBurst int
}

// Server is the preview HTTP server.
type Server struct {
	app     *app.App
	log     *logging.Logger
	metrics *Metrics
	hub     *Hub
	mux     *http.ServeMux
	handler http.Handler
	opts    Options

	unsubscribe func()
	httpServer  *http.Server
}

// New creates a Server and subscribes it to theme changes of a.
func New(a *app.App, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.Title == "" {
		opts.Title = "tokenkit preview"
	}
	if opts.Log == nil {
		opts.Log = logging.Nop()
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics()
	}
	if opts.ActionRate <= 0 {
		opts.ActionRate = 20
	}
	if opts.ActionBurst <= 0 {
		opts.ActionBurst = 40
	}

	s := &Server{
		app:     a,
		log:     opts.Log,
		metrics: opts.Metrics,
		hub:     NewHub(opts.Log.With("component", "hub"), opts.Metrics),
		mux:     http.NewServeMux(),
		opts:    opts,
	}
	s.registerRoutes()
	s.handler = Chain(s.mux,
		RecoveryMiddleware(s.log),
		LoggingMiddleware(s.log, s.metrics, []string{"/healthz", "/metrics"}),
	)

	// Runs under the application lock; Broadcast never blocks.
	s.unsubscribe = a.Subscribe(func(m theme.Map) {
		s.metrics.themePushes.Inc()
		s.hub.Broadcast(Message{Type: MessageTheme, Data: m})
	})
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.mux.Handle("GET /metrics", s.metrics.Handler())

	s.mux.HandleFunc("GET /{$}", s.handlePage)
	s.mux.HandleFunc("GET /tokens.css", s.handleExport)
	s.mux.HandleFunc("GET /ws", s.handleWebsocket)

	s.mux.HandleFunc("GET /api/theme", s.handleTheme)
	s.mux.HandleFunc("GET /api/tokens", s.handleListTokens)
	s.mux.HandleFunc("POST /api/tokens", s.handleAddToken)
	s.mux.HandleFunc("PATCH /api/tokens/{id}", s.handleUpdateToken)
	s.mux.HandleFunc("DELETE /api/tokens/{id}", s.handleDeleteToken)
	s.mux.HandleFunc("POST /api/actions", s.handleAction)
	s.mux.HandleFunc("POST /api/select", s.handleSelect)
	s.mux.HandleFunc("GET /api/selection", s.handleSelection)
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.log.Error(err, "server shutdown")
		}
	}()

	s.log.WithFields(map[string]any{"addr": s.opts.Addr}).Info("starting preview server")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("preview server: %w", err)
	}
	return nil
}

// Close detaches the server from the App.
func (s *Server) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

func (s *Server) dispatch(act app.Action) (app.Result, error) {
	res, err := s.app.Dispatch(act)
	s.metrics.observeAction(act.Key, res, err)
	return res, err
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	data := preview.PageData{
		Title:  s.opts.Title,
		Theme:  s.app.Theme(),
		Tokens: s.app.TokenList(""),
		Dark:   s.app.Builder.Dark(),
		Live:   true,
	}
	templ.Handler(preview.Page(data)).ServeHTTP(w, r)
}

func (s *Server) handleTheme(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Theme())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		BadRequest(w, err.Error(), r.URL.Path)
		return
	}
	selector := r.URL.Query().Get("selector")
	if selector == "" {
		selector = s.opts.Selector
	}

	w.Header().Set("Content-Type", format.ContentType())
	if err := s.app.Export(w, format, selector); err != nil {
		s.log.Error(err, "writing export")
	}
}

func (s *Server) handleListTokens(w http.ResponseWriter, r *http.Request) {
	var t tokens.Type
	if raw := r.URL.Query().Get("type"); raw != "" {
		parsed, err := tokens.ParseType(raw)
		if err != nil {
			BadRequest(w, err.Error(), r.URL.Path)
			return
		}
		t = parsed
	}
	list := s.app.TokenList(t)
	if list == nil {
		list = []tokens.Token{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleAddToken(w http.ResponseWriter, r *http.Request) {
	var t tokens.Token
	if !decodeBody(w, r, &t) {
		return
	}
	added, err := s.app.AddToken(t)
	if err != nil {
		BadRequest(w, err.Error(), r.URL.Path)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) handleUpdateToken(w http.ResponseWriter, r *http.Request) {
	var p tokens.Patch
	if !decodeBody(w, r, &p) {
		return
	}
	updated, err := s.app.UpdateToken(r.PathValue("id"), p)
	switch {
	case errors.Is(err, tokens.ErrNotFound):
		NotFound(w, err.Error(), r.URL.Path)
	case err != nil:
		BadRequest(w, err.Error(), r.URL.Path)
	default:
		writeJSON(w, http.StatusOK, updated)
	}
}

func (s *Server) handleDeleteToken(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.app.DeleteToken(id) {
		NotFound(w, fmt.Sprintf("token %q not found", id), r.URL.Path)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var act app.Action
	if !decodeBody(w, r, &act) {
		return
	}
	if err := app.Validator().Struct(act); err != nil {
		BadRequest(w, "action key is required", r.URL.Path)
		return
	}

	res, err := s.dispatch(act)
	if err != nil {
		BadRequest(w, err.Error(), r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// SelectRequest selects either a token id or a "{category} {index+1}" step.
type SelectRequest struct {
	ID       string `json:"id,omitempty"`
	Category string `json:"category,omitempty"`
	Index    int    `json:"index"`
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.ID != "" {
		if err := s.app.SelectToken(req.ID); err != nil {
			NotFound(w, err.Error(), r.URL.Path)
			return
		}
		writeJSON(w, http.StatusOK, stores.Selection{ID: req.ID, Kind: stores.SelectToken})
		return
	}

	if req.Category == "" {
		BadRequest(w, "id or category is required", r.URL.Path)
		return
	}
	id, ok := s.app.Select(req.Category, req.Index)
	if !ok {
		NotFound(w, fmt.Sprintf("no token for %s step %d", req.Category, req.Index), r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, stores.Selection{ID: id, Kind: stores.SelectToken})
}

func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	sel, ok := s.app.Selection()
	if !ok {
		NotFound(w, "nothing selected", r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, sel)
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.log.Error(err, "websocket accept failed")
		return
	}

	limiter := rate.NewLimiter(rate.Limit(s.opts.ActionRate), s.opts.ActionBurst)
	client := s.hub.newClient(conn, limiter)
	s.hub.Register(client)
	client.queue(Message{Type: MessageTheme, Data: s.app.Theme()})

	ctx := r.Context()
	done := make(chan struct{})
	go func() {
		client.writePump(ctx)
		close(done)
	}()

	client.readPump(ctx, s.dispatch)

	s.hub.Unregister(client)
	_ = conn.Close(websocket.StatusNormalClosure, "")
	<-done
}

// decodeBody decodes a JSON request body, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		BadRequest(w, "invalid JSON body: "+err.Error(), r.URL.Path)
		return false
	}
	return true
}

// storeOf bounds the store label of action metrics to known names.
func storeOf(key string) string {
	store, _, _ := strings.Cut(key, ".")
	if slices.Contains(app.StoreNames(), store) && store != "all" {
		return store
	}
	return "unknown"
}
