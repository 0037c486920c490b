package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/internal/presentation/table"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes bounds run request bodies.
const maxBodyBytes = 1 << 20

// Engine defines what the HTTP adapter needs from the automata facade.
type Engine interface {
	List() []string
	Recognizer(name string) (ports.Recognizer, error)
	Run(ctx context.Context, name, input string) (domain.Run, error)
	RunBatch(ctx context.Context, name string, inputs []string) ([]domain.Run, error)
	Watch(ctx context.Context) (<-chan string, error)
}

// Server holds the HTTP handlers.
type Server struct {
	Engine  Engine
	Store   ports.RunStore
	Version string

	logger   *slog.Logger
	gatherer prometheus.Gatherer
	newID    func() string
	now      func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithStore persists every run in store. The default is an in-memory store.
func WithStore(store ports.RunStore) Option {
	return func(s *Server) {
		s.Store = store
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics exposes g on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithVersion sets the application version reported by GET /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.Version = v
	}
}

// NewServer creates a Server with defaults applied.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		Engine:  engine,
		Version: "dev",
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID:   uuid.NewString,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Store == nil {
		s.Store = memory.NewStore()
	}
	return s
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	return enableCORS(NewServer(engine, opts...).Router())
}

// Router wires the routes documented in openapi.yaml.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(rawSpec)
	})

	r.Route("/automata", func(r chi.Router) {
		r.Get("/", s.ListAutomata)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.GetAutomaton)
			r.Get("/table", s.GetTable)
			r.Get("/graph", s.GetGraph)
			r.Post("/runs", s.CreateRuns)
		})
	})

	r.Get("/runs", s.ListRuns)
	r.Get("/runs/{id}", s.GetRun)
	r.Get("/events", s.SubscribeEvents)

	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := s.now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Summary is the list view of an automaton.
type Summary struct {
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	Start        domain.State   `json:"start"`
	States       int            `json:"states"`
	AlphabetSize int            `json:"alphabet_size"`
	Accepting    []domain.State `json:"accepting"`
}

// RunRequest is the body of POST /automata/{name}/runs. Exactly one field must be set.
type RunRequest struct {
	Input  *string  `json:"input,omitempty"`
	Inputs []string `json:"inputs,omitempty"`
}

// RunBatch is the response to a batch run request.
type RunBatch struct {
	Runs []*domain.RunRecord `json:"runs"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if doc, err := LoadSpec(r.Context()); err == nil && doc.Info != nil {
		apiVersion = doc.Info.Version
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "automata-http",
		"version":     s.Version,
		"api_version": apiVersion,
	})
}

// ListAutomata handles the GET /automata request.
func (s *Server) ListAutomata(w http.ResponseWriter, r *http.Request) {
	names := s.Engine.List()
	out := make([]Summary, 0, len(names))
	for _, name := range names {
		rec, err := s.Engine.Recognizer(name)
		if err != nil {
			continue
		}
		a := rec.Automaton()
		out = append(out, Summary{
			Name:         name,
			Description:  a.Description(),
			Start:        a.Start(),
			States:       len(a.States()),
			AlphabetSize: len(a.Alphabet()),
			Accepting:    a.Accepting(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// GetAutomaton handles the GET /automata/{name} request.
func (s *Server) GetAutomaton(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.recognizer(w, r)
	if !ok {
		return
	}
	def := rec.Automaton().Definition()
	def.Name = rec.Name()
	writeJSON(w, http.StatusOK, def)
}

// GetTable handles the GET /automata/{name}/table request.
func (s *Server) GetTable(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.recognizer(w, r)
	if !ok {
		return
	}

	a := rec.Automaton()
	out, err := table.Render(a, r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if raw := r.URL.Query().Get("patterns"); raw != "" {
		withPatterns, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid patterns flag %q", raw))
			return
		}
		if withPatterns {
			out += "\n\n" + table.RenderPatterns(a)
		}
	}

	writeText(w, out+"\n")
}

// GetGraph handles the GET /automata/{name}/graph request.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.recognizer(w, r)
	if !ok {
		return
	}

	var overlay *graph.Overlay
	if q := r.URL.Query(); q.Has("input") {
		overlay = graph.OverlayFromRun(rec.Recognize(q.Get("input")))
	}

	out, err := graph.Render(r.URL.Query().Get("format"), rec.Automaton(), overlay)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeText(w, out)
}

// CreateRuns handles the POST /automata/{name}/runs request.
func (s *Server) CreateRuns(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var body RunRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		s.logger.Warn("CreateRuns: invalid request body", "error", err)
		return
	}
	if (body.Input == nil) == (body.Inputs == nil) {
		writeError(w, http.StatusBadRequest, "exactly one of input or inputs is required")
		return
	}

	if body.Input != nil {
		run, err := s.Engine.Run(r.Context(), name, *body.Input)
		if err != nil {
			s.engineError(w, err)
			return
		}
		record, err := s.save(r.Context(), run)
		if err != nil {
			s.storeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
		return
	}

	runs, err := s.Engine.RunBatch(r.Context(), name, body.Inputs)
	if err != nil {
		s.engineError(w, err)
		return
	}
	batch := RunBatch{Runs: make([]*domain.RunRecord, 0, len(runs))}
	for _, run := range runs {
		record, err := s.save(r.Context(), run)
		if err != nil {
			s.storeError(w, err)
			return
		}
		batch.Runs = append(batch.Runs, record)
	}
	writeJSON(w, http.StatusOK, batch)
}

// ListRuns handles the GET /runs request.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Store.List(r.Context())
	if err != nil {
		s.storeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"ids": ids})
}

// GetRun handles the GET /runs/{id} request.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	record, err := s.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrRunNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// SubscribeEvents handles the GET /events request (SSE).
// Each change to the definition directory is sent as one data line.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	events, err := s.Engine.Watch(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected")
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}

func (s *Server) recognizer(w http.ResponseWriter, r *http.Request) (ports.Recognizer, bool) {
	rec, err := s.Engine.Recognizer(chi.URLParam(r, "name"))
	if err != nil {
		s.engineError(w, err)
		return nil, false
	}
	return rec, true
}

func (s *Server) save(ctx context.Context, run domain.Run) (*domain.RunRecord, error) {
	record := &domain.RunRecord{
		ID:        s.newID(),
		Run:       run,
		CreatedAt: s.now().UTC(),
	}
	if err := s.Store.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Server) engineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownAutomaton):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.logger.Error("engine failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) storeError(w http.ResponseWriter, err error) {
	s.logger.Error("run store failed", "error", err)
	writeError(w, http.StatusInternalServerError, "run store failed")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
