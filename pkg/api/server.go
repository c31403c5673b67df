package api

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/hypercouple/pkg/buildinfo"
	"github.com/matzehuels/hypercouple/pkg/coupling"
	"github.com/matzehuels/hypercouple/pkg/errors"
	hio "github.com/matzehuels/hypercouple/pkg/io"
	"github.com/matzehuels/hypercouple/pkg/pipeline"
)

// DefaultMaxBodyBytes bounds request bodies when Config.MaxBodyBytes is zero.
const DefaultMaxBodyBytes = 1 << 20

// Config configures the HTTP handler.
type Config struct {
	// Runner executes coupling and rendering. Nil uses a default runner.
	Runner *pipeline.Runner

	// Logger receives request logs. Nil discards them.
	Logger *log.Logger

	// Metrics is mounted at /metrics when non-nil.
	Metrics http.Handler

	// Timeout bounds each request. Zero disables it.
	Timeout time.Duration

	// MaxBodyBytes bounds request bodies.
	MaxBodyBytes int64
}

// Server holds the handler state.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	maxBody int64
}

// NewHandler builds the router for cfg.
func NewHandler(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	runner := cfg.Runner
	if runner == nil {
		runner = pipeline.NewRunner(nil, logger)
	}
	s := &Server{runner: runner, logger: logger, maxBody: cfg.MaxBodyBytes}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(instrument(logger))
	r.Use(middleware.Recoverer)
	if cfg.Timeout > 0 {
		r.Use(middleware.Timeout(cfg.Timeout))
	}

	r.Get("/health", s.health)
	r.Get("/algorithms", s.algorithms)
	r.Post("/couple", s.couple)
	r.Post("/render", s.render)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}
	return r
}

// request is the body of /couple and /render. The document fields are
// decoded separately by package io.
type request struct {
	Algorithm    string `json:"algorithm"`
	Format       string `json:"format"`
	Detailed     bool   `json:"detailed"`
	ShowOriginal bool   `json:"showOriginal"`
}

type algorithmInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type coupleResponse struct {
	Algorithm string      `json:"algorithm"`
	Groups    []hio.Group `json:"groups"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Short(),
	})
}

func (s *Server) algorithms(w http.ResponseWriter, r *http.Request) {
	algs := coupling.Algorithms()
	out := make([]algorithmInfo, len(algs))
	for i, a := range algs {
		out[i] = algorithmInfo{ID: a.ID(), Name: a.Name(), Description: a.Description()}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) couple(w http.ResponseWriter, r *http.Request) {
	req, doc, err := s.decode(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	alg, groups, err := s.runner.Couple(r.Context(), doc, pipeline.Options{Algorithm: req.Algorithm})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, coupleResponse{
		Algorithm: alg.ID(),
		Groups:    hio.EncodeGroups(groups),
	})
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	req, doc, err := s.decode(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if req.Format == "" {
		req.Format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(req.Format); err != nil {
		s.fail(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "format"))
		return
	}

	result, err := s.runner.Execute(r.Context(), doc, pipeline.Options{
		Algorithm:    req.Algorithm,
		Formats:      []string{req.Format},
		Detailed:     req.Detailed,
		ShowOriginal: req.ShowOriginal,
		Logger:       s.logger,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[req.Format])
	w.Header().Set("X-Coupling-Algorithm", result.Algorithm.ID())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[req.Format])
}

// decode reads the body once and decodes both the request options and the
// hypergraph document from it.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (request, *hio.Document, error) {
	var req request
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return req, nil, errors.Wrap(errors.ErrCodeResourceExceeded, err, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return req, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read body")
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return req, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request")
	}
	doc, err := hio.ReadJSON(bytes.NewReader(body))
	if err != nil {
		return req, nil, err
	}
	return req, doc, nil
}
