// Package api exposes the running simulation over HTTP for observers and remote control.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"go.uber.org/zap"

	"github.com/mrchimp/zombies-vs-medics/component"
	"github.com/mrchimp/zombies-vs-medics/core"
	"github.com/mrchimp/zombies-vs-medics/engine"
	"github.com/mrchimp/zombies-vs-medics/status"
)

const (
	shutdownTimeout   = 2 * time.Second
	readHeaderTimeout = 5 * time.Second
	maxConfigBody     = 1 << 16
)

// errMalformedConfig marks a PUT /config body that does not decode
var errMalformedConfig = errors.New("malformed config")

// Simulation is the read side plus config staging of engine.Simulation
type Simulation interface {
	Frame(historyN int) engine.Frame
	History(n int) []engine.Sample
	Config() engine.Config
	UpdateConfig(func(*engine.Config) error) error
}

// Controller is the play state side of engine.SimulationClock
type Controller interface {
	Play()
	Pause()
	IsPlaying() bool
	RequestReset()
}

// Server serves the observer and control endpoints
type Server struct {
	Addr string

	sim    Simulation
	clock  Controller
	reg    *status.Registry
	logger *zap.Logger
	srv    *http.Server
}

// NewServer creates a server, reg and logger may be nil
func NewServer(addr string, sim Simulation, clock Controller, reg *status.Registry, logger *zap.Logger) *Server {
	if reg == nil {
		reg = status.NewRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		Addr:   addr,
		sim:    sim,
		clock:  clock,
		reg:    reg,
		logger: logger,
	}
}

// Router builds the route table
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.NoCache)
	router.Use(s.requestLogger)

	router.Get("/counts", s.handleCounts)
	router.Get("/entities", s.handleEntities)
	router.Get("/history", s.handleHistory)
	router.Get("/metrics", s.handleMetrics)
	router.Get("/config", s.handleGetConfig)

	router.Post("/play", s.handlePlay)
	router.Post("/pause", s.handlePause)
	router.Post("/reset", s.handleReset)
	router.Put("/config", s.handlePutConfig)

	return router
}

// Start binds the listener and serves in the background
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.Addr = ln.Addr().String()

	s.srv = &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	core.Go(func() {
		s.logger.Info("http listening", zap.String("addr", s.Addr))
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server failed", zap.Error(err))
		}
	})
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown() error {
	if s.srv == nil {
		return nil
	}
	s.logger.Info("http shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

type countsResponse struct {
	Tick    uint64           `json:"tick"`
	RunID   string           `json:"run_id"`
	Playing bool             `json:"playing"`
	Total   int              `json:"total"`
	Counts  component.Counts `json:"counts"`
}

type entitiesResponse struct {
	Tick     uint64           `json:"tick"`
	RunID    string           `json:"run_id"`
	Entities []component.View `json:"entities"`
}

type historyResponse struct {
	Samples []engine.Sample `json:"samples"`
}

type playResponse struct {
	Playing bool `json:"playing"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleCounts(w http.ResponseWriter, r *http.Request) {
	f := s.sim.Frame(-1)
	s.writeJSON(w, http.StatusOK, countsResponse{
		Tick:    f.Tick,
		RunID:   f.RunID.String(),
		Playing: s.clock.IsPlaying(),
		Total:   f.Counts.Total(),
		Counts:  f.Counts,
	})
}

func (s *Server) handleEntities(w http.ResponseWriter, r *http.Request) {
	f := s.sim.Frame(-1)
	s.writeJSON(w, http.StatusOK, entitiesResponse{
		Tick:     f.Tick,
		RunID:    f.RunID.String(),
		Entities: f.Entities,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	n := 0
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "n must be a non-negative integer"})
			return
		}
		n = v
	}
	s.writeJSON(w, http.StatusOK, historyResponse{Samples: s.sim.History(n)})
}

// handleMetrics dumps the registry, ?prefix= narrows it to one family such as population.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.reg.Snapshot(r.URL.Query().Get("prefix")))
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.sim.Config())
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	s.clock.Play()
	s.writeJSON(w, http.StatusOK, playResponse{Playing: s.clock.IsPlaying()})
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	s.clock.Pause()
	s.writeJSON(w, http.StatusOK, playResponse{Playing: s.clock.IsPlaying()})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.clock.RequestReset()
	s.writeJSON(w, http.StatusAccepted, messageResponse{Message: "reset requested"})
}

// handlePutConfig decodes the body over the staged config so partial documents accumulate
func (s *Server) handlePutConfig(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxConfigBody))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("%v: %v", errMalformedConfig, err)})
		return
	}

	err = s.sim.UpdateConfig(func(cfg *engine.Config) error {
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return fmt.Errorf("%w: %v", errMalformedConfig, err)
		}
		return nil
	})
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, errMalformedConfig) || errors.Is(err, engine.ErrInvalidConfig) {
			code = http.StatusBadRequest
		}
		s.writeJSON(w, code, errorResponse{Error: err.Error()})
		return
	}

	s.logger.Info("config staged via http")
	s.writeJSON(w, http.StatusAccepted, messageResponse{Message: "config staged, applied at next reset"})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("http response encode", zap.Error(err))
	}
}
