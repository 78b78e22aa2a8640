// Package server exposes stored places and their Wikipedia enrichment over
// a small read-only JSON API.
package server

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/lepinkainen/cityguide/internal/errors"
	"github.com/lepinkainen/cityguide/internal/place"
	"github.com/lepinkainen/cityguide/internal/wikipedia"
)

const shutdownTimeout = 10 * time.Second

// Fetcher is implemented by enrichers that can say why a lookup failed.
// The wikipedia endpoint uses it to tell a missing page from an upstream
// outage.
type Fetcher interface {
	Fetch(ctx context.Context, subject string) (*wikipedia.Enrichment, error)
}

// Server wires the HTTP routes to a place.Service.
type Server struct {
	service *place.Service
	handler http.Handler
}

// New creates a new Server.
func New(service *place.Service) *Server {
	s := &Server{service: service}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/places", s.handleListPlaces)
	mux.HandleFunc("GET /api/places/{id}", s.handlePlaceDetail)
	mux.HandleFunc("GET /api/wikipedia/{name}", s.handleWikipedia)

	s.handler = logRequests(mux)
	return s
}

// Handler returns the root handler, including request logging.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP API listening", "addr", listener.Addr().String())
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down HTTP API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !stdErrors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListPlaces(w http.ResponseWriter, r *http.Request) {
	places, err := s.service.Store.List(r.Context())
	if err != nil {
		slog.Error("Failed to list places", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list places")
		return
	}
	writeJSON(w, http.StatusOK, places)
}

func (s *Server) handlePlaceDetail(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.Detail(r.Context(), r.PathValue("id"))
	switch {
	case stdErrors.Is(err, place.ErrInvalidID):
		writeError(w, http.StatusBadRequest, err.Error())
	case stdErrors.Is(err, place.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case err != nil:
		slog.Error("Failed to load place", "id", r.PathValue("id"), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load place")
	default:
		writeJSON(w, http.StatusOK, view)
	}
}

func (s *Server) handleWikipedia(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	switch enricher := s.service.Enricher.(type) {
	case nil:
		writeError(w, http.StatusNotFound, "no enrichment available")
	case Fetcher:
		enrichment, err := enricher.Fetch(r.Context(), name)
		if err != nil {
			writeFetchError(w, name, err)
			return
		}
		writeJSON(w, http.StatusOK, enrichment)
	default:
		enrichment := enricher.Enrich(r.Context(), name)
		if enrichment == nil {
			writeError(w, http.StatusNotFound, fmt.Sprintf("no enrichment available for %q", name))
			return
		}
		writeJSON(w, http.StatusOK, enrichment)
	}
}

// writeFetchError maps a failed Wikipedia lookup to a status code: a missing
// page is 404, upstream timeouts 504, upstream rate limiting 503 and any
// other upstream failure 502.
func writeFetchError(w http.ResponseWriter, name string, err error) {
	if !errors.IsFetchError(err) {
		slog.Error("Wikipedia lookup failed", "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, "wikipedia lookup failed")
		return
	}

	kind, _ := errors.FetchErrorKindOf(err)
	slog.Warn("Wikipedia lookup failed", "name", name, "kind", kind, "error", err)

	switch kind {
	case errors.KindNotFound:
		writeError(w, http.StatusNotFound, fmt.Sprintf("no enrichment available for %q", name))
	case errors.KindTimeout:
		writeError(w, http.StatusGatewayTimeout, "wikipedia did not respond in time")
	case errors.KindRateLimited:
		if retryAfter, ok := errors.RetryAfterOf(err); ok && retryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
		}
		writeError(w, http.StatusServiceUnavailable, "wikipedia rate limit reached")
	default:
		writeError(w, http.StatusBadGateway, "wikipedia lookup failed")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to write response", "error", err)
	}
}
