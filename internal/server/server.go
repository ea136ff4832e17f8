package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"signdex/internal/logging"
	"signdex/internal/lookup"
)

// Server exposes the gloss lookup facade over HTTP.
type Server struct {
	facade *lookup.Facade
	bind   string
	logger *slog.Logger
	http   *http.Server
}

// New constructs a server bound to addr.
func New(facade *lookup.Facade, bind string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		facade: facade,
		bind:   bind,
		logger: logging.WithComponent(logger, "server"),
	}
	s.http = &http.Server{
		Addr:              bind,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe blocks serving requests until Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info("listening", logging.String("bind", s.bind))
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/videos", s.handleVideos)
	return corsMiddleware(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleVideos resolves one gloss to its best fragment locator.
//
//	200 {"videoUrl": "..."}     best match
//	400                          missing or blank gloss parameter
//	404 {"videoUrl": null}       key absent from the index
//	503                          index not loaded / not fetchable
func (s *Server) handleVideos(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	glossParam := strings.TrimSpace(r.URL.Query().Get("gloss"))
	if glossParam == "" {
		respondError(w, http.StatusBadRequest, "gloss query parameter is required")
		return
	}

	videoURL, err := s.facade.Resolve(r.Context(), glossParam)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, videoResponse{VideoURL: &videoURL})
	case errors.Is(err, lookup.ErrNotFound):
		respondJSON(w, http.StatusNotFound, videoResponse{Message: "video not found"})
	case errors.Is(err, lookup.ErrUnavailable):
		respondError(w, http.StatusServiceUnavailable, "dictionary index unavailable")
	default:
		s.logger.Error("lookup failed", logging.String("gloss", glossParam), logging.Error(err))
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// corsMiddleware allows browser clients on any origin to query the index.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
