// Package server exposes the ingestion service over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"remotefs-go/internal/remotefs"
)

// Server handles HTTP ingestion requests.
type Server struct {
	service *remotefs.IngestService
	logger  remotefs.Logger
}

// New creates a Server around the given ingestion service.
func New(service *remotefs.IngestService, logger remotefs.Logger) *Server {
	return &Server{service: service, logger: logger}
}

// Router builds the HTTP routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Post("/remotefs/download", s.handleDownload)

	return r
}

// Serve listens on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}

// downloadRequest is the JSON body of POST /remotefs/download.
type downloadRequest struct {
	RemoteURL string            `json:"remote_url"`
	LocalPath string            `json:"local_path"`
	Headers   map[string]string `json:"headers,omitempty"`
	Unzip     string            `json:"unzip,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	var req downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}
	if req.RemoteURL == "" || req.LocalPath == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "remote_url and local_path are required"})
		return
	}

	err := s.service.Ingest(r.Context(), remotefs.Request{
		RemoteURL: req.RemoteURL,
		LocalPath: req.LocalPath,
		Headers:   req.Headers,
		Unzip:     remotefs.UnzipMode(req.Unzip),
	})
	if err != nil {
		s.logger.Error("download failed", "url", req.RemoteURL, "error", err)
		respondJSON(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"status": "saved",
		"path":   req.LocalPath,
	})
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, remotefs.ErrMalformedRequest),
		errors.Is(err, remotefs.ErrInvalidMode),
		errors.Is(err, remotefs.ErrPath):
		return http.StatusBadRequest
	case errors.Is(err, remotefs.ErrFormat):
		return http.StatusUnprocessableEntity
	case errors.Is(err, remotefs.ErrTransport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
