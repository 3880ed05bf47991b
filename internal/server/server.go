// Package server exposes the cooking engine over an HTTP JSON API. It is
// a thin transport: every route decodes a request, calls one engine
// operation, and encodes the result or a structured error.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/engine"
	"github.com/hammamikhairi/souschef/internal/logger"
)

// Server wraps the engine in an http.Server.
type Server struct {
	engine    *engine.Engine
	responder domain.Responder
	log       *logger.Logger
	httpSrv   *http.Server
}

// New creates a server listening on addr. The responder phrases step
// texts for the message field; it must be non-nil (use the plain one).
func New(addr string, eng *engine.Engine, responder domain.Responder, log *logger.Logger) *Server {
	s := &Server{
		engine:    eng,
		responder: responder,
		log:       log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/session/start", s.handleStart)
	mux.HandleFunc("POST /api/session/advance", s.handleAdvance)
	mux.HandleFunc("POST /api/timer/start", s.handleTimerStart)
	mux.HandleFunc("GET /api/session/status", s.handleStatus)
	mux.HandleFunc("DELETE /api/session/{id}", s.handleEnd)
	mux.HandleFunc("POST /api/ingredients/detect", s.handleDetect)
	mux.HandleFunc("POST /api/recipes/suggest", s.handleSuggest)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the underlying handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening on %s", s.httpSrv.Addr)
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("http server shutting down")
		return s.httpSrv.Shutdown(shutdownCtx)
	}
}
