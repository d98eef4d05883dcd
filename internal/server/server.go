// Package server exposes the browse service and the watch history as a
// local JSON API for web front ends.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"reelhub/internal/browse"
	"reelhub/internal/history"
	"reelhub/internal/logging"
)

const (
	requestTimeout = 60 * time.Second
	maxUploadSize  = 50 << 20
)

// Server is the JSON API over a browse service and a history tracker.
type Server struct {
	httpServer *http.Server
	router     chi.Router
	svc        *browse.Service
	tracker    *history.Tracker
}

// New builds the router. addr is the listen address for ListenAndServe.
func New(addr string, svc *browse.Service, tracker *history.Tracker) *Server {
	s := &Server{svc: svc, tracker: tracker}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.CleanPath)
	r.Use(chimw.Timeout(requestTimeout))

	r.Route("/api", func(api chi.Router) {
		api.Get("/platforms", s.platforms)

		api.Get("/platform", s.activePlatform)
		api.Put("/platform", s.setActivePlatform)

		api.Get("/history", s.history)
		api.Post("/history", s.addHistory)
		api.Delete("/history", s.deleteHistory)

		api.Get("/ai", s.askAI)
		api.Post("/upload", s.upload)

		api.Route("/{platform}", func(p chi.Router) {
			p.Get("/home", s.home)
			p.Get("/search", s.search)
			p.Get("/detail", s.detail)
			p.Get("/episodes", s.episodes)
			p.Get("/video", s.video)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		fail(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		fail(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	s.router = r
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until Shutdown is called.
func (s *Server) ListenAndServe() error {
	logging.Info("server starting", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logging.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}
