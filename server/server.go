// Package server exposes the tournament operations as a JSON API.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/ezBadminton/goswiss/service"
)

type Server struct {
	manager *service.Manager
	logger  logrus.FieldLogger
	router  chi.Router
}

// Creates the HTTP handler of the API. Cross-origin requests
// are allowed from the given origins.
func New(manager *service.Manager, logger logrus.FieldLogger, allowedOrigins []string) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &Server{
		manager: manager,
		logger:  logger,
		router:  chi.NewRouter(),
	}
	s.routes(allowedOrigins)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes(allowedOrigins []string) {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.NotFound(s.notFoundResponse)

	r.Get("/health", s.health)

	r.Route("/tournaments", func(r chi.Router) {
		r.Get("/", s.listTournaments)
		r.Post("/", s.createTournament)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getTournament)
			r.Delete("/", s.deleteTournament)

			r.Post("/round", s.enterRound)
			r.Post("/results", s.submitResults)
			r.Put("/matches", s.editMatches)

			r.Get("/standings", s.standings)
			r.Get("/head-to-head", s.headToHead)

			r.Get("/export/matches.csv", s.exportMatches)
			r.Get("/export/standings.xlsx", s.exportStandings)
		})
	})
}

func (s *Server) requestLogger(r *http.Request) logrus.FieldLogger {
	return s.logger.WithFields(logrus.Fields{
		"request_id": middleware.GetReqID(r.Context()),
		"method":     r.Method,
		"path":       r.URL.Path,
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.requestLogger(r).WithFields(logrus.Fields{
			"status":   ww.Status(),
			"bytes":    ww.BytesWritten(),
			"duration": time.Since(start),
		}).Info("request handled")
	})
}
