package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(timeoutMiddleware(30 * time.Second))

		r.Get("/session", s.handleSession)
		r.Get("/session/weak", s.handleWeakSession)
		r.Post("/cards/{id}/review", s.handleReviewCard)
		r.Post("/cards/{id}/seen", s.handleMarkSeen)

		r.Get("/stats", s.handleStats)
		r.Get("/stats/weak", s.handleWeakWords)
		r.Get("/stats/stale", s.handleStaleWords)
		r.Get("/stats/strongest", s.handleStrongestWords)

		r.Get("/groups", s.handleGroups)
		r.Post("/groups/{id}/open", s.handleOpenGroup)
		r.Post("/groups/{id}/close", s.handleCloseGroup)

		r.Put("/vocabulary", s.handleUploadVocabulary)
		r.Post("/vocabulary/import", s.handleQueueVocabularyImport)

		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handleUpdateSettings)

		r.Get("/quiz", s.handleQuizStats)
		r.Post("/quiz/results", s.handleQuizResult)
	})
	return r
}
