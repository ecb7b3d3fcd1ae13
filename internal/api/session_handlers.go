package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
)

type reviewRequest struct {
	Rating string `json:"rating"`
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.TrainingService.LoadSession(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, session)
}

func (s *Server) handleWeakSession(w http.ResponseWriter, r *http.Request) {
	items, err := s.TrainingService.WeakSession(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleReviewCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req reviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	rating, err := models.ParseRating(req.Rating)
	if err != nil {
		log.Warn("invalid rating for card %s: %q", id, req.Rating)
		handleError(w, r, errors.NewInvalidRatingError(err))
		return
	}

	result, err := s.TrainingService.Review(r.Context(), id, rating)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleMarkSeen(w http.ResponseWriter, r *http.Request) {
	if err := s.QuizService.MarkSeen(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
