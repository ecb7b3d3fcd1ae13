package api

import (
	"context"
	"net/http"

	"github.com/vytor/wordflash/internal/models"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	summary, err := s.StatsService.Summary(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}

func (s *Server) handleWeakWords(w http.ResponseWriter, r *http.Request) {
	s.writeWordList(w, r, s.StatsService.WeakWords)
}

func (s *Server) handleStaleWords(w http.ResponseWriter, r *http.Request) {
	s.writeWordList(w, r, s.StatsService.StaleWords)
}

func (s *Server) handleStrongestWords(w http.ResponseWriter, r *http.Request) {
	s.writeWordList(w, r, s.StatsService.StrongestWords)
}

func (s *Server) writeWordList(w http.ResponseWriter, r *http.Request, list func(context.Context) ([]models.CardWithWord, error)) {
	items, err := list(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	if items == nil {
		items = []models.CardWithWord{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}
