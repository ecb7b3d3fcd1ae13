package api

import (
	"net/http"

	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/models"
)

type settingsResponse struct {
	models.Settings
	Choices []int `json:"daily_new_words_choices"`
}

type quizResultRequest struct {
	Score *int `json:"score"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.SettingsService.Get(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, settingsResponse{Settings: settings, Choices: models.DailyNewWordsChoices})
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req models.Settings
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	settings, err := s.SettingsService.Update(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, settingsResponse{Settings: settings, Choices: models.DailyNewWordsChoices})
}

func (s *Server) handleQuizStats(w http.ResponseWriter, r *http.Request) {
	q, err := s.QuizService.Stats(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, quizResponse(q))
}

func (s *Server) handleQuizResult(w http.ResponseWriter, r *http.Request) {
	var req quizResultRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Score == nil {
		handleError(w, r, errors.NewValidationError("score", "is required"))
		return
	}
	q, err := s.QuizService.RecordResult(r.Context(), *req.Score)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, quizResponse(q))
}

func quizResponse(q models.QuizStats) map[string]any {
	return map[string]any{
		"completed_count": q.CompletedCount,
		"total_score":     q.TotalScore,
		"average_score":   q.AverageScore(),
	}
}
