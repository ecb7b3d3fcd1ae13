package api

import (
	stderrors "errors"
	"net/http"

	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/jobs"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/vocabulary"
	"github.com/vytor/wordflash/internal/worker"
)

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.VocabularyService.ListGroups(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"groups": groups})
}

func (s *Server) handleOpenGroup(w http.ResponseWriter, r *http.Request) {
	s.setGroupOpened(w, r, true)
}

func (s *Server) handleCloseGroup(w http.ResponseWriter, r *http.Request) {
	s.setGroupOpened(w, r, false)
}

func (s *Server) setGroupOpened(w http.ResponseWriter, r *http.Request, opened bool) {
	id, err := intParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.VocabularyService.SetGroupOpened(r.Context(), id, opened); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleUploadVocabulary imports a vocabulary file sent as the request body.
func (s *Server) handleUploadVocabulary(w http.ResponseWriter, r *http.Request) {
	file, err := vocabulary.Parse(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		handleError(w, r, errors.NewBadRequestError(err.Error()))
		return
	}
	result, err := s.VocabularyService.Import(r.Context(), file)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

// handleQueueVocabularyImport re-syncs the configured vocabulary file in the
// background.
func (s *Server) handleQueueVocabularyImport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	err := s.JobQueue.EnqueueVocabularyImport("")
	switch {
	case err == nil:
		log.Info("vocabulary import queued")
		writeJSON(w, r, http.StatusAccepted, map[string]string{"status": "queued"})
	case stderrors.Is(err, jobs.ErrNoVocabularySource):
		handleError(w, r, errors.NewBadRequestError("no vocabulary source configured"))
	case stderrors.Is(err, worker.ErrQueueFull), stderrors.Is(err, worker.ErrPoolStopped):
		handleError(w, r, &errors.AppError{
			Code:    errors.ErrCodeBusy,
			Message: "an import is already pending, try again later",
			Status:  http.StatusServiceUnavailable,
			Err:     err,
		})
	default:
		handleError(w, r, err)
	}
}
