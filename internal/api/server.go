package api

import (
	"github.com/vytor/wordflash/internal/jobs"
	"github.com/vytor/wordflash/internal/repository"
	"github.com/vytor/wordflash/internal/services"
)

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	Store             repository.Store
	TrainingService   services.TrainingService
	StatsService      services.StatsService
	VocabularyService services.VocabularyService
	SettingsService   services.SettingsService
	QuizService       services.QuizService
	JobQueue          jobs.JobQueue
}
