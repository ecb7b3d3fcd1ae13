package worker

import (
	"context"

	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
)

// VocabularyImporter applies a vocabulary file. It is satisfied by the
// vocabulary service and keeps this package free of the services import.
type VocabularyImporter interface {
	ImportSource(ctx context.Context, source string) (*models.ImportResult, error)
}

// ImportVocabularyJob syncs the vocabulary file at Source in the background.
type ImportVocabularyJob struct {
	Importer VocabularyImporter
	Source   string
}

func (j *ImportVocabularyJob) Name() string { return "import_vocabulary" }

func (j *ImportVocabularyJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("source", j.Source)
	log.Info("starting background vocabulary import")

	result, err := j.Importer.ImportSource(ctx, j.Source)
	if err != nil {
		return err
	}
	log.Info("vocabulary synced: %d groups updated, %d unchanged", result.GroupsUpdated, result.GroupsSkipped)
	return nil
}
