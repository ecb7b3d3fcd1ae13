package jobs

import (
	"errors"

	"github.com/vytor/wordflash/internal/worker"
)

// ErrNoVocabularySource is returned when an import is requested without a
// source and none is configured.
var ErrNoVocabularySource = errors.New("no vocabulary source configured")

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	importPool    *worker.Pool
	importer      worker.VocabularyImporter
	defaultSource string
}

// NewWorkerQueue creates a new WorkerQueue implementation. defaultSource is
// used when an import is enqueued with an empty source.
func NewWorkerQueue(importPool *worker.Pool, importer worker.VocabularyImporter, defaultSource string) JobQueue {
	return &WorkerQueue{
		importPool:    importPool,
		importer:      importer,
		defaultSource: defaultSource,
	}
}

func (q *WorkerQueue) EnqueueVocabularyImport(source string) error {
	if source == "" {
		source = q.defaultSource
	}
	if source == "" {
		return ErrNoVocabularySource
	}
	return q.importPool.Submit(&worker.ImportVocabularyJob{
		Importer: q.importer,
		Source:   source,
	})
}
