package services

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
	"github.com/vytor/wordflash/internal/vocabulary"
)

// VocabularyService imports vocabulary files and manages which groups are
// studied.
type VocabularyService interface {
	Import(ctx context.Context, file *vocabulary.File) (*models.ImportResult, error)
	// ImportSource reads and imports the vocabulary file at source.
	ImportSource(ctx context.Context, source string) (*models.ImportResult, error)
	ListGroups(ctx context.Context) ([]models.GroupProgress, error)
	SetGroupOpened(ctx context.Context, groupID int, opened bool) error
}

type vocabularyService struct {
	mu    sync.Mutex
	store repository.Store
}

// NewVocabularyService creates a new VocabularyService
func NewVocabularyService(store repository.Store) VocabularyService {
	return &vocabularyService{store: store}
}

// Import applies every group whose version is newer than the stored one.
// Words dropped from an updated group are removed with their cards. The
// whole file is applied in one transaction.
func (s *vocabularyService) Import(ctx context.Context, file *vocabulary.File) (*models.ImportResult, error) {
	log := logger.FromContext(ctx).WithPrefix("vocabulary")
	if file == nil {
		return nil, errors.NewBadRequestError("vocabulary file is empty")
	}
	log.Info("importing vocabulary: groups=%d", len(file.Vocabulary.Groups))

	s.mu.Lock()
	defer s.mu.Unlock()

	var result models.ImportResult
	err := s.store.WithinTx(ctx, func(r repository.Repositories) error {
		for position, group := range file.Vocabulary.Groups {
			existing, err := r.Vocabulary.GetGroup(ctx, group.ID)
			if err != nil && !stderrors.Is(err, repository.ErrNotFound) {
				return err
			}
			if existing != nil && existing.Version >= group.Version {
				log.Debug("group %d is up to date: stored=%d, incoming=%d", group.ID, existing.Version, group.Version)
				result.GroupsSkipped++
				continue
			}

			meta := group.Model()
			if existing != nil {
				meta.Opened = existing.Opened
			}
			if err := r.Vocabulary.UpsertGroup(ctx, meta, position); err != nil {
				return err
			}

			words := group.ModelWords()
			if err := r.Vocabulary.UpsertWords(ctx, words); err != nil {
				return err
			}
			keep := make([]string, 0, len(words))
			for _, w := range words {
				keep = append(keep, w.CompositeID)
			}
			removed, err := r.Vocabulary.PruneGroupWords(ctx, group.ID, keep)
			if err != nil {
				return err
			}

			result.GroupsUpdated++
			result.Words += len(words)
			result.WordsRemoved += removed
		}
		return nil
	})
	if err != nil {
		log.Error("vocabulary import failed, nothing applied: %v", err)
		return nil, appError(err, "group", nil)
	}

	log.Info("vocabulary imported: updated=%d, skipped=%d, words=%d, removed=%d",
		result.GroupsUpdated, result.GroupsSkipped, result.Words, result.WordsRemoved)
	return &result, nil
}

func (s *vocabularyService) ImportSource(ctx context.Context, source string) (*models.ImportResult, error) {
	log := logger.FromContext(ctx).WithPrefix("vocabulary")
	log.Debug("reading vocabulary from %s", source)

	file, err := vocabulary.ParseFile(source)
	if err != nil {
		log.Error("failed to read vocabulary from %s: %v", source, err)
		return nil, errors.NewBadRequestError(err.Error())
	}
	return s.Import(ctx, file)
}

func (s *vocabularyService) ListGroups(ctx context.Context) ([]models.GroupProgress, error) {
	progress, err := s.store.Repositories().Vocabulary.GroupProgress(ctx)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("vocabulary").Error("failed to load group progress: %v", err)
		return nil, appError(err, "group", nil)
	}
	return progress, nil
}

func (s *vocabularyService) SetGroupOpened(ctx context.Context, groupID int, opened bool) error {
	log := logger.FromContext(ctx).WithPrefix("vocabulary")
	log.Debug("setting group opened: id=%d, opened=%t", groupID, opened)

	if err := s.store.Repositories().Vocabulary.SetGroupOpened(ctx, groupID, opened); err != nil {
		log.Error("failed to update group %d: %v", groupID, err)
		return appError(err, "group", groupID)
	}
	return nil
}
