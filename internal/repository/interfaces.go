package repository

import (
	"context"
	"errors"
	"time"

	"github.com/vytor/wordflash/internal/models"
)

var (
	// ErrPersistence wraps every storage failure. Callers treat it as
	// "nothing was written" and may retry the user action.
	ErrPersistence = errors.New("persistence failure")
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")
)

// CardFilter restricts card listings. Zero fields do not filter.
type CardFilter struct {
	IDs        []string
	GroupIDs   []int
	OpenedOnly bool
	States     []models.State
}

// CardRepository handles card data access. Cards are listed in vocabulary
// order (group, then local word id).
type CardRepository interface {
	Get(ctx context.Context, id string) (*models.Card, error)
	List(ctx context.Context, filter CardFilter) ([]models.Card, error)
	ListWithWords(ctx context.Context, filter CardFilter) ([]models.CardWithWord, error)
	Save(ctx context.Context, card models.Card) error
	SaveBatch(ctx context.Context, cards []models.Card) error
	// InsertMissing creates New cards for words of opened groups that have
	// none and returns how many were created.
	InsertMissing(ctx context.Context) (int, error)
	MarkSeen(ctx context.Context, id string) error
}

// WordFilter restricts word listings.
type WordFilter struct {
	IDs        []string
	GroupIDs   []int
	OpenedOnly bool
}

// VocabularyRepository handles groups and words.
type VocabularyRepository interface {
	UpsertGroup(ctx context.Context, group models.Group, position int) error
	UpsertWords(ctx context.Context, words []models.Word) error
	// PruneGroupWords deletes the words of a group whose ids are not in
	// keep. Their cards go with them.
	PruneGroupWords(ctx context.Context, groupID int, keep []string) (int, error)
	GetGroup(ctx context.Context, id int) (*models.Group, error)
	ListGroups(ctx context.Context) ([]models.Group, error)
	SetGroupOpened(ctx context.Context, id int, opened bool) error
	ListWords(ctx context.Context, filter WordFilter) ([]models.Word, error)
	CountWords(ctx context.Context, filter WordFilter) (int, error)
	GroupProgress(ctx context.Context) ([]models.GroupProgress, error)
}

// ReviewRepository stores the review log.
type ReviewRepository interface {
	Insert(ctx context.Context, h models.ReviewHistory) (int64, error)
	ListForCard(ctx context.Context, cardID string, limit int) ([]models.ReviewHistory, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}

// SettingsRepository persists learner preferences. Get returns ErrNotFound
// when nothing was saved yet.
type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, error)
	Save(ctx context.Context, s models.Settings) error
}

// QuizRepository accumulates quiz results.
type QuizRepository interface {
	Get(ctx context.Context) (models.QuizStats, error)
	RecordResult(ctx context.Context, score int) error
}

// Repositories groups the repositories bound to one connection or
// transaction.
type Repositories struct {
	Cards      CardRepository
	Vocabulary VocabularyRepository
	Reviews    ReviewRepository
	Settings   SettingsRepository
	Quiz       QuizRepository
}

// Store opens transactions spanning several repositories. fn's writes are
// committed together or not at all.
type Store interface {
	Repositories() Repositories
	WithinTx(ctx context.Context, fn func(Repositories) error) error
	Ping(ctx context.Context) error
}
