package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
)

// MockVocabularyRepository is a mock implementation of repository.VocabularyRepository
type MockVocabularyRepository struct {
	mock.Mock
}

func (m *MockVocabularyRepository) UpsertGroup(ctx context.Context, group models.Group, position int) error {
	args := m.Called(ctx, group, position)
	return args.Error(0)
}

func (m *MockVocabularyRepository) UpsertWords(ctx context.Context, words []models.Word) error {
	args := m.Called(ctx, words)
	return args.Error(0)
}

func (m *MockVocabularyRepository) PruneGroupWords(ctx context.Context, groupID int, keep []string) (int, error) {
	args := m.Called(ctx, groupID, keep)
	return args.Int(0), args.Error(1)
}

func (m *MockVocabularyRepository) GetGroup(ctx context.Context, id int) (*models.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockVocabularyRepository) ListGroups(ctx context.Context) ([]models.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Group), args.Error(1)
}

func (m *MockVocabularyRepository) SetGroupOpened(ctx context.Context, id int, opened bool) error {
	args := m.Called(ctx, id, opened)
	return args.Error(0)
}

func (m *MockVocabularyRepository) ListWords(ctx context.Context, filter repository.WordFilter) ([]models.Word, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Word), args.Error(1)
}

func (m *MockVocabularyRepository) CountWords(ctx context.Context, filter repository.WordFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockVocabularyRepository) GroupProgress(ctx context.Context) ([]models.GroupProgress, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GroupProgress), args.Error(1)
}
