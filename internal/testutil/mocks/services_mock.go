package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/vocabulary"
)

// MockTrainingService is a mock implementation of services.TrainingService
type MockTrainingService struct {
	mock.Mock
}

func (m *MockTrainingService) LoadSession(ctx context.Context) (*models.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockTrainingService) Review(ctx context.Context, cardID string, rating models.Rating) (*models.ReviewResult, error) {
	args := m.Called(ctx, cardID, rating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewResult), args.Error(1)
}

func (m *MockTrainingService) WeakSession(ctx context.Context) ([]models.CardWithWord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CardWithWord), args.Error(1)
}

// MockStatsService is a mock implementation of services.StatsService
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Summary(ctx context.Context) (*models.ReviewStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewStats), args.Error(1)
}

func (m *MockStatsService) WeakWords(ctx context.Context) ([]models.CardWithWord, error) {
	return m.list(ctx, "WeakWords")
}

func (m *MockStatsService) StaleWords(ctx context.Context) ([]models.CardWithWord, error) {
	return m.list(ctx, "StaleWords")
}

func (m *MockStatsService) StrongestWords(ctx context.Context) ([]models.CardWithWord, error) {
	return m.list(ctx, "StrongestWords")
}

func (m *MockStatsService) list(ctx context.Context, method string) ([]models.CardWithWord, error) {
	args := m.MethodCalled(method, ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CardWithWord), args.Error(1)
}

// MockVocabularyService is a mock implementation of services.VocabularyService
type MockVocabularyService struct {
	mock.Mock
}

func (m *MockVocabularyService) Import(ctx context.Context, file *vocabulary.File) (*models.ImportResult, error) {
	args := m.Called(ctx, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImportResult), args.Error(1)
}

func (m *MockVocabularyService) ImportSource(ctx context.Context, path string) (*models.ImportResult, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImportResult), args.Error(1)
}

func (m *MockVocabularyService) ListGroups(ctx context.Context) ([]models.GroupProgress, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GroupProgress), args.Error(1)
}

func (m *MockVocabularyService) SetGroupOpened(ctx context.Context, groupID int, opened bool) error {
	args := m.Called(ctx, groupID, opened)
	return args.Error(0)
}

// MockSettingsService is a mock implementation of services.SettingsService
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get(ctx context.Context) (models.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Settings), args.Error(1)
}

func (m *MockSettingsService) Update(ctx context.Context, s models.Settings) (models.Settings, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(models.Settings), args.Error(1)
}

// MockQuizService is a mock implementation of services.QuizService
type MockQuizService struct {
	mock.Mock
}

func (m *MockQuizService) MarkSeen(ctx context.Context, cardID string) error {
	args := m.Called(ctx, cardID)
	return args.Error(0)
}

func (m *MockQuizService) RecordResult(ctx context.Context, score int) (models.QuizStats, error) {
	args := m.Called(ctx, score)
	return args.Get(0).(models.QuizStats), args.Error(1)
}

func (m *MockQuizService) Stats(ctx context.Context) (models.QuizStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.QuizStats), args.Error(1)
}
