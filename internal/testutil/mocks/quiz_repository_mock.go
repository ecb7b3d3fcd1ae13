package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordflash/internal/models"
)

// MockQuizRepository is a mock implementation of repository.QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Get(ctx context.Context) (models.QuizStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.QuizStats), args.Error(1)
}

func (m *MockQuizRepository) RecordResult(ctx context.Context, score int) error {
	args := m.Called(ctx, score)
	return args.Error(0)
}
