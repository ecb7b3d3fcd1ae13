package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordflash/internal/models"
)

// MockReviewRepository is a mock implementation of repository.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Insert(ctx context.Context, h models.ReviewHistory) (int64, error) {
	args := m.Called(ctx, h)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) ListForCard(ctx context.Context, cardID string, limit int) ([]models.ReviewHistory, error) {
	args := m.Called(ctx, cardID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewHistory), args.Error(1)
}

func (m *MockReviewRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	args := m.Called(ctx, since)
	return args.Int(0), args.Error(1)
}
