package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
)

// MockCardRepository is a mock implementation of repository.CardRepository
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Get(ctx context.Context, id string) (*models.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *MockCardRepository) List(ctx context.Context, filter repository.CardFilter) ([]models.Card, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Card), args.Error(1)
}

func (m *MockCardRepository) ListWithWords(ctx context.Context, filter repository.CardFilter) ([]models.CardWithWord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CardWithWord), args.Error(1)
}

func (m *MockCardRepository) Save(ctx context.Context, card models.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) SaveBatch(ctx context.Context, cards []models.Card) error {
	args := m.Called(ctx, cards)
	return args.Error(0)
}

func (m *MockCardRepository) InsertMissing(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockCardRepository) MarkSeen(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
