package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordflash/internal/repository"
)

// MockStore is a repository.Store whose transactions run directly against
// the contained mocks. Errors returned by fn propagate unchanged, so tests
// can assert that nothing after a failing call was attempted.
type MockStore struct {
	mock.Mock
	Cards      *MockCardRepository
	Vocabulary *MockVocabularyRepository
	Reviews    *MockReviewRepository
	Settings   *MockSettingsRepository
	Quiz       *MockQuizRepository
}

// NewMockStore returns a MockStore with fresh repository mocks.
func NewMockStore() *MockStore {
	return &MockStore{
		Cards:      &MockCardRepository{},
		Vocabulary: &MockVocabularyRepository{},
		Reviews:    &MockReviewRepository{},
		Settings:   &MockSettingsRepository{},
		Quiz:       &MockQuizRepository{},
	}
}

func (m *MockStore) Repositories() repository.Repositories {
	return repository.Repositories{
		Cards:      m.Cards,
		Vocabulary: m.Vocabulary,
		Reviews:    m.Reviews,
		Settings:   m.Settings,
		Quiz:       m.Quiz,
	}
}

func (m *MockStore) WithinTx(ctx context.Context, fn func(repository.Repositories) error) error {
	return fn(m.Repositories())
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// AssertExpectations checks the expectations of every contained mock.
func (m *MockStore) AssertExpectations(t mock.TestingT) bool {
	ok := m.Mock.AssertExpectations(t)
	ok = m.Cards.AssertExpectations(t) && ok
	ok = m.Vocabulary.AssertExpectations(t) && ok
	ok = m.Reviews.AssertExpectations(t) && ok
	ok = m.Settings.AssertExpectations(t) && ok
	ok = m.Quiz.AssertExpectations(t) && ok
	return ok
}
