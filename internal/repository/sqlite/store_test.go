package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
	"github.com/vytor/wordflash/internal/repository/sqlite"
	"github.com/vytor/wordflash/internal/testutil"
)

type StoreSuite struct {
	suite.Suite
	db    *sql.DB
	store repository.Store
}

func (s *StoreSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.store = sqlite.NewStore(s.db)
	testutil.SeedGroup(s.T(), s.db, 1, true, 2)
	_, err := s.store.Repositories().Cards.InsertMissing(context.Background())
	s.Require().NoError(err)
}

func (s *StoreSuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *StoreSuite) TestWithinTxCommits() {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	err := s.store.WithinTx(ctx, func(r repository.Repositories) error {
		card := models.Card{ID: "1_1", State: models.StateLearning, Due: now.Add(10 * time.Minute), Stability: 2.3, Difficulty: 5, Reps: 1, LastReview: &now, Seen: true}
		if err := r.Cards.Save(ctx, card); err != nil {
			return err
		}
		_, err := r.Reviews.Insert(ctx, models.ReviewHistory{
			CardID: "1_1", Rating: models.RatingGood, StateBefore: models.StateNew, StateAfter: models.StateLearning, ReviewedAt: now,
		})
		return err
	})
	s.Require().NoError(err)

	history, err := s.store.Repositories().Reviews.ListForCard(ctx, "1_1", 10)
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Assert().Equal(models.RatingGood, history[0].Rating)
	s.Assert().True(now.Equal(history[0].ReviewedAt))

	n, err := s.store.Repositories().Reviews.CountSince(ctx, now.Add(-time.Hour))
	s.Require().NoError(err)
	s.Assert().Equal(1, n)
}

func (s *StoreSuite) TestWithinTxRollsBack() {
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.store.WithinTx(ctx, func(r repository.Repositories) error {
		card := models.NewCard("1_2")
		card.Seen = true
		if err := r.Cards.Save(ctx, card); err != nil {
			return err
		}
		return boom
	})
	s.Require().ErrorIs(err, boom)

	got, err := s.store.Repositories().Cards.Get(ctx, "1_2")
	s.Require().NoError(err)
	s.Assert().False(got.Seen, "rolled back write is not visible")
}

func (s *StoreSuite) TestSettingsAndQuiz() {
	ctx := context.Background()
	repos := s.store.Repositories()

	_, err := repos.Settings.Get(ctx)
	s.Assert().ErrorIs(err, repository.ErrNotFound)

	s.Require().NoError(repos.Settings.Save(ctx, models.Settings{DailyNewWordsLimit: 10}))
	s.Require().NoError(repos.Settings.Save(ctx, models.Settings{DailyNewWordsLimit: 30}))
	settings, err := repos.Settings.Get(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(30, settings.DailyNewWordsLimit)

	quiz, err := repos.Quiz.Get(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(models.QuizStats{}, quiz)

	s.Require().NoError(repos.Quiz.RecordResult(ctx, 8))
	s.Require().NoError(repos.Quiz.RecordResult(ctx, 6))
	quiz, err = repos.Quiz.Get(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(models.QuizStats{CompletedCount: 2, TotalScore: 14}, quiz)
}

func (s *StoreSuite) TestPersistenceErrorsAreWrapped() {
	closed := testutil.NewTestDB(s.T())
	store := sqlite.NewStore(closed)
	testutil.MustClose(s.T(), closed)

	_, err := store.Repositories().Cards.List(context.Background(), repository.CardFilter{})
	s.Assert().ErrorIs(err, repository.ErrPersistence)
	s.Assert().ErrorIs(store.Ping(context.Background()), repository.ErrPersistence)
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}
