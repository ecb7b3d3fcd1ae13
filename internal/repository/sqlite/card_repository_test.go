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

type CardRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.CardRepository
}

func (s *CardRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewCardRepository(s.db)
}

func (s *CardRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *CardRepositorySuite) TestInsertMissingOnlyForOpenedGroups() {
	ctx := context.Background()
	testutil.SeedGroup(s.T(), s.db, 1, true, 3)
	testutil.SeedGroup(s.T(), s.db, 2, false, 2)

	n, err := s.repo.InsertMissing(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(3, n)

	n, err = s.repo.InsertMissing(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(0, n, "existing cards are not recreated")

	cards, err := s.repo.List(ctx, repository.CardFilter{})
	s.Require().NoError(err)
	s.Require().Len(cards, 3)
	for _, c := range cards {
		s.Assert().Equal(models.StateNew, c.State)
		s.Assert().Nil(c.LastReview)
		s.Assert().Nil(c.AssignedDate)
		s.Assert().True(c.Due.IsZero())
	}
}

func (s *CardRepositorySuite) TestSaveAndGetRoundTrip() {
	ctx := context.Background()
	testutil.SeedGroup(s.T(), s.db, 1, true, 1)

	reviewed := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	assigned := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	card := models.Card{
		ID:            "1_1",
		State:         models.StateReview,
		Due:           reviewed.Add(4 * 24 * time.Hour),
		Stability:     4.93,
		Difficulty:    5.12,
		ElapsedDays:   2,
		ScheduledDays: 4,
		Lapses:        1,
		Reps:          5,
		LastReview:    &reviewed,
		AssignedDate:  &assigned,
		Learned:       true,
		Seen:          true,
	}

	s.Require().NoError(s.repo.Save(ctx, card))

	got, err := s.repo.Get(ctx, "1_1")
	s.Require().NoError(err)
	s.Assert().Equal(card.State, got.State)
	s.Assert().True(card.Due.Equal(got.Due))
	s.Assert().InDelta(card.Stability, got.Stability, 1e-9)
	s.Assert().InDelta(card.Difficulty, got.Difficulty, 1e-9)
	s.Assert().Equal(card.ElapsedDays, got.ElapsedDays)
	s.Assert().Equal(card.ScheduledDays, got.ScheduledDays)
	s.Assert().Equal(card.Lapses, got.Lapses)
	s.Assert().Equal(card.Reps, got.Reps)
	s.Require().NotNil(got.LastReview)
	s.Assert().True(reviewed.Equal(*got.LastReview))
	s.Require().NotNil(got.AssignedDate)
	s.Assert().True(assigned.Equal(*got.AssignedDate))
	s.Assert().True(got.Learned)
	s.Assert().True(got.Seen)

	card.AssignedDate = nil
	s.Require().NoError(s.repo.Save(ctx, card))
	got, err = s.repo.Get(ctx, "1_1")
	s.Require().NoError(err)
	s.Assert().Nil(got.AssignedDate, "clearing the assignment persists")
}

func (s *CardRepositorySuite) TestGetNotFound() {
	_, err := s.repo.Get(context.Background(), "9_9")
	s.Assert().ErrorIs(err, repository.ErrNotFound)
}

func (s *CardRepositorySuite) TestSaveUnknownWord() {
	err := s.repo.Save(context.Background(), models.NewCard("7_1"))
	s.Assert().ErrorIs(err, repository.ErrNotFound)
}

func (s *CardRepositorySuite) TestListOrderAndFilters() {
	ctx := context.Background()
	testutil.SeedGroup(s.T(), s.db, 2, true, 2)
	testutil.SeedGroup(s.T(), s.db, 1, true, 2)
	testutil.SeedGroup(s.T(), s.db, 3, false, 1)
	_, err := s.repo.InsertMissing(ctx)
	s.Require().NoError(err)
	s.Require().NoError(s.repo.MarkSeen(ctx, "3_1"))

	review := models.Card{ID: "2_2", State: models.StateReview, Due: time.Now(), Stability: 3, Difficulty: 5}
	s.Require().NoError(s.repo.Save(ctx, review))

	all, err := s.repo.List(ctx, repository.CardFilter{})
	s.Require().NoError(err)
	s.Assert().Equal([]string{"1_1", "1_2", "2_1", "2_2", "3_1"}, cardIDs(all))

	opened, err := s.repo.List(ctx, repository.CardFilter{OpenedOnly: true})
	s.Require().NoError(err)
	s.Assert().Equal([]string{"1_1", "1_2", "2_1", "2_2"}, cardIDs(opened))

	byGroup, err := s.repo.List(ctx, repository.CardFilter{GroupIDs: []int{2}})
	s.Require().NoError(err)
	s.Assert().Equal([]string{"2_1", "2_2"}, cardIDs(byGroup))

	reviews, err := s.repo.List(ctx, repository.CardFilter{States: []models.State{models.StateReview}})
	s.Require().NoError(err)
	s.Assert().Equal([]string{"2_2"}, cardIDs(reviews))

	byID, err := s.repo.List(ctx, repository.CardFilter{IDs: []string{"2_1", "1_2"}})
	s.Require().NoError(err)
	s.Assert().Equal([]string{"1_2", "2_1"}, cardIDs(byID))
}

func (s *CardRepositorySuite) TestListWithWords() {
	ctx := context.Background()
	words := testutil.SeedGroup(s.T(), s.db, 1, true, 2)
	_, err := s.repo.InsertMissing(ctx)
	s.Require().NoError(err)

	out, err := s.repo.ListWithWords(ctx, repository.CardFilter{OpenedOnly: true})
	s.Require().NoError(err)
	s.Require().Len(out, 2)
	s.Assert().Equal(words[0], out[0].Word)
	s.Assert().Equal("1_1", out[0].Card.ID)
}

func (s *CardRepositorySuite) TestSaveBatchIsAtomic() {
	ctx := context.Background()
	testutil.SeedGroup(s.T(), s.db, 1, true, 2)
	_, err := s.repo.InsertMissing(ctx)
	s.Require().NoError(err)

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	first := models.NewCard("1_1")
	first.AssignedDate = &day
	unknown := models.NewCard("8_8")

	err = s.repo.SaveBatch(ctx, []models.Card{first, unknown})
	s.Require().Error(err)

	got, err := s.repo.Get(ctx, "1_1")
	s.Require().NoError(err)
	s.Assert().Nil(got.AssignedDate, "failed batch leaves earlier cards unchanged")
}

func (s *CardRepositorySuite) TestMarkSeen() {
	ctx := context.Background()
	testutil.SeedGroup(s.T(), s.db, 1, false, 1)

	s.Require().NoError(s.repo.MarkSeen(ctx, "1_1"))
	got, err := s.repo.Get(ctx, "1_1")
	s.Require().NoError(err)
	s.Assert().True(got.Seen)
	s.Assert().Equal(models.StateNew, got.State)

	err = s.repo.MarkSeen(ctx, "5_5")
	s.Assert().True(errors.Is(err, repository.ErrNotFound))
}

func cardIDs(cards []models.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

func TestCardRepositorySuite(t *testing.T) {
	suite.Run(t, new(CardRepositorySuite))
}
