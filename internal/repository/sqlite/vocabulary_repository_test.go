package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
	"github.com/vytor/wordflash/internal/repository/sqlite"
	"github.com/vytor/wordflash/internal/testutil"
)

type VocabularyRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.VocabularyRepository
}

func (s *VocabularyRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewVocabularyRepository(s.db)
}

func (s *VocabularyRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *VocabularyRepositorySuite) TestUpsertKeepsOpenedFlag() {
	ctx := context.Background()
	g := models.Group{ID: 1, Version: 1, NameEn: "Food", NameRu: "Еда"}
	s.Require().NoError(s.repo.UpsertGroup(ctx, g, 0))
	s.Require().NoError(s.repo.SetGroupOpened(ctx, 1, true))

	g.Version = 2
	g.NameEn = "Food and drink"
	s.Require().NoError(s.repo.UpsertGroup(ctx, g, 0))

	got, err := s.repo.GetGroup(ctx, 1)
	s.Require().NoError(err)
	s.Assert().Equal(2, got.Version)
	s.Assert().Equal("Food and drink", got.NameEn)
	s.Assert().True(got.Opened)
}

func (s *VocabularyRepositorySuite) TestWordsAndCounts() {
	ctx := context.Background()
	s.Require().NoError(s.repo.UpsertGroup(ctx, models.Group{ID: 1, Version: 1}, 1))
	s.Require().NoError(s.repo.UpsertGroup(ctx, models.Group{ID: 2, Version: 1}, 0))
	s.Require().NoError(s.repo.SetGroupOpened(ctx, 2, true))

	words := []models.Word{
		{CompositeID: "1_1", GroupID: 1, LocalID: 1, Greek: "ψωμί", English: "bread", Russian: "хлеб"},
		{CompositeID: "2_1", GroupID: 2, LocalID: 1, Greek: "νερό", English: "water", Russian: "вода"},
		{CompositeID: "2_2", GroupID: 2, LocalID: 2, Greek: "κρασί", English: "wine", Russian: "вино"},
	}
	s.Require().NoError(s.repo.UpsertWords(ctx, words))

	all, err := s.repo.ListWords(ctx, repository.WordFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Assert().Equal("2_1", all[0].CompositeID, "groups follow their position")

	total, err := s.repo.CountWords(ctx, repository.WordFilter{})
	s.Require().NoError(err)
	s.Assert().Equal(3, total)

	studying, err := s.repo.CountWords(ctx, repository.WordFilter{OpenedOnly: true})
	s.Require().NoError(err)
	s.Assert().Equal(2, studying)
}

func (s *VocabularyRepositorySuite) TestPruneGroupWordsCascadesToCards() {
	ctx := context.Background()
	testutil.SeedGroup(s.T(), s.db, 1, true, 3)
	testutil.SeedGroup(s.T(), s.db, 2, true, 1)
	cards := sqlite.NewCardRepository(s.db)
	_, err := cards.InsertMissing(ctx)
	s.Require().NoError(err)

	n, err := s.repo.PruneGroupWords(ctx, 1, []string{"1_1", "1_3"})
	s.Require().NoError(err)
	s.Assert().Equal(1, n)

	left, err := cards.List(ctx, repository.CardFilter{})
	s.Require().NoError(err)
	s.Assert().Equal([]string{"1_1", "1_3", "2_1"}, cardIDs(left))
}

func (s *VocabularyRepositorySuite) TestUpsertWordsUnknownGroup() {
	err := s.repo.UpsertWords(context.Background(), []models.Word{{CompositeID: "4_1", GroupID: 4, LocalID: 1, Greek: "x"}})
	s.Assert().ErrorIs(err, repository.ErrNotFound)
}

func (s *VocabularyRepositorySuite) TestSetGroupOpenedNotFound() {
	err := s.repo.SetGroupOpened(context.Background(), 42, true)
	s.Assert().ErrorIs(err, repository.ErrNotFound)
}

func (s *VocabularyRepositorySuite) TestGroupProgress() {
	ctx := context.Background()
	testutil.SeedGroup(s.T(), s.db, 1, true, 3)
	testutil.SeedGroup(s.T(), s.db, 2, false, 2)
	cards := sqlite.NewCardRepository(s.db)
	s.Require().NoError(cards.MarkSeen(ctx, "1_2"))
	s.Require().NoError(cards.MarkSeen(ctx, "2_1"))
	_, err := cards.InsertMissing(ctx)
	s.Require().NoError(err)

	progress, err := s.repo.GroupProgress(ctx)
	s.Require().NoError(err)
	s.Require().Len(progress, 2)
	s.Assert().Equal(1, progress[0].ID)
	s.Assert().Equal(1, progress[0].Seen)
	s.Assert().Equal(3, progress[0].Total)
	s.Assert().Equal(1, progress[1].Seen)
	s.Assert().Equal(2, progress[1].Total)
}

func TestVocabularyRepositorySuite(t *testing.T) {
	suite.Run(t, new(VocabularyRepositorySuite))
}
