package testutil

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordflash/internal/db"
	"github.com/vytor/wordflash/internal/models"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The pool is limited to one connection so every query sees the same
// in-memory database.
func NewTestDB(t *testing.T) *sql.DB {
	sqlDB, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(context.Background(), sqlDB), "failed to apply migrations")
	return sqlDB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// SeedGroup inserts a group with the given number of words, local ids
// starting at 1, and returns the words.
func SeedGroup(t *testing.T, sqlDB *sql.DB, groupID int, opened bool, words int) []models.Word {
	_, err := sqlDB.Exec(`INSERT INTO groups (id, version, name_en, name_ru, opened, position) VALUES (?, 1, ?, ?, ?, ?)`,
		groupID, "Group", "Группа", opened, groupID)
	require.NoError(t, err)

	out := make([]models.Word, 0, words)
	for i := 1; i <= words; i++ {
		w := models.Word{
			CompositeID: models.CompositeWordID(groupID, i),
			GroupID:     groupID,
			LocalID:     i,
			Greek:       "λέξη",
			English:     "word",
			Russian:     "слово",
		}
		_, err := sqlDB.Exec(`INSERT INTO words (composite_id, group_id, local_id, greek, english, russian) VALUES (?, ?, ?, ?, ?, ?)`,
			w.CompositeID, w.GroupID, w.LocalID, w.Greek, w.English, w.Russian)
		require.NoError(t, err)
		out = append(out, w)
	}
	return out
}
