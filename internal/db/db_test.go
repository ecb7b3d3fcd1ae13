package db_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordflash/internal/db"
)

func TestOpen_AppliesMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordflash.db")

	database, err := db.Open(path)
	require.NoError(t, err)
	defer database.Close()

	for _, table := range []string{"groups", "words", "cards", "review_history", "settings", "quiz_stats"} {
		var name string
		err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		assert.NoError(t, err, "table %s", table)
	}
}

func TestMigrate_IsIdempotent(t *testing.T) {
	sqlDB, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	defer sqlDB.Close()
	sqlDB.SetMaxOpenConns(1)

	ctx := context.Background()
	require.NoError(t, db.Migrate(ctx, sqlDB))
	require.NoError(t, db.Migrate(ctx, sqlDB))

	var count int
	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count))
	assert.Equal(t, 2, count)
}
