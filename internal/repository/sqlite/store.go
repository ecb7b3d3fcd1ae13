package sqlite

import (
	"context"
	"database/sql"

	"github.com/vytor/wordflash/internal/repository"
)

type store struct {
	db *sql.DB
}

// NewStore creates a repository.Store backed by db.
func NewStore(db *sql.DB) repository.Store {
	return &store{db: db}
}

func bind(q querier) repository.Repositories {
	return repository.Repositories{
		Cards:      &cardRepository{db: q},
		Vocabulary: &vocabularyRepository{db: q},
		Reviews:    &reviewRepository{db: q},
		Settings:   &settingsRepository{db: q},
		Quiz:       &quizRepository{db: q},
	}
}

func (s *store) Repositories() repository.Repositories {
	return bind(s.db)
}

func (s *store) WithinTx(ctx context.Context, fn func(repository.Repositories) error) error {
	return tx(ctx, s.db, func(t *sql.Tx) error {
		return fn(bind(t))
	})
}

func (s *store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return persistErr("ping", err)
	}
	return nil
}
