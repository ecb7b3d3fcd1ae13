package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
)

type vocabularyRepository struct {
	db querier
}

// NewVocabularyRepository creates a new VocabularyRepository implementation
func NewVocabularyRepository(db *sql.DB) repository.VocabularyRepository {
	return &vocabularyRepository{db: db}
}

func (r *vocabularyRepository) UpsertGroup(ctx context.Context, g models.Group, position int) error {
	log := logger.FromContext(ctx).WithPrefix("vocabulary_repo")
	log.Debug("upserting group: id=%d, version=%d", g.ID, g.Version)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO groups (id, version, name_en, name_ru, opened, position)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    version = excluded.version,
    name_en = excluded.name_en,
    name_ru = excluded.name_ru,
    position = excluded.position
`, g.ID, g.Version, g.NameEn, g.NameRu, g.Opened, position)
	if err != nil {
		log.Error("failed to upsert group: %v", err)
		return persistErr("upsert group", err)
	}
	return nil
}

func (r *vocabularyRepository) UpsertWords(ctx context.Context, words []models.Word) error {
	log := logger.FromContext(ctx).WithPrefix("vocabulary_repo")
	if len(words) == 0 {
		return nil
	}
	log.Debug("upserting %d words", len(words))

	err := inTx(ctx, r.db, func(q querier) error {
		for _, w := range words {
			_, err := q.ExecContext(ctx, `
INSERT INTO words (composite_id, group_id, local_id, greek, english, russian)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(composite_id) DO UPDATE SET
    greek = excluded.greek,
    english = excluded.english,
    russian = excluded.russian
`, w.CompositeID, w.GroupID, w.LocalID, w.Greek, w.English, w.Russian)
			if err != nil {
				if isForeignKeyViolation(err) {
					return repository.ErrNotFound
				}
				return persistErr("upsert word", err)
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to upsert words: %v", err)
	}
	return err
}

func (r *vocabularyRepository) PruneGroupWords(ctx context.Context, groupID int, keep []string) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("vocabulary_repo")
	log.Debug("pruning words of group %d, keeping %d", groupID, len(keep))

	q := sqlBuilder.Delete("words").Where(squirrel.Eq{"group_id": groupID})
	if len(keep) > 0 {
		q = q.Where(squirrel.NotEq{"composite_id": keep})
	}
	query, args, err := q.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to prune words: %v", err)
		return 0, persistErr("prune words", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, persistErr("prune words", err)
	}
	return int(n), nil
}

func (r *vocabularyRepository) GetGroup(ctx context.Context, id int) (*models.Group, error) {
	log := logger.FromContext(ctx).WithPrefix("vocabulary_repo")
	log.Debug("getting group: id=%d", id)

	var g models.Group
	err := r.db.QueryRowContext(ctx, `
SELECT id, version, name_en, name_ru, opened
FROM groups
WHERE id = ?
`, id).Scan(&g.ID, &g.Version, &g.NameEn, &g.NameRu, &g.Opened)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("group not found: id=%d", id)
		return nil, repository.ErrNotFound
	}
	if err != nil {
		log.Error("failed to get group: %v", err)
		return nil, persistErr("get group", err)
	}
	return &g, nil
}

func (r *vocabularyRepository) ListGroups(ctx context.Context) ([]models.Group, error) {
	log := logger.FromContext(ctx).WithPrefix("vocabulary_repo")
	log.Debug("listing groups")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, version, name_en, name_ru, opened
FROM groups
ORDER BY position, id
`)
	if err != nil {
		log.Error("failed to list groups: %v", err)
		return nil, persistErr("list groups", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Version, &g.NameEn, &g.NameRu, &g.Opened); err != nil {
			log.Error("failed to scan group row: %v", err)
			return nil, persistErr("scan group", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("list groups", err)
	}
	return groups, nil
}

func (r *vocabularyRepository) SetGroupOpened(ctx context.Context, id int, opened bool) error {
	log := logger.FromContext(ctx).WithPrefix("vocabulary_repo")
	log.Debug("setting group opened: id=%d, opened=%t", id, opened)

	res, err := r.db.ExecContext(ctx, `UPDATE groups SET opened = ? WHERE id = ?`, opened, id)
	if err != nil {
		log.Error("failed to update group: %v", err)
		return persistErr("set group opened", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return persistErr("set group opened", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func wordQuery(columns []string, f repository.WordFilter) squirrel.SelectBuilder {
	q := sqlBuilder.Select(columns...).
		From("words w").
		Join("groups g ON g.id = w.group_id")
	if len(f.IDs) > 0 {
		q = q.Where(squirrel.Eq{"w.composite_id": f.IDs})
	}
	if len(f.GroupIDs) > 0 {
		q = q.Where(squirrel.Eq{"w.group_id": f.GroupIDs})
	}
	if f.OpenedOnly {
		q = q.Where(squirrel.Eq{"g.opened": true})
	}
	return q
}

func (r *vocabularyRepository) ListWords(ctx context.Context, f repository.WordFilter) ([]models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("vocabulary_repo")
	log.Debug("listing words: groups=%v, opened_only=%t", f.GroupIDs, f.OpenedOnly)

	query, args, err := wordQuery(wordColumns, f).OrderBy("g.position", "g.id", "w.local_id").ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list words: %v", err)
		return nil, persistErr("list words", err)
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		var w models.Word
		if err := rows.Scan(&w.CompositeID, &w.GroupID, &w.LocalID, &w.Greek, &w.English, &w.Russian); err != nil {
			log.Error("failed to scan word row: %v", err)
			return nil, persistErr("scan word", err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("list words", err)
	}
	log.Debug("found %d words", len(words))
	return words, nil
}

func (r *vocabularyRepository) CountWords(ctx context.Context, f repository.WordFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("vocabulary_repo")

	query, args, err := wordQuery([]string{"COUNT(*)"}, f).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Error("failed to count words: %v", err)
		return 0, persistErr("count words", err)
	}
	return count, nil
}

func (r *vocabularyRepository) GroupProgress(ctx context.Context) ([]models.GroupProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("vocabulary_repo")
	log.Debug("computing group progress")

	rows, err := r.db.QueryContext(ctx, `
SELECT
    g.id, g.version, g.name_en, g.name_ru, g.opened,
    COALESCE(SUM(CASE WHEN c.seen = 1 THEN 1 ELSE 0 END), 0) AS seen,
    COUNT(w.composite_id) AS total
FROM groups g
LEFT JOIN words w ON w.group_id = g.id
LEFT JOIN cards c ON c.id = w.composite_id
GROUP BY g.id
ORDER BY g.position, g.id
`)
	if err != nil {
		log.Error("failed to query group progress: %v", err)
		return nil, persistErr("group progress", err)
	}
	defer rows.Close()

	var out []models.GroupProgress
	for rows.Next() {
		var p models.GroupProgress
		if err := rows.Scan(&p.ID, &p.Version, &p.NameEn, &p.NameRu, &p.Opened, &p.Seen, &p.Total); err != nil {
			log.Error("failed to scan group progress row: %v", err)
			return nil, persistErr("scan group progress", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("group progress", err)
	}
	return out, nil
}
