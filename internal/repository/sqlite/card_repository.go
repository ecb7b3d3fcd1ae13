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

var cardColumns = []string{
	"c.id", "c.state", "c.due", "c.stability", "c.difficulty", "c.elapsed_days",
	"c.scheduled_days", "c.lapses", "c.reps", "c.last_review", "c.assigned_date",
	"c.learned", "c.seen",
}

var wordColumns = []string{
	"w.composite_id", "w.group_id", "w.local_id", "w.greek", "w.english", "w.russian",
}

type cardRepository struct {
	db querier
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// cardDest returns scan targets matching cardColumns. finish copies the
// nullable columns into c after a successful Scan.
func cardDest(c *models.Card) (dest []any, finish func()) {
	var due, lastReview, assigned sql.NullTime
	dest = []any{
		&c.ID, &c.State, &due, &c.Stability, &c.Difficulty, &c.ElapsedDays,
		&c.ScheduledDays, &c.Lapses, &c.Reps, &lastReview, &assigned,
		&c.Learned, &c.Seen,
	}
	return dest, func() {
		if due.Valid {
			c.Due = due.Time
		}
		c.LastReview = timePtr(lastReview)
		c.AssignedDate = timePtr(assigned)
	}
}

func scanCard(row rowScanner) (models.Card, error) {
	var c models.Card
	dest, finish := cardDest(&c)
	if err := row.Scan(dest...); err != nil {
		return models.Card{}, err
	}
	finish()
	return c, nil
}

func cardQuery(columns []string, f repository.CardFilter) squirrel.SelectBuilder {
	q := sqlBuilder.Select(columns...).
		From("cards c").
		Join("words w ON w.composite_id = c.id").
		Join("groups g ON g.id = w.group_id")

	if len(f.IDs) > 0 {
		q = q.Where(squirrel.Eq{"c.id": f.IDs})
	}
	if len(f.GroupIDs) > 0 {
		q = q.Where(squirrel.Eq{"w.group_id": f.GroupIDs})
	}
	if f.OpenedOnly {
		q = q.Where(squirrel.Eq{"g.opened": true})
	}
	if len(f.States) > 0 {
		states := make([]int, 0, len(f.States))
		for _, s := range f.States {
			states = append(states, int(s))
		}
		q = q.Where(squirrel.Eq{"c.state": states})
	}
	return q.OrderBy("g.position", "g.id", "w.local_id")
}

func (r *cardRepository) Get(ctx context.Context, id string) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: id=%s", id)

	query, args, err := sqlBuilder.Select(cardColumns...).
		From("cards c").
		Where(squirrel.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	c, err := scanCard(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%s", id)
		return nil, repository.ErrNotFound
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, persistErr("get card", err)
	}
	return &c, nil
}

func (r *cardRepository) List(ctx context.Context, f repository.CardFilter) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards: ids=%d, groups=%v, opened_only=%t, states=%v", len(f.IDs), f.GroupIDs, f.OpenedOnly, f.States)

	query, args, err := cardQuery(cardColumns, f).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, persistErr("list cards", err)
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, persistErr("scan card", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("list cards", err)
	}
	log.Debug("found %d cards", len(cards))
	return cards, nil
}

func (r *cardRepository) ListWithWords(ctx context.Context, f repository.CardFilter) ([]models.CardWithWord, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards with words: ids=%d, groups=%v, opened_only=%t", len(f.IDs), f.GroupIDs, f.OpenedOnly)

	columns := append(append([]string{}, cardColumns...), wordColumns...)
	query, args, err := cardQuery(columns, f).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list cards with words: %v", err)
		return nil, persistErr("list cards with words", err)
	}
	defer rows.Close()

	var out []models.CardWithWord
	for rows.Next() {
		var cw models.CardWithWord
		dest, finish := cardDest(&cw.Card)
		w := &cw.Word
		dest = append(dest, &w.CompositeID, &w.GroupID, &w.LocalID, &w.Greek, &w.English, &w.Russian)
		if err := rows.Scan(dest...); err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, persistErr("scan card", err)
		}
		finish()
		out = append(out, cw)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("list cards with words", err)
	}
	log.Debug("found %d cards", len(out))
	return out, nil
}

func (r *cardRepository) Save(ctx context.Context, c models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("saving card: id=%s, state=%s, scheduled_days=%d", c.ID, c.State, c.ScheduledDays)

	if err := r.save(ctx, r.db, c); err != nil {
		log.Error("failed to save card %s: %v", c.ID, err)
		return err
	}
	return nil
}

func (r *cardRepository) save(ctx context.Context, q querier, c models.Card) error {
	query, args, err := sqlBuilder.Insert("cards").
		Columns("id", "state", "due", "stability", "difficulty", "elapsed_days",
			"scheduled_days", "lapses", "reps", "last_review", "assigned_date",
			"learned", "seen").
		Values(c.ID, int(c.State), nullTime(c.Due), c.Stability, c.Difficulty, c.ElapsedDays,
			c.ScheduledDays, c.Lapses, c.Reps, nullTimePtr(c.LastReview), nullTimePtr(c.AssignedDate),
			c.Learned, c.Seen).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
    state = excluded.state,
    due = excluded.due,
    stability = excluded.stability,
    difficulty = excluded.difficulty,
    elapsed_days = excluded.elapsed_days,
    scheduled_days = excluded.scheduled_days,
    lapses = excluded.lapses,
    reps = excluded.reps,
    last_review = excluded.last_review,
    assigned_date = excluded.assigned_date,
    learned = excluded.learned,
    seen = excluded.seen,
    updated_at = CURRENT_TIMESTAMP`).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrNotFound
		}
		return persistErr("save card", err)
	}
	return nil
}

func (r *cardRepository) SaveBatch(ctx context.Context, cards []models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	if len(cards) == 0 {
		return nil
	}
	log.Debug("saving %d cards", len(cards))

	err := inTx(ctx, r.db, func(q querier) error {
		for _, c := range cards {
			if err := r.save(ctx, q, c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to save card batch: %v", err)
	}
	return err
}

func (r *cardRepository) InsertMissing(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("creating cards for words of opened groups")

	res, err := r.db.ExecContext(ctx, `
INSERT INTO cards (id, state)
SELECT w.composite_id, ?
FROM words w
JOIN groups g ON g.id = w.group_id
WHERE g.opened = 1
AND NOT EXISTS (SELECT 1 FROM cards c WHERE c.id = w.composite_id)
`, int(models.StateNew))
	if err != nil {
		log.Error("failed to insert missing cards: %v", err)
		return 0, persistErr("insert missing cards", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, persistErr("insert missing cards", err)
	}
	log.Debug("created %d cards", n)
	return int(n), nil
}

func (r *cardRepository) MarkSeen(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("marking card seen: id=%s", id)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO cards (id, state, seen)
VALUES (?, ?, 1)
ON CONFLICT(id) DO UPDATE SET seen = 1, updated_at = CURRENT_TIMESTAMP
`, id, int(models.StateNew))
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Debug("no word for card: id=%s", id)
			return repository.ErrNotFound
		}
		log.Error("failed to mark card seen: %v", err)
		return persistErr("mark seen", err)
	}
	return nil
}
