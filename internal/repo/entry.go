package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/tanviarora/moodlog-backend/internal/models"
)

// EntryRepo provides access to the entries table. Entries are append-only:
// there are no update or delete statements here on purpose.
//
// Read order is pinned explicitly in every query so the aggregators'
// first-encountered tie-breaks do not depend on incidental storage order:
// ascending (created_at, id) for time-forward feeds, descending for
// recency-first feeds.
type EntryRepo struct {
	DB *sql.DB
}

func NewEntryRepo(db *sql.DB) *EntryRepo {
	return &EntryRepo{DB: db}
}

// EmotionRow is the slim projection the analytics aggregators consume.
type EmotionRow struct {
	CreatedAt time.Time
	Emotion   string
}

// Create inserts one entry and returns the stored row (with the DB timestamp).
func (r *EntryRepo) Create(ctx context.Context, e *models.Entry) (*models.Entry, error) {
	query := `
		INSERT INTO entries (id, user_id, content, emotion, specific_emotion, suggestion)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		uuid.New(), e.UserID, e.Content, e.Emotion, nullable(e.SpecificEmotion), e.Suggestion).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ListRecent returns the newest entries first, capped at limit.
func (r *EntryRepo) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.Entry, error) {
	query := `
		SELECT id, user_id, content, emotion, COALESCE(specific_emotion, ''), suggestion, created_at
		FROM entries
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	return r.list(ctx, query, userID, limit)
}

// ListWindow returns entries with created_at in [from, to), newest first.
func (r *EntryRepo) ListWindow(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.Entry, error) {
	query := `
		SELECT id, user_id, content, emotion, COALESCE(specific_emotion, ''), suggestion, created_at
		FROM entries
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at DESC, id DESC
	`
	return r.list(ctx, query, userID, from, to)
}

// CountByEmotion counts entries per category within [from, to).
// Categories with no entries simply stay zero.
func (r *EntryRepo) CountByEmotion(ctx context.Context, userID uuid.UUID, from, to time.Time) (map[string]int, error) {
	query := `
		SELECT emotion, COUNT(*)
		FROM entries
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		GROUP BY emotion
	`

	rows, err := r.DB.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{
		models.EmotionPositive: 0,
		models.EmotionNegative: 0,
		models.EmotionNeutral:  0,
	}
	for rows.Next() {
		var emotion string
		var c int
		if err := rows.Scan(&emotion, &c); err != nil {
			return nil, err
		}
		counts[emotion] = c
	}
	return counts, rows.Err()
}

// EmotionsAsc returns (created_at, emotion) pairs in [from, to), oldest first.
// Feeds the calendar aggregator, whose tie-break is first-encountered order.
func (r *EntryRepo) EmotionsAsc(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]EmotionRow, error) {
	query := `
		SELECT created_at, emotion
		FROM entries
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at ASC, id ASC
	`
	return r.emotions(ctx, query, userID, from, to)
}

// EmotionsDesc returns every (created_at, emotion) pair for the user,
// newest first. Feeds the streak and badge computation.
func (r *EntryRepo) EmotionsDesc(ctx context.Context, userID uuid.UUID) ([]EmotionRow, error) {
	query := `
		SELECT created_at, emotion
		FROM entries
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	return r.emotions(ctx, query, userID)
}

// ContentsAsc returns every stored content blob for the user, oldest first.
// Feeds the word cloud, which decrypts and tokenizes in memory.
func (r *EntryRepo) ContentsAsc(ctx context.Context, userID uuid.UUID) ([]string, error) {
	query := `
		SELECT content
		FROM entries
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contents []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, err
		}
		contents = append(contents, content)
	}
	return contents, rows.Err()
}

func (r *EntryRepo) list(ctx context.Context, query string, args ...interface{}) ([]models.Entry, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Content, &e.Emotion, &e.SpecificEmotion, &e.Suggestion, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *EntryRepo) emotions(ctx context.Context, query string, args ...interface{}) ([]EmotionRow, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EmotionRow
	for rows.Next() {
		var row EmotionRow
		if err := rows.Scan(&row.CreatedAt, &row.Emotion); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
