package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ayane/osarai/internal/queue"
	"github.com/ayane/osarai/internal/srs"
)

// timeLayout is RFC3339 with fixed nanosecond width. All timestamps
// are stored in UTC, so the text ordering matches the time ordering
// and SQL comparisons stay correct.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// RecordRepo reads and writes per-item scheduling records.
type RecordRepo struct {
	db *sqlx.DB
}

type recordRow struct {
	ItemID         string  `db:"item_id"`
	Category       string  `db:"category"`
	IntervalDays   float64 `db:"interval_days"`
	EaseFactor     float64 `db:"ease_factor"`
	Repetitions    int     `db:"repetitions"`
	QualityHistory string  `db:"quality_history"`
	LastReviewedAt string  `db:"last_reviewed_at"`
	NextDueAt      string  `db:"next_due_at"`
	CreatedAt      string  `db:"created_at"`
	UpdatedAt      string  `db:"updated_at"`
}

func (r recordRow) toRecord() (*srs.Record, error) {
	var hist []srs.Quality
	if err := json.Unmarshal([]byte(r.QualityHistory), &hist); err != nil {
		return nil, fmt.Errorf("decode quality history for %s/%s: %w", r.Category, r.ItemID, err)
	}
	last, err := parseTime(r.LastReviewedAt)
	if err != nil {
		return nil, fmt.Errorf("parse last_reviewed_at for %s/%s: %w", r.Category, r.ItemID, err)
	}
	due, err := parseTime(r.NextDueAt)
	if err != nil {
		return nil, fmt.Errorf("parse next_due_at for %s/%s: %w", r.Category, r.ItemID, err)
	}
	return &srs.Record{
		IntervalDays:   r.IntervalDays,
		EaseFactor:     r.EaseFactor,
		Repetitions:    r.Repetitions,
		QualityHistory: hist,
		LastReviewedAt: last,
		NextDueAt:      due,
	}, nil
}

const upsertRecord = `
INSERT INTO records (item_id, category, interval_days, ease_factor, repetitions,
                     quality_history, last_reviewed_at, next_due_at, created_at, updated_at)
VALUES (:item_id, :category, :interval_days, :ease_factor, :repetitions,
        :quality_history, :last_reviewed_at, :next_due_at, :created_at, :updated_at)
ON CONFLICT (item_id, category) DO UPDATE SET
	interval_days    = excluded.interval_days,
	ease_factor      = excluded.ease_factor,
	repetitions      = excluded.repetitions,
	quality_history  = excluded.quality_history,
	last_reviewed_at = excluded.last_reviewed_at,
	next_due_at      = excluded.next_due_at,
	updated_at       = excluded.updated_at`

// Upsert inserts or replaces the record for one item. The original
// created_at survives updates; only the scheduling columns move.
func (r *RecordRepo) Upsert(ctx context.Context, itemID string, cat queue.Category, rec srs.Record, now time.Time) error {
	history := rec.QualityHistory
	if history == nil {
		history = []srs.Quality{}
	}
	hist, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encode quality history: %w", err)
	}

	row := recordRow{
		ItemID:         itemID,
		Category:       string(cat),
		IntervalDays:   rec.IntervalDays,
		EaseFactor:     rec.EaseFactor,
		Repetitions:    rec.Repetitions,
		QualityHistory: string(hist),
		LastReviewedAt: formatTime(rec.LastReviewedAt),
		NextDueAt:      formatTime(rec.NextDueAt),
		CreatedAt:      formatTime(now),
		UpdatedAt:      formatTime(now),
	}
	if _, err := r.db.NamedExecContext(ctx, upsertRecord, row); err != nil {
		return fmt.Errorf("upsert record %s/%s: %w", cat, itemID, err)
	}
	return nil
}

// Get returns the record for one item, or nil when the item has never
// been reviewed. An absent record is ordinary, not an error.
func (r *RecordRepo) Get(ctx context.Context, itemID string, cat queue.Category) (*srs.Record, error) {
	var row recordRow
	err := r.db.GetContext(ctx, &row,
		`SELECT * FROM records WHERE item_id = ? AND category = ?`, itemID, string(cat))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load record %s/%s: %w", cat, itemID, err)
	}
	return row.toRecord()
}

// ItemsByCategory loads every record grouped the way the queue
// builder wants its input.
func (r *RecordRepo) ItemsByCategory(ctx context.Context) (map[queue.Category][]queue.Item, error) {
	return r.loadItems(ctx, `SELECT * FROM records ORDER BY category, item_id`)
}

// ItemsForCategory loads a single category's records, still keyed by
// category so the result feeds the queue builder directly.
func (r *RecordRepo) ItemsForCategory(ctx context.Context, cat queue.Category) (map[queue.Category][]queue.Item, error) {
	return r.loadItems(ctx,
		`SELECT * FROM records WHERE category = ? ORDER BY item_id`, string(cat))
}

func (r *RecordRepo) loadItems(ctx context.Context, query string, args ...any) (map[queue.Category][]queue.Item, error) {
	var rows []recordRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	items := make(map[queue.Category][]queue.Item)
	for _, row := range rows {
		rec, err := row.toRecord()
		if err != nil {
			return nil, err
		}
		cat := queue.Category(row.Category)
		items[cat] = append(items[cat], queue.Item{ID: row.ItemID, Rec: rec})
	}
	return items, nil
}

// CountCreatedSince reports how many records were created at or after
// the given time. The due command and the importer use it to enforce
// the daily new-item budget.
func (r *RecordRepo) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM records WHERE created_at >= ?`, formatTime(since))
	if err != nil {
		return 0, fmt.Errorf("count recent records: %w", err)
	}
	return n, nil
}

// DeleteAll wipes every scheduling record.
func (r *RecordRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("delete records: %w", err)
	}
	return nil
}
