package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ayane/osarai/internal/queue"
)

// CategoryCount is the per-category slice of a logged session.
type CategoryCount struct {
	Reviewed int `json:"reviewed"`
	Correct  int `json:"correct"`
}

// SessionLog is one finished (or abandoned) review session as kept
// for history.
type SessionLog struct {
	SessionID     string
	StartedAt     time.Time
	Duration      time.Duration
	Total         int
	Correct       int
	Incorrect     int
	Accuracy      float64
	AvgResponseMs int64
	Categories    map[queue.Category]CategoryCount
}

// SessionRepo appends and reads session history.
type SessionRepo struct {
	db *sqlx.DB
}

type sessionRow struct {
	SessionID     string  `db:"session_id"`
	StartedAt     string  `db:"started_at"`
	DurationMs    int64   `db:"duration_ms"`
	Total         int     `db:"total"`
	Correct       int     `db:"correct"`
	Incorrect     int     `db:"incorrect"`
	Accuracy      float64 `db:"accuracy"`
	AvgResponseMs int64   `db:"avg_response_ms"`
	Categories    string  `db:"categories"`
}

const insertSession = `
INSERT INTO sessions (session_id, started_at, duration_ms, total, correct,
                      incorrect, accuracy, avg_response_ms, categories)
VALUES (:session_id, :started_at, :duration_ms, :total, :correct,
        :incorrect, :accuracy, :avg_response_ms, :categories)`

// Append stores one session.
func (r *SessionRepo) Append(ctx context.Context, s SessionLog) error {
	cats := s.Categories
	if cats == nil {
		cats = map[queue.Category]CategoryCount{}
	}
	encoded, err := json.Marshal(cats)
	if err != nil {
		return fmt.Errorf("encode session categories: %w", err)
	}

	row := sessionRow{
		SessionID:     s.SessionID,
		StartedAt:     formatTime(s.StartedAt),
		DurationMs:    s.Duration.Milliseconds(),
		Total:         s.Total,
		Correct:       s.Correct,
		Incorrect:     s.Incorrect,
		Accuracy:      s.Accuracy,
		AvgResponseMs: s.AvgResponseMs,
		Categories:    string(encoded),
	}
	if _, err := r.db.NamedExecContext(ctx, insertSession, row); err != nil {
		return fmt.Errorf("append session %s: %w", s.SessionID, err)
	}
	return nil
}

// Recent returns up to limit sessions, newest first.
func (r *SessionRepo) Recent(ctx context.Context, limit int) ([]SessionLog, error) {
	var rows []sessionRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM sessions ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	logs := make([]SessionLog, 0, len(rows))
	for _, row := range rows {
		started, err := parseTime(row.StartedAt)
		if err != nil {
			return nil, fmt.Errorf("parse started_at for %s: %w", row.SessionID, err)
		}
		var cats map[queue.Category]CategoryCount
		if err := json.Unmarshal([]byte(row.Categories), &cats); err != nil {
			return nil, fmt.Errorf("decode categories for %s: %w", row.SessionID, err)
		}
		logs = append(logs, SessionLog{
			SessionID:     row.SessionID,
			StartedAt:     started,
			Duration:      time.Duration(row.DurationMs) * time.Millisecond,
			Total:         row.Total,
			Correct:       row.Correct,
			Incorrect:     row.Incorrect,
			Accuracy:      row.Accuracy,
			AvgResponseMs: row.AvgResponseMs,
			Categories:    cats,
		})
	}
	return logs, nil
}

// DeleteAll wipes the session history.
func (r *SessionRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	return nil
}
