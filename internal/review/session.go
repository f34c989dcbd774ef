// Package review runs a single review session over a fixed batch of
// queue entries: one item at a time, one grade per item, every grade
// fed through the scheduler, with running tallies for the summary.
package review

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ayane/osarai/internal/queue"
	"github.com/ayane/osarai/internal/srs"
)

// Result records one graded presentation within a session.
type Result struct {
	Entry queue.Entry
	// Rec is the advanced record, ready for the caller to persist.
	Rec        srs.Record
	Quality    srs.Quality
	ResponseMs int
}

// Session is an in-flight review pass. The batch is snapshotted at
// start, so later queue rebuilds never touch it. The session has two
// states: in progress while entries remain, complete once every entry
// has been submitted. Complete is terminal.
type Session struct {
	ID    string
	Batch []queue.Entry
	// Pos indexes the entry awaiting a grade. Pos == len(Batch) means
	// the session is complete.
	Pos       int
	Done      []Result
	Correct   int
	Incorrect int
	// ResponseMs accumulates the reported per-item response times.
	ResponseMs int64
	StartedAt  time.Time
	// Settings is the scheduling snapshot for the whole session.
	Settings srs.Settings
}

// Start opens a session over the first maxBatchSize entries of batch.
// The batch must already be filtered and ordered; Start never
// re-sorts. An empty batch yields a session that is complete from the
// start, which is not an error.
//
// Start panics when maxBatchSize is not positive.
func Start(batch []queue.Entry, maxBatchSize int, cfg srs.Settings, now time.Time) *Session {
	if maxBatchSize <= 0 {
		panic(fmt.Sprintf("review: max batch size must be positive, got %d", maxBatchSize))
	}

	n := minInt(maxBatchSize, len(batch))
	snapshot := make([]queue.Entry, n)
	copy(snapshot, batch[:n])

	return &Session{
		ID:        uuid.NewString(),
		Batch:     snapshot,
		StartedAt: now,
		Settings:  cfg,
	}
}

// IsComplete reports whether every entry has been submitted.
func (s *Session) IsComplete() bool {
	return s.Pos >= len(s.Batch)
}

// Current returns the entry awaiting a grade, or nil once complete.
func (s *Session) Current() *queue.Entry {
	if s.IsComplete() {
		return nil
	}
	return &s.Batch[s.Pos]
}

// Remaining counts the entries not yet submitted.
func (s *Session) Remaining() int {
	return len(s.Batch) - s.Pos
}

// Submit grades the current entry: its record advances through the
// scheduler under the session's settings, the tallies update, and the
// cursor moves on. It returns the updated record for the caller to
// persist, and whether the session just completed. Callers must check
// completion after every call before submitting again.
//
// Submit panics on a complete session and on an out-of-range quality.
func (s *Session) Submit(q srs.Quality, responseMs int, now time.Time) (srs.Record, bool) {
	if s.IsComplete() {
		panic("review: submit on a complete session")
	}

	entry := s.Batch[s.Pos]
	rec := srs.Advance(entry.Rec, q, s.Settings, now)

	s.Done = append(s.Done, Result{
		Entry:      entry,
		Rec:        rec,
		Quality:    q,
		ResponseMs: responseMs,
	})
	if q.Passing() {
		s.Correct++
	} else {
		s.Incorrect++
	}
	s.ResponseMs += int64(responseMs)
	s.Pos++

	return rec, s.IsComplete()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
