package review

import (
	"time"

	"github.com/ayane/osarai/internal/queue"
	"github.com/ayane/osarai/internal/srs"
)

// CategoryStats is one category's slice of a session summary.
type CategoryStats struct {
	Reviewed int
	Correct  int
}

// Stats summarizes a session at one moment. Zero totals produce zero
// accuracy and averages, never a division by zero.
type Stats struct {
	Total         int
	Correct       int
	Incorrect     int
	Accuracy      float64
	AvgResponseMs int64
	Duration      time.Duration
	PerCategory   map[queue.Category]CategoryStats
}

// Stats projects the session's tallies without mutating anything, so
// repeated calls with the same now return identical values. The
// per-category correctness is re-derived from the last grade recorded
// per item: if one item were queued twice in a session it counts
// once, by its final grade.
func (s *Session) Stats(now time.Time) Stats {
	st := Stats{
		Total:       len(s.Done),
		Correct:     s.Correct,
		Incorrect:   s.Incorrect,
		Duration:    now.Sub(s.StartedAt),
		PerCategory: make(map[queue.Category]CategoryStats),
	}
	if st.Total > 0 {
		st.Accuracy = float64(st.Correct) / float64(st.Total)
		st.AvgResponseMs = s.ResponseMs / int64(st.Total)
	}

	type itemKey struct {
		cat queue.Category
		id  string
	}
	last := make(map[itemKey]srs.Quality)
	for _, res := range s.Done {
		last[itemKey{res.Entry.Category, res.Entry.ItemID}] = res.Quality
	}
	for key, q := range last {
		cs := st.PerCategory[key.cat]
		cs.Reviewed++
		if q.Passing() {
			cs.Correct++
		}
		st.PerCategory[key.cat] = cs
	}
	return st
}
