// Package srs holds the spaced repetition core: the per-item
// scheduling record, the SM-2 style advance step that moves a record
// forward after each graded presentation, and the pure classification
// helpers (due-ness, priority, mastery tier) derived from a record.
//
// Nothing in this package performs I/O or reads the clock. Every
// operation takes its reference time as a parameter, so results are
// fully determined by their inputs.
package srs

import "time"

const (
	// MinEase is the floor for EaseFactor. The SM-2 family never lets
	// ease drop below this, or intervals would stop growing.
	MinEase = 1.3

	// InitialEase seeds EaseFactor on first exposure.
	InitialEase = 2.5
)

// Record is the complete scheduling state for one learnable item.
// A nil *Record means the item has never been reviewed.
type Record struct {
	// IntervalDays is the gap between the last review and the next one.
	IntervalDays float64
	// EaseFactor is the growth multiplier for intervals, at least MinEase.
	EaseFactor float64
	// Repetitions counts consecutive successes since the last lapse.
	Repetitions int
	// QualityHistory holds every grade ever recorded, most recent last.
	// It is append-only; no operation rewrites past entries.
	QualityHistory []Quality
	// LastReviewedAt is when the item was last presented.
	LastReviewedAt time.Time
	// NextDueAt is always LastReviewedAt plus the interval, never set
	// independently.
	NextDueAt time.Time
}

// Clone returns a deep copy of the record. The history slice is
// copied, so mutating the clone never touches the original.
func (r *Record) Clone() Record {
	c := *r
	if r.QualityHistory != nil {
		c.QualityHistory = make([]Quality, len(r.QualityHistory))
		copy(c.QualityHistory, r.QualityHistory)
	}
	return c
}
