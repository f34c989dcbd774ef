package srs

import (
	"fmt"
	"time"
)

// Tier is the coarse mastery classification for one item.
type Tier int

const (
	// TierNew covers items never reviewed or with no success streak.
	TierNew Tier = iota
	// TierLearning covers streaks of one or two successes.
	TierLearning
	// TierReview covers streaks of three to six successes.
	TierReview
	// TierMastered covers long streaks whose recent grades all pass.
	TierMastered
)

// String returns the display name for the tier.
func (t Tier) String() string {
	switch t {
	case TierNew:
		return "New"
	case TierLearning:
		return "Learning"
	case TierReview:
		return "Review"
	case TierMastered:
		return "Mastered"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// Mastery thresholds on the repetition streak.
const (
	learningMaxReps = 2
	reviewMaxReps   = 6
	// masteredStreak is how many recent grades must all pass for a
	// long-streak item to count as mastered.
	masteredStreak = 3
)

// IsDue reports whether the item should be presented now. A nil
// record has never been reviewed and is never due.
func (r *Record) IsDue(now time.Time) bool {
	if r == nil {
		return false
	}
	return !now.Before(r.NextDueAt)
}

// OverdueDays returns how many days past due the record is. Returns 0
// for a nil record or one not yet due.
func (r *Record) OverdueDays(now time.Time) float64 {
	if r == nil || now.Before(r.NextDueAt) {
		return 0
	}
	return now.Sub(r.NextDueAt).Hours() / 24.0
}

// Priority is the queue ordering key: overdue-ness counts double, and
// items with short streaks outrank well-known ones. Higher sorts
// first. A nil record has the lowest priority, 0. Equal priorities
// are ordered by the earlier due date at sort time.
func (r *Record) Priority(now time.Time) float64 {
	if r == nil {
		return 0
	}
	return r.OverdueDays(now)*2 + float64(maxInt(0, 5-r.Repetitions))
}

// Tier classifies the record by its streak. A long streak only counts
// as mastered when the most recent grades (up to masteredStreak of
// them) all pass.
func (r *Record) Tier() Tier {
	switch {
	case r == nil || r.Repetitions == 0:
		return TierNew
	case r.Repetitions <= learningMaxReps:
		return TierLearning
	case r.Repetitions <= reviewMaxReps:
		return TierReview
	}

	hist := r.QualityHistory
	n := minInt(masteredStreak, len(hist))
	for _, q := range hist[len(hist)-n:] {
		if !q.Passing() {
			return TierReview
		}
	}
	return TierMastered
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
