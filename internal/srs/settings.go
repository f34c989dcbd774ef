package srs

import "fmt"

// Settings tunes scheduling for one user. The engine treats a
// Settings value as an immutable snapshot; callers decide when a new
// snapshot takes effect, and never mid-session.
type Settings struct {
	// DailyNewItemsLimit caps how many never-reviewed items may be
	// introduced per day. 0 means unlimited. Enforced by whoever
	// creates records, not by Advance.
	DailyNewItemsLimit int
	// DailyReviewLimit caps the length of a built review queue.
	// 0 means unlimited.
	DailyReviewLimit int
	// EaseBonus shifts the ease adjustment on every success.
	EaseBonus float64
	// IntervalMultiplier scales every computed interval.
	IntervalMultiplier float64
	// LapseNewInterval is the fraction of the old interval kept after
	// a lapse.
	LapseNewInterval float64
	// RequiredAccuracy is the per-session accuracy target.
	RequiredAccuracy float64
}

// DefaultSettings returns the scheduling defaults for a new user.
func DefaultSettings() Settings {
	return Settings{
		DailyNewItemsLimit: 20,
		DailyReviewLimit:   100,
		EaseBonus:          0,
		IntervalMultiplier: 1.0,
		LapseNewInterval:   0.5,
		RequiredAccuracy:   0.9,
	}
}

// Validate checks every field against its allowed range.
func (s Settings) Validate() error {
	if s.DailyNewItemsLimit < 0 {
		return fmt.Errorf("daily new items limit must be >= 0, got %d", s.DailyNewItemsLimit)
	}
	if s.DailyReviewLimit < 0 {
		return fmt.Errorf("daily review limit must be >= 0, got %d", s.DailyReviewLimit)
	}
	if s.EaseBonus < -0.2 || s.EaseBonus > 0.2 {
		return fmt.Errorf("ease bonus must be in [-0.2, 0.2], got %g", s.EaseBonus)
	}
	if s.IntervalMultiplier < 0.5 || s.IntervalMultiplier > 2.0 {
		return fmt.Errorf("interval multiplier must be in [0.5, 2.0], got %g", s.IntervalMultiplier)
	}
	if s.LapseNewInterval < 0 || s.LapseNewInterval > 1.0 {
		return fmt.Errorf("lapse new interval must be in [0, 1], got %g", s.LapseNewInterval)
	}
	if s.RequiredAccuracy < 0 || s.RequiredAccuracy > 1.0 {
		return fmt.Errorf("required accuracy must be in [0, 1], got %g", s.RequiredAccuracy)
	}
	return nil
}
