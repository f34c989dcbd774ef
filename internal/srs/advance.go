package srs

import (
	"fmt"
	"math"
	"time"
)

// The first two successful reviews use fixed intervals before the
// ease factor takes over.
const (
	firstInterval  = 1.0
	secondInterval = 6.0
)

// Advance applies one graded presentation to a record and returns the
// next scheduling state. A nil record means first exposure. The input
// record is never mutated, and the returned record carries its own
// history slice.
//
// Advance panics when q is off the 0-5 scale. Validating raw input is
// the caller's job; reaching that panic is a programming error, not a
// data problem.
func Advance(rec *Record, q Quality, cfg Settings, now time.Time) Record {
	if !q.IsValid() {
		panic(fmt.Sprintf("srs: quality %d outside the 0-5 scale", int(q)))
	}

	var next Record
	switch {
	case rec == nil:
		next = firstExposure(q)
	case !q.Passing():
		next = lapse(rec, cfg)
	default:
		next = success(rec, q, cfg)
	}

	next.QualityHistory = appendHistory(rec, q)
	next.LastReviewedAt = now
	next.NextDueAt = now.Add(daysToDuration(next.IntervalDays))
	return next
}

// firstExposure initializes scheduling state for an item never seen
// before. A failed first recall stays due immediately; a successful
// one waits a day. Ease always starts at InitialEase.
func firstExposure(q Quality) Record {
	rec := Record{EaseFactor: InitialEase}
	if q.Passing() {
		rec.Repetitions = 1
		rec.IntervalDays = firstInterval
	}
	return rec
}

// lapse handles a failed recall: the streak resets and the interval
// shrinks by the configured fraction, never below one day. Ease is
// left alone; only the interval pays for a lapse.
func lapse(rec *Record, cfg Settings) Record {
	next := *rec
	next.Repetitions = 0
	next.IntervalDays = math.Max(1, math.Round(rec.IntervalDays*cfg.LapseNewInterval))
	return next
}

// success handles a passing recall: the streak grows, ease adjusts by
// the SM-2 quality curve plus the configured bonus, and the interval
// follows the 1-day, 6-day, then ease-scaled ladder.
func success(rec *Record, q Quality, cfg Settings) Record {
	next := *rec
	next.Repetitions = rec.Repetitions + 1

	miss := 5 - float64(q)
	next.EaseFactor = clampEase(rec.EaseFactor + (0.1 - miss*(0.08+miss*0.02)) + cfg.EaseBonus)

	var interval float64
	switch next.Repetitions {
	case 1:
		interval = firstInterval
	case 2:
		interval = secondInterval
	default:
		interval = rec.IntervalDays * next.EaseFactor
	}
	next.IntervalDays = math.Max(1, math.Round(interval*cfg.IntervalMultiplier))
	return next
}

// appendHistory returns a fresh slice ending with q, leaving the
// source record's history untouched.
func appendHistory(rec *Record, q Quality) []Quality {
	if rec == nil {
		return []Quality{q}
	}
	hist := make([]Quality, 0, len(rec.QualityHistory)+1)
	hist = append(hist, rec.QualityHistory...)
	return append(hist, q)
}

// daysToDuration converts a fractional day count to a duration.
func daysToDuration(d float64) time.Duration {
	return time.Duration(d * 24 * float64(time.Hour))
}

func clampEase(ef float64) float64 {
	if ef < MinEase {
		return MinEase
	}
	return ef
}
