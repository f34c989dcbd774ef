package queue

import (
	"math"
	"sort"
	"time"

	"github.com/ayane/osarai/internal/srs"
)

// secondsPerItem is the fixed pacing assumption behind the ETA.
const secondsPerItem = 8

// Urgency classification windows.
const (
	overdueAfter   = 24 * time.Hour
	upcomingWindow = 72 * time.Hour
)

// Build assembles the cross-category review queue from the supplied
// items: only due items enter, sorted by priority, truncated to
// cfg.DailyReviewLimit (0 keeps everything). The input map and its
// slices are never mutated.
//
// Items whose record is absent are silently excluded; creating
// records for freshly learned items is the caller's responsibility.
func Build(items map[Category][]Item, now time.Time, cfg srs.Settings) ReviewQueue {
	entries, due := collect(items, categoriesOf(items), now)
	return assemble(entries, due, now, cfg)
}

// BuildForCategory is Build restricted to a single category. Due
// counts for every other category are zero.
func BuildForCategory(items map[Category][]Item, cat Category, now time.Time, cfg srs.Settings) ReviewQueue {
	entries, due := collect(items, []Category{cat}, now)
	return assemble(entries, due, now, cfg)
}

// collect walks the given categories in order and gathers an entry
// for every due item, counting due items per category as it goes.
func collect(items map[Category][]Item, cats []Category, now time.Time) ([]Entry, map[Category]int) {
	var entries []Entry
	due := make(map[Category]int)
	for _, cat := range cats {
		for _, it := range items[cat] {
			if !it.Rec.IsDue(now) {
				continue
			}
			entries = append(entries, Entry{
				ItemID:   it.ID,
				Category: cat,
				Rec:      it.Rec,
				Priority: it.Rec.Priority(now),
				DueAt:    it.Rec.NextDueAt,
				Tier:     it.Rec.Tier(),
			})
			due[cat]++
		}
	}
	return entries, due
}

// categoriesOf returns the map's keys in sorted order, so a build
// over the same records always yields the same queue.
func categoriesOf(items map[Category][]Item) []Category {
	cats := make([]Category, 0, len(items))
	for cat := range items {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}

func assemble(entries []Entry, due map[Category]int, now time.Time, cfg srs.Settings) ReviewQueue {
	sortEntries(entries)
	if lim := cfg.DailyReviewLimit; lim > 0 && len(entries) > lim {
		entries = entries[:lim]
	}
	return ReviewQueue{
		Entries:          entries,
		Total:            len(entries),
		DuePerCategory:   due,
		Urgency:          ClassifyUrgency(entries, now),
		EstimatedMinutes: estimateMinutes(len(entries)),
	}
}

// sortEntries orders by priority descending; equal priorities put the
// earlier due date first. The sort is stable beyond those two keys.
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].DueAt.Before(entries[j].DueAt)
	})
}

// ClassifyUrgency grades a set of entries: Overdue when anything sits
// more than a day past due, Due when anything has come due, Upcoming
// when something falls due within the next three days, None otherwise
// (including an empty set).
func ClassifyUrgency(entries []Entry, now time.Time) Urgency {
	u := UrgencyNone
	for _, e := range entries {
		switch {
		case now.Sub(e.DueAt) > overdueAfter:
			return UrgencyOverdue
		case !e.DueAt.After(now):
			if u < UrgencyDue {
				u = UrgencyDue
			}
		case e.DueAt.Sub(now) <= upcomingWindow:
			if u < UrgencyUpcoming {
				u = UrgencyUpcoming
			}
		}
	}
	return u
}

// estimateMinutes converts an entry count into whole minutes at the
// fixed pacing rate, rounding up.
func estimateMinutes(count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Ceil(float64(count*secondsPerItem) / 60.0))
}
