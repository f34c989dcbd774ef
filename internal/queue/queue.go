// Package queue turns per-item scheduling records into a prioritized
// review queue: due items only, ordered by urgency of attention,
// capped to the daily review limit, with aggregate counts and an ETA.
package queue

import (
	"fmt"
	"time"

	"github.com/ayane/osarai/internal/srs"
)

// Category names a content family, such as "vocabulary" or "kanji".
// The engine attaches no meaning to the value; categories exist to
// group items and label counts.
type Category string

// Item pairs an item id with its scheduling record. A nil record
// means the item has never been reviewed; such items are never due.
type Item struct {
	ID  string
	Rec *srs.Record
}

// Entry is one position in a built queue. Entries are derived on
// every build and never persisted.
type Entry struct {
	ItemID   string
	Category Category
	Rec      *srs.Record
	Priority float64
	DueAt    time.Time
	Tier     srs.Tier
}

// Urgency summarizes how pressing a set of entries is as a whole.
type Urgency int

const (
	// UrgencyNone means nothing needs attention.
	UrgencyNone Urgency = iota
	// UrgencyUpcoming means something falls due within three days.
	UrgencyUpcoming
	// UrgencyDue means something has come due.
	UrgencyDue
	// UrgencyOverdue means something is more than a day past due.
	UrgencyOverdue
)

var _ fmt.Stringer = UrgencyNone

// String returns the lowercase label for the urgency tier.
func (u Urgency) String() string {
	switch u {
	case UrgencyNone:
		return "none"
	case UrgencyUpcoming:
		return "upcoming"
	case UrgencyDue:
		return "due"
	case UrgencyOverdue:
		return "overdue"
	default:
		return fmt.Sprintf("Urgency(%d)", int(u))
	}
}

// ReviewQueue is the derived review plan for one moment in time. It
// carries no identity across rebuilds: build it, use it, drop it.
type ReviewQueue struct {
	// Entries is ordered highest priority first and already truncated
	// to the daily review limit.
	Entries []Entry
	// Total is len(Entries).
	Total int
	// DuePerCategory counts every due item per category, before the
	// daily limit was applied.
	DuePerCategory map[Category]int
	// Urgency grades the entries that made the cut.
	Urgency Urgency
	// EstimatedMinutes is a pacing estimate for working through the
	// queue, rounded up to whole minutes.
	EstimatedMinutes int
}
