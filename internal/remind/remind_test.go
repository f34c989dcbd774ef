package remind

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ayane/osarai/internal/queue"
	"github.com/ayane/osarai/internal/srs"
)

type fakeSource struct {
	items map[queue.Category][]queue.Item
	err   error
}

func (f *fakeSource) ItemsByCategory(context.Context) (map[queue.Category][]queue.Item, error) {
	return f.items, f.err
}

type fakeNotifier struct {
	calls []queue.ReviewQueue
	err   error
}

func (f *fakeNotifier) Notify(q queue.ReviewQueue) error {
	f.calls = append(f.calls, q)
	return f.err
}

// dueRecord is a record that fell due an hour ago.
func dueRecord() *srs.Record {
	past := time.Now().Add(-time.Hour)
	return &srs.Record{
		IntervalDays:   1,
		EaseFactor:     2.5,
		Repetitions:    1,
		LastReviewedAt: past.Add(-24 * time.Hour),
		NextDueAt:      past,
	}
}

func TestCheckNowNotifiesWhenDue(t *testing.T) {
	src := &fakeSource{items: map[queue.Category][]queue.Item{
		"vocabulary": {{ID: "neko", Rec: dueRecord()}},
	}}
	notifier := &fakeNotifier{}
	r := New(src, notifier, srs.DefaultSettings(), time.Hour)

	if err := r.CheckNow(context.Background()); err != nil {
		t.Fatalf("CheckNow: %v", err)
	}
	if len(notifier.calls) != 1 {
		t.Fatalf("notify calls = %d, want 1", len(notifier.calls))
	}
	if notifier.calls[0].Total != 1 {
		t.Errorf("notified queue total = %d, want 1", notifier.calls[0].Total)
	}
}

func TestCheckNowStaysSilentWhenNothingDue(t *testing.T) {
	future := time.Now().Add(48 * time.Hour)
	src := &fakeSource{items: map[queue.Category][]queue.Item{
		"vocabulary": {
			{ID: "scheduled", Rec: &srs.Record{NextDueAt: future, EaseFactor: 2.5}},
			{ID: "never-reviewed", Rec: nil},
		},
	}}
	notifier := &fakeNotifier{}
	r := New(src, notifier, srs.DefaultSettings(), time.Hour)

	if err := r.CheckNow(context.Background()); err != nil {
		t.Fatalf("CheckNow: %v", err)
	}
	if len(notifier.calls) != 0 {
		t.Errorf("notify calls = %d, want none", len(notifier.calls))
	}
}

func TestCheckNowPropagatesErrors(t *testing.T) {
	srcErr := errors.New("db locked")
	r := New(&fakeSource{err: srcErr}, &fakeNotifier{}, srs.DefaultSettings(), time.Hour)
	if err := r.CheckNow(context.Background()); !errors.Is(err, srcErr) {
		t.Errorf("CheckNow error = %v, want wrapped %v", err, srcErr)
	}

	notifyErr := errors.New("pipe closed")
	src := &fakeSource{items: map[queue.Category][]queue.Item{
		"vocabulary": {{ID: "neko", Rec: dueRecord()}},
	}}
	r = New(src, &fakeNotifier{err: notifyErr}, srs.DefaultSettings(), time.Hour)
	if err := r.CheckNow(context.Background()); !errors.Is(err, notifyErr) {
		t.Errorf("CheckNow error = %v, want wrapped %v", err, notifyErr)
	}
}
