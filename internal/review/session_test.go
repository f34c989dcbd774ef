package review

import (
	"testing"
	"time"

	"github.com/ayane/osarai/internal/queue"
	"github.com/ayane/osarai/internal/srs"
)

var sessionStart = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// dueEntry builds a queue entry for an item with the given streak,
// due exactly at the session start.
func dueEntry(id string, cat queue.Category, reps int) queue.Entry {
	return queue.Entry{
		ItemID:   id,
		Category: cat,
		Rec: &srs.Record{
			IntervalDays: 1,
			EaseFactor:   2.5,
			Repetitions:  reps,
			NextDueAt:    sessionStart,
		},
		DueAt: sessionStart,
	}
}

func TestStartSnapshotsBatch(t *testing.T) {
	batch := []queue.Entry{dueEntry("inu", "vocabulary", 1)}

	sess := Start(batch, 10, srs.DefaultSettings(), sessionStart)
	batch[0].ItemID = "mutated"

	if sess.Batch[0].ItemID != "inu" {
		t.Errorf("session batch = %q, want the snapshot taken at start", sess.Batch[0].ItemID)
	}
}

func TestStartTruncatesToMaxBatchSize(t *testing.T) {
	batch := []queue.Entry{
		dueEntry("a", "vocabulary", 1),
		dueEntry("b", "vocabulary", 1),
		dueEntry("c", "vocabulary", 1),
		dueEntry("d", "vocabulary", 1),
	}

	sess := Start(batch, 2, srs.DefaultSettings(), sessionStart)

	if len(sess.Batch) != 2 {
		t.Fatalf("len(Batch) = %d, want 2", len(sess.Batch))
	}
	// Order is preserved, never re-sorted.
	if sess.Batch[0].ItemID != "a" || sess.Batch[1].ItemID != "b" {
		t.Errorf("Batch = [%s %s], want [a b]", sess.Batch[0].ItemID, sess.Batch[1].ItemID)
	}
	if sess.Remaining() != 2 {
		t.Errorf("Remaining = %d, want 2", sess.Remaining())
	}
}

func TestStartEmptyBatch(t *testing.T) {
	sess := Start(nil, 5, srs.DefaultSettings(), sessionStart)

	if !sess.IsComplete() {
		t.Error("empty batch should be complete immediately")
	}
	if sess.Current() != nil {
		t.Error("Current should be nil for an empty session")
	}

	st := sess.Stats(sessionStart)
	if st.Total != 0 || st.Accuracy != 0 || st.AvgResponseMs != 0 {
		t.Errorf("empty session stats = %+v, want zeroes", st)
	}
}

func TestStartPanicsOnBadBatchSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Start(maxBatchSize=%d) did not panic", size)
				}
			}()
			Start(nil, size, srs.DefaultSettings(), sessionStart)
		}()
	}
}

func TestStartAssignsDistinctIDs(t *testing.T) {
	a := Start(nil, 1, srs.DefaultSettings(), sessionStart)
	b := Start(nil, 1, srs.DefaultSettings(), sessionStart)

	if a.ID == "" || a.ID == b.ID {
		t.Errorf("session ids %q and %q should be distinct and non-empty", a.ID, b.ID)
	}
}

func TestSubmitSingleItem(t *testing.T) {
	sess := Start([]queue.Entry{dueEntry("inu", "vocabulary", 1)}, 1, srs.DefaultSettings(), sessionStart)

	rec, done := sess.Submit(srs.QualityPerfect, 4000, sessionStart)

	if !done || !sess.IsComplete() {
		t.Error("session should be complete after its only item")
	}
	if rec.Repetitions != 2 {
		t.Errorf("record Repetitions = %d, want 2", rec.Repetitions)
	}

	st := sess.Stats(sessionStart)
	if st.Correct != 1 || st.Incorrect != 0 {
		t.Errorf("correct/incorrect = %d/%d, want 1/0", st.Correct, st.Incorrect)
	}
	if st.Accuracy != 1.0 {
		t.Errorf("Accuracy = %v, want 1.0", st.Accuracy)
	}
}

func TestSubmitTallies(t *testing.T) {
	batch := []queue.Entry{
		dueEntry("a", "vocabulary", 1),
		dueEntry("b", "vocabulary", 1),
		dueEntry("c", "kanji", 1),
	}
	sess := Start(batch, 3, srs.DefaultSettings(), sessionStart)

	sess.Submit(srs.QualityGood, 1000, sessionStart)
	sess.Submit(srs.QualityWrong, 2000, sessionStart)
	sess.Submit(srs.QualityHard, 3000, sessionStart)

	if sess.Correct != 2 || sess.Incorrect != 1 {
		t.Errorf("correct/incorrect = %d/%d, want 2/1", sess.Correct, sess.Incorrect)
	}
	if sess.Correct+sess.Incorrect != len(sess.Done) || len(sess.Done) != sess.Pos {
		t.Error("tallies, completed list, and cursor disagree")
	}
	if sess.ResponseMs != 6000 {
		t.Errorf("ResponseMs = %d, want 6000", sess.ResponseMs)
	}
}

func TestSubmitAdvancesRecord(t *testing.T) {
	sess := Start([]queue.Entry{dueEntry("inu", "vocabulary", 1)}, 1, srs.DefaultSettings(), sessionStart)

	rec, _ := sess.Submit(srs.QualityGood, 500, sessionStart)

	if rec.Repetitions != 2 || rec.IntervalDays != 6 {
		t.Errorf("advanced record = reps %d, interval %v; want reps 2, interval 6",
			rec.Repetitions, rec.IntervalDays)
	}
	if len(sess.Done) != 1 || sess.Done[0].Rec.Repetitions != 2 {
		t.Error("completed list should hold the advanced record")
	}
}

func TestSubmitFirstExposureEntry(t *testing.T) {
	// A batch entry without a record grades as a first exposure.
	entry := queue.Entry{ItemID: "atarashii", Category: "vocabulary"}
	sess := Start([]queue.Entry{entry}, 1, srs.DefaultSettings(), sessionStart)

	rec, _ := sess.Submit(srs.QualityGood, 500, sessionStart)

	if rec.Repetitions != 1 || rec.IntervalDays != 1 {
		t.Errorf("first exposure record = reps %d, interval %v; want 1, 1",
			rec.Repetitions, rec.IntervalDays)
	}
}

func TestSubmitCompletesAfterWholeBatch(t *testing.T) {
	batch := []queue.Entry{
		dueEntry("a", "vocabulary", 1),
		dueEntry("b", "vocabulary", 1),
		dueEntry("c", "vocabulary", 1),
	}
	sess := Start(batch, 3, srs.DefaultSettings(), sessionStart)

	for i := range batch {
		if sess.IsComplete() {
			t.Fatalf("complete after %d of %d submissions", i, len(batch))
		}
		_, done := sess.Submit(srs.QualityGood, 100, sessionStart)
		if want := i == len(batch)-1; done != want {
			t.Errorf("submission %d: done = %v, want %v", i, done, want)
		}
	}

	st := sess.Stats(sessionStart)
	if st.Total != len(batch) {
		t.Errorf("stats Total = %d, want %d", st.Total, len(batch))
	}
}

func TestSubmitPanicsWhenComplete(t *testing.T) {
	sess := Start([]queue.Entry{dueEntry("a", "vocabulary", 1)}, 1, srs.DefaultSettings(), sessionStart)
	sess.Submit(srs.QualityGood, 100, sessionStart)

	defer func() {
		if recover() == nil {
			t.Error("Submit on a complete session did not panic")
		}
	}()
	sess.Submit(srs.QualityGood, 100, sessionStart)
}
