package review

import (
	"reflect"
	"testing"
	"time"

	"github.com/ayane/osarai/internal/queue"
	"github.com/ayane/osarai/internal/srs"
)

func TestStatsAveragesAndDuration(t *testing.T) {
	batch := []queue.Entry{
		dueEntry("a", "vocabulary", 1),
		dueEntry("b", "vocabulary", 1),
	}
	sess := Start(batch, 2, srs.DefaultSettings(), sessionStart)
	sess.Submit(srs.QualityGood, 1000, sessionStart)
	sess.Submit(srs.QualityWrong, 2000, sessionStart)

	st := sess.Stats(sessionStart.Add(5 * time.Minute))

	if st.Total != 2 || st.Correct != 1 || st.Incorrect != 1 {
		t.Errorf("totals = %d/%d/%d, want 2/1/1", st.Total, st.Correct, st.Incorrect)
	}
	if st.Accuracy != 0.5 {
		t.Errorf("Accuracy = %v, want 0.5", st.Accuracy)
	}
	if st.AvgResponseMs != 1500 {
		t.Errorf("AvgResponseMs = %d, want 1500", st.AvgResponseMs)
	}
	if st.Duration != 5*time.Minute {
		t.Errorf("Duration = %v, want 5m", st.Duration)
	}
}

func TestStatsPerCategory(t *testing.T) {
	batch := []queue.Entry{
		dueEntry("inu", "vocabulary", 1),
		dueEntry("neko", "vocabulary", 1),
		dueEntry("mizu", "kanji", 1),
	}
	sess := Start(batch, 3, srs.DefaultSettings(), sessionStart)
	sess.Submit(srs.QualityGood, 100, sessionStart)
	sess.Submit(srs.QualityWrong, 100, sessionStart)
	sess.Submit(srs.QualityPerfect, 100, sessionStart)

	st := sess.Stats(sessionStart)

	want := map[queue.Category]CategoryStats{
		"vocabulary": {Reviewed: 2, Correct: 1},
		"kanji":      {Reviewed: 1, Correct: 1},
	}
	if !reflect.DeepEqual(st.PerCategory, want) {
		t.Errorf("PerCategory = %v, want %v", st.PerCategory, want)
	}
}

func TestStatsLastGradeWinsPerItem(t *testing.T) {
	// The same item twice in one batch: the breakdown counts it once,
	// judged by the final grade.
	e := dueEntry("inu", "vocabulary", 1)
	sess := Start([]queue.Entry{e, e}, 2, srs.DefaultSettings(), sessionStart)
	sess.Submit(srs.QualityWrong, 100, sessionStart)
	sess.Submit(srs.QualityPerfect, 100, sessionStart)

	st := sess.Stats(sessionStart)

	if st.Total != 2 {
		t.Errorf("Total = %d, want 2 submissions", st.Total)
	}
	got := st.PerCategory["vocabulary"]
	if got.Reviewed != 1 || got.Correct != 1 {
		t.Errorf("vocabulary breakdown = %+v, want Reviewed 1, Correct 1", got)
	}
}

func TestStatsIdempotent(t *testing.T) {
	sess := Start([]queue.Entry{dueEntry("a", "vocabulary", 1)}, 1, srs.DefaultSettings(), sessionStart)
	sess.Submit(srs.QualityGood, 750, sessionStart)

	at := sessionStart.Add(time.Minute)
	first := sess.Stats(at)
	second := sess.Stats(at)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Stats not idempotent: %+v vs %+v", first, second)
	}
}
