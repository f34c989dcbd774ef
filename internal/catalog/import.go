// Package catalog brings learnable items into the system. The engine
// never discovers content on its own; this is the collaborator that
// seeds a first-exposure scheduling record when an item is learned.
//
// The one supported source is a workbook: each sheet is a category,
// column A holds item ids, column B an optional learned-at date.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ayane/osarai/internal/queue"
	"github.com/ayane/osarai/internal/srs"
)

// RecordStore is the slice of the persistence layer the importer
// needs. *store.RecordRepo satisfies it.
type RecordStore interface {
	Get(ctx context.Context, itemID string, cat queue.Category) (*srs.Record, error)
	Upsert(ctx context.Context, itemID string, cat queue.Category, rec srs.Record, now time.Time) error
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
}

// Result reports what one import run did.
type Result struct {
	// Created counts new records seeded by this run.
	Created int
	// Skipped counts rows whose item already had a record.
	Skipped int
	// Deferred counts new rows held back by the daily new-item limit.
	Deferred int
	// PerCategory breaks Created down by category.
	PerCategory map[queue.Category]int
	// RowErrors lists rows that could not be read, as "Sheet!row: why".
	// Bad rows never abort the run.
	RowErrors []string
}

// learnedAtLayout is the accepted column-B date format.
const learnedAtLayout = "2006-01-02"

// ImportWorkbook reads the .xlsx at path and seeds a first-exposure
// record for every new item: interval zero, due immediately, ease at
// the initial default. Items that already have a record are skipped.
//
// When cfg.DailyNewItemsLimit is positive, the run creates at most
// that many records beyond those already created since midnight; the
// remainder is reported as deferred, and rerunning tomorrow picks
// them up.
func ImportWorkbook(ctx context.Context, path string, records RecordStore, cfg srs.Settings, now time.Time) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	budget, err := newItemBudget(ctx, records, cfg, now)
	if err != nil {
		return nil, err
	}

	res := &Result{PerCategory: make(map[queue.Category]int)}
	for _, sheet := range f.GetSheetList() {
		cat := queue.Category(strings.ToLower(strings.TrimSpace(sheet)))
		if cat == "" {
			continue
		}
		if err := importSheet(ctx, f, sheet, cat, records, &budget, now, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// newItemBudget computes how many records this run may still create
// today. A negative budget means unlimited.
func newItemBudget(ctx context.Context, records RecordStore, cfg srs.Settings, now time.Time) (int, error) {
	if cfg.DailyNewItemsLimit <= 0 {
		return -1, nil
	}
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	created, err := records.CountCreatedSince(ctx, midnight)
	if err != nil {
		return 0, fmt.Errorf("count today's new items: %w", err)
	}
	remaining := cfg.DailyNewItemsLimit - created
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func importSheet(ctx context.Context, f *excelize.File, sheet string, cat queue.Category, records RecordStore, budget *int, now time.Time, res *Result) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	for i, row := range rows {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		itemID := strings.TrimSpace(row[0])

		learnedAt := now
		if len(row) > 1 && strings.TrimSpace(row[1]) != "" {
			parsed, err := time.ParseInLocation(learnedAtLayout, strings.TrimSpace(row[1]), now.Location())
			if err != nil {
				res.RowErrors = append(res.RowErrors,
					fmt.Sprintf("%s!%d: learned-at %q is not YYYY-MM-DD", sheet, i+1, row[1]))
				continue
			}
			learnedAt = parsed
		}

		existing, err := records.Get(ctx, itemID, cat)
		if err != nil {
			return fmt.Errorf("look up %s/%s: %w", cat, itemID, err)
		}
		if existing != nil {
			res.Skipped++
			continue
		}

		if *budget == 0 {
			res.Deferred++
			continue
		}
		if *budget > 0 {
			*budget--
		}

		if err := records.Upsert(ctx, itemID, cat, newlyLearned(learnedAt), now); err != nil {
			return fmt.Errorf("seed %s/%s: %w", cat, itemID, err)
		}
		res.Created++
		res.PerCategory[cat]++
	}
	return nil
}

// newlyLearned is the first-exposure record: never advanced, due the
// moment it was learned.
func newlyLearned(learnedAt time.Time) srs.Record {
	return srs.Record{
		IntervalDays:   0,
		EaseFactor:     srs.InitialEase,
		Repetitions:    0,
		QualityHistory: []srs.Quality{},
		LastReviewedAt: learnedAt,
		NextDueAt:      learnedAt,
	}
}
