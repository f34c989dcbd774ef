package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ayane/osarai/internal/queue"
	"github.com/ayane/osarai/internal/store"
)

// maxListedEntries caps how many queue positions `due` prints; the
// totals above the list always cover the whole queue.
const maxListedEntries = 15

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "Show what is waiting for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		now := time.Now()

		q, err := buildQueue(ctx, s.Records, category, now)
		if err != nil {
			return err
		}

		if q.Total == 0 {
			fmt.Println("Nothing due. Urgency:", q.Urgency)
		} else {
			fmt.Printf("%d item(s) to review — urgency %s, about %d min\n",
				q.Total, q.Urgency, q.EstimatedMinutes)
		}

		printDueCounts(q.DuePerCategory)
		printEntries(q.Entries, now)

		return printNewItemBudget(ctx, s.Records, now)
	},
}

func init() {
	dueCmd.Flags().String("category", "", "Restrict to one category")
}

// buildQueue loads records and builds the cross-category queue, or a
// single-category one when category is non-empty.
func buildQueue(ctx context.Context, records *store.RecordRepo, category string, now time.Time) (queue.ReviewQueue, error) {
	if category != "" {
		cat := queue.Category(category)
		items, err := records.ItemsForCategory(ctx, cat)
		if err != nil {
			return queue.ReviewQueue{}, err
		}
		return queue.BuildForCategory(items, cat, now, cfg.Settings), nil
	}

	items, err := records.ItemsByCategory(ctx)
	if err != nil {
		return queue.ReviewQueue{}, err
	}
	return queue.Build(items, now, cfg.Settings), nil
}

func printDueCounts(due map[queue.Category]int) {
	if len(due) == 0 {
		return
	}
	cats := make([]queue.Category, 0, len(due))
	for cat := range due {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\nCATEGORY\tDUE")
	for _, cat := range cats {
		fmt.Fprintf(w, "%s\t%d\n", cat, due[cat])
	}
	w.Flush()
}

func printEntries(entries []queue.Entry, now time.Time) {
	if len(entries) == 0 {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\nITEM\tCATEGORY\tTIER\tOVERDUE\tPRIORITY")
	for i, e := range entries {
		if i == maxListedEntries {
			fmt.Fprintf(w, "... and %d more\t\t\t\t\n", len(entries)-maxListedEntries)
			break
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1fd\t%.1f\n",
			e.ItemID, e.Category, e.Tier, e.Rec.OverdueDays(now), e.Priority)
	}
	w.Flush()
}

// printNewItemBudget reports how many new items may still be
// introduced today under the daily limit.
func printNewItemBudget(ctx context.Context, records *store.RecordRepo, now time.Time) error {
	limit := cfg.Settings.DailyNewItemsLimit
	if limit <= 0 {
		return nil
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	created, err := records.CountCreatedSince(ctx, midnight)
	if err != nil {
		return fmt.Errorf("count today's new items: %w", err)
	}
	remaining := limit - created
	if remaining < 0 {
		remaining = 0
	}
	fmt.Printf("\nNew-item budget today: %d of %d remaining\n", remaining, limit)
	return nil
}
