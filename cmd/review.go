package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ayane/osarai/internal/queue"
	"github.com/ayane/osarai/internal/review"
	"github.com/ayane/osarai/internal/srs"
	"github.com/ayane/osarai/internal/store"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Run an interactive review session",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		limit, _ := cmd.Flags().GetInt("limit")

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
			fmt.Println("Nothing due — come back later.")
			return nil
		}

		batchSize := q.Total
		if limit > 0 && limit < batchSize {
			batchSize = limit
		}

		sess := review.Start(q.Entries, batchSize, cfg.Settings, now)
		fmt.Printf("Reviewing %d item(s). Grade each recall 0-5 (3+ is a pass), q to quit.\n\n",
			len(sess.Batch))

		if err := runSession(ctx, sess, s.Records, bufio.NewReader(os.Stdin)); err != nil {
			return err
		}

		stats := sess.Stats(time.Now())
		printSessionStats(stats)

		if err := logSession(ctx, s.Sessions, sess, stats); err != nil {
			return fmt.Errorf("record session: %w", err)
		}
		return nil
	},
}

func init() {
	reviewCmd.Flags().String("category", "", "Restrict to one category")
	reviewCmd.Flags().Int("limit", 0, "Max items this session (0 = whole queue)")
}

// runSession walks the batch, one prompt per item. Each updated record
// is persisted before the next prompt, so quitting mid-session loses
// nothing already graded.
func runSession(ctx context.Context, sess *review.Session, records *store.RecordRepo, in *bufio.Reader) error {
	for !sess.IsComplete() {
		entry := sess.Current()
		fmt.Printf("[%d/%d] %s  (%s, %s)\n",
			sess.Pos+1, len(sess.Batch), entry.ItemID, entry.Category, entry.Tier)

		asked := time.Now()
		q, quit, err := promptQuality(in)
		if err != nil {
			return err
		}
		if quit {
			fmt.Println("Session stopped early.")
			return nil
		}
		responseMs := int(time.Since(asked).Milliseconds())

		now := time.Now()
		rec, _ := sess.Submit(q, responseMs, now)
		if err := records.Upsert(ctx, entry.ItemID, entry.Category, rec, now); err != nil {
			return fmt.Errorf("save record %s/%s: %w", entry.Category, entry.ItemID, err)
		}

		fmt.Printf("  → next review in %.0f day(s)\n\n", rec.IntervalDays)
	}
	return nil
}

// promptQuality reads one grade, re-prompting until the input is a
// valid 0-5 or q.
func promptQuality(in *bufio.Reader) (srs.Quality, bool, error) {
	for {
		fmt.Print("Recall (0-5): ")
		line, err := in.ReadString('\n')
		if err == io.EOF {
			return 0, true, nil
		}
		if err != nil {
			return 0, false, fmt.Errorf("read input: %w", err)
		}

		answer := strings.TrimSpace(line)
		if answer == "q" || answer == "quit" {
			return 0, true, nil
		}

		n, err := strconv.Atoi(answer)
		if err != nil || !srs.Quality(n).IsValid() {
			fmt.Println("Enter a whole number from 0 to 5, or q to quit.")
			continue
		}
		return srs.Quality(n), false, nil
	}
}

func printSessionStats(stats review.Stats) {
	if stats.Total == 0 {
		return
	}

	fmt.Printf("Done: %d reviewed, %d correct, %d missed — %.0f%% accuracy\n",
		stats.Total, stats.Correct, stats.Incorrect, stats.Accuracy*100)
	fmt.Printf("Average response %.1fs, session took %s\n",
		float64(stats.AvgResponseMs)/1000, stats.Duration.Round(time.Second))

	cats := make([]queue.Category, 0, len(stats.PerCategory))
	for cat := range stats.PerCategory {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	for _, cat := range cats {
		cs := stats.PerCategory[cat]
		fmt.Printf("  %s: %d/%d\n", cat, cs.Correct, cs.Reviewed)
	}

	if target := cfg.Settings.RequiredAccuracy; target > 0 {
		if stats.Accuracy >= target {
			fmt.Printf("Accuracy target met (%.0f%%).\n", target*100)
		} else {
			fmt.Printf("Below the %.0f%% accuracy target — these items will come back soon.\n", target*100)
		}
	}
}

// logSession appends the session to history. Abandoned sessions are
// logged too, with whatever was completed.
func logSession(ctx context.Context, sessions *store.SessionRepo, sess *review.Session, stats review.Stats) error {
	if stats.Total == 0 {
		return nil
	}

	cats := make(map[queue.Category]store.CategoryCount, len(stats.PerCategory))
	for cat, cs := range stats.PerCategory {
		cats[cat] = store.CategoryCount{Reviewed: cs.Reviewed, Correct: cs.Correct}
	}

	return sessions.Append(ctx, store.SessionLog{
		SessionID:     sess.ID,
		StartedAt:     sess.StartedAt,
		Duration:      stats.Duration,
		Total:         stats.Total,
		Correct:       stats.Correct,
		Incorrect:     stats.Incorrect,
		Accuracy:      stats.Accuracy,
		AvgResponseMs: stats.AvgResponseMs,
		Categories:    cats,
	})
}
