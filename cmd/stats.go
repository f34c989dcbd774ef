package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ayane/osarai/internal/srs"
	"github.com/ayane/osarai/internal/store"
)

// recentSessionCount is how many past sessions `stats` shows.
const recentSessionCount = 10

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recent sessions and mastery progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()

		logs, err := s.Sessions.Recent(ctx, recentSessionCount)
		if err != nil {
			return err
		}
		if len(logs) == 0 {
			fmt.Println("No sessions yet.")
		} else {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tREVIEWED\tACCURACY\tAVG RESPONSE\tDURATION")
			for _, l := range logs {
				fmt.Fprintf(w, "%s\t%d\t%.0f%%\t%.1fs\t%s\n",
					l.StartedAt.Local().Format("2006-01-02 15:04"),
					l.Total,
					l.Accuracy*100,
					float64(l.AvgResponseMs)/1000,
					l.Duration.Round(time.Second))
			}
			w.Flush()
		}

		return printTierDistribution(ctx, s.Records)
	},
}

// printTierDistribution counts every tracked item by mastery tier.
func printTierDistribution(ctx context.Context, records *store.RecordRepo) error {
	items, err := records.ItemsByCategory(ctx)
	if err != nil {
		return err
	}

	counts := make(map[srs.Tier]int)
	total := 0
	for _, list := range items {
		for _, it := range list {
			counts[it.Rec.Tier()]++
			total++
		}
	}

	if total == 0 {
		fmt.Println("No items tracked yet. Run `osarai import` to add some.")
		return nil
	}

	fmt.Printf("\n%d item(s) tracked:\n", total)
	for _, tier := range []srs.Tier{srs.TierNew, srs.TierLearning, srs.TierReview, srs.TierMastered} {
		if n := counts[tier]; n > 0 {
			fmt.Printf("  %s: %d\n", tier, n)
		}
	}
	return nil
}
