package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ayane/osarai/internal/queue"
	"github.com/ayane/osarai/internal/remind"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run the review reminder in the foreground",
	Long: "Remind checks the review queue on an interval and prints a summary whenever\n" +
		"items are waiting. It runs until interrupted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		every, _ := cmd.Flags().GetDuration("every")
		if every <= 0 {
			return fmt.Errorf("--every must be positive, got %s", every)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		r := remind.New(s.Records, stdoutNotifier{}, cfg.Settings, every)
		if err := r.Start(); err != nil {
			return err
		}
		defer r.Stop()

		log.Printf("reminder running, checking every %s", every)

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		log.Println("reminder stopping")
		return nil
	},
}

func init() {
	remindCmd.Flags().Duration("every", time.Hour, "How often to check the queue")
}

// stdoutNotifier prints the reminder to standard output.
type stdoutNotifier struct{}

func (stdoutNotifier) Notify(q queue.ReviewQueue) error {
	cats := make([]queue.Category, 0, len(q.DuePerCategory))
	for cat := range q.DuePerCategory {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })

	fmt.Printf("[%s] %d item(s) due (%s, ~%d min):",
		time.Now().Format("15:04"), q.Total, q.Urgency, q.EstimatedMinutes)
	for _, cat := range cats {
		fmt.Printf(" %s=%d", cat, q.DuePerCategory[cat])
	}
	fmt.Println()
	return nil
}
