// Package remind runs the background reminder: on a fixed interval it
// rebuilds the review queue and, when anything is waiting, hands the
// queue to a notifier. The engine stays clock-free; this package is
// where time.Now enters.
package remind

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/ayane/osarai/internal/queue"
	"github.com/ayane/osarai/internal/srs"
)

// Source supplies the current scheduling records grouped for the
// queue builder. *store.RecordRepo satisfies it.
type Source interface {
	ItemsByCategory(ctx context.Context) (map[queue.Category][]queue.Item, error)
}

// Notifier delivers a non-empty review queue to the user.
type Notifier interface {
	Notify(q queue.ReviewQueue) error
}

// Reminder periodically checks for due reviews.
type Reminder struct {
	scheduler *gocron.Scheduler
	src       Source
	notifier  Notifier
	cfg       srs.Settings
	every     time.Duration
}

// New builds a reminder that checks every interval. The first check
// fires as soon as Start is called.
func New(src Source, notifier Notifier, cfg srs.Settings, every time.Duration) *Reminder {
	return &Reminder{
		scheduler: gocron.NewScheduler(time.UTC),
		src:       src,
		notifier:  notifier,
		cfg:       cfg,
		every:     every,
	}
}

// Start schedules the periodic check and returns; the scheduler runs
// on its own goroutine until Stop.
func (r *Reminder) Start() error {
	_, err := r.scheduler.Every(r.every).StartImmediately().Do(func() {
		if err := r.CheckNow(context.Background()); err != nil {
			log.Printf("reminder check failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule reminder: %w", err)
	}
	r.scheduler.StartAsync()
	return nil
}

// Stop halts the periodic checks. A check already in flight finishes.
func (r *Reminder) Stop() {
	r.scheduler.Stop()
}

// CheckNow performs one check: load records, build the queue, notify
// when it is non-empty. An empty queue is silence, not a notification.
func (r *Reminder) CheckNow(ctx context.Context) error {
	items, err := r.src.ItemsByCategory(ctx)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	q := queue.Build(items, time.Now(), r.cfg)
	if q.Total == 0 {
		return nil
	}

	if err := r.notifier.Notify(q); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}
