// Package sweeper runs the background transitions no user action triggers:
// marking overdue pending habits missed and purging habits that stayed missed
// past the retention window.
package sweeper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/streakmate/internal/constants"
	"github.com/julianstephens/streakmate/internal/engine"
	"github.com/julianstephens/streakmate/internal/logger"
	"github.com/julianstephens/streakmate/internal/models"
	"github.com/julianstephens/streakmate/internal/storage"
)

// Summary reports what a sweep or purge pass changed.
type Summary struct {
	Updated []string // habit ids newly marked missed
	Deleted []string // habit ids purged
}

// Options tunes the sweeper's cadence. Zero values fall back to the defaults.
type Options struct {
	SweepInterval time.Duration
	PurgeInterval time.Duration
	Now           func() time.Time
}

type Sweeper struct {
	store         storage.Provider
	now           func() time.Time
	sweepInterval time.Duration
	purgeInterval time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(store storage.Provider, opts Options) *Sweeper {
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = constants.DefaultSweepInterval
	}
	if opts.PurgeInterval <= 0 {
		opts.PurgeInterval = constants.DefaultPurgeInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Sweeper{
		store:         store,
		now:           opts.Now,
		sweepInterval: opts.SweepInterval,
		purgeInterval: opts.PurgeInterval,
	}
}

// Run blocks, sweeping on the sweep cadence and purging on the purge cadence
// until the context is cancelled. Both passes run on the same goroutine, so
// ticks never overlap: a slow pass delays the next one instead of racing it.
func (s *Sweeper) Run(ctx context.Context) error {
	// Catch up immediately; the process may have been down across a midnight
	if _, err := s.SweepOnce(s.now()); err != nil {
		logger.Error("initial sweep failed", "error", err)
	}
	if _, err := s.PurgeOnce(s.now()); err != nil {
		logger.Error("initial purge failed", "error", err)
	}

	sweepTicker := time.NewTicker(s.sweepInterval)
	defer sweepTicker.Stop()
	purgeTicker := time.NewTicker(s.purgeInterval)
	defer purgeTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-sweepTicker.C:
			if _, err := s.SweepOnce(s.now()); err != nil {
				logger.Error("sweep failed", "error", err)
			}
		case <-purgeTicker.C:
			if _, err := s.PurgeOnce(s.now()); err != nil {
				logger.Error("purge failed", "error", err)
			}
		}
	}
}

// Start launches Run on a background goroutine. Stop cancels it and waits.
func (s *Sweeper) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		_ = s.Run(ctx)
	}()
}

func (s *Sweeper) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// SweepOnce marks every pending habit the resolver now considers missed. One
// bad habit never blocks the rest: per-item failures are logged and skipped.
func (s *Sweeper) SweepOnce(now time.Time) (Summary, error) {
	var summary Summary

	habits, err := s.store.GetHabitsByStatus(models.StatusPending)
	if err != nil {
		return summary, fmt.Errorf("failed to list pending habits: %w", err)
	}

	for _, habit := range habits {
		status, err := engine.ResolveStatus(habit, now)
		if err != nil {
			logger.Error("skipping habit with unresolvable status", "habit", habit.Name, "error", err)
			continue
		}
		if status != models.StatusMissed {
			continue
		}

		// Conditional write: a completion that landed since the listing wins
		marked, err := s.store.MarkMissed(habit.ID, now)
		if err != nil {
			logger.Error("failed to mark habit missed", "habit", habit.Name, "error", err)
			continue
		}
		if !marked {
			continue
		}

		summary.Updated = append(summary.Updated, habit.ID)
		s.notify(models.NotificationHabitMissed, habit, fmt.Sprintf("You missed %q today", habit.Name), now)
	}

	return summary, nil
}

// PurgeOnce hard-deletes habits that have been missed, and not restored, for
// longer than the retention window, cascading their dependent records best
// effort.
func (s *Sweeper) PurgeOnce(now time.Time) (Summary, error) {
	var summary Summary

	cutoff := now.Add(-constants.MissedRetention)
	habits, err := s.store.GetMissedBefore(cutoff)
	if err != nil {
		return summary, fmt.Errorf("failed to list stale missed habits: %w", err)
	}

	for _, habit := range habits {
		if err := s.store.DeleteHabit(habit.ID); err != nil {
			logger.Error("failed to purge habit", "habit", habit.Name, "error", err)
			continue
		}
		summary.Deleted = append(summary.Deleted, habit.ID)

		if err := s.store.DeleteMissedEntriesForHabit(habit.ID); err != nil {
			logger.Error("failed to cascade missed entries", "habit", habit.Name, "error", err)
		}
		if err := s.store.DeleteNotificationsForHabit(habit.ID); err != nil {
			logger.Error("failed to cascade notifications", "habit", habit.Name, "error", err)
		}

		s.notify(models.NotificationHabitDeleted, habit,
			fmt.Sprintf("%q was removed after staying missed for more than 24 hours", habit.Name), now)
	}

	return summary, nil
}

// notify appends a notification record, best effort.
func (s *Sweeper) notify(kind models.NotificationKind, habit models.Habit, message string, now time.Time) {
	err := s.store.AddNotification(models.Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		HabitID:   habit.ID,
		HabitName: habit.Name,
		Message:   message,
		CreatedAt: now,
	})
	if err != nil {
		logger.Error("failed to record notification", "habit", habit.Name, "error", err)
	}
}
