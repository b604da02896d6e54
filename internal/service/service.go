// Package service implements the operations callers perform on habits. It owns
// every mutation of stored habits and delegates all streak and status math to
// the engine, so the persisted Streak and Status fields stay pure caches.
package service

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/streakmate/internal/constants"
	"github.com/julianstephens/streakmate/internal/engine"
	"github.com/julianstephens/streakmate/internal/models"
	"github.com/julianstephens/streakmate/internal/storage"
	"github.com/julianstephens/streakmate/internal/utils"
)

type Service struct {
	store storage.Provider
	now   func() time.Time
}

func New(store storage.Provider) *Service {
	return NewWithClock(store, time.Now)
}

// NewWithClock allows tests to pin the clock.
func NewWithClock(store storage.Provider, now func() time.Time) *Service {
	return &Service{store: store, now: now}
}

// CreateHabit validates and stores a new habit. Daily habits always carry a
// target of 1; only weekly habits have a meaningful target.
func (s *Service) CreateHabit(habit models.Habit) (models.Habit, error) {
	if habit.Frequency == models.FrequencyDaily {
		habit.Target = 1
	}
	if err := habit.Validate(); err != nil {
		return models.Habit{}, err
	}

	if _, err := s.store.GetHabitByName(habit.Name); err == nil {
		return models.Habit{}, fmt.Errorf("habit %q already exists", habit.Name)
	}

	now := s.now()
	habit.ID = uuid.NewString()
	habit.CreatedAt = now
	habit.UpdatedAt = now

	habit, err := s.recompute(habit, now)
	if err != nil {
		return models.Habit{}, err
	}

	if err := s.store.AddHabit(habit); err != nil {
		return models.Habit{}, fmt.Errorf("failed to save habit: %w", err)
	}
	return habit, nil
}

// GetHabit resolves a habit by id or name and returns it with freshly computed
// streak and status.
func (s *Service) GetHabit(ref string) (models.Habit, error) {
	habit, err := s.findHabit(ref)
	if err != nil {
		return models.Habit{}, err
	}
	return s.refresh(habit)
}

// ListHabits returns all habits with freshly computed streak and status.
func (s *Service) ListHabits() ([]models.Habit, error) {
	habits, err := s.store.GetAllHabits()
	if err != nil {
		return nil, err
	}

	for i, habit := range habits {
		habits[i], err = s.refresh(habit)
		if err != nil {
			return nil, err
		}
	}
	return habits, nil
}

// Complete records a completion for the given date (today when empty). Marking
// an already completed date is a no-op.
func (s *Service) Complete(ref, date string) (models.Habit, error) {
	return s.setCompletion(ref, date, true)
}

// Uncomplete removes a completion for the given date (today when empty).
func (s *Service) Uncomplete(ref, date string) (models.Habit, error) {
	return s.setCompletion(ref, date, false)
}

func (s *Service) setCompletion(ref, date string, done bool) (models.Habit, error) {
	habit, err := s.findHabit(ref)
	if err != nil {
		return models.Habit{}, err
	}

	now := s.now()
	if date == "" {
		date = utils.Today(now)
	} else if _, err := utils.ParseDate(date); err != nil {
		return models.Habit{}, err
	}

	if done {
		if !slices.Contains(habit.CompletedDates, date) {
			habit.CompletedDates = append(habit.CompletedDates, date)
			slices.Sort(habit.CompletedDates)
		}
	} else {
		habit.CompletedDates = slices.DeleteFunc(habit.CompletedDates, func(d string) bool {
			return d == date
		})
	}

	habit.UpdatedAt = now
	habit, err = s.recompute(habit, now)
	if err != nil {
		return models.Habit{}, err
	}

	if err := s.store.UpdateHabit(habit); err != nil {
		return models.Habit{}, fmt.Errorf("failed to save habit: %w", err)
	}
	return habit, nil
}

// DeleteHabit removes a habit together with its explanation and notification
// records.
func (s *Service) DeleteHabit(ref string) error {
	habit, err := s.findHabit(ref)
	if err != nil {
		return err
	}

	if err := s.store.DeleteHabit(habit.ID); err != nil {
		return err
	}
	if err := s.store.DeleteMissedEntriesForHabit(habit.ID); err != nil {
		return fmt.Errorf("failed to delete missed entries for %q: %w", habit.Name, err)
	}
	if err := s.store.DeleteNotificationsForHabit(habit.ID); err != nil {
		return fmt.Errorf("failed to delete notifications for %q: %w", habit.Name, err)
	}
	return nil
}

// Restore spends one of the month's restore chances to move a habit out of
// missed state. The habit gets a grace day: it will not be re-marked missed
// until tomorrow.
func (s *Service) Restore(ref string) (models.Habit, models.RestoreQuota, error) {
	habit, err := s.findHabit(ref)
	if err != nil {
		return models.Habit{}, models.RestoreQuota{}, err
	}

	now := s.now()
	today := utils.Today(now)

	if slices.Contains(habit.CompletedDates, today) {
		return models.Habit{}, models.RestoreQuota{},
			fmt.Errorf("habit %q is already completed today, nothing to restore", habit.Name)
	}

	quota, err := s.store.GetRestoreQuota(now.Year(), now.Month())
	if err != nil {
		return models.Habit{}, models.RestoreQuota{}, err
	}
	if quota.Remaining(constants.MonthlyRestoreQuota) <= 0 {
		return models.Habit{}, models.RestoreQuota{},
			fmt.Errorf("no restore chances left this month (%d of %d used)",
				quota.UsedChances, constants.MonthlyRestoreQuota)
	}

	habit.Status = models.StatusPending
	habit.RestoredOn = today
	habit.UpdatedAt = now
	if err := s.store.UpdateHabit(habit); err != nil {
		return models.Habit{}, models.RestoreQuota{}, fmt.Errorf("failed to save habit: %w", err)
	}

	quota.UsedChances++
	if err := s.store.SaveRestoreQuota(quota); err != nil {
		return models.Habit{}, models.RestoreQuota{}, fmt.Errorf("failed to save restore quota: %w", err)
	}

	return habit, quota, nil
}

// RestoreQuota returns the current month's quota state.
func (s *Service) RestoreQuota() (models.RestoreQuota, error) {
	now := s.now()
	return s.store.GetRestoreQuota(now.Year(), now.Month())
}

// AddMissedEntry records an explanation for a missed day. Habits created today
// or yesterday cannot have missed a day yet, so entries for them are refused.
func (s *Service) AddMissedEntry(ref, explanation string) (models.MissedEntry, error) {
	habit, err := s.findHabit(ref)
	if err != nil {
		return models.MissedEntry{}, err
	}

	now := s.now()
	yesterday := utils.DateOnly(now).AddDate(0, 0, -1)
	if !utils.DateOnly(habit.CreatedAt).Before(yesterday) {
		return models.MissedEntry{}, fmt.Errorf("habit %q is too new to have a missed day", habit.Name)
	}

	entry := models.MissedEntry{
		ID:          uuid.NewString(),
		HabitID:     habit.ID,
		HabitName:   habit.Name,
		Explanation: explanation,
		CreatedAt:   now,
	}
	if err := entry.Validate(); err != nil {
		return models.MissedEntry{}, err
	}

	if err := s.store.AddMissedEntry(entry); err != nil {
		return models.MissedEntry{}, fmt.Errorf("failed to save missed entry: %w", err)
	}
	return entry, nil
}

// MissedEntries returns the explanation history for one habit, newest first.
func (s *Service) MissedEntries(ref string) ([]models.MissedEntry, error) {
	habit, err := s.findHabit(ref)
	if err != nil {
		return nil, err
	}
	return s.store.GetMissedEntries(habit.ID)
}

// AllMissedEntries returns every explanation record, newest first.
func (s *Service) AllMissedEntries() ([]models.MissedEntry, error) {
	return s.store.GetAllMissedEntries()
}

// Notifications returns stored notification records, newest first.
func (s *Service) Notifications(unreadOnly bool) ([]models.Notification, error) {
	return s.store.GetNotifications(unreadOnly)
}

// MarkNotificationsRead marks every unread notification as read.
func (s *Service) MarkNotificationsRead() error {
	return s.store.MarkNotificationsRead()
}

// HasStreakAtLeast reports whether the habit's current streak has reached the
// given length.
func (s *Service) HasStreakAtLeast(ref string, length int) (bool, error) {
	habit, err := s.GetHabit(ref)
	if err != nil {
		return false, err
	}
	return habit.Streak >= length, nil
}

// findHabit resolves a reference that may be an id or a name.
func (s *Service) findHabit(ref string) (models.Habit, error) {
	habit, err := s.store.GetHabit(ref)
	if err == nil {
		return habit, nil
	}
	habit, err = s.store.GetHabitByName(ref)
	if err != nil {
		return models.Habit{}, fmt.Errorf("habit not found: %s", ref)
	}
	return habit, nil
}

// recompute derives streak and status from the completion history.
func (s *Service) recompute(habit models.Habit, now time.Time) (models.Habit, error) {
	streak, err := engine.ComputeStreak(habit.CompletedDates, habit.Frequency, habit.Target, now)
	if err != nil {
		return models.Habit{}, err
	}
	status, err := engine.ResolveStatus(habit, now)
	if err != nil {
		return models.Habit{}, err
	}

	habit.Streak = streak
	habit.Status = status
	return habit, nil
}

// refresh recomputes a stored habit's derived fields and persists them when
// they changed.
func (s *Service) refresh(habit models.Habit) (models.Habit, error) {
	fresh, err := s.recompute(habit, s.now())
	if err != nil {
		return models.Habit{}, err
	}

	if fresh.Streak != habit.Streak || fresh.Status != habit.Status {
		fresh.UpdatedAt = s.now()
		if err := s.store.UpdateHabit(fresh); err != nil {
			return models.Habit{}, fmt.Errorf("failed to save habit: %w", err)
		}
	}
	return fresh, nil
}
