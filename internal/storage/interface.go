package storage

import (
	"time"

	"github.com/julianstephens/streakmate/internal/models"
)

// Provider is the persistence collaborator the engine's callers work against.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByName(name string) (models.Habit, error)
	GetAllHabits() ([]models.Habit, error)
	GetHabitsByStatus(status models.Status) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	// MarkMissed transitions a habit from pending to missed. The write is
	// conditional on the habit still being pending, so a completion that raced
	// with a sweep is never overwritten. Returns false when the transition did
	// not apply.
	MarkMissed(id string, at time.Time) (bool, error)
	// GetMissedBefore returns habits in missed state whose last update is
	// older than the cutoff.
	GetMissedBefore(cutoff time.Time) ([]models.Habit, error)
	// DeleteHabit hard-deletes a habit. Dependent records are cascaded by the
	// caller (best effort), not here.
	DeleteHabit(id string) error

	// Missed-day explanations
	AddMissedEntry(models.MissedEntry) error
	GetMissedEntries(habitID string) ([]models.MissedEntry, error)
	GetAllMissedEntries() ([]models.MissedEntry, error)
	DeleteMissedEntriesForHabit(habitID string) error

	// Restore quota
	GetRestoreQuota(year int, month time.Month) (models.RestoreQuota, error)
	SaveRestoreQuota(models.RestoreQuota) error

	// Notifications
	AddNotification(models.Notification) error
	GetNotifications(unreadOnly bool) ([]models.Notification, error)
	MarkNotificationsRead() error
	DeleteNotificationsForHabit(habitID string) error

	// Utils
	GetConfigPath() string
}
