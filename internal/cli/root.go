package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/streakmate/internal/backup"
	"github.com/julianstephens/streakmate/internal/logger"
	"github.com/julianstephens/streakmate/internal/models"
	"github.com/julianstephens/streakmate/internal/service"
	"github.com/julianstephens/streakmate/internal/storage"
)

type Context struct {
	Store   storage.Provider
	Service *service.Service
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// StatusSymbol returns the single-character marker used in listings.
func StatusSymbol(status models.Status) string {
	switch status {
	case models.StatusCompleted:
		return "✓"
	case models.StatusMissed:
		return "✗"
	default:
		return "·"
	}
}

// FormatHabitLine renders one habit for list output.
func FormatHabitLine(habit models.Habit) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", StatusSymbol(habit.Status), habit.Name)
	if habit.Frequency == models.FrequencyWeekly {
		fmt.Fprintf(&b, " (weekly, target %d)", habit.Target)
	}
	if habit.Streak > 0 {
		fmt.Fprintf(&b, "  streak %d", habit.Streak)
	}
	if due := habit.DueTime(); due != "" {
		fmt.Fprintf(&b, "  due %s", due)
	}
	return b.String()
}
