package engine

import (
	"fmt"
	"time"

	"github.com/julianstephens/streakmate/internal/constants"
	"github.com/julianstephens/streakmate/internal/models"
	"github.com/julianstephens/streakmate/internal/utils"
)

// ResolveStatus returns the habit's lifecycle status for the current day.
//
// Rules, in order:
//   - completed whenever today is in the completion set, regardless of any
//     time configuration
//   - weekly habits never auto-miss; they are pending until completed
//   - habits created today or yesterday are pending (grace period for new
//     habits that could not yet have a full evaluation window)
//   - a habit restored today is pending (restore implies a grace day, so the
//     next sweep does not immediately undo it)
//   - daily habits miss when yesterday was required but absent, or when the
//     due time for today has passed without a completion
//   - otherwise pending
func ResolveStatus(habit models.Habit, now time.Time) (models.Status, error) {
	completed, err := dateSet(habit.CompletedDates)
	if err != nil {
		return "", err
	}

	today := utils.Today(now)
	if _, ok := completed[today]; ok {
		return models.StatusCompleted, nil
	}

	if habit.Frequency == models.FrequencyWeekly {
		return models.StatusPending, nil
	}

	yesterday := utils.DateOnly(now).AddDate(0, 0, -1)
	created := utils.DateOnly(habit.CreatedAt)
	if !created.Before(yesterday) {
		return models.StatusPending, nil
	}

	if habit.RestoredOn == today {
		return models.StatusPending, nil
	}

	due := habit.DueTime()
	dueMin := -1
	if due != "" {
		min, err := utils.ParseTimeToMinutes(due)
		if err != nil {
			field := "time"
			if habit.HasTimeWindow() {
				field = "time_to"
			}
			return "", fmt.Errorf("habit %s: %w", field, err)
		}
		dueMin = min
	}

	if _, ok := completed[yesterday.Format(constants.DateFormat)]; !ok {
		return models.StatusMissed, nil
	}

	if due == "" {
		return models.StatusPending, nil
	}

	nowMin := utils.MinutesOfDay(now)
	if habit.HasTimeWindow() {
		// A window is "due by timeTo"; the instant timeTo arrives, the day is missed
		if nowMin >= dueMin {
			return models.StatusMissed, nil
		}
	} else if nowMin > dueMin {
		// A single time is a strict due instant
		return models.StatusMissed, nil
	}

	return models.StatusPending, nil
}
