// Package engine computes habit streaks and lifecycle status. It is the single
// authority for these rules: callers persist what it returns and never derive
// streaks or status themselves.
//
// All functions are pure. Inputs are value types plus an explicit clock, so the
// package is safe for concurrent use without locking.
package engine

import (
	"fmt"
	"time"

	"github.com/julianstephens/streakmate/internal/constants"
	"github.com/julianstephens/streakmate/internal/models"
	"github.com/julianstephens/streakmate/internal/utils"
)

// ComputeStreak returns the current consecutive-completion streak for a habit.
//
// For daily habits the streak is the length of the unbroken run of completed
// days ending at today, or at yesterday when today has not been completed yet
// (a streak is still alive until today's deadline passes, but today never
// counts unless it is in the set).
//
// For weekly habits completions are bucketed by ISO week; a week counts toward
// the streak when it holds at least target completions, and the streak walks
// back from the current week until the first week that does not qualify.
func ComputeStreak(completedDates []string, frequency models.Frequency, target int, now time.Time) (int, error) {
	completed, err := dateSet(completedDates)
	if err != nil {
		return 0, err
	}
	if len(completed) == 0 {
		return 0, nil
	}

	switch frequency {
	case models.FrequencyDaily:
		return dailyStreak(completed, now), nil
	case models.FrequencyWeekly:
		return weeklyStreak(completed, target, now), nil
	default:
		return 0, fmt.Errorf("invalid frequency %q (expected daily or weekly)", frequency)
	}
}

func dailyStreak(completed map[string]time.Time, now time.Time) int {
	cursor := utils.DateOnly(now)
	if _, ok := completed[cursor.Format(constants.DateFormat)]; !ok {
		cursor = cursor.AddDate(0, 0, -1)
	}

	streak := 0
	for {
		if _, ok := completed[cursor.Format(constants.DateFormat)]; !ok {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

func weeklyStreak(completed map[string]time.Time, target int, now time.Time) int {
	if target < 1 {
		// Defensive floor: a non-positive target would make every week qualify
		target = 1
	}

	weeks := make(map[string]int)
	for _, day := range completed {
		weeks[utils.WeekKey(day)]++
	}

	streak := 0
	cursor := utils.DateOnly(now)
	for weeks[utils.WeekKey(cursor)] >= target {
		streak++
		cursor = cursor.AddDate(0, 0, -7)
	}
	return streak
}

// dateSet normalizes completion dates to calendar-day keys, collapsing
// duplicate representations of the same day.
func dateSet(completedDates []string) (map[string]time.Time, error) {
	set := make(map[string]time.Time, len(completedDates))
	for _, d := range completedDates {
		t, err := time.Parse(constants.DateFormat, d)
		if err != nil {
			return nil, fmt.Errorf("invalid completed date %q (expected YYYY-MM-DD): %w", d, err)
		}
		set[t.Format(constants.DateFormat)] = t
	}
	return set, nil
}
