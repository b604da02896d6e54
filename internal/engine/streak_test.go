package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/streakmate/internal/models"
)

func mustStreak(t *testing.T, dates []string, freq models.Frequency, target int, now time.Time) int {
	t.Helper()
	streak, err := ComputeStreak(dates, freq, target, now)
	if err != nil {
		t.Fatalf("ComputeStreak failed: %v", err)
	}
	return streak
}

func TestComputeStreak_EmptyDates(t *testing.T) {
	now := time.Date(2024, 1, 4, 10, 0, 0, 0, time.UTC)

	for _, freq := range []models.Frequency{models.FrequencyDaily, models.FrequencyWeekly} {
		if got := mustStreak(t, nil, freq, 1, now); got != 0 {
			t.Errorf("expected streak 0 for empty dates (%s), got %d", freq, got)
		}
	}
}

func TestComputeStreak_DailyContiguousIncludingToday(t *testing.T) {
	now := time.Date(2024, 1, 4, 10, 0, 0, 0, time.UTC)
	dates := []string{"2024-01-02", "2024-01-03", "2024-01-04"}

	if got := mustStreak(t, dates, models.FrequencyDaily, 1, now); got != 3 {
		t.Errorf("expected streak 3, got %d", got)
	}
}

func TestComputeStreak_DailyAliveWithoutToday(t *testing.T) {
	// Today not completed yet: the run ending yesterday still counts
	now := time.Date(2024, 1, 4, 10, 0, 0, 0, time.UTC)
	dates := []string{"2024-01-01", "2024-01-02", "2024-01-03"}

	if got := mustStreak(t, dates, models.FrequencyDaily, 1, now); got != 3 {
		t.Errorf("expected streak 3, got %d", got)
	}
}

func TestComputeStreak_DailyGapBreaksStreak(t *testing.T) {
	now := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)

	// 01-04 missing: the streak must not look past the gap
	dates := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-05"}
	if got := mustStreak(t, dates, models.FrequencyDaily, 1, now); got != 1 {
		t.Errorf("expected streak 1 at the gap, got %d", got)
	}

	// Two days since last completion: streak is dead
	dates = []string{"2024-01-01", "2024-01-02", "2024-01-03"}
	if got := mustStreak(t, dates, models.FrequencyDaily, 1, now); got != 0 {
		t.Errorf("expected streak 0 after two-day gap, got %d", got)
	}
}

func TestComputeStreak_DailyDuplicateDatesCountOnce(t *testing.T) {
	now := time.Date(2024, 1, 4, 10, 0, 0, 0, time.UTC)
	dates := []string{"2024-01-04", "2024-01-04", "2024-01-03"}

	if got := mustStreak(t, dates, models.FrequencyDaily, 1, now); got != 2 {
		t.Errorf("expected duplicates to count once (streak 2), got %d", got)
	}
}

func TestComputeStreak_WeeklyTargetMet(t *testing.T) {
	// 2024-01-04 is a Thursday in ISO week 2024-W01
	now := time.Date(2024, 1, 4, 10, 0, 0, 0, time.UTC)
	dates := []string{"2024-01-01", "2024-01-02", "2024-01-03"}

	if got := mustStreak(t, dates, models.FrequencyWeekly, 3, now); got != 1 {
		t.Errorf("expected streak 1 for current week meeting target, got %d", got)
	}
}

func TestComputeStreak_WeeklyBelowTargetDoesNotCount(t *testing.T) {
	now := time.Date(2024, 1, 4, 10, 0, 0, 0, time.UTC)
	dates := []string{"2024-01-01", "2024-01-02"}

	if got := mustStreak(t, dates, models.FrequencyWeekly, 3, now); got != 0 {
		t.Errorf("expected streak 0 for week below target, got %d", got)
	}
}

func TestComputeStreak_WeeklyConsecutiveWeeks(t *testing.T) {
	now := time.Date(2024, 1, 11, 10, 0, 0, 0, time.UTC) // ISO week 2024-W02
	dates := []string{
		// W01
		"2024-01-01", "2024-01-03",
		// W02
		"2024-01-08", "2024-01-10",
	}

	if got := mustStreak(t, dates, models.FrequencyWeekly, 2, now); got != 2 {
		t.Errorf("expected streak 2 across consecutive qualifying weeks, got %d", got)
	}
}

func TestComputeStreak_WeeklyGapWeekBreaksStreak(t *testing.T) {
	now := time.Date(2024, 1, 18, 10, 0, 0, 0, time.UTC) // ISO week 2024-W03
	dates := []string{
		// W01 qualifies but W02 is empty
		"2024-01-01", "2024-01-03",
		// W03
		"2024-01-15", "2024-01-17",
	}

	if got := mustStreak(t, dates, models.FrequencyWeekly, 2, now); got != 1 {
		t.Errorf("expected streak 1 (W02 gap breaks run), got %d", got)
	}
}

func TestComputeStreak_WeeklyTargetClampedToOne(t *testing.T) {
	now := time.Date(2024, 1, 4, 10, 0, 0, 0, time.UTC)
	dates := []string{"2024-01-02"}

	for _, target := range []int{0, -3} {
		if got := mustStreak(t, dates, models.FrequencyWeekly, target, now); got != 1 {
			t.Errorf("target %d: expected clamp to 1 and streak 1, got %d", target, got)
		}
	}
}

func TestComputeStreak_MalformedDate(t *testing.T) {
	now := time.Date(2024, 1, 4, 10, 0, 0, 0, time.UTC)

	_, err := ComputeStreak([]string{"01/04/2024"}, models.FrequencyDaily, 1, now)
	if err == nil {
		t.Fatal("expected error for malformed date")
	}
	if !strings.Contains(err.Error(), "01/04/2024") {
		t.Errorf("error should identify the offending value, got: %v", err)
	}
}

func TestComputeStreak_Idempotent(t *testing.T) {
	now := time.Date(2024, 1, 4, 10, 0, 0, 0, time.UTC)
	dates := []string{"2024-01-02", "2024-01-03", "2024-01-04"}

	first := mustStreak(t, dates, models.FrequencyDaily, 1, now)
	second := mustStreak(t, dates, models.FrequencyDaily, 1, now)
	if first != second {
		t.Errorf("expected identical results for identical inputs, got %d then %d", first, second)
	}
}
