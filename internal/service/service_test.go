package service

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/streakmate/internal/constants"
	"github.com/julianstephens/streakmate/internal/models"
	"github.com/julianstephens/streakmate/internal/storage"
)

var testNow = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, now time.Time) *Service {
	t.Helper()

	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "streakmate.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return NewWithClock(store, func() time.Time { return now })
}

// seedHabit stores a habit directly, bypassing CreateHabit, so tests can
// control CreatedAt and status.
func seedHabit(t *testing.T, svc *Service, habit models.Habit) models.Habit {
	t.Helper()

	if habit.ID == "" {
		habit.ID = uuid.NewString()
	}
	if habit.Target == 0 {
		habit.Target = 1
	}
	if habit.UpdatedAt.IsZero() {
		habit.UpdatedAt = habit.CreatedAt
	}
	if err := svc.store.AddHabit(habit); err != nil {
		t.Fatalf("failed to seed habit: %v", err)
	}
	return habit
}

func TestCreateHabitForcesDailyTarget(t *testing.T) {
	svc := newTestService(t, testNow)

	habit, err := svc.CreateHabit(models.Habit{
		Name:      "read",
		Frequency: models.FrequencyDaily,
		Target:    5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if habit.Target != 1 {
		t.Errorf("expected daily target forced to 1, got %d", habit.Target)
	}
	if habit.ID == "" {
		t.Error("expected generated id")
	}
	if habit.Status != models.StatusPending {
		t.Errorf("expected new habit pending, got %s", habit.Status)
	}
}

func TestCreateHabitKeepsWeeklyTarget(t *testing.T) {
	svc := newTestService(t, testNow)

	habit, err := svc.CreateHabit(models.Habit{
		Name:      "gym",
		Frequency: models.FrequencyWeekly,
		Target:    3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if habit.Target != 3 {
		t.Errorf("expected weekly target 3, got %d", habit.Target)
	}
}

func TestCreateHabitRejectsDuplicateName(t *testing.T) {
	svc := newTestService(t, testNow)

	if _, err := svc.CreateHabit(models.Habit{Name: "read", Frequency: models.FrequencyDaily}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.CreateHabit(models.Habit{Name: "read", Frequency: models.FrequencyDaily})
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected duplicate name error, got %v", err)
	}
}

func TestCreateHabitRejectsInvalid(t *testing.T) {
	svc := newTestService(t, testNow)

	if _, err := svc.CreateHabit(models.Habit{Frequency: models.FrequencyDaily}); err == nil {
		t.Fatal("expected validation error for empty name")
	}
}

func TestCompleteUpdatesStreakAndStatus(t *testing.T) {
	svc := newTestService(t, testNow)

	if _, err := svc.CreateHabit(models.Habit{Name: "read", Frequency: models.FrequencyDaily}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	habit, err := svc.Complete("read", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if habit.Status != models.StatusCompleted {
		t.Errorf("expected completed, got %s", habit.Status)
	}
	if habit.Streak != 1 {
		t.Errorf("expected streak 1, got %d", habit.Streak)
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	svc := newTestService(t, testNow)

	if _, err := svc.CreateHabit(models.Habit{Name: "read", Frequency: models.FrequencyDaily}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Complete("read", "2024-01-10"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	habit, err := svc.Complete("read", "2024-01-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(habit.CompletedDates) != 1 {
		t.Errorf("expected a single completion, got %v", habit.CompletedDates)
	}
}

func TestCompleteRejectsMalformedDate(t *testing.T) {
	svc := newTestService(t, testNow)

	if _, err := svc.CreateHabit(models.Habit{Name: "read", Frequency: models.FrequencyDaily}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.Complete("read", "10/01/2024")
	if err == nil || !strings.Contains(err.Error(), "10/01/2024") {
		t.Fatalf("expected malformed date error naming the value, got %v", err)
	}
}

func TestUncompleteRemovesCompletion(t *testing.T) {
	svc := newTestService(t, testNow)

	if _, err := svc.CreateHabit(models.Habit{Name: "read", Frequency: models.FrequencyDaily}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Complete("read", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	habit, err := svc.Uncomplete("read", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(habit.CompletedDates) != 0 {
		t.Errorf("expected no completions, got %v", habit.CompletedDates)
	}
	// Created today, so removing the completion falls back to the grace day
	if habit.Status != models.StatusPending {
		t.Errorf("expected pending, got %s", habit.Status)
	}
}

func TestListHabitsRefreshesDerivedFields(t *testing.T) {
	svc := newTestService(t, testNow)

	// Stored with stale caches: completions say the streak is alive
	seedHabit(t, svc, models.Habit{
		Name:           "read",
		Frequency:      models.FrequencyDaily,
		CompletedDates: []string{"2024-01-09", "2024-01-10"},
		Streak:         0,
		Status:         models.StatusPending,
		CreatedAt:      testNow.AddDate(0, 0, -5),
	})

	habits, err := svc.ListHabits()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(habits) != 1 {
		t.Fatalf("expected 1 habit, got %d", len(habits))
	}

	if habits[0].Streak != 2 {
		t.Errorf("expected recomputed streak 2, got %d", habits[0].Streak)
	}
	if habits[0].Status != models.StatusCompleted {
		t.Errorf("expected recomputed status completed, got %s", habits[0].Status)
	}

	// The refreshed values must have been persisted
	stored, err := svc.store.GetHabitByName("read")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Streak != 2 || stored.Status != models.StatusCompleted {
		t.Errorf("expected persisted caches updated, got streak=%d status=%s", stored.Streak, stored.Status)
	}
}

func TestRestoreSpendsQuotaAndGrantsGrace(t *testing.T) {
	svc := newTestService(t, testNow)

	seedHabit(t, svc, models.Habit{
		Name:      "read",
		Frequency: models.FrequencyDaily,
		Status:    models.StatusMissed,
		CreatedAt: testNow.AddDate(0, 0, -5),
	})

	habit, quota, err := svc.Restore("read")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if habit.Status != models.StatusPending {
		t.Errorf("expected pending after restore, got %s", habit.Status)
	}
	if habit.RestoredOn != "2024-01-10" {
		t.Errorf("expected restore day stamped, got %q", habit.RestoredOn)
	}
	if quota.UsedChances != 1 {
		t.Errorf("expected 1 chance used, got %d", quota.UsedChances)
	}

	// The grace day holds: a fresh read does not re-mark it missed
	habit, err = svc.GetHabit("read")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if habit.Status != models.StatusPending {
		t.Errorf("expected pending on the restore day, got %s", habit.Status)
	}
}

func TestRestoreRefusedWhenCompletedToday(t *testing.T) {
	svc := newTestService(t, testNow)

	seedHabit(t, svc, models.Habit{
		Name:           "read",
		Frequency:      models.FrequencyDaily,
		CompletedDates: []string{"2024-01-10"},
		CreatedAt:      testNow.AddDate(0, 0, -5),
	})

	_, _, err := svc.Restore("read")
	if err == nil || !strings.Contains(err.Error(), "already completed today") {
		t.Fatalf("expected completed-today refusal, got %v", err)
	}
}

func TestRestoreRefusedWhenQuotaSpent(t *testing.T) {
	svc := newTestService(t, testNow)

	seedHabit(t, svc, models.Habit{
		Name:      "read",
		Frequency: models.FrequencyDaily,
		Status:    models.StatusMissed,
		CreatedAt: testNow.AddDate(0, 0, -5),
	})

	err := svc.store.SaveRestoreQuota(models.RestoreQuota{
		Year:        2024,
		Month:       1,
		UsedChances: constants.MonthlyRestoreQuota,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, err = svc.Restore("read")
	if err == nil || !strings.Contains(err.Error(), "no restore chances left") {
		t.Fatalf("expected quota refusal, got %v", err)
	}
}

func TestAddMissedEntryRefusedForNewHabits(t *testing.T) {
	svc := newTestService(t, testNow)

	for _, createdAt := range []time.Time{testNow, testNow.AddDate(0, 0, -1)} {
		habit := seedHabit(t, svc, models.Habit{
			Name:      "read-" + createdAt.Format("2006-01-02"),
			Frequency: models.FrequencyDaily,
			CreatedAt: createdAt,
		})

		_, err := svc.AddMissedEntry(habit.Name, "forgot")
		if err == nil || !strings.Contains(err.Error(), "too new") {
			t.Errorf("createdAt %s: expected too-new refusal, got %v", createdAt.Format("2006-01-02"), err)
		}
	}
}

func TestAddMissedEntryRecordsHistory(t *testing.T) {
	svc := newTestService(t, testNow)

	seedHabit(t, svc, models.Habit{
		Name:      "read",
		Frequency: models.FrequencyDaily,
		CreatedAt: testNow.AddDate(0, 0, -3),
	})

	entry, err := svc.AddMissedEntry("read", "travelling")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Explanation != "travelling" {
		t.Errorf("expected explanation stored, got %q", entry.Explanation)
	}

	entries, err := svc.MissedEntries("read")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != entry.ID {
		t.Errorf("expected the recorded entry back, got %v", entries)
	}
}

func TestDeleteHabitCascades(t *testing.T) {
	svc := newTestService(t, testNow)

	habit := seedHabit(t, svc, models.Habit{
		Name:      "read",
		Frequency: models.FrequencyDaily,
		CreatedAt: testNow.AddDate(0, 0, -3),
	})

	if _, err := svc.AddMissedEntry("read", "forgot"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := svc.store.AddNotification(models.Notification{
		ID:        uuid.NewString(),
		Kind:      models.NotificationHabitMissed,
		HabitID:   habit.ID,
		HabitName: habit.Name,
		Message:   "read was missed",
		CreatedAt: testNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.DeleteHabit("read"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.GetHabit("read"); err == nil {
		t.Error("expected habit gone")
	}
	entries, err := svc.AllMissedEntries()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected missed entries cascaded, got %v", entries)
	}
	notifications, err := svc.Notifications(false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifications) != 0 {
		t.Errorf("expected notifications cascaded, got %v", notifications)
	}
}

func TestHasStreakAtLeast(t *testing.T) {
	svc := newTestService(t, testNow)

	days := make([]string, 0, 7)
	for i := 6; i >= 0; i-- {
		days = append(days, testNow.AddDate(0, 0, -i).Format("2006-01-02"))
	}
	seedHabit(t, svc, models.Habit{
		Name:           "read",
		Frequency:      models.FrequencyDaily,
		CompletedDates: days,
		CreatedAt:      testNow.AddDate(0, 0, -10),
	})

	reached, err := svc.HasStreakAtLeast("read", constants.MilestoneStreakDays)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reached {
		t.Error("expected 7-day milestone reached")
	}

	reached, err = svc.HasStreakAtLeast("read", 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reached {
		t.Error("expected 8-day milestone not reached")
	}
}
