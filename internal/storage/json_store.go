package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/julianstephens/streakmate/internal/models"
)

type jsonStore struct {
	Version       int                     `json:"version"`
	Habits        map[string]models.Habit `json:"habits"`
	MissedEntries []models.MissedEntry    `json:"missed_entries"`
	Quotas        map[string]int          `json:"restore_quotas"` // "YYYY-MM" -> used chances
	Notifications []models.Notification   `json:"notifications"`
}

// JSONStore is a single-file Provider. It is not safe for concurrent use by
// multiple processes sharing the same path.
type JSONStore struct {
	path  string
	store *jsonStore
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &jsonStore{
		Version: 1,
		Habits:  make(map[string]models.Habit),
		Quotas:  make(map[string]int),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	if s.store != nil {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'streakmate init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &jsonStore{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Habits == nil {
		s.store.Habits = make(map[string]models.Habit)
	}
	if s.store.Quotas == nil {
		s.store.Quotas = make(map[string]int)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) loaded() error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

// Habits

func (s *JSONStore) AddHabit(habit models.Habit) error {
	return s.UpdateHabit(habit)
}

func (s *JSONStore) GetHabit(id string) (models.Habit, error) {
	if err := s.loaded(); err != nil {
		return models.Habit{}, err
	}

	habit, ok := s.store.Habits[id]
	if !ok {
		return models.Habit{}, fmt.Errorf("habit not found: %s", id)
	}
	return habit, nil
}

func (s *JSONStore) GetHabitByName(name string) (models.Habit, error) {
	if err := s.loaded(); err != nil {
		return models.Habit{}, err
	}

	for _, habit := range s.store.Habits {
		if habit.Name == name {
			return habit, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit not found: %s", name)
}

func (s *JSONStore) GetAllHabits() ([]models.Habit, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}

	habits := make([]models.Habit, 0, len(s.store.Habits))
	for _, habit := range s.store.Habits {
		habits = append(habits, habit)
	}
	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})
	return habits, nil
}

func (s *JSONStore) GetHabitsByStatus(status models.Status) ([]models.Habit, error) {
	all, err := s.GetAllHabits()
	if err != nil {
		return nil, err
	}

	var habits []models.Habit
	for _, habit := range all {
		if habit.Status == status {
			habits = append(habits, habit)
		}
	}
	return habits, nil
}

func (s *JSONStore) GetMissedBefore(cutoff time.Time) ([]models.Habit, error) {
	missed, err := s.GetHabitsByStatus(models.StatusMissed)
	if err != nil {
		return nil, err
	}

	var habits []models.Habit
	for _, habit := range missed {
		if habit.UpdatedAt.Before(cutoff) {
			habits = append(habits, habit)
		}
	}
	return habits, nil
}

func (s *JSONStore) UpdateHabit(habit models.Habit) error {
	if err := s.loaded(); err != nil {
		return err
	}

	s.store.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) MarkMissed(id string, at time.Time) (bool, error) {
	if err := s.loaded(); err != nil {
		return false, err
	}

	habit, ok := s.store.Habits[id]
	if !ok {
		return false, fmt.Errorf("habit not found: %s", id)
	}
	if habit.Status != models.StatusPending {
		return false, nil
	}

	habit.Status = models.StatusMissed
	habit.UpdatedAt = at
	s.store.Habits[id] = habit
	return true, s.save()
}

func (s *JSONStore) DeleteHabit(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}

	if _, ok := s.store.Habits[id]; !ok {
		return fmt.Errorf("habit not found: %s", id)
	}
	delete(s.store.Habits, id)
	return s.save()
}

// Missed-day explanations

func (s *JSONStore) AddMissedEntry(entry models.MissedEntry) error {
	if err := s.loaded(); err != nil {
		return err
	}

	s.store.MissedEntries = append(s.store.MissedEntries, entry)
	return s.save()
}

func (s *JSONStore) GetMissedEntries(habitID string) ([]models.MissedEntry, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}

	var entries []models.MissedEntry
	for _, e := range s.store.MissedEntries {
		if e.HabitID == habitID {
			entries = append(entries, e)
		}
	}
	sortMissedEntries(entries)
	return entries, nil
}

func (s *JSONStore) GetAllMissedEntries() ([]models.MissedEntry, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}

	entries := make([]models.MissedEntry, len(s.store.MissedEntries))
	copy(entries, s.store.MissedEntries)
	sortMissedEntries(entries)
	return entries, nil
}

func (s *JSONStore) DeleteMissedEntriesForHabit(habitID string) error {
	if err := s.loaded(); err != nil {
		return err
	}

	kept := s.store.MissedEntries[:0]
	for _, e := range s.store.MissedEntries {
		if e.HabitID != habitID {
			kept = append(kept, e)
		}
	}
	s.store.MissedEntries = kept
	return s.save()
}

func sortMissedEntries(entries []models.MissedEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
}

// Restore quota

func quotaKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

func (s *JSONStore) GetRestoreQuota(year int, month time.Month) (models.RestoreQuota, error) {
	if err := s.loaded(); err != nil {
		return models.RestoreQuota{}, err
	}

	return models.RestoreQuota{
		Year:        year,
		Month:       int(month),
		UsedChances: s.store.Quotas[quotaKey(year, month)],
	}, nil
}

func (s *JSONStore) SaveRestoreQuota(quota models.RestoreQuota) error {
	if err := s.loaded(); err != nil {
		return err
	}

	s.store.Quotas[quotaKey(quota.Year, time.Month(quota.Month))] = quota.UsedChances
	return s.save()
}

// Notifications

func (s *JSONStore) AddNotification(n models.Notification) error {
	if err := s.loaded(); err != nil {
		return err
	}

	s.store.Notifications = append(s.store.Notifications, n)
	return s.save()
}

func (s *JSONStore) GetNotifications(unreadOnly bool) ([]models.Notification, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}

	var notifications []models.Notification
	for _, n := range s.store.Notifications {
		if unreadOnly && n.Read {
			continue
		}
		notifications = append(notifications, n)
	}
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

func (s *JSONStore) MarkNotificationsRead() error {
	if err := s.loaded(); err != nil {
		return err
	}

	for i := range s.store.Notifications {
		s.store.Notifications[i].Read = true
	}
	return s.save()
}

func (s *JSONStore) DeleteNotificationsForHabit(habitID string) error {
	if err := s.loaded(); err != nil {
		return err
	}

	kept := s.store.Notifications[:0]
	for _, n := range s.store.Notifications {
		if n.HabitID != habitID {
			kept = append(kept, n)
		}
	}
	s.store.Notifications = kept
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
