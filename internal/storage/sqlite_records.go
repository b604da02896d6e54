package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/streakmate/internal/models"
)

// Missed-day explanations

func (s *SQLiteStore) AddMissedEntry(entry models.MissedEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO missed_entries (id, habit_id, habit_name, explanation, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.HabitID, entry.HabitName, entry.Explanation,
		entry.CreatedAt.UTC().Format(time.RFC3339))
	return err
}

func (s *SQLiteStore) GetMissedEntries(habitID string) ([]models.MissedEntry, error) {
	return s.queryMissedEntries(`
		SELECT id, habit_id, habit_name, explanation, created_at
		FROM missed_entries WHERE habit_id = ? ORDER BY created_at DESC`, habitID)
}

func (s *SQLiteStore) GetAllMissedEntries() ([]models.MissedEntry, error) {
	return s.queryMissedEntries(`
		SELECT id, habit_id, habit_name, explanation, created_at
		FROM missed_entries ORDER BY created_at DESC`)
}

func (s *SQLiteStore) DeleteMissedEntriesForHabit(habitID string) error {
	_, err := s.db.Exec(`DELETE FROM missed_entries WHERE habit_id = ?`, habitID)
	return err
}

func (s *SQLiteStore) queryMissedEntries(query string, args ...any) ([]models.MissedEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.MissedEntry
	for rows.Next() {
		var e models.MissedEntry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.HabitID, &e.HabitName, &e.Explanation, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for missed entry %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Restore quota

func (s *SQLiteStore) GetRestoreQuota(year int, month time.Month) (models.RestoreQuota, error) {
	quota := models.RestoreQuota{Year: year, Month: int(month)}

	row := s.db.QueryRow(`
		SELECT used_chances FROM restore_quotas WHERE year = ? AND month = ?`,
		year, int(month))
	err := row.Scan(&quota.UsedChances)
	if errors.Is(err, sql.ErrNoRows) {
		// Fresh month: nothing used yet
		return quota, nil
	}
	if err != nil {
		return models.RestoreQuota{}, err
	}
	return quota, nil
}

func (s *SQLiteStore) SaveRestoreQuota(quota models.RestoreQuota) error {
	_, err := s.db.Exec(`
		INSERT INTO restore_quotas (year, month, used_chances)
		VALUES (?, ?, ?)
		ON CONFLICT(year, month) DO UPDATE SET used_chances = excluded.used_chances`,
		quota.Year, quota.Month, quota.UsedChances)
	return err
}

// Notifications

func (s *SQLiteStore) AddNotification(n models.Notification) error {
	_, err := s.db.Exec(`
		INSERT INTO notifications (id, kind, habit_id, habit_name, message, read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.ID, string(n.Kind), n.HabitID, n.HabitName, n.Message, n.Read,
		n.CreatedAt.UTC().Format(time.RFC3339))
	return err
}

func (s *SQLiteStore) GetNotifications(unreadOnly bool) ([]models.Notification, error) {
	query := `SELECT id, kind, habit_id, habit_name, message, read, created_at FROM notifications`
	if unreadOnly {
		query += ` WHERE read = 0`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		var kind, createdAt string
		if err := rows.Scan(&n.ID, &kind, &n.HabitID, &n.HabitName, &n.Message, &n.Read, &createdAt); err != nil {
			return nil, err
		}
		n.Kind = models.NotificationKind(kind)
		n.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for notification %s: %w", n.ID, err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (s *SQLiteStore) MarkNotificationsRead() error {
	_, err := s.db.Exec(`UPDATE notifications SET read = 1 WHERE read = 0`)
	return err
}

func (s *SQLiteStore) DeleteNotificationsForHabit(habitID string) error {
	_, err := s.db.Exec(`DELETE FROM notifications WHERE habit_id = ?`, habitID)
	return err
}
