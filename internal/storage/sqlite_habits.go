package storage

import (
	"fmt"
	"time"

	"github.com/julianstephens/streakmate/internal/models"
)

const habitColumns = `id, name, description, frequency, target, time, time_from, time_to,
	streak, status, restored_on, created_at, updated_at`

func (s *SQLiteStore) AddHabit(habit models.Habit) error {
	return s.UpdateHabit(habit)
}

func (s *SQLiteStore) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)
	return s.scanHabit(row)
}

func (s *SQLiteStore) GetHabitByName(name string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE name = ?`, name)
	return s.scanHabit(row)
}

func (s *SQLiteStore) GetAllHabits() ([]models.Habit, error) {
	return s.queryHabits(`SELECT ` + habitColumns + ` FROM habits ORDER BY created_at`)
}

func (s *SQLiteStore) GetHabitsByStatus(status models.Status) ([]models.Habit, error) {
	return s.queryHabits(`SELECT `+habitColumns+` FROM habits WHERE status = ? ORDER BY created_at`, string(status))
}

func (s *SQLiteStore) GetMissedBefore(cutoff time.Time) ([]models.Habit, error) {
	return s.queryHabits(`SELECT `+habitColumns+` FROM habits WHERE status = ? AND updated_at < ? ORDER BY created_at`,
		string(models.StatusMissed), cutoff.UTC().Format(time.RFC3339))
}

func (s *SQLiteStore) UpdateHabit(habit models.Habit) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			frequency = excluded.frequency,
			target = excluded.target,
			time = excluded.time,
			time_from = excluded.time_from,
			time_to = excluded.time_to,
			streak = excluded.streak,
			status = excluded.status,
			restored_on = excluded.restored_on,
			updated_at = excluded.updated_at`,
		habit.ID, habit.Name, habit.Description, string(habit.Frequency), habit.Target,
		habit.Time, habit.TimeFrom, habit.TimeTo,
		habit.Streak, string(habit.Status), habit.RestoredOn,
		habit.CreatedAt.UTC().Format(time.RFC3339), habit.UpdatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	// Completions are replaced wholesale; the primary key keeps days unique
	if _, err := tx.Exec(`DELETE FROM completions WHERE habit_id = ?`, habit.ID); err != nil {
		return err
	}
	for _, day := range habit.CompletedDates {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO completions (habit_id, day) VALUES (?, ?)`, habit.ID, day); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) MarkMissed(id string, at time.Time) (bool, error) {
	result, err := s.db.Exec(`
		UPDATE habits SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		string(models.StatusMissed), at.UTC().Format(time.RFC3339), id, string(models.StatusPending))
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (s *SQLiteStore) DeleteHabit(id string) error {
	result, err := s.db.Exec(`DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("habit not found: %s", id)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var frequency, status, createdAt, updatedAt string

	err := row.Scan(&h.ID, &h.Name, &h.Description, &frequency, &h.Target,
		&h.Time, &h.TimeFrom, &h.TimeTo,
		&h.Streak, &status, &h.RestoredOn, &createdAt, &updatedAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.Frequency = models.Frequency(frequency)
	h.Status = models.Status(status)

	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
	}
	h.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse updated_at for habit %s: %w", h.ID, err)
	}

	h.CompletedDates, err = s.completedDates(h.ID)
	if err != nil {
		return models.Habit{}, err
	}

	return h, nil
}

func (s *SQLiteStore) queryHabits(query string, args ...any) ([]models.Habit, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type habitRow struct {
		habit     models.Habit
		frequency string
		status    string
		createdAt string
		updatedAt string
	}

	var raw []habitRow
	for rows.Next() {
		var r habitRow
		err := rows.Scan(&r.habit.ID, &r.habit.Name, &r.habit.Description, &r.frequency, &r.habit.Target,
			&r.habit.Time, &r.habit.TimeFrom, &r.habit.TimeTo,
			&r.habit.Streak, &r.status, &r.habit.RestoredOn, &r.createdAt, &r.updatedAt)
		if err != nil {
			return nil, err
		}
		raw = append(raw, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var habits []models.Habit
	for _, r := range raw {
		h := r.habit
		h.Frequency = models.Frequency(r.frequency)
		h.Status = models.Status(r.status)

		var err error
		h.CreatedAt, err = time.Parse(time.RFC3339, r.createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
		}
		h.UpdatedAt, err = time.Parse(time.RFC3339, r.updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse updated_at for habit %s: %w", h.ID, err)
		}

		h.CompletedDates, err = s.completedDates(h.ID)
		if err != nil {
			return nil, err
		}

		habits = append(habits, h)
	}

	return habits, nil
}

func (s *SQLiteStore) completedDates(habitID string) ([]string, error) {
	rows, err := s.db.Query(`SELECT day FROM completions WHERE habit_id = ? ORDER BY day`, habitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, rows.Err()
}
