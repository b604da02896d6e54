package models

import (
	"fmt"
	"time"
)

// MissedEntry records a user's explanation for a missed day.
type MissedEntry struct {
	ID          string    `json:"id"`
	HabitID     string    `json:"habit_id"`
	HabitName   string    `json:"habit_name"`
	Explanation string    `json:"explanation"`
	CreatedAt   time.Time `json:"created_at"`
}

func (e *MissedEntry) Validate() error {
	if e.HabitID == "" {
		return fmt.Errorf("missed entry habit id cannot be empty")
	}
	if e.Explanation == "" {
		return fmt.Errorf("missed entry explanation cannot be empty")
	}
	return nil
}
