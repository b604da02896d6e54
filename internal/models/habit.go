package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/streakmate/internal/constants"
)

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusMissed    Status = "missed"
)

// Habit represents a recurring practice to track.
//
// Streak and Status are persisted caches: both are derived from CompletedDates,
// Frequency, Target and the clock, and are only ever written by the engine (or,
// for Status, by an explicit restore).
type Habit struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Frequency   Frequency `json:"frequency"`
	Target      int       `json:"target"`

	// Optional time-of-day configuration. Time is a single "due by" instant;
	// TimeFrom/TimeTo describe a completion window due by TimeTo. Empty strings
	// mean no time gate. All values are HH:MM.
	Time     string `json:"time,omitempty"`
	TimeFrom string `json:"time_from,omitempty"`
	TimeTo   string `json:"time_to,omitempty"`

	CompletedDates []string `json:"completed_dates"` // YYYY-MM-DD, one entry per day
	Streak         int      `json:"streak"`
	Status         Status   `json:"status"`

	// RestoredOn holds the day (YYYY-MM-DD) of the most recent streak restore.
	// A habit restored today gets a grace day: the resolver will not re-mark it
	// missed until the following day.
	RestoredOn string `json:"restored_on,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (h *Habit) Validate() error {
	if h.Name == "" {
		return fmt.Errorf("habit name cannot be empty")
	}
	if len(h.Name) > constants.MaxHabitNameLen {
		return fmt.Errorf("habit name must be %d characters or less", constants.MaxHabitNameLen)
	}

	switch h.Frequency {
	case FrequencyDaily, FrequencyWeekly:
	default:
		return fmt.Errorf("invalid frequency %q (expected daily or weekly)", h.Frequency)
	}

	if h.Frequency == FrequencyWeekly && h.Target < 1 {
		return fmt.Errorf("weekly target must be at least 1")
	}

	for _, field := range []struct {
		name  string
		value string
	}{
		{"time", h.Time},
		{"time_from", h.TimeFrom},
		{"time_to", h.TimeTo},
	} {
		if field.value == "" {
			continue
		}
		if _, err := time.Parse(constants.TimeFormat, field.value); err != nil {
			return fmt.Errorf("invalid %s %q (expected HH:MM): %w", field.name, field.value, err)
		}
	}

	// A window needs both ends
	if (h.TimeFrom == "") != (h.TimeTo == "") {
		return fmt.Errorf("time_from and time_to must be set together")
	}

	return nil
}

// HasTimeWindow reports whether the habit uses a from/to completion window.
func (h *Habit) HasTimeWindow() bool {
	return h.TimeFrom != "" && h.TimeTo != ""
}

// DueTime returns the HH:MM instant the habit is due by, or "" if the habit
// has no time gate.
func (h *Habit) DueTime() string {
	if h.HasTimeWindow() {
		return h.TimeTo
	}
	return h.Time
}
