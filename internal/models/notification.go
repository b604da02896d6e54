package models

import "time"

type NotificationKind string

const (
	NotificationHabitMissed  NotificationKind = "habit_missed"
	NotificationHabitDeleted NotificationKind = "habit_deleted"
	NotificationReminder     NotificationKind = "reminder"
)

// Notification is a persisted record of an event a UI can surface later.
type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"kind"`
	HabitID   string           `json:"habit_id"`
	HabitName string           `json:"habit_name"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
