package constants

import "time"

const (
	// MaxHabitNameLen is the maximum length for a habit name
	MaxHabitNameLen = 100

	// MonthlyRestoreQuota is the number of streak restores allowed per calendar month
	MonthlyRestoreQuota = 5

	// MilestoneStreakDays is the streak length treated as a shareable milestone
	MilestoneStreakDays = 7

	// DefaultSweepInterval is how often the sweeper re-evaluates pending habits
	DefaultSweepInterval = time.Minute
	// DefaultPurgeInterval is how often the sweeper looks for purgeable missed habits
	DefaultPurgeInterval = time.Hour
	// MissedRetention is how long a habit may stay missed before it is purged
	MissedRetention = 24 * time.Hour
)
