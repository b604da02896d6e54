package constants

const (
	// DateFormat is the standard calendar-day format (YYYY-MM-DD)
	DateFormat = "2006-01-02"
	// TimeFormat is the standard time-of-day format (HH:MM, 24-hour)
	TimeFormat = "15:04"
)
