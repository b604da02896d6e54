package constants

const (
	// TrayAppIdentifier is the config directory name of the companion tray app.
	TrayAppIdentifier = "streakmate-tray"

	// NotifierLockfileName is written by the tray app while it is running,
	// holding "port|pid|secret".
	NotifierLockfileName = "streakmate-tray.lock"

	// NotificationDurationMs is how long a tray notification stays visible.
	NotificationDurationMs uint32 = 5000
)
