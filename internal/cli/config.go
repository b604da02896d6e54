package cli

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/julianstephens/streakmate/internal/logger"
	"github.com/julianstephens/streakmate/internal/sweeper"
)

// DaemonConfig holds the sweep daemon settings read from the environment.
type DaemonConfig struct {
	SweepInterval time.Duration
	PurgeInterval time.Duration
}

// LoadDaemonConfig reads daemon settings from a .env file (when present) and
// the environment. Flags override these values.
func LoadDaemonConfig() DaemonConfig {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using environment variables")
	}

	return DaemonConfig{
		SweepInterval: getenvDuration("STREAKMATE_SWEEP_INTERVAL", 0),
		PurgeInterval: getenvDuration("STREAKMATE_PURGE_INTERVAL", 0),
	}
}

// SweeperOptions converts the config into sweeper options; zero values let
// the sweeper fall back to its defaults.
func (c DaemonConfig) SweeperOptions() sweeper.Options {
	return sweeper.Options{
		SweepInterval: c.SweepInterval,
		PurgeInterval: c.PurgeInterval,
	}
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		logger.Warn("ignoring malformed duration", "key", key, "value", v)
	}
	return fallback
}
