package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/streakmate/internal/cli"
	"github.com/julianstephens/streakmate/internal/cli/backups"
	"github.com/julianstephens/streakmate/internal/cli/habits"
	"github.com/julianstephens/streakmate/internal/cli/streaks"
	"github.com/julianstephens/streakmate/internal/cli/system"
	cliErrors "github.com/julianstephens/streakmate/internal/errors"
	"github.com/julianstephens/streakmate/internal/logger"
	"github.com/julianstephens/streakmate/internal/service"
	"github.com/julianstephens/streakmate/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage path. A .json suffix selects the JSON file store, anything else SQLite." type:"path" default:"~/.config/streakmate/streakmate.db"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize streakmate storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Habit   habits.HabitCmd   `cmd:"" help:"Manage habits and completions."`

	Restore       streaks.RestoreCmd       `cmd:"" help:"Restore a missed habit's streak (monthly quota)."`
	Missed        streaks.MissedCmd        `cmd:"" help:"Record and review missed-day explanations."`
	Sweep         streaks.SweepCmd         `cmd:"" help:"Mark overdue habits missed and purge stale ones."`
	Notifications streaks.NotificationsCmd `cmd:"" help:"Show notification records."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`

	Notify system.NotifyCmd `cmd:"" hidden:"" help:"Forward unread notifications to the tray app."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("streakmate"),
		kong.Description("Habit tracker with streaks, restores and a missed-day sweeper"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store:   store,
		Service: service.New(store),
	}

	// Load the store before running the command; init handles its own setup
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			cliErrors.Fatal(err)
		}
		defer store.Close()
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		cliErrors.Fatal(err)
	}
}
