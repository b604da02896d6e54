package system

import (
	"fmt"
	"io/fs"

	"github.com/julianstephens/streakmate/internal/backup"
	"github.com/julianstephens/streakmate/internal/cli"
	"github.com/julianstephens/streakmate/internal/migration"
	"github.com/julianstephens/streakmate/internal/storage"
	"github.com/julianstephens/streakmate/migrations"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		fmt.Println("⊘ Schema version: SKIPPED (storage not reachable)")
		fmt.Println("⊘ Migrations complete: SKIPPED (storage not reachable)")
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Printf("✓ Storage reachable: OK\n")

	if sqliteStore, ok := ctx.Store.(*storage.SQLiteStore); ok {
		runner, err := migrationRunner(sqliteStore)
		if err != nil {
			fmt.Printf("❌ Schema version: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			if err := runner.ValidateVersion(); err != nil {
				fmt.Printf("❌ Schema version: FAIL\n")
				fmt.Printf("   Error: %v\n", err)
				hasError = true
			} else {
				fmt.Printf("✓ Schema version: OK\n")
			}

			if err := checkMigrationsComplete(runner); err != nil {
				fmt.Printf("❌ Migrations complete: FAIL\n")
				fmt.Printf("   Error: %v\n", err)
				hasError = true
			} else {
				fmt.Printf("✓ Migrations complete: OK\n")
			}
		}
	} else {
		fmt.Println("⊘ Schema version: SKIPPED (not a SQLite store)")
		fmt.Println("⊘ Migrations complete: SKIPPED (not a SQLite store)")
	}

	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).List()
	if err != nil || len(backups) == 0 {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   No backups found; run 'streakmate backup' to create one\n")
	} else {
		fmt.Printf("✓ Backups present: OK (%d found)\n", len(backups))
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

func migrationRunner(store *storage.SQLiteStore) (*migration.Runner, error) {
	db := store.GetDB()
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access migrations: %w", err)
	}
	return migration.NewRunner(db, subFS), nil
}

func checkMigrationsComplete(runner *migration.Runner) error {
	current, err := runner.GetCurrentVersion()
	if err != nil {
		return err
	}
	available, err := runner.ReadMigrationFiles()
	if err != nil {
		return err
	}
	if len(available) == 0 {
		return nil
	}
	latest := available[len(available)-1].Version
	if current < latest {
		return fmt.Errorf("schema at version %d, latest is %d; run 'streakmate migrate'", current, latest)
	}
	return nil
}
