package streaks

import (
	"fmt"

	"github.com/julianstephens/streakmate/internal/cli"
)

type MissedCmd struct {
	Add  MissedAddCmd  `cmd:"" help:"Record an explanation for a missed day."`
	List MissedListCmd `cmd:"" help:"Show recorded explanations."`
}

type MissedAddCmd struct {
	Name        string `arg:"" help:"Habit name or id."`
	Explanation string `arg:"" help:"Why the day was missed."`
}

func (c *MissedAddCmd) Run(ctx *cli.Context) error {
	entry, err := ctx.Service.AddMissedEntry(c.Name, c.Explanation)
	if err != nil {
		return err
	}

	fmt.Printf("Recorded explanation for %q\n", entry.HabitName)
	return nil
}

type MissedListCmd struct {
	Name string `arg:"" optional:"" help:"Habit name or id (default: all habits)."`
}

func (c *MissedListCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.Service.AllMissedEntries()
	if c.Name != "" {
		entries, err = ctx.Service.MissedEntries(c.Name)
	}
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No missed-day explanations recorded.")
		return nil
	}

	for _, entry := range entries {
		fmt.Printf("%s  %s: %s\n", entry.CreatedAt.Format("2006-01-02"), entry.HabitName, entry.Explanation)
	}
	return nil
}
