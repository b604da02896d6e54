package streaks

import (
	"fmt"

	"github.com/julianstephens/streakmate/internal/cli"
	"github.com/julianstephens/streakmate/internal/constants"
)

type RestoreCmd struct {
	Name  string `arg:"" optional:"" help:"Habit name or id to restore."`
	Quota bool   `help:"Show the remaining restore chances instead."`
}

func (c *RestoreCmd) Run(ctx *cli.Context) error {
	if c.Quota || c.Name == "" {
		quota, err := ctx.Service.RestoreQuota()
		if err != nil {
			return err
		}
		fmt.Printf("Restore chances left this month: %d of %d\n",
			quota.Remaining(constants.MonthlyRestoreQuota), constants.MonthlyRestoreQuota)
		return nil
	}

	habit, quota, err := ctx.Service.Restore(c.Name)
	if err != nil {
		return err
	}

	fmt.Printf("Restored habit %q; it will not be marked missed again today\n", habit.Name)
	fmt.Printf("Restore chances left this month: %d of %d\n",
		quota.Remaining(constants.MonthlyRestoreQuota), constants.MonthlyRestoreQuota)
	return nil
}
