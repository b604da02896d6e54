package system

import (
	"fmt"

	"github.com/julianstephens/streakmate/internal/cli"
	"github.com/julianstephens/streakmate/internal/notifier"
)

// NotifyCmd forwards unread notification records to the desktop tray app.
// The sweep daemon can shell out to it, or it can run from a user cron.
type NotifyCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	notifications, err := ctx.Service.Notifications(true)
	if err != nil {
		return err
	}

	if len(notifications) == 0 {
		if c.DryRun {
			fmt.Println("No unread notifications.")
		}
		return nil
	}

	n := notifier.New()
	sent := 0
	for _, record := range notifications {
		if c.DryRun {
			fmt.Println("[DryRun] " + record.Message)
			sent++
			continue
		}
		if err := n.Notify(record.Message); err != nil {
			// The tray app may simply not be running; keep the records unread
			fmt.Printf("Failed to send notification: %v\n", err)
			continue
		}
		sent++
	}

	if !c.DryRun && sent == len(notifications) {
		if err := ctx.Service.MarkNotificationsRead(); err != nil {
			return err
		}
	}
	return nil
}
