package streaks

import (
	"fmt"

	"github.com/julianstephens/streakmate/internal/cli"
)

type NotificationsCmd struct {
	All  bool `help:"Include notifications already marked read."`
	Read bool `help:"Mark everything as read after listing."`
}

func (c *NotificationsCmd) Run(ctx *cli.Context) error {
	notifications, err := ctx.Service.Notifications(!c.All)
	if err != nil {
		return err
	}

	if len(notifications) == 0 {
		fmt.Println("No notifications.")
		return nil
	}

	for _, n := range notifications {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		fmt.Printf("%s %s  %s\n", marker, n.CreatedAt.Format("2006-01-02 15:04"), n.Message)
	}

	if c.Read {
		if err := ctx.Service.MarkNotificationsRead(); err != nil {
			return err
		}
	}
	return nil
}
