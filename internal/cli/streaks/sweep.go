package streaks

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/streakmate/internal/cli"
	"github.com/julianstephens/streakmate/internal/logger"
	"github.com/julianstephens/streakmate/internal/sweeper"
)

type SweepCmd struct {
	Daemon        bool          `help:"Keep running, sweeping on a cadence, until interrupted."`
	SweepInterval time.Duration `help:"Override the sweep cadence (daemon mode)."`
	PurgeInterval time.Duration `help:"Override the purge cadence (daemon mode)."`
}

func (c *SweepCmd) Run(ctx *cli.Context) error {
	opts := cli.LoadDaemonConfig().SweeperOptions()
	if c.SweepInterval > 0 {
		opts.SweepInterval = c.SweepInterval
	}
	if c.PurgeInterval > 0 {
		opts.PurgeInterval = c.PurgeInterval
	}

	sw := sweeper.New(ctx.Store, opts)

	if !c.Daemon {
		now := time.Now()
		swept, err := sw.SweepOnce(now)
		if err != nil {
			return err
		}
		purged, err := sw.PurgeOnce(now)
		if err != nil {
			return err
		}
		fmt.Printf("Marked %d habit(s) missed, purged %d habit(s)\n",
			len(swept.Updated), len(purged.Deleted))
		return nil
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("sweep daemon started")
	fmt.Println("Sweep daemon running; press Ctrl-C to stop.")
	err := sw.Run(runCtx)
	if err == context.Canceled {
		return nil
	}
	return err
}
