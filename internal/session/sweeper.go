package session

import (
	"fmt"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/robfig/cron/v3"
)

// StartSweeper schedules Store.Sweep on a cron spec such as "@every 5m".
// The caller stops the returned scheduler on shutdown.
func StartSweeper(store *Store, spec string, logger log.Logger) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		if n := store.Sweep(time.Now()); n > 0 {
			level.Info(logger).Log("msg", "expired selection sessions removed", "count", n, "active", store.Len())
		}
	})
	if err != nil {
		return nil, fmt.Errorf("start session sweeper: schedule %q: %w", spec, err)
	}

	c.Start()
	level.Info(logger).Log("msg", "session sweeper started", "spec", spec)
	return c, nil
}
