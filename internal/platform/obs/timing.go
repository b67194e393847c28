package obs

import (
	"context"
	"time"

	"github.com/go-kit/log/level"
)

// Time starts timing an operation; call the returned func with the
// operation's error pointer (usually deferred) to log and record it.
// Request-scoped loggers already carry req_id.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	logger := LoggerFrom(ctx)

	return func(errp *error) {
		dur := time.Since(start)
		opDuration.WithLabelValues(name).Observe(dur.Seconds())

		if errp != nil && *errp != nil {
			level.Warn(logger).Log("op", name, "dur_ms", dur.Milliseconds(), "err", *errp)
			return
		}
		level.Debug(logger).Log("op", name, "dur_ms", dur.Milliseconds())
	}
}
