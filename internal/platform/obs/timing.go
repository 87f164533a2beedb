package obs

import (
	"context"
	"time"
)

// Time starts a timer for op and returns a func to be deferred with a pointer
// to the caller's named error.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		dur := time.Since(start)
		entry := FromContext(ctx).WithField("op", name).WithField("dur_ms", dur.Milliseconds())

		if errp != nil && *errp != nil {
			entry.WithError(*errp).Warn("op failed")
			return
		}
		entry.Debug("op done")
	}
}
