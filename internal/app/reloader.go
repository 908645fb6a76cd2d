package app

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/ticktock/internal/state"
)

const (
	defaultReloadInterval = 2 * time.Second
	maxBackoff            = 30 * time.Second
)

// StartReloader launches a background goroutine that picks up state written
// by other ticktock processes (for example `ticktock update` in another
// terminal). It returns immediately and stops when ctx is cancelled.
func StartReloader(ctx context.Context, store *state.Store, interval time.Duration, log logrus.FieldLogger) {
	if interval <= 0 {
		interval = defaultReloadInterval
	}
	if !store.Persistent() {
		return
	}
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		failures := 0
		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			failures = reload(store, failures, log)
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

// reload runs one pass and returns the updated failure count.
func reload(store *state.Store, failures int, log logrus.FieldLogger) int {
	changed, err := store.Reload()
	if err != nil {
		log.WithError(err).WithField("failures", failures+1).Warn("state reload failed")
		return failures + 1
	}
	if changed {
		log.Info("picked up state written elsewhere")
	}
	return 0
}

// calculateBackoff doubles the interval per consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	if failures > 16 {
		return maxBackoff
	}
	d := base << failures
	if d > maxBackoff || d <= 0 {
		return maxBackoff
	}
	return d
}
