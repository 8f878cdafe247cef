package repository

import (
	"context"
	"strings"
	"time"
)

const (
	busyAttempts  = 4
	busyBaseDelay = 50 * time.Millisecond
)

// withBusyRetry runs fn, retrying with exponential backoff while the
// embedded database reports a lock conflict. Other errors pass through
// unchanged; exhausting the attempts yields ErrBusy.
func withBusyRetry(ctx context.Context, fn func() error) error {
	delay := busyBaseDelay
	for attempt := 0; attempt < busyAttempts; attempt++ {
		err := fn()
		if err == nil || !isBusy(err) {
			return err
		}
		if attempt == busyAttempts-1 {
			return ErrBusy
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		delay *= 2
	}
	return ErrBusy
}

func isBusy(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "SQLITE_BUSY")
}
