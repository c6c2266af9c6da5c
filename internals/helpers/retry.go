package helper

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryOnConflict reruns fn while it fails with a unique violation, up to
// attempts times. Any other error stops immediately and is returned as is.
func RetryOnConflict(ctx context.Context, attempts int, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 15 * time.Millisecond
	b.MaxInterval = 200 * time.Millisecond
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(attempts-1)), ctx)

	return backoff.Retry(func() error {
		err := fn()
		if err == nil || IsUniqueViolation(err) {
			return err
		}
		return backoff.Permanent(err)
	}, policy)
}
