// ABOUTME: Retry helpers for external backend calls
// ABOUTME: Exponential backoff with jitter, shared by embedding and chat paths
package util

import (
	"math/rand/v2"
	"time"
)

// maxBackoff caps the delay between attempts regardless of attempt count.
const maxBackoff = 30 * time.Second

// Backoff returns the delay before the given retry attempt: base doubled
// per attempt, capped at maxBackoff, with +/-25% jitter.
func Backoff(base time.Duration, attempt int) time.Duration {
	if attempt <= 0 || base <= 0 {
		return 0
	}
	if attempt > 30 {
		attempt = 30
	}

	d := base * time.Duration(1<<uint(attempt))
	if d > maxBackoff || d <= 0 {
		d = maxBackoff
	}

	jitter := time.Duration(rand.Int64N(int64(d)/2)) - d/4
	return d + jitter
}
