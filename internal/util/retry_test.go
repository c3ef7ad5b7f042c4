// ABOUTME: Tests for backoff calculation
// ABOUTME: Verifies growth, caps, and jitter bounds

package util

import (
	"testing"
	"time"
)

func TestBackoff_ZeroForFirstAttempt(t *testing.T) {
	if d := Backoff(time.Second, 0); d != 0 {
		t.Errorf("Backoff(1s, 0) = %v, want 0", d)
	}
	if d := Backoff(time.Second, -1); d != 0 {
		t.Errorf("Backoff(1s, -1) = %v, want 0", d)
	}
}

func TestBackoff_GrowsWithAttempts(t *testing.T) {
	base := 100 * time.Millisecond

	// Jitter is bounded by +/-25%, so compare against the envelope.
	for attempt := 1; attempt <= 4; attempt++ {
		d := Backoff(base, attempt)
		expected := base * time.Duration(1<<uint(attempt))
		lo := expected - expected/4
		hi := expected + expected/4
		if d < lo || d > hi {
			t.Errorf("Backoff(attempt=%d) = %v, want within [%v, %v]", attempt, d, lo, hi)
		}
	}
}

func TestBackoff_Capped(t *testing.T) {
	// Large attempt counts must not overflow or exceed the cap envelope.
	d := Backoff(2*time.Second, 100)
	if d > 30*time.Second+30*time.Second/4 {
		t.Errorf("Backoff = %v, exceeds cap envelope", d)
	}
	if d <= 0 {
		t.Errorf("Backoff = %v, want positive", d)
	}
}
