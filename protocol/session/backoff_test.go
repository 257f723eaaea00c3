package session

import (
	"testing"
	"time"
)

// TestNextDelayGrowsMonotonically verifies that with a fixed jitter the
// delay sequence never decreases and settles at the cap.
func TestNextDelayGrowsMonotonically(t *testing.T) {
	base := 100 * time.Millisecond
	max := 5 * time.Second
	fixed := func() float64 { return 0.5 }

	var prev time.Duration
	for attempt := 0; attempt < 12; attempt++ {
		d := nextDelay(attempt, base, max, fixed)
		if d < prev {
			t.Fatalf("attempt %d: delay %v < previous %v", attempt, d, prev)
		}
		if d > max {
			t.Fatalf("attempt %d: delay %v exceeds cap %v", attempt, d, max)
		}
		prev = d
	}
	if prev != max {
		t.Errorf("delay never reached the cap: %v", prev)
	}
}

// TestNextDelayJitterRange verifies the ±10% window below the cap.
func TestNextDelayJitterRange(t *testing.T) {
	base := time.Second
	max := time.Hour

	low := nextDelay(2, base, max, func() float64 { return 0 })
	high := nextDelay(2, base, max, func() float64 { return 0.999 })

	expected := 4 * time.Second
	if low != time.Duration(float64(expected)*0.9) {
		t.Errorf("low jitter delay = %v", low)
	}
	if high <= low || high >= time.Duration(float64(expected)*1.1)+time.Millisecond {
		t.Errorf("high jitter delay = %v out of range", high)
	}
}

// TestNextDelayOverflow verifies that absurd attempt counts clamp to the
// cap instead of overflowing.
func TestNextDelayOverflow(t *testing.T) {
	max := 30 * time.Second
	if d := nextDelay(200, time.Second, max, func() float64 { return 0.5 }); d != max {
		t.Errorf("overflowing attempt returned %v, want %v", d, max)
	}
}
