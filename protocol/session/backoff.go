package session

import (
	"math/rand"
	"time"
)

// nextDelay computes the reconnect delay for the given attempt (0-based):
// base doubled per attempt, capped at max, with the jitter factor applied
// below the cap. jitter returns a value in [0,1); ±10% like the usual
// client retry loops. Successive delays are non-decreasing up to max.
func nextDelay(attempt int, base, max time.Duration, jitter func() float64) time.Duration {
	d := base
	for i := 0; i < attempt; i++ {
		d *= 2
		if d <= 0 || d >= max {
			return max
		}
	}
	if d >= max {
		return max
	}
	j := time.Duration(float64(d) * (0.9 + 0.2*jitter()))
	if j > max {
		return max
	}
	return j
}

func randomJitter() float64 {
	return rand.Float64()
}
