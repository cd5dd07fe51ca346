// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package approval

import (
	"fmt"
	"time"
)

// Ended is rendered when the target time is not in the future.
const Ended = "ENDED"

// TimeLeft renders the remaining time until `until`, relative to `now`, as
// the largest whole unit that is at least 1: "2 day(s)", "1 hour(s)",
// "45 second(s)". Returns "ENDED" once the target has passed.
func TimeLeft(until, now time.Time) string {
	remaining := until.Sub(now)
	if remaining <= 0 {
		return Ended
	}

	switch {
	case remaining >= 24*time.Hour:
		return fmt.Sprintf("%d day(s)", int(remaining.Hours())/24)
	case remaining >= time.Hour:
		return fmt.Sprintf("%d hour(s)", int(remaining.Hours()))
	case remaining >= time.Minute:
		return fmt.Sprintf("%d minute(s)", int(remaining.Minutes()))
	default:
		seconds := int(remaining.Seconds())
		if seconds < 1 {
			seconds = 1
		}
		return fmt.Sprintf("%d second(s)", seconds)
	}
}
