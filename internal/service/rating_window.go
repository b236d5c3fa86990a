package service

import "time"

// RatingWindow computes the maximum tolerated rating difference for an
// entry that has waited the given duration. The window starts at base
// and grows by perMinute for every full minute waited, never exceeding
// hardCap. Pure: same inputs, same window.
func RatingWindow(base, perMinute, hardCap int, waited time.Duration) int {
	minutes := int(waited.Minutes())
	if minutes < 0 {
		minutes = 0
	}

	window := base + minutes*perMinute
	if window > hardCap {
		window = hardCap
	}

	return window
}
