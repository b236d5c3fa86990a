package service

import (
	"testing"
	"time"
)

func TestRatingWindow(t *testing.T) {
	tests := []struct {
		name      string
		base      int
		perMinute int
		hardCap   int
		waited    time.Duration
		expected  int
	}{
		{
			name:      "Zero wait uses base window",
			base:      100,
			perMinute: 20,
			hardCap:   500,
			waited:    0,
			expected:  100,
		},
		{
			name:      "Partial minute does not expand",
			base:      100,
			perMinute: 20,
			hardCap:   500,
			waited:    59 * time.Second,
			expected:  100,
		},
		{
			name:      "Full minute expands once",
			base:      100,
			perMinute: 20,
			hardCap:   500,
			waited:    time.Minute,
			expected:  120,
		},
		{
			name:      "Four minutes of waiting",
			base:      100,
			perMinute: 20,
			hardCap:   500,
			waited:    4 * time.Minute,
			expected:  180,
		},
		{
			name:      "Four and a half minutes floors to four",
			base:      100,
			perMinute: 20,
			hardCap:   500,
			waited:    4*time.Minute + 30*time.Second,
			expected:  180,
		},
		{
			name:      "Long wait hits the hard cap",
			base:      100,
			perMinute: 20,
			hardCap:   500,
			waited:    time.Hour,
			expected:  500,
		},
		{
			name:      "Cap exactly reached",
			base:      100,
			perMinute: 20,
			hardCap:   500,
			waited:    20 * time.Minute,
			expected:  500,
		},
		{
			name:      "Negative wait clamps to base",
			base:      100,
			perMinute: 20,
			hardCap:   500,
			waited:    -time.Minute,
			expected:  100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := RatingWindow(tt.base, tt.perMinute, tt.hardCap, tt.waited)
			if actual != tt.expected {
				t.Errorf("RatingWindow(%d, %d, %d, %v) = %d, want %d",
					tt.base, tt.perMinute, tt.hardCap, tt.waited, actual, tt.expected)
			}
		})
	}
}

func TestRatingWindow_Monotonic(t *testing.T) {
	prev := 0
	for waited := time.Duration(0); waited <= time.Hour; waited += 17 * time.Second {
		window := RatingWindow(100, 20, 500, waited)

		if window < prev {
			t.Fatalf("window shrank from %d to %d at wait %v", prev, window, waited)
		}
		if window > 500 {
			t.Fatalf("window %d exceeded hard cap at wait %v", window, waited)
		}

		prev = window
	}
}
