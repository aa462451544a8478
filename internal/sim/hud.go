package sim

import (
	"fmt"

	"github.com/san-kum/eclipsehunter/internal/eclipse"
)

// ControlLines are the rows of the controls panel, ending with the current
// speed.
func ControlLines(speed float64) []string {
	return []string{
		"SPACE: Pause/Resume",
		"UP/DOWN: Change Speed",
		"CLICK: Select Planet",
		"H: Hide/Show This",
		fmt.Sprintf("Speed: %gx", speed),
	}
}

// TrackerLines are the rows of the tracker panel. The average appears once
// there is at least one eclipse.
func TrackerLines(s eclipse.Stats) []string {
	lines := []string{
		fmt.Sprintf("Eclipses Detected: %d", s.Count),
		fmt.Sprintf("Time Elapsed: %dy %dm", s.Years, s.Months),
	}
	if s.Count > 0 {
		lines = append(lines, fmt.Sprintf("Avg: Every %d days", s.AvgDays))
	}
	return lines
}
