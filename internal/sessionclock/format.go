package sessionclock

import (
	"fmt"
	"time"
)

// FormatElapsed renders a duration as M:SS, or H:MM:SS past an hour.
func FormatElapsed(d time.Duration) string {
	total := int(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// FormattedElapsed renders the clock's current elapsed time.
func (c *Clock) FormattedElapsed() string {
	return FormatElapsed(c.Elapsed())
}
