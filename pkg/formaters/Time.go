package formaters

import (
	"fmt"
	"time"
)

// Ago renders the age of timestamp relative to now, rounded to its largest
// unit.
func Ago(timestamp time.Time, now time.Time) string {
	if timestamp.IsZero() {
		return "never"
	}

	d := now.Sub(timestamp)

	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		minutes := int(d.Minutes())
		if seconds := int(d.Seconds()) % 60; seconds > 0 {
			return fmt.Sprintf("%dm%ds", minutes, seconds)
		}
		return fmt.Sprintf("%dm", minutes)
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours())/24)
	}
}
