package resources

import (
	"fmt"
	"time"
)

// formatAge formats the time since createdAt as a human-readable age string
func formatAge(createdAt, now time.Time) string {
	if createdAt.IsZero() {
		return "<unknown>"
	}
	age := now.Sub(createdAt)

	days := int(age.Hours()) / 24
	hours := int(age.Hours()) % 24
	minutes := int(age.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd", days)
	} else if hours > 0 {
		return fmt.Sprintf("%dh", hours)
	} else if minutes > 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%ds", int(age.Seconds()))
}
