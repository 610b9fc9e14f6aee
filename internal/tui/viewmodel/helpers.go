package viewmodel

import (
	"fmt"
	"strings"
	"time"
)

// TruncateString shortens s to maxLen runes, ending with "..." when there is room.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 0 {
		return ""
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// Bar renders fraction (clamped to 0-1) as a width-cell bar.
func Bar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	fraction = min(max(fraction, 0), 1)

	filled := int(fraction * float64(width))
	// Any non-zero value gets at least one cell.
	if filled == 0 && fraction > 0 {
		filled = 1
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// SanitizeForDisplay removes control characters and collapses whitespace.
func SanitizeForDisplay(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' {
			return ' '
		}
		return r
	}, s)

	return strings.Join(strings.Fields(s), " ")
}

// FormatDuration formats a duration in human-readable form.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		if seconds > 0 {
			return fmt.Sprintf("%dm %ds", minutes, seconds)
		}
		return fmt.Sprintf("%dm", minutes)
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if minutes > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dh", hours)
}

// Age describes how long ago fetchedAt was, to the minute.
func Age(fetchedAt, now time.Time) string {
	if fetchedAt.IsZero() {
		return "never"
	}
	d := now.Sub(fetchedAt).Truncate(time.Minute)
	if d < time.Minute {
		return "just now"
	}
	return FormatDuration(d) + " ago"
}
