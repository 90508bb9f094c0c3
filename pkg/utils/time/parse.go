// ABOUTME: Date parsing and display helpers for quest and badge dates
// ABOUTME: Sources send ISO dates, timestamps or unix seconds; display falls back to the raw string

package time

import (
	"strconv"
	"strings"
	"time"
)

// Formats seen in the challenge document and the badge API
var timeFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// DisplayLayout is how dates are shown on quest cards
const DisplayLayout = "Jan 2, 2006"

// ParseFlexibleTime attempts to parse a time string using various formats.
// A bare integer is read as unix seconds. Unparseable input gives the zero time.
func ParseFlexibleTime(timeStr string) time.Time {
	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" {
		return time.Time{}
	}

	for _, format := range timeFormats {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t
		}
	}

	if secs, err := strconv.ParseInt(timeStr, 10, 64); err == nil && secs > 0 {
		return time.Unix(secs, 0).UTC()
	}

	return time.Time{}
}

// Display formats a date for a card, or returns the input unchanged when it cannot be parsed
func Display(timeStr string) string {
	t := ParseFlexibleTime(timeStr)
	if t.IsZero() {
		return strings.TrimSpace(timeStr)
	}
	return t.Format(DisplayLayout)
}
