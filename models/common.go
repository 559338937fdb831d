package models

import (
	"regexp"
	"time"
)

// ClockLayout is the wire format of the time endpoint (24-hour, zero-padded)
const ClockLayout = "15:04:05"

// ClockPlaceholder is displayed until the first successful time fetch
const ClockPlaceholder = "--:--:--"

var clockPattern = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)

// ErrorResponse is the structured error body returned by the API
type ErrorResponse struct {
	Error string `json:"error"`
}

// FormatClock formats a time as HH:MM:SS
func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// IsClockText reports whether s looks like HH:MM:SS
func IsClockText(s string) bool {
	return clockPattern.MatchString(s)
}
