package models

import (
	"strconv"
	"strings"
)

// FormRecord is a submission as typed by the user. Age is free text.
type FormRecord struct {
	Name string `json:"name"`
	Age  string `json:"age"`
}

// LogEntry represents a single persisted submission. created_at is
// assigned by the store and never read back.
type LogEntry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Age  *int64 `json:"age"` // nil when the submitted age was not numeric
}

// NewLogEntry builds the row to persist for a submitted form, applying the
// age coercion policy.
func NewLogEntry(form FormRecord) *LogEntry {
	return &LogEntry{
		Name: form.Name,
		Age:  CoerceAge(form.Age),
	}
}

// CoerceAge parses a base-10 integer age. Anything that does not parse
// (empty, non-numeric, out of range) yields nil rather than an error.
func CoerceAge(raw string) *int64 {
	age, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil
	}
	return &age
}
