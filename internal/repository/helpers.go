package repository

import "time"

// timestampLayout is the text form used for updated_at columns.
const timestampLayout = time.RFC3339Nano

// nowUTC returns the current UTC time formatted for storage.
func nowUTC() string {
	return time.Now().UTC().Format(timestampLayout)
}

// parseTimestamp parses a stored updated_at value, returning the zero time
// for empty or malformed text.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
