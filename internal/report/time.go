package report

import "time"

// FormatUTC returns t as an RFC3339 UTC timestamp string.
func FormatUTC(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatLocal returns t as `YYYY-MM-DD HH:MM:SS` in local time.
func FormatLocal(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}
