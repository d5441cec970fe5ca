package report

import (
	"testing"
	"time"
)

func TestFormatUTC(t *testing.T) {
	ts := time.Date(2024, 1, 15, 11, 0, 0, 0, time.FixedZone("CET", 3600))
	if got := FormatUTC(ts); got != "2024-01-15T10:00:00Z" {
		t.Errorf("FormatUTC = %q", got)
	}
}

func TestFormatLocal(t *testing.T) {
	ts := time.Date(2024, 5, 1, 13, 4, 5, 0, time.Local)
	if got := FormatLocal(ts); got != "2024-05-01 13:04:05" {
		t.Errorf("FormatLocal = %q", got)
	}
}
