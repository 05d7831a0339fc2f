package model

import (
	"fmt"
	"strings"
	"time"
)

// TimedItem is anything the calendar core can place on a day: availability
// slots, scheduled classes and reservations.
type TimedItem interface {
	ItemID() string
	Start() time.Time
	End() time.Time
}

const (
	DateLayout      = "2006-01-02"
	MonthLayout     = "2006-01"
	ClockLayout     = "15:04"
	LocalTimeLayout = "2006-01-02T15:04:05"
)

var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	LocalTimeLayout,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	DateLayout,
}

// ParseTimestamp reads a timestamp as sent by the booking backend. Values
// carrying an offset are converted into loc; zone-less values are read as
// wall-clock time in loc. An empty string yields the zero time.
func ParseTimestamp(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range zonelessLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

// FormatLocal renders t as the zone-less local form the backend accepts on
// submission.
func FormatLocal(t time.Time) string {
	return t.Format(LocalTimeLayout)
}
