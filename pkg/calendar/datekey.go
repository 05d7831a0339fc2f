// Package calendar holds the scheduling core shared by every calendar
// screen: date keys, the month grid, per-day indexes, overlap detection and
// the URL-driven view state.
package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DateKey returns t's calendar day as YYYY-MM-DD, read from t's own
// location. Two instants on the same local day always share a key.
func DateKey(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// MonthKey returns t's calendar month as YYYY-MM, read from t's own location.
func MonthKey(t time.Time) string {
	y, m, _ := t.Date()
	return fmt.Sprintf("%04d-%02d", y, int(m))
}

var (
	reDateKey  = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	reMonthKey = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
)

// middayHour anchors a calendar day. Some zones start DST at midnight, so
// 00:00 does not exist there on that day and time.Date would roll it back
// into the previous one.
const middayHour = 12

// Day returns the given calendar day in loc, anchored at local noon.
func Day(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, middayHour, 0, 0, 0, loc)
}

// ParseDateKey turns a YYYY-MM-DD key into that day in loc, anchored at
// local noon. Keys must be zero-padded, and dates that do not exist on the
// calendar (2024-02-30) are rejected.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	m := reDateKey.FindStringSubmatch(key)
	if m == nil {
		return time.Time{}, fmt.Errorf("invalid date key %q", key)
	}
	y, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	d, _ := strconv.Atoi(m[3])
	if y == 0 || mo < 1 || mo > 12 || d < 1 {
		return time.Time{}, fmt.Errorf("invalid date key %q", key)
	}
	if time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC).Day() != d {
		return time.Time{}, fmt.Errorf("invalid date key %q", key)
	}
	if loc == nil {
		loc = time.Local
	}
	return Day(y, time.Month(mo), d, loc), nil
}

// ParseMonthKey turns a zero-padded YYYY-MM key into the first of that month
// in loc.
func ParseMonthKey(key string, loc *time.Location) (time.Time, error) {
	m := reMonthKey.FindStringSubmatch(key)
	if m == nil {
		return time.Time{}, fmt.Errorf("invalid month key %q", key)
	}
	y, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	if y == 0 || mo < 1 || mo > 12 {
		return time.Time{}, fmt.Errorf("invalid month key %q", key)
	}
	if loc == nil {
		loc = time.Local
	}
	return Day(y, time.Month(mo), 1, loc), nil
}

// SameDay reports whether a and b fall on the same calendar day, each read
// in its own location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// FirstOfMonth returns the first day of t's month.
func FirstOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return Day(y, m, 1, t.Location())
}
