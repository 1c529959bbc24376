// Package dates holds the calendar-day arithmetic the rest of the
// system builds on. Dates travel as "YYYY-MM-DD" keys derived from
// local calendar components, never from UTC-shifted instants, and all
// before/after comparisons are local-midnight based.
package dates

import (
	"fmt"
	"time"

	"tableflip.dev/today/pkg/model"
)

const LayoutISO = "2006-01-02"

// Format renders t's local calendar day as the canonical date key.
func Format(t time.Time) string {
	y, m, d := t.Local().Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// Parse returns local midnight of the given date key.
func Parse(key string) (time.Time, error) {
	t, err := time.ParseInLocation(LayoutISO, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("dates: parse %q: %w", key, err)
	}
	return t, nil
}

// DayNumber counts t's local calendar day as days since the Unix
// epoch. Differences between day numbers are exact calendar-day
// distances regardless of DST transitions.
func DayNumber(t time.Time) int {
	y, m, d := t.Local().Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// DaysUntil returns the calendar-day distance from now's day to the due
// date's day. The second return is false when due is empty or
// unparseable.
func DaysUntil(due string, now time.Time) (int, bool) {
	if due == "" {
		return 0, false
	}
	d, err := Parse(due)
	if err != nil {
		return 0, false
	}
	return DayNumber(d) - DayNumber(now), true
}

// IsOverdue reports whether due's local midnight is strictly before
// now's local midnight.
func IsOverdue(due string, now time.Time) bool {
	n, ok := DaysUntil(due, now)
	return ok && n < 0
}

// EventEnded reports whether the event is entirely in the past: its
// date is before today, or it is today and now is at or past the
// event's end time. All-day events occupy the whole day and only end
// once the day does.
func EventEnded(e *model.Event, now time.Time) bool {
	today := Format(now)
	if e.Date < today {
		return true
	}
	if e.Date > today {
		return false
	}
	if e.AllDay {
		return false
	}
	endHour, endMinutes := e.End()
	y, m, d := now.Local().Date()
	end := time.Date(y, m, d, endHour, endMinutes, 0, 0, now.Location())
	return !now.Before(end)
}
