// Package recur decides which dates a recurrence pattern occupies
// relative to its anchor date.
//
// The arithmetic is deliberately plainer than RFC 5545: weekly
// intervals count whole 7-day blocks elapsed since the anchor rather
// than calendar-aligned weeks, and monthly recurrence matches strictly
// on the anchor's day-of-month, so an anchor on the 31st simply never
// occurs in shorter months.
package recur

import (
	"tableflip.dev/today/pkg/dates"
	"tableflip.dev/today/pkg/model"
)

// Matches reports whether candidate is an occurrence of the pattern
// anchored at anchor. Both are "YYYY-MM-DD" keys; malformed input never
// matches. A non-positive interval degrades to "no recurrence": only
// the anchor date itself matches.
func Matches(candidate, anchor string, p model.RecurrencePattern) bool {
	cand, err := dates.Parse(candidate)
	if err != nil {
		return false
	}
	anc, err := dates.Parse(anchor)
	if err != nil {
		return false
	}

	elapsed := dates.DayNumber(cand) - dates.DayNumber(anc)
	if elapsed < 0 {
		return false
	}
	if p.EndDate != "" {
		end, err := dates.Parse(p.EndDate)
		if err != nil || cand.After(end) {
			return false
		}
	}
	if p.Interval <= 0 {
		return elapsed == 0
	}

	switch p.Frequency {
	case model.Daily:
		return elapsed%p.Interval == 0
	case model.Weekly:
		if !p.OnWeekday(int(cand.Weekday())) {
			return false
		}
		return (elapsed/7)%p.Interval == 0
	case model.Monthly:
		if cand.Day() != anc.Day() {
			return false
		}
		months := (cand.Year()-anc.Year())*12 + int(cand.Month()) - int(anc.Month())
		return months >= 0 && months%p.Interval == 0
	default:
		return false
	}
}

// Enumerate walks day by day from anchor through rangeEnd inclusive and
// returns every matching date in order, stopping early once
// p.EndAfter occurrences (when set) have been collected. It is a pure
// function; calling it again replays the same sequence.
func Enumerate(anchor string, p model.RecurrencePattern, rangeEnd string) []string {
	start, err := dates.Parse(anchor)
	if err != nil {
		return nil
	}
	end, err := dates.Parse(rangeEnd)
	if err != nil || end.Before(start) {
		return nil
	}

	var out []string
	for t := start; !t.After(end); t = t.AddDate(0, 0, 1) {
		key := dates.Format(t)
		if Matches(key, anchor, p) {
			out = append(out, key)
			if p.EndAfter > 0 && len(out) >= p.EndAfter {
				break
			}
		}
		if p.Interval <= 0 {
			// no recurrence beyond the anchor, stop scanning
			break
		}
	}
	return out
}

// NextAfter returns the first occurrence strictly after the given date
// within horizon days, or "" when none exists in that window.
func NextAfter(after, anchor string, p model.RecurrencePattern, horizon int) string {
	t, err := dates.Parse(after)
	if err != nil || horizon <= 0 {
		return ""
	}
	for i := 1; i <= horizon; i++ {
		key := dates.Format(t.AddDate(0, 0, i))
		if Matches(key, anchor, p) {
			return key
		}
	}
	return ""
}
