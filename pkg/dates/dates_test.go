package dates

import (
	"testing"
	"time"

	"tableflip.dev/today/pkg/model"
)

func TestFormatParseRoundTrip(t *testing.T) {
	cases := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
		time.Date(2024, 2, 29, 23, 59, 59, 0, time.Local),
		time.Date(1999, 12, 31, 12, 30, 0, 0, time.Local),
		time.Date(2031, 7, 4, 6, 0, 0, 0, time.Local),
	}
	for _, c := range cases {
		key := Format(c)
		back, err := Parse(key)
		if err != nil {
			t.Fatalf("parse %q: %v", key, err)
		}
		if !SameDay(back, c) {
			t.Fatalf("round trip %q landed on %v", key, back)
		}
	}
}

func TestFormatIsLocalAndPadded(t *testing.T) {
	d := time.Date(2024, 3, 5, 0, 30, 0, 0, time.Local)
	if got := Format(d); got != "2024-03-05" {
		t.Fatalf("expected 2024-03-05, got %q", got)
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 45, 0, 0, time.Local)

	if _, ok := DaysUntil("", now); ok {
		t.Fatalf("expected no answer for an absent due date")
	}

	cases := []struct {
		due  string
		want int
	}{
		{"2024-03-10", 0},
		{"2024-03-11", 1},
		{"2024-03-09", -1},
		{"2024-04-10", 31},
	}
	for _, c := range cases {
		got, ok := DaysUntil(c.due, now)
		if !ok {
			t.Fatalf("%s: expected an answer", c.due)
		}
		if got != c.want {
			t.Fatalf("%s: expected %d days, got %d", c.due, c.want, got)
		}
	}
}

func TestIsOverdue(t *testing.T) {
	// late in the day; only the calendar day matters
	now := time.Date(2024, 3, 10, 23, 59, 0, 0, time.Local)

	if IsOverdue("2024-03-10", now) {
		t.Fatalf("today is not overdue")
	}
	if !IsOverdue("2024-03-09", now) {
		t.Fatalf("yesterday is overdue")
	}
	if IsOverdue("", now) {
		t.Fatalf("no due date is never overdue")
	}
}

func TestEventEnded(t *testing.T) {
	now := time.Date(2024, 3, 10, 10, 0, 0, 0, time.Local)

	past := &model.Event{Date: "2024-03-09", Hour: 9}
	if !EventEnded(past, now) {
		t.Fatalf("yesterday's event has ended")
	}

	future := &model.Event{Date: "2024-03-11", Hour: 9}
	if EventEnded(future, now) {
		t.Fatalf("tomorrow's event has not ended")
	}

	// today, default end = start + 1h
	if !EventEnded(&model.Event{Date: "2024-03-10", Hour: 8}, now) {
		t.Fatalf("8:00-9:00 has ended by 10:00")
	}
	if EventEnded(&model.Event{Date: "2024-03-10", Hour: 9, Minutes: 30}, now) {
		t.Fatalf("9:30-10:30 has not ended at 10:00")
	}

	// exact end boundary counts as ended
	if !EventEnded(&model.Event{Date: "2024-03-10", Hour: 9}, now) {
		t.Fatalf("9:00-10:00 has ended at exactly 10:00")
	}

	// explicit end time
	endHour := 11
	if EventEnded(&model.Event{Date: "2024-03-10", Hour: 9, EndHour: &endHour}, now) {
		t.Fatalf("9:00-11:00 has not ended at 10:00")
	}

	// all-day events last the whole day
	if EventEnded(&model.Event{Date: "2024-03-10", AllDay: true}, now) {
		t.Fatalf("an all-day event today has not ended")
	}
}
