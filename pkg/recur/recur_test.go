package recur

import (
	"reflect"
	"testing"

	"tableflip.dev/today/pkg/model"
)

func TestMatchesDaily(t *testing.T) {
	p := model.RecurrencePattern{Frequency: model.Daily, Interval: 2}
	anchor := "2024-01-01"

	cases := []struct {
		date string
		want bool
	}{
		{"2024-01-01", true},
		{"2024-01-02", false},
		{"2024-01-03", true},
		{"2024-01-04", false},
		{"2024-01-05", true},
		{"2023-12-31", false}, // before the anchor
	}
	for _, c := range cases {
		if got := Matches(c.date, anchor, p); got != c.want {
			t.Fatalf("daily/2 %s: expected %v, got %v", c.date, c.want, got)
		}
	}
}

func TestMatchesWeekly(t *testing.T) {
	// 2024-01-01 is a Monday
	p := model.RecurrencePattern{Frequency: model.Weekly, Interval: 1, DaysOfWeek: []int{1, 3}}
	anchor := "2024-01-01"

	cases := []struct {
		date string
		want bool
	}{
		{"2024-01-01", true},  // Mon
		{"2024-01-02", false}, // Tue
		{"2024-01-03", true},  // Wed
		{"2024-01-06", false}, // Sat
		{"2024-01-08", true},  // Mon
		{"2024-01-10", true},  // Wed
	}
	for _, c := range cases {
		if got := Matches(c.date, anchor, p); got != c.want {
			t.Fatalf("weekly %s: expected %v, got %v", c.date, c.want, got)
		}
	}
}

func TestMatchesWeeklyIntervalCountsElapsedWeeks(t *testing.T) {
	// every 2 weeks from a Monday anchor; the week count is elapsed
	// days / 7 floored, not calendar-week aligned, so the Wednesday of
	// week zero still matches while week one does not.
	p := model.RecurrencePattern{Frequency: model.Weekly, Interval: 2, DaysOfWeek: []int{1, 3}}
	anchor := "2024-01-01"

	if !Matches("2024-01-03", anchor, p) {
		t.Fatalf("Wednesday of week 0 matches")
	}
	if Matches("2024-01-08", anchor, p) {
		t.Fatalf("Monday of week 1 does not match on an every-2-weeks pattern")
	}
	if !Matches("2024-01-15", anchor, p) {
		t.Fatalf("Monday of week 2 matches")
	}
}

func TestMatchesMonthly(t *testing.T) {
	p := model.RecurrencePattern{Frequency: model.Monthly, Interval: 1}
	anchor := "2024-01-15"

	if !Matches("2024-02-15", anchor, p) {
		t.Fatalf("same day next month matches")
	}
	if Matches("2024-02-14", anchor, p) {
		t.Fatalf("different day of month does not match")
	}
	if !Matches("2025-01-15", anchor, p) {
		t.Fatalf("a year later matches with interval 1")
	}

	every3 := model.RecurrencePattern{Frequency: model.Monthly, Interval: 3}
	if Matches("2024-02-15", anchor, every3) {
		t.Fatalf("one month is not a multiple of 3")
	}
	if !Matches("2024-04-15", anchor, every3) {
		t.Fatalf("three months is a multiple of 3")
	}
}

func TestMonthlyDay31SkipsShortMonths(t *testing.T) {
	// anchored on the 31st there is simply no occurrence in February,
	// even in a leap year; this is pinned behavior, not a bug
	p := model.RecurrencePattern{Frequency: model.Monthly, Interval: 1}
	anchor := "2024-01-31"

	if Matches("2024-02-29", anchor, p) {
		t.Fatalf("February has no day 31, 02-29 must not match")
	}
	if !Matches("2024-03-31", anchor, p) {
		t.Fatalf("March 31 matches")
	}

	got := Enumerate(anchor, p, "2024-04-30")
	want := []string{"2024-01-31", "2024-03-31"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestMatchesEndDate(t *testing.T) {
	p := model.RecurrencePattern{Frequency: model.Daily, Interval: 1, EndDate: "2024-01-05"}
	anchor := "2024-01-01"

	if !Matches("2024-01-05", anchor, p) {
		t.Fatalf("the end date itself is included")
	}
	if Matches("2024-01-06", anchor, p) {
		t.Fatalf("past the end date never matches")
	}
}

func TestEnumerateEndAfter(t *testing.T) {
	p := model.RecurrencePattern{Frequency: model.Daily, Interval: 2, EndAfter: 3}
	got := Enumerate("2024-01-01", p, "2024-12-31")
	want := []string{"2024-01-01", "2024-01-03", "2024-01-05"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	// pure: replaying yields the same sequence
	again := Enumerate("2024-01-01", p, "2024-12-31")
	if !reflect.DeepEqual(got, again) {
		t.Fatalf("enumerate is not restartable: %v vs %v", got, again)
	}
}

func TestEnumerateBothBoundsFirstHitWins(t *testing.T) {
	p := model.RecurrencePattern{Frequency: model.Daily, Interval: 1, EndDate: "2024-01-03", EndAfter: 10}
	got := Enumerate("2024-01-01", p, "2024-01-31")
	if len(got) != 3 {
		t.Fatalf("end date cuts off before the count: %v", got)
	}

	p = model.RecurrencePattern{Frequency: model.Daily, Interval: 1, EndDate: "2024-01-31", EndAfter: 2}
	got = Enumerate("2024-01-01", p, "2024-01-31")
	if len(got) != 2 {
		t.Fatalf("count cuts off before the end date: %v", got)
	}
}

func TestEnumerateRange(t *testing.T) {
	p := model.RecurrencePattern{Frequency: model.Weekly, Interval: 1, DaysOfWeek: []int{5}}
	got := Enumerate("2024-03-01", p, "2024-03-15")
	want := []string{"2024-03-01", "2024-03-08", "2024-03-15"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if out := Enumerate("2024-03-01", p, "2024-02-01"); out != nil {
		t.Fatalf("an inverted range yields nothing, got %v", out)
	}
}

func TestNonPositiveIntervalNeverLoops(t *testing.T) {
	p := model.RecurrencePattern{Frequency: model.Daily, Interval: 0}
	anchor := "2024-01-01"

	if !Matches(anchor, anchor, p) {
		t.Fatalf("the anchor itself still matches")
	}
	if Matches("2024-01-02", anchor, p) {
		t.Fatalf("nothing beyond the anchor matches with interval 0")
	}

	got := Enumerate(anchor, p, "2030-01-01")
	if len(got) != 1 || got[0] != anchor {
		t.Fatalf("expected just the anchor, got %v", got)
	}
}

func TestMalformedDatesNeverMatch(t *testing.T) {
	p := model.RecurrencePattern{Frequency: model.Daily, Interval: 1}
	if Matches("not-a-date", "2024-01-01", p) {
		t.Fatalf("malformed candidate must not match")
	}
	if Matches("2024-01-02", "nope", p) {
		t.Fatalf("malformed anchor must not match")
	}
	if out := Enumerate("nope", p, "2024-01-31"); out != nil {
		t.Fatalf("malformed anchor enumerates nothing, got %v", out)
	}
}

func TestNextAfter(t *testing.T) {
	p := model.RecurrencePattern{Frequency: model.Weekly, Interval: 1, DaysOfWeek: []int{5}}
	if got := NextAfter("2024-03-01", "2024-03-01", p, 30); got != "2024-03-08" {
		t.Fatalf("expected 2024-03-08, got %q", got)
	}
	if got := NextAfter("2024-03-01", "2024-03-01", p, 3); got != "" {
		t.Fatalf("expected nothing inside a 3-day horizon, got %q", got)
	}
}
