package options

import (
	"reflect"
	"testing"

	"tableflip.dev/today/pkg/model"
)

func TestPatternAbsent(t *testing.T) {
	o := &RecurrenceOptions{Interval: 1}
	p, err := o.Pattern()
	if err != nil {
		t.Fatalf("no flags is not an error, %v", err)
	}
	if p != nil {
		t.Fatalf("no --every means no pattern, got %+v", p)
	}
}

func TestPatternWeekly(t *testing.T) {
	o := &RecurrenceOptions{Every: "weekly", Interval: 2, On: "1, 3,5", Until: "2024-12-31", Count: 10}
	p, err := o.Pattern()
	if err != nil {
		t.Fatalf("failed to build pattern, %v", err)
	}
	want := &model.RecurrencePattern{
		Frequency:  model.Weekly,
		Interval:   2,
		EndDate:    "2024-12-31",
		EndAfter:   10,
		DaysOfWeek: []int{1, 3, 5},
	}
	if !reflect.DeepEqual(p, want) {
		t.Fatalf("expected %+v, got %+v", want, p)
	}
}

func TestPatternRejectsBadInput(t *testing.T) {
	if _, err := (&RecurrenceOptions{Every: "yearly"}).Pattern(); err == nil {
		t.Fatalf("unsupported frequency must error")
	}
	if _, err := (&RecurrenceOptions{Every: "weekly", On: "7"}).Pattern(); err == nil {
		t.Fatalf("weekday out of range must error")
	}
	if _, err := (&RecurrenceOptions{Every: "weekly", On: "mon"}).Pattern(); err == nil {
		t.Fatalf("non-numeric weekday must error")
	}
}

func TestPatternNormalizesCase(t *testing.T) {
	p, err := (&RecurrenceOptions{Every: "Daily", Interval: 1}).Pattern()
	if err != nil {
		t.Fatalf("failed to build pattern, %v", err)
	}
	if p.Frequency != model.Daily {
		t.Fatalf("frequency should normalize, got %q", p.Frequency)
	}
}
