package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestampJSON(t *testing.T) {
	ts := Timestamp{Time: time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)}
	data, err := json.Marshal(&ts)
	if err != nil {
		t.Fatalf("failed to marshal, %v", err)
	}
	if string(data) != `"2024-03-10T09:30:00Z"` {
		t.Fatalf("unexpected encoding %s", data)
	}

	var back Timestamp
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("failed to unmarshal, %v", err)
	}
	if !back.Equal(ts.Time) {
		t.Fatalf("round trip landed on %v", back)
	}
}

func TestTimestampJSONZeroAndEmpty(t *testing.T) {
	var zero Timestamp
	data, err := json.Marshal(&zero)
	if err != nil {
		t.Fatalf("failed to marshal, %v", err)
	}
	if string(data) != `""` {
		t.Fatalf("zero encodes as the empty string, got %s", data)
	}

	var back Timestamp
	if err := json.Unmarshal([]byte(`""`), &back); err != nil {
		t.Fatalf("failed to unmarshal empty, %v", err)
	}
	if !back.IsZero() {
		t.Fatalf("empty decodes to zero, got %v", back)
	}

	if err := json.Unmarshal([]byte(`"yesterday"`), &back); err == nil {
		t.Fatalf("expected an error for garbage input")
	}
}

func TestTaskModifiedAtFallsBack(t *testing.T) {
	created := Timestamp{Time: time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC)}
	updated := Timestamp{Time: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)}

	task := Task{CreatedAt: created, UpdatedAt: updated}
	if !task.ModifiedAt().Equal(updated.Time) {
		t.Fatalf("UpdatedAt wins when set")
	}

	task = Task{CreatedAt: created}
	if !task.ModifiedAt().Equal(created.Time) {
		t.Fatalf("CreatedAt backs up a missing UpdatedAt")
	}
}

func TestTaskCloneIsDeep(t *testing.T) {
	orig := Task{
		ID:             "a",
		Subtasks:       []Subtask{{ID: "s", Text: "part"}},
		CompletedDates: []string{"2024-03-01"},
		Recurrence:     &RecurrencePattern{Frequency: Weekly, Interval: 1, DaysOfWeek: []int{1}},
	}

	c := orig.Clone()
	c.Subtasks[0].Completed = true
	c.CompletedDates[0] = "mutated"
	c.Recurrence.DaysOfWeek[0] = 6

	if orig.Subtasks[0].Completed {
		t.Fatalf("subtasks shared between clone and original")
	}
	if orig.CompletedDates[0] != "2024-03-01" {
		t.Fatalf("completed dates shared between clone and original")
	}
	if orig.Recurrence.DaysOfWeek[0] != 1 {
		t.Fatalf("recurrence shared between clone and original")
	}
}

func TestEventEndDefaults(t *testing.T) {
	e := Event{Hour: 9, Minutes: 15}
	if h, m := e.End(); h != 10 || m != 0 {
		t.Fatalf("default end is start hour + 1, got %d:%02d", h, m)
	}

	eh, em := 11, 45
	e.EndHour, e.EndMinutes = &eh, &em
	if h, m := e.End(); h != 11 || m != 45 {
		t.Fatalf("explicit end wins, got %d:%02d", h, m)
	}
}

func TestParseFrequency(t *testing.T) {
	for _, in := range []string{"daily", "Weekly", " MONTHLY "} {
		if _, err := ParseFrequency(in); err != nil {
			t.Fatalf("%q should parse, %v", in, err)
		}
	}
	if _, err := ParseFrequency("yearly"); err == nil {
		t.Fatalf("yearly is not a supported frequency")
	}
}

func TestRecurrencePatternOnWeekday(t *testing.T) {
	p := RecurrencePattern{DaysOfWeek: []int{0, 6}}
	if !p.OnWeekday(0) || !p.OnWeekday(6) {
		t.Fatalf("listed weekdays match")
	}
	if p.OnWeekday(3) {
		t.Fatalf("unlisted weekday must not match")
	}
}
