package model

import "time"

// Event is a stored template. Date is the anchor date when Recurrence
// is set. EndHour/EndMinutes, when present, must denote a time after
// the start on the same day; the engine does not validate the range.
// AllDay suppresses all time fields.
type Event struct {
	ID            string             `json:"id"`
	Text          string             `json:"text"`
	Date          string             `json:"date"`
	Hour          int                `json:"hour"`
	Minutes       int                `json:"minutes"`
	EndHour       *int               `json:"endHour,omitempty"`
	EndMinutes    *int               `json:"endMinutes,omitempty"`
	AllDay        bool               `json:"allDay,omitempty"`
	Location      string             `json:"location,omitempty"`
	Recurrence    *RecurrencePattern `json:"recurrence,omitempty"`
	ParentEventID string             `json:"parentEventId,omitempty"`
	SourceTaskID  string             `json:"sourceTaskId,omitempty"`
	CreatedAt     Timestamp          `json:"createdAt"`
	UpdatedAt     Timestamp          `json:"updatedAt"`
}

// End returns the event's end time on its own date, defaulting to one
// hour after the start when no explicit end is set.
func (e *Event) End() (hour, minutes int) {
	hour = e.Hour + 1
	minutes = 0
	if e.EndHour != nil {
		hour = *e.EndHour
	}
	if e.EndMinutes != nil {
		minutes = *e.EndMinutes
	}
	return hour, minutes
}

func (e *Event) ModifiedAt() time.Time {
	if !e.UpdatedAt.IsZero() {
		return e.UpdatedAt.Time
	}
	return e.CreatedAt.Time
}

func (e *Event) Clone() Event {
	c := *e
	if e.EndHour != nil {
		h := *e.EndHour
		c.EndHour = &h
	}
	if e.EndMinutes != nil {
		m := *e.EndMinutes
		c.EndMinutes = &m
	}
	c.Recurrence = e.Recurrence.Clone()
	return c
}
