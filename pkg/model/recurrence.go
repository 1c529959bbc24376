package model

import (
	"fmt"
	"strings"
)

// Frequency is the unit a recurrence repeats on.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

func (f Frequency) IsValid() bool {
	switch f {
	case Daily, Weekly, Monthly:
		return true
	default:
		return false
	}
}

func ParseFrequency(input string) (Frequency, error) {
	f := Frequency(strings.TrimSpace(strings.ToLower(input)))
	if !f.IsValid() {
		return "", fmt.Errorf("invalid frequency: %q", input)
	}
	return f, nil
}

// RecurrencePattern describes how a template repeats relative to its
// anchor date. EndDate (inclusive, "YYYY-MM-DD") and EndAfter (max
// occurrence count) may both be set; whichever bound is hit first wins.
// DaysOfWeek (0=Sunday .. 6=Saturday) only applies to weekly patterns.
type RecurrencePattern struct {
	Frequency  Frequency `json:"frequency"`
	Interval   int       `json:"interval"`
	EndDate    string    `json:"endDate,omitempty"`
	EndAfter   int       `json:"endAfter,omitempty"`
	DaysOfWeek []int     `json:"daysOfWeek,omitempty"`
}

func (p RecurrencePattern) OnWeekday(weekday int) bool {
	for _, d := range p.DaysOfWeek {
		if d == weekday {
			return true
		}
	}
	return false
}

func (p *RecurrencePattern) Clone() *RecurrencePattern {
	if p == nil {
		return nil
	}
	c := *p
	if p.DaysOfWeek != nil {
		c.DaysOfWeek = append([]int(nil), p.DaysOfWeek...)
	}
	return &c
}
