package model

import "time"

type Subtask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Task is a stored template. DueDate is the anchor date when Recurrence
// is set; Completed/CompletedAt are only meaningful without Recurrence,
// a recurring task tracks per-occurrence completion in CompletedDates.
// ParentTaskID is never set on stored tasks; it marks projected
// instances.
type Task struct {
	ID             string             `json:"id"`
	Text           string             `json:"text"`
	Completed      bool               `json:"completed"`
	CompletedAt    *Timestamp         `json:"completedAt,omitempty"`
	DueDate        string             `json:"dueDate,omitempty"`
	Priority       string             `json:"priority,omitempty"`
	Order          int                `json:"order"`
	Subtasks       []Subtask          `json:"subtasks,omitempty"`
	Recurrence     *RecurrencePattern `json:"recurrence,omitempty"`
	ParentTaskID   string             `json:"parentTaskId,omitempty"`
	CompletedDates []string           `json:"completedDates,omitempty"`
	CreatedAt      Timestamp          `json:"createdAt"`
	UpdatedAt      Timestamp          `json:"updatedAt"`
}

// CompletedOn reports whether the occurrence on the given date key was
// marked done.
func (t *Task) CompletedOn(date string) bool {
	for _, d := range t.CompletedDates {
		if d == date {
			return true
		}
	}
	return false
}

// ModifiedAt is the timestamp the sync merge compares records by,
// falling back to CreatedAt for records written before UpdatedAt
// existed.
func (t *Task) ModifiedAt() time.Time {
	if !t.UpdatedAt.IsZero() {
		return t.UpdatedAt.Time
	}
	return t.CreatedAt.Time
}

func (t *Task) Clone() Task {
	c := *t
	if t.CompletedAt != nil {
		ts := *t.CompletedAt
		c.CompletedAt = &ts
	}
	if t.Subtasks != nil {
		c.Subtasks = append([]Subtask(nil), t.Subtasks...)
	}
	if t.CompletedDates != nil {
		c.CompletedDates = append([]string(nil), t.CompletedDates...)
	}
	c.Recurrence = t.Recurrence.Clone()
	return c
}
