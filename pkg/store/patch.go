package store

import "tableflip.dev/today/pkg/model"

// Patches are explicit field masks: a nil field leaves the stored value
// untouched, a non-nil field overwrites it. Clearing an optional
// sub-structure is its own flag rather than a nil-vs-absent pun.

type TaskPatch struct {
	Text            *string
	Completed       *bool
	DueDate         *string // set to "" to clear
	Priority        *string
	Subtasks        *[]model.Subtask
	Recurrence      *model.RecurrencePattern
	ClearRecurrence bool
}

type EventPatch struct {
	Text            *string
	Date            *string
	Hour            *int
	Minutes         *int
	EndHour         *int
	EndMinutes      *int
	ClearEnd        bool
	AllDay          *bool
	Location        *string
	Recurrence      *model.RecurrencePattern
	ClearRecurrence bool
}

type ProjectPatch struct {
	Name    *string
	Content *string
}
