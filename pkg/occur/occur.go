// Package occur projects recurring templates into the concrete
// instances visible on a date or date range. Instances are computed on
// demand and never persisted; deleting a template implicitly deletes
// every instance it ever projected.
package occur

import (
	"tableflip.dev/today/pkg/dates"
	"tableflip.dev/today/pkg/model"
	"tableflip.dev/today/pkg/recur"
)

// TaskInstance is the projection of a task template onto one concrete
// date. It is a distinct type from model.Task so an instance can never
// be handed back to the store as a template.
type TaskInstance struct {
	model.Task

	// TemplateID is the id of the owning template and Date the concrete
	// occurrence date, regardless of whether the instance is the
	// template's own anchor date or a synthesized recurrence.
	TemplateID string
	Date       string
}

// EventInstance is the projection of an event template onto one date.
type EventInstance struct {
	model.Event

	TemplateID string
	Date       string
}

// TasksOn returns the task instances visible on the given date key.
// Each template contributes at most one instance: the template itself
// when its due date matches exactly, otherwise a synthesized occurrence
// when the recurrence pattern matches. Stored records that already
// carry a parent id are skipped defensively; they should not exist.
func TasksOn(tasks []model.Task, date string) []TaskInstance {
	out := make([]TaskInstance, 0)
	for i := range tasks {
		t := &tasks[i]
		if t.ParentTaskID != "" {
			continue
		}
		if t.DueDate == date {
			out = append(out, TaskInstance{Task: t.Clone(), TemplateID: t.ID, Date: date})
			continue
		}
		if t.Recurrence != nil && t.DueDate != "" && recur.Matches(date, t.DueDate, *t.Recurrence) {
			inst := t.Clone()
			inst.DueDate = date
			inst.ParentTaskID = t.ID
			inst.Completed = t.CompletedOn(date)
			out = append(out, TaskInstance{Task: inst, TemplateID: t.ID, Date: date})
		}
	}
	return out
}

// EventsOn returns the event instances visible on the given date key.
func EventsOn(events []model.Event, date string) []EventInstance {
	out := make([]EventInstance, 0)
	for i := range events {
		e := &events[i]
		if e.ParentEventID != "" {
			continue
		}
		if e.Date == date {
			out = append(out, EventInstance{Event: e.Clone(), TemplateID: e.ID, Date: date})
			continue
		}
		if e.Recurrence != nil && recur.Matches(date, e.Date, *e.Recurrence) {
			inst := e.Clone()
			inst.Date = date
			inst.ParentEventID = e.ID
			out = append(out, EventInstance{Event: inst, TemplateID: e.ID, Date: date})
		}
	}
	return out
}

// TasksBetween projects every date in [from, to] inclusive and
// de-duplicates per (template, date) so a template never appears twice
// for the same day.
func TasksBetween(tasks []model.Task, from, to string) []TaskInstance {
	start, err := dates.Parse(from)
	if err != nil {
		return nil
	}
	end, err := dates.Parse(to)
	if err != nil || end.Before(start) {
		return nil
	}

	seen := make(map[[2]string]bool)
	out := make([]TaskInstance, 0)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		for _, inst := range TasksOn(tasks, dates.Format(d)) {
			key := [2]string{inst.TemplateID, inst.Date}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, inst)
		}
	}
	return out
}

// EventsBetween is the event form of TasksBetween.
func EventsBetween(events []model.Event, from, to string) []EventInstance {
	start, err := dates.Parse(from)
	if err != nil {
		return nil
	}
	end, err := dates.Parse(to)
	if err != nil || end.Before(start) {
		return nil
	}

	seen := make(map[[2]string]bool)
	out := make([]EventInstance, 0)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		for _, inst := range EventsOn(events, dates.Format(d)) {
			key := [2]string{inst.TemplateID, inst.Date}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, inst)
		}
	}
	return out
}
