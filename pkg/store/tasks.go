package store

import (
	"github.com/google/uuid"

	"tableflip.dev/today/pkg/model"
)

// Tasks returns a copy of the task collection in stored order.
func (s *Store) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, 0, len(s.tasks))
	for i := range s.tasks {
		out = append(out, s.tasks[i].Clone())
	}
	return out
}

func (s *Store) Task(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return s.tasks[i].Clone(), true
		}
	}
	return model.Task{}, false
}

// AddTask stores t as a new template. Identity, order, and timestamps
// are assigned here; completion state and any parent marker on the
// prototype are discarded.
func (s *Store) AddTask(t model.Task) (model.Task, error) {
	s.mu.Lock()
	now := model.Timestamp{Time: s.now()}
	t.ID = uuid.NewString()
	t.Completed = false
	t.CompletedAt = nil
	t.ParentTaskID = ""
	t.CompletedDates = nil
	t.Order = len(s.tasks)
	t.CreatedAt = now
	t.UpdatedAt = now
	s.tasks = append(s.tasks, t)
	err := s.saveTasks()
	s.mu.Unlock()
	if err != nil {
		return model.Task{}, err
	}
	stored := t.Clone()
	s.notify(Change{Type: ChangeUpsert, Collection: Tasks, ID: t.ID, Task: &stored})
	return t, nil
}

// UpdateTask merges the patch into the template and stamps UpdatedAt.
// When Completed is among the patched fields the completion routing
// rule applies: a recurring template with an instanceDate records the
// toggle in CompletedDates and never touches its own Completed flag; a
// non-recurring task toggles Completed/CompletedAt directly.
func (s *Store) UpdateTask(id string, patch TaskPatch, instanceDate string) (model.Task, error) {
	s.mu.Lock()
	idx := -1
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return model.Task{}, ErrNotFound
	}
	t := &s.tasks[idx]

	if patch.Text != nil {
		t.Text = *patch.Text
	}
	if patch.DueDate != nil {
		t.DueDate = *patch.DueDate
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.Subtasks != nil {
		t.Subtasks = append([]model.Subtask(nil), (*patch.Subtasks)...)
	}
	if patch.ClearRecurrence {
		t.Recurrence = nil
	} else if patch.Recurrence != nil {
		t.Recurrence = patch.Recurrence.Clone()
	}

	if patch.Completed != nil {
		if t.Recurrence != nil && instanceDate != "" {
			if *patch.Completed {
				if !t.CompletedOn(instanceDate) {
					t.CompletedDates = append(t.CompletedDates, instanceDate)
				}
			} else {
				kept := t.CompletedDates[:0]
				for _, d := range t.CompletedDates {
					if d != instanceDate {
						kept = append(kept, d)
					}
				}
				t.CompletedDates = kept
			}
		} else {
			if *patch.Completed && !t.Completed {
				ts := model.Timestamp{Time: s.now()}
				t.Completed = true
				t.CompletedAt = &ts
			} else if !*patch.Completed && t.Completed {
				t.Completed = false
				t.CompletedAt = nil
			}
		}
	}

	t.UpdatedAt = model.Timestamp{Time: s.now()}
	updated := t.Clone()
	err := s.saveTasks()
	s.mu.Unlock()
	if err != nil {
		return model.Task{}, err
	}
	s.notify(Change{Type: ChangeUpsert, Collection: Tasks, ID: id, Task: &updated})
	return updated, nil
}

func (s *Store) DeleteTask(id string) error {
	s.mu.Lock()
	kept := s.tasks[:0]
	found := false
	for _, t := range s.tasks {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.tasks = kept
	err := s.saveTasks()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify(Change{Type: ChangeDelete, Collection: Tasks, ID: id})
	return nil
}

// ReorderTasks replaces the collection with the supplied list and
// reassigns Order to each task's position. This is the only place Order
// ever changes.
func (s *Store) ReorderTasks(ordered []model.Task) error {
	s.mu.Lock()
	now := model.Timestamp{Time: s.now()}
	next := make([]model.Task, 0, len(ordered))
	for i := range ordered {
		t := ordered[i].Clone()
		t.Order = i
		t.UpdatedAt = now
		next = append(next, t)
	}
	s.tasks = next
	changed := make([]model.Task, 0, len(next))
	for i := range next {
		changed = append(changed, next[i].Clone())
	}
	err := s.saveTasks()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	for i := range changed {
		s.notify(Change{Type: ChangeUpsert, Collection: Tasks, ID: changed[i].ID, Task: &changed[i]})
	}
	return nil
}

// ClearCompleted removes every completed non-recurring task. Recurring
// templates are untouched; their per-occurrence state lives in
// CompletedDates.
func (s *Store) ClearCompleted() error {
	s.mu.Lock()
	kept := s.tasks[:0]
	var removed []string
	for _, t := range s.tasks {
		if t.Completed {
			removed = append(removed, t.ID)
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	err := s.saveTasks()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	for _, id := range removed {
		s.notify(Change{Type: ChangeDelete, Collection: Tasks, ID: id})
	}
	return nil
}

// PutTask writes a remote-origin record through without firing change
// observers, so applying a feed event cannot echo back out the outbox.
func (s *Store) PutTask(t model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == t.ID {
			s.tasks[i] = t
			return s.saveTasks()
		}
	}
	s.tasks = append(s.tasks, t)
	return s.saveTasks()
}

// RemoveTask is the remote-origin delete path; no observers fire.
func (s *Store) RemoveTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	return s.saveTasks()
}
