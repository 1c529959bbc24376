package store

import (
	"github.com/google/uuid"

	"tableflip.dev/today/pkg/model"
)

func (s *Store) Events() []model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Event, 0, len(s.events))
	for i := range s.events {
		out = append(out, s.events[i].Clone())
	}
	return out
}

func (s *Store) Event(id string) (model.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID == id {
			return s.events[i].Clone(), true
		}
	}
	return model.Event{}, false
}

// AddEvent stores e as a new template, assigning identity and
// timestamps. Any parent marker on the prototype is discarded.
func (s *Store) AddEvent(e model.Event) (model.Event, error) {
	s.mu.Lock()
	now := model.Timestamp{Time: s.now()}
	e.ID = uuid.NewString()
	e.ParentEventID = ""
	e.CreatedAt = now
	e.UpdatedAt = now
	s.events = append(s.events, e)
	err := s.saveEvents()
	s.mu.Unlock()
	if err != nil {
		return model.Event{}, err
	}
	stored := e.Clone()
	s.notify(Change{Type: ChangeUpsert, Collection: Events, ID: e.ID, Event: &stored})
	return e, nil
}

// UpdateEvent is a plain merge-and-restamp; events have no completion
// routing.
func (s *Store) UpdateEvent(id string, patch EventPatch) (model.Event, error) {
	s.mu.Lock()
	idx := -1
	for i := range s.events {
		if s.events[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return model.Event{}, ErrNotFound
	}
	e := &s.events[idx]

	if patch.Text != nil {
		e.Text = *patch.Text
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.Hour != nil {
		e.Hour = *patch.Hour
	}
	if patch.Minutes != nil {
		e.Minutes = *patch.Minutes
	}
	if patch.ClearEnd {
		e.EndHour = nil
		e.EndMinutes = nil
	} else {
		if patch.EndHour != nil {
			h := *patch.EndHour
			e.EndHour = &h
		}
		if patch.EndMinutes != nil {
			m := *patch.EndMinutes
			e.EndMinutes = &m
		}
	}
	if patch.AllDay != nil {
		e.AllDay = *patch.AllDay
	}
	if patch.Location != nil {
		e.Location = *patch.Location
	}
	if patch.ClearRecurrence {
		e.Recurrence = nil
	} else if patch.Recurrence != nil {
		e.Recurrence = patch.Recurrence.Clone()
	}

	e.UpdatedAt = model.Timestamp{Time: s.now()}
	updated := e.Clone()
	err := s.saveEvents()
	s.mu.Unlock()
	if err != nil {
		return model.Event{}, err
	}
	s.notify(Change{Type: ChangeUpsert, Collection: Events, ID: id, Event: &updated})
	return updated, nil
}

func (s *Store) DeleteEvent(id string) error {
	s.mu.Lock()
	kept := s.events[:0]
	found := false
	for _, e := range s.events {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.events = kept
	err := s.saveEvents()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify(Change{Type: ChangeDelete, Collection: Events, ID: id})
	return nil
}

// PutEvent and RemoveEvent are the remote-origin application paths; no
// observers fire.
func (s *Store) PutEvent(e model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID == e.ID {
			s.events[i] = e
			return s.saveEvents()
		}
	}
	s.events = append(s.events, e)
	return s.saveEvents()
}

func (s *Store) RemoveEvent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.events[:0]
	for _, e := range s.events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.events = kept
	return s.saveEvents()
}
