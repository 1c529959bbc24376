// Package store owns the canonical in-memory collections and mirrors
// every mutation synchronously to the durable local layer. It is the
// only writer of that layer. Remote propagation is someone else's job;
// the store just announces what changed.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/today/pkg/model"
)

// ErrNotFound is returned when a mutation names an id that does not
// exist in the collection.
var ErrNotFound = errors.New("store: not found")

// Collection names the four replicated collections.
type Collection string

const (
	Tasks    Collection = "tasks"
	Events   Collection = "events"
	Journal  Collection = "journal"
	Projects Collection = "projects"
)

// ChangeType describes the nature of a local mutation notification.
type ChangeType int

const (
	ChangeUpsert ChangeType = iota
	ChangeDelete
)

// Change is delivered to observers after a local mutation has been
// applied and durably written. Exactly one payload pointer is set for
// upserts; deletes carry only the ID (the journal uses the date key).
type Change struct {
	Type       ChangeType
	Collection Collection
	ID         string

	Task    *model.Task
	Event   *model.Event
	Journal *model.JournalEntry
	Project *model.Project
}

// Store holds the four collections. All methods are safe for use from
// multiple goroutines; mutations are applied in call order.
type Store struct {
	mu  sync.Mutex
	p   Persistence
	log *zap.Logger
	now func() time.Time

	tasks    []model.Task
	events   []model.Event
	journal  map[string]model.JournalEntry
	projects []model.Project

	observers []func(Change)
}

// New loads the current snapshot from the durable layer and returns the
// store. The logger may be nil.
func New(p Persistence, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		p:       p,
		log:     log,
		now:     time.Now,
		journal: make(map[string]model.JournalEntry),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// OnChange registers an observer invoked after every successful local
// mutation. Observers run outside the store lock and must not block.
func (s *Store) OnChange(fn func(Change)) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

func (s *Store) notify(c Change) {
	s.mu.Lock()
	obs := append([]func(Change)(nil), s.observers...)
	s.mu.Unlock()
	for _, fn := range obs {
		fn(c)
	}
}

func (s *Store) load() error {
	if err := readInto(s.p, KeyTasks, &s.tasks); err != nil {
		return err
	}
	if err := readInto(s.p, KeyEvents, &s.events); err != nil {
		return err
	}
	if err := readInto(s.p, KeyJournal, &s.journal); err != nil {
		return err
	}
	if err := readInto(s.p, KeyProjects, &s.projects); err != nil {
		return err
	}
	if s.journal == nil {
		s.journal = make(map[string]model.JournalEntry)
	}

	// Older snapshots may predate completedAt; seed it from createdAt so
	// completed tasks keep a completion time.
	changed := false
	for i := range s.tasks {
		t := &s.tasks[i]
		if t.Completed && t.CompletedAt == nil {
			ts := t.CreatedAt
			t.CompletedAt = &ts
			changed = true
		}
	}
	if changed {
		if err := s.saveTasks(); err != nil {
			return err
		}
	}
	return nil
}

func readInto(p Persistence, key string, v interface{}) error {
	data, ok, err := p.Get(key)
	if err != nil {
		return fmt.Errorf("store: read %s: %w", key, err)
	}
	if !ok || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("store: decode %s: %w", key, err)
	}
	return nil
}

func (s *Store) save(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := s.p.Set(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (s *Store) saveTasks() error    { return s.save(KeyTasks, s.tasks) }
func (s *Store) saveEvents() error   { return s.save(KeyEvents, s.events) }
func (s *Store) saveJournal() error  { return s.save(KeyJournal, s.journal) }
func (s *Store) saveProjects() error { return s.save(KeyProjects, s.projects) }

// SetClock overrides the store's notion of now. Tests only.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// ReplaceAll swaps in a fully merged snapshot and writes it through to
// the durable layer. Observers are not notified: the caller is the sync
// engine, which pushes the same snapshot wholesale itself.
func (s *Store) ReplaceAll(tasks []model.Task, events []model.Event, journal map[string]model.JournalEntry, projects []model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if journal == nil {
		journal = make(map[string]model.JournalEntry)
	}
	s.tasks, s.events, s.journal, s.projects = tasks, events, journal, projects
	if err := s.saveTasks(); err != nil {
		return err
	}
	if err := s.saveEvents(); err != nil {
		return err
	}
	if err := s.saveJournal(); err != nil {
		return err
	}
	return s.saveProjects()
}
