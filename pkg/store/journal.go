package store

import (
	"sort"

	"tableflip.dev/today/pkg/model"
)

// Journal returns a copy of the journal map keyed by date.
func (s *Store) Journal() map[string]model.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]model.JournalEntry, len(s.journal))
	for k, v := range s.journal {
		out[k] = v
	}
	return out
}

func (s *Store) JournalEntry(date string) (model.JournalEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.journal[date]
	return e, ok
}

// JournalEntries returns all entries newest-date-first.
func (s *Store) JournalEntries() []model.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.JournalEntry, 0, len(s.journal))
	for _, e := range s.journal {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

// SaveJournalEntry upserts the entry for the given date key.
func (s *Store) SaveJournalEntry(date, content string) (model.JournalEntry, error) {
	s.mu.Lock()
	e := model.JournalEntry{
		Date:      date,
		Content:   content,
		UpdatedAt: model.Timestamp{Time: s.now()},
	}
	s.journal[date] = e
	err := s.saveJournal()
	s.mu.Unlock()
	if err != nil {
		return model.JournalEntry{}, err
	}
	entry := e
	s.notify(Change{Type: ChangeUpsert, Collection: Journal, ID: date, Journal: &entry})
	return e, nil
}

// PutJournalEntry is the remote-origin application path; no observers
// fire.
func (s *Store) PutJournalEntry(e model.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.journal[e.Date] = e
	return s.saveJournal()
}
