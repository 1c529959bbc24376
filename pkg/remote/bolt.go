package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"tableflip.dev/today/pkg/model"
)

// Bolt is a Store backed by a single bbolt file, one bucket per
// collection, keys "userID/recordID". It doubles as the test backend
// and as a shared-file "remote" for single-machine multi-session sync.
// Change notifications fan out to in-process subscribers.
type Bolt struct {
	db  *bolt.DB
	log *zap.Logger

	mu   sync.Mutex
	subs []*subscriber
}

type subscriber struct {
	userID string
	ch     chan Change
}

var buckets = []Collection{Tasks, Events, Journal, Projects}

// OpenBolt opens (creating if needed) the bbolt file and ensures the
// collection buckets exist.
func OpenBolt(path string, log *zap.Logger) (*Bolt, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("remote: ensure directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("remote: open %s: %w", path, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		for _, b := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(b)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("remote: ensure buckets: %w", err)
	}
	return &Bolt{db: db, log: log}, nil
}

func (b *Bolt) Close() error {
	return b.db.Close()
}

func recordKey(userID, id string) []byte {
	return []byte(userID + "/" + id)
}

func (b *Bolt) fetch(collection Collection, userID string, visit func(v []byte) error) error {
	prefix := []byte(userID + "/")
	return b.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(collection)).Cursor()
		for k, v := c.Seek(prefix); k != nil && len(k) > len(prefix) && string(k[:len(prefix)]) == string(prefix); k, v = c.Next() {
			if err := visit(v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *Bolt) put(collection Collection, userID, id string, record interface{}) (ChangeType, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return Insert, fmt.Errorf("remote: encode %s: %w", collection, err)
	}
	typ := Insert
	err = b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(collection))
		key := recordKey(userID, id)
		if bkt.Get(key) != nil {
			typ = Update
		}
		return bkt.Put(key, data)
	})
	if err != nil {
		return typ, fmt.Errorf("remote: put %s: %w", collection, err)
	}
	return typ, nil
}

func (b *Bolt) delete(collection Collection, userID, id string) (bool, error) {
	existed := false
	err := b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(collection))
		key := recordKey(userID, id)
		if bkt.Get(key) == nil {
			return nil
		}
		existed = true
		return bkt.Delete(key)
	})
	if err != nil {
		return false, fmt.Errorf("remote: delete %s: %w", collection, err)
	}
	return existed, nil
}

// emit delivers a change to every subscriber for the user, dropping the
// event when a subscriber is not keeping up. A slow consumer falls
// behind rather than blocking writers; the timestamp rule on the
// receiving side tolerates gaps.
func (b *Bolt) emit(userID string, c Change) {
	b.mu.Lock()
	subs := append([]*subscriber(nil), b.subs...)
	b.mu.Unlock()
	for _, s := range subs {
		if s.userID != userID {
			continue
		}
		select {
		case s.ch <- c:
		default:
			b.log.Warn("remote: dropping change for slow subscriber",
				zap.String("collection", string(c.Collection)),
				zap.String("id", c.ID))
		}
	}
}

func (b *Bolt) Subscribe(ctx context.Context, userID string) (<-chan Change, error) {
	s := &subscriber{userID: userID, ch: make(chan Change, 64)}
	b.mu.Lock()
	b.subs = append(b.subs, s)
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		for i, sub := range b.subs {
			if sub == s {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				break
			}
		}
		b.mu.Unlock()
		close(s.ch)
	}()

	return s.ch, nil
}

// Tasks

func (b *Bolt) FetchTasks(ctx context.Context, userID string) ([]model.Task, error) {
	out := make([]model.Task, 0)
	err := b.fetch(Tasks, userID, func(v []byte) error {
		var t model.Task
		if err := json.Unmarshal(v, &t); err != nil {
			return err
		}
		out = append(out, t)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("remote: fetch tasks: %w", err)
	}
	return out, nil
}

func (b *Bolt) UpsertTask(ctx context.Context, userID string, t model.Task) error {
	typ, err := b.put(Tasks, userID, t.ID, &t)
	if err != nil {
		return err
	}
	b.emit(userID, Change{Type: typ, Collection: Tasks, ID: t.ID, Task: &t})
	return nil
}

func (b *Bolt) DeleteTask(ctx context.Context, userID, id string) error {
	existed, err := b.delete(Tasks, userID, id)
	if err != nil {
		return err
	}
	if existed {
		b.emit(userID, Change{Type: Delete, Collection: Tasks, ID: id})
	}
	return nil
}

func (b *Bolt) ReplaceTasks(ctx context.Context, userID string, tasks []model.Task) error {
	return replaceAll(b, Tasks, userID, tasks, func(t *model.Task) string { return t.ID },
		func(t *model.Task, typ ChangeType) Change {
			return Change{Type: typ, Collection: Tasks, ID: t.ID, Task: t}
		})
}

// Events

func (b *Bolt) FetchEvents(ctx context.Context, userID string) ([]model.Event, error) {
	out := make([]model.Event, 0)
	err := b.fetch(Events, userID, func(v []byte) error {
		var e model.Event
		if err := json.Unmarshal(v, &e); err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("remote: fetch events: %w", err)
	}
	return out, nil
}

func (b *Bolt) UpsertEvent(ctx context.Context, userID string, e model.Event) error {
	typ, err := b.put(Events, userID, e.ID, &e)
	if err != nil {
		return err
	}
	b.emit(userID, Change{Type: typ, Collection: Events, ID: e.ID, Event: &e})
	return nil
}

func (b *Bolt) DeleteEvent(ctx context.Context, userID, id string) error {
	existed, err := b.delete(Events, userID, id)
	if err != nil {
		return err
	}
	if existed {
		b.emit(userID, Change{Type: Delete, Collection: Events, ID: id})
	}
	return nil
}

func (b *Bolt) ReplaceEvents(ctx context.Context, userID string, events []model.Event) error {
	return replaceAll(b, Events, userID, events, func(e *model.Event) string { return e.ID },
		func(e *model.Event, typ ChangeType) Change {
			return Change{Type: typ, Collection: Events, ID: e.ID, Event: e}
		})
}

// Journal

func (b *Bolt) FetchJournal(ctx context.Context, userID string) (map[string]model.JournalEntry, error) {
	out := make(map[string]model.JournalEntry)
	err := b.fetch(Journal, userID, func(v []byte) error {
		var e model.JournalEntry
		if err := json.Unmarshal(v, &e); err != nil {
			return err
		}
		out[e.Date] = e
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("remote: fetch journal: %w", err)
	}
	return out, nil
}

func (b *Bolt) UpsertJournalEntry(ctx context.Context, userID string, e model.JournalEntry) error {
	typ, err := b.put(Journal, userID, e.Date, &e)
	if err != nil {
		return err
	}
	b.emit(userID, Change{Type: typ, Collection: Journal, ID: e.Date, Journal: &e})
	return nil
}

func (b *Bolt) ReplaceJournal(ctx context.Context, userID string, journal map[string]model.JournalEntry) error {
	entries := make([]model.JournalEntry, 0, len(journal))
	for _, e := range journal {
		entries = append(entries, e)
	}
	return replaceAll(b, Journal, userID, entries, func(e *model.JournalEntry) string { return e.Date },
		func(e *model.JournalEntry, typ ChangeType) Change {
			return Change{Type: typ, Collection: Journal, ID: e.Date, Journal: e}
		})
}

// Projects

func (b *Bolt) FetchProjects(ctx context.Context, userID string) ([]model.Project, error) {
	out := make([]model.Project, 0)
	err := b.fetch(Projects, userID, func(v []byte) error {
		var p model.Project
		if err := json.Unmarshal(v, &p); err != nil {
			return err
		}
		out = append(out, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("remote: fetch projects: %w", err)
	}
	return out, nil
}

func (b *Bolt) UpsertProject(ctx context.Context, userID string, p model.Project) error {
	typ, err := b.put(Projects, userID, p.ID, &p)
	if err != nil {
		return err
	}
	b.emit(userID, Change{Type: typ, Collection: Projects, ID: p.ID, Project: &p})
	return nil
}

func (b *Bolt) DeleteProject(ctx context.Context, userID, id string) error {
	existed, err := b.delete(Projects, userID, id)
	if err != nil {
		return err
	}
	if existed {
		b.emit(userID, Change{Type: Delete, Collection: Projects, ID: id})
	}
	return nil
}

func (b *Bolt) ReplaceProjects(ctx context.Context, userID string, projects []model.Project) error {
	return replaceAll(b, Projects, userID, projects, func(p *model.Project) string { return p.ID },
		func(p *model.Project, typ ChangeType) Change {
			return Change{Type: typ, Collection: Projects, ID: p.ID, Project: p}
		})
}

// replaceAll swaps the user's records in one transaction and then emits
// a diff: upserts for every new record, deletes only for records that
// vanished. Emitting raw delete-all/insert-all would tell other
// sessions to drop records that are about to come back.
func replaceAll[T any](b *Bolt, collection Collection, userID string, records []T, key func(*T) string, change func(*T, ChangeType) Change) error {
	prefix := []byte(userID + "/")

	next := make(map[string]bool, len(records))
	for i := range records {
		next[key(&records[i])] = true
	}

	var removed []string
	existing := make(map[string]bool)
	err := b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(collection))
		c := bkt.Cursor()
		for k, _ := c.Seek(prefix); k != nil && len(k) > len(prefix) && string(k[:len(prefix)]) == string(prefix); k, _ = c.Next() {
			id := string(k[len(prefix):])
			existing[id] = true
			if !next[id] {
				removed = append(removed, id)
			}
		}
		for _, id := range removed {
			if err := bkt.Delete(recordKey(userID, id)); err != nil {
				return err
			}
		}
		for i := range records {
			data, err := json.Marshal(&records[i])
			if err != nil {
				return err
			}
			if err := bkt.Put(recordKey(userID, key(&records[i])), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("remote: replace %s: %w", collection, err)
	}

	for _, id := range removed {
		b.emit(userID, Change{Type: Delete, Collection: collection, ID: id})
	}
	for i := range records {
		typ := Insert
		if existing[key(&records[i])] {
			typ = Update
		}
		b.emit(userID, change(&records[i], typ))
	}
	return nil
}
