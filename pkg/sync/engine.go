// Package sync reconciles the local store against a remote replica.
//
// The protocol is offline-first: on session start the engine fetches
// the remote snapshot, merges it with the local one by
// last-writer-wins timestamps, and writes the merged result to both
// sides. From then on every local mutation is pushed fire-and-forget
// through a coalescing outbox, and remote-origin changes arrive on a
// live feed guarded by the same timestamp rule. Push failures are
// logged and dropped; the local mutation always stands.
package sync

import (
	"context"
	gosync "sync"
	"sync/atomic"

	"go.uber.org/zap"

	"tableflip.dev/today/pkg/model"
	"tableflip.dev/today/pkg/remote"
	"tableflip.dev/today/pkg/store"
)

// State is the engine's per-session lifecycle position.
type State int32

const (
	Unsynced State = iota
	Loading
	Merging
	Synced
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Merging:
		return "merging"
	case Synced:
		return "synced"
	default:
		return "unsynced"
	}
}

// Engine wires one session's store to one remote replica. Construct
// with New and call Start once a user id is known; Follow keeps the
// session live until its context ends.
type Engine struct {
	store  *store.Store
	remote remote.Store
	log    *zap.Logger

	userID string
	state  atomic.Int32
	box    *outbox
}

func New(s *store.Store, r remote.Store, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		store:  s,
		remote: r,
		log:    log,
		box:    newOutbox(),
	}
	s.OnChange(e.box.Enqueue)
	return e
}

func (e *Engine) State() State {
	return State(e.state.Load())
}

func (e *Engine) setState(s State) {
	e.state.Store(int32(s))
}

// Start runs the Loading and Merging phases for the given user and
// leaves the engine Synced. The four remote collections are fetched
// concurrently; a fetch failure for one collection degrades to "remote
// had nothing" for just that collection so a partial outage cannot
// block the rest. The merged snapshot is written through the store and
// bulk-replaced remotely so both replicas converge in the same round.
func (e *Engine) Start(ctx context.Context, userID string) error {
	e.userID = userID
	e.box.suspend()
	e.setState(Loading)

	var (
		wg            gosync.WaitGroup
		remoteTasks   []model.Task
		remoteEvents  []model.Event
		remoteJournal map[string]model.JournalEntry
		remoteProj    []model.Project
	)
	wg.Add(4)
	go func() {
		defer wg.Done()
		var err error
		if remoteTasks, err = e.remote.FetchTasks(ctx, userID); err != nil {
			e.log.Warn("sync: fetch tasks failed, treating remote as empty", zap.Error(err))
			remoteTasks = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if remoteEvents, err = e.remote.FetchEvents(ctx, userID); err != nil {
			e.log.Warn("sync: fetch events failed, treating remote as empty", zap.Error(err))
			remoteEvents = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if remoteJournal, err = e.remote.FetchJournal(ctx, userID); err != nil {
			e.log.Warn("sync: fetch journal failed, treating remote as empty", zap.Error(err))
			remoteJournal = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if remoteProj, err = e.remote.FetchProjects(ctx, userID); err != nil {
			e.log.Warn("sync: fetch projects failed, treating remote as empty", zap.Error(err))
			remoteProj = nil
		}
	}()
	wg.Wait()

	e.setState(Merging)
	tasks := mergeTasks(e.store.Tasks(), remoteTasks)
	events := mergeEvents(e.store.Events(), remoteEvents)
	journal := mergeJournal(e.store.Journal(), remoteJournal)
	projects := mergeProjects(e.store.Projects(), remoteProj)

	if err := e.store.ReplaceAll(tasks, events, journal, projects); err != nil {
		e.setState(Unsynced)
		return err
	}

	if err := e.remote.ReplaceTasks(ctx, userID, tasks); err != nil {
		e.log.Warn("sync: replace tasks failed", zap.Error(err))
	}
	if err := e.remote.ReplaceEvents(ctx, userID, events); err != nil {
		e.log.Warn("sync: replace events failed", zap.Error(err))
	}
	if err := e.remote.ReplaceJournal(ctx, userID, journal); err != nil {
		e.log.Warn("sync: replace journal failed", zap.Error(err))
	}
	if err := e.remote.ReplaceProjects(ctx, userID, projects); err != nil {
		e.log.Warn("sync: replace projects failed", zap.Error(err))
	}

	e.setState(Synced)
	e.box.resume()
	return nil
}

// Follow runs the steady state: one goroutine drains the outbox, the
// calling goroutine applies the live feed, until ctx is done.
func (e *Engine) Follow(ctx context.Context) error {
	feed, err := e.remote.Subscribe(ctx, e.userID)
	if err != nil {
		return err
	}

	go e.drain(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c, ok := <-feed:
			if !ok {
				return nil
			}
			e.apply(c)
		}
	}
}

// drain pushes pending outbox changes one at a time. Failures are
// logged and dropped, never retried, and never touch local state.
func (e *Engine) drain(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-e.box.kick:
		}
		for {
			c, ok := e.box.take()
			if !ok {
				break
			}
			if err := e.push(ctx, c); err != nil {
				e.log.Warn("sync: push failed",
					zap.String("collection", string(c.Collection)),
					zap.String("id", c.ID),
					zap.Error(err))
			}
			e.box.done()
		}
	}
}

func (e *Engine) push(ctx context.Context, c store.Change) error {
	switch c.Collection {
	case store.Tasks:
		if c.Type == store.ChangeDelete {
			return e.remote.DeleteTask(ctx, e.userID, c.ID)
		}
		return e.remote.UpsertTask(ctx, e.userID, *c.Task)
	case store.Events:
		if c.Type == store.ChangeDelete {
			return e.remote.DeleteEvent(ctx, e.userID, c.ID)
		}
		return e.remote.UpsertEvent(ctx, e.userID, *c.Event)
	case store.Journal:
		// the journal is upsert-only
		if c.Type == store.ChangeUpsert {
			return e.remote.UpsertJournalEntry(ctx, e.userID, *c.Journal)
		}
		return nil
	case store.Projects:
		if c.Type == store.ChangeDelete {
			return e.remote.DeleteProject(ctx, e.userID, c.ID)
		}
		return e.remote.UpsertProject(ctx, e.userID, *c.Project)
	}
	return nil
}

// apply folds one remote-origin change into the local store. Deletes
// remove the record outright. Inserts and updates only land when the
// incoming record is strictly newer than the local one (or the record
// is new locally), so a remote echo of this session's own write can
// never clobber a local edit that raced ahead of it.
func (e *Engine) apply(c remote.Change) {
	var err error
	switch c.Collection {
	case remote.Tasks:
		if c.Type == remote.Delete {
			err = e.store.RemoveTask(c.ID)
			break
		}
		if c.Task == nil {
			return
		}
		if local, ok := e.store.Task(c.ID); !ok || c.Task.ModifiedAt().After(local.ModifiedAt()) {
			err = e.store.PutTask(*c.Task)
		}
	case remote.Events:
		if c.Type == remote.Delete {
			err = e.store.RemoveEvent(c.ID)
			break
		}
		if c.Event == nil {
			return
		}
		if local, ok := e.store.Event(c.ID); !ok || c.Event.ModifiedAt().After(local.ModifiedAt()) {
			err = e.store.PutEvent(*c.Event)
		}
	case remote.Journal:
		if c.Type == remote.Delete || c.Journal == nil {
			return
		}
		if local, ok := e.store.JournalEntry(c.ID); !ok || c.Journal.ModifiedAt().After(local.ModifiedAt()) {
			err = e.store.PutJournalEntry(*c.Journal)
		}
	case remote.Projects:
		if c.Type == remote.Delete {
			err = e.store.RemoveProject(c.ID)
			break
		}
		if c.Project == nil {
			return
		}
		if local, ok := e.store.Project(c.ID); !ok || c.Project.ModifiedAt().After(local.ModifiedAt()) {
			err = e.store.PutProject(*c.Project)
		}
	}
	if err != nil {
		e.log.Error("sync: applying remote change failed",
			zap.String("collection", string(c.Collection)),
			zap.String("id", c.ID),
			zap.Error(err))
	}
}
