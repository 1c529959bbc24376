// Package remote defines the contract the synchronization engine
// speaks to a remote replica: per-collection fetch-all, upsert-one,
// delete-one, bulk-replace, and a live change subscription. Field-name
// translation to whatever schema the backend uses is the backend's
// problem, not the engine's.
package remote

import (
	"context"

	"tableflip.dev/today/pkg/model"
)

type Collection string

const (
	Tasks    Collection = "tasks"
	Events   Collection = "events"
	Journal  Collection = "journal"
	Projects Collection = "projects"
)

type ChangeType int

const (
	Insert ChangeType = iota
	Update
	Delete
)

// Change is one remote-origin change notification. Exactly one payload
// pointer is set for inserts and updates; deletes carry only the ID
// (the journal uses its date key and is never deleted).
type Change struct {
	Type       ChangeType
	Collection Collection
	ID         string

	Task    *model.Task
	Event   *model.Event
	Journal *model.JournalEntry
	Project *model.Project
}

// Store is the remote replica, shared across all of a user's devices.
// Calls suspend on network I/O and complete in no guaranteed order;
// callers must not assume issue-order delivery.
type Store interface {
	FetchTasks(ctx context.Context, userID string) ([]model.Task, error)
	FetchEvents(ctx context.Context, userID string) ([]model.Event, error)
	FetchJournal(ctx context.Context, userID string) (map[string]model.JournalEntry, error)
	FetchProjects(ctx context.Context, userID string) ([]model.Project, error)

	UpsertTask(ctx context.Context, userID string, t model.Task) error
	UpsertEvent(ctx context.Context, userID string, e model.Event) error
	UpsertJournalEntry(ctx context.Context, userID string, e model.JournalEntry) error
	UpsertProject(ctx context.Context, userID string, p model.Project) error

	DeleteTask(ctx context.Context, userID, id string) error
	DeleteEvent(ctx context.Context, userID, id string) error
	DeleteProject(ctx context.Context, userID, id string) error

	ReplaceTasks(ctx context.Context, userID string, tasks []model.Task) error
	ReplaceEvents(ctx context.Context, userID string, events []model.Event) error
	ReplaceJournal(ctx context.Context, userID string, journal map[string]model.JournalEntry) error
	ReplaceProjects(ctx context.Context, userID string, projects []model.Project) error

	// Subscribe streams change notifications for the user's collections
	// until ctx is cancelled. The channel is closed when the
	// subscription ends; reconnection is the transport's concern.
	Subscribe(ctx context.Context, userID string) (<-chan Change, error)
}
