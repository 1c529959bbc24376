package sync

import (
	"time"

	"tableflip.dev/today/pkg/model"
)

// mergeByID reconciles two replicas of an id-keyed collection. Records
// present on only one side are kept as-is; records present on both keep
// whichever side has the strictly newer modification timestamp, local
// winning ties. Local ordering is preserved; remote-only records append
// in fetch order.
func mergeByID[T any](local, remote []T, id func(*T) string, modified func(*T) time.Time) []T {
	remoteByID := make(map[string]*T, len(remote))
	for i := range remote {
		remoteByID[id(&remote[i])] = &remote[i]
	}

	out := make([]T, 0, len(local)+len(remote))
	seen := make(map[string]bool, len(local))
	for i := range local {
		l := &local[i]
		key := id(l)
		seen[key] = true
		if r, ok := remoteByID[key]; ok && modified(r).After(modified(l)) {
			out = append(out, *r)
			continue
		}
		out = append(out, *l)
	}
	for i := range remote {
		if !seen[id(&remote[i])] {
			out = append(out, remote[i])
		}
	}
	return out
}

func mergeTasks(local, remote []model.Task) []model.Task {
	return mergeByID(local, remote,
		func(t *model.Task) string { return t.ID },
		func(t *model.Task) time.Time { return t.ModifiedAt() })
}

func mergeEvents(local, remote []model.Event) []model.Event {
	return mergeByID(local, remote,
		func(e *model.Event) string { return e.ID },
		func(e *model.Event) time.Time { return e.ModifiedAt() })
}

func mergeProjects(local, remote []model.Project) []model.Project {
	return mergeByID(local, remote,
		func(p *model.Project) string { return p.ID },
		func(p *model.Project) time.Time { return p.ModifiedAt() })
}

// mergeJournal applies the same newer-wins rule per date key.
func mergeJournal(local, remote map[string]model.JournalEntry) map[string]model.JournalEntry {
	out := make(map[string]model.JournalEntry, len(local)+len(remote))
	for k, v := range local {
		out[k] = v
	}
	for k, r := range remote {
		l, ok := out[k]
		if !ok || r.ModifiedAt().After(l.ModifiedAt()) {
			out[k] = r
		}
	}
	return out
}
