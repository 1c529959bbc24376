package sync

import (
	"testing"
	"time"

	"tableflip.dev/today/pkg/model"
)

func ts(s string) model.Timestamp {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return model.Timestamp{Time: t}
}

func TestMergeTasksNewerRemoteWins(t *testing.T) {
	local := []model.Task{
		{ID: "a", Text: "local old", UpdatedAt: ts("2024-03-10T09:00:00Z")},
	}
	remote := []model.Task{
		{ID: "a", Text: "remote new", UpdatedAt: ts("2024-03-10T10:00:00Z")},
	}

	got := mergeTasks(local, remote)
	if len(got) != 1 || got[0].Text != "remote new" {
		t.Fatalf("strictly newer remote record wins: %+v", got)
	}
}

func TestMergeTasksNewerLocalWins(t *testing.T) {
	local := []model.Task{
		{ID: "a", Text: "local new", UpdatedAt: ts("2024-03-10T11:00:00Z")},
	}
	remote := []model.Task{
		{ID: "a", Text: "remote old", UpdatedAt: ts("2024-03-10T10:00:00Z")},
	}

	got := mergeTasks(local, remote)
	if len(got) != 1 || got[0].Text != "local new" {
		t.Fatalf("newer local record wins: %+v", got)
	}
}

func TestMergeTasksTieKeepsLocal(t *testing.T) {
	same := ts("2024-03-10T10:00:00Z")
	local := []model.Task{{ID: "a", Text: "local", UpdatedAt: same}}
	remote := []model.Task{{ID: "a", Text: "remote", UpdatedAt: same}}

	got := mergeTasks(local, remote)
	if got[0].Text != "local" {
		t.Fatalf("equal timestamps keep the local record: %+v", got)
	}
}

func TestMergeTasksDisjointUnion(t *testing.T) {
	local := []model.Task{
		{ID: "l1", Text: "only local", UpdatedAt: ts("2024-03-10T09:00:00Z")},
		{ID: "l2", Text: "also local", UpdatedAt: ts("2024-03-10T09:01:00Z")},
	}
	remote := []model.Task{
		{ID: "r1", Text: "only remote", UpdatedAt: ts("2024-03-10T09:02:00Z")},
	}

	got := mergeTasks(local, remote)
	if len(got) != 3 {
		t.Fatalf("expected the union, got %d records", len(got))
	}
	// local order first, remote-only appended after
	if got[0].ID != "l1" || got[1].ID != "l2" || got[2].ID != "r1" {
		t.Fatalf("ordering: %v %v %v", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestMergeTasksFallsBackToCreatedAt(t *testing.T) {
	// records written before UpdatedAt existed compare by CreatedAt
	local := []model.Task{{ID: "a", Text: "ancient", CreatedAt: ts("2023-01-01T00:00:00Z")}}
	remote := []model.Task{{ID: "a", Text: "revised", UpdatedAt: ts("2024-03-10T10:00:00Z")}}

	got := mergeTasks(local, remote)
	if got[0].Text != "revised" {
		t.Fatalf("remote with a real UpdatedAt beats a CreatedAt-only local: %+v", got)
	}
}

func TestMergeJournal(t *testing.T) {
	local := map[string]model.JournalEntry{
		"2024-03-09": {Date: "2024-03-09", Content: "local", UpdatedAt: ts("2024-03-09T20:00:00Z")},
		"2024-03-10": {Date: "2024-03-10", Content: "local today", UpdatedAt: ts("2024-03-10T22:00:00Z")},
	}
	remote := map[string]model.JournalEntry{
		"2024-03-09": {Date: "2024-03-09", Content: "remote", UpdatedAt: ts("2024-03-09T21:00:00Z")},
		"2024-03-10": {Date: "2024-03-10", Content: "remote today", UpdatedAt: ts("2024-03-10T21:00:00Z")},
		"2024-03-08": {Date: "2024-03-08", Content: "remote only", UpdatedAt: ts("2024-03-08T21:00:00Z")},
	}

	got := mergeJournal(local, remote)
	if len(got) != 3 {
		t.Fatalf("expected 3 dates, got %d", len(got))
	}
	if got["2024-03-09"].Content != "remote" {
		t.Fatalf("newer remote entry wins: %q", got["2024-03-09"].Content)
	}
	if got["2024-03-10"].Content != "local today" {
		t.Fatalf("newer local entry wins: %q", got["2024-03-10"].Content)
	}
	if got["2024-03-08"].Content != "remote only" {
		t.Fatalf("remote-only entry carried over")
	}
}

func TestMergeEventsAndProjects(t *testing.T) {
	le := []model.Event{{ID: "e", Text: "local", UpdatedAt: ts("2024-03-10T09:00:00Z")}}
	re := []model.Event{{ID: "e", Text: "remote", UpdatedAt: ts("2024-03-10T10:00:00Z")}}
	if got := mergeEvents(le, re); got[0].Text != "remote" {
		t.Fatalf("event merge follows the same rule: %+v", got)
	}

	lp := []model.Project{{ID: "p", Name: "local", UpdatedAt: ts("2024-03-10T10:00:00Z")}}
	rp := []model.Project{{ID: "p", Name: "remote", UpdatedAt: ts("2024-03-10T09:00:00Z")}}
	if got := mergeProjects(lp, rp); got[0].Name != "local" {
		t.Fatalf("project merge follows the same rule: %+v", got)
	}
}
