package sync

import (
	"testing"

	"tableflip.dev/today/pkg/model"
	"tableflip.dev/today/pkg/store"
)

func upsert(id, text string) store.Change {
	return store.Change{
		Type:       store.ChangeUpsert,
		Collection: store.Tasks,
		ID:         id,
		Task:       &model.Task{ID: id, Text: text},
	}
}

func TestOutboxSuspendedDiscards(t *testing.T) {
	o := newOutbox()

	// starts suspended; the bulk replace of the initial sync covers
	// anything enqueued before resume
	o.Enqueue(upsert("a", "x"))
	if o.depth() != 0 {
		t.Fatalf("suspended outbox must discard, depth %d", o.depth())
	}

	o.resume()
	o.Enqueue(upsert("a", "x"))
	if o.depth() != 1 {
		t.Fatalf("resumed outbox accepts, depth %d", o.depth())
	}

	o.suspend()
	if o.depth() != 0 {
		t.Fatalf("suspend flushes pending work, depth %d", o.depth())
	}
}

func TestOutboxCoalescesPerRecord(t *testing.T) {
	o := newOutbox()
	o.resume()

	o.Enqueue(upsert("a", "first"))
	o.Enqueue(upsert("b", "other"))
	o.Enqueue(upsert("a", "second"))
	o.Enqueue(upsert("a", "third"))

	if o.depth() != 2 {
		t.Fatalf("expected 2 coalesced entries, got %d", o.depth())
	}

	c, ok := o.take()
	if !ok {
		t.Fatalf("expected a pending change")
	}
	if c.ID != "a" || c.Task.Text != "third" {
		t.Fatalf("oldest key first, carrying only the latest change: %+v", c)
	}
	o.done()

	c, ok = o.take()
	if !ok || c.ID != "b" {
		t.Fatalf("expected b next, got %+v ok=%v", c, ok)
	}
	o.done()

	if _, ok := o.take(); ok {
		t.Fatalf("outbox should be empty")
	}
}

func TestOutboxSingleInFlight(t *testing.T) {
	o := newOutbox()
	o.resume()
	o.Enqueue(upsert("a", "x"))
	o.Enqueue(upsert("b", "y"))

	if _, ok := o.take(); !ok {
		t.Fatalf("expected the first change")
	}
	if _, ok := o.take(); ok {
		t.Fatalf("a second take must refuse while one push is in flight")
	}

	o.done()
	if _, ok := o.take(); !ok {
		t.Fatalf("after done the next change is available")
	}
}

func TestOutboxDeleteSupersedesUpsert(t *testing.T) {
	o := newOutbox()
	o.resume()

	o.Enqueue(upsert("a", "soon gone"))
	o.Enqueue(store.Change{Type: store.ChangeDelete, Collection: store.Tasks, ID: "a"})

	if o.depth() != 1 {
		t.Fatalf("same record coalesces, depth %d", o.depth())
	}
	c, _ := o.take()
	if c.Type != store.ChangeDelete {
		t.Fatalf("the latest change for the record is the delete: %+v", c)
	}
}

func TestOutboxKickSignal(t *testing.T) {
	o := newOutbox()
	o.resume()

	o.Enqueue(upsert("a", "x"))
	select {
	case <-o.kick:
	default:
		t.Fatalf("enqueue must kick the drainer")
	}

	// a full kick channel never blocks enqueue
	o.Enqueue(upsert("b", "y"))
	o.Enqueue(upsert("c", "z"))
}
