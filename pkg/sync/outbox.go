package sync

import (
	gosync "sync"

	"tableflip.dev/today/pkg/store"
)

// outbox is the queue of record-level changes awaiting remote
// propagation. It coalesces per (collection, id), so only the latest
// change for a record is ever pushed, and admits exactly one in-flight
// push at a time. While suspended (during the initial load/merge, whose
// bulk replace covers every record anyway) enqueued changes are
// discarded outright.
type outbox struct {
	mu        gosync.Mutex
	order     []string
	pending   map[string]store.Change
	suspended bool
	inFlight  bool

	kick chan struct{}
}

func newOutbox() *outbox {
	return &outbox{
		pending:   make(map[string]store.Change),
		suspended: true,
		kick:      make(chan struct{}, 1),
	}
}

func changeKey(c store.Change) string {
	return string(c.Collection) + "/" + c.ID
}

// Enqueue records a change for propagation. Local state has already
// been mutated by the time this runs; nothing here can fail the
// mutation.
func (o *outbox) Enqueue(c store.Change) {
	o.mu.Lock()
	if o.suspended {
		o.mu.Unlock()
		return
	}
	key := changeKey(c)
	if _, queued := o.pending[key]; !queued {
		o.order = append(o.order, key)
	}
	o.pending[key] = c
	o.mu.Unlock()

	select {
	case o.kick <- struct{}{}:
	default:
	}
}

// take pops the oldest pending change and marks it in flight. It
// refuses while another push is in flight; done must be called first.
func (o *outbox) take() (store.Change, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.inFlight || len(o.order) == 0 {
		return store.Change{}, false
	}
	key := o.order[0]
	o.order = o.order[1:]
	c := o.pending[key]
	delete(o.pending, key)
	o.inFlight = true
	return c, true
}

func (o *outbox) done() {
	o.mu.Lock()
	o.inFlight = false
	more := len(o.order) > 0
	o.mu.Unlock()
	if more {
		select {
		case o.kick <- struct{}{}:
		default:
		}
	}
}

func (o *outbox) resume() {
	o.mu.Lock()
	o.suspended = false
	o.mu.Unlock()
}

func (o *outbox) suspend() {
	o.mu.Lock()
	o.suspended = true
	o.order = nil
	o.pending = make(map[string]store.Change)
	o.mu.Unlock()
}

func (o *outbox) depth() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.order)
}
