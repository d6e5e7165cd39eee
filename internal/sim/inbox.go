package sim

import "sync"

type commandKind uint8

const (
	cmdSpawn commandKind = iota + 1
	cmdDelete
	cmdClear
)

type command struct {
	kind   commandKind
	handle Handle
	spawn  SpawnConfig
}

// Inbox carries requests from any goroutine to the simulator goroutine.
//
// Thread-Safety:
//   - Push*: safe for concurrent producers
//   - Drain*: single consumer (the simulator)
//
// Spawns count against the limit. Control commands stay bounded by the
// handles they name: a delete already waiting for the same handle is dropped,
// and a clear replaces every command queued before it. A delete that targets
// a spawn still waiting in the inbox cancels the spawn, and a clear cancels
// every waiting spawn, so no late registration can outlive the request that
// removed it.
type Inbox struct {
	mu      sync.Mutex
	pending []command
	waiting map[Handle]struct{} // queued spawns
	deletes map[Handle]struct{} // queued deletes
	limit   int
}

func NewInbox(limit int) *Inbox {
	if limit <= 0 {
		limit = DefaultInboxSize
	}
	return &Inbox{
		limit:   limit,
		waiting: make(map[Handle]struct{}),
		deletes: make(map[Handle]struct{}),
	}
}

func (q *Inbox) PushSpawn(h Handle, cfg SpawnConfig) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.waiting) >= q.limit {
		return ErrInboxFull
	}
	q.pending = append(q.pending, command{kind: cmdSpawn, handle: h, spawn: cfg})
	q.waiting[h] = struct{}{}
	return nil
}

// PushDelete reports whether the delete cancelled a spawn still in the inbox.
func (q *Inbox) PushDelete(h Handle) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.deletes[h]; ok {
		return false
	}
	if _, ok := q.waiting[h]; ok {
		for i, c := range q.pending {
			if c.kind == cmdSpawn && c.handle == h {
				q.pending = append(q.pending[:i], q.pending[i+1:]...)
				break
			}
		}
		delete(q.waiting, h)
		return true
	}
	q.pending = append(q.pending, command{kind: cmdDelete, handle: h})
	q.deletes[h] = struct{}{}
	return false
}

// PushClear drops every waiting command and queues a clear of the registry.
// It returns the number of spawns cancelled.
func (q *Inbox) PushClear() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	dropped := len(q.waiting)
	clear(q.pending)
	q.pending = append(q.pending[:0], command{kind: cmdClear})
	clear(q.waiting)
	clear(q.deletes)
	return dropped
}

// Drain appends every pending command to dst in arrival order.
func (q *Inbox) Drain(dst []command) []command {
	q.mu.Lock()
	defer q.mu.Unlock()

	dst = append(dst, q.pending...)
	clear(q.pending)
	q.pending = q.pending[:0]
	clear(q.waiting)
	clear(q.deletes)
	return dst
}

// DrainControl appends pending deletes and clears to dst and leaves spawns
// waiting for the next frame.
func (q *Inbox) DrainControl(dst []command) []command {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == len(q.waiting) {
		return dst
	}
	kept := q.pending[:0]
	for _, c := range q.pending {
		if c.kind == cmdSpawn {
			kept = append(kept, c)
		} else {
			dst = append(dst, c)
		}
	}
	clear(q.pending[len(kept):])
	q.pending = kept
	clear(q.deletes)
	return dst
}

// Len is the number of waiting commands.
func (q *Inbox) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Spawns is the number of waiting spawn requests.
func (q *Inbox) Spawns() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.waiting)
}
