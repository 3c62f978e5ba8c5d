// Package timer provides a frame-driven timer queue.
//
// All showcase sequencing (loader watchdog, overlay reveals, audio switch
// delays) runs on the main loop. The queue only moves when Advance is called,
// so callbacks never race with frame updates and tests control time exactly.
package timer

import (
	"container/heap"
	"time"
)

// Handle identifies a scheduled callback. The zero Handle is never issued.
type Handle uint64

type entry struct {
	handle Handle
	due    time.Duration
	fn     func()
	index  int
}

type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	if h[i].due == h[j].due {
		return h[i].handle < h[j].handle
	}
	return h[i].due < h[j].due
}
func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *entryHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// Queue is a virtual-time timer queue. It is not safe for concurrent use;
// only the main loop touches it.
type Queue struct {
	now   time.Duration
	next  Handle
	items entryHeap
	live  map[Handle]*entry
}

// New creates an empty queue at virtual time zero.
func New() *Queue {
	return &Queue{live: make(map[Handle]*entry)}
}

// Now returns the virtual time elapsed since the queue was created.
func (q *Queue) Now() time.Duration {
	return q.now
}

// After schedules fn to run once d has elapsed. Negative delays run on the
// next Advance.
func (q *Queue) After(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	q.next++
	e := &entry{handle: q.next, due: q.now + d, fn: fn}
	heap.Push(&q.items, e)
	q.live[e.handle] = e
	return e.handle
}

// Cancel removes a pending callback. It reports whether the callback was
// still pending.
func (q *Queue) Cancel(h Handle) bool {
	e, ok := q.live[h]
	if !ok {
		return false
	}
	delete(q.live, h)
	heap.Remove(&q.items, e.index)
	return true
}

// Pending returns the number of scheduled callbacks.
func (q *Queue) Pending() int {
	return len(q.live)
}

// Advance moves virtual time forward by dt and runs every callback that
// became due, in deadline order. Callbacks scheduled while advancing run in
// the same call if they are already due. It returns the number of callbacks run.
func (q *Queue) Advance(dt time.Duration) int {
	if dt > 0 {
		q.now += dt
	}
	fired := 0
	for len(q.items) > 0 && q.items[0].due <= q.now {
		e := heap.Pop(&q.items).(*entry)
		delete(q.live, e.handle)
		e.fn()
		fired++
	}
	return fired
}

// Group tracks a set of handles so they can be cancelled together, e.g. all
// reveals belonging to a superseded transition.
type Group struct {
	q       *Queue
	handles map[Handle]struct{}
}

// NewGroup creates a group scheduling onto q.
func NewGroup(q *Queue) *Group {
	return &Group{q: q, handles: make(map[Handle]struct{})}
}

// After schedules fn on the underlying queue and tracks it.
func (g *Group) After(d time.Duration, fn func()) Handle {
	var h Handle
	h = g.q.After(d, func() {
		delete(g.handles, h)
		fn()
	})
	g.handles[h] = struct{}{}
	return h
}

// CancelAll cancels every pending callback in the group and returns how many
// were cancelled.
func (g *Group) CancelAll() int {
	n := 0
	for h := range g.handles {
		if g.q.Cancel(h) {
			n++
		}
		delete(g.handles, h)
	}
	return n
}

// Len returns the number of pending callbacks in the group.
func (g *Group) Len() int {
	return len(g.handles)
}
