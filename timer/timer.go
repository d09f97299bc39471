// Package timer provides the manual-advance timer facility driven by the fixed update loop
package timer

import (
	"container/heap"
	"time"
)

// ID identifies a scheduled timer
type ID uint64

type entry struct {
	id        ID
	due       time.Duration
	interval  time.Duration // zero for one-shot timers
	seq       uint64        // tie-break, preserves scheduling order for equal due times
	fn        func()
	cancelled bool
}

type queue []*entry

func (q queue) Len() int { return len(q) }
func (q queue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}
func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x any)   { *q = append(*q, x.(*entry)) }
func (q *queue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}

// Facility is a simulation clock advanced explicitly by Update
// Time only moves when the owner advances it, so it freezes with the engine and scales with its speed
// Not safe for concurrent use; owned by the scheduling goroutine
type Facility struct {
	now    time.Duration
	queue  queue
	byID   map[ID]*entry
	nextID ID
	seq    uint64
}

// New creates a facility at time zero
func New() *Facility {
	return &Facility{byID: make(map[ID]*entry)}
}

// Now returns the accumulated simulation time
func (f *Facility) Now() time.Duration {
	return f.now
}

// After schedules fn once, d after the current time
func (f *Facility) After(d time.Duration, fn func()) ID {
	return f.schedule(d, 0, fn)
}

// Every schedules fn repeatedly with period d
// Non-positive periods schedule nothing and return the zero ID
func (f *Facility) Every(d time.Duration, fn func()) ID {
	if d <= 0 {
		return 0
	}
	return f.schedule(d, d, fn)
}

func (f *Facility) schedule(d, interval time.Duration, fn func()) ID {
	if d < 0 {
		d = 0
	}
	f.nextID++
	f.seq++
	e := &entry{id: f.nextID, due: f.now + d, interval: interval, seq: f.seq, fn: fn}
	f.byID[e.id] = e
	heap.Push(&f.queue, e)
	return e.id
}

// Cancel stops a timer, returns false when it already fired or was unknown
func (f *Facility) Cancel(id ID) bool {
	e, ok := f.byID[id]
	if !ok {
		return false
	}
	e.cancelled = true
	delete(f.byID, id)
	return true
}

// Pending returns the number of live timers
func (f *Facility) Pending() int {
	return len(f.byID)
}

// Update advances the clock by dt and fires every timer due within the advanced window
// Timers fire synchronously in due order; Now reports each timer's due time while it runs
func (f *Facility) Update(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := f.now + dt

	for f.queue.Len() > 0 {
		e := f.queue[0]
		if e.cancelled {
			heap.Pop(&f.queue)
			continue
		}
		if e.due > target {
			break
		}
		heap.Pop(&f.queue)
		f.now = e.due

		if e.interval > 0 {
			e.due += e.interval
			f.seq++
			e.seq = f.seq
			heap.Push(&f.queue, e)
		} else {
			delete(f.byID, e.id)
		}
		e.fn()
	}

	f.now = target
}
