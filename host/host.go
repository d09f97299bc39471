// Package host provides frame-callback primitives that drive the engine scheduler
package host

import (
	"maps"
	"slices"
	"time"
)

// Queue is a set of pending one-shot frame callbacks in request order
// Not safe for concurrent use; hosts that fire from another goroutine guard it
type Queue struct {
	next    uint64
	pending map[uint64]func(time.Duration)
}

// Request adds cb and returns its handle
func (c *Queue) Request(cb func(time.Duration)) uint64 {
	if c.pending == nil {
		c.pending = make(map[uint64]func(time.Duration))
	}
	c.next++
	c.pending[c.next] = cb
	return c.next
}

// Cancel drops a pending callback, unknown handles are ignored
func (c *Queue) Cancel(id uint64) {
	delete(c.pending, id)
}

// Take removes and returns every pending callback in request order
// Callbacks requested while the batch runs wait for the next frame
func (c *Queue) Take() []func(time.Duration) {
	if len(c.pending) == 0 {
		return nil
	}
	ids := slices.Sorted(maps.Keys(c.pending))
	out := make([]func(time.Duration), 0, len(ids))
	for _, id := range ids {
		out = append(out, c.pending[id])
	}
	clear(c.pending)
	return out
}

// Len returns the number of pending callbacks
func (c *Queue) Len() int {
	return len(c.pending)
}

// Manual is a host whose frames are fired explicitly, for tests and headless stepping
type Manual struct {
	cbs Queue
}

// NewManual creates a manual host with nothing pending
func NewManual() *Manual {
	return &Manual{}
}

// RequestFrame schedules cb for the next Fire
func (m *Manual) RequestFrame(cb func(time.Duration)) uint64 {
	return m.cbs.Request(cb)
}

// CancelFrame drops a scheduled callback
func (m *Manual) CancelFrame(id uint64) {
	m.cbs.Cancel(id)
}

// Fire runs the callbacks pending at call time with timestamp, returns how many ran
func (m *Manual) Fire(timestamp time.Duration) int {
	batch := m.cbs.Take()
	for _, cb := range batch {
		cb(timestamp)
	}
	return len(batch)
}

// FireSequence fires one frame per timestamp in order
func (m *Manual) FireSequence(timestamps ...time.Duration) {
	for _, ts := range timestamps {
		m.Fire(ts)
	}
}

// Pending returns the number of scheduled callbacks
func (m *Manual) Pending() int {
	return m.cbs.Len()
}
