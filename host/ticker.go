package host

import (
	"context"
	"sync"
	"time"
)

// DefaultFrameInterval approximates a 60 Hz display refresh
const DefaultFrameInterval = time.Second / 60

// Ticker is a real-time host driven by a time.Ticker
// Frame callbacks and posted functions run only on the goroutine that called Run
type Ticker struct {
	interval time.Duration
	start    time.Time

	mu  sync.Mutex
	cbs Queue

	posted chan func()
}

// NewTicker creates a host firing every interval, DefaultFrameInterval when non-positive
func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Ticker{
		interval: interval,
		posted:   make(chan func(), 256),
	}
}

// RequestFrame schedules cb for the next tick
func (t *Ticker) RequestFrame(cb func(time.Duration)) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cbs.Request(cb)
}

// CancelFrame drops a scheduled callback
func (t *Ticker) CancelFrame(id uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cbs.Cancel(id)
}

// Post queues fn to run on the frame goroutine between frames
// Safe to call from any goroutine, blocks when the queue is full
func (t *Ticker) Post(fn func()) {
	t.posted <- fn
}

// Run delivers frames until ctx is cancelled
// Timestamps are measured from the first call to Run
func (t *Ticker) Run(ctx context.Context) error {
	if t.start.IsZero() {
		t.start = time.Now()
	}
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-t.posted:
			fn()
		case now := <-ticker.C:
			t.mu.Lock()
			batch := t.cbs.Take()
			t.mu.Unlock()

			ts := now.Sub(t.start)
			for _, cb := range batch {
				cb(ts)
			}
		}
	}
}
