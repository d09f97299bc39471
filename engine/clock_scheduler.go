package engine

import (
	"context"
	"sync/atomic"
	"time"
)

// maxCatchUpSteps bounds how many fixed steps a single host frame may inject
const maxCatchUpSteps = 3

// Clock is a snapshot of the scheduler's timing state
type Clock struct {
	Last          time.Duration // last host timestamp consumed
	Accumulator   time.Duration // pending simulation time, always below StepSize after a tick
	StepSize      time.Duration // unscaled fixed step of the last normal tick
	SpiralCounter int
	LastStepCount int
	SkipCounter   int

	Ticks            uint64
	FixedUpdates     uint64
	Renders          uint64
	SkippedRenders   uint64
	SpiralRecoveries uint64
}

// FrameScheduler converts host frame callbacks into whole fixed simulation steps
// Catch-up is bounded per frame and sustained divergence triggers a time-discarding recovery frame
// All methods run on the host's scheduling goroutine
type FrameScheduler struct {
	rt   *Runtime
	host FrameHost

	running bool
	armed   bool
	handle  uint64
	ticked  bool // first tick uses a zero delta

	clock Clock
	delta time.Duration

	// Cached metric pointers
	statTicks    *atomic.Int64
	statUpdates  *atomic.Int64
	statRenders  *atomic.Int64
	statSkipped  *atomic.Int64
	statSpirals  *atomic.Int64
	statLastStep *atomic.Int64
	statAccum    *atomic.Int64
}

func newFrameScheduler(rt *Runtime, host FrameHost) *FrameScheduler {
	reg := rt.status
	return &FrameScheduler{
		rt:           rt,
		host:         host,
		statTicks:    reg.Ints.Get("clock.ticks"),
		statUpdates:  reg.Ints.Get("clock.fixed_updates"),
		statRenders:  reg.Ints.Get("clock.renders"),
		statSkipped:  reg.Ints.Get("clock.renders_skipped"),
		statSpirals:  reg.Ints.Get("clock.spiral_recoveries"),
		statLastStep: reg.Ints.Get("clock.last_step_count"),
		statAccum:    reg.Ints.Get("clock.accumulator_ms"),
	}
}

// Start begins the host callback chain
func (fs *FrameScheduler) Start() {
	if fs.running {
		return
	}
	fs.running = true
	fs.arm()
}

// Stop cancels the next host callback, a tick in progress always completes
func (fs *FrameScheduler) Stop() {
	if !fs.running {
		return
	}
	fs.running = false
	if fs.armed {
		fs.host.CancelFrame(fs.handle)
		fs.armed = false
	}
}

// Running reports whether the callback chain is active
func (fs *FrameScheduler) Running() bool {
	return fs.running
}

// Clock returns a snapshot of the timing state
func (fs *FrameScheduler) Clock() Clock {
	return fs.clock
}

// Delta returns the scaled time advanced by the last fixed update
func (fs *FrameScheduler) Delta() time.Duration {
	return fs.delta
}

func (fs *FrameScheduler) arm() {
	fs.handle = fs.host.RequestFrame(fs.OnFrame)
	fs.armed = true
}

// OnFrame is the host callback: it re-arms first, then ticks unless paused
// While paused neither simulation nor rendering happens
func (fs *FrameScheduler) OnFrame(timestamp time.Duration) {
	fs.armed = false
	if !fs.running {
		return
	}
	fs.arm()

	if fs.rt.pause.Paused() {
		return
	}
	fs.Tick(timestamp)
}

// Tick runs one simulation-and-render cycle for a host timestamp
func (fs *FrameScheduler) Tick(timestamp time.Duration) {
	c := &fs.clock

	var realDelta time.Duration
	if fs.ticked {
		realDelta = max(0, timestamp-c.Last)
	}
	fs.ticked = true
	c.Last = timestamp
	c.Ticks++
	fs.statTicks.Store(int64(c.Ticks))

	// Swaps land before any subsystem phase of this tick
	fs.rt.director.applyPending(context.Background())
	scene := fs.rt.director.Current()

	if c.SpiralCounter > 1 {
		discarded := c.Accumulator
		c.Accumulator = 0
		c.SpiralCounter = 0
		c.SpiralRecoveries++
		fs.statSpirals.Store(int64(c.SpiralRecoveries))
		fs.statAccum.Store(0)
		fs.rt.logger.Printf("[Scheduler] spiraling, discarded %v of simulation time", discarded)
		fs.rt.events.Emit(EventSpiral, discarded)

		fs.render(scene)
		return
	}

	step := time.Second / DefaultDesiredFPS
	if scene != nil {
		step = scene.stepSize()
	}
	scaled := time.Duration(float64(step) * fs.rt.speed)
	c.StepSize = step

	c.Accumulator += min(realDelta, step*maxCatchUpSteps)

	steps := 0
	for c.Accumulator >= step {
		c.Accumulator -= step

		fs.delta = scaled
		fs.rt.timer.Update(scaled)
		if scene != nil {
			scene.update(scaled)
		}
		steps++
	}
	c.FixedUpdates += uint64(steps)
	fs.statUpdates.Store(int64(c.FixedUpdates))

	if steps > c.LastStepCount {
		c.SpiralCounter++
	} else if steps < c.LastStepCount {
		c.SpiralCounter = 0
	}
	c.LastStepCount = steps
	fs.statLastStep.Store(int64(steps))
	fs.statAccum.Store(c.Accumulator.Milliseconds())

	fs.render(scene)
}

// render draws one of every SkipFrame+1 ticks
func (fs *FrameScheduler) render(scene *Scene) {
	c := &fs.clock
	c.SkipCounter--
	if c.SkipCounter >= 0 {
		c.SkippedRenders++
		fs.statSkipped.Store(int64(c.SkippedRenders))
		return
	}
	c.SkipCounter = fs.rt.cfg.SkipFrame

	if scene != nil {
		fs.rt.renderer.Render(scene)
		c.Renders++
		fs.statRenders.Store(int64(c.Renders))
	}
}
