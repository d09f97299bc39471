// Package audio mixes game sounds through beep and follows the runtime pause state
package audio

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/stagecore/config"
	"github.com/lixenwraith/stagecore/engine"
)

// DefaultSampleRate is used when the configuration leaves it unset
const DefaultSampleRate = beep.SampleRate(48000)

// Track is a playing sound on the bus
type Track struct {
	ctrl *beep.Ctrl
	done atomic.Bool
}

// Done reports whether the sound played to its end
func (t *Track) Done() bool { return t.done.Load() }

// Paused reports whether the track is currently silenced
func (t *Track) Paused() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return t.ctrl.Paused
}

// Bus owns a beep mixer; every sound is added as a pausable track
// Engine pause suspends all playing tracks, resume restores exactly those
type Bus struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	mixer  *beep.Mixer
	tracks []*Track
	held   []*Track // tracks silenced by Suspend

	suspended bool

	enabled bool
	started bool
	logger  *log.Logger
}

// NewBus creates a bus from configuration, nothing is audible until Start
func NewBus(cfg config.Audio, logger *log.Logger) *Bus {
	rate := beep.SampleRate(cfg.SampleRate)
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Bus{
		rate:    rate,
		mixer:   &beep.Mixer{},
		enabled: cfg.Enabled,
		logger:  logger,
	}
}

// SampleRate returns the output rate sounds must be generated at
func (b *Bus) SampleRate() beep.SampleRate { return b.rate }

// Start initializes the speaker and begins streaming the mixer
// On failure the bus disables itself and later Play calls are no-ops
func (b *Bus) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.enabled || b.started {
		return nil
	}
	if err := speaker.Init(b.rate, b.rate.N(100*time.Millisecond)); err != nil {
		b.enabled = false
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(b.mixer)
	b.started = true
	b.logger.Printf("[Audio] speaker started at %d Hz", b.rate)
	return nil
}

// Close silences every track and releases the speaker
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	b.tracks, b.held = nil, nil
	b.suspended = false

	if b.started {
		speaker.Close()
		b.started = false
	}
}

// Play adds s to the mix and returns its track, nil when audio is disabled
func (b *Bus) Play(s beep.Streamer) *Track {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.enabled {
		return nil
	}

	t := &Track{}
	t.ctrl = &beep.Ctrl{Streamer: beep.Seq(s, beep.Callback(func() { t.done.Store(true) }))}
	b.prune()
	b.tracks = append(b.tracks, t)

	speaker.Lock()
	if b.suspended {
		// Engine is paused: queue silently, Resume starts it
		t.ctrl.Paused = true
		b.held = append(b.held, t)
	}
	b.mixer.Add(t.ctrl)
	speaker.Unlock()
	return t
}

// Suspend silences every playing track and remembers which ones it silenced
func (b *Bus) Suspend() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.prune()
	b.suspended = true
	speaker.Lock()
	defer speaker.Unlock()
	for _, t := range b.tracks {
		if !t.ctrl.Paused {
			t.ctrl.Paused = true
			b.held = append(b.held, t)
		}
	}
}

// Resume restores the tracks silenced by Suspend
func (b *Bus) Resume() {
	b.mu.Lock()
	defer b.mu.Unlock()

	speaker.Lock()
	for _, t := range b.held {
		t.ctrl.Paused = false
	}
	speaker.Unlock()
	b.held = b.held[:0]
	b.suspended = false
}

// Active returns the number of tracks that have not finished
func (b *Bus) Active() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prune()
	return len(b.tracks)
}

// Streamer exposes the mix, for headless hosts and tests
func (b *Bus) Streamer() beep.Streamer { return b.mixer }

// Attach follows the runtime pause notifications
func (b *Bus) Attach(events *engine.Emitter) {
	events.On(engine.EventPaused, func(engine.Event) { b.Suspend() })
	events.On(engine.EventResumed, func(engine.Event) { b.Resume() })
}

// prune drops finished tracks, caller holds mu
func (b *Bus) prune() {
	live := b.tracks[:0]
	for _, t := range b.tracks {
		if !t.done.Load() {
			live = append(live, t)
		}
	}
	clear(b.tracks[len(live):])
	b.tracks = live
}
