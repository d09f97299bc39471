package audio

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/stagecore/config"
	"github.com/lixenwraith/stagecore/engine"
)

// constant streams a fixed sample value forever
type constant struct {
	val float64
}

func (c *constant) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{c.val, c.val}
	}
	return len(samples), true
}

func (c *constant) Err() error { return nil }

func newTestBus() *Bus {
	return NewBus(config.Audio{Enabled: true, SampleRate: 8000}, log.New(&bytes.Buffer{}, "", 0))
}

func pull(t *testing.T, s beep.Streamer, n int) [][2]float64 {
	t.Helper()
	buf := make([][2]float64, n)
	got, ok := s.Stream(buf)
	require.True(t, ok)
	require.Equal(t, n, got)
	return buf
}

func TestBusSuspendResume(t *testing.T) {
	bus := newTestBus()
	tr := bus.Play(&constant{val: 0.5})
	require.NotNil(t, tr)

	assert.Equal(t, 0.5, pull(t, bus.Streamer(), 4)[3][0])

	bus.Suspend()
	assert.True(t, tr.Paused())
	assert.Equal(t, 0.0, pull(t, bus.Streamer(), 4)[0][0])

	bus.Resume()
	assert.False(t, tr.Paused())
	assert.Equal(t, 0.5, pull(t, bus.Streamer(), 4)[0][0])
}

func TestBusPlayWhileSuspended(t *testing.T) {
	bus := newTestBus()
	bus.Play(&constant{val: 0.25})
	bus.Suspend()

	late := bus.Play(&constant{val: 0.5})
	assert.True(t, late.Paused(), "sounds started during a pause wait for resume")
	assert.Equal(t, 0.0, pull(t, bus.Streamer(), 2)[0][0])

	bus.Resume()
	assert.InDelta(t, 0.75, pull(t, bus.Streamer(), 2)[0][0], 1e-9)
}

func TestBusFollowsRuntimePause(t *testing.T) {
	events := engine.NewEmitter()
	pause := engine.NewPauseController(events)
	bus := newTestBus()
	bus.Attach(events)
	tr := bus.Play(&constant{val: 1})

	pause.Pause("menu")
	pause.Pause("ad")
	assert.True(t, tr.Paused())

	pause.Resume("menu", false)
	assert.True(t, tr.Paused(), "still paused by the remaining reason")

	pause.Resume("ad", false)
	assert.False(t, tr.Paused())
}

func TestBusPrunesFinishedTracks(t *testing.T) {
	bus := newTestBus()
	tr := bus.Play(beep.Take(3, &constant{val: 1}))
	assert.Equal(t, 1, bus.Active())

	pull(t, bus.Streamer(), 8)
	assert.True(t, tr.Done())
	assert.Zero(t, bus.Active())
}

func TestBusSuspendWithNothingPlaying(t *testing.T) {
	bus := newTestBus()
	bus.Suspend()

	tr := bus.Play(&constant{val: 1})
	assert.True(t, tr.Paused())

	bus.Resume()
	assert.False(t, tr.Paused())
}

func TestBusDisabled(t *testing.T) {
	bus := NewBus(config.Audio{Enabled: false}, nil)
	assert.Nil(t, bus.Play(&constant{val: 1}))
	assert.NoError(t, bus.Start(), "start on a disabled bus is a no-op")
	assert.Equal(t, DefaultSampleRate, bus.SampleRate())
}

func TestEffectsAreFinite(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, name := range []string{SoundShoot, SoundHit, SoundExplode, SoundSelect} {
		t.Run(name, func(t *testing.T) {
			s := Effect(name, rate)
			require.NotNil(t, s)

			total := 0
			buf := make([][2]float64, 512)
			for i := 0; i < 100; i++ {
				n, ok := s.Stream(buf)
				total += n
				if !ok {
					break
				}
				for _, smp := range buf[:n] {
					assert.LessOrEqual(t, smp[0], 1.0)
					assert.GreaterOrEqual(t, smp[0], -1.0)
				}
			}
			assert.Greater(t, total, 0)
			assert.Less(t, total, rate.N(time.Second))
		})
	}
	assert.Nil(t, Effect("unknown", rate))
}

func TestToneLengthAndShape(t *testing.T) {
	rate := beep.SampleRate(1000)
	s := Tone(Square, 250, 10*time.Millisecond, rate)

	buf := make([][2]float64, 6)
	n, ok := s.Stream(buf)
	require.True(t, ok)
	require.Equal(t, 6, n)
	// 250 Hz at 1 kHz: two samples high, two low
	assert.Equal(t, []float64{1, 1, -1, -1, 1, 1}, []float64{buf[0][0], buf[1][0], buf[2][0], buf[3][0], buf[4][0], buf[5][0]})

	n, ok = s.Stream(buf)
	assert.Equal(t, 4, n)
	assert.True(t, ok)

	n, ok = s.Stream(buf)
	assert.Zero(t, n)
	assert.False(t, ok, "drained tone reports end of stream")
}
