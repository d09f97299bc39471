package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave maps a phase in [0,1) to a sample in [-1,1]
type Wave func(phase float64) float64

// Basic waveforms
var (
	Sine   Wave = func(p float64) float64 { return math.Sin(2 * math.Pi * p) }
	Saw    Wave = func(p float64) float64 { return 2*p - 1 }
	Noise  Wave = func(float64) float64 { return rand.Float64()*2 - 1 }
	Square Wave = func(p float64) float64 {
		if p < 0.5 {
			return 1
		}
		return -1
	}
)

// Tone streams wave at freq Hz for duration, then drains
func Tone(wave Wave, freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	remaining := rate.N(duration)
	inc := freq / float64(rate)
	phase := 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n := min(len(samples), remaining)
		for i := range n {
			v := wave(phase)
			samples[i] = [2]float64{v, v}
			_, phase = math.Modf(phase + inc)
		}
		remaining -= n
		return n, n > 0 || remaining > 0
	})
}

// envelope applies a linear attack and release to a stream
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	release      int
	releaseStart int
}

// NewEnvelope shapes s, which is expected to last duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	return &envelope{
		streamer:     s,
		attack:       att,
		release:      rel,
		releaseStart: max(total-rel, att),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.release > 0 && e.position >= e.releaseStart {
			vol = max(0, 1-float64(e.position-e.releaseStart)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales s by a linear factor, math.Log2(0) is -Inf so zero is silent
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Sound names understood by Effect
const (
	SoundShoot   = "shoot"
	SoundHit     = "hit"
	SoundExplode = "explode"
	SoundSelect  = "select"
)

// Effect synthesizes a named sound effect at rate, nil for unknown names
func Effect(name string, rate beep.SampleRate) beep.Streamer {
	switch name {
	case SoundShoot:
		d := 80 * time.Millisecond
		return withVolume(NewEnvelope(Tone(Square, 880, d, rate), d, 5*time.Millisecond, 60*time.Millisecond, rate), 0.2)
	case SoundHit:
		d := 120 * time.Millisecond
		return withVolume(NewEnvelope(Tone(Saw, 140, d, rate), d, 2*time.Millisecond, 90*time.Millisecond, rate), 0.3)
	case SoundExplode:
		d := 350 * time.Millisecond
		noise := NewEnvelope(Tone(Noise, 0, d, rate), d, time.Millisecond, 300*time.Millisecond, rate)
		rumble := NewEnvelope(Tone(Sine, 60, d, rate), d, time.Millisecond, 300*time.Millisecond, rate)
		return withVolume(beep.Mix(noise, rumble), 0.35)
	case SoundSelect:
		d := 60 * time.Millisecond
		return beep.Seq(
			withVolume(Tone(Sine, 660, d, rate), 0.25),
			withVolume(Tone(Sine, 990, d, rate), 0.25),
		)
	}
	return nil
}
