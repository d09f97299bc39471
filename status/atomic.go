package status

import (
	"math"
	"sync/atomic"
)

// Float is an atomic float64 stored as bits, zero value reads 0.0
type Float struct {
	bits atomic.Uint64
}

// Store sets the value
func (f *Float) Store(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Load returns the value
func (f *Float) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

// MaxTextLen bounds Text values shown on the status line
const MaxTextLen = 32

// Text is an atomic string truncated to MaxTextLen, zero value reads ""
type Text struct {
	ptr atomic.Pointer[string]
}

// Store sets the value, truncating long strings
func (s *Text) Store(val string) {
	if len(val) > MaxTextLen {
		val = val[:MaxTextLen]
	}
	s.ptr.Store(&val)
}

// Load returns the value
func (s *Text) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
