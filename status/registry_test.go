package status

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricMapGetIsStable(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get("clock.ticks")
	b := r.Ints.Get("clock.ticks")

	assert.Same(t, a, b, "Get must return the cached pointer")
	r.Ints.Get("clock.renders")
	assert.Equal(t, []string{"clock.renders", "clock.ticks"}, r.Ints.Names())
	assert.Equal(t, 2, r.TotalCount())
}

func TestRegistryConcurrentGet(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Ints.Get("shared").Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(800), r.Ints.Get("shared").Load())
	assert.Equal(t, 1, r.TotalCount())
}

func TestRegistryLines(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("clock.ticks").Store(42)
	r.Floats.Get("clock.speed").Store(0.5)
	r.Strings.Get("scene.current").Store("Space")

	assert.Equal(t, []string{
		"clock.speed=0.50",
		"clock.ticks=42",
		"scene.current=Space",
	}, r.Lines())
}

func TestTextTruncates(t *testing.T) {
	var s Text
	assert.Equal(t, "", s.Load())

	s.Store(strings.Repeat("x", MaxTextLen+10))
	assert.Len(t, s.Load(), MaxTextLen)
}

func TestFloatZeroValue(t *testing.T) {
	var f Float
	assert.Equal(t, 0.0, f.Load())
	f.Store(-1.25)
	assert.Equal(t, -1.25, f.Load())
}
