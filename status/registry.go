// Package status is a lock-free metrics registry read by debug overlays and the log
package status

import (
	"fmt"
	"sort"
	"strconv"
	"sync/atomic"
)

// Registry groups metric maps by value type
// Producers cache pointers at construction and update them on the hot path
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[Float]
	Strings *MetricMap[Text]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[Float](),
		Strings: NewMetricMap[Text](),
	}
}

// TotalCount returns the number of metrics across all maps
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Snapshot returns every metric formatted as text, keyed by name
func (r *Registry) Snapshot() map[string]string {
	out := make(map[string]string, r.TotalCount())
	r.Ints.format(out, func(v *atomic.Int64) string { return strconv.FormatInt(v.Load(), 10) })
	r.Floats.format(out, func(v *Float) string { return strconv.FormatFloat(v.Load(), 'f', 2, 64) })
	r.Strings.format(out, func(v *Text) string { return v.Load() })
	return out
}

// Lines returns the snapshot as sorted "key=value" lines
func (r *Registry) Lines() []string {
	snap := r.Snapshot()
	lines := make([]string, 0, len(snap))
	for k, v := range snap {
		lines = append(lines, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(lines)
	return lines
}
