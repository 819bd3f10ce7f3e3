package status

import "sync/atomic"

// Registry groups the simulation's metrics by value type
// The engine and clock resolve their pointers once and write atomics from the tick loop
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns the number of metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Snapshot reads the metrics whose name starts with prefix into a flat map, "" reads all
// Each value is loaded separately, the result is not a consistent cut across metrics
func (r *Registry) Snapshot(prefix string) map[string]any {
	out := make(map[string]any)
	r.Bools.Range(prefix, func(key string, ptr *atomic.Bool) {
		out[key] = ptr.Load()
	})
	r.Ints.Range(prefix, func(key string, ptr *atomic.Int64) {
		out[key] = ptr.Load()
	})
	r.Floats.Range(prefix, func(key string, ptr *AtomicFloat) {
		out[key] = ptr.Get()
	})
	r.Strings.Range(prefix, func(key string, ptr *AtomicString) {
		out[key] = ptr.Load()
	})
	return out
}
