package engine

import "github.com/mrchimp/zombies-vs-medics/component"

// Sample is one point of the population history graph
type Sample struct {
	Tick   uint64           `json:"tick"`
	Counts component.Counts `json:"counts"`
}

// History is a fixed-capacity ring of population samples, oldest overwritten first
// Not safe for concurrent use, the owning Simulation guards it
type History struct {
	samples []Sample
	next    int
	full    bool
}

// NewHistory creates a ring holding at most capacity samples
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{samples: make([]Sample, capacity)}
}

// Record appends a sample
func (h *History) Record(s Sample) {
	h.samples[h.next] = s
	h.next++
	if h.next == len(h.samples) {
		h.next = 0
		h.full = true
	}
}

// Len returns the number of samples held
func (h *History) Len() int {
	if h.full {
		return len(h.samples)
	}
	return h.next
}

// Last returns up to n most recent samples in chronological order, as a copy
func (h *History) Last(n int) []Sample {
	size := h.Len()
	if n <= 0 || n > size {
		n = size
	}

	out := make([]Sample, n)
	start := h.next - n
	if start < 0 {
		start += len(h.samples)
	}
	for i := 0; i < n; i++ {
		out[i] = h.samples[(start+i)%len(h.samples)]
	}
	return out
}
