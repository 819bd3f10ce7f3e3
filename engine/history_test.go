package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrchimp/zombies-vs-medics/component"
)

func sampleAt(tick uint64) Sample {
	return Sample{Tick: tick, Counts: component.Counts{component.KindCivilian: int(tick)}}
}

func ticksOf(samples []Sample) []uint64 {
	out := make([]uint64, len(samples))
	for i, s := range samples {
		out[i] = s.Tick
	}
	return out
}

func TestHistoryRing(t *testing.T) {
	tests := []struct {
		name    string
		records int
		last    int
		want    []uint64
	}{
		{"empty", 0, 5, []uint64{}},
		{"partial all", 3, 0, []uint64{0, 1, 2}},
		{"partial tail", 3, 2, []uint64{1, 2}},
		{"exactly full", 4, 0, []uint64{0, 1, 2, 3}},
		{"wrapped", 7, 0, []uint64{3, 4, 5, 6}},
		{"wrapped tail", 7, 3, []uint64{4, 5, 6}},
		{"request beyond len", 2, 10, []uint64{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(4)
			for i := 0; i < tt.records; i++ {
				h.Record(sampleAt(uint64(i)))
			}
			assert.Equal(t, tt.want, ticksOf(h.Last(tt.last)))
			assert.Equal(t, min(tt.records, 4), h.Len())
		})
	}
}

func TestHistoryLastIsACopy(t *testing.T) {
	h := NewHistory(2)
	h.Record(sampleAt(1))

	got := h.Last(1)
	got[0].Tick = 99

	assert.Equal(t, uint64(1), h.Last(1)[0].Tick)
}

func TestHistoryMinimumCapacity(t *testing.T) {
	h := NewHistory(0)
	h.Record(sampleAt(1))
	h.Record(sampleAt(2))

	assert.Equal(t, []uint64{2}, ticksOf(h.Last(0)))
}
