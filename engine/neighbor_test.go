package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrchimp/zombies-vs-medics/component"
	"github.com/mrchimp/zombies-vs-medics/vmath"
)

func randomSnapshot(n int, w, h float64, seed uint64) []component.Entity {
	rng := vmath.NewFastRand(seed)
	out := make([]component.Entity, n)
	for i := range out {
		out[i] = component.Entity{
			Pos:  vmath.Vec2{X: rng.Float64() * w, Y: rng.Float64() * h},
			Kind: component.Kind(rng.Intn(int(component.KindCount))),
		}
		if rng.Intn(5) == 0 {
			out[i].Cooldown = 1 + rng.Intn(10)
		}
	}
	return out
}

func TestBruteForceQuery(t *testing.T) {
	snapshot := []component.Entity{
		agent(component.KindCivilian, 10, 10),
		agent(component.KindZombie, 16, 10), // exactly on the radius
		agent(component.KindZombie, 10, 16.01),
		agent(component.KindMedic, 12, 12),
		{Pos: vmath.Vec2{X: 11, Y: 10}, Kind: component.KindZombie, Cooldown: 3},
	}

	counts := BruteForceQuery{}.CountNearby(0, snapshot, 6)

	assert.Equal(t, component.Counts{component.KindZombie: 1, component.KindMedic: 1}, counts)
}

func TestGridQueryMatchesBruteForce(t *testing.T) {
	const w, h = 640.0, 360.0

	for _, radius := range []float64{1, 6, 25} {
		t.Run(fmt.Sprintf("radius %g", radius), func(t *testing.T) {
			snapshot := randomSnapshot(400, w, h, uint64(radius*1000))
			grid := NewGridQuery(w, h, radius)
			grid.Prepare(snapshot, radius)

			for i := range snapshot {
				require.Equal(t,
					BruteForceQuery{}.CountNearby(i, snapshot, radius),
					grid.CountNearby(i, snapshot, radius),
					"entity %d", i)
			}
		})
	}
}

func TestGridQueryReindexesOnChange(t *testing.T) {
	grid := NewGridQuery(100, 100, 6)
	first := []component.Entity{agent(component.KindCivilian, 5, 5), agent(component.KindZombie, 6, 5)}
	grid.Prepare(first, 6)

	second := append(first, agent(component.KindMedic, 5, 6))
	counts := grid.CountNearby(0, second, 6)

	assert.Equal(t, 1, counts[component.KindMedic])
	assert.Equal(t, 1, counts[component.KindZombie])
}

func TestGridQuerySizedToRadius(t *testing.T) {
	q := NewGridQuery(640, 360, 6)
	assert.Equal(t, 6.0, q.grid.CellSize)
	assert.Equal(t, 107, q.grid.Width)
	assert.Equal(t, 60, q.grid.Height)
}

func TestSpatialGridBuckets(t *testing.T) {
	g := NewSpatialGrid(100, 50, 10)
	assert.Equal(t, 10, g.Width)
	assert.Equal(t, 5, g.Height)

	snapshot := []component.Entity{
		agent(component.KindCivilian, 5, 5),
		agent(component.KindCivilian, 9.9, 0),
		agent(component.KindCivilian, 99, 49),
		agent(component.KindCivilian, 150, -3), // clamped into the edge cell
	}
	g.Rebuild(snapshot, 10)

	assert.ElementsMatch(t, []int32{0, 1}, g.GetAllAt(0, 0))
	assert.ElementsMatch(t, []int32{2}, g.GetAllAt(9, 4))
	assert.ElementsMatch(t, []int32{3}, g.GetAllAt(9, 0))
	assert.Nil(t, g.GetAllAt(10, 0))

	var near []int
	g.ForEachNear(vmath.Vec2{X: 15, Y: 15}, func(i int) { near = append(near, i) })
	assert.ElementsMatch(t, []int{0, 1}, near)
}

func BenchmarkBruteForceQuery(b *testing.B) {
	snapshot := randomSnapshot(1000, 640, 360, 1)
	q := BruteForceQuery{}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := range snapshot {
			q.CountNearby(j, snapshot, 6)
		}
	}
}

func BenchmarkGridQuery(b *testing.B) {
	snapshot := randomSnapshot(1000, 640, 360, 1)
	q := NewGridQuery(640, 360, 6)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.Prepare(snapshot, 6)
		for j := range snapshot {
			q.CountNearby(j, snapshot, 6)
		}
	}
}
