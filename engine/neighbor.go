package engine

import (
	"github.com/mrchimp/zombies-vs-medics/component"
	"github.com/mrchimp/zombies-vs-medics/vmath"
)

// NeighborQuery counts nearby agents per kind for state transitions
// Self and agents on cooldown are never counted; distance is euclidean and inclusive of radius
type NeighborQuery interface {
	// Prepare indexes snapshot once per tick, before any CountNearby call on it
	Prepare(snapshot []component.Entity, radius float64)

	// CountNearby tallies the neighbors of snapshot[index] within radius
	CountNearby(index int, snapshot []component.Entity, radius float64) component.Counts
}

// BruteForceQuery scans the whole population, O(n) per call
type BruteForceQuery struct{}

func (BruteForceQuery) Prepare([]component.Entity, float64) {}

func (BruteForceQuery) CountNearby(index int, snapshot []component.Entity, radius float64) component.Counts {
	var counts component.Counts
	self := snapshot[index].Pos
	radiusSq := radius * radius

	for i := range snapshot {
		if i == index {
			continue
		}
		other := &snapshot[i]
		if other.Frozen() {
			continue
		}
		if vmath.V2DistSq(self, other.Pos) > radiusSq {
			continue
		}
		counts[other.Kind]++
	}
	return counts
}

// GridQuery buckets the snapshot into cells of side radius so each query only scans the 3x3 block around it
type GridQuery struct {
	grid *SpatialGrid

	// Prepared state, a CountNearby with a different snapshot length or radius re-indexes
	prepared bool
	n        int
	radius   float64
}

// NewGridQuery creates a grid query for a board of the given size, cells sized to radius
func NewGridQuery(boardWidth, boardHeight, radius float64) *GridQuery {
	return &GridQuery{
		grid: NewSpatialGrid(boardWidth, boardHeight, radius),
	}
}

func (q *GridQuery) Prepare(snapshot []component.Entity, radius float64) {
	q.grid.Rebuild(snapshot, radius)
	q.prepared = true
	q.n = len(snapshot)
	q.radius = radius
}

func (q *GridQuery) CountNearby(index int, snapshot []component.Entity, radius float64) component.Counts {
	if !q.prepared || q.n != len(snapshot) || q.radius != radius {
		q.Prepare(snapshot, radius)
	}

	var counts component.Counts
	self := snapshot[index].Pos
	radiusSq := radius * radius

	q.grid.ForEachNear(self, func(i int) {
		if i == index {
			return
		}
		other := &snapshot[i]
		if other.Frozen() {
			return
		}
		if vmath.V2DistSq(self, other.Pos) > radiusSq {
			return
		}
		counts[other.Kind]++
	})
	return counts
}
