package engine

import (
	"math"

	"github.com/mrchimp/zombies-vs-medics/component"
	"github.com/mrchimp/zombies-vs-medics/vmath"
)

// SpatialGrid is a dense bucket grid over continuous board coordinates
// Buckets are packed into one index array (counting sort), rebuilt without allocation once capacity settles
type SpatialGrid struct {
	Width    int // cells
	Height   int // cells
	CellSize float64

	boardWidth  float64
	boardHeight float64

	// start[c]..start[c+1] delimits cell c's slice of items; 1D index = y*Width + x
	start []int32
	items []int32
	cells  []int32 // cell index per entity, reused across rebuilds
	cursor []int32
}

// NewSpatialGrid creates a grid covering the board with the given cell size
func NewSpatialGrid(boardWidth, boardHeight, cellSize float64) *SpatialGrid {
	g := &SpatialGrid{
		boardWidth:  boardWidth,
		boardHeight: boardHeight,
	}
	g.Resize(cellSize)
	return g
}

// Resize changes the cell size, clearing all data
func (g *SpatialGrid) Resize(cellSize float64) {
	if cellSize <= 0 {
		cellSize = 1
	}
	g.CellSize = cellSize
	g.Width = max(1, int(math.Ceil(g.boardWidth/cellSize)))
	g.Height = max(1, int(math.Ceil(g.boardHeight/cellSize)))
	g.start = make([]int32, g.Width*g.Height+1)
	g.cursor = make([]int32, len(g.start))
	g.items = g.items[:0]
}

// cellOf maps a position to its cell coordinates, clamped to the grid
func (g *SpatialGrid) cellOf(p vmath.Vec2) (int, int) {
	x := int(p.X / g.CellSize)
	y := int(p.Y / g.CellSize)
	return min(max(x, 0), g.Width-1), min(max(y, 0), g.Height-1)
}

// Rebuild indexes every entity of snapshot by position
func (g *SpatialGrid) Rebuild(snapshot []component.Entity, cellSize float64) {
	if cellSize != g.CellSize {
		g.Resize(cellSize)
	}

	clear(g.start)
	if cap(g.cells) < len(snapshot) {
		g.cells = make([]int32, len(snapshot))
	}
	g.cells = g.cells[:len(snapshot)]

	// Count per cell, shifted by one for the prefix sum
	for i := range snapshot {
		x, y := g.cellOf(snapshot[i].Pos)
		c := int32(y*g.Width + x)
		g.cells[i] = c
		g.start[c+1]++
	}
	for c := 1; c < len(g.start); c++ {
		g.start[c] += g.start[c-1]
	}

	if cap(g.items) < len(snapshot) {
		g.items = make([]int32, len(snapshot))
	}
	g.items = g.items[:len(snapshot)]

	// Fill using a moving cursor per cell so start offsets stay intact
	copy(g.cursor, g.start)
	for i, c := range g.cells {
		g.items[g.cursor[c]] = int32(i)
		g.cursor[c]++
	}
}

// GetAllAt returns the entity indices bucketed at cell (x, y)
// INTERNAL USE ONLY - valid until the next Rebuild
func (g *SpatialGrid) GetAllAt(x, y int) []int32 {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return nil
	}
	c := y*g.Width + x
	return g.items[g.start[c]:g.start[c+1]]
}

// ForEachNear visits every index in the 3x3 cell block around p
// With CellSize equal to the query radius this is a superset of all in-range entities
func (g *SpatialGrid) ForEachNear(p vmath.Vec2, fn func(i int)) {
	cx, cy := g.cellOf(p)
	for y := cy - 1; y <= cy+1; y++ {
		for x := cx - 1; x <= cx+1; x++ {
			for _, i := range g.GetAllAt(x, y) {
				fn(int(i))
			}
		}
	}
}
