package render

import (
	"math"

	"github.com/mrchimp/zombies-vs-medics/parameter"
)

// BoardSize derives board dimensions from a terminal of cols x rows at the given resolution scale
// The status bar is excluded; the graph strip becomes the reserved bottom of the board
func BoardSize(cols, rows, scale int) (width, height, reserved float64) {
	if scale < 1 {
		scale = 1
	}
	fieldRows := max(rows-parameter.StatusBarRows, 1)
	graphRows := min(parameter.GraphRows, fieldRows-1)

	width = math.Max(1, float64(cols*parameter.CellWidthPx)/float64(scale))
	height = math.Max(1, float64(fieldRows*parameter.CellHeightPx)/float64(scale))
	reserved = math.Max(0, float64(graphRows*parameter.CellHeightPx)/float64(scale))
	return width, height, reserved
}

// layout maps board coordinates onto half-cell pixels: two pixels per terminal row
type layout struct {
	cols      int
	fieldRows int // terminal rows above the status bar
	pixelRows int // fieldRows * 2

	graphTop int // first pixel row of the graph strip

	scaleX float64 // pixels per board unit
	scaleY float64
}

func newLayout(cols, rows int, boardW, boardH, reserved float64) layout {
	fieldRows := max(rows-parameter.StatusBarRows, 0)
	l := layout{
		cols:      cols,
		fieldRows: fieldRows,
		pixelRows: fieldRows * 2,
	}
	if boardW > 0 && boardH > 0 {
		l.scaleX = float64(cols) / boardW
		l.scaleY = float64(l.pixelRows) / boardH
	}
	l.graphTop = min(int(math.Floor((boardH-reserved)*l.scaleY)), l.pixelRows)
	return l
}

// pixel maps a board position to a half-cell pixel, ok is false outside the field
func (l layout) pixel(x, y float64) (px, py int, ok bool) {
	px = int(x * l.scaleX)
	py = int(y * l.scaleY)
	if px < 0 || px >= l.cols || py < 0 || py >= l.pixelRows {
		return 0, 0, false
	}
	return px, py, true
}
