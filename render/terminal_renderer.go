// Package render draws the simulation into a tcell screen with half-block pixels.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"

	"github.com/mrchimp/zombies-vs-medics/component"
	"github.com/mrchimp/zombies-vs-medics/engine"
	"github.com/mrchimp/zombies-vs-medics/parameter"
)

// Frame is everything one draw needs, gathered from read-only simulation accessors
type Frame struct {
	Entities []component.View
	Counts   component.Counts
	History  []engine.Sample

	BoardWidth     float64
	BoardHeight    float64
	ReservedBottom float64

	Tick    uint64
	Elapsed time.Duration
	TPS     float64
	Playing bool
	Audio   bool
	RunID   string
	Message string
}

// TerminalRenderer handles all terminal rendering
type TerminalRenderer struct {
	screen    tcell.Screen
	showGraph bool

	// pixels[py*cols+px] holds kind+1, zero means empty; reused across frames
	pixels []uint8
}

// NewTerminalRenderer creates a renderer drawing into screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	return &TerminalRenderer{
		screen:    screen,
		showGraph: true,
	}
}

// ToggleGraph flips the history strip on or off
func (r *TerminalRenderer) ToggleGraph() bool {
	r.showGraph = !r.showGraph
	return r.showGraph
}

// ShowGraph reports whether the history strip is drawn
func (r *TerminalRenderer) ShowGraph() bool {
	return r.showGraph
}

// RenderFrame renders the entire frame and shows it
func (r *TerminalRenderer) RenderFrame(f Frame) {
	cols, rows := r.screen.Size()
	r.screen.Clear()

	l := newLayout(cols, rows, f.BoardWidth, f.BoardHeight, f.ReservedBottom)
	r.resetPixels(l)
	r.plotEntities(l, f.Entities)
	if r.showGraph {
		r.plotGraph(l, f.History)
	}
	r.drawPixels(l)
	r.drawStatusBar(f, cols, rows)

	r.screen.Show()
}

func (r *TerminalRenderer) resetPixels(l layout) {
	n := l.cols * l.pixelRows
	if cap(r.pixels) < n {
		r.pixels = make([]uint8, n)
	}
	r.pixels = r.pixels[:n]
	clear(r.pixels)
}

func (r *TerminalRenderer) plotEntities(l layout, entities []component.View) {
	for _, kind := range drawOrder {
		for i := range entities {
			if entities[i].Kind != kind {
				continue
			}
			px, py, ok := l.pixel(entities[i].Pos.X, entities[i].Pos.Y)
			if !ok {
				continue
			}
			r.pixels[py*l.cols+px] = uint8(kind) + 1
		}
	}
}

// plotGraph fills the reserved strip with one stacked column per sample, newest on the right edge
func (r *TerminalRenderer) plotGraph(l layout, history []engine.Sample) {
	height := l.pixelRows - l.graphTop
	if height <= 0 || l.cols == 0 {
		return
	}
	if len(history) > l.cols {
		history = history[len(history)-l.cols:]
	}

	for col, sample := range history {
		total := sample.Counts.Total()
		if total == 0 {
			continue
		}

		y := l.graphTop
		acc := 0
		for _, kind := range graphOrder {
			acc += sample.Counts[kind]
			// Cumulative rounding keeps the bands summing to the full height
			end := l.graphTop + acc*height/total
			for ; y < end; y++ {
				r.pixels[y*l.cols+col] = uint8(kind) + 1
			}
		}
	}
}

func (r *TerminalRenderer) drawPixels(l layout) {
	for row := 0; row < l.fieldRows; row++ {
		topY, botY := row*2, row*2+1
		for x := 0; x < l.cols; x++ {
			top := r.pixelColor(l, x, topY)
			bottom := r.pixelColor(l, x, botY)
			r.screen.SetContent(x, row, parameter.HalfBlockUpper, nil, CellStyle(top, bottom))
		}
	}
}

func (r *TerminalRenderer) pixelColor(l layout, x, y int) tcell.Color {
	if v := r.pixels[y*l.cols+x]; v != 0 {
		return KindColor(component.Kind(v - 1))
	}
	if r.showGraph && y >= l.graphTop {
		return RgbGraphBackground
	}
	return RgbBackground
}

// CellStyle paints the upper half-block pixel in top and the lower in bottom
func CellStyle(top, bottom tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(top).Background(bottom)
}

// drawStatusBar renders play state, tick, counters with shares, run id and audio marker
func (r *TerminalRenderer) drawStatusBar(f Frame, cols, rows int) {
	y := rows - parameter.StatusBarRows
	if y < 0 {
		return
	}

	base := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbStatusBar)
	for x := 0; x < cols; x++ {
		r.screen.SetContent(x, y, ' ', nil, base)
	}

	x := 0
	if f.Playing {
		x = r.drawText(x, y, cols, parameter.PlayStr, base.Background(RgbPlayBg).Foreground(RgbStatusText))
	} else {
		x = r.drawText(x, y, cols, parameter.PausedStr, base.Background(RgbPausedBg).Foreground(RgbStatusText))
	}

	x = r.drawText(x, y, cols, " "+FormatTick(f.Tick, f.Elapsed)+" ", base)

	for _, kind := range component.Kinds {
		label := FormatCount(kind, f.Counts)
		x = r.drawText(x, y, cols, " "+label, base.Foreground(KindColor(kind)))
	}

	var right strings.Builder
	if f.Message != "" {
		right.WriteString(" " + f.Message + " ")
	}
	if f.TPS > 0 {
		fmt.Fprintf(&right, " %.0f tps", f.TPS)
	}
	if f.RunID != "" {
		right.WriteString(" run " + shortID(f.RunID))
	}
	if f.Audio {
		right.WriteString(" " + parameter.AudioStr)
	}

	text := right.String()
	start := cols - len([]rune(text))
	if start > x {
		style := base.Foreground(RgbStatusBarDimFg)
		if f.Message != "" {
			msg := " " + f.Message + " "
			r.drawText(start, y, cols, msg, base.Background(RgbMessageBg).Foreground(RgbStatusText))
			r.drawText(start+len([]rune(msg)), y, cols, strings.TrimPrefix(text, msg), style)
		} else {
			r.drawText(start, y, cols, text, style)
		}
	}
}

func (r *TerminalRenderer) drawText(x, y, maxX int, text string, style tcell.Style) int {
	for _, ch := range text {
		if x >= maxX {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}

// FormatTick renders the tick counter and play time for the status bar
func FormatTick(tick uint64, elapsed time.Duration) string {
	return fmt.Sprintf("tick %s  %s", humanize.Comma(int64(tick)), elapsed.Truncate(time.Second))
}

// FormatCount renders one kind's counter with its population share
func FormatCount(kind component.Kind, counts component.Counts) string {
	return fmt.Sprintf("%s %s (%.0f%%)", kind, humanize.Comma(int64(counts[kind])), counts.Share(kind)*100)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
