package parameter

import "time"

// Terminal geometry, a cell approximates this many screen pixels
const (
	CellWidthPx  = 8
	CellHeightPx = 16
)

// Layout
const (
	// StatusBarRows at the bottom of the terminal
	StatusBarRows = 1

	// GraphRows is the height of the population history strip in terminal rows
	GraphRows = 8
)

// UI Symbols
const (
	AudioStr  = "♫ "
	PausedStr = " PAUSED "
	PlayStr   = " RUN    "

	// HalfBlockUpper draws the top half of a cell in foreground, bottom in background
	HalfBlockUpper = '▀'
)

// StatusMessageTimeout is how long transient status messages are displayed
const StatusMessageTimeout = 2 * time.Second
