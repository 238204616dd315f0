package term

import (
	"strconv"
)

// ANSI escape sequences
const (
	// Screen control
	ClearScreen    = "\033[2J"     // Clear entire screen
	ClearLine      = "\033[K"      // Clear from cursor to end of line
	CursorHome     = "\033[H"      // Move cursor to home position (1,1)
	CursorHide     = "\033[?25l"   // Hide cursor
	CursorShow     = "\033[?25h"   // Show cursor
	AltScreenEnter = "\033[?1049h" // Switch to the alternate screen buffer
	AltScreenExit  = "\033[?1049l" // Back to the main screen buffer

	// Mouse reporting off: click, drag, motion, SGR encoding
	MouseOff = "\033[?1000l\033[?1002l\033[?1003l\033[?1006l"

	// Text attributes
	Reset     = "\033[0m"
	Bold      = "\033[1m"
	Dim       = "\033[2m"
	Underline = "\033[4m"
	Reverse   = "\033[7m"
)

// CursorTo returns the sequence moving the cursor to (row, col), 1-indexed.
func CursorTo(row, col int) string {
	return "\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}

// FgRGB returns a 24-bit foreground color sequence.
func FgRGB(r, g, b int32) string {
	return "\033[38;2;" + rgb(r, g, b) + "m"
}

// BgRGB returns a 24-bit background color sequence.
func BgRGB(r, g, b int32) string {
	return "\033[48;2;" + rgb(r, g, b) + "m"
}

func rgb(r, g, b int32) string {
	return strconv.Itoa(int(r)) + ";" + strconv.Itoa(int(g)) + ";" + strconv.Itoa(int(b))
}
