package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// glyphRows is the height of a big digit.
const glyphRows = 3

// glyphs maps each clock character to a seven-segment style glyph.
// Digits are 3 cells wide, the colon is 1.
var glyphs = map[rune][glyphRows]string{
	'0': {"╭─╮", "│ │", "╰─╯"},
	'1': {"  ╷", "  │", "  ╵"},
	'2': {"╶─╮", "╭─╯", "╰─╴"},
	'3': {"╶─╮", " ─┤", "╶─╯"},
	'4': {"╷ ╷", "╰─┤", "  ╵"},
	'5': {"╭─╴", "╰─╮", "╶─╯"},
	'6': {"╭─╴", "├─╮", "╰─╯"},
	'7': {"╶─╮", "  │", "  ╵"},
	'8': {"╭─╮", "├─┤", "╰─╯"},
	'9': {"╭─╮", "╰─┤", "╶─╯"},
	':': {" ", ":", " "},
}

// bigClockWidth is the rendered width of "MM:SS".
const bigClockWidth = 4*3 + 1 + 4

// bigClockLines returns the glyph rows for a clock string like "24:59".
// Unknown characters are skipped.
func bigClockLines(text string) []string {
	var rows [glyphRows]strings.Builder
	first := true
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			continue
		}
		for i := range rows {
			if !first {
				rows[i].WriteByte(' ')
			}
			rows[i].WriteString(glyph[i])
		}
		first = false
	}

	lines := make([]string, glyphRows)
	for i := range rows {
		lines[i] = rows[i].String()
	}
	return lines
}

// renderBigClock renders text with big glyphs, falling back to a single
// styled line when width is too narrow.
func renderBigClock(text string, style lipgloss.Style, width int) string {
	if width < bigClockWidth {
		return style.Render(text)
	}
	lines := bigClockLines(text)
	for i, line := range lines {
		lines[i] = style.Render(line)
	}
	return strings.Join(lines, "\n")
}
