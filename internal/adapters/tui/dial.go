package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/pomo/internal/domain"
)

// cellKind says which layer of the dial a terminal cell belongs to.
type cellKind int

const (
	cellEmpty cellKind = iota
	cellFace
	cellRing
	cellArc
	cellText
)

type cell struct {
	kind cellKind
	ch   rune
}

// dial rasterises the circular progress indicator onto terminal cells.
// Terminal cells are roughly twice as tall as they are wide, so one unit of
// radius spans one row and two columns.
type dial struct {
	radius   int
	segments int
}

// size returns the canvas dimensions in columns and rows.
func (d dial) size() (cols, rows int) {
	outer := d.radius + 1
	return 4*outer + 1, 2*outer + 1
}

func (d dial) center() (cx, cy int) {
	outer := d.radius + 1
	return 2 * outer, outer
}

// canvas lays out the face, the outer ring, the progress arc and the
// centred text lines for the given remaining fraction.
func (d dial) canvas(fraction float64, text []string) [][]cell {
	cols, rows := d.size()
	cx, cy := d.center()
	r := float64(d.radius)

	grid := make([][]cell, rows)
	for y := range grid {
		grid[y] = make([]cell, cols)
		for x := range grid[y] {
			dx := float64(x-cx) / 2
			dy := float64(y - cy)
			if dx*dx+dy*dy <= r*r {
				grid[y][x] = cell{kind: cellFace, ch: ' '}
			} else {
				grid[y][x] = cell{kind: cellEmpty, ch: ' '}
			}
		}
	}

	origin := domain.Point{}
	ringSamples := 16 * (d.radius + 1)
	for _, p := range domain.ArcPoints(origin, r+1, 0, ringSamples) {
		d.plot(grid, p, cell{kind: cellRing, ch: '·'})
	}

	// A full phase has a zero-length arc and paints nothing.
	if fraction < 1 {
		arc := domain.ArcPoints(origin, r, fraction, d.segments)
		for i := 1; i < len(arc); i++ {
			d.line(grid, arc[i-1], arc[i], cell{kind: cellArc, ch: '█'})
		}
	}

	top := cy - len(text)/2
	for i, line := range text {
		runes := []rune(line)
		left := cx - len(runes)/2
		for j, ch := range runes {
			x, y := left+j, top+i
			if y < 0 || y >= rows || x < 0 || x >= cols {
				continue
			}
			grid[y][x] = cell{kind: cellText, ch: ch}
		}
	}

	return grid
}

// toCell maps a point in radius units to a grid position.
func (d dial) toCell(p domain.Point) (int, int) {
	cx, cy := d.center()
	return cx + int(math.Round(p.X*2)), cy + int(math.Round(p.Y))
}

func (d dial) plot(grid [][]cell, p domain.Point, c cell) {
	x, y := d.toCell(p)
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
		return
	}
	grid[y][x] = c
}

// line joins two arc samples so that the arc has no gaps between them.
func (d dial) line(grid [][]cell, a, b domain.Point, c cell) {
	ax, ay := d.toCell(a)
	bx, by := d.toCell(b)
	steps := max(abs(bx-ax), abs(by-ay))
	if steps == 0 {
		d.plot(grid, a, c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		d.plot(grid, domain.Point{
			X: a.X + (b.X-a.X)*t,
			Y: a.Y + (b.Y-a.Y)*t,
		}, c)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// dialStyles holds one style per cell kind.
type dialStyles map[cellKind]lipgloss.Style

// render draws the canvas, merging runs of equally styled cells.
func (d dial) render(grid [][]cell, styles dialStyles) string {
	lines := make([]string, len(grid))
	for y, row := range grid {
		var b strings.Builder
		var run strings.Builder
		kind := cellKind(-1)
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(styles[kind].Render(run.String()))
			run.Reset()
		}
		for _, c := range row {
			if c.kind != kind {
				flush()
				kind = c.kind
			}
			run.WriteRune(c.ch)
		}
		flush()
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}
