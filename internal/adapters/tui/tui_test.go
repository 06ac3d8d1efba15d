package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/pomo/internal/adapters/clock"
	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/services"
)

func newTestModel(t *testing.T, width, height int) (Model, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	svc := services.NewTimerService(clk, nil)
	m := NewModel(svc, config.DefaultConfig())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return updated.(Model), clk
}

func press(m Model, s string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	if s == " " {
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	} else {
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func frame(m Model) (Model, tea.Cmd) {
	updated, cmd := m.Update(frameMsg{})
	return updated.(Model), cmd
}

func countKind(grid [][]cell, kind cellKind) int {
	n := 0
	for _, row := range grid {
		for _, c := range row {
			if c.kind == kind {
				n++
			}
		}
	}
	return n
}

func TestModel_LoadingBeforeSize(t *testing.T) {
	clk := clock.NewManual(time.Now())
	m := NewModel(services.NewTimerService(clk, nil), nil)
	assert.Equal(t, "Loading...", m.View())
}

func TestModel_ViewIdle(t *testing.T) {
	m, _ := newTestModel(t, 100, 40)

	view := m.View()

	assert.Contains(t, view, "Focus Time")
	assert.Contains(t, view, "▶ Start")
	assert.Contains(t, view, "↺ Reset")
	assert.NotContains(t, view, "⏸ Pause")
	assert.Contains(t, view, "○  ○  ○  ○")
	assert.Contains(t, view, "start")
	for _, line := range bigClockLines("25:00") {
		assert.Contains(t, view, line)
	}
}

func TestModel_ViewSmallTerminal(t *testing.T) {
	m, _ := newTestModel(t, 16, 10)

	view := m.View()

	assert.Contains(t, view, "25:00")
	assert.Contains(t, view, "Focus Time")
}

func TestModel_StartSchedulesOneFrameChain(t *testing.T) {
	m, clk := newTestModel(t, 100, 40)

	// Init's frame finds an idle timer and stops the loop.
	m, cmd := frame(m)
	assert.Nil(t, cmd, "idle timer should not request another frame")

	m, cmd = press(m, "s")
	require.NotNil(t, cmd, "starting should schedule a frame")
	assert.True(t, m.svc.Running())

	// A second start while a frame is pending does not add another.
	m, cmd = press(m, "s")
	assert.Nil(t, cmd)
	assert.False(t, m.svc.Running(), "s toggles to pause")

	m, cmd = press(m, " ")
	assert.Nil(t, cmd, "frame already pending")
	assert.True(t, m.svc.Running())

	clk.Advance(10 * time.Second)
	m, cmd = frame(m)
	assert.NotNil(t, cmd, "running timer keeps repainting")
	assert.Equal(t, 1490*time.Second, m.svc.Snapshot().Remaining)
	assert.Contains(t, m.View(), "⏸ Pause")
}

func TestModel_ExpiryStopsFrameLoop(t *testing.T) {
	m, clk := newTestModel(t, 100, 40)
	m, _ = frame(m)
	m, _ = press(m, "s")

	clk.Advance(domain.WorkDuration)
	m, cmd := frame(m)
	assert.NotNil(t, cmd, "the expiry frame is repainted")

	m, cmd = frame(m)
	assert.Nil(t, cmd)

	snap := m.svc.Snapshot()
	assert.Equal(t, domain.PhaseBreak, snap.Phase)
	assert.Equal(t, 1, snap.Completed)

	view := m.View()
	assert.Contains(t, view, "Break Time")
	assert.Contains(t, view, "●  ○  ○  ○")
}

func TestModel_Reset(t *testing.T) {
	m, clk := newTestModel(t, 100, 40)
	m, _ = press(m, "s")
	clk.Advance(time.Minute)
	m, _ = frame(m)

	m, _ = press(m, "r")

	assert.False(t, m.svc.Running())
	assert.Equal(t, domain.WorkDuration, m.svc.Snapshot().Remaining)
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t, 100, 40)

	_, cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_MouseButtons(t *testing.T) {
	m, _ := newTestModel(t, 100, 40)

	lines, row, zones := m.layout(m.svc.Snapshot())
	require.Len(t, zones, 2)
	blockWidth := 0
	for _, l := range lines {
		blockWidth = max(blockWidth, lipgloss.Width(l))
	}
	top := (m.height - len(lines)) / 2
	left := (m.width - blockWidth) / 2

	click := func(x, y int) Model {
		updated, _ := m.Update(tea.MouseMsg{
			X: x, Y: y,
			Action: tea.MouseActionPress,
			Button: tea.MouseButtonLeft,
		})
		return updated.(Model)
	}

	m = click(left+zones[0].from+1, top+row)
	assert.True(t, m.svc.Running(), "clicking start should start the timer")

	m = click(left+zones[1].from+1, top+row)
	assert.False(t, m.svc.Running(), "clicking reset should stop the timer")

	m = click(0, 0)
	assert.False(t, m.svc.Running())

	assert.Contains(t, lines[row], "Start")
}

func TestModel_InlineView(t *testing.T) {
	clk := clock.NewManual(time.Now())
	cfg := config.DefaultConfig()
	cfg.Display.Inline = true
	m := NewModel(services.NewTimerService(clk, nil), cfg)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 5})
	m = updated.(Model)

	view := m.View()

	assert.Contains(t, view, "Focus Time")
	assert.Contains(t, view, "25:00")
	assert.Contains(t, view, "○○○○")
	assert.Contains(t, view, "paused")
	assert.Equal(t, 2, len(strings.Split(view, "\n")))
}

func TestDial_ArcLength(t *testing.T) {
	d := dial{radius: 8, segments: 100}

	full := countKind(d.canvas(0, nil), cellArc)
	half := countKind(d.canvas(0.5, nil), cellArc)
	none := countKind(d.canvas(1, nil), cellArc)

	assert.Equal(t, 0, none, "a full phase draws a zero-length arc")
	assert.Greater(t, half, none)
	assert.Greater(t, full, half)
}

func TestModel_IdleViewHasNoArc(t *testing.T) {
	m, clk := newTestModel(t, 100, 40)
	assert.NotContains(t, m.View(), "█", "a fresh timer shows an empty dial")

	m, _ = press(m, "s")
	clk.Advance(time.Minute)
	m, _ = frame(m)
	assert.Contains(t, m.View(), "█")

	m, _ = press(m, "r")
	assert.NotContains(t, m.View(), "█", "reset empties the dial")
}

func TestDial_ArcStartsAtTwelve(t *testing.T) {
	d := dial{radius: 6, segments: 100}
	grid := d.canvas(0.9, nil)
	cx, cy := d.center()

	assert.Equal(t, cellArc, grid[cy-6][cx].kind)
	// Clockwise: the arc heads right from the top, not left.
	assert.Equal(t, cellArc, grid[cy-6][cx+2].kind)
	assert.NotEqual(t, cellArc, grid[cy-6][cx-4].kind)
}

func TestDial_TextIsCentred(t *testing.T) {
	d := dial{radius: 6, segments: 100}
	grid := d.canvas(1, []string{"12:34"})
	cx, cy := d.center()

	var b strings.Builder
	for _, c := range grid[cy][cx-2 : cx+3] {
		b.WriteRune(c.ch)
	}
	assert.Equal(t, "12:34", b.String())
	assert.Greater(t, countKind(grid, cellRing), 0)
}

func TestBigClockLines(t *testing.T) {
	lines := bigClockLines("25:00")
	require.Len(t, lines, glyphRows)
	for _, l := range lines {
		assert.Equal(t, bigClockWidth, len([]rune(l)))
	}
	assert.Equal(t, "╶─╮ ╭─╴   ╭─╮ ╭─╮", lines[0])
}
