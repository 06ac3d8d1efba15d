// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/services"
)

// frameMsg asks the model to advance the timer and repaint.
type frameMsg struct{}

// minDialRadius is the smallest dial that still reads as a circle.
const minDialRadius = 3

// Model is the bubbletea model hosting the timer.
type Model struct {
	svc      *services.TimerService
	window   config.WindowConfig
	display  config.DisplayConfig
	theme    config.ThemeConfig
	keys     keyMap
	help     help.Model
	progress progress.Model
	inline   bool

	width  int
	height int

	// framePending is true while a frameMsg is in flight, so that starting
	// the timer never spawns a second frame chain.
	framePending  bool
	frameInterval time.Duration
}

// NewModel creates the timer model. The first frame is scheduled by Init.
func NewModel(svc *services.TimerService, cfg *config.Config) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	fps := cfg.Display.FPS
	if fps <= 0 {
		fps = config.DefaultConfig().Display.FPS
	}

	h := help.New()
	h.ShortSeparator = "  •  "

	return Model{
		svc:           svc,
		window:        cfg.Window,
		display:       cfg.Display,
		theme:         cfg.Theme,
		keys:          defaultKeyMap(),
		help:          h,
		progress:      progress.New(progress.WithoutPercentage()),
		inline:        cfg.Display.Inline,
		framePending:  true,
		frameInterval: time.Second / time.Duration(fps),
	}
}

// Init sets the window title and schedules the first frame.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(m.window.Title),
		m.frameCmd(),
	)
}

func (m Model) frameCmd() tea.Cmd {
	return tea.Tick(m.frameInterval, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

// requestFrame schedules a frame unless one is already pending.
func (m *Model) requestFrame() tea.Cmd {
	if m.framePending {
		return nil
	}
	m.framePending = true
	return m.frameCmd()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.framePending = false
		if m.svc.Frame() == domain.WakeRepaint {
			return m, m.requestFrame()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			return m, m.toggle()
		case key.Matches(msg, m.keys.Reset):
			m.svc.Reset()
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		switch m.buttonAt(msg.X, msg.Y) {
		case buttonToggle:
			return m, m.toggle()
		case buttonReset:
			m.svc.Reset()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(10, msg.Width-40)
	}

	return m, nil
}

func (m *Model) toggle() tea.Cmd {
	m.svc.Toggle()
	if m.svc.Running() {
		return m.requestFrame()
	}
	return nil
}

// button identifies a clickable control.
type button int

const (
	buttonNone button = iota
	buttonToggle
	buttonReset
)

// zone is a horizontal span of a rendered line.
type zone struct {
	button button
	from   int
	to     int
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	snap := m.svc.Snapshot()
	if m.inline {
		return m.viewInline(snap)
	}
	lines, _, _ := m.layout(snap)
	content := strings.Join(lines, "\n")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content,
		lipgloss.WithWhitespaceBackground(m.background(snap.Phase)))
}

// layout builds the centred content block. It also returns the index of the
// button row and the button zones relative to the block's left edge.
func (m Model) layout(snap domain.Snapshot) (lines []string, buttonRow int, zones []zone) {
	bg := m.background(snap.Phase)
	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Text)).Background(bg)

	above := []string{
		textStyle.Bold(true).Render(snap.Phase.Label()),
		"",
		m.viewDial(snap),
		"",
	}
	below := []string{
		"",
		m.viewIndicators(snap, bg),
		"",
		m.help.View(m.keys.forState(snap.Running)),
	}
	buttons, zones := m.viewButtons(snap)

	blockWidth := lipgloss.Width(buttons)
	for _, s := range append(above, below...) {
		blockWidth = max(blockWidth, lipgloss.Width(s))
	}

	// Pad the button row ourselves so click zones line up exactly.
	pad := lipgloss.NewStyle().Background(bg)
	left := (blockWidth - lipgloss.Width(buttons)) / 2
	right := blockWidth - lipgloss.Width(buttons) - left
	buttons = pad.Render(strings.Repeat(" ", left)) + buttons + pad.Render(strings.Repeat(" ", right))
	for i := range zones {
		zones[i].from += left
		zones[i].to += left
	}

	sections := append(append(above, buttons), below...)
	block := lipgloss.JoinVertical(lipgloss.Center, sections...)
	lines = strings.Split(block, "\n")
	buttonRow = lipgloss.Height(strings.Join(above, "\n"))
	return lines, buttonRow, zones
}

// buttonAt hit-tests a click against the rendered button row.
func (m Model) buttonAt(x, y int) button {
	if m.inline || m.width == 0 {
		return buttonNone
	}
	lines, row, zones := m.layout(m.svc.Snapshot())
	blockWidth := 0
	for _, l := range lines {
		blockWidth = max(blockWidth, lipgloss.Width(l))
	}
	top := max(0, (m.height-len(lines))/2)
	left := max(0, (m.width-blockWidth)/2)
	if y != top+row {
		return buttonNone
	}
	for _, z := range zones {
		if x >= left+z.from && x < left+z.to {
			return z.button
		}
	}
	return buttonNone
}

// dialRadius picks a radius that keeps the face proportioned like the
// configured window and leaves room for the rows around it.
func (m Model) dialRadius() int {
	byWidth := int(m.window.RadiusRatio() * float64(m.width) / 2)
	byHeight := (m.height - 12) / 2
	return min(byWidth, byHeight)
}

func (m Model) viewDial(snap domain.Snapshot) string {
	bg := m.background(snap.Phase)
	clockStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text)).Background(bg)

	r := m.dialRadius()
	if r < minDialRadius {
		return renderBigClock(snap.Text, clockStyle, m.width)
	}

	d := dial{radius: r, segments: m.display.ArcSegments}
	text := []string{snap.Text}
	if 4*r-2 > bigClockWidth {
		text = bigClockLines(snap.Text)
	}

	face := lipgloss.Color(m.theme.Face)
	styles := dialStyles{
		cellEmpty: lipgloss.NewStyle().Background(bg),
		cellFace:  lipgloss.NewStyle().Background(face),
		cellRing:  lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Ring)).Background(bg),
		cellArc:   lipgloss.NewStyle().Foreground(m.arcColor(snap.Phase)),
		cellText:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text)).Background(face),
	}
	return d.render(d.canvas(snap.Fraction, text), styles)
}

// viewButtons renders the start-or-pause button and the reset button.
func (m Model) viewButtons(snap domain.Snapshot) (string, []zone) {
	base := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 2).
		Background(lipgloss.Color(m.theme.Face))

	var first string
	if snap.Running {
		first = base.Foreground(lipgloss.Color(m.theme.PauseButton)).Render("⏸ Pause")
	} else {
		first = base.Foreground(lipgloss.Color(m.theme.StartButton)).Render("▶ Start")
	}
	reset := base.Foreground(lipgloss.Color(m.theme.ResetButton)).Render("↺ Reset")
	gap := lipgloss.NewStyle().Background(m.background(snap.Phase)).Render("  ")

	w1 := lipgloss.Width(first)
	wg := lipgloss.Width(gap)
	zones := []zone{
		{button: buttonToggle, from: 0, to: w1},
		{button: buttonReset, from: w1 + wg, to: w1 + wg + lipgloss.Width(reset)},
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, first, gap, reset), zones
}

// viewIndicators renders one dot per slot, filled for completed work phases.
func (m Model) viewIndicators(snap domain.Snapshot, bg lipgloss.Color) string {
	filled := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.WorkArc)).Background(bg)
	empty := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.IndicatorEmpty)).Background(bg)
	gap := lipgloss.NewStyle().Background(bg).Render("  ")

	dots := make([]string, 0, 2*len(snap.Indicators))
	for i, on := range snap.Indicators {
		if i > 0 {
			dots = append(dots, gap)
		}
		if on {
			dots = append(dots, filled.Render("●"))
		} else {
			dots = append(dots, empty.Render("○"))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, dots...)
}

// viewInline renders a single status line for --inline mode.
func (m Model) viewInline(snap domain.Snapshot) string {
	phaseStyle := lipgloss.NewStyle().Bold(true).Foreground(m.arcColor(snap.Phase))
	dots := make([]string, len(snap.Indicators))
	for i, on := range snap.Indicators {
		if on {
			dots[i] = "●"
		} else {
			dots[i] = "○"
		}
	}

	state := "paused"
	if snap.Running {
		state = "running"
	}

	bar := m.progress
	bar.FullColor = string(m.arcColor(snap.Phase))
	line := fmt.Sprintf("%s  %s  %s  %s  %s",
		phaseStyle.Render(snap.Phase.Label()),
		lipgloss.NewStyle().Bold(true).Render(snap.Text),
		bar.ViewAs(1-snap.Fraction),
		strings.Join(dots, ""),
		state,
	)
	return line + "\n" + m.help.View(m.keys.forState(snap.Running))
}

func (m Model) background(p domain.Phase) lipgloss.Color {
	if p == domain.PhaseBreak {
		return lipgloss.Color(m.theme.BreakBackground)
	}
	return lipgloss.Color(m.theme.WorkBackground)
}

func (m Model) arcColor(p domain.Phase) lipgloss.Color {
	if p == domain.PhaseBreak {
		return lipgloss.Color(m.theme.BreakArc)
	}
	return lipgloss.Color(m.theme.WorkArc)
}
