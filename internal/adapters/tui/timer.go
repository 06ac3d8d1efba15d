package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/ports"
	"github.com/xvierd/pomo/internal/services"
)

// ErrNotATerminal is returned when the host cannot take over the terminal.
var ErrNotATerminal = errors.New("stdout is not a terminal")

// Host implements ports.TimerHost using Bubbletea.
type Host struct {
	svc    *services.TimerService
	cfg    *config.Config
	input  io.Reader
	output io.Writer
}

// HostOption customises a Host.
type HostOption func(*Host)

// WithIO replaces the terminal with the given streams. The terminal check
// is skipped when an output is supplied.
func WithIO(in io.Reader, out io.Writer) HostOption {
	return func(h *Host) {
		h.input = in
		h.output = out
	}
}

// NewHost creates a TUI host around svc.
func NewHost(svc *services.TimerService, cfg *config.Config, opts ...HostOption) *Host {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	h := &Host{svc: svc, cfg: cfg}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run starts the timer interface and blocks until the user quits or ctx is
// cancelled.
func (h *Host) Run(ctx context.Context) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}

	if h.output == nil {
		if !term.IsTerminal(os.Stdout.Fd()) {
			return ErrNotATerminal
		}
	} else {
		opts = append(opts, tea.WithOutput(h.output))
	}
	if h.input != nil {
		opts = append(opts, tea.WithInput(h.input))
	}
	if !h.cfg.Display.Inline {
		opts = append(opts, tea.WithAltScreen(), tea.WithMouseCellMotion())
	}

	program := tea.NewProgram(NewModel(h.svc, h.cfg), opts...)
	if _, err := program.Run(); err != nil {
		// Cancellation is a normal way to stop.
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// Ensure Host implements ports.TimerHost.
var _ ports.TimerHost = (*Host)(nil)
