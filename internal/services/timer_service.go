// Package services implements the application layer around the timer
// state machine.
package services

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// TimerService owns the single timer of the process.
//
// It is driven from the host's update loop and is not safe for concurrent use.
type TimerService struct {
	state  *domain.TimerState
	clock  ports.Clock
	logger *slog.Logger
	runID  string
}

// NewTimerService creates a service with a fresh idle work timer.
// A nil logger discards all output.
func NewTimerService(clock ports.Clock, logger *slog.Logger) *TimerService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	runID := uuid.NewString()
	return &TimerService{
		state:  domain.NewTimerState(),
		clock:  clock,
		logger: logger.With("component", "timer", "run_id", runID),
		runID:  runID,
	}
}

// RunID identifies this process in log output.
func (s *TimerService) RunID() string {
	return s.runID
}

// Frame advances the timer to the current time and reports whether the
// host should paint again right away.
func (s *TimerService) Frame() domain.Wake {
	wasPhase := s.state.Phase()
	wake, ev := s.state.Tick(s.clock.Now())
	if ev == domain.EventExpired {
		s.logger.Info("phase expired",
			"from", wasPhase.String(),
			"to", s.state.Phase().String(),
			"completed", s.state.Completed(),
		)
	}
	return wake
}

// Start begins or resumes the countdown. It does nothing while running.
func (s *TimerService) Start() {
	if s.state.Running() {
		return
	}
	s.state.Start(s.clock.Now())
	s.logger.Debug("timer started",
		"phase", s.state.Phase().String(),
		"remaining", s.state.Remaining().String(),
	)
}

// Pause freezes the countdown. It does nothing while idle.
func (s *TimerService) Pause() {
	if !s.state.Running() {
		return
	}
	wasPhase := s.state.Phase()
	s.state.Pause(s.clock.Now())
	if s.state.Phase() != wasPhase {
		s.logger.Info("phase expired",
			"from", wasPhase.String(),
			"to", s.state.Phase().String(),
			"completed", s.state.Completed(),
		)
		return
	}
	s.logger.Debug("timer paused", "remaining", s.state.Remaining().String())
}

// Toggle pauses a running timer and starts an idle one.
func (s *TimerService) Toggle() {
	if s.state.Running() {
		s.Pause()
		return
	}
	s.Start()
}

// Reset stops the timer and refills the current phase.
func (s *TimerService) Reset() {
	s.state.Reset()
	s.logger.Debug("timer reset", "phase", s.state.Phase().String())
}

// Running reports whether the countdown is advancing.
func (s *TimerService) Running() bool {
	return s.state.Running()
}

// Snapshot returns the values a renderer needs for the current frame.
func (s *TimerService) Snapshot() domain.Snapshot {
	return s.state.Snapshot()
}
