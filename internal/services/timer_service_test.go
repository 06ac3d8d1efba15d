package services

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/pomo/internal/adapters/clock"
	"github.com/xvierd/pomo/internal/domain"
)

func newTestService(t *testing.T) (*TimerService, *clock.Manual, *bytes.Buffer) {
	t.Helper()
	clk := clock.NewManual(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	buf := new(bytes.Buffer)
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewTimerService(clk, logger), clk, buf
}

func TestTimerService_FrameWhenIdle(t *testing.T) {
	svc, clk, _ := newTestService(t)

	clk.Advance(time.Hour)

	assert.Equal(t, domain.WakeIdle, svc.Frame())
	assert.Equal(t, "25:00", svc.Snapshot().Text)
}

func TestTimerService_StartAndFrame(t *testing.T) {
	svc, clk, _ := newTestService(t)

	svc.Start()
	clk.Advance(10 * time.Second)

	assert.Equal(t, domain.WakeRepaint, svc.Frame())
	snap := svc.Snapshot()
	assert.True(t, snap.Running)
	assert.Equal(t, 1490*time.Second, snap.Remaining)
}

func TestTimerService_Toggle(t *testing.T) {
	svc, clk, _ := newTestService(t)

	svc.Toggle()
	require.True(t, svc.Running())

	clk.Advance(time.Minute)
	svc.Toggle()
	require.False(t, svc.Running())
	assert.Equal(t, 24*time.Minute, svc.Snapshot().Remaining)

	clk.Advance(time.Hour)
	svc.Frame()
	assert.Equal(t, 24*time.Minute, svc.Snapshot().Remaining)
}

func TestTimerService_Reset(t *testing.T) {
	svc, clk, _ := newTestService(t)
	svc.Start()
	clk.Advance(3 * time.Minute)
	svc.Frame()

	svc.Reset()

	assert.False(t, svc.Running())
	assert.Equal(t, domain.WorkDuration, svc.Snapshot().Remaining)
	assert.Equal(t, domain.WakeIdle, svc.Frame())
}

func TestTimerService_ExpiryIsLogged(t *testing.T) {
	svc, clk, buf := newTestService(t)

	svc.Start()
	clk.Advance(domain.WorkDuration)
	assert.Equal(t, domain.WakeRepaint, svc.Frame())

	snap := svc.Snapshot()
	assert.Equal(t, domain.PhaseBreak, snap.Phase)
	assert.Equal(t, 1, snap.Completed)
	assert.False(t, snap.Running)

	var expired map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		if rec["msg"] == "phase expired" {
			expired = rec
		}
	}
	require.NotNil(t, expired, "expected a phase expired record in %s", buf.String())
	assert.Equal(t, "work", expired["from"])
	assert.Equal(t, "break", expired["to"])
	assert.Equal(t, float64(1), expired["completed"])
	assert.Equal(t, svc.RunID(), expired["run_id"])
}

func TestTimerService_PauseAfterDeadlineExpires(t *testing.T) {
	svc, clk, buf := newTestService(t)

	svc.Start()
	clk.Advance(domain.WorkDuration + time.Second)
	svc.Pause()

	snap := svc.Snapshot()
	assert.Equal(t, domain.PhaseBreak, snap.Phase)
	assert.Equal(t, domain.BreakDuration, snap.Remaining)
	assert.Contains(t, buf.String(), "phase expired")
}

func TestTimerService_NilLogger(t *testing.T) {
	svc := NewTimerService(clock.NewManual(time.Now()), nil)
	svc.Start()
	svc.Pause()
	svc.Reset()
	assert.NotEmpty(t, svc.RunID())
}
