package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomo/internal/adapters/clock"
	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/logging"
	"github.com/xvierd/pomo/internal/services"
)

// appDeps groups all dependencies initialized at startup.
type appDeps struct {
	config *config.Config
	log    *logging.Result
	logger *slog.Logger
	timer  *services.TimerService
}

// app holds all initialized dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices loads configuration and builds the timer service.
func initializeServices(cmd *cobra.Command) error {
	var err error
	app.config, err = config.Load(configPath)
	if err != nil {
		// If config loading fails, use defaults
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v (using defaults)\n", err)
		app.config = config.DefaultConfig()
		if err := app.config.ResolvePaths(); err != nil {
			return err
		}
	}

	if err := applyFlags(cmd, app.config); err != nil {
		return err
	}

	app.log, err = logging.Setup(app.config.Logging, app.config.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	app.logger = app.log.Logger

	app.timer = services.NewTimerService(clock.System{}, app.logger)
	return nil
}

// applyFlags lets command-line flags override the loaded configuration.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	if logLevel != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(logLevel)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		cfg.Logging.Level = lvl
	}
	if f := cmd.Flags().Lookup("inline"); f != nil && f.Changed {
		cfg.Display.Inline = inlineMode
	}
	if f := cmd.Flags().Lookup("fps"); f != nil && f.Changed {
		if fpsFlag <= 0 {
			return fmt.Errorf("invalid fps %d: must be positive", fpsFlag)
		}
		cfg.Display.FPS = fpsFlag
	}
	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if app.log != nil {
		return app.log.Close()
	}
	return nil
}

// setupSignalHandler returns a context that cancels on SIGINT or SIGTERM.
func setupSignalHandler(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
