// Package cmd provides the CLI commands for the pomo application.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomo/internal/adapters/tui"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	configPath string
	inlineMode bool
	fpsFlag    int
	logLevel   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pomo",
	Short: "pomo - a pomodoro timer with a circular countdown",
	Long: `pomo alternates 25 minute focus intervals with 5 minute breaks.

The dial empties as time runs out and a row of four dots tracks
completed focus intervals. Press s to start or pause, r to reset
the current interval and q to quit.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runTimer,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default: ~/.pomo/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Flags().BoolVarP(&inlineMode, "inline", "i", false, "Compact inline timer (no fullscreen)")
	rootCmd.Flags().IntVar(&fpsFlag, "fps", 0, "Frames per second while the timer is running")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("pomo\nVersion: {{.Version}}\n")
}

// runTimer runs the interactive timer until the user quits.
func runTimer(cmd *cobra.Command, args []string) error {
	ctx, stop := setupSignalHandler(cmd.Context())
	defer stop()

	app.logger.Info("starting timer",
		"run_id", app.timer.RunID(),
		"inline", app.config.Display.Inline,
		"fps", app.config.Display.FPS,
		"version", Version,
	)

	host := tui.NewHost(app.timer, app.config)
	if err := host.Run(ctx); err != nil {
		app.logger.Error("timer exited", "error", err)
		return err
	}

	snap := app.timer.Snapshot()
	app.logger.Info("timer closed", "completed", snap.Completed, "phase", snap.Phase.String())
	return nil
}
