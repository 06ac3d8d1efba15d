package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
)

var configDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration pomo will run with, after flags and
POMO_* environment overrides. Use --defaults to rewrite the config
file with default values.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			var err error
			if path, err = config.GetConfigPath(); err != nil {
				return err
			}
		}

		if configDefaults {
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			app.logger.Info("config reset to defaults", "path", path)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", path)
			return nil
		}

		printConfig(cmd.OutOrStdout(), path, app.config)
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&configDefaults, "defaults", false, "Overwrite the config file with defaults")
	rootCmd.AddCommand(configCmd)
}

func printConfig(w io.Writer, path string, cfg *config.Config) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Config file:  %s\n", path)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Intervals:")
	fmt.Fprintf(w, "    Focus:          %s\n", domain.FormatClock(domain.WorkDuration))
	fmt.Fprintf(w, "    Break:          %s\n", domain.FormatClock(domain.BreakDuration))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Window:")
	fmt.Fprintf(w, "    Title:          %s\n", cfg.Window.Title)
	fmt.Fprintf(w, "    Size:           %dx%d (dial radius %d)\n", cfg.Window.Width, cfg.Window.Height, cfg.Window.Radius)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Display:")
	fmt.Fprintf(w, "    FPS:            %d\n", cfg.Display.FPS)
	fmt.Fprintf(w, "    Arc segments:   %d\n", cfg.Display.ArcSegments)
	fmt.Fprintf(w, "    Inline:         %v\n", cfg.Display.Inline)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Logging:")
	fmt.Fprintf(w, "    Level:          %s\n", strings.ToLower(cfg.Logging.Level.String()))
	fmt.Fprintf(w, "    File:           %s\n", cfg.Logging.File)
	fmt.Fprintf(w, "    Rotation:       %d MB, %d backups, %d days\n",
		cfg.Logging.MaxSizeMB, cfg.Logging.MaxBackups, cfg.Logging.MaxAgeDays)
}
