// Package config provides configuration management for pomo.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Config holds all configuration for the pomo application.
type Config struct {
	Window  WindowConfig  `mapstructure:"window"`
	Display DisplayConfig `mapstructure:"display"`
	Theme   ThemeConfig   `mapstructure:"theme"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// WindowConfig describes the host window in logical units.
type WindowConfig struct {
	Title  string `mapstructure:"title"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	// Radius is the dial radius in the same logical units as Width.
	Radius int `mapstructure:"radius"`
}

// RadiusRatio returns the dial radius as a share of the window width.
func (w WindowConfig) RadiusRatio() float64 {
	if w.Width <= 0 || w.Radius <= 0 {
		return 0.3
	}
	return float64(w.Radius) / float64(w.Width)
}

// DisplayConfig controls rendering.
type DisplayConfig struct {
	FPS         int  `mapstructure:"fps"`
	ArcSegments int  `mapstructure:"arc_segments"`
	Inline      bool `mapstructure:"inline"`
}

// ThemeConfig holds the colours of the timer face.
type ThemeConfig struct {
	WorkBackground  string `mapstructure:"work_background"`
	BreakBackground string `mapstructure:"break_background"`
	WorkArc         string `mapstructure:"work_arc"`
	BreakArc        string `mapstructure:"break_arc"`
	Ring            string `mapstructure:"ring"`
	Face            string `mapstructure:"face"`
	Text            string `mapstructure:"text"`
	StartButton     string `mapstructure:"start_button"`
	PauseButton     string `mapstructure:"pause_button"`
	ResetButton     string `mapstructure:"reset_button"`
	IndicatorEmpty  string `mapstructure:"indicator_empty"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		WorkBackground:  "#E6D2C8",
		BreakBackground: "#C8E6D2",
		WorkArc:         "#E74C3C",
		BreakArc:        "#2ECC71",
		Ring:            "#646464",
		Face:            "#F0F0F0",
		Text:            "#3C3C3C",
		StartButton:     "#2ECC71",
		PauseButton:     "#E67E22",
		ResetButton:     "#E74C3C",
		IndicatorEmpty:  "#C8C8C8",
	}
}

// LoggingConfig holds logger settings and log file rotation.
type LoggingConfig struct {
	Level      slog.Level `mapstructure:"level"`
	File       string     `mapstructure:"file"`
	MaxSizeMB  int        `mapstructure:"max_size_mb"`
	MaxBackups int        `mapstructure:"max_backups"`
	MaxAgeDays int        `mapstructure:"max_age_days"`
	Compress   bool       `mapstructure:"compress"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Pomodoro Timer",
			Width:  400,
			Height: 600,
			Radius: 120,
		},
		Display: DisplayConfig{
			FPS:         30,
			ArcSegments: 100,
		},
		Theme: DefaultThemeConfig(),
		Logging: LoggingConfig{
			Level:      slog.LevelInfo,
			File:       "~/.pomo/pomo.log",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}

// Load reads the configuration at path, creating it with defaults when it
// does not exist. An empty path selects the default location.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := Save(path, DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	// slog.Level decodes from names like "debug" via encoding.TextUnmarshaler.
	hook := viper.DecodeHook(mapstructure.TextUnmarshallerHookFunc())
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.normalize()
	if err := cfg.ResolvePaths(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg to path as TOML.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := newViper(path)
	v.Set("window.title", cfg.Window.Title)
	v.Set("window.width", cfg.Window.Width)
	v.Set("window.height", cfg.Window.Height)
	v.Set("window.radius", cfg.Window.Radius)
	v.Set("display.fps", cfg.Display.FPS)
	v.Set("display.arc_segments", cfg.Display.ArcSegments)
	v.Set("display.inline", cfg.Display.Inline)
	v.Set("theme.work_background", cfg.Theme.WorkBackground)
	v.Set("theme.break_background", cfg.Theme.BreakBackground)
	v.Set("theme.work_arc", cfg.Theme.WorkArc)
	v.Set("theme.break_arc", cfg.Theme.BreakArc)
	v.Set("theme.ring", cfg.Theme.Ring)
	v.Set("theme.face", cfg.Theme.Face)
	v.Set("theme.text", cfg.Theme.Text)
	v.Set("theme.start_button", cfg.Theme.StartButton)
	v.Set("theme.pause_button", cfg.Theme.PauseButton)
	v.Set("theme.reset_button", cfg.Theme.ResetButton)
	v.Set("theme.indicator_empty", cfg.Theme.IndicatorEmpty)
	v.Set("logging.level", strings.ToLower(cfg.Logging.Level.String()))
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	v.Set("logging.max_backups", cfg.Logging.MaxBackups)
	v.Set("logging.max_age_days", cfg.Logging.MaxAgeDays)
	v.Set("logging.compress", cfg.Logging.Compress)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".pomo", "config.toml"), nil
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix("POMO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("window.radius", d.Window.Radius)
	v.SetDefault("display.fps", d.Display.FPS)
	v.SetDefault("display.arc_segments", d.Display.ArcSegments)
	v.SetDefault("display.inline", d.Display.Inline)
	v.SetDefault("theme.work_background", d.Theme.WorkBackground)
	v.SetDefault("theme.break_background", d.Theme.BreakBackground)
	v.SetDefault("theme.work_arc", d.Theme.WorkArc)
	v.SetDefault("theme.break_arc", d.Theme.BreakArc)
	v.SetDefault("theme.ring", d.Theme.Ring)
	v.SetDefault("theme.face", d.Theme.Face)
	v.SetDefault("theme.text", d.Theme.Text)
	v.SetDefault("theme.start_button", d.Theme.StartButton)
	v.SetDefault("theme.pause_button", d.Theme.PauseButton)
	v.SetDefault("theme.reset_button", d.Theme.ResetButton)
	v.SetDefault("theme.indicator_empty", d.Theme.IndicatorEmpty)
	v.SetDefault("logging.level", strings.ToLower(d.Logging.Level.String()))
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
	v.SetDefault("logging.max_age_days", d.Logging.MaxAgeDays)
	v.SetDefault("logging.compress", d.Logging.Compress)
}

// normalize replaces out-of-range values with defaults.
func (c *Config) normalize() {
	d := DefaultConfig()
	if c.Window.Title == "" {
		c.Window.Title = d.Window.Title
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		c.Window.Width, c.Window.Height = d.Window.Width, d.Window.Height
	}
	if c.Window.Radius <= 0 {
		c.Window.Radius = d.Window.Radius
	}
	if c.Display.FPS <= 0 {
		c.Display.FPS = d.Display.FPS
	}
	if c.Display.ArcSegments < 1 {
		c.Display.ArcSegments = d.Display.ArcSegments
	}
	c.Theme = resolveTheme(c.Theme)
}

// resolveTheme fills empty colours with defaults.
func resolveTheme(t ThemeConfig) ThemeConfig {
	d := DefaultThemeConfig()
	fill := func(s *string, def string) {
		if *s == "" {
			*s = def
		}
	}
	fill(&t.WorkBackground, d.WorkBackground)
	fill(&t.BreakBackground, d.BreakBackground)
	fill(&t.WorkArc, d.WorkArc)
	fill(&t.BreakArc, d.BreakArc)
	fill(&t.Ring, d.Ring)
	fill(&t.Face, d.Face)
	fill(&t.Text, d.Text)
	fill(&t.StartButton, d.StartButton)
	fill(&t.PauseButton, d.PauseButton)
	fill(&t.ResetButton, d.ResetButton)
	fill(&t.IndicatorEmpty, d.IndicatorEmpty)
	return t
}

// ResolvePaths expands ~ in file paths.
func (c *Config) ResolvePaths() error {
	logFile, err := expandHome(c.Logging.File)
	if err != nil {
		return err
	}
	c.Logging.File = logFile
	return nil
}

// expandHome expands a leading ~ in path.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}
