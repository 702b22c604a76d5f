// Package config provides YAML-based configuration loading for t2048,
// with .env and environment variable overrides.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/session"
)

// Config is the full application configuration.
type Config struct {
	HighScoreFile string      `yaml:"highscore_file"`
	DBPath        string      `yaml:"db_path"`
	Log           LogConfig   `yaml:"log"`
	Theme         ThemeConfig `yaml:"theme"`
	SSH           SSHConfig   `yaml:"ssh"`

	// Warnings lists environment overrides that were ignored. Callers log them.
	Warnings []string `yaml:"-"`
}

// LogConfig controls where and how much the app logs.
type LogConfig struct {
	File  string `yaml:"file"`  // Used for local play; serve logs to stderr
	Level string `yaml:"level"` // debug, info, warn or error
}

// ThemeConfig names the tile colors. See core.ParseColor for valid names.
type ThemeConfig struct {
	TileColors []string `yaml:"tile_colors"`
	EmptyTile  string   `yaml:"empty_tile"`
	TileText   string   `yaml:"tile_text"`
}

// SSHConfig configures the serve command.
type SSHConfig struct {
	Address            string `yaml:"address"`
	HostKey            string `yaml:"host_key"` // Empty means ~/.t2048/host_key
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// IdleTimeout returns the idle timeout as a duration.
func (c SSHConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutMinutes) * time.Minute
}

// SessionTheme converts the named colors into a session.Theme.
// Empty fields keep the stock palette.
func (c ThemeConfig) SessionTheme() (session.Theme, error) {
	theme := session.DefaultTheme()

	if len(c.TileColors) > 0 {
		palette := make([]core.Color, 0, len(c.TileColors))
		for _, name := range c.TileColors {
			color, ok := core.ParseColor(name)
			if !ok {
				return theme, fmt.Errorf("config: unknown tile color %q", name)
			}
			palette = append(palette, color)
		}
		theme.TilePalette = palette
	}

	if c.EmptyTile != "" {
		color, ok := core.ParseColor(c.EmptyTile)
		if !ok {
			return theme, fmt.Errorf("config: unknown empty tile color %q", c.EmptyTile)
		}
		theme.EmptyTile = color
	}

	if c.TileText != "" {
		color, ok := core.ParseColor(c.TileText)
		if !ok {
			return theme, fmt.Errorf("config: unknown tile text color %q", c.TileText)
		}
		theme.TileText = color
	}

	return theme, nil
}
