package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration. It matches defaults/t2048.yaml.
func Default() Config {
	return Config{
		HighScoreFile: "~/.t2048/highscore.txt",
		DBPath:        "~/.t2048/games.db",
		Log: LogConfig{
			File:  "~/.t2048/t2048.log",
			Level: "info",
		},
		Theme: ThemeConfig{
			TileColors: []string{"yellow", "cyan", "magenta", "green", "blue"},
			EmptyTile:  "white",
			TileText:   "black",
		},
		SSH: SSHConfig{
			Address:            ":23234",
			IdleTimeoutMinutes: 30,
		},
	}
}
