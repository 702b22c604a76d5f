package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/highscore"
	"github.com/vovakirdan/tui-2048/internal/session"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// loadConfig reads .env, the config file and the environment, then applies
// any global flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("highscore") {
		cfg.HighScoreFile = flagHighScore
	}
	if flags.Changed("db") {
		cfg.DBPath = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, nil
}

// logConfigWarnings reports environment overrides the loader ignored.
func logConfigWarnings(cfg config.Config, logger *log.Logger) {
	for _, w := range cfg.Warnings {
		logger.Warn("ignoring environment override", "reason", w)
	}
}

// parseLevel falls back to info for an empty or unknown level.
func parseLevel(s string) log.Level {
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// newFileLogger logs to the configured file. The terminal belongs to the
// UI, so when the file cannot be opened logs are discarded.
func newFileLogger(cfg config.LogConfig) (*log.Logger, func()) {
	var (
		out     io.Writer = io.Discard
		closeFn           = func() {}
	)

	if path, err := core.ExpandHome(cfg.File); err == nil && cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				out = f
				closeFn = func() { f.Close() }
			}
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Level:           parseLevel(cfg.Level),
	})
	return logger, closeFn
}

// stores holds the persistence shared by every session of a process.
type stores struct {
	highScore session.HighScoreStore
	recorder  session.Recorder
	ledger    *storage.Store
}

// openStores opens the high score file and the history ledger. Failures are
// logged and leave the corresponding store nil; play continues without it.
func openStores(cfg config.Config, logger *log.Logger) stores {
	var s stores

	if f, err := highscore.Open(cfg.HighScoreFile); err != nil {
		logger.Warn("high score file unavailable", "path", cfg.HighScoreFile, "error", err)
	} else {
		s.highScore = f
	}

	if db, err := storage.Open(cfg.DBPath); err != nil {
		logger.Warn("game history unavailable", "path", cfg.DBPath, "error", err)
	} else {
		s.ledger = db
		s.recorder = db
	}

	return s
}

func (s stores) Close() {
	if s.ledger != nil {
		s.ledger.Close()
	}
}

// sessionTheme converts the configured colors, falling back to the stock
// palette on a bad color name.
func sessionTheme(cfg config.Config, logger *log.Logger) session.Theme {
	theme, err := cfg.Theme.SessionTheme()
	if err != nil {
		logger.Warn("invalid theme, using defaults", "error", err)
		return session.DefaultTheme()
	}
	return theme
}
