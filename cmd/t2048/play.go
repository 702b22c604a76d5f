package main

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/session"
)

var flagSeed int64

// errUIFailed is returned after the UI failure has already been reported.
var errUIFailed = errors.New("could not start the terminal UI")

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog := newFileLogger(cfg.Log)
	defer closeLog()
	logConfigWarnings(cfg, logger)

	st := openStores(cfg, logger)
	defer st.Close()

	rc := core.DefaultConfig()
	rc.Seed = resolveSeed(flagSeed, time.Now)

	sess := session.New(rc, session.Options{
		Store:    st.highScore,
		Recorder: st.recorder,
		Logger:   logger,
		Theme:    sessionTheme(cfg, logger),
		Player:   playerName(),
	})

	logger.Info("starting", "seed", rc.Seed, "highscore_file", cfg.HighScoreFile)

	if err := tui.Run(cmd.Context(), sess, rc); err != nil {
		logger.Error("terminal UI failed", "error", err)
		if errors.Is(err, tui.ErrNotTerminal) {
			fmt.Fprintln(os.Stderr, "t2048 needs an interactive terminal: run it directly in a terminal window, not through a pipe or redirect.")
		} else {
			fmt.Fprintf(os.Stderr, "t2048 could not start the terminal UI (%v). Run it in a proper terminal.\n", err)
		}
		return errUIFailed
	}
	return nil
}

// resolveSeed returns seed, or a clock-derived seed when it is zero.
func resolveSeed(seed int64, now func() time.Time) int64 {
	if seed != 0 {
		return seed
	}
	if seed = now().UnixNano(); seed == 0 {
		seed = 1
	}
	return seed
}

// playerName identifies the local player in the game history.
func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}
