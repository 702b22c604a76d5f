// Package session implements the 2048 screen flow: a start menu, the
// playing board and the lost screen, plus rendering of each into a
// core.Screen. It owns the board, the score and the high score.
package session

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/grid"
)

// State is the screen the session is showing.
type State string

const (
	StateMenu    State = "menu"
	StatePlaying State = "playing"
	StateLost    State = "lost"
)

// Menu entries, in display order.
const (
	OptionStart = iota
	OptionQuit
)

var menuOptions = []string{"Start Game", "Quit"}

// HighScoreStore loads and saves the persisted high score.
// Errors are reported, never acted on: the session falls back to 0 on a
// failed load and skips a failed save.
type HighScoreStore interface {
	Load() (int, error)
	Save(value int) error
}

// highScoreRaiser is implemented by stores shared between sessions. The
// compare and the write happen atomically against the stored value rather
// than this session's copy.
type highScoreRaiser interface {
	SaveIfHigher(value int) (best int, saved bool, err error)
}

// Recorder receives every finished game. Optional.
type Recorder interface {
	RecordGame(r Result) error
}

// Result describes a finished game.
type Result struct {
	Player       string
	Score        int
	MaxTile      int
	Moves        int
	NewHighScore bool
	StartedAt    time.Time
	Duration     time.Duration
}

// Options configures a Session. Every field is optional.
type Options struct {
	Store    HighScoreStore
	Recorder Recorder
	Rand     grid.Source // Overrides the seed from RuntimeConfig
	Logger   *log.Logger
	Theme    Theme
	Player   string
	Now      func() time.Time
}

// StepResult is returned by Step after each input.
type StepResult struct {
	State State
	Moved bool // A slide changed the board
	Quit  bool // The host should exit
}

// Session is the game state machine. It is not safe for concurrent use;
// each player gets their own.
type Session struct {
	state  State
	cursor int

	board     grid.Board
	score     int
	highScore int
	moves     int
	newHigh   bool
	startedAt time.Time
	quit      bool

	rng      grid.Source
	store    HighScoreStore
	recorder Recorder
	logger   *log.Logger
	theme    Theme
	player   string
	now      func() time.Time
}

// New creates a session in the menu state and loads the high score.
func New(cfg core.RuntimeConfig, opts Options) *Session {
	s := &Session{
		state:    StateMenu,
		rng:      opts.Rand,
		store:    opts.Store,
		recorder: opts.Recorder,
		logger:   opts.Logger,
		theme:    opts.Theme,
		player:   opts.Player,
		now:      opts.Now,
	}

	if s.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		s.rng = rand.New(rand.NewSource(seed))
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.now == nil {
		s.now = time.Now
	}
	if len(s.theme.TilePalette) == 0 {
		s.theme = DefaultTheme()
	}

	s.highScore = s.loadHighScore()
	return s
}

// loadHighScore reads the persisted value, treating any failure as 0.
func (s *Session) loadHighScore() int {
	if s.store == nil {
		return 0
	}
	value, err := s.store.Load()
	if err != nil {
		s.logger.Warn("could not load high score, starting from 0", "error", err)
		return 0
	}
	return value
}

// State returns the current screen.
func (s *Session) State() State {
	return s.state
}

// HighScore returns the best score known to this session.
func (s *Session) HighScore() int {
	return s.highScore
}

// Step applies one logical input. Inputs that mean nothing in the current
// state are ignored.
func (s *Session) Step(a core.Action) StepResult {
	if s.quit {
		return StepResult{State: s.state, Quit: true}
	}

	var moved bool
	switch s.state {
	case StateMenu:
		s.stepMenu(a)
	case StatePlaying:
		moved = s.stepPlaying(a)
	case StateLost:
		s.stepLost(a)
	}

	return StepResult{State: s.state, Moved: moved, Quit: s.quit}
}

func (s *Session) stepMenu(a core.Action) {
	switch a {
	case core.ActionUp:
		s.cursor = (s.cursor - 1 + len(menuOptions)) % len(menuOptions)
	case core.ActionDown:
		s.cursor = (s.cursor + 1) % len(menuOptions)
	case core.ActionConfirm:
		if s.cursor == OptionStart {
			s.startGame()
		} else {
			s.quit = true
		}
	case core.ActionQuit:
		s.quit = true
	}
}

var directions = map[core.Action]grid.Direction{
	core.ActionUp:    grid.DirUp,
	core.ActionDown:  grid.DirDown,
	core.ActionLeft:  grid.DirLeft,
	core.ActionRight: grid.DirRight,
}

func (s *Session) stepPlaying(a core.Action) bool {
	if a == core.ActionQuit {
		s.quit = true
		return false
	}
	if !a.IsDirection() {
		return false
	}

	board, moved, score := grid.Slide(directions[a], s.board, s.score)
	if !moved {
		return false
	}

	s.board = grid.SpawnTile(board, s.rng)
	s.score = score
	s.moves++

	if grid.IsTerminal(s.board) {
		s.finishGame()
	}
	return true
}

func (s *Session) stepLost(a core.Action) {
	switch a {
	case core.ActionRestart:
		s.startGame()
	case core.ActionQuit:
		s.quit = true
	}
}

// startGame resets the board and score. The high score carries over.
func (s *Session) startGame() {
	s.board = grid.NewBoard(s.rng)
	s.score = 0
	s.moves = 0
	s.newHigh = false
	s.startedAt = s.now()
	s.state = StatePlaying
	s.logger.Debug("game started", "player", s.player)
}

// settleHighScore updates and persists the high score when the finished
// game beats it. A shared store compares against its stored value and the
// session adopts the result.
func (s *Session) settleHighScore() {
	if raiser, ok := s.store.(highScoreRaiser); ok {
		best, saved, err := raiser.SaveIfHigher(s.score)
		if err == nil {
			s.highScore = core.Max(s.highScore, best)
			s.newHigh = saved
			return
		}
		s.logger.Warn("could not save high score", "score", s.score, "error", err)
		if s.score > s.highScore {
			s.highScore = s.score
			s.newHigh = true
		}
		return
	}

	if s.score <= s.highScore {
		return
	}
	s.highScore = s.score
	s.newHigh = true
	if s.store != nil {
		if err := s.store.Save(s.highScore); err != nil {
			s.logger.Warn("could not save high score", "score", s.highScore, "error", err)
		}
	}
}

// finishGame settles the high score and moves to the lost screen.
func (s *Session) finishGame() {
	s.settleHighScore()

	result := Result{
		Player:       s.player,
		Score:        s.score,
		MaxTile:      grid.MaxTile(s.board),
		Moves:        s.moves,
		NewHighScore: s.newHigh,
		StartedAt:    s.startedAt,
		Duration:     s.now().Sub(s.startedAt),
	}
	if s.recorder != nil {
		if err := s.recorder.RecordGame(result); err != nil {
			s.logger.Warn("could not record game", "error", err)
		}
	}

	s.logger.Info("game over",
		"player", s.player,
		"score", result.Score,
		"max_tile", result.MaxTile,
		"moves", result.Moves,
		"new_high_score", result.NewHighScore,
	)
	s.state = StateLost
}
