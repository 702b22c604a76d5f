package session

import "github.com/vovakirdan/tui-2048/internal/grid"

// Snapshot captures the observable session state for rendering hosts and
// tests.
type Snapshot struct {
	State        State
	MenuCursor   int
	Board        grid.Board
	Score        int
	HighScore    int
	Moves        int
	MaxTile      int
	NewHighScore bool
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:        s.state,
		MenuCursor:   s.cursor,
		Board:        s.board,
		Score:        s.score,
		HighScore:    s.highScore,
		Moves:        s.moves,
		MaxTile:      grid.MaxTile(s.board),
		NewHighScore: s.newHigh,
	}
}
