package session

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/grid"
)

// Board layouts, largest first. Boxed tiles each get their own border;
// the compact layout shares grid lines between neighbours.
var layouts = []boardLayout{
	{tileW: 9, tileH: 5, boxed: true},
	{tileW: 7, tileH: 2, boxed: false},
}

type boardLayout struct {
	tileW int
	tileH int
	boxed bool
}

// size returns the board footprint in cells.
func (l boardLayout) size() (int, int) {
	if l.boxed {
		return grid.Size * l.tileW, grid.Size * l.tileH
	}
	// +1 for the closing right and bottom borders
	return grid.Size*l.tileW + 1, grid.Size*l.tileH + 1
}

const (
	statusHeight = 3 // status line plus spacing above the board
	boardMargin  = 3
	menuBoxW     = 20
	menuBoxH     = 3
)

var (
	titleStyle    = core.Style{Attr: core.AttrBold | core.AttrUnderline}
	selectedStyle = core.Style{Attr: core.AttrBold | core.AttrReverse}
	emphasisStyle = core.Style{Fg: core.ColorBrightYellow, Attr: core.AttrBold}
)

var howToPlay = []string{
	"+-----------------------------+",
	"|         HOW TO PLAY         |",
	"|  Use ↑ ↓ ← → or WASD        |",
	"|  Combine same tiles         |",
	"|  Press R to restart         |",
	"|  Press Q to quit            |",
	"|  Press ENTER to start       |",
	"+-----------------------------+",
}

// Render draws the current screen. Draw calls that fall outside dst are
// clipped by core.Screen and otherwise ignored here.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()

	switch s.state {
	case StateMenu:
		s.renderMenu(dst)
	case StatePlaying:
		s.renderPlaying(dst)
	case StateLost:
		s.renderLost(dst)
	}
}

// renderMenu draws the title, instructions and the option list.
func (s *Session) renderMenu(dst *core.Screen) {
	w := dst.Width()

	dst.DrawTextCentered(2, "2048", titleStyle)
	dst.DrawTextCentered(4, "Soft Boxes Edition", core.StyleDefault)

	optionsY := 6
	// Skip the instructions box when it would push the options off-screen.
	if dst.Height() >= 6+len(howToPlay)+2+len(menuOptions)*menuBoxH {
		for i, line := range howToPlay {
			dst.DrawTextCentered(6+i, line, core.StyleDefault)
		}
		optionsY += len(howToPlay) + 2
	}

	x := core.Max(0, (w-menuBoxW)/2)
	for i, label := range menuOptions {
		y := optionsY + i*menuBoxH
		dst.DrawBox(core.NewRect(x, y, menuBoxW, menuBoxH), core.StyleDefault)

		style := core.StyleDefault
		if i == s.cursor {
			style = selectedStyle
		}
		labelX := x + (menuBoxW-utf8.RuneCountInString(label))/2
		dst.DrawTextStyled(labelX, y+1, label, style)
	}
}

// renderPlaying draws the status line and the board.
func (s *Session) renderPlaying(dst *core.Screen) {
	layout, ok := s.pickLayout(dst)
	if !ok {
		s.renderTooSmall(dst)
		return
	}

	boardW, boardH := layout.size()
	board := dst.Bounds().Centered(boardW, boardH)
	// Keep a left margin when there is room for one, and room for the status line.
	board.X = core.Max(board.X, core.Clamp(boardMargin, 0, dst.Width()-boardW))
	board.Y = core.Max(board.Y, statusHeight)

	status := fmt.Sprintf("Score: %d   Highscore: %d", s.score, s.highScore)
	dst.DrawText(board.X, board.Y-statusHeight, status)

	if layout.boxed {
		s.renderBoxedBoard(dst, layout, board.X, board.Y)
	} else {
		s.renderGridBoard(dst, layout, board.X, board.Y)
	}
}

// pickLayout returns the largest layout that fits below the status line.
func (s *Session) pickLayout(dst *core.Screen) (boardLayout, bool) {
	for _, l := range layouts {
		w, h := l.size()
		if dst.Bounds().Encloses(core.NewRect(0, 0, w, h+statusHeight)) {
			return l, true
		}
	}
	return boardLayout{}, false
}

// renderBoxedBoard draws every tile as its own bordered box.
func (s *Session) renderBoxedBoard(dst *core.Screen, l boardLayout, startX, startY int) {
	for y := range grid.Size {
		for x := range grid.Size {
			box := core.NewRect(startX+x*l.tileW, startY+y*l.tileH, l.tileW, l.tileH)
			s.drawTile(dst, box, s.board[y][x])
		}
	}
}

// drawTile draws one bordered tile with a colored interior and the value
// centered on its middle row.
func (s *Session) drawTile(dst *core.Screen, box core.Rect, value int) {
	dst.DrawBox(box, core.StyleDefault)

	interior := core.NewRect(box.X+1, box.Y+1, box.W-2, box.H-2)
	style := s.theme.tileStyle(value)
	dst.FillRect(interior, ' ', style)

	if value == 0 {
		return
	}
	text := strconv.Itoa(value)
	x := interior.X + core.Max(0, (interior.W-len(text))/2)
	dst.DrawTextStyled(x, box.Y+box.H/2, text, style)
}

// renderGridBoard draws the board with shared borders between cells.
func (s *Session) renderGridBoard(dst *core.Screen, l boardLayout, boardX, boardY int) {
	for y := range grid.Size + 1 {
		for x := range grid.Size + 1 {
			px := boardX + x*l.tileW
			py := boardY + y*l.tileH

			dst.Set(px, py, gridCorner(x, y))

			if x < grid.Size {
				dst.DrawText(px+1, py, repeatRune('─', l.tileW-1))
			}
			if y < grid.Size {
				for i := 1; i < l.tileH; i++ {
					dst.Set(px, py+i, '│')
				}
			}
		}
	}

	for y := range grid.Size {
		for x := range grid.Size {
			val := s.board[y][x]
			if val == 0 {
				continue
			}
			interior := core.NewRect(boardX+x*l.tileW+1, boardY+y*l.tileH+1, l.tileW-1, l.tileH-1)
			style := s.theme.tileStyle(val)
			dst.FillRect(interior, ' ', style)

			text := strconv.Itoa(val)
			padLeft := core.Max(0, (interior.W-len(text))/2)
			dst.DrawTextStyled(interior.X+padLeft, interior.Y, text, style)
		}
	}
}

// gridCorner picks the box-drawing rune for a grid intersection.
func gridCorner(x, y int) rune {
	last := grid.Size
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == last:
		return '┐'
	case y == last && x == 0:
		return '└'
	case y == last && x == last:
		return '┘'
	case y == 0:
		return '┬'
	case y == last:
		return '┴'
	case x == 0:
		return '├'
	case x == last:
		return '┤'
	default:
		return '┼'
	}
}

func repeatRune(r rune, n int) string {
	out := make([]rune, core.Max(0, n))
	for i := range out {
		out[i] = r
	}
	return string(out)
}

// renderTooSmall shows a "window too small" message.
func (s *Session) renderTooSmall(dst *core.Screen) {
	_, y := dst.Bounds().Center()
	dst.DrawTextCentered(y, "Window too small", core.StyleDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.StyleDefault)
}

// renderLost draws the final score screen.
func (s *Session) renderLost(dst *core.Screen) {
	lines := []string{
		"== You Lost ==",
		fmt.Sprintf("Score: %d", s.score),
		fmt.Sprintf("Highscore: %d", s.highScore),
		"",
		"Press r to restart, q to quit",
	}

	_, centerY := dst.Bounds().Center()
	top := centerY - 2
	for i, line := range lines {
		dst.DrawTextCentered(top+i, line, core.StyleDefault)
	}

	if s.newHigh {
		dst.DrawTextCentered(top+len(lines)+1, "New high score!", emphasisStyle)
	}
}
