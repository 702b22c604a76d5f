// Package grid implements the 2048 board and its pure transformations:
// sliding, merging, spawning and terminal-state detection.
package grid

// Size is the board dimension.
const Size = 4

// Board represents a Size×Size game board. Zero marks an empty cell.
// Boards are values: every function here takes and returns copies.
type Board [Size][Size]int

// Line is a single row or column, read in the direction of the slide.
type Line [Size]int

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// compress moves all non-zero values to the front of the line,
// preserving their order and padding the tail with zeros.
func compress(line Line) Line {
	var result Line
	writePos := 0
	for _, v := range line {
		if v != 0 {
			result[writePos] = v
			writePos++
		}
	}
	return result
}

// merge combines equal neighbours left to right. The absorbed cell is
// zeroed, so a freshly merged tile can never merge again in the same pass.
func merge(line Line) (Line, int) {
	gained := 0
	for i := 0; i < Size-1; i++ {
		if line[i] != 0 && line[i] == line[i+1] {
			line[i] *= 2
			gained += line[i]
			line[i+1] = 0
		}
	}
	return line, gained
}

// slideLine applies compress, merge, compress to one line.
func slideLine(line Line) (Line, int) {
	merged, gained := merge(compress(line))
	return compress(merged), gained
}

// mirror reverses every row of the board.
func mirror(board Board) Board {
	var result Board
	for y := range Size {
		for x := range Size {
			result[y][x] = board[y][Size-1-x]
		}
	}
	return result
}

// transpose returns the matrix transpose.
func transpose(board Board) Board {
	var result Board
	for y := range Size {
		for x := range Size {
			result[y][x] = board[x][y]
		}
	}
	return result
}

// slideLeft is the only direction with its own merge rule; the other three
// are reduced to it.
func slideLeft(board Board) (Board, bool, int) {
	var result Board
	moved := false
	gained := 0

	for y := range Size {
		row := Line(board[y])
		slid, score := slideLine(row)
		result[y] = slid
		gained += score

		if slid != row {
			moved = true
		}
	}

	return result, moved, gained
}

func slideRight(board Board) (Board, bool, int) {
	slid, moved, gained := slideLeft(mirror(board))
	return mirror(slid), moved, gained
}

func slideUp(board Board) (Board, bool, int) {
	slid, moved, gained := slideLeft(transpose(board))
	return transpose(slid), moved, gained
}

func slideDown(board Board) (Board, bool, int) {
	slid, moved, gained := slideRight(transpose(board))
	return transpose(slid), moved, gained
}

// Slide performs a move in the given direction.
// It returns the new board, whether any line changed, and score plus the
// value of every tile produced by a merge. The input board is not modified.
func Slide(dir Direction, board Board, score int) (Board, bool, int) {
	var (
		result Board
		moved  bool
		gained int
	)

	switch dir {
	case DirLeft:
		result, moved, gained = slideLeft(board)
	case DirRight:
		result, moved, gained = slideRight(board)
	case DirUp:
		result, moved, gained = slideUp(board)
	case DirDown:
		result, moved, gained = slideDown(board)
	default:
		return board, false, score
	}

	return result, moved, score + gained
}

// Cell is a board coordinate.
type Cell struct {
	X, Y int
}

// EmptyCells returns coordinates of all empty cells in row-major order.
func EmptyCells(board Board) []Cell {
	var cells []Cell
	for y := range Size {
		for x := range Size {
			if board[y][x] == 0 {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

// TileCount returns the number of non-empty cells.
func TileCount(board Board) int {
	return Size*Size - len(EmptyCells(board))
}

// MaxTile returns the maximum tile value on the board.
func MaxTile(board Board) int {
	maxVal := 0
	for y := range Size {
		for x := range Size {
			if board[y][x] > maxVal {
				maxVal = board[y][x]
			}
		}
	}
	return maxVal
}

// IsTerminal reports whether the board is full and no two horizontally or
// vertically adjacent cells are equal. With this merge rule that is exactly
// the state in which no direction can move.
func IsTerminal(board Board) bool {
	for y := range Size {
		for x := range Size {
			val := board[y][x]
			if val == 0 {
				return false
			}
			if x < Size-1 && board[y][x+1] == val {
				return false
			}
			if y < Size-1 && board[y+1][x] == val {
				return false
			}
		}
	}
	return true
}
