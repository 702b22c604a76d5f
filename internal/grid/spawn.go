package grid

// spawnTwoProbability is the chance that a spawned tile is a 2 rather than a 4.
const spawnTwoProbability = 0.9

// Source is the randomness the board needs. *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// SpawnTile places a new tile in a uniformly chosen empty cell: a 2 with
// probability 0.9, otherwise a 4. A full board is returned unchanged.
func SpawnTile(board Board, rng Source) Board {
	empty := EmptyCells(board)
	if len(empty) == 0 {
		return board
	}

	cell := empty[rng.Intn(len(empty))]

	value := 4
	if rng.Float64() < spawnTwoProbability {
		value = 2
	}

	board[cell.Y][cell.X] = value
	return board
}

// NewBoard returns a fresh board holding exactly two spawned tiles.
func NewBoard(rng Source) Board {
	var board Board
	board = SpawnTile(board, rng)
	return SpawnTile(board, rng)
}
