package grid

import (
	"math/rand"
	"testing"
)

// fixedSource returns scripted values.
type fixedSource struct {
	index int
	roll  float64
}

func (f fixedSource) Intn(n int) int   { return f.index % n }
func (f fixedSource) Float64() float64 { return f.roll }

func TestSpawnTileFullBoardIsNoop(t *testing.T) {
	board := Board{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 65536},
	}

	if got := SpawnTile(board, rand.New(rand.NewSource(1))); got != board {
		t.Errorf("SpawnTile on full board changed it:\n%v", got)
	}
}

func TestSpawnTileSingleEmptyCell(t *testing.T) {
	board := Board{
		{2, 4, 8, 16},
		{32, 64, 0, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 65536},
	}

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		got := SpawnTile(board, rng)

		if v := got[1][2]; v != 2 && v != 4 {
			t.Fatalf("spawned value = %d, want 2 or 4", v)
		}
		got[1][2] = 0
		if got != board {
			t.Fatalf("SpawnTile changed cells other than the empty one")
		}
	}
}

func TestSpawnTileValueDistribution(t *testing.T) {
	tests := []struct {
		roll float64
		want int
	}{
		{0.0, 2},
		{0.899, 2},
		{0.9, 4},
		{0.99, 4},
	}

	for _, tt := range tests {
		got := SpawnTile(Board{}, fixedSource{index: 5, roll: tt.roll})
		if got[1][1] != tt.want {
			t.Errorf("roll %.3f: spawned %d at (1,1), want %d", tt.roll, got[1][1], tt.want)
		}
	}
}

func TestSpawnTileDoesNotMutateInput(t *testing.T) {
	var board Board
	SpawnTile(board, fixedSource{})
	if board != (Board{}) {
		t.Error("SpawnTile modified its input")
	}
}

func TestNewBoard(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))

	for i := 0; i < 100; i++ {
		board := NewBoard(rng)
		if n := TileCount(board); n != 2 {
			t.Fatalf("NewBoard has %d tiles, want 2", n)
		}
		for y := range Size {
			for x := range Size {
				if v := board[y][x]; v != 0 && v != 2 && v != 4 {
					t.Fatalf("NewBoard holds %d", v)
				}
			}
		}
	}
}

func TestNewBoardDeterministic(t *testing.T) {
	b1 := NewBoard(rand.New(rand.NewSource(42)))
	b2 := NewBoard(rand.New(rand.NewSource(42)))

	if b1 != b2 {
		t.Errorf("Same seed should produce same initial board:\n%v\nvs\n%v", b1, b2)
	}
}
