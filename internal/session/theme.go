package session

import (
	"math/bits"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// Theme controls tile colors.
type Theme struct {
	// TilePalette colors a tile's interior by the bit length of its value,
	// cycling through the palette.
	TilePalette []core.Color
	EmptyTile   core.Color
	TileText    core.Color
}

// DefaultTheme returns the stock palette.
func DefaultTheme() Theme {
	return Theme{
		TilePalette: []core.Color{
			core.ColorYellow,
			core.ColorCyan,
			core.ColorMagenta,
			core.ColorGreen,
			core.ColorBlue,
		},
		EmptyTile: core.ColorWhite,
		TileText:  core.ColorBlack,
	}
}

// tileColor returns the interior color for a tile value.
func (t Theme) tileColor(value int) core.Color {
	if value <= 0 || len(t.TilePalette) == 0 {
		return t.EmptyTile
	}
	n := bits.Len(uint(value))
	return t.TilePalette[(n-1)%len(t.TilePalette)]
}

// tileStyle returns the style for a tile's interior and number.
func (t Theme) tileStyle(value int) core.Style {
	return core.Style{
		Fg:   t.TileText,
		Bg:   t.tileColor(value),
		Attr: core.AttrBold,
	}
}
