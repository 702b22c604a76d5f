package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// ansiColors maps core.Color to terminal palette entries.
// ColorDefault is absent: it leaves the terminal's color alone.
var ansiColors = map[core.Color]lipgloss.Color{
	core.ColorBlack:         lipgloss.Color("0"),
	core.ColorRed:           lipgloss.Color("1"),
	core.ColorGreen:         lipgloss.Color("2"),
	core.ColorYellow:        lipgloss.Color("3"),
	core.ColorBlue:          lipgloss.Color("4"),
	core.ColorMagenta:       lipgloss.Color("5"),
	core.ColorCyan:          lipgloss.Color("6"),
	core.ColorWhite:         lipgloss.Color("7"),
	core.ColorBrightRed:     lipgloss.Color("9"),
	core.ColorBrightGreen:   lipgloss.Color("10"),
	core.ColorBrightYellow:  lipgloss.Color("11"),
	core.ColorBrightBlue:    lipgloss.Color("12"),
	core.ColorBrightMagenta: lipgloss.Color("13"),
	core.ColorBrightCyan:    lipgloss.Color("14"),
	core.ColorBrightWhite:   lipgloss.Color("15"),
	core.ColorOrange:        lipgloss.Color("208"),
	core.ColorGray:          lipgloss.Color("245"),
}

// Painter converts Screen buffers to styled strings for one output.
// Styles are built against the painter's renderer so SSH sessions get the
// color profile of the remote terminal.
type Painter struct {
	renderer *lipgloss.Renderer
	styles   map[core.Style]lipgloss.Style
}

// NewPainter creates a painter. A nil renderer means lipgloss's default.
func NewPainter(r *lipgloss.Renderer) *Painter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Painter{
		renderer: r,
		styles:   make(map[core.Style]lipgloss.Style),
	}
}

// style returns the cached lipgloss style for st.
func (p *Painter) style(st core.Style) lipgloss.Style {
	if s, ok := p.styles[st]; ok {
		return s
	}

	s := p.renderer.NewStyle()
	if c, ok := ansiColors[st.Fg]; ok {
		s = s.Foreground(c)
	}
	if c, ok := ansiColors[st.Bg]; ok {
		s = s.Background(c)
	}
	if st.Has(core.AttrBold) {
		s = s.Bold(true)
	}
	if st.Has(core.AttrReverse) {
		s = s.Reverse(true)
	}
	if st.Has(core.AttrUnderline) {
		s = s.Underline(true)
	}

	p.styles[st] = s
	return s
}

// Paint converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
func (p *Painter) Paint(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y).Style

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Style != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start == core.StyleDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(p.style(start).Render(run.String()))
		}
	}
	return sb.String()
}
