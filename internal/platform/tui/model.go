// Package tui provides the Bubble Tea integration for t2048.
// It handles the terminal UI loop, key mapping and the SSH server.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/session"
)

// helpHeight is the number of rows reserved below the canvas for key help.
const helpHeight = 1

// ErrNotTerminal is returned by Run when stdin is not an interactive terminal.
var ErrNotTerminal = errors.New("tui: stdin is not a terminal")

// Model is the Bubble Tea model hosting one session.
// It is driven by key messages only; there is no tick loop.
type Model struct {
	session  *session.Session
	screen   *core.Screen
	painter  *Painter
	keys     KeyMap
	help     help.Model
	quitting bool
}

// NewModel creates a model for the given session. The renderer decides
// the color profile; nil means the local terminal.
func NewModel(s *session.Session, cfg core.RuntimeConfig, r *lipgloss.Renderer) Model {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	h := help.New()
	h.Width = cfg.ScreenW
	h.Styles.ShortKey = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"})
	h.Styles.ShortDesc = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B2B2B2", Dark: "#4A4A4A"})
	h.Styles.ShortSeparator = h.Styles.ShortDesc

	return Model{
		session: s,
		screen:  core.NewScreen(cfg.ScreenW, canvasHeight(cfg.ScreenH)),
		painter: NewPainter(r),
		keys:    DefaultKeyMap(),
		help:    h,
	}
}

func canvasHeight(termHeight int) int {
	return core.Max(0, termHeight-helpHeight)
}

// Init implements tea.Model. Nothing runs until the first key.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, canvasHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey feeds one key to the session.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	if action == core.ActionNone {
		return m, nil
	}

	res := m.session.Step(action)
	if res.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.session.Render(m.screen)
	return m.painter.Paint(m.screen) + "\n" + m.help.View(m.keys.ForState(m.session.State()))
}

// Session returns the hosted session.
func (m Model) Session() *session.Session {
	return m.session
}

// Run plays the session in the local terminal until the player quits or
// ctx is cancelled. It fails with ErrNotTerminal when stdin is not a TTY.
func Run(ctx context.Context, s *session.Session, cfg core.RuntimeConfig) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ErrNotTerminal
	}
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}

	p := tea.NewProgram(
		NewModel(s, cfg, nil),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
