package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tile-breakout/internal/breakout"
)

// KeyMap defines the key bindings for the game screen.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Screenshot, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right},
		{k.Screenshot, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "q", "ctrl+c"),
			key.WithHelp("esc/q", "quit"),
		),
	}
}

// keyCodes maps terminal key names to the game's key codes.
var keyCodes = map[string]int{
	"a":     breakout.KeyA,
	"A":     breakout.KeyA,
	"d":     breakout.KeyD,
	"D":     breakout.KeyD,
	"left":  breakout.KeyLeft,
	"right": breakout.KeyRight,
	"up":    breakout.KeyUp,
	"down":  breakout.KeyDown,
	" ":     breakout.KeySpace,
	"enter": breakout.KeyEnter,
}

// KeyCode translates a key message to a game key code.
func KeyCode(msg tea.KeyMsg) (int, bool) {
	code, ok := keyCodes[msg.String()]
	return code, ok
}
