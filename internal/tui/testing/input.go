package testing

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Key builds a message for a special key such as tea.KeyEnter.
func Key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// KeyPress builds a message for printable text.
func KeyPress(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

// Shorthands for the keys the dashboard binds.
func KeyDown() tea.KeyMsg      { return Key(tea.KeyDown) }
func KeyUp() tea.KeyMsg        { return Key(tea.KeyUp) }
func KeyLeft() tea.KeyMsg      { return Key(tea.KeyLeft) }
func KeyRight() tea.KeyMsg     { return Key(tea.KeyRight) }
func KeyEnter() tea.KeyMsg     { return Key(tea.KeyEnter) }
func KeyEsc() tea.KeyMsg       { return Key(tea.KeyEsc) }
func KeyTab() tea.KeyMsg       { return Key(tea.KeyTab) }
func KeyShiftTab() tea.KeyMsg  { return Key(tea.KeyShiftTab) }
func KeyBackspace() tea.KeyMsg { return Key(tea.KeyBackspace) }

// KeyCtrl builds ctrl+letter, e.g. KeyCtrl("s") for save.
func KeyCtrl(letter string) tea.KeyMsg {
	if len(letter) != 1 {
		panic("KeyCtrl takes a single letter")
	}
	r := rune(letter[0])
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	return Key(tea.KeyType(r - 'a' + 1))
}

// WindowSize builds a resize message.
func WindowSize(width, height int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: width, Height: height}
}
