package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/bednights/internal/tui/themes"
)

// DialogModel is a modal box. A confirmation dialog answers y/n; a notice
// dialog closes on any key.
type DialogModel struct {
	theme   themes.Theme
	title   string
	lines   []string
	id      string
	confirm bool
	width   int
}

// NewConfirm asks a yes/no question about the record with id.
func NewConfirm(theme themes.Theme, title, id string, lines ...string) DialogModel {
	return DialogModel{theme: theme, title: title, id: id, lines: lines, confirm: true, width: 60}
}

// NewNotice shows lines until a key is pressed.
func NewNotice(theme themes.Theme, title string, lines ...string) DialogModel {
	return DialogModel{theme: theme, title: title, lines: lines, width: 60}
}

// SetWidth sets the dialog width.
func (m *DialogModel) SetWidth(width int) {
	m.width = width
}

// Update answers the dialog.
func (m DialogModel) Update(msg tea.Msg) (DialogModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if !m.confirm {
		return m, func() tea.Msg { return DialogClosedMsg{} }
	}
	switch strings.ToLower(keyMsg.String()) {
	case "y", "enter":
		id := m.id
		return m, func() tea.Msg { return ConfirmedMsg{ID: id} }
	case "n", "esc", "q":
		return m, func() tea.Msg { return DialogClosedMsg{} }
	}
	return m, nil
}

// View renders the dialog.
func (m DialogModel) View() string {
	hint := "Press any key to close"
	titleStyle := m.theme.StatusWarning
	if m.confirm {
		hint = "[y] Yes  [n] No"
		titleStyle = m.theme.Title
	}

	body := []string{titleStyle.Render(m.title), ""}
	body = append(body, m.lines...)
	body = append(body, "", lipgloss.NewStyle().Foreground(m.theme.Muted).Render(hint))

	return m.theme.RoundedBox.
		Width(m.width).
		Render(strings.Join(body, "\n"))
}
