package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SearchModel is the one-line search prompt.
type SearchModel struct {
	input textinput.Model
}

// NewSearch opens the prompt holding the current query.
func NewSearch(query string) SearchModel {
	in := textinput.New()
	in.Prompt = "/ "
	in.Placeholder = "Search..."
	in.CharLimit = 100
	in.SetValue(query)
	in.Focus()
	return SearchModel{input: in}
}

// Update edits the query. Enter submits it and Esc cancels.
func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			query := m.input.Value()
			return m, func() tea.Msg { return SearchSubmittedMsg{Query: query} }
		case "esc":
			return m, func() tea.Msg { return SearchCancelledMsg{} }
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Value returns the query typed so far.
func (m SearchModel) Value() string {
	return m.input.Value()
}

// View renders the prompt.
func (m SearchModel) View() string {
	return m.input.View()
}
