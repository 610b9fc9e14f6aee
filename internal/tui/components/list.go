package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/bednights/internal/tui/themes"
	"github.com/Veraticus/bednights/internal/tui/viewmodel"
)

// minColumnWidth keeps narrow columns readable.
const minColumnWidth = 4

// ListModel renders one page of records as a table, or as cards when the
// terminal is narrower than the card threshold, and tracks the cursor.
type ListModel struct {
	theme       themes.Theme
	table       table.Model
	view        viewmodel.ListView
	cursor      int
	width       int
	height      int
	narrowWidth int
}

// NewList creates an empty list. Terminals narrower than narrowWidth get cards.
func NewList(theme themes.Theme, narrowWidth int) ListModel {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = theme.Header
	s.Selected = theme.Selected
	t.SetStyles(s)

	return ListModel{
		theme:       theme,
		table:       t,
		width:       80,
		height:      12,
		narrowWidth: narrowWidth,
	}
}

// SetView replaces the rendered page and keeps the cursor on it.
func (m *ListModel) SetView(v viewmodel.ListView) {
	m.view = v
	m.cursor = min(m.cursor, max(len(v.Rows)-1, 0))
	m.syncTable()
}

// Resize updates the space the list may use.
func (m *ListModel) Resize(width, height int) {
	m.width = width
	m.height = max(height, 3)
	m.syncTable()
}

// Narrow reports whether the list renders cards.
func (m ListModel) Narrow() bool {
	return m.width < m.narrowWidth
}

// Cursor returns the index of the highlighted row on the page.
func (m ListModel) Cursor() int {
	return m.cursor
}

// Selected returns the highlighted row.
func (m ListModel) Selected() (viewmodel.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Rows) {
		return viewmodel.Row{}, false
	}
	return m.view.Rows[m.cursor], true
}

// Update moves the cursor.
func (m ListModel) Update(msg tea.Msg) (ListModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	last := len(m.view.Rows) - 1
	switch keyMsg.String() {
	case "j", "down":
		m.cursor = min(m.cursor+1, max(last, 0))
	case "k", "up":
		m.cursor = max(m.cursor-1, 0)
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(last, 0)
	}
	m.table.SetCursor(m.cursor)
	return m, nil
}

func (m *ListModel) syncTable() {
	// Rows must go before columns change or the table renders stale cells.
	m.table.SetRows(nil)

	widths := viewmodel.ColumnWidths(m.view.Widths, m.width-2*len(m.view.Widths), minColumnWidth)
	cols := make([]table.Column, len(m.view.Headers))
	for i, h := range m.view.Headers {
		cols[i] = table.Column{Title: h, Width: widths[i]}
	}
	m.table.SetColumns(cols)

	rows := make([]table.Row, len(m.view.Rows))
	for i, r := range m.view.Rows {
		cells := make(table.Row, len(r.Cells))
		for j, c := range r.Cells {
			cells[j] = viewmodel.TruncateString(c, widths[j])
		}
		rows[i] = cells
	}
	m.table.SetRows(rows)
	m.table.SetWidth(m.width)
	m.table.SetHeight(max(m.height-1, 1))
	m.table.SetCursor(m.cursor)
}

// View renders the list.
func (m ListModel) View() string {
	if m.view.Empty() {
		return m.renderEmpty()
	}
	if m.Narrow() {
		return m.renderCards()
	}
	return m.table.View()
}

func (m ListModel) renderEmpty() string {
	text := "No results"
	if m.view.Loaded == 0 {
		text = "No " + strings.ToLower(m.view.Title) + " yet"
	}
	return lipgloss.NewStyle().
		Foreground(m.theme.Muted).
		Padding(1, 2).
		Render(text)
}

// renderCards shows each record as its first cell followed by "Header: value"
// lines, scrolled so the cursor stays visible.
func (m ListModel) renderCards() string {
	perCard := len(m.view.Headers) + 1
	visible := max(m.height/perCard, 1)
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(start+visible, len(m.view.Rows))

	labelWidth := 0
	for _, h := range m.view.Headers {
		labelWidth = max(labelWidth, lipgloss.Width(h))
	}
	valueWidth := max(m.width-labelWidth-4, minColumnWidth)

	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		row := m.view.Rows[i]
		lines := make([]string, 0, len(row.Cells))
		title := m.theme.Bold.Render(viewmodel.TruncateString(first(row.Cells), m.width-4))
		if i == m.cursor {
			title = m.theme.Selected.Render("▸ " + viewmodel.TruncateString(first(row.Cells), m.width-6))
		}
		lines = append(lines, title)
		for j := 1; j < len(row.Cells); j++ {
			label := lipgloss.NewStyle().
				Foreground(m.theme.Muted).
				Width(labelWidth).
				Render(m.view.Headers[j])
			lines = append(lines, label+"  "+viewmodel.TruncateString(row.Cells[j], valueWidth))
		}
		cards = append(cards, m.theme.Card.Render(strings.Join(lines, "\n")))
	}
	return strings.Join(cards, "\n")
}

func first(cells []string) string {
	if len(cells) == 0 {
		return ""
	}
	return cells[0]
}
