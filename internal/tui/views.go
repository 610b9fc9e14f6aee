package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/bednights/internal/tui/components"
	"github.com/Veraticus/bednights/internal/tui/viewmodel"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderTabs()}
	if bar := components.RenderFilterBar(m.theme, viewmodel.BuildFilters(m.current().state, m.focus), m.width); bar != "" {
		sections = append(sections, bar)
	}

	switch m.mode {
	case ModeHelp:
		sections = append(sections, m.renderHelp())
	case ModeForm:
		sections = append(sections, m.renderOverlay(m.form.View()))
	case ModeDialog:
		sections = append(sections, m.renderOverlay(m.dialog.View()))
	default:
		sections = append(sections, m.renderBody())
	}

	if m.mode == ModeSearch {
		sections = append(sections, m.search.View())
	}
	if toasts := m.toasts.View(m.theme); toasts != "" {
		sections = append(sections, toasts)
	}
	sections = append(sections, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTabs shows every tab, or only the active one with its position when
// the full bar does not fit.
func (m Model) renderTabs() string {
	title := m.theme.Title.Render("🛏️  Bed Nights") + "  "

	parts := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		style := m.theme.Tab
		if i == m.active {
			style = m.theme.ActiveTab
		}
		parts[i] = style.Render(t.state.Page.Title())
	}
	full := title + strings.Join(parts, "")
	if m.width >= m.config.NarrowWidth && lipgloss.Width(full) <= m.width {
		return full
	}

	compact := fmt.Sprintf("‹ %s %d/%d ›", m.current().state.Page.Title(), m.active+1, len(m.tabs))
	return title + m.theme.ActiveTab.Render(compact)
}

func (m Model) renderBody() string {
	t := m.current()
	if !t.loaded {
		return lipgloss.NewStyle().
			Foreground(m.theme.Muted).
			Padding(1, 2).
			Render("Loading " + strings.ToLower(t.state.Page.Title()) + "...")
	}
	if t.report() {
		return components.RenderReport(m.theme, viewmodel.BuildReport(t.state.Report(), viewmodel.DefaultTop), m.width)
	}

	lv := viewmodel.BuildList(t.state, m.config.PageWindow)
	if lv.Empty() {
		return m.list.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), m.renderFooter(lv))
}

// renderFooter renders "Page 2 of 9 (203 records)" and the page links.
func (m Model) renderFooter(lv viewmodel.ListView) string {
	links := make([]string, 0, len(lv.Items))
	for _, item := range lv.Items {
		switch {
		case item.Ellipsis:
			links = append(links, "…")
		case item.Number == lv.Page:
			links = append(links, m.theme.Bold.Render("["+strconv.Itoa(item.Number)+"]"))
		default:
			links = append(links, strconv.Itoa(item.Number))
		}
	}
	summary := fmt.Sprintf("Page %d of %d (%d records)", lv.Page, lv.TotalPages, lv.Total)
	return m.theme.Subtitle.Render(summary) + "  " + strings.Join(links, " ")
}

func (m Model) renderOverlay(content string) string {
	return lipgloss.Place(m.width, max(lipgloss.Height(content), m.height-6),
		lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderHelp() string {
	title := m.theme.Title.Render("Bed Nights - Help")

	var columns []string
	for _, group := range m.keymap.FullHelp() {
		lines := make([]string, 0, len(group))
		for _, b := range group {
			h := b.Help()
			lines = append(lines, fmt.Sprintf("%-10s %s", h.Key, h.Desc))
		}
		columns = append(columns, lipgloss.NewStyle().MarginRight(4).Render(strings.Join(lines, "\n")))
	}

	var body string
	if m.width < 100 {
		body = lipgloss.JoinVertical(lipgloss.Left, columns...)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, columns...)
	}
	hint := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Press any key to return")
	return m.theme.RoundedBox.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", hint))
}

// renderStatusBar shows who is signed in, how fresh the data is and the main keys.
func (m Model) renderStatusBar() string {
	left := m.theme.StatusInfo.Render(m.config.Session.String())
	center := m.renderLoadStatus()

	hints := make([]string, 0, len(m.keymap.ShortHelp()))
	for _, b := range m.keymap.ShortHelp() {
		hints = append(hints, b.Help().Key+" "+b.Help().Desc)
	}
	right := lipgloss.NewStyle().Foreground(m.theme.Muted).Render(strings.Join(hints, " • "))

	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right)
	if spacing < 2 {
		right = ""
		spacing = max(m.width-lipgloss.Width(left)-lipgloss.Width(center), 2)
	}
	leftPad := spacing / 2
	rightPad := spacing - leftPad

	return lipgloss.NewStyle().
		MaxWidth(max(m.width, 1)).
		Render(left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right)
}

func (m Model) renderLoadStatus() string {
	t := m.current()
	fetchedAt, stale, err := t.state.Status()
	switch {
	case t.loading:
		return m.theme.StatusPending.Render("Loading...")
	case stale:
		return m.theme.StatusWarning.Render("Offline, snapshot " + viewmodel.Age(fetchedAt, m.config.Now()))
	case err != nil:
		return m.theme.StatusError.Render("Offline")
	case !t.loaded:
		return ""
	}
	return m.theme.StatusSuccess.Render("Updated " + viewmodel.Age(fetchedAt, m.config.Now()))
}
