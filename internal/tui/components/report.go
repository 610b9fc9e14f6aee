package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/bednights/internal/tui/themes"
	"github.com/Veraticus/bednights/internal/tui/viewmodel"
)

// twoColumnWidth is the width from which charts are laid out side by side.
const twoColumnWidth = 100

// RenderReport draws the report total and its bar charts within width.
func RenderReport(theme themes.Theme, v viewmodel.ReportView, width int) string {
	if v.Empty() {
		return lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(1, 2).
			Render("No bed nights match the current filters")
	}

	total := theme.Title.Render("Total bed nights: "+v.Total) +
		"  " + theme.Subtitle.Render(fmt.Sprintf("%d stays", v.Records))

	if width < twoColumnWidth {
		sections := []string{total}
		for _, c := range v.Charts {
			sections = append(sections, "", renderChart(theme, c, width))
		}
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	half := width/2 - 2
	var rows []string
	for i := 0; i < len(v.Charts); i += 2 {
		left := lipgloss.NewStyle().Width(half).Render(renderChart(theme, v.Charts[i], half))
		right := ""
		if i+1 < len(v.Charts) {
			right = renderChart(theme, v.Charts[i+1], half)
		}
		rows = append(rows, "", lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right))
	}
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{total}, rows...)...)
}

func renderChart(theme themes.Theme, c viewmodel.Chart, width int) string {
	lines := []string{theme.Bold.Render(c.Title)}
	if len(c.Bars) == 0 {
		return strings.Join(append(lines, lipgloss.NewStyle().Foreground(theme.Muted).Render("  none")), "\n")
	}

	labelWidth, valueWidth := 0, 0
	for _, b := range c.Bars {
		labelWidth = max(labelWidth, lipgloss.Width(b.Label))
		valueWidth = max(valueWidth, lipgloss.Width(b.Value))
	}
	labelWidth = min(labelWidth, max(width/3, 8))
	barWidth := max(width-labelWidth-valueWidth-4, 4)

	for _, b := range c.Bars {
		bar := viewmodel.Bar(b.Fraction, barWidth)
		filled := strings.TrimRight(bar, "░")
		lines = append(lines, fmt.Sprintf("%-*s %s%s %*s",
			labelWidth, viewmodel.TruncateString(b.Label, labelWidth),
			theme.BarFill.Render(filled),
			theme.BarEmpty.Render(bar[len(filled):]),
			valueWidth, b.Value))
	}
	return strings.Join(lines, "\n")
}
