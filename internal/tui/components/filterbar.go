package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/bednights/internal/tui/themes"
	"github.com/Veraticus/bednights/internal/tui/viewmodel"
)

// RenderFilterBar draws the search, date window and dropdown chips, wrapping
// chips onto further lines when they do not fit in width.
func RenderFilterBar(theme themes.Theme, bar viewmodel.FilterBar, width int) string {
	var chips []string
	if bar.Search != "" {
		chips = append(chips, theme.Chip.Render("/ "+viewmodel.TruncateString(bar.Search, 24)))
	}
	if bar.Start != "" || bar.End != "" {
		chips = append(chips, theme.Chip.Render(dateWindow(bar.Start, bar.End)))
	}
	for _, c := range bar.Chips {
		text := c.Label + ": " + viewmodel.TruncateString(c.Value, 24)
		if c.Focused {
			chips = append(chips, theme.FocusedChip.Render("◂ "+text+" ▸"))
			continue
		}
		chips = append(chips, theme.Chip.Render(text))
	}
	if len(chips) == 0 {
		return ""
	}

	var lines []string
	var line []string
	lineWidth := 0
	for _, chip := range chips {
		w := lipgloss.Width(chip) + 1
		if lineWidth > 0 && lineWidth+w > width {
			lines = append(lines, strings.Join(line, " "))
			line, lineWidth = nil, 0
		}
		line = append(line, chip)
		lineWidth += w
	}
	lines = append(lines, strings.Join(line, " "))
	return strings.Join(lines, "\n")
}

func dateWindow(start, end string) string {
	if start == "" {
		start = "…"
	}
	if end == "" {
		end = "…"
	}
	return start + " → " + end
}
