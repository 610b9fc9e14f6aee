// Package cli renders command output: styled messages, tables, reports and
// progress for the non-interactive bednights commands.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette shared with the dashboard's default theme.
var (
	PrimaryColor = lipgloss.Color("#E8A33D") // savanna amber
	SuccessColor = lipgloss.Color("#4ECDC4")
	WarningColor = lipgloss.Color("#FFE66D")
	ErrorColor   = lipgloss.Color("#FF6B6B")
	InfoColor    = lipgloss.Color("#95E1D3")
	SubtleColor  = lipgloss.Color("#666666")
)

var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor).MarginBottom(1)
	SubtitleStyle = lipgloss.NewStyle().Foreground(SubtleColor)
	SubtleStyle   = lipgloss.NewStyle().Foreground(SubtleColor)
	BoldStyle     = lipgloss.NewStyle().Bold(true)
	PromptStyle   = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)

	// BoxStyle frames conflict reports and other multi-line notices.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)

	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)
	TableCellStyle   = lipgloss.NewStyle().PaddingRight(2)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	BedIcon     = "🛏️"
	ChartIcon   = "📊"
)

type level int

const (
	levelSuccess level = iota
	levelWarning
	levelError
	levelInfo
)

var levels = map[level]struct {
	icon  string
	style lipgloss.Style
}{
	levelSuccess: {SuccessIcon, lipgloss.NewStyle().Foreground(SuccessColor)},
	levelWarning: {WarningIcon, lipgloss.NewStyle().Foreground(WarningColor)},
	levelError:   {ErrorIcon, lipgloss.NewStyle().Foreground(ErrorColor)},
	levelInfo:    {InfoIcon, lipgloss.NewStyle().Foreground(InfoColor)},
}

func format(l level, message string) string {
	s := levels[l]
	return s.style.Render(s.icon + " " + message)
}

// FormatSuccess reports a completed upsert, delete or export.
func FormatSuccess(message string) string { return format(levelSuccess, message) }

// FormatWarning reports stale data and clamped input.
func FormatWarning(message string) string { return format(levelWarning, message) }

// FormatError reports a failed command.
func FormatError(message string) string { return format(levelError, message) }

// FormatInfo reports notices such as pruned dropdown selections.
func FormatInfo(message string) string { return format(levelInfo, message) }

// FormatTitle prefixes a heading with the bed icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(BedIcon + " " + title)
}

// FormatPrompt formats a confirmation question.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

// RenderBox renders content under a title in a rounded box.
func RenderBox(title, content string) string {
	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, TitleStyle.UnsetMargins().Render(title), content))
}
