package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/bednights/internal/model"
	"github.com/Veraticus/bednights/internal/pages"
	"github.com/Veraticus/bednights/internal/tui/themes"
)

var placeholders = map[pages.FieldKind]string{
	pages.KindNumber: "0",
	pages.KindDate:   "YYYY-MM-DD",
	pages.KindBool:   "yes / no",
}

// FormModel edits the form fields of one record.
type FormModel struct {
	theme  themes.Theme
	page   pages.Page
	base   model.Record
	inputs []textinput.Model
	err    string
	focus  int
	width  int
}

// NewForm opens a form for page. A nil rec starts a new record.
func NewForm(page pages.Page, rec model.Record, theme themes.Theme) FormModel {
	m := FormModel{
		theme:  theme,
		page:   page,
		base:   rec.Clone(),
		inputs: make([]textinput.Model, len(page.EditFields)),
		width:  60,
	}
	for i, f := range page.EditFields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 200
		in.Placeholder = placeholders[f.Kind]
		if rec != nil {
			in.SetValue(initialValue(f, rec))
		}
		m.inputs[i] = in
	}
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
	return m
}

func initialValue(f pages.EditField, rec model.Record) string {
	if rec.IsBlank(f.Field) {
		return ""
	}
	switch f.Kind {
	case pages.KindDate:
		if t, ok := rec.Time(f.Field); ok {
			return t.Format(model.DateLayout)
		}
	case pages.KindBool:
		if b, ok := rec.Value(f.Field).(bool); ok {
			if b {
				return "yes"
			}
			return "no"
		}
	}
	return rec.String(f.Field)
}

// New reports whether the form creates a record.
func (m FormModel) New() bool {
	return m.base.ID() == ""
}

// SetError shows a submission error under the form.
func (m *FormModel) SetError(err string) {
	m.err = err
}

// SetWidth sets the form width.
func (m *FormModel) SetWidth(width int) {
	m.width = width
}

// Record builds the record from the inputs. Editing keeps every field of the
// original; a new record carries only the fields that were filled in.
func (m FormModel) Record() model.Record {
	rec := m.base.Clone()
	for i, f := range m.page.EditFields {
		value := strings.TrimSpace(m.inputs[i].Value())
		if f.Kind == pages.KindBool {
			value = normalizeBool(value)
		}
		if value == "" && m.New() {
			continue
		}
		rec[f.Field] = value
	}
	return rec
}

func normalizeBool(s string) string {
	switch strings.ToLower(s) {
	case "y", "yes":
		return "true"
	case "n", "no":
		return "false"
	}
	return s
}

// Update handles focus movement, submission and cancel.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateFocused(msg)
	}

	switch keyMsg.String() {
	case "esc":
		return m, func() tea.Msg { return FormCancelledMsg{} }
	case "ctrl+s":
		return m, m.submit()
	case "enter":
		if m.focus == len(m.inputs)-1 {
			return m, m.submit()
		}
		m.moveFocus(1)
		return m, textinput.Blink
	case "tab", "down":
		m.moveFocus(1)
		return m, textinput.Blink
	case "shift+tab", "up":
		m.moveFocus(-1)
		return m, textinput.Blink
	}
	return m.updateFocused(msg)
}

func (m FormModel) updateFocused(msg tea.Msg) (FormModel, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *FormModel) moveFocus(step int) {
	if len(m.inputs) == 0 {
		return
	}
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + step + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m FormModel) submit() tea.Cmd {
	rec := m.Record()
	isNew := m.New()
	return func() tea.Msg {
		return FormSubmittedMsg{Record: rec, New: isNew}
	}
}

// View renders the form.
func (m FormModel) View() string {
	title := "Edit " + m.page.Entity.Title()
	if m.New() {
		title = "New " + m.page.Entity.Title()
	}

	labelWidth := 0
	for _, f := range m.page.EditFields {
		labelWidth = max(labelWidth, lipgloss.Width(f.Label)+2)
	}

	lines := []string{m.theme.Title.Render(title), ""}
	for i, f := range m.page.EditFields {
		label := f.Label
		if f.Required {
			label += " *"
		}
		style := lipgloss.NewStyle().Foreground(m.theme.Muted).Width(labelWidth)
		if i == m.focus {
			style = style.Foreground(m.theme.Primary).Bold(true)
		}
		lines = append(lines, style.Render(label)+" "+m.inputs[i].View())
	}
	if m.err != "" {
		lines = append(lines, "", m.theme.StatusError.Render(m.err))
	}
	lines = append(lines, "", lipgloss.NewStyle().
		Foreground(m.theme.Muted).
		Render("[Tab] Next  [Enter] Save on last field  [Ctrl+S] Save  [Esc] Cancel"))

	return m.theme.RoundedBox.
		Width(m.width).
		Render(strings.Join(lines, "\n"))
}
