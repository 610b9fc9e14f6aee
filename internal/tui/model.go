// Package tui is the interactive bed-night dashboard: one tab per entity page
// plus the report, each filtered, sorted and paged client-side.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/bednights/internal/api"
	"github.com/Veraticus/bednights/internal/forms"
	"github.com/Veraticus/bednights/internal/listview"
	"github.com/Veraticus/bednights/internal/model"
	"github.com/Veraticus/bednights/internal/pages"
	"github.com/Veraticus/bednights/internal/service"
	"github.com/Veraticus/bednights/internal/tui/components"
	"github.com/Veraticus/bednights/internal/tui/themes"
	"github.com/Veraticus/bednights/internal/tui/viewmodel"
)

// Mode selects what the keyboard drives.
type Mode int

// Modes.
const (
	ModeBrowse Mode = iota
	ModeSearch
	ModeForm
	ModeDialog
	ModeHelp
)

// maxToasts is how many notifications are shown at once.
const maxToasts = 3

// tab is one dashboard page and its load status.
type tab struct {
	state   *service.PageState
	loaded  bool
	loading bool
}

func (t *tab) report() bool {
	return t.state.Page.Entity == model.EntityBedNightReport
}

// Model holds the main TUI state.
type Model struct {
	ctx      context.Context
	theme    themes.Theme
	config   Config
	keymap   KeyMap
	tabs     []*tab
	list     components.ListModel
	search   components.SearchModel
	form     components.FormModel
	dialog   components.DialogModel
	toasts   components.Toasts
	active   int
	focus    int
	mode     Mode
	width    int
	height   int
	quitting bool
}

// newModel creates a model with one tab per configured page.
func newModel(ctx context.Context, cfg Config) (Model, error) {
	if len(cfg.Pages) == 0 {
		return Model{}, errors.New("no pages to show")
	}

	m := Model{
		ctx:    ctx,
		theme:  cfg.Theme,
		config: cfg,
		keymap: DefaultKeyMap(),
		list:   components.NewList(cfg.Theme, cfg.NarrowWidth),
		toasts: components.NewToasts(cfg.ToastTTL, maxToasts),
		focus:  -1,
		width:  cfg.Width,
		height: cfg.Height,
	}
	for _, p := range cfg.Pages {
		state, err := service.NewPageState(p, cfg.Language, cfg.Bounds)
		if err != nil {
			return Model{}, err
		}
		m.tabs = append(m.tabs, &tab{state: state})
	}
	m.handleResize()
	return m, nil
}

// Init loads the first tab.
func (m Model) Init() tea.Cmd {
	return m.ensureLoaded(m.current())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case loadedMsg:
		cmd := m.handleLoaded(msg.result)
		return m, cmd

	case savedMsg:
		cmd := m.handleSaved(msg)
		return m, cmd

	case deletedMsg:
		cmd := m.handleDeleted(msg)
		return m, cmd

	case components.FormSubmittedMsg:
		return m, m.save(m.current().state.Page, msg.Record, msg.New)

	case components.FormCancelledMsg, components.DialogClosedMsg, components.SearchCancelledMsg:
		m.mode = ModeBrowse
		return m, nil

	case components.ConfirmedMsg:
		m.mode = ModeBrowse
		state := m.current().state
		label := msg.ID
		if rec, ok := state.Find(msg.ID); ok {
			label = api.Summarize(rec)
		}
		return m, m.remove(state.Page.Entity, msg.ID, label)

	case components.SearchSubmittedMsg:
		m.mode = ModeBrowse
		var values []string
		if q := strings.TrimSpace(msg.Query); q != "" {
			values = []string{q}
		}
		notices := m.current().state.SetFilter(pages.KeySearch, values...)
		m.refreshList()
		cmd := m.notify(components.ToastInfo, notices)
		return m, cmd

	case components.ToastExpiredMsg:
		m.toasts.Expire(msg.ID)
		return m, nil
	}

	// Cursor blinks and other input plumbing go to the focused input.
	var cmd tea.Cmd
	switch m.mode {
	case ModeForm:
		m.form, cmd = m.form.Update(msg)
	case ModeSearch:
		m.search, cmd = m.search.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case ModeHelp:
		m.mode = ModeBrowse
		return m, nil
	case ModeSearch:
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	case ModeForm:
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	case ModeDialog:
		m.dialog, cmd = m.dialog.Update(msg)
		return m, cmd
	}
	cmd = m.handleBrowseKey(msg)
	return m, cmd
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) tea.Cmd {
	t := m.current()
	state := t.state

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.mode = ModeHelp

	case key.Matches(msg, m.keymap.NextTab):
		return m.switchTab(1)

	case key.Matches(msg, m.keymap.PrevTab):
		return m.switchTab(-1)

	case key.Matches(msg, m.keymap.PrevPage):
		state.Table().PrevPage()
		m.refreshList()

	case key.Matches(msg, m.keymap.NextPage):
		state.Table().NextPage()
		m.refreshList()

	case key.Matches(msg, m.keymap.Sort):
		n, _ := strconv.Atoi(msg.String())
		c, ok := state.Page.Column(n - 1)
		if !ok {
			return nil
		}
		state.Table().ToggleSort(c.Field)
		m.refreshList()

	case key.Matches(msg, m.keymap.Search):
		if len(state.Page.SearchFields) == 0 {
			return m.toasts.Push(components.ToastInfo, state.Page.Title()+" has no search")
		}
		m.search = components.NewSearch(state.Filters().First(pages.KeySearch))
		m.mode = ModeSearch
		return textinput.Blink

	case key.Matches(msg, m.keymap.FocusFilter):
		n := len(state.Dropdowns())
		if n == 0 {
			return m.toasts.Push(components.ToastInfo, state.Page.Title()+" has no dropdown filters")
		}
		m.focus++
		if m.focus >= n {
			m.focus = -1
		}

	case key.Matches(msg, m.keymap.PrevOption):
		return m.cycleOption(-1)

	case key.Matches(msg, m.keymap.NextOption):
		return m.cycleOption(1)

	case key.Matches(msg, m.keymap.Reset):
		m.focus = -1
		notices := state.SetFilters(listview.FilterSet{})
		m.refreshList()
		return tea.Batch(
			m.toasts.Push(components.ToastInfo, "Filters cleared"),
			m.notify(components.ToastInfo, notices))

	case key.Matches(msg, m.keymap.Refresh):
		return m.reload(t)

	case key.Matches(msg, m.keymap.New):
		if err := m.canEdit(state.Page); err != nil {
			return m.toasts.Push(components.ToastError, err.Error())
		}
		return m.openForm(nil)

	case key.Matches(msg, m.keymap.Edit):
		if err := m.canEdit(state.Page); err != nil {
			return m.toasts.Push(components.ToastError, err.Error())
		}
		if rec, ok := m.selectedRecord(); ok {
			return m.openForm(rec)
		}

	case key.Matches(msg, m.keymap.Delete):
		if err := m.canEdit(state.Page); err != nil {
			return m.toasts.Push(components.ToastError, err.Error())
		}
		rec, ok := m.selectedRecord()
		if !ok {
			return nil
		}
		m.dialog = components.NewConfirm(m.theme, "Delete from "+state.Page.Title()+"?", rec.ID(),
			api.Summarize(rec), "", "This cannot be undone.")
		m.dialog.SetWidth(m.overlayWidth())
		m.mode = ModeDialog

	default:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) cycleOption(step int) tea.Cmd {
	state := m.current().state
	fields := state.Dropdowns()
	if m.focus < 0 || m.focus >= len(fields) {
		return m.toasts.Push(components.ToastInfo, "Press f to pick a dropdown first")
	}
	f := fields[m.focus]
	next := viewmodel.CycleOption(state.Options()[f.Key], state.Filters().Values(f.Key), step)
	notices := state.SetFilter(f.Key, next...)
	m.refreshList()
	return m.notify(components.ToastInfo, notices)
}

func (m *Model) canEdit(page pages.Page) error {
	if page.ReadOnly() {
		return fmt.Errorf("%s is read-only", page.Title())
	}
	if m.config.Mutator == nil {
		return errors.New("editing is not available")
	}
	return m.config.Session.RequireAdmin()
}

func (m *Model) openForm(rec model.Record) tea.Cmd {
	m.form = components.NewForm(m.current().state.Page, rec, m.theme)
	m.form.SetWidth(m.overlayWidth())
	m.mode = ModeForm
	return textinput.Blink
}

func (m *Model) selectedRecord() (model.Record, bool) {
	if m.current().report() {
		return nil, false
	}
	row, ok := m.list.Selected()
	if !ok {
		return nil, false
	}
	return m.current().state.Find(row.ID)
}

func (m *Model) switchTab(step int) tea.Cmd {
	n := len(m.tabs)
	m.active = (m.active + step + n) % n
	m.focus = -1
	m.refreshList()
	return m.ensureLoaded(m.current())
}

func (m *Model) handleLoaded(r service.LoadResult) tea.Cmd {
	var cmds []tea.Cmd
	for _, t := range m.tabs {
		if t.state.Page.Entity != r.Entity {
			continue
		}
		t.loading = false
		t.loaded = true
		cmds = append(cmds, m.notify(components.ToastInfo, t.state.Load(r)))

		title := strings.ToLower(t.state.Page.Title())
		switch {
		case r.Stale:
			cmds = append(cmds, m.toasts.Push(components.ToastWarning, fmt.Sprintf("API unavailable; showing %s from %s",
				title, r.FetchedAt.Local().Format(time.DateTime))))
		case r.Degraded():
			cmds = append(cmds, m.toasts.Push(components.ToastError, fmt.Sprintf("Could not load %s: %v", title, r.Err)))
		}
	}
	m.refreshList()
	return tea.Batch(cmds...)
}

func (m *Model) handleSaved(msg savedMsg) tea.Cmd {
	if msg.err != nil {
		if m.mode == ModeForm {
			m.form.SetError(msg.err.Error())
		}
		return m.toasts.Push(components.ToastError, "Save failed: "+msg.err.Error())
	}

	m.mode = ModeBrowse
	text := "Updated " + msg.entity.Title()
	if msg.isNew {
		text = "Created " + msg.entity.Title()
	}
	if msg.result.Message != "" {
		text += ": " + msg.result.Message
	}
	return tea.Batch(m.toasts.Push(components.ToastSuccess, text), m.invalidate())
}

func (m *Model) handleDeleted(msg deletedMsg) tea.Cmd {
	var conflict *api.ConflictError
	switch {
	case errors.As(msg.err, &conflict):
		m.dialog = components.NewNotice(m.theme, "Cannot delete "+msg.label, strings.Split(conflict.Detail(), "\n")...)
		m.dialog.SetWidth(m.overlayWidth())
		m.mode = ModeDialog
		return m.toasts.Push(components.ToastWarning, fmt.Sprintf("Delete blocked: %d dependent records", len(conflict.Conflict.AffectedLogs)))
	case msg.err != nil:
		return m.toasts.Push(components.ToastError, "Delete failed: "+msg.err.Error())
	}
	return tea.Batch(m.toasts.Push(components.ToastSuccess, "Deleted "+msg.label), m.invalidate())
}

// invalidate marks every tab for reload, since names are denormalized across
// entities, and reloads the current one.
func (m *Model) invalidate() tea.Cmd {
	for _, t := range m.tabs {
		t.loaded = false
	}
	return m.reload(m.current())
}

func (m Model) ensureLoaded(t *tab) tea.Cmd {
	if t.loaded || t.loading {
		return nil
	}
	return m.reload(t)
}

func (m Model) reload(t *tab) tea.Cmd {
	if m.config.Loader == nil {
		return nil
	}
	t.loading = true
	return m.load(t.state.Page.Entity)
}

func (m *Model) notify(level components.ToastLevel, notices []forms.Notice) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(notices))
	for _, n := range notices {
		cmds = append(cmds, m.toasts.Push(level, string(n)))
	}
	return tea.Batch(cmds...)
}

func (m Model) current() *tab {
	return m.tabs[m.active]
}

func (m *Model) refreshList() {
	t := m.current()
	if t.report() {
		return
	}
	m.list.SetView(viewmodel.BuildList(t.state, m.config.PageWindow))
}

// handleResize adjusts component sizes when terminal resizes.
func (m *Model) handleResize() {
	// Tab bar, filter bar, page footer, toasts and status bar.
	chrome := 5 + maxToasts
	m.list.Resize(m.width, m.height-chrome)
	m.refreshList()
}

func (m Model) overlayWidth() int {
	return max(min(m.width-4, 72), 30)
}
