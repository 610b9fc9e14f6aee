package components

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/bednights/internal/model"
	"github.com/Veraticus/bednights/internal/pages"
	tuitest "github.com/Veraticus/bednights/internal/tui/testing"
	"github.com/Veraticus/bednights/internal/tui/themes"
	"github.com/Veraticus/bednights/internal/tui/viewmodel"
)

func sampleList() viewmodel.ListView {
	return viewmodel.ListView{
		Title:   "Countries",
		Headers: []string{"Name ▲", "Code"},
		Widths:  []int{5, 2},
		Rows: []viewmodel.Row{
			{ID: "1", Cells: []string{"Kenya", "KE"}},
			{ID: "2", Cells: []string{"Tanzania", "TZ"}},
			{ID: "3", Cells: []string{"Uganda", "UG"}},
		},
		Page: 1, TotalPages: 1, Total: 3, Loaded: 3,
	}
}

func TestList_CursorMovement(t *testing.T) {
	m := NewList(themes.Default, 80)
	m.Resize(100, 10)
	m.SetView(sampleList())

	m, _ = m.Update(tuitest.KeyDown())
	m, _ = m.Update(tuitest.KeyDown())
	m, _ = m.Update(tuitest.KeyDown())
	assert.Equal(t, 2, m.Cursor(), "cursor stops at the last row")

	row, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "3", row.ID)

	m, _ = m.Update(tuitest.KeyPress("g"))
	assert.Equal(t, 0, m.Cursor())

	view := tuitest.StripANSI(m.View())
	assert.True(t, tuitest.ContainsInOrder(view, "Name ▲", "Kenya", "Tanzania", "Uganda"))
}

func TestList_CursorClampsOnShorterPage(t *testing.T) {
	m := NewList(themes.Default, 80)
	m.SetView(sampleList())
	m, _ = m.Update(tuitest.KeyPress("G"))
	require.Equal(t, 2, m.Cursor())

	short := sampleList()
	short.Rows = short.Rows[:1]
	m.SetView(short)
	assert.Equal(t, 0, m.Cursor())
}

func TestList_NarrowRendersCards(t *testing.T) {
	m := NewList(themes.Default, 80)
	m.Resize(60, 20)
	m.SetView(sampleList())

	assert.True(t, m.Narrow())
	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "▸ Kenya")
	assert.Contains(t, view, "Code")
	assert.Contains(t, view, "TZ")
}

func TestList_Empty(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		loaded int
	}{
		{name: "filtered out", loaded: 4, want: "No results"},
		{name: "nothing loaded", loaded: 0, want: "No countries yet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewList(themes.Default, 80)
			m.SetView(viewmodel.ListView{Title: "Countries", Loaded: tt.loaded})
			assert.Contains(t, tuitest.StripANSI(m.View()), tt.want)
			_, ok := m.Selected()
			assert.False(t, ok)
		})
	}
}

func countriesPage(t *testing.T) pages.Page {
	t.Helper()
	page, err := pages.For(model.EntityCountries)
	require.NoError(t, err)
	return page
}

func TestForm_NewRecord(t *testing.T) {
	m := NewForm(countriesPage(t), nil, themes.Default)
	assert.True(t, m.New())

	for _, r := range "Kenya" {
		m, _ = m.Update(tuitest.KeyPress(string(r)))
	}
	m, _ = m.Update(tuitest.KeyTab())
	m, _ = m.Update(tuitest.KeyPress("K"))
	m, _ = m.Update(tuitest.KeyPress("E"))

	_, cmd := m.Update(tuitest.KeyEnter())
	require.NotNil(t, cmd)
	msg, ok := cmd().(FormSubmittedMsg)
	require.True(t, ok)
	assert.True(t, msg.New)
	assert.Equal(t, model.Record{"name": "Kenya", "code": "KE"}, msg.Record)
}

func TestForm_EditKeepsOtherFields(t *testing.T) {
	rec := model.Record{"id": "7", "name": "Kenya", "code": "KE", "updated_at": "2024-01-01"}
	m := NewForm(countriesPage(t), rec, themes.Default)
	assert.False(t, m.New())

	m, _ = m.Update(tuitest.KeyTab())
	m, _ = m.Update(tuitest.KeyBackspace())
	m, _ = m.Update(tuitest.KeyBackspace())

	got := m.Record()
	assert.Equal(t, "7", got.ID())
	assert.Equal(t, "Kenya", got["name"])
	assert.Equal(t, "", got["code"])
	assert.Equal(t, "2024-01-01", got["updated_at"])
	assert.Equal(t, "KE", rec["code"], "original record is untouched")
}

func TestForm_PrefillsTypedFields(t *testing.T) {
	page, err := pages.For(model.EntityProperties)
	require.NoError(t, err)

	m := NewForm(page, model.Record{"id": "1", "name": "Mara Camp", "is_active": true}, themes.Default)
	assert.Equal(t, "true", m.Record()["is_active"])
	assert.Contains(t, tuitest.StripANSI(m.View()), "Edit Properties")
}

func TestForm_CancelAndError(t *testing.T) {
	m := NewForm(countriesPage(t), nil, themes.Default)
	m.SetError("missing required fields: Name")
	assert.Contains(t, tuitest.StripANSI(m.View()), "missing required fields: Name")

	_, cmd := m.Update(tuitest.KeyEsc())
	require.NotNil(t, cmd)
	assert.IsType(t, FormCancelledMsg{}, cmd())
}

func TestNormalizeBool(t *testing.T) {
	assert.Equal(t, "true", normalizeBool("Yes"))
	assert.Equal(t, "false", normalizeBool("n"))
	assert.Equal(t, "maybe", normalizeBool("maybe"))
}

func TestDialog(t *testing.T) {
	confirm := NewConfirm(themes.Default, "Delete Kenya?", "7", "This cannot be undone.")
	assert.Contains(t, tuitest.StripANSI(confirm.View()), "[y] Yes")

	_, cmd := confirm.Update(tuitest.KeyPress("x"))
	assert.Nil(t, cmd, "other keys are ignored")

	_, cmd = confirm.Update(tuitest.KeyPress("y"))
	require.NotNil(t, cmd)
	assert.Equal(t, ConfirmedMsg{ID: "7"}, cmd())

	_, cmd = confirm.Update(tuitest.KeyEsc())
	require.NotNil(t, cmd)
	assert.Equal(t, DialogClosedMsg{}, cmd())

	notice := NewNotice(themes.Default, "Cannot delete", "2 logs still reference it")
	assert.Contains(t, tuitest.StripANSI(notice.View()), "Press any key to close")
	_, cmd = notice.Update(tuitest.KeyPress("x"))
	require.NotNil(t, cmd)
	assert.Equal(t, DialogClosedMsg{}, cmd())
}

func TestToasts(t *testing.T) {
	toasts := NewToasts(time.Second, 2)

	require.NotNil(t, toasts.Push(ToastInfo, "first"))
	toasts.Push(ToastError, "second")
	toasts.Push(ToastSuccess, "third")

	items := toasts.Items()
	require.Len(t, items, 2, "oldest toast drops off")
	assert.Equal(t, "second", items[0].Text)

	toasts.Expire(items[0].ID)
	require.Len(t, toasts.Items(), 1)
	assert.Equal(t, "✓ third", tuitest.StripANSI(toasts.View(themes.Default)))

	toasts.Expire(999)
	assert.Len(t, toasts.Items(), 1)
}

func TestRenderReport(t *testing.T) {
	v := viewmodel.ReportView{
		Total:   "1,206",
		Records: 3,
		Charts: []viewmodel.Chart{
			{Title: "By country", Bars: []viewmodel.BarItem{
				{Label: "Tanzania", Value: "1,200", Fraction: 1},
				{Label: "Kenya", Value: "6", Fraction: 0.005},
			}},
			{Title: "By month"},
		},
	}

	for _, width := range []int{60, 140} {
		out := tuitest.StripANSI(RenderReport(themes.Default, v, width))
		assert.Contains(t, out, "Total bed nights: 1,206")
		assert.True(t, tuitest.ContainsInOrder(out, "By country", "Tanzania", "1,200", "Kenya"))
		assert.Contains(t, out, "none")
	}

	empty := tuitest.StripANSI(RenderReport(themes.Default, viewmodel.ReportView{}, 80))
	assert.Contains(t, empty, "No bed nights match")
}

func TestRenderFilterBar(t *testing.T) {
	bar := viewmodel.FilterBar{
		Search: "mara",
		Start:  "2024-01-01",
		Chips: []viewmodel.FilterChip{
			{Key: "country", Label: "Country", Value: "Kenya", Focused: true},
			{Key: "agency", Label: "Agency", Value: viewmodel.AllOption},
		},
	}

	out := tuitest.StripANSI(RenderFilterBar(themes.Default, bar, 200))
	assert.True(t, tuitest.ContainsInOrder(out, "/ mara", "2024-01-01 → …", "◂ Country: Kenya ▸", "Agency: All"))
	assert.Equal(t, 1, strings.Count(out, "\n")+1)

	wrapped := RenderFilterBar(themes.Default, bar, 30)
	assert.Greater(t, strings.Count(wrapped, "\n"), 0)

	assert.Empty(t, RenderFilterBar(themes.Default, viewmodel.FilterBar{}, 80))
}

func TestSearch(t *testing.T) {
	m := NewSearch("ma")
	m, _ = m.Update(tuitest.KeyPress("r"))
	assert.Equal(t, "mar", m.Value())

	_, cmd := m.Update(tuitest.KeyEnter())
	require.NotNil(t, cmd)
	assert.Equal(t, SearchSubmittedMsg{Query: "mar"}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, SearchCancelledMsg{}, cmd())
}
