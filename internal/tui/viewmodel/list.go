// Package viewmodel holds the plain data the dashboard renders, built from
// page state so the views stay free of filtering and paging logic.
package viewmodel

import (
	"github.com/Veraticus/bednights/internal/listview"
	"github.com/Veraticus/bednights/internal/service"
)

// Row is one rendered record.
type Row struct {
	ID    string
	Cells []string
}

// ListView is the visible page of a list.
type ListView struct {
	Title      string
	Headers    []string
	Widths     []int
	Rows       []Row
	Items      []listview.PageItem
	Page       int
	TotalPages int
	Total      int
	Loaded     int
}

// Empty reports whether no record survived filtering.
func (v ListView) Empty() bool {
	return v.Total == 0
}

// BuildList renders the current page of state. window is the number of page
// links shown on each side of the current page.
func BuildList(state *service.PageState, window int) ListView {
	view := state.View()
	sort := state.Table().Sort()
	page := state.Page

	lv := ListView{
		Title:      page.Title(),
		Headers:    make([]string, len(page.Columns)),
		Widths:     make([]int, len(page.Columns)),
		Rows:       make([]Row, 0, len(view.Page.Records)),
		Page:       view.Page.Number(),
		TotalPages: view.Page.TotalPages,
		Total:      view.Page.Total,
		Loaded:     len(state.Table().Records()),
		Items:      listview.BuildPageRange(view.Page.Number(), view.Page.TotalPages, window),
	}
	for i, c := range page.Columns {
		lv.Headers[i] = c.Title
		if ind := sort.Indicator(c.Field); ind != "" {
			lv.Headers[i] += " " + ind
		}
		lv.Widths[i] = max(c.Width, 1)
	}
	for _, rec := range view.Page.Records {
		row := Row{ID: rec.ID(), Cells: make([]string, len(page.Columns))}
		for i, c := range page.Columns {
			row.Cells[i] = SanitizeForDisplay(c.Text(rec))
		}
		lv.Rows = append(lv.Rows, row)
	}
	return lv
}

// ColumnWidths spreads total cells over the relative weights, giving every
// column at least min cells.
func ColumnWidths(weights []int, total, minWidth int) []int {
	out := make([]int, len(weights))
	if len(weights) == 0 {
		return out
	}
	sum := 0
	for _, w := range weights {
		sum += max(w, 1)
	}
	used := 0
	for i, w := range weights {
		out[i] = max(total*max(w, 1)/sum, minWidth)
		used += out[i]
	}
	// Hand leftover cells to the last column.
	if used < total {
		out[len(out)-1] += total - used
	}
	return out
}
