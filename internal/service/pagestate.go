package service

import (
	"fmt"
	"slices"
	"time"

	"golang.org/x/text/language"

	"github.com/Veraticus/bednights/internal/filteropts"
	"github.com/Veraticus/bednights/internal/forms"
	"github.com/Veraticus/bednights/internal/listview"
	"github.com/Veraticus/bednights/internal/model"
	"github.com/Veraticus/bednights/internal/pages"
	"github.com/Veraticus/bednights/internal/report"
	"github.com/Veraticus/bednights/internal/urlstate"
)

// PageState is one live list page: its declaration, the table holding records
// and selection, and the dropdown deriver. The console and the commands both
// drive pages through it.
type PageState struct {
	Page      pages.Page
	table     *listview.Table
	deriver   *filteropts.Deriver
	bounds    forms.Bounds
	fetchedAt time.Time
	loadErr   error
	stale     bool
}

// NewPageState builds the state for page, collating with lang and clamping
// date filters into bounds.
func NewPageState(page pages.Page, lang language.Tag, bounds forms.Bounds) (*PageState, error) {
	engine := page.Engine()
	engine.Language = lang

	s := &PageState{
		Page:   page,
		table:  listview.NewTable(engine, page.DefaultSort, page.PerPage),
		bounds: bounds,
	}
	if len(page.Dropdowns) > 0 {
		d, err := filteropts.NewDeriver(engine, page.Dropdowns)
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", page.Entity, err)
		}
		s.deriver = d
	}
	return s, nil
}

// Table exposes the underlying table for sort and paging.
func (s *PageState) Table() *listview.Table {
	return s.table
}

// View returns the current derived view.
func (s *PageState) View() listview.View {
	return s.table.View()
}

// Load replaces the records with a load result. Dropdown values that no longer
// occur anywhere in the new records are dropped; a value that only another
// selection excludes is kept. An empty load keeps the whole selection.
func (s *PageState) Load(r LoadResult) []forms.Notice {
	s.table.SetRecords(r.Records)
	s.fetchedAt = r.FetchedAt
	s.loadErr = r.Err
	s.stale = r.Stale

	fs := s.table.Filters()
	var notices []forms.Notice
	if s.deriver != nil && len(r.Records) > 0 {
		pruned, changed := filteropts.Prune(fs, s.deriver.Derive(r.Records, listview.FilterSet{}))
		if changed {
			for _, f := range s.deriver.Fields() {
				if removed := len(fs.Values(f.Key)) - len(pruned.Values(f.Key)); removed > 0 {
					notices = append(notices, forms.Notice(fmt.Sprintf("Cleared %d %s selection(s) no longer in the data", removed, f.Label())))
				}
			}
			fs = pruned
		}
	}
	return append(notices, s.SetFilters(fs)...)
}

// Status reports when the records were fetched, whether they come from a
// snapshot, and the fetch error if any.
func (s *PageState) Status() (time.Time, bool, error) {
	return s.fetchedAt, s.stale, s.loadErr
}

// SetFilters replaces the selection, clamping the date bounds. Dropdown values
// are kept as given, so contradictory selections yield an empty view.
func (s *PageState) SetFilters(fs listview.FilterSet) []forms.Notice {
	fs, notices := forms.ClampRange(fs, pages.KeyStartDate, pages.KeyEndDate, s.bounds)
	s.table.SetFilters(fs)
	return notices
}

// SetFilter sets one key and re-validates the whole selection.
func (s *PageState) SetFilter(key string, values ...string) []forms.Notice {
	fs := s.table.Filters()
	if len(values) == 0 {
		delete(fs, key)
	} else {
		fs[key] = slices.Clone(values)
	}
	return s.SetFilters(fs)
}

// Filters returns a copy of the current selection.
func (s *PageState) Filters() listview.FilterSet {
	return s.table.Filters()
}

// Options derives the dropdown options for the current selection. Pages
// without dropdowns return nil.
func (s *PageState) Options() map[string][]filteropts.Option {
	if s.deriver == nil {
		return nil
	}
	return s.deriver.Derive(s.table.Records(), s.table.Filters())
}

// Dropdowns returns the page's dropdown fields in display order.
func (s *PageState) Dropdowns() []filteropts.Field {
	if s.deriver == nil {
		return nil
	}
	return s.deriver.Fields()
}

// FilterKeys lists every key read by the page's filters.
func (s *PageState) FilterKeys() []string {
	var keys []string
	for _, f := range s.table.Engine().Filters {
		for _, k := range f.Keys {
			if !slices.Contains(keys, k) {
				keys = append(keys, k)
			}
		}
	}
	return keys
}

// Query encodes the persisted part of the selection.
func (s *PageState) Query() string {
	return urlstate.Encode(s.table.Filters(), s.Page.QueryKeys)
}

// ApplyQuery overlays keys decoded from rawQuery onto the selection.
func (s *PageState) ApplyQuery(rawQuery string, keys []string) ([]forms.Notice, error) {
	decoded, err := urlstate.Decode(rawQuery, keys)
	if err != nil {
		return nil, err
	}
	return s.SetFilters(urlstate.Merge(s.table.Filters(), decoded, keys)), nil
}

// Report aggregates the filtered records.
func (s *PageState) Report() report.Report {
	return report.Aggregate(s.table.View().Sorted, report.DefaultConfig())
}

// Find returns the loaded record with id.
func (s *PageState) Find(id string) (model.Record, bool) {
	for _, rec := range s.table.Records() {
		if rec.ID() == id {
			return rec, true
		}
	}
	return nil, false
}
