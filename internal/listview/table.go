package listview

import (
	"slices"

	"github.com/Veraticus/bednights/internal/model"
)

// View is the derived state of a Table: the filtered and sorted collection and
// the page of it to render.
type View struct {
	Sorted []model.Record
	Page   Page
}

// Empty reports whether nothing survived filtering.
func (v View) Empty() bool {
	return len(v.Sorted) == 0
}

// Table holds the inputs of one list page (raw records, filters, sort, page) and
// recomputes the derived View only when one of them changes.
type Table struct {
	engine  Engine
	records []model.Record
	filters FilterSet
	sort    SortSpec
	page    int
	perPage int

	dirty       bool
	view        View
	generations int
}

// NewTable creates an empty table with an initial sort and page size.
func NewTable(engine Engine, initial SortSpec, perPage int) *Table {
	return &Table{
		engine:  engine,
		filters: FilterSet{},
		sort:    initial,
		perPage: perPage,
		dirty:   true,
	}
}

// Engine returns the table's engine.
func (t *Table) Engine() Engine {
	return t.engine
}

// SetRecords replaces the raw collection.
func (t *Table) SetRecords(records []model.Record) {
	t.records = records
	t.dirty = true
}

// Records returns the raw collection.
func (t *Table) Records() []model.Record {
	return t.records
}

// Filters returns a copy of the current filter selection.
func (t *Table) Filters() FilterSet {
	return t.filters.Clone()
}

// SetFilter sets the values selected for key. No values clears it.
func (t *Table) SetFilter(key string, values ...string) {
	if slices.Equal(t.filters.Values(key), FilterSet{key: values}.Values(key)) {
		return
	}
	if len(values) == 0 {
		delete(t.filters, key)
	} else {
		t.filters[key] = slices.Clone(values)
	}
	t.dirty = true
}

// ClearFilter removes any selection for key.
func (t *Table) ClearFilter(key string) {
	t.SetFilter(key)
}

// SetFilters replaces the whole selection.
func (t *Table) SetFilters(fs FilterSet) {
	if t.filters.Equal(fs) {
		return
	}
	t.filters = fs.Clone()
	if t.filters == nil {
		t.filters = FilterSet{}
	}
	t.dirty = true
}

// ResetFilters clears every selection.
func (t *Table) ResetFilters() {
	t.SetFilters(FilterSet{})
}

// Sort returns the active sort.
func (t *Table) Sort() SortSpec {
	return t.sort
}

// SetSort replaces the active sort.
func (t *Table) SetSort(spec SortSpec) {
	if spec == t.sort {
		return
	}
	t.sort = spec
	t.dirty = true
}

// ToggleSort applies a header click on field.
func (t *Table) ToggleSort(field string) {
	t.SetSort(ToggleSort(t.sort, field))
}

// SetPage moves to a 0-based page index. Out-of-range indexes reset to 0 on the
// next View.
func (t *Table) SetPage(page int) {
	if page == t.page {
		return
	}
	t.page = page
	t.dirty = true
}

// NextPage advances one page if there is one.
func (t *Table) NextPage() {
	if v := t.View(); v.Page.HasNext() {
		t.SetPage(v.Page.Current + 1)
	}
}

// PrevPage goes back one page if there is one.
func (t *Table) PrevPage() {
	if v := t.View(); v.Page.HasPrev() {
		t.SetPage(v.Page.Current - 1)
	}
}

// SetPerPage changes the page size.
func (t *Table) SetPerPage(n int) {
	if n == t.perPage {
		return
	}
	t.perPage = n
	t.dirty = true
}

// View returns the derived state, recomputing it only if an input changed.
func (t *Table) View() View {
	if !t.dirty {
		return t.view
	}
	filtered := t.engine.ApplyFilters(t.records, t.filters)
	sorted := t.engine.ApplySort(filtered, t.sort)
	page := Paginate(sorted, t.perPage, t.page)

	t.page = page.Current
	t.view = View{Sorted: sorted, Page: page}
	t.dirty = false
	t.generations++
	return t.view
}

// Generations counts how many times the view has been recomputed.
func (t *Table) Generations() int {
	return t.generations
}
