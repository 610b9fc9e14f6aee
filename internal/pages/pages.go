// Package pages declares, per entity, how its list page is laid out, filtered,
// sorted and edited.
package pages

import (
	"fmt"

	"github.com/Veraticus/bednights/internal/filteropts"
	"github.com/Veraticus/bednights/internal/listview"
	"github.com/Veraticus/bednights/internal/model"
)

// Filter keys shared by the pages.
const (
	KeySearch         = "q"
	KeyStartDate      = "start_date"
	KeyEndDate        = "end_date"
	KeyCountry        = "country"
	KeyPortfolio      = "portfolio"
	KeyProperty       = "property"
	KeyAgency         = "agency"
	KeyBookingChannel = "booking_channel"
	KeyActive         = "is_active"
)

// Fallback labels for records with no value in a dropdown's field.
const (
	NoAgency   = "No agency"
	NoCountry  = "No country"
	NoProperty = "No property"
	Direct     = "Direct"
)

// InternalChannel marks complimentary and internal travel, which never counts.
const InternalChannel = "FAM/TB Travel"

// Default page sizes.
const (
	EntityPerPage   = 15
	BedNightPerPage = 25
)

// Format selects how a column value is rendered.
type Format int

// Column formats.
const (
	FormatText Format = iota
	FormatNumber
	FormatDate
	FormatBool
)

// Column is one table column. Width is a relative weight.
type Column struct {
	Field  string
	Title  string
	Width  int
	Format Format
}

// FieldKind selects the input an edit field needs.
type FieldKind int

// Edit field kinds.
const (
	KindText FieldKind = iota
	KindNumber
	KindDate
	KindBool
)

// EditField is one input of the create/edit form.
type EditField struct {
	Field    string
	Label    string
	Kind     FieldKind
	Required bool
}

// Page is the declaration of one entity page.
type Page struct {
	Entity       model.Entity
	Columns      []Column
	SearchFields []string
	Filters      []listview.Filter
	Exclusions   []listview.Exclusion
	DefaultSort  listview.SortSpec
	PerPage      int
	EditFields   []EditField
	Dropdowns    []filteropts.Field
	QueryKeys    []string
}

// Title returns the page heading.
func (p Page) Title() string {
	return p.Entity.Title()
}

// ReadOnly reports whether the page offers no mutations.
func (p Page) ReadOnly() bool {
	return !p.Entity.Mutable() || len(p.EditFields) == 0
}

// Engine returns the list engine for the page.
func (p Page) Engine() listview.Engine {
	filters := make([]listview.Filter, 0, len(p.Filters)+1)
	if len(p.SearchFields) > 0 {
		filters = append(filters, listview.Search(KeySearch, p.SearchFields...))
	}
	filters = append(filters, p.Filters...)
	return listview.Engine{Filters: filters, Exclusions: p.Exclusions}
}

// NewTable returns an empty table with the page's default sort and size.
func (p Page) NewTable() *listview.Table {
	return listview.NewTable(p.Engine(), p.DefaultSort, p.PerPage)
}

// Deriver returns the dropdown option deriver, or nil for pages without dropdowns.
func (p Page) Deriver() (*filteropts.Deriver, error) {
	if len(p.Dropdowns) == 0 {
		return nil, nil
	}
	d, err := filteropts.NewDeriver(p.Engine(), p.Dropdowns)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", p.Entity, err)
	}
	return d, nil
}

// Column returns the column at a 0-based index.
func (p Page) Column(i int) (Column, bool) {
	if i < 0 || i >= len(p.Columns) {
		return Column{}, false
	}
	return p.Columns[i], true
}

// RequiredFields lists the fields a submitted record must carry.
func (p Page) RequiredFields() []string {
	var out []string
	for _, f := range p.EditFields {
		if f.Required {
			out = append(out, f.Field)
		}
	}
	return out
}

// For returns the page declared for an entity.
func For(e model.Entity) (Page, error) {
	build, ok := catalog[e]
	if !ok {
		return Page{}, fmt.Errorf("no page for entity %q", e)
	}
	return build(), nil
}

// All returns every page in dashboard tab order.
func All() []Page {
	out := make([]Page, 0, len(model.Entities))
	for _, e := range model.Entities {
		if build, ok := catalog[e]; ok {
			out = append(out, build())
		}
	}
	return out
}
