package viewmodel

import (
	"strings"

	"github.com/Veraticus/bednights/internal/filteropts"
	"github.com/Veraticus/bednights/internal/pages"
	"github.com/Veraticus/bednights/internal/service"
)

// AllOption is shown for a dropdown with nothing selected.
const AllOption = "All"

// FilterChip is one dropdown in the filter bar.
type FilterChip struct {
	Key     string
	Label   string
	Value   string
	Options int
	Focused bool
}

// FilterBar is the filter row above a list.
type FilterBar struct {
	Search string
	Start  string
	End    string
	Chips  []FilterChip
}

// Active reports whether anything narrows the list.
func (b FilterBar) Active() bool {
	if b.Search != "" || b.Start != "" || b.End != "" {
		return true
	}
	for _, c := range b.Chips {
		if c.Value != AllOption {
			return true
		}
	}
	return false
}

// BuildFilters describes the selection of state. focus is the index of the
// focused dropdown, or -1.
func BuildFilters(state *service.PageState, focus int) FilterBar {
	fs := state.Filters()
	bar := FilterBar{
		Search: fs.First(pages.KeySearch),
		Start:  fs.First(pages.KeyStartDate),
		End:    fs.First(pages.KeyEndDate),
	}
	options := state.Options()
	for i, f := range state.Dropdowns() {
		value := AllOption
		if selected := fs.Values(f.Key); len(selected) > 0 {
			value = strings.Join(selected, ", ")
		}
		bar.Chips = append(bar.Chips, FilterChip{
			Key:     f.Key,
			Label:   f.Label(),
			Value:   value,
			Options: len(options[f.Key]),
			Focused: i == focus,
		})
	}
	return bar
}

// CycleOption steps a single-value selection through "All" followed by each
// option, wrapping at both ends. A selection of several values, or of a value
// no longer offered, counts as "All". The result is nil for "All".
func CycleOption(options []filteropts.Option, current []string, step int) []string {
	pos := 0
	if len(current) == 1 {
		for i, o := range options {
			if o.Value == current[0] {
				pos = i + 1
				break
			}
		}
	}

	n := len(options) + 1
	pos = ((pos+step)%n + n) % n
	if pos == 0 {
		return nil
	}
	return []string{options[pos-1].Value}
}
