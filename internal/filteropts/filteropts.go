// Package filteropts computes the option lists of interdependent filter
// dropdowns from a record collection and the current filter selection.
package filteropts

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Veraticus/bednights/internal/listview"
	"github.com/Veraticus/bednights/internal/model"
)

var (
	// ErrInvalidGraph is returned when a field declaration is inconsistent.
	ErrInvalidGraph = errors.New("invalid filter dependency graph")
	// ErrUnknownField is returned when options are requested for an undeclared field.
	ErrUnknownField = errors.New("unknown filter field")
)

// Option is one selectable dropdown entry.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field declares one dropdown.
//
// Key is the filter key the dropdown writes to and Source the record field its
// options come from. Records with no value in Source map to the Fallback option,
// or are skipped when Fallback is empty. Upstream lists the filter keys that
// narrow this field's options; nil means every other active filter narrows it.
type Field struct {
	Key      string
	Source   string
	Fallback string
	Upstream []string
}

// Label is the field's display name: "booking_channel" is "Booking channel".
func (f Field) Label() string {
	s := strings.ReplaceAll(f.Key, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (f Field) narrowsBy(filter listview.Filter) bool {
	if filter.Reads(f.Key) {
		return false
	}
	if f.Upstream == nil {
		return true
	}
	for _, k := range f.Upstream {
		if filter.Reads(k) {
			return true
		}
	}
	return false
}

// Deriver computes options for a fixed set of fields over an engine's filters.
type Deriver struct {
	engine listview.Engine
	fields []Field
	index  map[string]int
}

// NewDeriver validates the dependency graph declared by fields. Every key and
// upstream key must be read by one of the engine's filters, a field may not
// depend on itself and the graph must be acyclic.
func NewDeriver(engine listview.Engine, fields []Field) (*Deriver, error) {
	known := make(map[string]bool)
	for _, f := range engine.Filters {
		for _, k := range f.Keys {
			known[k] = true
		}
	}

	index := make(map[string]int, len(fields))
	for i, f := range fields {
		if f.Key == "" || f.Source == "" {
			return nil, fmt.Errorf("%w: field %d needs a key and a source", ErrInvalidGraph, i)
		}
		if _, dup := index[f.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrInvalidGraph, f.Key)
		}
		if !known[f.Key] {
			return nil, fmt.Errorf("%w: no filter reads %q", ErrInvalidGraph, f.Key)
		}
		for _, up := range f.Upstream {
			if up == f.Key {
				return nil, fmt.Errorf("%w: %q depends on itself", ErrInvalidGraph, f.Key)
			}
			if !known[up] {
				return nil, fmt.Errorf("%w: %q depends on unknown key %q", ErrInvalidGraph, f.Key, up)
			}
		}
		index[f.Key] = i
	}

	d := &Deriver{engine: engine, fields: slices.Clone(fields), index: index}
	if cycle := d.findCycle(); cycle != "" {
		return nil, fmt.Errorf("%w: cycle through %q", ErrInvalidGraph, cycle)
	}
	return d, nil
}

// findCycle walks explicit upstream edges between declared fields.
func (d *Deriver) findCycle() string {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(d.fields))

	var visit func(key string) string
	visit = func(key string) string {
		switch state[key] {
		case visiting:
			return key
		case done:
			return ""
		}
		state[key] = visiting
		for _, up := range d.fields[d.index[key]].Upstream {
			if _, declared := d.index[up]; !declared {
				continue
			}
			if c := visit(up); c != "" {
				return c
			}
		}
		state[key] = done
		return ""
	}

	for _, f := range d.fields {
		if c := visit(f.Key); c != "" {
			return c
		}
	}
	return ""
}

// Fields returns the declared fields in declaration order.
func (d *Deriver) Fields() []Field {
	return slices.Clone(d.fields)
}

// Derive computes the options of every declared field.
func (d *Deriver) Derive(records []model.Record, fs listview.FilterSet) map[string][]Option {
	out := make(map[string][]Option, len(d.fields))
	for _, f := range d.fields {
		out[f.Key] = d.derive(records, fs, f)
	}
	return out
}

// DeriveField computes the options of a single field.
func (d *Deriver) DeriveField(records []model.Record, fs listview.FilterSet, key string) ([]Option, error) {
	i, ok := d.index[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	return d.derive(records, fs, d.fields[i]), nil
}

func (d *Deriver) derive(records []model.Record, fs listview.FilterSet, f Field) []Option {
	subset := d.engine.ApplyFiltersWhere(records, fs, f.narrowsBy)

	seen := make(map[string]bool)
	var options []Option
	hasFallback := false
	for _, rec := range subset {
		value := strings.TrimSpace(rec.String(f.Source))
		if listview.IsNoValue(value) {
			if f.Fallback == "" {
				continue
			}
			value = f.Fallback
		}
		if seen[value] {
			continue
		}
		seen[value] = true
		if value == f.Fallback {
			hasFallback = true
			continue
		}
		options = append(options, Option{Value: value, Label: value})
	}

	slices.SortStableFunc(options, func(a, b Option) int {
		return d.engine.CompareStrings(a.Label, b.Label)
	})
	if hasFallback {
		options = append([]Option{{Value: f.Fallback, Label: f.Fallback}}, options...)
	}
	if options == nil {
		options = []Option{}
	}
	return options
}

// Prune drops selected values that are no longer offered by their dropdown. It
// returns the pruned copy and whether anything was dropped. Keys without
// derived options are left alone.
func Prune(fs listview.FilterSet, options map[string][]Option) (listview.FilterSet, bool) {
	out := fs.Clone()
	changed := false
	for key, opts := range options {
		selected := fs.Values(key)
		if len(selected) == 0 {
			continue
		}
		kept := make([]string, 0, len(selected))
		for _, v := range selected {
			if slices.ContainsFunc(opts, func(o Option) bool { return o.Value == v }) {
				kept = append(kept, v)
			}
		}
		if len(kept) == len(selected) {
			continue
		}
		changed = true
		if len(kept) == 0 {
			delete(out, key)
		} else {
			out[key] = kept
		}
	}
	return out, changed
}

// Labels returns the option labels, for prompts and tests.
func Labels(options []Option) []string {
	out := make([]string, len(options))
	for i, o := range options {
		out[i] = o.Label
	}
	return out
}
