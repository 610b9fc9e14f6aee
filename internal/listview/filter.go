// Package listview turns a raw record collection into the filtered, sorted and
// paginated slice a list page renders.
package listview

import (
	"slices"
	"strings"
	"time"

	"github.com/Veraticus/bednights/internal/model"
)

// FilterSet maps a filter key to its selected values. A scalar selection is a
// one-element list; an absent key or an empty list means no constraint.
type FilterSet map[string][]string

// Active reports whether key carries at least one non-blank value.
func (fs FilterSet) Active(key string) bool {
	for _, v := range fs[key] {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// First returns the first non-blank value selected for key.
func (fs FilterSet) First(key string) string {
	for _, v := range fs[key] {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// Values returns the non-blank values selected for key.
func (fs FilterSet) Values(key string) []string {
	out := make([]string, 0, len(fs[key]))
	for _, v := range fs[key] {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Clone returns a deep copy.
func (fs FilterSet) Clone() FilterSet {
	out := make(FilterSet, len(fs))
	for k, v := range fs {
		out[k] = slices.Clone(v)
	}
	return out
}

// Without returns a copy with the given keys removed.
func (fs FilterSet) Without(keys ...string) FilterSet {
	out := fs.Clone()
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Only returns a copy restricted to the given keys.
func (fs FilterSet) Only(keys ...string) FilterSet {
	out := make(FilterSet, len(keys))
	for _, k := range keys {
		if v, ok := fs[k]; ok {
			out[k] = slices.Clone(v)
		}
	}
	return out
}

// Equal reports whether both sets constrain the same keys to the same values.
func (fs FilterSet) Equal(other FilterSet) bool {
	keys := make(map[string]struct{}, len(fs)+len(other))
	for k := range fs {
		keys[k] = struct{}{}
	}
	for k := range other {
		keys[k] = struct{}{}
	}
	for k := range keys {
		if !slices.Equal(fs.Values(k), other.Values(k)) {
			return false
		}
	}
	return true
}

// Filter is one predicate over a record, parameterized by the current FilterSet.
// Keys lists the filter keys the predicate reads; a filter with no active key is
// a no-op.
type Filter struct {
	Match func(rec model.Record, fs FilterSet) bool
	Keys  []string
}

// Active reports whether any of the filter's keys is set.
func (f Filter) Active(fs FilterSet) bool {
	for _, k := range f.Keys {
		if fs.Active(k) {
			return true
		}
	}
	return false
}

// Reads reports whether the filter depends on key.
func (f Filter) Reads(key string) bool {
	return slices.Contains(f.Keys, key)
}

// Exclusion removes a record unconditionally, before any user filter applies.
type Exclusion func(rec model.Record) bool

// ExcludeValue drops records whose field equals value.
func ExcludeValue(field, value string) Exclusion {
	return func(rec model.Record) bool {
		return rec.String(field) == value
	}
}

// IsNoValue reports whether s represents a missing value: empty, whitespace or "n/a".
func IsNoValue(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "n/a")
}

// Equal matches records whose field equals one of the selected values.
func Equal(key, field string) Filter {
	return Filter{
		Keys: []string{key},
		Match: func(rec model.Record, fs FilterSet) bool {
			return slices.Contains(fs.Values(key), strings.TrimSpace(rec.String(field)))
		},
	}
}

// OneOf matches records whose field is one of the selected values. Selecting
// sentinel matches records with no value (null, empty or "n/a").
func OneOf(key, field, sentinel string) Filter {
	return Filter{
		Keys: []string{key},
		Match: func(rec model.Record, fs FilterSet) bool {
			selected := fs.Values(key)
			value := strings.TrimSpace(rec.String(field))
			if IsNoValue(value) {
				return sentinel != "" && slices.Contains(selected, sentinel)
			}
			return slices.Contains(selected, value)
		},
	}
}

// Bool matches a boolean-ish field against "true" or "false".
func Bool(key, field string) Filter {
	return Filter{
		Keys: []string{key},
		Match: func(rec model.Record, fs FilterSet) bool {
			want := strings.EqualFold(fs.First(key), "true")
			return truthy(rec.Value(field)) == want
		},
	}
}

// StayOverlap matches records whose stay [inField, outField] overlaps the window
// [startKey, endKey], comparing calendar days so a timestamped check-in still
// falls on its date. A missing check-out counts as the check-in date and an
// unset or unparseable boundary is unbounded.
func StayOverlap(startKey, endKey, inField, outField string) Filter {
	return Filter{
		Keys: []string{startKey, endKey},
		Match: func(rec model.Record, fs FilterSet) bool {
			in, ok := rec.Time(inField)
			if !ok {
				return false
			}
			out, ok := rec.Time(outField)
			if !ok {
				out = in
			}
			in, out = calendarDay(in), calendarDay(out)
			if start, ok := model.ParseDate(fs.First(startKey)); ok && out.Before(calendarDay(start)) {
				return false
			}
			if end, ok := model.ParseDate(fs.First(endKey)); ok && in.After(calendarDay(end)) {
				return false
			}
			return true
		},
	}
}

// calendarDay drops the time of day, keeping the date as written.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Search matches records where any of fields contains the query, ignoring case.
func Search(key string, fields ...string) Filter {
	return Filter{
		Keys: []string{key},
		Match: func(rec model.Record, fs FilterSet) bool {
			query := strings.ToLower(fs.First(key))
			for _, f := range fields {
				if strings.Contains(strings.ToLower(rec.String(f)), query) {
					return true
				}
			}
			return false
		},
	}
}

func truthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val != 0
	case int:
		return val != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "1", "yes", "y", "active":
			return true
		}
	}
	return false
}
