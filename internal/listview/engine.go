package listview

import (
	"sort"

	"github.com/Veraticus/bednights/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Engine applies a page's exclusions, filters and sort order to raw records.
// It never mutates the records it is given.
type Engine struct {
	Language   language.Tag
	Filters    []Filter
	Exclusions []Exclusion
}

// ApplyFilters keeps records that survive every exclusion and every active filter.
func (e Engine) ApplyFilters(records []model.Record, fs FilterSet) []model.Record {
	return e.ApplyFiltersWhere(records, fs, nil)
}

// ApplyFiltersWhere is ApplyFilters restricted to the filters for which use
// returns true. Exclusions always apply. A nil use applies every filter.
func (e Engine) ApplyFiltersWhere(records []model.Record, fs FilterSet, use func(Filter) bool) []model.Record {
	active := make([]Filter, 0, len(e.Filters))
	for _, f := range e.Filters {
		if f.Match == nil || !f.Active(fs) {
			continue
		}
		if use != nil && !use(f) {
			continue
		}
		active = append(active, f)
	}

	out := make([]model.Record, 0, len(records))
	for _, rec := range records {
		if e.excluded(rec) {
			continue
		}
		keep := true
		for _, f := range active {
			if !f.Match(rec, fs) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, rec)
		}
	}
	return out
}

func (e Engine) excluded(rec model.Record) bool {
	for _, ex := range e.Exclusions {
		if ex(rec) {
			return true
		}
	}
	return false
}

// ApplySort returns a stably sorted copy of records.
func (e Engine) ApplySort(records []model.Record, spec SortSpec) []model.Record {
	out := make([]model.Record, len(records))
	copy(out, records)
	if spec.Field == "" {
		return out
	}

	cmp := e.Comparator()
	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i].Value(spec.Field), out[j].Value(spec.Field))
		if !spec.Ascending {
			c = -c
		}
		return c < 0
	})
	return out
}

// Comparator returns the value ordering used for sorting: missing values are the
// empty string, two numbers compare numerically and anything else compares as
// strings under the engine's locale collation.
func (e Engine) Comparator() func(a, b any) int {
	coll := e.collator()
	return func(a, b any) int {
		an, aok := numeric(a)
		bn, bok := numeric(b)
		if aok && bok {
			switch {
			case an < bn:
				return -1
			case an > bn:
				return 1
			default:
				return 0
			}
		}
		return coll.CompareString(model.Stringify(a), model.Stringify(b))
	}
}

// CompareStrings orders two labels under the engine's collation.
func (e Engine) CompareStrings(a, b string) int {
	return e.collator().CompareString(a, b)
}

func (e Engine) collator() *collate.Collator {
	tag := e.Language
	if tag == language.Und {
		tag = language.English
	}
	return collate.New(tag)
}

func numeric(v any) (float64, bool) {
	if _, isBool := v.(bool); isBool {
		return 0, false
	}
	return model.ToNumber(v)
}
