// Package urlstate round-trips a filter selection through a query string.
// List values are joined with a pipe.
package urlstate

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Veraticus/bednights/internal/listview"
)

// Delimiter separates list values inside one query parameter.
const Delimiter = "|"

// Encode serializes the selected values of keys. Unset keys are omitted and the
// output is ordered by key.
func Encode(fs listview.FilterSet, keys []string) string {
	q := url.Values{}
	for _, k := range keys {
		if values := fs.Values(k); len(values) > 0 {
			q.Set(k, strings.Join(values, Delimiter))
		}
	}
	return q.Encode()
}

// Decode reads keys from a raw query string. A leading "?" is ignored and
// parameters outside keys are dropped.
func Decode(rawQuery string, keys []string) (listview.FilterSet, error) {
	q, err := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse query %q: %w", rawQuery, err)
	}

	fs := listview.FilterSet{}
	for _, k := range keys {
		var values []string
		for _, v := range strings.Split(q.Get(k), Delimiter) {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
		if len(values) > 0 {
			fs[k] = values
		}
	}
	return fs, nil
}

// Merge overlays the persisted keys of a decoded query onto fs.
func Merge(fs, decoded listview.FilterSet, keys []string) listview.FilterSet {
	out := fs.Without(keys...)
	for _, k := range keys {
		if values := decoded.Values(k); len(values) > 0 {
			out[k] = values
		}
	}
	return out
}
