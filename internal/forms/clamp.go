package forms

import (
	"fmt"
	"time"

	"github.com/Veraticus/bednights/internal/listview"
	"github.com/Veraticus/bednights/internal/model"
)

// Notice is a user-facing message about input that was adjusted. Empty means
// the input was used as given.
type Notice string

// Bounds is the inclusive range accepted for date input.
type Bounds struct {
	Min time.Time
	Max time.Time
}

// DefaultBounds accepts dates from 2000-01-01 through the end of next year.
func DefaultBounds(now time.Time) Bounds {
	return Bounds{
		Min: time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
		Max: time.Date(now.Year()+1, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// ClampDate parses value and pulls it into b. Malformed input becomes fallback,
// which should be the boundary nearest to the input's role.
func ClampDate(label, value string, b Bounds, fallback time.Time) (time.Time, Notice) {
	t, ok := model.ParseDate(value)
	switch {
	case !ok:
		return fallback, Notice(fmt.Sprintf("%s %q is not a date; using %s", label, value, fallback.Format(model.DateLayout)))
	case t.Before(b.Min):
		return b.Min, Notice(fmt.Sprintf("%s moved up to %s", label, b.Min.Format(model.DateLayout)))
	case t.After(b.Max):
		return b.Max, Notice(fmt.Sprintf("%s moved back to %s", label, b.Max.Format(model.DateLayout)))
	default:
		return t, ""
	}
}

// ClampRange clamps the date window held under startKey and endKey. Unset
// boundaries stay unset. A start after the end is moved to the end.
func ClampRange(fs listview.FilterSet, startKey, endKey string, b Bounds) (listview.FilterSet, []Notice) {
	out := fs.Clone()
	var notices []Notice

	var start, end time.Time
	if raw := fs.First(startKey); raw != "" {
		var n Notice
		start, n = ClampDate("Start date", raw, b, b.Min)
		out[startKey] = []string{start.Format(model.DateLayout)}
		notices = appendNotice(notices, n)
	}
	if raw := fs.First(endKey); raw != "" {
		var n Notice
		end, n = ClampDate("End date", raw, b, b.Max)
		out[endKey] = []string{end.Format(model.DateLayout)}
		notices = appendNotice(notices, n)
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		out[startKey] = []string{end.Format(model.DateLayout)}
		notices = append(notices, Notice("Start date moved to the end date"))
	}
	return out, notices
}

func appendNotice(notices []Notice, n Notice) []Notice {
	if n == "" {
		return notices
	}
	return append(notices, n)
}
