// Package model defines the records exchanged with the operations API.
package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Record is one entity instance as a flat field map, exactly as the API returns it.
// Records are treated as read-only once loaded; use Clone before editing.
type Record map[string]any

// Date layouts accepted for date fields.
const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// ID returns the record identifier as a string.
func (r Record) ID() string {
	return r.String("id")
}

// Value returns the raw value stored under field.
func (r Record) Value(field string) any {
	if r == nil {
		return nil
	}
	return r[field]
}

// String returns the field rendered as a string. Missing and null values are "".
func (r Record) String(field string) string {
	return Stringify(r.Value(field))
}

// Number returns the field as a float64 when it holds a number or a numeric string.
func (r Record) Number(field string) (float64, bool) {
	return ToNumber(r.Value(field))
}

// Time parses the field as a date or RFC 3339 timestamp.
func (r Record) Time(field string) (time.Time, bool) {
	return ParseDate(r.String(field))
}

// IsBlank reports whether the field is missing, null or whitespace.
func (r Record) IsBlank(field string) bool {
	return strings.TrimSpace(r.String(field)) == ""
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Stringify renders a JSON-decoded value for display and comparison.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// ToNumber converts numbers and numeric strings to float64.
func ToNumber(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// ParseDate accepts YYYY-MM-DD and RFC 3339 timestamps.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if len(s) >= len(DateLayout) {
		if t, err := time.Parse(DateLayout, s[:len(DateLayout)]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
