// Package forms validates create/edit submissions and clamps date input.
package forms

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/bednights/internal/common"
	"github.com/Veraticus/bednights/internal/model"
	"github.com/Veraticus/bednights/internal/pages"
)

// ValidationError lists the fields that blocked a submission.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid fields: "+strings.Join(e.Invalid, ", "))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return common.ErrValidation
}

// Validate checks required fields are present and typed fields parse.
func Validate(page pages.Page, rec model.Record) error {
	var verr ValidationError
	for _, f := range page.EditFields {
		if rec.IsBlank(f.Field) {
			if f.Required {
				verr.Missing = append(verr.Missing, f.Label)
			}
			continue
		}
		if !parses(f.Kind, rec.Value(f.Field)) {
			verr.Invalid = append(verr.Invalid, f.Label)
		}
	}
	if len(verr.Missing) > 0 || len(verr.Invalid) > 0 {
		return &verr
	}
	return nil
}

func parses(kind pages.FieldKind, v any) bool {
	switch kind {
	case pages.KindNumber:
		_, ok := model.ToNumber(v)
		return ok
	case pages.KindDate:
		_, ok := model.ParseDate(model.Stringify(v))
		return ok
	case pages.KindBool:
		if _, ok := v.(bool); ok {
			return true
		}
		_, err := strconv.ParseBool(strings.TrimSpace(model.Stringify(v)))
		return err == nil
	default:
		return true
	}
}

// Coerce returns a copy of rec with typed edit fields converted to their JSON
// types and blank optional fields removed. Call Validate first.
func Coerce(page pages.Page, rec model.Record) model.Record {
	out := rec.Clone()
	for _, f := range page.EditFields {
		if rec.IsBlank(f.Field) {
			if _, present := rec[f.Field]; present && !f.Required {
				out[f.Field] = nil
			}
			continue
		}
		v := rec.Value(f.Field)
		switch f.Kind {
		case pages.KindNumber:
			if n, ok := model.ToNumber(v); ok {
				out[f.Field] = n
			}
		case pages.KindDate:
			if t, ok := model.ParseDate(model.Stringify(v)); ok {
				out[f.Field] = t.Format(model.DateLayout)
			}
		case pages.KindBool:
			if b, err := strconv.ParseBool(strings.TrimSpace(model.Stringify(v))); err == nil {
				out[f.Field] = b
			}
		default:
			out[f.Field] = strings.TrimSpace(model.Stringify(v))
		}
	}
	return out
}

// ParseAssignments turns "field=value" arguments into a record. A value of
// "null" sends an explicit null.
func ParseAssignments(args []string) (model.Record, error) {
	rec := model.Record{}
	for _, arg := range args {
		field, value, ok := strings.Cut(arg, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, fmt.Errorf("assignment %q must look like field=value: %w", arg, common.ErrValidation)
		}
		if value == "null" {
			rec[field] = nil
			continue
		}
		rec[field] = value
	}
	return rec, nil
}
