package api

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/Veraticus/bednights/internal/common"
	"github.com/Veraticus/bednights/internal/model"
)

// MaxConflictDetail caps the dependent records listed in a conflict message.
const MaxConflictDetail = 10

// APIError is a failed response or a payload carrying an error. Body holds the
// complete response body of a failed response; only Error shortens it.
type APIError struct {
	Method  string
	Path    string
	Message string
	Status  int
	Body    []byte
}

func (e *APIError) Error() string {
	msg := e.Message
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody] + "…"
	}
	if e.Status > 0 {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, msg)
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.Path, msg)
}

// Unwrap maps the status onto the common sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return common.ErrUnauthorized
	case http.StatusForbidden:
		return common.ErrForbidden
	case http.StatusNotFound:
		return common.ErrNotFound
	case http.StatusConflict:
		return common.ErrConflict
	default:
		return common.ErrAPIFailure
	}
}

func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// ConflictError reports a delete refused because other records depend on the target.
type ConflictError struct {
	Entity   model.Entity
	ID       string
	Conflict model.DeleteConflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("cannot delete %s %s: %d dependent records", e.Entity, e.ID, len(e.Conflict.AffectedLogs))
}

func (e *ConflictError) Unwrap() error {
	return common.ErrConflict
}

// Detail renders the conflict for the user: the server message followed by up to
// MaxConflictDetail dependent records and a count of the rest.
func (e *ConflictError) Detail() string {
	var b strings.Builder
	msg := e.Conflict.Error
	if msg == "" {
		msg = "Record is still referenced"
	}
	b.WriteString(msg)

	affected := e.Conflict.AffectedRecords()
	for i, rec := range affected {
		if i == MaxConflictDetail {
			fmt.Fprintf(&b, "\n… and %d more", len(affected)-MaxConflictDetail)
			break
		}
		b.WriteString("\n- ")
		b.WriteString(Summarize(rec))
	}
	return b.String()
}

var summaryFields = []string{"id", "name", "property_name", "date_in", "date_out", "bed_nights"}

// Summarize renders a record on one line.
func Summarize(rec model.Record) string {
	if raw, ok := rec["raw"]; ok && len(rec) == 1 {
		return model.Stringify(raw)
	}

	var parts []string
	for _, f := range summaryFields {
		if !rec.IsBlank(f) {
			parts = append(parts, f+": "+rec.String(f))
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}

	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+": "+rec.String(k))
	}
	return strings.Join(parts, ", ")
}

// IsConflict reports whether err is a delete conflict.
func IsConflict(err error) bool {
	var conflict *ConflictError
	return errors.As(err, &conflict)
}
