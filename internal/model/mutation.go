package model

import (
	"encoding/json"
)

// MutationResult is returned by PATCH and DELETE endpoints.
type MutationResult struct {
	Error         string `json:"error,omitempty"`
	Message       string `json:"message,omitempty"`
	InsertedCount int    `json:"inserted_count"`
	UpdatedCount  int    `json:"updated_count"`
}

// Failed reports whether the API signalled an error in the payload.
func (r MutationResult) Failed() bool {
	return r.Error != ""
}

// DeleteConflict is returned when a record still has dependent accommodation logs.
// Each affected log is a JSON-encoded record.
type DeleteConflict struct {
	Error        string   `json:"error"`
	AffectedLogs []string `json:"affected_logs"`
}

// AffectedRecords decodes the affected logs. Entries that are not JSON objects are
// kept under the "raw" field so nothing is dropped from the conflict report.
func (c DeleteConflict) AffectedRecords() []Record {
	out := make([]Record, 0, len(c.AffectedLogs))
	for _, raw := range c.AffectedLogs {
		var rec Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil || rec == nil {
			rec = Record{"raw": raw}
		}
		out = append(out, rec)
	}
	return out
}
