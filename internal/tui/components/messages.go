package components

import "github.com/Veraticus/bednights/internal/model"

// FormSubmittedMsg carries the record entered in a form.
type FormSubmittedMsg struct {
	Record model.Record
	New    bool
}

// FormCancelledMsg closes a form without saving.
type FormCancelledMsg struct{}

// ConfirmedMsg answers yes to a confirmation dialog.
type ConfirmedMsg struct {
	ID string
}

// DialogClosedMsg closes a dialog without acting on it.
type DialogClosedMsg struct{}

// SearchSubmittedMsg applies a search query. An empty query clears the search.
type SearchSubmittedMsg struct {
	Query string
}

// SearchCancelledMsg leaves search without changing it.
type SearchCancelledMsg struct{}
