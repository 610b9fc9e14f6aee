package tui

import (
	"github.com/Veraticus/bednights/internal/model"
	"github.com/Veraticus/bednights/internal/service"
)

// loadedMsg delivers a fetched collection.
type loadedMsg struct {
	result service.LoadResult
}

// savedMsg reports the outcome of a create or update.
type savedMsg struct {
	err    error
	entity model.Entity
	result model.MutationResult
	isNew  bool
}

// deletedMsg reports the outcome of a delete.
type deletedMsg struct {
	err    error
	entity model.Entity
	id     string
	label  string
}
