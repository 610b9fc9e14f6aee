package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/bednights/internal/model"
	"github.com/Veraticus/bednights/internal/pages"
)

// load fetches an entity collection.
func (m Model) load(entity model.Entity) tea.Cmd {
	loader, ctx := m.config.Loader, m.ctx
	return func() tea.Msg {
		return loadedMsg{result: loader.Load(ctx, entity)}
	}
}

// save upserts rec through the mutator.
func (m Model) save(page pages.Page, rec model.Record, isNew bool) tea.Cmd {
	mutator, ctx := m.config.Mutator, m.ctx
	return func() tea.Msg {
		res, err := mutator.Save(ctx, page, rec)
		return savedMsg{entity: page.Entity, result: res, err: err, isNew: isNew}
	}
}

// remove deletes the record with id.
func (m Model) remove(entity model.Entity, id, label string) tea.Cmd {
	mutator, ctx := m.config.Mutator, m.ctx
	return func() tea.Msg {
		_, err := mutator.Delete(ctx, entity, id)
		return deletedMsg{entity: entity, id: id, label: label, err: err}
	}
}
