package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/bednights/internal/api"
	"github.com/Veraticus/bednights/internal/auth"
	"github.com/Veraticus/bednights/internal/forms"
	"github.com/Veraticus/bednights/internal/model"
	"github.com/Veraticus/bednights/internal/pages"
	"github.com/Veraticus/bednights/internal/service"
	tuitest "github.com/Veraticus/bednights/internal/tui/testing"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeLoader struct {
	mu      sync.Mutex
	results map[model.Entity]service.LoadResult
	calls   []model.Entity
}

func (f *fakeLoader) Load(_ context.Context, entity model.Entity) service.LoadResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, entity)
	if r, ok := f.results[entity]; ok {
		return r
	}
	return service.LoadResult{Entity: entity, Records: []model.Record{}, FetchedAt: testNow}
}

func (f *fakeLoader) Calls() []model.Entity {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Entity(nil), f.calls...)
}

type fakeMutator struct {
	mu        sync.Mutex
	saveErr   error
	deleteErr error
	saved     []model.Record
	deleted   []string
}

func (f *fakeMutator) Save(_ context.Context, _ pages.Page, rec model.Record) (model.MutationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, rec)
	if f.saveErr != nil {
		return model.MutationResult{}, f.saveErr
	}
	return model.MutationResult{InsertedCount: 1}, nil
}

func (f *fakeMutator) Delete(_ context.Context, _ model.Entity, id string) (model.MutationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return model.MutationResult{}, f.deleteErr
}

func countries() []model.Record {
	return []model.Record{
		{"id": "1", "name": "Kenya", "code": "KE"},
		{"id": "2", "name": "Tanzania", "code": "TZ"},
		{"id": "3", "name": "Uganda", "code": "UG"},
	}
}

func stays() []model.Record {
	return []model.Record{
		{"id": "1", "country_name": "Kenya", "property_name": "Mara Camp", "bed_nights": 4.0, "date_in": "2024-01-02", "date_out": "2024-01-06"},
		{"id": "2", "country_name": "Kenya", "property_name": "Lamu House", "bed_nights": 2.0, "date_in": "2024-02-10", "date_out": "2024-02-12"},
		{"id": "3", "country_name": "Tanzania", "property_name": "Serengeti Lodge", "bed_nights": 1200.0, "date_in": "2024-03-01", "date_out": "2024-03-04"},
	}
}

func newLoader(records map[model.Entity][]model.Record) *fakeLoader {
	l := &fakeLoader{results: map[model.Entity]service.LoadResult{}}
	for e, recs := range records {
		l.results[e] = service.LoadResult{Entity: e, Records: recs, FetchedAt: testNow}
	}
	return l
}

func mustPages(t *testing.T, entities ...model.Entity) []pages.Page {
	t.Helper()
	out := make([]pages.Page, 0, len(entities))
	for _, e := range entities {
		p, err := pages.For(e)
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

// start builds a dashboard with countries and the report, runs Init and
// delivers the first load.
func start(t *testing.T, loader *fakeLoader, opts ...Option) *tuitest.Driver {
	t.Helper()
	cfg := defaultConfig()
	for _, opt := range append([]Option{
		WithLoader(loader),
		WithPages(mustPages(t, model.EntityCountries, model.EntityBedNightReport)...),
		WithSize(120, 40),
		WithToastTTL(time.Minute),
		WithClock(func() time.Time { return testNow }),
		WithSession(auth.New("", auth.RoleViewer, "viewer@example.com", "")),
	}, opts...) {
		opt(&cfg)
	}

	m, err := newModel(context.Background(), cfg)
	require.NoError(t, err)

	d := tuitest.NewDriver(m)
	if cmd := m.Init(); cmd != nil {
		d.Send(cmd())
	}
	return d
}

func asAdmin() Option {
	return WithSession(auth.New("token", auth.RoleAdmin, "admin@example.com", ""))
}

func current(d *tuitest.Driver) Model {
	return d.Model.(Model)
}

func TestModel_LoadsFirstTab(t *testing.T) {
	loader := newLoader(map[model.Entity][]model.Record{model.EntityCountries: countries()})
	d := start(t, loader)

	view := d.View()
	assert.True(t, tuitest.ContainsInOrder(view, "Name ▲", "Kenya", "Tanzania", "Uganda"))
	assert.Contains(t, view, "Page 1 of 1 (3 records)")
	assert.Contains(t, view, "[1]")
	assert.Contains(t, view, "viewer@example.com (viewer)")
	assert.Contains(t, view, "Updated just now")
	assert.Equal(t, []model.Entity{model.EntityCountries}, loader.Calls())
}

func TestModel_TabSwitchLoadsLazily(t *testing.T) {
	loader := newLoader(map[model.Entity][]model.Record{
		model.EntityCountries:      countries(),
		model.EntityBedNightReport: stays(),
	})
	d := start(t, loader)

	d.Send(tuitest.KeyTab()).Settle(3)
	assert.Equal(t, []model.Entity{model.EntityCountries, model.EntityBedNightReport}, loader.Calls())
	assert.Contains(t, d.View(), "Total bed nights: 1,206")

	d.Send(tuitest.KeyShiftTab()).Settle(3)
	assert.Len(t, loader.Calls(), 2, "loaded tabs are not fetched again")
	assert.Contains(t, d.View(), "Kenya")
}

func TestModel_SortByColumn(t *testing.T) {
	d := start(t, newLoader(map[model.Entity][]model.Record{model.EntityCountries: countries()}))

	d.Send(tuitest.KeyPress("1"))
	view := d.View()
	assert.Contains(t, view, "Name ▼")
	assert.True(t, tuitest.ContainsInOrder(view, "Uganda", "Tanzania", "Kenya"))

	d.Send(tuitest.KeyPress("2"))
	assert.Contains(t, d.View(), "Code ▲")

	d.Send(tuitest.KeyPress("9"))
	assert.Contains(t, d.View(), "Code ▲", "a missing column is ignored")
}

func TestModel_Search(t *testing.T) {
	d := start(t, newLoader(map[model.Entity][]model.Record{model.EntityCountries: countries()}))

	d.Send(tuitest.KeyPress("/"))
	assert.Equal(t, ModeSearch, current(d).mode)

	d.Type("tan").Send(tuitest.KeyEnter()).Settle(3)
	view := d.View()
	assert.Equal(t, ModeBrowse, current(d).mode)
	assert.Contains(t, view, "Tanzania")
	assert.NotContains(t, view, "Kenya")
	assert.Contains(t, view, "/ tan")

	d.Send(tuitest.KeyPress("r")).Settle(3)
	assert.Contains(t, d.View(), "Kenya")
	assert.Contains(t, d.View(), "Filters cleared")
}

func TestModel_NoResults(t *testing.T) {
	d := start(t, newLoader(map[model.Entity][]model.Record{model.EntityCountries: countries()}))

	d.Send(tuitest.KeyPress("/")).Type("atlantis").Send(tuitest.KeyEnter()).Settle(3)
	assert.Contains(t, d.View(), "No results")
	assert.NotContains(t, d.View(), "Page 1 of")
}

func TestModel_DropdownCycle(t *testing.T) {
	d := start(t, newLoader(map[model.Entity][]model.Record{model.EntityBedNightReport: stays()}))
	d.Send(tuitest.KeyTab()).Settle(3)

	d.Send(tuitest.KeyPress("]"))
	assert.Contains(t, d.View(), "Press f to pick a dropdown first")

	d.Send(tuitest.KeyPress("f"))
	assert.Equal(t, 0, current(d).focus)
	assert.Contains(t, d.View(), "◂ Country: All ▸")

	d.Send(tuitest.KeyPress("]"))
	view := d.View()
	assert.Contains(t, view, "◂ Country: Kenya ▸")
	assert.Contains(t, view, "Total bed nights: 6")

	d.Send(tuitest.KeyPress("["))
	assert.Contains(t, d.View(), "Total bed nights: 1,206")
}

func TestModel_FocusCyclesBackToNone(t *testing.T) {
	d := start(t, newLoader(map[model.Entity][]model.Record{model.EntityBedNightReport: stays()}))
	d.Send(tuitest.KeyTab()).Settle(3)

	dropdowns := len(current(d).current().state.Dropdowns())
	for range dropdowns + 1 {
		d.Send(tuitest.KeyPress("f"))
	}
	assert.Equal(t, -1, current(d).focus)

	d.Send(tuitest.KeyShiftTab())
	d.Send(tuitest.KeyPress("f"))
	assert.Contains(t, d.View(), "Countries has no dropdown filters")
}

func TestModel_Pagination(t *testing.T) {
	records := make([]model.Record, 20)
	for i := range records {
		records[i] = model.Record{"id": fmt.Sprint(i + 1), "name": fmt.Sprintf("Country %02d", i+1)}
	}
	d := start(t, newLoader(map[model.Entity][]model.Record{model.EntityCountries: records}))

	assert.Contains(t, d.View(), "Page 1 of 2 (20 records)")

	d.Send(tuitest.KeyRight())
	view := d.View()
	assert.Contains(t, view, "Page 2 of 2 (20 records)")
	assert.Contains(t, view, "Country 16")
	assert.Contains(t, view, "[2]")

	d.Send(tuitest.KeyLeft())
	assert.Contains(t, d.View(), "Page 1 of 2")
}

func TestModel_NarrowTerminal(t *testing.T) {
	d := start(t, newLoader(map[model.Entity][]model.Record{model.EntityCountries: countries()}))

	d.Send(tuitest.WindowSize(60, 30))
	view := d.View()
	assert.Contains(t, view, "‹ Countries 1/2 ›")
	assert.Contains(t, view, "▸ Kenya")
	assert.Contains(t, view, "Code")
}

func TestModel_EditingNeedsAdmin(t *testing.T) {
	tests := []struct {
		name string
		want string
		opts []Option
		tab  bool
	}{
		{name: "viewer", want: "cannot modify records"},
		{name: "read-only page", opts: []Option{asAdmin(), WithMutator(&fakeMutator{})}, tab: true, want: "Bed Night Report is read-only"},
		{name: "no mutator", opts: []Option{asAdmin()}, want: "editing is not available"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := start(t, newLoader(map[model.Entity][]model.Record{model.EntityCountries: countries()}), tt.opts...)
			if tt.tab {
				d.Send(tuitest.KeyTab()).Settle(3)
			}
			d.Send(tuitest.KeyPress("n"))
			assert.Equal(t, ModeBrowse, current(d).mode)
			assert.Contains(t, d.View(), tt.want)
		})
	}
}

func TestModel_CreateRecord(t *testing.T) {
	loader := newLoader(map[model.Entity][]model.Record{model.EntityCountries: countries()})
	mutator := &fakeMutator{}
	d := start(t, loader, asAdmin(), WithMutator(mutator))

	d.Send(tuitest.KeyPress("n"))
	require.Equal(t, ModeForm, current(d).mode)
	assert.Contains(t, d.View(), "New Countries")

	d.Type("Rwanda").Send(tuitest.KeyTab()).Type("RW").Send(tuitest.KeyEnter()).Settle(5)

	require.Len(t, mutator.saved, 1)
	assert.Equal(t, model.Record{"name": "Rwanda", "code": "RW"}, mutator.saved[0])
	assert.Equal(t, ModeBrowse, current(d).mode)
	assert.Contains(t, d.View(), "Created Countries")
	assert.Len(t, loader.Calls(), 2, "a save reloads the page")
}

func TestModel_EditRecord(t *testing.T) {
	mutator := &fakeMutator{}
	d := start(t, newLoader(map[model.Entity][]model.Record{model.EntityCountries: countries()}), asAdmin(), WithMutator(mutator))

	d.Send(tuitest.KeyDown(), tuitest.KeyPress("e"))
	require.Equal(t, ModeForm, current(d).mode)
	assert.Contains(t, d.View(), "Edit Countries")

	d.Send(tuitest.KeyCtrl("s")).Settle(5)
	require.Len(t, mutator.saved, 1)
	assert.Equal(t, "2", mutator.saved[0].ID())
	assert.Equal(t, "Tanzania", mutator.saved[0]["name"])
	assert.Contains(t, d.View(), "Updated Countries")
}

func TestModel_SaveErrorKeepsForm(t *testing.T) {
	mutator := &fakeMutator{saveErr: &forms.ValidationError{Missing: []string{"Code"}}}
	d := start(t, newLoader(map[model.Entity][]model.Record{model.EntityCountries: countries()}), asAdmin(), WithMutator(mutator))

	d.Send(tuitest.KeyPress("n")).Type("Rwanda").Send(tuitest.KeyCtrl("s")).Settle(5)

	assert.Equal(t, ModeForm, current(d).mode)
	view := d.View()
	assert.Contains(t, view, "Save failed: missing required fields: Code")

	d.Send(tuitest.KeyEsc()).Settle(3)
	assert.Equal(t, ModeBrowse, current(d).mode)
}

func TestModel_Delete(t *testing.T) {
	loader := newLoader(map[model.Entity][]model.Record{model.EntityCountries: countries()})
	mutator := &fakeMutator{}
	d := start(t, loader, asAdmin(), WithMutator(mutator))

	d.Send(tuitest.KeyPress("d"))
	require.Equal(t, ModeDialog, current(d).mode)
	assert.Contains(t, d.View(), "Delete from Countries?")
	assert.Contains(t, d.View(), "id: 1, name: Kenya")

	d.Send(tuitest.KeyPress("n")).Settle(3)
	assert.Equal(t, ModeBrowse, current(d).mode)
	assert.Empty(t, mutator.deleted)

	d.Send(tuitest.KeyPress("d"), tuitest.KeyPress("y")).Settle(5)
	assert.Equal(t, []string{"1"}, mutator.deleted)
	assert.Contains(t, d.View(), "Deleted id: 1, name: Kenya")
	assert.Len(t, loader.Calls(), 2)
}

func TestModel_DeleteConflict(t *testing.T) {
	mutator := &fakeMutator{deleteErr: &api.ConflictError{
		Entity: model.EntityCountries,
		ID:     "1",
		Conflict: model.DeleteConflict{
			Error:        "Country has bed nights",
			AffectedLogs: []string{`{"id": "9", "property_name": "Mara Camp"}`},
		},
	}}
	d := start(t, newLoader(map[model.Entity][]model.Record{model.EntityCountries: countries()}), asAdmin(), WithMutator(mutator))

	d.Send(tuitest.KeyPress("d"), tuitest.KeyPress("y")).Settle(5)

	require.Equal(t, ModeDialog, current(d).mode)
	view := d.View()
	assert.Contains(t, view, "Cannot delete id: 1, name: Kenya")
	assert.Contains(t, view, "Country has bed nights")
	assert.Contains(t, view, "property_name: Mara Camp")
	assert.Contains(t, view, "Delete blocked: 1 dependent records")

	d.Send(tuitest.KeyPress("x")).Settle(3)
	assert.Equal(t, ModeBrowse, current(d).mode)
}

func TestModel_DeleteFailure(t *testing.T) {
	mutator := &fakeMutator{deleteErr: errors.New("connection reset")}
	d := start(t, newLoader(map[model.Entity][]model.Record{model.EntityCountries: countries()}), asAdmin(), WithMutator(mutator))

	d.Send(tuitest.KeyPress("d"), tuitest.KeyPress("y")).Settle(5)
	assert.Equal(t, ModeBrowse, current(d).mode)
	assert.Contains(t, d.View(), "Delete failed: connection reset")
}

func TestModel_StaleLoad(t *testing.T) {
	loader := &fakeLoader{results: map[model.Entity]service.LoadResult{
		model.EntityCountries: {
			Entity:    model.EntityCountries,
			Records:   countries(),
			Err:       errors.New("connection refused"),
			Stale:     true,
			FetchedAt: testNow.Add(-2 * time.Hour),
		},
	}}
	d := start(t, loader)

	view := d.View()
	assert.Contains(t, view, "API unavailable; showing countries")
	assert.Contains(t, view, "Offline, snapshot 2h ago")
	assert.Contains(t, view, "Kenya")
}

func TestModel_DegradedLoad(t *testing.T) {
	loader := &fakeLoader{results: map[model.Entity]service.LoadResult{
		model.EntityCountries: {Entity: model.EntityCountries, Records: []model.Record{}, Err: errors.New("boom")},
	}}
	d := start(t, loader)

	view := d.View()
	assert.Contains(t, view, "Could not load countries: boom")
	assert.Contains(t, view, "No countries yet")
}

func TestModel_Refresh(t *testing.T) {
	loader := newLoader(map[model.Entity][]model.Record{model.EntityCountries: countries()})
	d := start(t, loader)

	d.Send(tuitest.KeyCtrl("r")).Settle(3)
	assert.Len(t, loader.Calls(), 2)
}

func TestModel_HelpAndQuit(t *testing.T) {
	d := start(t, newLoader(nil))

	d.Send(tuitest.KeyPress("?"))
	assert.Contains(t, d.View(), "Bed Nights - Help")
	assert.Contains(t, d.View(), "sort by column")

	d.Send(tuitest.KeyPress("x"))
	assert.Equal(t, ModeBrowse, current(d).mode)

	_, cmd := current(d).Update(tuitest.KeyPress("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestNewModel_NeedsPages(t *testing.T) {
	cfg := defaultConfig()
	cfg.Pages = nil
	_, err := newModel(context.Background(), cfg)
	assert.Error(t, err)
}

func TestRun_NeedsLoader(t *testing.T) {
	assert.Error(t, Run(context.Background()))
}
