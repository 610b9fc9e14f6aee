package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/Veraticus/bednights/internal/forms"
	"github.com/Veraticus/bednights/internal/listview"
	"github.com/Veraticus/bednights/internal/model"
	"github.com/Veraticus/bednights/internal/pages"
	"github.com/Veraticus/bednights/internal/service"
	"github.com/Veraticus/bednights/internal/sheets"
	"github.com/Veraticus/bednights/internal/storage"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func loadedState(t *testing.T, entity model.Entity, records []model.Record) *service.PageState {
	t.Helper()
	page, err := pages.For(entity)
	require.NoError(t, err)
	state, err := service.NewPageState(page, language.English, forms.DefaultBounds(now))
	require.NoError(t, err)
	state.Load(service.LoadResult{Entity: entity, Records: records, FetchedAt: now})
	return state
}

func stays() []model.Record {
	return []model.Record{
		{"id": "1", "country_name": "Kenya", "property_name": "Mara Camp", "bed_nights": 4.0, "date_in": "2024-01-02", "date_out": "2024-01-06"},
		{"id": "2", "country_name": "Tanzania", "property_name": "Serengeti Lodge", "bed_nights": 12.0, "date_in": "2024-03-01", "date_out": "2024-03-04"},
	}
}

func TestDashboardPages(t *testing.T) {
	got, err := dashboardPages([]string{"report", "countries", "bed-night-report"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, model.EntityBedNightReport, got[0].Entity)
	assert.Equal(t, model.EntityCountries, got[1].Entity)

	_, err = dashboardPages([]string{"planets"})
	assert.Error(t, err)
}

func TestBuildTabs(t *testing.T) {
	t.Run("entity page", func(t *testing.T) {
		state := loadedState(t, model.EntityCountries, []model.Record{{"id": "1", "name": "Kenya", "code": "KE"}})
		tabs := buildTabs(state, now)
		require.Len(t, tabs, 1)
		assert.Equal(t, "Countries", tabs[0].Name)
		assert.Equal(t, 1, tabs[0].Len())
	})

	t.Run("report", func(t *testing.T) {
		state := loadedState(t, model.EntityBedNightReport, stays())
		tabs := buildTabs(state, now)
		require.Greater(t, len(tabs), 2)
		assert.Equal(t, "Summary", tabs[0].Name)
		assert.Equal(t, "Records", tabs[len(tabs)-1].Name)
		assert.Equal(t, 2, tabs[len(tabs)-1].Len())
	})
}

func TestPublish(t *testing.T) {
	state := loadedState(t, model.EntityBedNightReport, stays())
	tabs := buildTabs(state, now)

	w := sheets.NewMockWriter()
	var out bytes.Buffer
	url, err := publish(context.Background(), &out, w, tabs)
	require.NoError(t, err)
	assert.Equal(t, "mock-spreadsheet", url)
	assert.Equal(t, 1, w.WriteCallCount)
	assert.Equal(t, tabs, w.LastTabs)
	assert.Contains(t, out.String(), "Publishing")

	w.SetWriteError(errors.New("quota exceeded"))
	_, err = publish(context.Background(), &out, w, tabs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish: quota exceeded")
}

func TestRenderHistory(t *testing.T) {
	out := renderHistory([]storage.Mutation{
		{CreatedAt: now, Entity: model.EntityCountries, Action: "delete", RecordID: "7", Outcome: "conflict", Actor: "ops@example.com"},
	})
	for _, want := range []string{"When", "Actor", "countries", "delete", "7", "conflict", "ops@example.com"} {
		assert.Contains(t, out, want)
	}
}

func TestDescribeSelection(t *testing.T) {
	keys := []string{pages.KeyCountry, pages.KeyStartDate}
	assert.Empty(t, describeSelection(listview.FilterSet{}, keys))

	got := describeSelection(listview.FilterSet{
		pages.KeyCountry:   {"Kenya"},
		pages.KeyStartDate: {"2024-01-01"},
		pages.KeyAgency:    {"Safari Co"},
	}, keys)
	assert.Equal(t, "Filters: country=Kenya&start_date=2024-01-01", got)
}
