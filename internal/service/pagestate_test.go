package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/Veraticus/bednights/internal/common"
	"github.com/Veraticus/bednights/internal/filteropts"
	"github.com/Veraticus/bednights/internal/forms"
	"github.com/Veraticus/bednights/internal/listview"
	"github.com/Veraticus/bednights/internal/model"
	"github.com/Veraticus/bednights/internal/pages"
)

func reportState(t *testing.T) *PageState {
	t.Helper()
	s, err := NewPageState(mustPage(t, model.EntityBedNightReport), language.English,
		forms.DefaultBounds(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	s.Load(LoadResult{Entity: model.EntityBedNightReport, Records: []model.Record{
		{"id": "1", "country_name": "Kenya", "property_name": "Mara Camp", "agency_name": "Safari Co", "bed_nights": 4.0, "date_in": "2024-01-02", "date_out": "2024-01-06"},
		{"id": "2", "country_name": "Kenya", "property_name": "Lamu House", "agency_name": "", "bed_nights": 2.0, "date_in": "2024-02-10", "date_out": "2024-02-12"},
		{"id": "3", "country_name": "Tanzania", "property_name": "Serengeti Lodge", "agency_name": "Safari Co", "bed_nights": 6.0, "date_in": "2024-03-01", "date_out": "2024-03-04"},
		{"id": "4", "country_name": "Tanzania", "property_name": "Serengeti Lodge", "booking_channel_name": pages.InternalChannel, "bed_nights": 9.0, "date_in": "2024-03-01", "date_out": "2024-03-04"},
	}})
	return s
}

func TestPageState_Report(t *testing.T) {
	s := reportState(t)

	r := s.Report()
	assert.Equal(t, 12.0, r.TotalBedNights)
	assert.Equal(t, 3, r.Records)

	s.SetFilter(pages.KeyCountry, "Kenya")
	assert.Equal(t, 6.0, s.Report().TotalBedNights)
}

func TestPageState_OptionsNarrowAndPrune(t *testing.T) {
	s := reportState(t)

	s.SetFilter(pages.KeyCountry, "Kenya")
	opts := s.Options()
	assert.Equal(t, []string{"Lamu House", "Mara Camp"}, filteropts.Labels(opts[pages.KeyProperty]))
	assert.Equal(t, []string{pages.NoAgency, "Safari Co"}, filteropts.Labels(opts[pages.KeyAgency]))

	notices := s.Load(LoadResult{Entity: model.EntityBedNightReport, Records: []model.Record{
		{"id": "3", "country_name": "Tanzania", "property_name": "Serengeti Lodge", "bed_nights": 6.0},
	}})
	require.Len(t, notices, 1)
	assert.Equal(t, "Cleared 1 Country selection(s) no longer in the data", string(notices[0]))
	assert.Empty(t, s.Filters().Values(pages.KeyCountry))
}

func TestPageState_ContradictorySelectionsKept(t *testing.T) {
	s := reportState(t)

	notices := s.SetFilters(listview.FilterSet{
		pages.KeyCountry: {"Tanzania"},
		pages.KeyAgency:  {pages.NoAgency},
	})
	assert.Empty(t, notices)
	assert.Equal(t, []string{"Tanzania"}, s.Filters().Values(pages.KeyCountry))
	assert.Equal(t, []string{pages.NoAgency}, s.Filters().Values(pages.KeyAgency))
	assert.True(t, s.View().Empty())
	assert.Equal(t, 0, s.Report().Records)

	// Both values still occur in the data, so a reload keeps them.
	notices = s.Load(LoadResult{Entity: model.EntityBedNightReport, Records: s.Table().Records()})
	assert.Empty(t, notices)
	assert.Equal(t, []string{"Tanzania"}, s.Filters().Values(pages.KeyCountry))
	assert.Equal(t, []string{pages.NoAgency}, s.Filters().Values(pages.KeyAgency))
}

func TestPageState_ClampsDates(t *testing.T) {
	s := reportState(t)

	notices := s.SetFilters(listview.FilterSet{
		pages.KeyStartDate: {"1990-01-01"},
		pages.KeyEndDate:   {"2024-01-31"},
	})
	require.Len(t, notices, 1)
	assert.Equal(t, []string{"2000-01-01"}, s.Filters().Values(pages.KeyStartDate))
	assert.Equal(t, 4.0, s.Report().TotalBedNights)
}

func TestPageState_Query(t *testing.T) {
	s := reportState(t)

	_, err := s.ApplyQuery("?start_date=2024-02-01&end_date=2024-03-31&country=Kenya", s.Page.QueryKeys)
	require.NoError(t, err)
	assert.Empty(t, s.Filters().Values(pages.KeyCountry))
	assert.Equal(t, "end_date=2024-03-31&start_date=2024-02-01", s.Query())

	_, err = s.ApplyQuery("country=Kenya|Tanzania", s.FilterKeys())
	require.NoError(t, err)
	assert.Equal(t, []string{"Kenya", "Tanzania"}, s.Filters().Values(pages.KeyCountry))
}

func TestPageState_EmptyLoadKeepsSelection(t *testing.T) {
	s, err := NewPageState(mustPage(t, model.EntityAccommodationLogs), language.English, forms.DefaultBounds(time.Now()))
	require.NoError(t, err)

	s.SetFilter(pages.KeyAgency, "Safari Co")
	s.Load(LoadResult{Entity: model.EntityAccommodationLogs, Records: []model.Record{}, Err: common.ErrAPIFailure})

	assert.Equal(t, []string{"Safari Co"}, s.Filters().Values(pages.KeyAgency))
	_, stale, loadErr := s.Status()
	assert.False(t, stale)
	assert.Error(t, loadErr)
	assert.True(t, s.View().Empty())
}

func TestPageState_Find(t *testing.T) {
	s := reportState(t)

	rec, ok := s.Find("3")
	require.True(t, ok)
	assert.Equal(t, "Serengeti Lodge", rec.String("property_name"))

	_, ok = s.Find("99")
	assert.False(t, ok)
}
