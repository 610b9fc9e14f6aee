package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/bednights/internal/listview"
	"github.com/Veraticus/bednights/internal/model"
)

func TestAggregate_GapFillsMonths(t *testing.T) {
	records := []model.Record{
		{"id": "1", "date_in": "2023-01-04", "bed_nights": 2.0},
		{"id": "2", "date_in": "2023-01-20", "bed_nights": 3.0},
		{"id": "3", "date_in": "2023-03-02", "bed_nights": 7.0},
	}

	got := Aggregate(records, DefaultConfig())

	assert.Equal(t, []Bucket{
		{Name: "2023-01", Metric: 5},
		{Name: "2023-02", Metric: 0},
		{Name: "2023-03", Metric: 7},
	}, got.ByMonth)
}

func TestAggregate_AcrossYearBoundary(t *testing.T) {
	records := []model.Record{
		{"id": "1", "date_in": "2024-02-01T10:00:00Z", "bed_nights": 1.0},
		{"id": "2", "date_in": "2023-11-30", "bed_nights": "4"},
	}

	got := Aggregate(records, DefaultConfig())

	names := make([]string, len(got.ByMonth))
	for i, b := range got.ByMonth {
		names[i] = b.Name
	}
	assert.Equal(t, []string{"2023-11", "2023-12", "2024-01", "2024-02"}, names)
	assert.InDelta(t, 5.0, got.TotalBedNights, 0.001)
}

func TestAggregate_Groups(t *testing.T) {
	records := []model.Record{
		{"id": "1", "country_name": "US", "portfolio_name": "Coast", "property_name": "Pier", "bed_nights": 4.0},
		{"id": "2", "country_name": "FR", "portfolio_name": nil, "property_name": "Chateau", "bed_nights": 6.0},
		{"id": "3", "country_name": "US", "portfolio_name": "Coast", "property_name": "Pier", "bed_nights": 1.0},
		{"id": "4", "country_name": " ", "portfolio_name": "City", "property_name": "Loft", "bed_nights": "x"},
	}

	got := Aggregate(records, DefaultConfig())

	assert.Equal(t, 4, got.Records)
	assert.False(t, got.Empty())
	assert.InDelta(t, 11.0, got.TotalBedNights, 0.001)
	assert.Equal(t, []Bucket{{"US", 5}, {"FR", 6}, {UnknownGroup, 0}}, got.ByCountry)
	assert.Equal(t, []Bucket{{"Coast", 5}, {UnknownGroup, 6}, {"City", 0}}, got.ByPortfolio)
	assert.Equal(t, []Bucket{{"Pier", 5}, {"Chateau", 6}, {"Loft", 0}}, got.ByProperty)
	assert.Empty(t, got.ByMonth)
}

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil, DefaultConfig())

	assert.True(t, got.Empty())
	assert.Zero(t, got.TotalBedNights)
	assert.NotNil(t, got.ByCountry)
	assert.Empty(t, got.ByCountry)
	assert.Empty(t, got.ByMonth)
}

func TestAggregate_ExclusionFlowsThrough(t *testing.T) {
	records := []model.Record{
		{"id": "1", "booking_channel_name": "Online", "country_name": "US", "date_in": "2024-01-01", "bed_nights": 3.0},
		{"id": "2", "booking_channel_name": "FAM/TB Travel", "country_name": "US", "date_in": "2024-05-01", "bed_nights": 9.0},
	}
	engine := listview.Engine{
		Filters:    []listview.Filter{listview.Equal("country", "country_name")},
		Exclusions: []listview.Exclusion{listview.ExcludeValue("booking_channel_name", "FAM/TB Travel")},
	}

	filtered := engine.ApplyFilters(records, listview.FilterSet{"country": {"US"}})
	got := Aggregate(filtered, DefaultConfig())

	assert.InDelta(t, 3.0, got.TotalBedNights, 0.001)
	assert.Equal(t, []Bucket{{"2024-01", 3}}, got.ByMonth)
}

func TestTop(t *testing.T) {
	buckets := []Bucket{{"b", 2}, {"a", 2}, {"c", 9}, {"d", 1}}

	tests := []struct {
		name string
		n    int
		want []Bucket
	}{
		{name: "top two", n: 2, want: []Bucket{{"c", 9}, {"a", 2}}},
		{name: "all", n: 0, want: []Bucket{{"c", 9}, {"a", 2}, {"b", 2}, {"d", 1}}},
		{name: "more than available", n: 10, want: []Bucket{{"c", 9}, {"a", 2}, {"b", 2}, {"d", 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Top(buckets, tt.n))
		})
	}
	assert.Equal(t, "b", buckets[0].Name, "input untouched")
	assert.InDelta(t, 9.0, Max(buckets), 0.001)
}
