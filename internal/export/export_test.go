package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/bednights/internal/listview"
	"github.com/Veraticus/bednights/internal/model"
	"github.com/Veraticus/bednights/internal/pages"
	"github.com/Veraticus/bednights/internal/report"
)

func TestTableTab(t *testing.T) {
	page, err := pages.For(model.EntityProperties)
	require.NoError(t, err)

	tab := TableTab(page, []model.Record{
		{"id": "1", "name": "Pier", "country_name": "US", "is_active": true, "updated_at": "2024-03-01T10:00:00Z"},
		{"id": "2", "name": "Loft", "is_active": false},
	})

	assert.Equal(t, "Properties", tab.Name)
	assert.Equal(t, []string{"Name", "Portfolio", "Country", "Active", "Updated"}, tab.Header)
	assert.Equal(t, [][]any{
		{"Pier", "", "US", "Yes", "2024-03-01"},
		{"Loft", "", "", "No", ""},
	}, tab.Rows)
	assert.Equal(t, 3, tab.Len())
}

func TestReportTabs(t *testing.T) {
	r := report.Report{
		Records:        2,
		TotalBedNights: 9,
		ByCountry:      []report.Bucket{{Name: "FR", Metric: 2}, {Name: "US", Metric: 7}},
		ByPortfolio:    []report.Bucket{},
		ByProperty:     []report.Bucket{{Name: "Pier", Metric: 9}},
		ByMonth:        []report.Bucket{{Name: "2024-01", Metric: 9}},
	}
	generated := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tabs := ReportTabs(r, listview.FilterSet{"start_date": {"2024-01-01"}, "agency": {"Acme", "No agency"}}, generated)

	require.Len(t, tabs, 5)
	assert.Equal(t, [][]any{
		{"Generated", "2024-06-01T00:00:00Z"},
		{"Records", 2},
		{"Total bed nights", 9.0},
		{"Filter", "agency: Acme, No agency"},
		{"Filter", "start_date: 2024-01-01"},
	}, tabs[0].Rows)
	assert.Equal(t, [][]any{{"US", 7.0}, {"FR", 2.0}}, tabs[1].Rows)
	assert.Empty(t, tabs[2].Rows)
	assert.Equal(t, "By Month", tabs[4].Name)
}

func TestWriteXLSX(t *testing.T) {
	tabs := []Tab{
		{Name: "Summary", Header: []string{"Metric", "Value"}, Rows: [][]any{{"Records", 2}}},
		{Name: "By Month", Header: []string{"Month", "Bed nights"}, Rows: [][]any{{"2024-01", 5.0}, {"2024-02", 0.0}}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, tabs))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Summary", "By Month"}, f.GetSheetList())
	rows, err := f.GetRows("By Month")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Month", "Bed nights"}, {"2024-01", "5"}, {"2024-02", "0"}}, rows)

	assert.Error(t, WriteXLSX(&buf, nil))
}
