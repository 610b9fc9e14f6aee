package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/bednights/internal/listview"
	"github.com/Veraticus/bednights/internal/model"
	"github.com/Veraticus/bednights/internal/pages"
	"github.com/Veraticus/bednights/internal/report"
)

func TestFormatHelpers(t *testing.T) {
	assert.Contains(t, FormatSuccess("saved"), "saved")
	assert.Contains(t, FormatError("failed"), ErrorIcon)
	assert.Contains(t, FormatWarning("stale"), "stale")
	assert.Contains(t, FormatTitle("Bed Nights"), "Bed Nights")
	assert.Contains(t, RenderBox("Conflict", "3 logs"), "3 logs")
}

func TestRenderPage(t *testing.T) {
	page, err := pages.For(model.EntityCountries)
	assert.NoError(t, err)

	tbl := page.NewTable()
	tbl.SetRecords([]model.Record{
		{"id": "1", "name": "Kenya", "code": "KE"},
		{"id": "2", "name": "Tanzania", "code": "TZ"},
	})

	out := RenderPage(page, tbl.View(), tbl.Sort())
	assert.Contains(t, out, "Kenya")
	assert.Contains(t, out, "Tanzania")
	assert.Contains(t, out, "Name ▲")
	assert.Contains(t, out, "Page 1 of 1 (2 records)")
	assert.Less(t, strings.Index(out, "Kenya"), strings.Index(out, "Tanzania"))

	tbl.SetFilter(pages.KeySearch, "zzz")
	assert.Contains(t, RenderPage(page, tbl.View(), tbl.Sort()), "No countries match")
}

func TestPageFooter(t *testing.T) {
	out := PageFooter(listview.Page{Current: 14, TotalPages: 40, Total: 1000, PerPage: 25})
	assert.Contains(t, out, "Page 15 of 40 (1000 records)")
	assert.Contains(t, out, "[15]")
	assert.Contains(t, out, "…")
}

func TestRenderReport(t *testing.T) {
	r := report.Aggregate([]model.Record{
		{"bed_nights": 1200.0, "country_name": "Kenya", "property_name": "Camp", "date_in": "2024-01-03"},
	}, report.DefaultConfig())

	out := RenderReport(r, 5)
	assert.Contains(t, out, "Total bed nights: 1,200")
	assert.Contains(t, out, "Kenya")
	assert.Contains(t, out, "2024-01")

	assert.Contains(t, RenderReport(report.Report{}, 5), "No bed nights")
}

func TestProgressBar(t *testing.T) {
	var out strings.Builder
	bar := NewProgressBar(&out, 2, "Loading")

	Step(bar, "countries")
	Step(bar, "")

	assert.True(t, bar.IsFinished())
	assert.Contains(t, out.String(), "2/2")
}
