// Package export turns table views and reports into tabular workbooks.
package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/bednights/internal/listview"
	"github.com/Veraticus/bednights/internal/model"
	"github.com/Veraticus/bednights/internal/pages"
	"github.com/Veraticus/bednights/internal/report"
)

// Tab is one worksheet: a header row followed by data rows.
type Tab struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Len returns the number of rows including the header.
func (t Tab) Len() int {
	return len(t.Rows) + 1
}

// Values returns the header and rows as one grid.
func (t Tab) Values() [][]any {
	out := make([][]any, 0, t.Len())
	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	return append(append(out, header), t.Rows...)
}

// TableTab renders records with the page's columns.
func TableTab(page pages.Page, records []model.Record) Tab {
	tab := Tab{Name: page.Title(), Rows: make([][]any, 0, len(records))}
	for _, c := range page.Columns {
		tab.Header = append(tab.Header, c.Title)
	}
	for _, rec := range records {
		row := make([]any, len(page.Columns))
		for i, c := range page.Columns {
			row[i] = c.Cell(rec)
		}
		tab.Rows = append(tab.Rows, row)
	}
	return tab
}

// ReportTabs renders a report as a summary tab plus one tab per series.
func ReportTabs(r report.Report, fs listview.FilterSet, generated time.Time) []Tab {
	summary := Tab{
		Name:   "Summary",
		Header: []string{"Metric", "Value"},
		Rows: [][]any{
			{"Generated", generated.Format(time.RFC3339)},
			{"Records", r.Records},
			{"Total bed nights", r.TotalBedNights},
		},
	}
	for _, line := range DescribeFilters(fs) {
		summary.Rows = append(summary.Rows, []any{"Filter", line})
	}

	return []Tab{
		summary,
		seriesTab("By Country", "Country", report.Top(r.ByCountry, 0)),
		seriesTab("By Portfolio", "Portfolio", report.Top(r.ByPortfolio, 0)),
		seriesTab("By Property", "Property", report.Top(r.ByProperty, 0)),
		seriesTab("By Month", "Month", r.ByMonth),
	}
}

func seriesTab(name, label string, buckets []report.Bucket) Tab {
	tab := Tab{Name: name, Header: []string{label, "Bed nights"}, Rows: make([][]any, 0, len(buckets))}
	for _, b := range buckets {
		tab.Rows = append(tab.Rows, []any{b.Name, b.Metric})
	}
	return tab
}

// DescribeFilters renders the active filters as "key: a, b" lines ordered by key.
func DescribeFilters(fs listview.FilterSet) []string {
	var lines []string
	for _, k := range sortedKeys(fs) {
		if values := fs.Values(k); len(values) > 0 {
			lines = append(lines, fmt.Sprintf("%s: %s", k, strings.Join(values, ", ")))
		}
	}
	return lines
}

func sortedKeys(fs listview.FilterSet) []string {
	keys := make([]string, 0, len(fs))
	for k := range fs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
