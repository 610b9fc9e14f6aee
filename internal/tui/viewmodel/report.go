package viewmodel

import (
	"github.com/Veraticus/bednights/internal/pages"
	"github.com/Veraticus/bednights/internal/report"
)

// DefaultTop is how many buckets each group chart shows.
const DefaultTop = 5

// BarItem is one bar of a chart. Fraction is relative to the largest bar.
type BarItem struct {
	Label    string
	Value    string
	Fraction float64
}

// Chart is one titled bar series.
type Chart struct {
	Title string
	Bars  []BarItem
}

// ReportView is the rendered bed-night report.
type ReportView struct {
	Total   string
	Records int
	Charts  []Chart
}

// Empty reports whether the report covers no records.
func (v ReportView) Empty() bool {
	return v.Records == 0
}

// BuildReport keeps the top buckets of each group and the full month series.
func BuildReport(r report.Report, top int) ReportView {
	return ReportView{
		Total:   pages.FormatNumberText(r.TotalBedNights),
		Records: r.Records,
		Charts: []Chart{
			chart("By country", report.Top(r.ByCountry, top)),
			chart("By portfolio", report.Top(r.ByPortfolio, top)),
			chart("By property", report.Top(r.ByProperty, top)),
			chart("By month", r.ByMonth),
		},
	}
}

func chart(title string, buckets []report.Bucket) Chart {
	peak := report.Max(buckets)
	c := Chart{Title: title, Bars: make([]BarItem, 0, len(buckets))}
	for _, b := range buckets {
		var fraction float64
		if peak > 0 {
			fraction = b.Metric / peak
		}
		c.Bars = append(c.Bars, BarItem{
			Label:    b.Name,
			Value:    pages.FormatNumberText(b.Metric),
			Fraction: fraction,
		})
	}
	return c
}
