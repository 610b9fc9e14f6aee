// Package report aggregates a filtered bed-night record set into chart series.
package report

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/Veraticus/bednights/internal/model"
)

// UnknownGroup names the bucket for records without a group value.
const UnknownGroup = "Unknown"

// Config names the record fields the aggregation reads.
type Config struct {
	Metric    string
	Country   string
	Portfolio string
	Property  string
	StayStart string
}

// DefaultConfig returns the field names used by accommodation logs.
func DefaultConfig() Config {
	return Config{
		Metric:    "bed_nights",
		Country:   "country_name",
		Portfolio: "portfolio_name",
		Property:  "property_name",
		StayStart: "date_in",
	}
}

// Bucket is one named point of a series.
type Bucket struct {
	Name   string  `json:"name"`
	Metric float64 `json:"metric"`
}

// Report holds the summary series of one filtered record set.
type Report struct {
	ByCountry      []Bucket `json:"by_country"`
	ByPortfolio    []Bucket `json:"by_portfolio"`
	ByProperty     []Bucket `json:"by_property"`
	ByMonth        []Bucket `json:"by_month"`
	TotalBedNights float64  `json:"total_bed_nights"`
	Records        int      `json:"records"`
}

// Empty reports whether the report was built from no records.
func (r Report) Empty() bool {
	return r.Records == 0
}

// Aggregate sums the metric over records, per group and per month of stay start.
// Group series keep first-seen order. The month series covers every month from
// the earliest to the latest observed one, with zero for months without stays.
func Aggregate(records []model.Record, cfg Config) Report {
	r := Report{
		ByCountry:   []Bucket{},
		ByPortfolio: []Bucket{},
		ByProperty:  []Bucket{},
		ByMonth:     []Bucket{},
		Records:     len(records),
	}
	if len(records) == 0 {
		return r
	}

	country := newGrouper()
	portfolio := newGrouper()
	property := newGrouper()
	months := make(map[string]float64)
	var first, last time.Time

	for _, rec := range records {
		metric, _ := rec.Number(cfg.Metric)
		r.TotalBedNights += metric

		country.add(groupName(rec, cfg.Country), metric)
		portfolio.add(groupName(rec, cfg.Portfolio), metric)
		property.add(groupName(rec, cfg.Property), metric)

		start, ok := rec.Time(cfg.StayStart)
		if !ok {
			continue
		}
		month := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
		months[month.Format(model.MonthLayout)] += metric
		if first.IsZero() || month.Before(first) {
			first = month
		}
		if last.IsZero() || month.After(last) {
			last = month
		}
	}

	r.ByCountry = country.buckets
	r.ByPortfolio = portfolio.buckets
	r.ByProperty = property.buckets
	r.ByMonth = fillMonths(months, first, last)
	return r
}

func groupName(rec model.Record, field string) string {
	name := strings.TrimSpace(rec.String(field))
	if name == "" {
		return UnknownGroup
	}
	return name
}

func fillMonths(months map[string]float64, first, last time.Time) []Bucket {
	out := []Bucket{}
	if first.IsZero() {
		return out
	}
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		name := m.Format(model.MonthLayout)
		out = append(out, Bucket{Name: name, Metric: months[name]})
	}
	return out
}

type grouper struct {
	index   map[string]int
	buckets []Bucket
}

func newGrouper() *grouper {
	return &grouper{index: make(map[string]int), buckets: []Bucket{}}
}

func (g *grouper) add(name string, metric float64) {
	if i, ok := g.index[name]; ok {
		g.buckets[i].Metric += metric
		return
	}
	g.index[name] = len(g.buckets)
	g.buckets = append(g.buckets, Bucket{Name: name, Metric: metric})
}

// Top returns the n largest buckets, highest metric first and ties by name.
// n <= 0 returns them all.
func Top(buckets []Bucket, n int) []Bucket {
	out := slices.Clone(buckets)
	slices.SortStableFunc(out, func(a, b Bucket) int {
		if c := cmp.Compare(b.Metric, a.Metric); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Max returns the largest metric in buckets, or 0.
func Max(buckets []Bucket) float64 {
	var m float64
	for _, b := range buckets {
		m = max(m, b.Metric)
	}
	return m
}
