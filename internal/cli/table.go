package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Veraticus/bednights/internal/listview"
	"github.com/Veraticus/bednights/internal/pages"
	"github.com/Veraticus/bednights/internal/report"
)

// RenderPage renders the current page of a list view as a table, with the
// sort indicator on the sorted column and a pagination footer.
func RenderPage(page pages.Page, view listview.View, sort listview.SortSpec) string {
	if view.Empty() {
		return SubtleStyle.Render("No " + strings.ToLower(page.Title()) + " match the current filters.")
	}

	headers := make([]string, len(page.Columns))
	for i, c := range page.Columns {
		headers[i] = c.Title
		if c.Field == sort.Field {
			headers[i] += " " + sort.Indicator(c.Field)
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtleStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})

	for _, rec := range view.Page.Records {
		cells := make([]string, len(page.Columns))
		for i, c := range page.Columns {
			cells[i] = c.Text(rec)
		}
		t.Row(cells...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, t.Render(), PageFooter(view.Page))
}

// PageFooter renders "Page 2 of 9 (203 records)" with the page range control.
func PageFooter(p listview.Page) string {
	var b strings.Builder
	for i, item := range listview.BuildPageRange(p.Number(), p.TotalPages, listview.DefaultPageWindow) {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch {
		case item.Ellipsis:
			b.WriteString("…")
		case item.Number == p.Number():
			b.WriteString(BoldStyle.Render("[" + strconv.Itoa(item.Number) + "]"))
		default:
			b.WriteString(strconv.Itoa(item.Number))
		}
	}
	summary := fmt.Sprintf("Page %d of %d (%d records)", p.Number(), p.TotalPages, p.Total)
	return SubtleStyle.Render(summary) + "  " + b.String()
}

// RenderReport renders the headline total and the top buckets of each series.
func RenderReport(r report.Report, top int) string {
	if r.Empty() {
		return SubtleStyle.Render("No bed nights match the current filters.")
	}

	sections := []string{
		TitleStyle.Render(fmt.Sprintf("%s Total bed nights: %s", ChartIcon, pages.FormatNumberText(r.TotalBedNights))),
		renderSeries("By country", report.Top(r.ByCountry, top)),
		renderSeries("By portfolio", report.Top(r.ByPortfolio, top)),
		renderSeries("By property", report.Top(r.ByProperty, top)),
		renderSeries("By month", r.ByMonth),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderSeries(title string, buckets []report.Bucket) string {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers(title, "Bed nights").
		StyleFunc(func(row, col int) lipgloss.Style {
			style := TableCellStyle
			if row == table.HeaderRow {
				style = TableHeaderStyle
			}
			if col == 1 {
				style = style.Align(lipgloss.Right)
			}
			return style
		})
	for _, b := range buckets {
		t.Row(b.Name, pages.FormatNumberText(b.Metric))
	}
	return t.Render()
}
