package listview

import "github.com/Veraticus/bednights/internal/model"

// Page is the window of records to render plus its pagination metadata.
type Page struct {
	Records    []model.Record
	Current    int
	TotalPages int
	Total      int
	PerPage    int
}

// Number returns the 1-based page number.
func (p Page) Number() int {
	return p.Current + 1
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool {
	return p.Current > 0
}

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool {
	return p.Current < p.TotalPages-1
}

// Paginate slices [page*perPage, (page+1)*perPage). A page at or beyond the last
// one resets to page 0. perPage <= 0 puts everything on one page.
func Paginate(records []model.Record, perPage, page int) Page {
	total := len(records)
	if perPage <= 0 {
		perPage = max(total, 1)
	}

	totalPages := (total + perPage - 1) / perPage
	if page < 0 || page >= totalPages {
		page = 0
	}

	start := min(page*perPage, total)
	end := min(start+perPage, total)

	return Page{
		Records:    records[start:end:end],
		Current:    page,
		TotalPages: totalPages,
		Total:      total,
		PerPage:    perPage,
	}
}

// PageItem is one entry of a pagination control: a page number or an ellipsis.
type PageItem struct {
	Number   int
	Ellipsis bool
}

// DefaultPageWindow is the number of pages shown on each side of the current one.
const DefaultPageWindow = 10

// BuildPageRange lays out a pagination control using 1-based page numbers. The
// first and last pages are always present, up to window pages are shown on each
// side of current, and an ellipsis marks any gap to either edge. A single page
// yields just that page and no pages yield nothing.
func BuildPageRange(current, totalPages, window int) []PageItem {
	if totalPages <= 0 {
		return nil
	}
	if totalPages == 1 {
		return []PageItem{{Number: 1}}
	}
	window = max(window, 0)
	current = min(max(current, 1), totalPages)

	start := max(2, current-window)
	end := min(totalPages-1, current+window)

	items := []PageItem{{Number: 1}}
	if start > 2 {
		items = append(items, PageItem{Ellipsis: true})
	}
	for p := start; p <= end; p++ {
		items = append(items, PageItem{Number: p})
	}
	if end < totalPages-1 {
		items = append(items, PageItem{Ellipsis: true})
	}
	return append(items, PageItem{Number: totalPages})
}
