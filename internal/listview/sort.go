package listview

// SortSpec is the single active sort column of a list page.
type SortSpec struct {
	Field     string
	Ascending bool
}

// ToggleSort is the header-click transition: the active column flips direction,
// any other column becomes active in ascending order.
func ToggleSort(current SortSpec, field string) SortSpec {
	if field == current.Field {
		return SortSpec{Field: field, Ascending: !current.Ascending}
	}
	return SortSpec{Field: field, Ascending: true}
}

// Indicator returns the arrow shown next to a column header.
func (s SortSpec) Indicator(field string) string {
	if s.Field != field {
		return ""
	}
	if s.Ascending {
		return "▲"
	}
	return "▼"
}
