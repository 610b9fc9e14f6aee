package pages

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/Veraticus/bednights/internal/model"
)

var printer = message.NewPrinter(language.English)

// Cell returns the typed value of the column for rec: float64 for numbers,
// "Yes"/"No" for booleans, YYYY-MM-DD for dates, and the raw text otherwise.
// Blank values are "".
func (c Column) Cell(rec model.Record) any {
	if rec.IsBlank(c.Field) {
		return ""
	}
	switch c.Format {
	case FormatNumber:
		if n, ok := rec.Number(c.Field); ok {
			return n
		}
	case FormatDate:
		if t, ok := rec.Time(c.Field); ok {
			return t.Format(model.DateLayout)
		}
	case FormatBool:
		if b, ok := rec.Value(c.Field).(bool); ok {
			if b {
				return "Yes"
			}
			return "No"
		}
	}
	return rec.String(c.Field)
}

// Text returns the cell as display text, with grouped digits for numbers.
func (c Column) Text(rec model.Record) string {
	switch v := c.Cell(rec).(type) {
	case float64:
		return FormatNumberText(v)
	case string:
		return v
	default:
		return model.Stringify(v)
	}
}

// FormatNumberText renders n with thousands separators and at most two decimals.
func FormatNumberText(n float64) string {
	return printer.Sprint(number.Decimal(n, number.MaxFractionDigits(2)))
}
