// Package renderer renders derived income statements as markdown and HTML.
package renderer

import (
	"github.com/etnz/income"
)

// Column is a table header.
type Column struct {
	Field    income.Field
	Title    string
	Sortable bool
	Active   bool   // the table is sorted on this column
	Link     string // query string sorting on this column, only for sortable columns
	Numeric  bool
}

// Marker returns the sort indicator of the column.
func (c Column) Marker(dir income.Direction) string {
	switch {
	case c.Active && dir == income.Ascending:
		return "▲"
	case c.Active:
		return "▼"
	case c.Sortable:
		return "↕"
	}
	return ""
}

// Table is the view model of a derived sequence, all cells are formatted.
type Table struct {
	Columns   []Column
	Direction income.Direction
	Rows      [][]string
}

// Options control the formatting of cells.
type Options struct {
	DateLayout string // time layout for dates, DefaultDateLayout if empty
}

var titles = map[income.Field]string{
	income.FieldDate:            "Date",
	income.FieldRevenue:         "Revenue",
	income.FieldNetIncome:       "Net Income",
	income.FieldGrossProfit:     "Gross Profit",
	income.FieldEPS:             "EPS",
	income.FieldOperatingIncome: "Operating Income",
}

// sortable columns have a clickable header.
var sortable = map[income.Field]bool{
	income.FieldDate:      true,
	income.FieldRevenue:   true,
	income.FieldNetIncome: true,
}

// NewTable formats records, already derived for state, into a Table.
func NewTable(records []income.Record, state income.ViewState, opts Options) *Table {
	if opts.DateLayout == "" {
		opts.DateLayout = DefaultDateLayout
	}
	t := &Table{Direction: state.Sort.Direction}
	for _, f := range income.Fields {
		c := Column{
			Field:    f,
			Title:    titles[f],
			Sortable: sortable[f],
			Active:   state.Sort.Field == f,
			Numeric:  f != income.FieldDate,
		}
		if c.Sortable {
			c.Link = "?" + state.ToggleSort(f).Values().Encode()
		}
		t.Columns = append(t.Columns, c)
	}
	for _, r := range records {
		t.Rows = append(t.Rows, formatRecord(r, opts))
	}
	return t
}

// formatRecord returns the cells of r in income.Fields order.
func formatRecord(r income.Record, opts Options) []string {
	row := make([]string, 0, len(income.Fields))
	for _, f := range income.Fields {
		switch f {
		case income.FieldDate:
			if r.Date.IsZero() {
				row = append(row, income.NotAvailable)
			} else {
				row = append(row, r.Date.Format(opts.DateLayout))
			}
		case income.FieldEPS:
			row = append(row, income.USD(r.EPS).PerShare())
		default:
			row = append(row, income.USD(r.Amount(f)).String())
		}
	}
	return row
}
