package income

import (
	"fmt"

	"github.com/etnz/income/date"
	"github.com/shopspring/decimal"
)

// Record is one fiscal year of an income statement.
//
// Amounts missing from the feed are kept invalid rather than zero.
type Record struct {
	Date             date.Date           `json:"date"`
	Symbol           string              `json:"symbol,omitempty"`
	ReportedCurrency string              `json:"reportedCurrency,omitempty"`
	CalendarYear     string              `json:"calendarYear,omitempty"`
	Revenue          decimal.NullDecimal `json:"revenue"`
	NetIncome        decimal.NullDecimal `json:"netIncome"`
	GrossProfit      decimal.NullDecimal `json:"grossProfit"`
	EPS              decimal.NullDecimal `json:"eps"`
	OperatingIncome  decimal.NullDecimal `json:"operatingIncome"`
}

// Field identifies a column of a Record.
type Field int

const (
	FieldDate Field = iota
	FieldRevenue
	FieldNetIncome
	FieldGrossProfit
	FieldEPS
	FieldOperatingIncome
)

// Fields lists all the fields in display order.
var Fields = []Field{FieldDate, FieldRevenue, FieldNetIncome, FieldGrossProfit, FieldEPS, FieldOperatingIncome}

var fieldNames = map[Field]string{
	FieldDate:            "date",
	FieldRevenue:         "revenue",
	FieldNetIncome:       "netIncome",
	FieldGrossProfit:     "grossProfit",
	FieldEPS:             "eps",
	FieldOperatingIncome: "operatingIncome",
}

// String returns the name of the field as found in the feed.
func (f Field) String() string {
	if s, ok := fieldNames[f]; ok {
		return s
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// ParseField parses a field name as found in the feed.
func ParseField(s string) (Field, error) {
	for f, name := range fieldNames {
		if name == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown field %q", s)
}

// Amount returns the numeric value of field f. It is invalid for FieldDate.
func (r Record) Amount(f Field) decimal.NullDecimal {
	switch f {
	case FieldRevenue:
		return r.Revenue
	case FieldNetIncome:
		return r.NetIncome
	case FieldGrossProfit:
		return r.GrossProfit
	case FieldEPS:
		return r.EPS
	case FieldOperatingIncome:
		return r.OperatingIncome
	}
	return decimal.NullDecimal{}
}
