package income

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value as reported in an income statement.
type Money struct {
	value decimal.NullDecimal // as major unit value
	cur   string
}

// USD returns an amount in US dollars.
func USD(value decimal.NullDecimal) Money { return Money{value: value, cur: money.USD} }

// NotAvailable is how missing values are displayed.
const NotAvailable = "n/a"

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the value rounded to whole units with grouping, e.g. "$383,285,000,000".
func (m Money) String() string {
	if !m.value.Valid {
		return NotAvailable
	}
	cur := m.currency()
	units := m.value.Decimal.Round(0)
	if units.BigInt().IsInt64() {
		f := money.NewFormatter(0, cur.Decimal, cur.Thousand, cur.Grapheme, cur.Template)
		return f.Format(units.IntPart())
	}
	// beyond int64, group the digits the way the formatter does.
	s := strings.Replace(cur.Template, "1", group(units.Abs().String(), cur.Thousand), 1)
	s = strings.Replace(s, "$", cur.Grapheme, 1)
	if units.IsNegative() {
		s = "-" + s
	}
	return s
}

// group inserts sep every three digits from the right.
func group(digits, sep string) string {
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteString(sep)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// PerShare returns the value with two decimals after the currency symbol, e.g. "$6.13".
func (m Money) PerShare() string {
	if !m.value.Valid {
		return NotAvailable
	}
	return m.currency().Grapheme + m.value.Decimal.StringFixed(2)
}
