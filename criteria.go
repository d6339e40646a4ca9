package income

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Bound is an optional inclusive threshold. The zero Bound is unset.
type Bound struct {
	text  string // as typed by the user
	value *decimal.Decimal
}

// ParseBound reads a decimal threshold. Empty or non numeric text gives an unset Bound.
func ParseBound(text string) Bound {
	b := Bound{text: text}
	if v, err := decimal.NewFromString(strings.TrimSpace(text)); err == nil {
		b.value = &v
	}
	return b
}

// ParseYearBound reads a year threshold. Text that is not an integer gives an unset Bound.
func ParseYearBound(text string) Bound {
	b := Bound{text: text}
	if y, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
		v := decimal.NewFromInt(int64(y))
		b.value = &v
	}
	return b
}

// IsSet reports whether the bound constrains anything.
func (b Bound) IsSet() bool { return b.value != nil }

// Text returns the text the bound was parsed from.
func (b Bound) Text() string { return b.text }

// Value returns the threshold, ok is false if the bound is unset.
func (b Bound) Value() (v decimal.Decimal, ok bool) {
	if b.value == nil {
		return decimal.Zero, false
	}
	return *b.value, true
}

// atLeast reports whether x satisfies the bound used as a lower bound.
// An invalid x never satisfies a set bound.
func (b Bound) atLeast(x decimal.NullDecimal) bool {
	if b.value == nil {
		return true
	}
	return x.Valid && x.Decimal.GreaterThanOrEqual(*b.value)
}

// atMost reports whether x satisfies the bound used as an upper bound.
func (b Bound) atMost(x decimal.NullDecimal) bool {
	if b.value == nil {
		return true
	}
	return x.Valid && x.Decimal.LessThanOrEqual(*b.value)
}

// BoundKey names one of the six bounds of Criteria.
type BoundKey string

const (
	StartYear    BoundKey = "startYear"
	EndYear      BoundKey = "endYear"
	MinRevenue   BoundKey = "minRevenue"
	MaxRevenue   BoundKey = "maxRevenue"
	MinNetIncome BoundKey = "minNetIncome"
	MaxNetIncome BoundKey = "maxNetIncome"
)

// BoundKeys lists the bounds in form order.
var BoundKeys = []BoundKey{StartYear, EndYear, MinRevenue, MaxRevenue, MinNetIncome, MaxNetIncome}

// Criteria holds the optional bounds narrowing the visible records.
type Criteria struct {
	StartYear, EndYear         Bound
	MinRevenue, MaxRevenue     Bound
	MinNetIncome, MaxNetIncome Bound
}

// Get returns the bound named k.
func (c Criteria) Get(k BoundKey) Bound {
	switch k {
	case StartYear:
		return c.StartYear
	case EndYear:
		return c.EndYear
	case MinRevenue:
		return c.MinRevenue
	case MaxRevenue:
		return c.MaxRevenue
	case MinNetIncome:
		return c.MinNetIncome
	case MaxNetIncome:
		return c.MaxNetIncome
	}
	return Bound{}
}

// With returns a copy of c where the bound named k is parsed from text.
// Unknown keys leave c unchanged.
func (c Criteria) With(k BoundKey, text string) Criteria {
	switch k {
	case StartYear:
		c.StartYear = ParseYearBound(text)
	case EndYear:
		c.EndYear = ParseYearBound(text)
	case MinRevenue:
		c.MinRevenue = ParseBound(text)
	case MaxRevenue:
		c.MaxRevenue = ParseBound(text)
	case MinNetIncome:
		c.MinNetIncome = ParseBound(text)
	case MaxNetIncome:
		c.MaxNetIncome = ParseBound(text)
	}
	return c
}

// Match reports whether r satisfies every set bound.
func (c Criteria) Match(r Record) bool {
	year := decimal.NullDecimal{}
	if !r.Date.IsZero() {
		year = decimal.NewNullDecimal(decimal.NewFromInt(int64(r.Date.Year())))
	}
	return c.StartYear.atLeast(year) &&
		c.EndYear.atMost(year) &&
		c.MinRevenue.atLeast(r.Revenue) &&
		c.MaxRevenue.atMost(r.Revenue) &&
		c.MinNetIncome.atLeast(r.NetIncome) &&
		c.MaxNetIncome.atMost(r.NetIncome)
}
