package income

import (
	"net/url"
	"slices"
)

// Direction is the order of a sort.
type Direction int

const (
	Descending Direction = iota
	Ascending
)

// String returns "asc" or "desc".
func (d Direction) String() string {
	if d == Ascending {
		return "asc"
	}
	return "desc"
}

// ParseDirection reads "asc" or "desc", ok is false for anything else.
func ParseDirection(s string) (d Direction, ok bool) {
	switch s {
	case "asc":
		return Ascending, true
	case "desc":
		return Descending, true
	}
	return Descending, false
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// SortSpec is the single active sort key.
type SortSpec struct {
	Field     Field
	Direction Direction
}

// DefaultSort is most recent year first.
var DefaultSort = SortSpec{Field: FieldDate, Direction: Descending}

// compare orders a and b on the spec field, in ascending order.
// Invalid amounts come before valid ones.
func (s SortSpec) compare(a, b Record) int {
	if s.Field == FieldDate {
		return a.Date.Compare(b.Date)
	}
	x, y := a.Amount(s.Field), b.Amount(s.Field)
	switch {
	case !x.Valid && !y.Valid:
		return 0
	case !x.Valid:
		return -1
	case !y.Valid:
		return 1
	}
	return x.Decimal.Cmp(y.Decimal)
}

// ViewState is everything the user controls: the filter criteria and the sort.
type ViewState struct {
	Criteria Criteria
	Sort     SortSpec
}

// NewViewState returns the state at mount: no criteria, default sort.
func NewViewState() ViewState { return ViewState{Sort: DefaultSort} }

// SetBound returns a copy of v with the bound k read from text.
func (v ViewState) SetBound(k BoundKey, text string) ViewState {
	v.Criteria = v.Criteria.With(k, text)
	return v
}

// ToggleSort returns a copy of v sorted on f.
//
// Toggling the active field flips the direction, any other field becomes active in descending order.
func (v ViewState) ToggleSort(f Field) ViewState {
	if v.Sort.Field == f {
		v.Sort.Direction = v.Sort.Direction.Reverse()
		return v
	}
	v.Sort = SortSpec{Field: f, Direction: Descending}
	return v
}

// query parameters for the sort.
const (
	sortParam = "sort"
	dirParam  = "dir"
)

// Values encodes v as query parameters. Unset bounds that were never typed are omitted.
func (v ViewState) Values() url.Values {
	q := make(url.Values)
	for _, k := range BoundKeys {
		if t := v.Criteria.Get(k).Text(); t != "" {
			q.Set(string(k), t)
		}
	}
	q.Set(sortParam, v.Sort.Field.String())
	q.Set(dirParam, v.Sort.Direction.String())
	return q
}

// ParseViewState decodes query parameters written by Values.
// Missing or invalid sort parameters fall back to DefaultSort.
func ParseViewState(q url.Values) ViewState {
	v := NewViewState()
	for _, k := range BoundKeys {
		v = v.SetBound(k, q.Get(string(k)))
	}
	if f, err := ParseField(q.Get(sortParam)); err == nil {
		v.Sort.Field = f
		if d, ok := ParseDirection(q.Get(dirParam)); ok {
			v.Sort.Direction = d
		}
	}
	return v
}

// Filter returns the records matching every set bound of c, in their original order.
// records is not modified.
func Filter(records []Record, c Criteria) []Record {
	result := make([]Record, 0, len(records))
	for _, r := range records {
		if c.Match(r) {
			result = append(result, r)
		}
	}
	return result
}

// Sort returns a sorted copy of records. Records with equal keys keep their relative order.
func Sort(records []Record, s SortSpec) []Record {
	result := slices.Clone(records)
	slices.SortStableFunc(result, func(a, b Record) int {
		if s.Direction == Descending {
			return s.compare(b, a)
		}
		return s.compare(a, b)
	})
	return result
}

// Derive computes the derived sequence to display from the full source records.
func Derive(records []Record, v ViewState) []Record {
	return Sort(Filter(records, v.Criteria), v.Sort)
}
