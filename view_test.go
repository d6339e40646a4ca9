package income

import (
	"net/url"
	"slices"
	"testing"

	"github.com/etnz/income/date"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// rec creates a test record with a date and a revenue.
func rec(on string, revenue int64) Record {
	return Record{Date: date.MustParse(on), Revenue: amount(revenue)}
}

func amount(v int64) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.NewFromInt(v)) }

// dates returns the dates of records, in order.
func dates(records []Record) []string {
	var ds []string
	for _, r := range records {
		ds = append(ds, r.Date.String())
	}
	return ds
}

// sample returns a few years of made up statements, in no particular order.
func sample() []Record {
	return []Record{
		{Date: date.MustParse("2021-09-25"), Revenue: amount(365817), NetIncome: amount(94680), EPS: decimal.NewNullDecimal(decimal.RequireFromString("5.67"))},
		{Date: date.MustParse("2023-09-30"), Revenue: amount(383285), NetIncome: amount(96995), EPS: decimal.NewNullDecimal(decimal.RequireFromString("6.16"))},
		{Date: date.MustParse("2019-09-28"), Revenue: amount(260174), NetIncome: amount(55256), EPS: decimal.NewNullDecimal(decimal.RequireFromString("2.99"))},
		{Date: date.MustParse("2022-09-24"), Revenue: amount(394328), NetIncome: amount(99803), EPS: decimal.NewNullDecimal(decimal.RequireFromString("6.15"))},
		{Date: date.MustParse("2020-09-26"), Revenue: amount(274515), NetIncome: amount(-1), EPS: decimal.NewNullDecimal(decimal.RequireFromString("3.31"))},
	}
}

func TestDerive_Scenarios(t *testing.T) {
	r := []Record{rec("2022-01-01", 100), rec("2023-01-01", 50)}

	tests := []struct {
		name  string
		state ViewState
		want  []string
	}{
		{
			name:  "min revenue",
			state: NewViewState().SetBound(MinRevenue, "60"),
			want:  []string{"2022-01-01"},
		},
		{
			name:  "revenue ascending",
			state: ViewState{Sort: SortSpec{Field: FieldRevenue, Direction: Ascending}},
			want:  []string{"2023-01-01", "2022-01-01"},
		},
		{
			name:  "single year",
			state: NewViewState().SetBound(StartYear, "2023").SetBound(EndYear, "2023"),
			want:  []string{"2023-01-01"},
		},
		{
			name:  "non numeric bound",
			state: NewViewState().SetBound(MinRevenue, "lots"),
			want:  []string{"2023-01-01", "2022-01-01"},
		},
		{
			name:  "default sort is most recent first",
			state: NewViewState(),
			want:  []string{"2023-01-01", "2022-01-01"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dates(Derive(r, tt.state))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Derive() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDerive_DoesNotMutate(t *testing.T) {
	records := sample()
	before := dates(records)
	Derive(records, NewViewState().ToggleSort(FieldRevenue).SetBound(MinNetIncome, "0"))
	if diff := cmp.Diff(before, dates(records)); diff != "" {
		t.Errorf("Derive() modified its input (-before +after):\n%s", diff)
	}
}

func TestFilter_Soundness(t *testing.T) {
	records := sample()
	criteria := []Criteria{
		{},
		NewViewState().SetBound(StartYear, "2020").Criteria,
		NewViewState().SetBound(EndYear, "2021").SetBound(MinNetIncome, "0").Criteria,
		NewViewState().SetBound(MinRevenue, "270000").SetBound(MaxRevenue, "390000").Criteria,
		NewViewState().SetBound(MaxNetIncome, "95000.5").Criteria,
		NewViewState().SetBound(StartYear, "2030").Criteria,
	}
	for i, c := range criteria {
		got := Filter(records, c)
		for _, r := range got {
			if !slices.ContainsFunc(records, func(x Record) bool { return x.Date == r.Date }) {
				t.Errorf("criteria #%d: Filter() returned %v not in the input", i, r.Date)
			}
			if !c.Match(r) {
				t.Errorf("criteria #%d: Filter() kept %v that does not match", i, r.Date)
			}
		}
		for _, r := range records {
			kept := slices.ContainsFunc(got, func(x Record) bool { return x.Date == r.Date })
			if !kept && c.Match(r) {
				t.Errorf("criteria #%d: Filter() dropped %v that matches", i, r.Date)
			}
		}
		if diff := cmp.Diff(dates(got), dates(Filter(got, c))); diff != "" {
			t.Errorf("criteria #%d: Filter() is not idempotent (-once +twice):\n%s", i, diff)
		}
	}
}

func TestFilter_Bounds(t *testing.T) {
	records := sample()
	tests := []struct {
		name  string
		key   BoundKey
		value string
		want  []string
	}{
		{"start year inclusive", StartYear, "2022", []string{"2023-09-30", "2022-09-24"}},
		{"end year inclusive", EndYear, "2020", []string{"2019-09-28", "2020-09-26"}},
		{"year is an integer", StartYear, "2022.5", []string{"2021-09-25", "2023-09-30", "2019-09-28", "2022-09-24", "2020-09-26"}},
		{"min revenue inclusive", MinRevenue, "383285", []string{"2023-09-30", "2022-09-24"}},
		{"max revenue inclusive", MaxRevenue, "274515", []string{"2019-09-28", "2020-09-26"}},
		{"min net income negative", MinNetIncome, "-1", []string{"2021-09-25", "2023-09-30", "2019-09-28", "2022-09-24", "2020-09-26"}},
		{"max net income", MaxNetIncome, "0", []string{"2020-09-26"}},
		{"blank", MaxNetIncome, "  ", []string{"2021-09-25", "2023-09-30", "2019-09-28", "2022-09-24", "2020-09-26"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dates(Filter(records, NewViewState().SetBound(tt.key, tt.value).Criteria))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilter_InvalidValues(t *testing.T) {
	records := []Record{
		{Date: date.MustParse("2022-01-01")}, // no amounts at all
		{Revenue: amount(10)},                // no date
	}
	if got := Filter(records, Criteria{}); len(got) != 2 {
		t.Errorf("Filter() without criteria kept %d records, want 2", len(got))
	}
	if got := Filter(records, NewViewState().SetBound(MinRevenue, "0").Criteria); len(got) != 1 || !got[0].Date.IsZero() {
		t.Errorf("Filter() with revenue bound = %v, want only the undated record", got)
	}
	if got := Filter(records, NewViewState().SetBound(EndYear, "3000").Criteria); len(got) != 1 || got[0].Date.IsZero() {
		t.Errorf("Filter() with year bound = %v, want only the dated record", got)
	}
}

func TestSort(t *testing.T) {
	records := sample()
	for _, f := range Fields {
		for _, d := range []Direction{Ascending, Descending} {
			spec := SortSpec{Field: f, Direction: d}
			got := Sort(records, spec)
			if len(got) != len(records) {
				t.Fatalf("Sort(%v %v) returned %d records, want %d", f, d, len(got), len(records))
			}
			for _, r := range records {
				if !slices.ContainsFunc(got, func(x Record) bool { return x.Date == r.Date }) {
					t.Errorf("Sort(%v %v) lost %v", f, d, r.Date)
				}
			}
			for i := 1; i < len(got); i++ {
				c := spec.compare(got[i-1], got[i])
				if d == Descending {
					c = -c
				}
				if c > 0 {
					t.Errorf("Sort(%v %v) rows %d and %d are out of order", f, d, i-1, i)
				}
			}
			if diff := cmp.Diff(dates(got), dates(Sort(got, spec))); diff != "" {
				t.Errorf("Sort(%v %v) is not idempotent (-once +twice):\n%s", f, d, diff)
			}
		}
	}
}

func TestSort_DateIsChronological(t *testing.T) {
	records := []Record{rec("2023-10-01", 1), rec("2023-2-1", 2), rec("2022-12-31", 3)}
	got := dates(Sort(records, SortSpec{Field: FieldDate, Direction: Ascending}))
	want := []string{"2022-12-31", "2023-02-01", "2023-10-01"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Sort() mismatch (-want +got):\n%s", diff)
	}
}

func TestSort_Stable(t *testing.T) {
	records := []Record{rec("2020-01-01", 5), rec("2021-01-01", 7), rec("2022-01-01", 5), rec("2023-01-01", 7)}
	tests := []struct {
		dir  Direction
		want []string
	}{
		{Ascending, []string{"2020-01-01", "2022-01-01", "2021-01-01", "2023-01-01"}},
		{Descending, []string{"2021-01-01", "2023-01-01", "2020-01-01", "2022-01-01"}},
	}
	for _, tt := range tests {
		got := dates(Sort(records, SortSpec{Field: FieldRevenue, Direction: tt.dir}))
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Sort(%v) mismatch (-want +got):\n%s", tt.dir, diff)
		}
	}
}

func TestToggleSort(t *testing.T) {
	v := NewViewState()
	if v.Sort != DefaultSort {
		t.Fatalf("NewViewState().Sort = %v, want %v", v.Sort, DefaultSort)
	}
	v = v.ToggleSort(FieldDate)
	if want := (SortSpec{FieldDate, Ascending}); v.Sort != want {
		t.Errorf("ToggleSort(date) = %v, want %v", v.Sort, want)
	}
	v = v.ToggleSort(FieldRevenue)
	if want := (SortSpec{FieldRevenue, Descending}); v.Sort != want {
		t.Errorf("ToggleSort(revenue) = %v, want %v", v.Sort, want)
	}

	// toggling reverses the rows when values are distinct
	records := sample()
	for _, f := range Fields {
		if f == FieldGrossProfit || f == FieldOperatingIncome {
			continue // all invalid in the sample, not distinct
		}
		first := NewViewState().ToggleSort(f)
		if f == FieldDate {
			first = NewViewState()
		}
		a := dates(Derive(records, first))
		b := dates(Derive(records, first.ToggleSort(f)))
		slices.Reverse(b)
		if diff := cmp.Diff(a, b); diff != "" {
			t.Errorf("toggling %v does not reverse rows (-first +reversed second):\n%s", f, diff)
		}
	}
}

func TestViewState_Values(t *testing.T) {
	v := NewViewState().SetBound(StartYear, "2020").SetBound(MaxRevenue, "abc").ToggleSort(FieldNetIncome).ToggleSort(FieldNetIncome)
	q := v.Values()
	want := url.Values{
		"startYear":  {"2020"},
		"maxRevenue": {"abc"},
		"sort":       {"netIncome"},
		"dir":        {"asc"},
	}
	if diff := cmp.Diff(want, q); diff != "" {
		t.Errorf("Values() mismatch (-want +got):\n%s", diff)
	}

	got := ParseViewState(q)
	if got.Sort != v.Sort {
		t.Errorf("ParseViewState().Sort = %v, want %v", got.Sort, v.Sort)
	}
	if got.Criteria.MaxRevenue.IsSet() {
		t.Error("ParseViewState() set a bound from non numeric text")
	}
	if got.Criteria.MaxRevenue.Text() != "abc" {
		t.Errorf("ParseViewState() lost the typed text, got %q", got.Criteria.MaxRevenue.Text())
	}
	if y, ok := got.Criteria.StartYear.Value(); !ok || y.IntPart() != 2020 {
		t.Errorf("ParseViewState() start year = %v %v, want 2020", y, ok)
	}
}

func TestParseViewState_Defaults(t *testing.T) {
	got := ParseViewState(url.Values{"sort": {"ticker"}, "dir": {"asc"}})
	if got.Sort != DefaultSort {
		t.Errorf("ParseViewState() with unknown field = %v, want %v", got.Sort, DefaultSort)
	}
	got = ParseViewState(url.Values{"sort": {"eps"}, "dir": {"sideways"}})
	if want := (SortSpec{FieldEPS, Descending}); got.Sort != want {
		t.Errorf("ParseViewState() with unknown direction = %v, want %v", got.Sort, want)
	}
}
