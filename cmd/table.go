package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/etnz/income"
	"github.com/etnz/income/fmp"
	"github.com/etnz/income/renderer"
	"github.com/google/subcommands"
)

// output formats of the table command.
var formats = []string{"term", "md", "html", "json"}

// tableCmd prints the statements table.
type tableCmd struct {
	apiKeyFlag
	bounds map[income.BoundKey]*string
	sort   string
	dir    string
	format string
	locale string
}

func (*tableCmd) Name() string     { return "table" }
func (*tableCmd) Synopsis() string { return "prints the income statements table" }
func (*tableCmd) Usage() string {
	return `isv table [-start-year <year>] [-end-year <year>] [-min-revenue <amount>] ...
          [-sort <field>] [-dir asc|desc] [-format term|md|html|json]

  Fetches the annual income statements, filters and sorts them, and prints the table.
  Bounds are inclusive, a bound that is not a number is ignored.

Usage Examples:
# Years 2020 to 2023 with the lowest revenue first.
$ isv table -start-year 2020 -end-year 2023 -sort revenue -dir asc
`
}

// boundFlags maps flag names to bounds.
var boundFlags = []struct {
	name string
	key  income.BoundKey
	help string
}{
	{"start-year", income.StartYear, "first fiscal year to show"},
	{"end-year", income.EndYear, "last fiscal year to show"},
	{"min-revenue", income.MinRevenue, "minimum revenue"},
	{"max-revenue", income.MaxRevenue, "maximum revenue"},
	{"min-net-income", income.MinNetIncome, "minimum net income"},
	{"max-net-income", income.MaxNetIncome, "maximum net income"},
}

func (c *tableCmd) SetFlags(f *flag.FlagSet) {
	c.apiKeyFlag.SetFlags(f)
	c.bounds = make(map[income.BoundKey]*string)
	for _, b := range boundFlags {
		c.bounds[b.key] = f.String(b.name, "", b.help)
	}
	f.StringVar(&c.sort, "sort", income.DefaultSort.Field.String(), "field to sort on (date, revenue, netIncome, grossProfit, eps, operatingIncome)")
	f.StringVar(&c.dir, "dir", income.DefaultSort.Direction.String(), "sort direction (asc, desc)")
	f.StringVar(&c.format, "format", "term", "output format (term, md, html, json)")
	f.StringVar(&c.locale, "locale", "en-US", "locale for dates")
}

// viewState builds the view state from the flags.
func (c *tableCmd) viewState() (income.ViewState, error) {
	state := income.NewViewState()
	for k, text := range c.bounds {
		state = state.SetBound(k, *text)
	}
	field, err := income.ParseField(c.sort)
	if err != nil {
		return state, fmt.Errorf("parsing -sort: %w", err)
	}
	dir, ok := income.ParseDirection(c.dir)
	if !ok {
		return state, fmt.Errorf("parsing -dir: invalid direction %q want asc or desc", c.dir)
	}
	state.Sort = income.SortSpec{Field: field, Direction: dir}
	return state, nil
}

func (c *tableCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state, err := c.viewState()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if !slices.Contains(formats, c.format) {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q want one of %v\n", c.format, formats)
		return subcommands.ExitUsageError
	}
	if !c.checkAPIKey() {
		return subcommands.ExitUsageError
	}

	records, err := fmp.FetchAnnualIncomeStatements(ctx, fmp.Symbol, c.apiKey())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := c.print(income.Derive(records, state), state); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// print writes the derived records in the selected format.
func (c *tableCmd) print(records []income.Record, state income.ViewState) error {
	title := renderer.Title(fmp.Company)
	table := renderer.NewTable(records, state, renderer.Options{DateLayout: renderer.DateLayout(c.locale)})
	switch c.format {
	case "term":
		printMarkdown(renderer.Markdown(title, table))
	case "md":
		fmt.Print(renderer.Markdown(title, table))
	case "html":
		out, err := renderer.HTML(title, table)
		if err != nil {
			return err
		}
		fmt.Print(out)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	default:
		return fmt.Errorf("unknown format %q want one of %v", c.format, formats)
	}
	return nil
}
