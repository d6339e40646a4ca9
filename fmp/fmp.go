// Package fmp fetches income statements from financialmodelingprep.com.
package fmp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/etnz/income"
	"github.com/etnz/income/date"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the address of the FMP API.
const DefaultBaseURL = "https://financialmodelingprep.com"

// Symbol is the only company tracked.
const (
	Symbol  = "AAPL"
	Company = "Apple Inc."
)

// FetchError is returned for any failure to get the statements: network,
// non success status or unreadable payload.
type FetchError struct {
	Message string // human readable
	Status  int    // HTTP status, 0 if no response was received
	Err     error  // underlying error if any
}

func (e *FetchError) Error() string { return e.Message }
func (e *FetchError) Unwrap() error { return e.Err }

// Client queries the FMP API.
type Client struct {
	APIKey  string
	BaseURL string       // DefaultBaseURL if empty
	HTTP    *http.Client // a client logging requests if nil
}

// NewClient returns a Client for the production API.
func NewClient(apiKey string) *Client {
	return &Client{APIKey: apiKey, BaseURL: DefaultBaseURL, HTTP: newLoggingClient()}
}

// FetchAnnualIncomeStatements fetches statements with a default client.
func FetchAnnualIncomeStatements(ctx context.Context, symbol, apiKey string) ([]income.Record, error) {
	return NewClient(apiKey).FetchAnnualIncomeStatements(ctx, symbol)
}

// FetchAnnualIncomeStatements returns the annual income statements of symbol
// in the order the provider sent them. Errors are always a *FetchError.
//
// There is no retry and no cache: every call is one request.
func (c *Client) FetchAnnualIncomeStatements(ctx context.Context, symbol string) ([]income.Record, error) {
	// https://financialmodelingprep.com/api/v3/income-statement/AAPL?period=annual&apikey=demo
	// [
	//   {
	//     "date": "2023-09-30",
	//     "symbol": "AAPL",
	//     "reportedCurrency": "USD",
	//     "calendarYear": "2023",
	//     "revenue": 383285000000,
	//     "grossProfit": 169148000000,
	//     "operatingIncome": 114301000000,
	//     "netIncome": 96995000000,
	//     "eps": 6.16,
	//     ...
	//   },
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	q := url.Values{"period": {"annual"}, "apikey": {c.APIKey}}
	addr := fmt.Sprintf("%s/api/v3/income-statement/%s?%s", base, url.PathEscape(symbol), q.Encode())

	// fields are decoded one by one: a malformed value is kept invalid
	// rather than failing the whole feed.
	type statement struct {
		Date             json.RawMessage `json:"date"`
		Symbol           json.RawMessage `json:"symbol"`
		ReportedCurrency json.RawMessage `json:"reportedCurrency"`
		CalendarYear     json.RawMessage `json:"calendarYear"`
		Revenue          json.RawMessage `json:"revenue"`
		NetIncome        json.RawMessage `json:"netIncome"`
		GrossProfit      json.RawMessage `json:"grossProfit"`
		EPS              json.RawMessage `json:"eps"`
		OperatingIncome  json.RawMessage `json:"operatingIncome"`
	}

	content := make([]statement, 0)
	client := c.HTTP
	if client == nil {
		client = newLoggingClient()
	}
	if err := jwget(ctx, client, addr, &content); err != nil {
		return nil, err
	}

	records := make([]income.Record, 0, len(content))
	for i, s := range content {
		warn := func(field string, err error) {
			log.Printf("warning: statement #%d of %s: %s: %v", i, symbol, field, err)
		}
		on, err := readDate(s.Date)
		if err != nil {
			// kept as a zero date, the record is still displayed.
			warn("date", err)
		}
		records = append(records, income.Record{
			Date:             on,
			Symbol:           readString(s.Symbol),
			ReportedCurrency: readString(s.ReportedCurrency),
			CalendarYear:     readString(s.CalendarYear),
			Revenue:          readAmount(s.Revenue, "revenue", warn),
			NetIncome:        readAmount(s.NetIncome, "netIncome", warn),
			GrossProfit:      readAmount(s.GrossProfit, "grossProfit", warn),
			EPS:              readAmount(s.EPS, "eps", warn),
			OperatingIncome:  readAmount(s.OperatingIncome, "operatingIncome", warn),
		})
	}
	return records, nil
}

// readDate reads an ISO date string. Anything else gives the zero Date and an error.
func readDate(raw json.RawMessage) (date.Date, error) {
	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return date.Date{}, fmt.Errorf("not a date string: %s", raw)
	}
	return date.Parse(str)
}

// readString reads a string field, empty if missing or not a string.
func readString(raw json.RawMessage) string {
	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return ""
	}
	return str
}

// readAmount reads a numeric field. Missing or null values are invalid,
// malformed ones are invalid too and reported to warn.
func readAmount(raw json.RawMessage, field string, warn func(string, error)) decimal.NullDecimal {
	var v decimal.NullDecimal
	if len(raw) == 0 {
		return v
	}
	if err := v.UnmarshalJSON(raw); err != nil {
		warn(field, err)
		return decimal.NullDecimal{}
	}
	return v
}
