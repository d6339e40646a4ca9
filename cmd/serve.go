package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/income"
	"github.com/etnz/income/fmp"
	"github.com/etnz/income/renderer"
	"github.com/google/subcommands"
)

// serveCmd serves the statements as an HTML page.
type serveCmd struct {
	apiKeyFlag
	addr   string
	locale string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serves the income statements table over HTTP" }
func (*serveCmd) Usage() string {
	return `isv serve [-addr <address>] [-locale <tag>]

  Fetches the annual income statements once, then serves a page to filter
  and sort them. Filters and sort are carried by the page address.

  Requires the FMP_API_KEY environment variable to be set or passed as a flag.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	c.apiKeyFlag.SetFlags(f)
	f.StringVar(&c.addr, "addr", ":8080", "address to listen on")
	f.StringVar(&c.locale, "locale", "", "locale for dates (e.g. en-GB). Defaults to the browser's Accept-Language.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.checkAPIKey() {
		return subcommands.ExitUsageError
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := fmp.NewClient(c.apiKey())
	session := income.NewSession(func(ctx context.Context) ([]income.Record, error) {
		return client.FetchAnnualIncomeStatements(ctx, fmp.Symbol)
	})
	go func() {
		session.Load(ctx)
		if err := session.Err(); err != nil {
			log.Printf("fetching statements: %v", err)
		}
	}()

	srv := &http.Server{Addr: c.addr, Handler: newHandler(session, c.locale)}
	go func() {
		<-ctx.Done()
		shutdown(srv, 5*time.Second)
	}()

	fmt.Fprintf(os.Stderr, "Serving %s on %s\n", renderer.Title(fmp.Company), c.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// shutdown stops srv gracefully, waiting at most timeout for active requests.
func shutdown(srv interface{ Shutdown(context.Context) error }, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutting down server: %v", err)
	}
}

// newHandler returns the routes of the page. locale overrides the Accept-Language header if not empty.
func newHandler(session *income.Session, locale string) http.Handler {
	title := renderer.Title(fmp.Company)

	options := func(r *http.Request) renderer.Options {
		prefs := locale
		if prefs == "" {
			prefs = r.Header.Get("Accept-Language")
		}
		return renderer.Options{DateLayout: renderer.DateLayout(prefs)}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		state := income.ParseViewState(r.URL.Query())
		page := renderer.NewPage(title, session, state, options(r))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if page.Error != "" {
			w.WriteHeader(http.StatusBadGateway)
		}
		if err := renderer.RenderPage(w, page); err != nil {
			log.Printf("rendering page: %v", err)
		}
	})
	mux.HandleFunc("GET /table.md", func(w http.ResponseWriter, r *http.Request) {
		switch session.Status() {
		case income.Loading:
			http.Error(w, "Loading...", http.StatusServiceUnavailable)
			return
		case income.Failed:
			http.Error(w, "Error: "+session.Err().Error(), http.StatusBadGateway)
			return
		}
		state := income.ParseViewState(r.URL.Query())
		table := renderer.NewTable(session.View(state), state, options(r))
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		fmt.Fprint(w, renderer.Markdown(title, table))
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, session.Status())
	})
	if *Verbose {
		return logRequests(mux)
	}
	return mux
}

// logRequests logs every request served by h.
func logRequests(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h.ServeHTTP(w, r)
		log.Printf("%v %v %v", r.Method, r.URL.Path, time.Since(start))
	})
}
