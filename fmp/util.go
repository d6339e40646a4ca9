package fmp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
)

// requestLogger logs every round trip. The query, that holds the api key, is never logged.
type requestLogger struct {
	base http.RoundTripper
}

// RoundTrip implements the http.RoundTripper interface.
func (l *requestLogger) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := l.base.RoundTrip(req)
	if err != nil {
		log.Printf("%v %v%v %v", req.Method, req.URL.Host, req.URL.Path, err)
		return nil, err
	}
	log.Printf("%v %v%v %v", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	return resp, nil
}

// newLoggingClient returns an http.Client that logs requests.
func newLoggingClient() *http.Client {
	client := new(http.Client)
	client.Transport = &requestLogger{base: http.DefaultTransport}
	return client
}

// errorMessagePath locates the message in FMP error payloads like
// {"Error Message": "Invalid API KEY. Please retry or visit our documentation..."}
const errorMessagePath = `$["Error Message"]`

// providerMessage returns the error message embedded in an FMP payload, if any.
func providerMessage(body []byte) (string, bool) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return "", false
	}
	var jobj any
	if err := json.Unmarshal(body, &jobj); err != nil {
		return "", false
	}
	jval, err := jsonpath.Get(errorMessagePath, jobj)
	if err != nil {
		return "", false
	}
	msg, ok := jval.(string)
	return msg, ok && msg != ""
}

// jwget performs an HTTP GET request to the given address and unmarshals the
// JSON response body into the provided data structure.
//
// Every failure is reported as a *FetchError.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return &FetchError{Message: fmt.Sprintf("invalid request: %v", err), Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return &FetchError{Message: fmt.Sprintf("failed to fetch data: %v", redact(err)), Err: err}
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return &FetchError{Message: fmt.Sprintf("failed to read data: %v", err), Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := fmt.Sprintf("failed to fetch data: %v", resp.Status)
		if m, ok := providerMessage(buf.Bytes()); ok {
			msg += ": " + m
		}
		return &FetchError{Message: msg, Status: resp.StatusCode}
	}
	// FMP also reports some errors with a success status.
	if m, ok := providerMessage(buf.Bytes()); ok {
		return &FetchError{Message: "failed to fetch data: " + m, Status: resp.StatusCode}
	}
	if err := json.Unmarshal(buf.Bytes(), data); err != nil {
		return &FetchError{Message: fmt.Sprintf("failed to parse data: %v", err), Status: resp.StatusCode, Err: err}
	}
	return nil
}

// redact strips the request address from transport errors, it contains the api key.
func redact(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}
