// Package probe issues the live HTTP requests behind a web check.
//
// It is a thin layer: the supplied client owns connection pooling, TLS,
// redirects, and transport timeouts. The probe's only jobs are merging
// caller-supplied headers into the request and classifying the response.
package probe

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rafaeljc/huginn/internal/observability"
)

// StatusError reports a response whose status code falls outside the
// success range after the client resolved any redirects.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.Code, http.StatusText(e.Code))
}

// Get issues a GET request and returns the response for body inspection.
// The caller owns the body and must close it.
//
// A transport-level error and a client/server error status are both
// failures; in the latter case the body is closed here and a *StatusError
// returned.
func Get(ctx context.Context, client *http.Client, target *url.URL, extra http.Header) (*http.Response, error) {
	resp, err := send(ctx, client, http.MethodGet, target, extra)
	if err != nil {
		return nil, err
	}
	if bad(resp.StatusCode) {
		resp.Body.Close()
		observability.ProbeRequests.WithLabelValues(http.MethodGet, "failure").Inc()
		return nil, &StatusError{Code: resp.StatusCode}
	}
	observability.ProbeRequests.WithLabelValues(http.MethodGet, "success").Inc()
	return resp, nil
}

// Head issues a HEAD request and infers existence purely from the status
// code. No body is ever fetched — this is the bandwidth optimization for
// links without a fragment.
func Head(ctx context.Context, client *http.Client, target *url.URL, extra http.Header) error {
	resp, err := send(ctx, client, http.MethodHead, target, extra)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if bad(resp.StatusCode) {
		observability.ProbeRequests.WithLabelValues(http.MethodHead, "failure").Inc()
		return &StatusError{Code: resp.StatusCode}
	}
	observability.ProbeRequests.WithLabelValues(http.MethodHead, "success").Inc()
	return nil
}

func send(ctx context.Context, client *http.Client, method string, target *url.URL, extra http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target.String(), nil)
	if err != nil {
		observability.ProbeRequests.WithLabelValues(method, "failure").Inc()
		return nil, fmt.Errorf("failed to build %s request: %w", method, err)
	}

	for name, values := range extra {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		observability.ProbeRequests.WithLabelValues(method, "failure").Inc()
		return nil, err
	}
	return resp, nil
}

// bad reports whether the status code indicates a client or server error.
// Redirects were already resolved by the client, so anything below 400
// means the resource exists.
func bad(code int) bool {
	return code >= http.StatusBadRequest
}
