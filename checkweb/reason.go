package checkweb

import "fmt"

// Kind discriminates why a web check failed.
type Kind int

const (
	// KindHTTP indicates the live probe failed: a transport-level error
	// (connection refused, timeout, TLS failure) or a non-success status code.
	KindHTTP Kind = iota + 1

	// KindDOM indicates the page was fetched successfully but the requested
	// anchor was not found, or the body could not be meaningfully parsed.
	KindDOM
)

// String returns a stable, lowercase label suitable for logs and metrics.
func (k Kind) String() string {
	switch k {
	case KindHTTP:
		return "http"
	case KindDOM:
		return "dom"
	default:
		return "unknown"
	}
}

// Reason is the typed failure returned by CheckWeb.
//
// Every failure is a returned value: nothing here is fatal to the process,
// and retry policy belongs entirely to the caller.
type Reason struct {
	// Kind discriminates HTTP failures from DOM (missing anchor) failures.
	Kind Kind

	// URL is the checked URL, fragment included.
	URL string

	// StatusCode is the HTTP status code when a response was received.
	// Zero for transport-level errors and DOM failures.
	StatusCode int

	// Fragment is the anchor that was not found, for KindDOM failures.
	Fragment string

	// Err is the underlying transport or read error, if any.
	Err error
}

// Error implements the error interface.
func (r *Reason) Error() string {
	switch r.Kind {
	case KindDOM:
		return fmt.Sprintf("check %s: anchor %q not found", r.URL, r.Fragment)
	case KindHTTP:
		if r.StatusCode != 0 {
			return fmt.Sprintf("check %s: unexpected status %d", r.URL, r.StatusCode)
		}
		if r.Err != nil {
			return fmt.Sprintf("check %s: %v", r.URL, r.Err)
		}
		return fmt.Sprintf("check %s: request failed", r.URL)
	default:
		return fmt.Sprintf("check %s: failed", r.URL)
	}
}

// Unwrap exposes the underlying transport error to errors.Is/As chains.
func (r *Reason) Unwrap() error {
	return r.Err
}
