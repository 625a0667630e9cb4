package webapi

import (
	"net/url"
	"strings"
)

// CheckRequest is the payload for POST /api/v1/check.
type CheckRequest struct {
	// URL is the absolute URL to validate, fragment included.
	URL string `json:"url"`
}

// Sanitize normalizes the request in place.
func (r *CheckRequest) Sanitize() {
	r.URL = strings.TrimSpace(r.URL)
}

// Validate checks the request and returns the parsed target on success.
// Only absolute http/https URLs are checkable.
func (r *CheckRequest) Validate() (*url.URL, *ErrorResponse) {
	if r.URL == "" {
		return nil, &ErrorResponse{
			Code:    "ERR_INVALID_INPUT",
			Message: "URL is required",
		}
	}

	target, err := url.Parse(r.URL)
	if err != nil {
		return nil, &ErrorResponse{
			Code:    "ERR_INVALID_INPUT",
			Message: "URL is not parseable: " + err.Error(),
		}
	}

	if target.Scheme != "http" && target.Scheme != "https" {
		return nil, &ErrorResponse{
			Code:    "ERR_INVALID_INPUT",
			Message: "URL scheme must be http or https",
		}
	}

	if target.Host == "" {
		return nil, &ErrorResponse{
			Code:    "ERR_INVALID_INPUT",
			Message: "URL must be absolute",
		}
	}

	return target, nil
}

// CheckResponse reports the outcome of one check.
// A broken link is still a successful API call: the HTTP status is 200 and
// Valid carries the verdict.
type CheckResponse struct {
	URL   string `json:"url"`
	Valid bool   `json:"valid"`

	// Reason is present only when Valid is false.
	Reason *ReasonResponse `json:"reason,omitempty"`
}

// ReasonResponse is the wire form of a checkweb.Reason.
type ReasonResponse struct {
	// Kind is "http" or "dom".
	Kind string `json:"kind"`

	// StatusCode is set for HTTP failures that received a response.
	StatusCode int `json:"status_code,omitempty"`

	// Fragment is the anchor that was not found, for DOM failures.
	Fragment string `json:"fragment,omitempty"`

	// Message is a human-readable description.
	Message string `json:"message"`
}

// ErrorResponse is the standard error payload for client and server errors.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
