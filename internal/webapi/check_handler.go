package webapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/rafaeljc/huginn/checkweb"
	"github.com/rafaeljc/huginn/internal/logger"
)

// handleCheck processes the POST /api/v1/check request.
//
// Responsibilities:
// 1. Decodes the JSON payload into the CheckRequest DTO.
// 2. Sanitizes and validates the input (absolute http/https URL).
// 3. Runs the web check with the request's context, so a disconnecting
//    client cancels the probe.
// 4. Maps the typed outcome to the response DTO. A broken link is a 200
//    with valid=false, not an API error.
func (a *API) handleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithContext(r.Context(), a.logger)
	log := a.logger

	// 1. Decode Request
	var req CheckRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("invalid json payload", slog.String("error", err.Error()))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{
			Code:    "ERR_INVALID_JSON",
			Message: "Invalid JSON payload: " + err.Error(),
		})
		return
	}

	// 2. Sanitize & Validate
	req.Sanitize()
	target, errResp := req.Validate()
	if errResp != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errResp)
		return
	}

	// 3. Run the check
	err := checkweb.CheckWeb(ctx, target, a.env)
	if err == nil {
		render.Status(r, http.StatusOK)
		render.JSON(w, r, CheckResponse{URL: req.URL, Valid: true})
		return
	}

	// 4. Map the outcome
	var reason *checkweb.Reason
	if !errors.As(err, &reason) {
		// Not a check verdict: something unexpected happened.
		log.Error("check failed unexpectedly", slog.String("url", req.URL), slog.String("error", err.Error()))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{
			Code:    "ERR_INTERNAL",
			Message: "Check failed unexpectedly",
		})
		return
	}

	log.Info("link check negative",
		slog.String("url", req.URL),
		slog.String("kind", reason.Kind.String()),
		slog.Int("status_code", reason.StatusCode),
	)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, CheckResponse{
		URL:   req.URL,
		Valid: false,
		Reason: &ReasonResponse{
			Kind:       reason.Kind.String(),
			StatusCode: reason.StatusCode,
			Fragment:   reason.Fragment,
			Message:    reason.Error(),
		},
	})
}
