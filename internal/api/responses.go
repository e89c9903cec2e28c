package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	app_errors "intake-assistant/backend/internal/errors"
)

// This file contains shared DTOs for API responses and helper functions for
// sending consistent HTTP responses.

// ErrorResponse defines the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error" example:"Field 'Message' failed on the 'required' tag"`
}

// UpstreamErrorResponse is returned when the completion provider failed.
// Detail is the provider's response with credentials removed.
type UpstreamErrorResponse struct {
	Error  string `json:"error" example:"LLM error"`
	Status int    `json:"status" example:"429"`
	Detail any    `json:"detail"`
}

// InternalErrorResponse is returned for unexpected faults. Detail only
// names the request id so the fault can be found in the logs.
type InternalErrorResponse struct {
	Error  string `json:"error" example:"server error"`
	Detail string `json:"detail" example:"request id host/abc-000001"`
}

// StatusResponse is the body of the health check.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// respondWithError maps service errors to HTTP status codes and writes the
// matching JSON body.
func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetReqID(r.Context())

	var upstream *app_errors.UpstreamError
	switch {
	case errors.As(err, &upstream):
		slog.Warn("Responding with upstream error", "request_id", requestID, "upstream_status", upstream.Status)
		respondWithJSON(w, http.StatusBadGateway, UpstreamErrorResponse{
			Error:  "LLM error",
			Status: upstream.Status,
			Detail: upstream.Detail,
		})
	case errors.Is(err, app_errors.ErrValidation):
		// Validation messages are written for the client already.
		slog.Info("Rejected invalid request", "request_id", requestID, "error", err)
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		// Anything else is internal; the cause stays in the logs.
		slog.Error("Responding with internal error", "request_id", requestID, "internal_error", err)
		respondWithJSON(w, http.StatusInternalServerError, InternalErrorResponse{
			Error:  "server error",
			Detail: "request id " + requestID,
		})
	}
}

// respondWithJSON is a low-level helper for marshaling a payload to JSON
// and writing it to the http.ResponseWriter with a given status code.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"server error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}
