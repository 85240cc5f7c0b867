package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	app_errors "github.com/rileyblackwell/imagi-oasis/internal/errors"
	"github.com/rileyblackwell/imagi-oasis/internal/service"
	app_validate "github.com/rileyblackwell/imagi-oasis/internal/validate"
)

// This file contains shared DTOs (Data Transfer Objects) for API responses
// and helper functions for sending consistent HTTP responses.

// ErrorResponse defines the standard JSON structure for error messages.
// RequiredCredits is only present on 402 responses so the client can surface
// a top-up prompt with the exact shortfall.
// RawResponse is only present on 422 responses and carries the unrepaired
// model output so the client can show the user what came back.
type ErrorResponse struct {
	Error           string           `json:"error"`
	RequiredCredits *decimal.Decimal `json:"required_credits,omitempty"`
	RawResponse     *string          `json:"raw_response,omitempty"`
}

// StatusResponse defines a generic success response, typically for operations
// like POST, PUT, DELETE that don't need to return a full resource.
type StatusResponse struct {
	Status string `json:"status"`
}

// respondWithError is the centralized error handling function for the API layer.
// It maps custom business-layer errors to appropriate HTTP status codes and formats
// a standard JSON error response.
func respondWithError(w http.ResponseWriter, err error) {
	var statusCode int
	payload := ErrorResponse{}

	var ice *service.InsufficientCreditsError

	switch {
	case errors.As(err, &ice):
		statusCode = http.StatusPaymentRequired
		payload.Error = "Your credit balance does not cover this generation."
		payload.RequiredCredits = &ice.Required
	case errors.Is(err, app_errors.ErrInsufficientCredits):
		statusCode = http.StatusPaymentRequired
		payload.Error = "Your credit balance does not cover this generation."
	case errors.Is(err, app_errors.ErrNotFound):
		statusCode = http.StatusNotFound
		payload.Error = "The requested resource was not found."
	case errors.Is(err, app_errors.ErrValidation):
		statusCode = http.StatusBadRequest
		// For validation errors, the error message from the service layer
		// is already descriptive and user-friendly.
		payload.Error = err.Error()
	case errors.Is(err, app_errors.ErrUnsupportedModel):
		statusCode = http.StatusBadRequest
		payload.Error = err.Error()
	case errors.Is(err, app_errors.ErrInvalidResponse):
		statusCode = http.StatusUnprocessableEntity
		payload.Error = "The model's response failed validation and could not be repaired."
		// Surface the structural reason and the unrepaired output so the
		// client can show the user what actually came back.
		var ve *app_validate.Error
		if errors.As(err, &ve) {
			payload.Error = ve.Reason
			payload.RawResponse = &ve.Content
		}
	case errors.Is(err, app_errors.ErrVendor):
		statusCode = http.StatusBadGateway
		payload.Error = "The model vendor could not complete the request."
	default:
		// Any unhandled error is considered an internal server error.
		// This prevents leaking implementation details to the client.
		statusCode = http.StatusInternalServerError
		payload.Error = "An unexpected internal server error occurred."
	}

	// The original, more detailed error is logged for debugging purposes,
	// while a generic message is sent to the client.
	slog.Warn("Responding with error", "status_code", statusCode, "client_message", payload.Error, "internal_error", err)

	respondWithJSON(w, statusCode, payload)
}

// respondWithJSON is a low-level helper for marshaling a payload to JSON
// and writing it to the http.ResponseWriter with a given status code.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		// This indicates a server-side programming error (e.g., trying to marshal a channel).
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}
