package errors

import "errors"

// This package defines a centralized set of sentinel errors for the application.
// Using sentinel errors allows services to return specific, recognizable error types
// without coupling them to implementation details like HTTP status codes. The API
// layer can then use `errors.Is()` to check for these specific errors and map
// them to the correct HTTP responses.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// This is typically mapped to a 404 Not Found HTTP status.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data provided by a client failed
	// business rule validation.
	// This is typically mapped to a 400 Bad Request HTTP status.
	ErrValidation = errors.New("validation failed")

	// ErrInsufficientCredits signifies that the user's balance does not cover
	// the cost of the requested generation. It is an expected, user-facing
	// outcome: the API layer maps it to 402 Payment Required and attaches the
	// required amount so the client can surface a payment prompt.
	ErrInsufficientCredits = errors.New("insufficient_credits")

	// ErrUnsupportedModel signifies that the requested model id resolves to no
	// known vendor. The dispatcher fails fast with this error before any
	// network call is attempted.
	ErrUnsupportedModel = errors.New("unsupported model")

	// ErrVendor signifies a failure in the outbound call to the LLM vendor
	// (network error, non-2xx response, or a response with no usable text).
	// The vendor's own message is wrapped so it reaches the caller.
	ErrVendor = errors.New("vendor request failed")

	// ErrInvalidResponse signifies that generated content failed structural
	// validation and could not be repaired. The raw text travels alongside the
	// error so the UI can show the user what came back.
	ErrInvalidResponse = errors.New("generated content failed validation")

	// ErrInternal signifies an unexpected error on the server. This is a generic
	// error used to prevent leaking sensitive implementation details to the client.
	// This is typically mapped to a 500 Internal Server Error HTTP status.
	ErrInternal = errors.New("internal server error")
)
