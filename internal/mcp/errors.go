package mcp

import (
	"errors"
	"fmt"

	"github.com/sfreitag/workmate/internal/chat"
	"github.com/sfreitag/workmate/internal/tracker"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// mapError maps domain errors to MCP error codes.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var upstreamErr *chat.UpstreamError
	var transportErr *chat.TransportError

	switch {
	case errors.Is(err, tracker.ErrNotFound):
		return &APIError{Code: "NOT_FOUND", Message: err.Error(), RecoveryHint: "Check the id; list tools show valid ids"}
	case errors.Is(err, chat.ErrAPIKeyMissing):
		return &APIError{Code: "API_KEY_MISSING", Message: err.Error(), RecoveryHint: "Save a vendor api key first"}
	case errors.Is(err, chat.ErrInvalidAPIKey):
		return &APIError{Code: "API_KEY_INVALID", Message: err.Error()}
	case errors.As(err, &upstreamErr):
		return &APIError{Code: "UPSTREAM_ERROR", Message: err.Error(), RecoveryHint: "The vendor rejected the request; retry later"}
	case errors.As(err, &transportErr):
		return &APIError{Code: "TRANSPORT_ERROR", Message: err.Error(), RecoveryHint: "Check relay and network connectivity"}
	case errors.Is(err, chat.ErrMalformedResponse):
		return &APIError{Code: "MALFORMED_RESPONSE", Message: err.Error()}
	default:
		return err
	}
}
