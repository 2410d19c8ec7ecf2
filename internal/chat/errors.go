package chat

import (
	"errors"
	"fmt"
)

var (
	// ErrAPIKeyMissing indicates no credential has been saved yet.
	ErrAPIKeyMissing = errors.New("api key not set")
	// ErrInvalidAPIKey indicates a malformed credential.
	ErrInvalidAPIKey = errors.New(`api key must start with "sk-"`)
	// ErrMalformedResponse indicates a success response without the
	// expected choice list.
	ErrMalformedResponse = errors.New("response missing choices")
)

// TransportError reports that both the relay and the direct fallback
// failed at the network level.
type TransportError struct {
	RelayErr  error
	DirectErr error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("all transports failed: relay: %v; direct: %v", e.RelayErr, e.DirectErr)
}

// UpstreamError reports a non-2xx status from the vendor (possibly
// mirrored through the relay), carrying the status code and body.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Body)
}
