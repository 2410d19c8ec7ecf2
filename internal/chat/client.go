package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// Message is one role-tagged message on the vendor wire.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the vendor chat completion contract.
type CompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// relayEnvelope is the forwarding contract understood by the relay.
type relayEnvelope struct {
	URL     string            `json:"url"`
	Method  string            `json:"method"`
	Headers map[string]string `json:"headers"`
	Body    CompletionRequest `json:"body"`
}

// Client sends completion requests through the relay, with a single
// direct-to-vendor fallback when the relay is unreachable.
type Client struct {
	relayURL   string
	vendorURL  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a completion client. An empty relayURL disables the
// relay path entirely.
func NewClient(relayURL, vendorURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		relayURL:   relayURL,
		vendorURL:  vendorURL,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Complete runs one round trip and returns the assistant text.
func (c *Client) Complete(ctx context.Context, apiKey string, req CompletionRequest) (string, error) {
	var resp *http.Response
	var relayErr error

	if c.relayURL != "" {
		resp, relayErr = c.postRelay(ctx, apiKey, req)
		if relayErr != nil {
			c.logger.Warn("relay unreachable, trying direct call", "error", relayErr)
		}
	} else {
		relayErr = fmt.Errorf("relay disabled")
	}

	if resp == nil {
		var directErr error
		resp, directErr = c.postDirect(ctx, apiKey, req)
		if directErr != nil {
			return "", &TransportError{RelayErr: relayErr, DirectErr: directErr}
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed completionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(parsed.Choices) == 0 {
		return "", ErrMalformedResponse
	}
	return parsed.Choices[0].Message.Content, nil
}

func (c *Client) postRelay(ctx context.Context, apiKey string, req CompletionRequest) (*http.Response, error) {
	envelope := relayEnvelope{
		URL:    c.vendorURL,
		Method: http.MethodPost,
		Headers: map[string]string{
			"Content-Type":  "application/json",
			"Authorization": "Bearer " + apiKey,
		},
		Body: req,
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.relayURL, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build relay request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(httpReq)
}

func (c *Client) postDirect(ctx context.Context, apiKey string, req CompletionRequest) (*http.Response, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.vendorURL, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build direct request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	return c.httpClient.Do(httpReq)
}
