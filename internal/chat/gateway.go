// Package chat maintains the conversation history and relays it, with
// the composed workspace context, to the vendor chat completion
// endpoint through the CORS relay.
package chat

import (
	"context"
	"errors"
	"log/slog"
)

// Context renders the current workspace data for the system prompt.
type Context interface {
	Compose(ctx context.Context) string
}

// GatewayConfig wires a Gateway.
type GatewayConfig struct {
	Composer    Context
	History     *History
	Credentials *Credentials
	Client      *Client
	PromptPath  string
	Model       string
	Temperature float64
	MaxTokens   int
	Logger      *slog.Logger
}

// Gateway owns one conversation. It is not safe for overlapping Send
// calls; the caller is expected to serialize.
type Gateway struct {
	composer    Context
	history     *History
	creds       *Credentials
	client      *Client
	prompt      *promptLoader
	model       string
	temperature float64
	maxTokens   int
	logger      *slog.Logger
}

// NewGateway creates a conversation gateway.
func NewGateway(cfg GatewayConfig) *Gateway {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		composer:    cfg.Composer,
		history:     cfg.History,
		creds:       cfg.Credentials,
		client:      cfg.Client,
		prompt:      newPromptLoader(cfg.PromptPath, logger),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      logger,
	}
}

// Send runs one conversation turn: the user message is appended to the
// history, the request goes out with the base prompt plus composed
// workspace context, and the assistant reply is appended and persisted.
// The user turn is rolled back only when every transport fails; an
// upstream error keeps it in place.
func (g *Gateway) Send(ctx context.Context, message string) (string, error) {
	apiKey, err := g.creds.Get(ctx)
	if err != nil {
		return "", err
	}

	g.history.Append(RoleUser, message)

	system := g.prompt.load() + g.composer.Compose(ctx)
	messages := make([]Message, 0, g.history.Len()+1)
	messages = append(messages, Message{Role: RoleSystem, Content: system})
	for _, turn := range g.history.Turns() {
		messages = append(messages, Message{Role: turn.Role, Content: turn.Content})
	}

	reply, err := g.client.Complete(ctx, apiKey, CompletionRequest{
		Model:       g.model,
		Messages:    messages,
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	})
	if err != nil {
		var transportErr *TransportError
		if errors.As(err, &transportErr) {
			g.history.DropLast()
		}
		g.logger.Warn("chat turn failed", "error", err)
		return "", err
	}

	g.history.Append(RoleAssistant, reply)
	g.history.Save(ctx)

	return reply, nil
}

// History returns a copy of the conversation so far.
func (g *Gateway) History() []Turn {
	return g.history.Turns()
}

// ClearHistory discards the conversation.
func (g *Gateway) ClearHistory(ctx context.Context) {
	g.history.Clear(ctx)
}
