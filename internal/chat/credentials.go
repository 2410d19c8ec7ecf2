package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/sfreitag/workmate/internal/storage"
)

// Credentials stores the vendor api key.
type Credentials struct {
	kv storage.KV
}

// NewCredentials creates a credential store over the given KV.
func NewCredentials(kv storage.KV) *Credentials {
	return &Credentials{kv: kv}
}

// Set validates and saves the key. Vendor keys start with "sk-".
func (c *Credentials) Set(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" || !strings.HasPrefix(key, "sk-") {
		return ErrInvalidAPIKey
	}
	if err := c.kv.Put(ctx, storage.KeyAPIKey, []byte(key)); err != nil {
		return fmt.Errorf("saving api key: %w", err)
	}
	return nil
}

// Get returns the saved key, or ErrAPIKeyMissing.
func (c *Credentials) Get(ctx context.Context) (string, error) {
	data, err := c.kv.Get(ctx, storage.KeyAPIKey)
	if err != nil {
		if err == storage.ErrNotFound {
			return "", ErrAPIKeyMissing
		}
		return "", fmt.Errorf("reading api key: %w", err)
	}
	return string(data), nil
}
