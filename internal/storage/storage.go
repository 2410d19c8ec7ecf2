// Package storage provides the durable key-value store backing the
// tracker collections, the conversation history, and the saved credential.
// Values are opaque JSON blobs keyed by string; callers own the encoding.
package storage

import (
	"context"
	"errors"
)

// Well-known storage keys. Each collection is persisted whole under its
// own key; mutations rewrite every collection in one atomic group.
const (
	KeyProjects     = "work_assistant_projects"
	KeyRequirements = "work_assistant_requirements"
	KeyTasks        = "work_assistant_tasks"
	KeyTeamMembers  = "work_assistant_team_members"
	KeySequences    = "work_assistant_sequences"
	KeyChatHistory  = "work_assistant_chat_history"
	KeyAPIKey       = "work_assistant_api_key"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("key not found")

// KV is the durable key-value contract used by the tracker and chat layers.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	// PutAll writes every entry in a single transaction.
	PutAll(ctx context.Context, entries map[string][]byte) error
	Delete(ctx context.Context, key string) error
}
