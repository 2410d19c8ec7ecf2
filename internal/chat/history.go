package chat

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sfreitag/workmate/internal/storage"
)

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Turn is one role-tagged message in the conversation.
type Turn struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// History is the ordered, append-only conversation log. It is not safe
// for concurrent use; the gateway assumes a single interactive caller.
type History struct {
	kv     storage.KV
	logger *slog.Logger
	turns  []Turn
}

// LoadHistory reads the persisted conversation. Missing or corrupt data
// starts an empty history with a logged warning.
func LoadHistory(ctx context.Context, kv storage.KV, logger *slog.Logger) *History {
	if logger == nil {
		logger = slog.Default()
	}
	h := &History{kv: kv, logger: logger}

	data, err := kv.Get(ctx, storage.KeyChatHistory)
	if err != nil {
		if err != storage.ErrNotFound {
			logger.Warn("load history failed, starting empty", "error", err)
		}
		return h
	}
	if err := json.Unmarshal(data, &h.turns); err != nil {
		logger.Warn("corrupt history, starting empty", "error", err)
		h.turns = nil
	}
	return h
}

// Append adds a turn in memory. Persistence happens via Save once a
// round trip completes.
func (h *History) Append(role, content string) Turn {
	turn := Turn{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
	h.turns = append(h.turns, turn)
	return turn
}

// DropLast removes the most recent turn. Used to roll back the user
// turn when every transport fails.
func (h *History) DropLast() {
	if len(h.turns) > 0 {
		h.turns = h.turns[:len(h.turns)-1]
	}
}

// Turns returns a copy of the conversation.
func (h *History) Turns() []Turn {
	return append([]Turn(nil), h.turns...)
}

// Len reports the number of turns.
func (h *History) Len() int {
	return len(h.turns)
}

// Save persists the whole history. Failures are logged and swallowed.
func (h *History) Save(ctx context.Context) {
	data, err := json.Marshal(h.turns)
	if err != nil {
		h.logger.Warn("marshal history failed", "error", err)
		return
	}
	if err := h.kv.Put(ctx, storage.KeyChatHistory, data); err != nil {
		h.logger.Warn("save history failed", "error", err)
	}
}

// Clear empties the conversation and removes the stored copy.
func (h *History) Clear(ctx context.Context) {
	h.turns = nil
	if err := h.kv.Delete(ctx, storage.KeyChatHistory); err != nil {
		h.logger.Warn("clear history failed", "error", err)
	}
}
