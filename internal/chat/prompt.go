package chat

import (
	"log/slog"
	"os"
	"sync"
)

// fallbackSystemPrompt is used when the prompt file cannot be read.
const fallbackSystemPrompt = "You are a work assistant that helps manage projects, requirements and tasks. " +
	"Give clear, concise and helpful answers, and do your best to satisfy the user's request."

// promptLoader reads the base system prompt from disk exactly once.
type promptLoader struct {
	path   string
	logger *slog.Logger

	once sync.Once
	text string
}

func newPromptLoader(path string, logger *slog.Logger) *promptLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &promptLoader{path: path, logger: logger}
}

// load resolves the base prompt lazily, falling back to the hardcoded
// default when the file is missing.
func (p *promptLoader) load() string {
	p.once.Do(func() {
		if p.path == "" {
			p.text = fallbackSystemPrompt
			return
		}
		data, err := os.ReadFile(p.path)
		if err != nil {
			p.logger.Warn("prompt file unavailable, using fallback", "path", p.path, "error", err)
			p.text = fallbackSystemPrompt
			return
		}
		p.text = string(data)
	})
	return p.text
}
