package llm

import (
	"context"
	"errors"
	"strings"
)

// Provider answers one chat message given the prior conversation.
type Provider interface {
	Chat(ctx context.Context, message string, history []Turn) (string, error)
}

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one entry of the chat history.
type Turn struct {
	Role Role
	Text string
}

var ErrNoAPIKey = errors.New("llm: api key not configured")

// Settings selects and configures a provider.
type Settings struct {
	Provider     string
	APIKey       string
	Model        string
	SystemPrompt string
	Temperature  float64
	// BaseURL overrides the provider endpoint; empty means the public API.
	BaseURL string
}

// New returns the provider named in s, defaulting to Gemini. A missing key
// is reported by Chat, never here.
func New(s Settings) Provider {
	switch strings.ToLower(strings.TrimSpace(s.Provider)) {
	case "openai":
		return NewOpenAIProvider(s)
	default:
		return NewGeminiProvider(s)
	}
}
