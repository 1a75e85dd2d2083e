package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-3-flash-preview"

// GeminiProvider talks to the Gemini API through a fresh chat session per
// message, seeded with the caller's history.
type GeminiProvider struct {
	apiKey      string
	model       string
	system      string
	temperature float32
	baseURL     string

	mu     sync.Mutex
	client *genai.Client
}

func NewGeminiProvider(s Settings) *GeminiProvider {
	model := strings.TrimSpace(s.Model)
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiProvider{
		apiKey:      strings.TrimSpace(s.APIKey),
		model:       model,
		system:      s.SystemPrompt,
		temperature: float32(s.Temperature),
		baseURL:     s.BaseURL,
	}
}

func (g *GeminiProvider) ensureClient(ctx context.Context) (*genai.Client, error) {
	if g.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return g.client, nil
	}
	cfg := &genai.ClientConfig{APIKey: g.apiKey, Backend: genai.BackendGeminiAPI}
	if g.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	g.client = client
	return client, nil
}

func (g *GeminiProvider) Chat(ctx context.Context, message string, history []Turn) (string, error) {
	client, err := g.ensureClient(ctx)
	if err != nil {
		return "", err
	}
	cfg := &genai.GenerateContentConfig{Temperature: genai.Ptr(g.temperature)}
	if g.system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(g.system, genai.RoleUser)
	}
	chat, err := client.Chats.Create(ctx, g.model, cfg, geminiHistory(history))
	if err != nil {
		return "", fmt.Errorf("gemini: create chat: %w", err)
	}
	res, err := chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", fmt.Errorf("gemini: send message: %w", err)
	}
	return strings.TrimSpace(res.Text()), nil
}

// geminiHistory converts turns to API contents. The API wants the history to
// open with a user turn, so leading model turns (the greeting) are dropped.
func geminiHistory(history []Turn) []*genai.Content {
	out := make([]*genai.Content, 0, len(history))
	for _, t := range history {
		if len(out) == 0 && t.Role != RoleUser {
			continue
		}
		var role genai.Role = genai.RoleUser
		if t.Role == RoleModel {
			role = genai.RoleModel
		}
		out = append(out, genai.NewContentFromText(t.Text, role))
	}
	return out
}
