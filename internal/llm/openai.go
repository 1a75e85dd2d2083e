package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIProvider uses the chat completions API.
type OpenAIProvider struct {
	apiKey      string
	model       string
	system      string
	temperature float64
	baseURL     string

	mu     sync.Mutex
	client *openai.Client
}

func NewOpenAIProvider(s Settings) *OpenAIProvider {
	model := strings.TrimSpace(s.Model)
	if model == "" || strings.HasPrefix(model, "gemini") {
		model = defaultOpenAIModel
	}
	return &OpenAIProvider{
		apiKey:      strings.TrimSpace(s.APIKey),
		model:       model,
		system:      s.SystemPrompt,
		temperature: s.Temperature,
		baseURL:     s.BaseURL,
	}
}

func (p *OpenAIProvider) ensureClient() (*openai.Client, error) {
	if p.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client == nil {
		// At most one request per query; the service maps failures to a fallback.
		opts := []option.RequestOption{option.WithAPIKey(p.apiKey), option.WithMaxRetries(0)}
		if p.baseURL != "" {
			opts = append(opts, option.WithBaseURL(p.baseURL))
		}
		c := openai.NewClient(opts...)
		p.client = &c
	}
	return p.client, nil
}

func (p *OpenAIProvider) Chat(ctx context.Context, message string, history []Turn) (string, error) {
	client, err := p.ensureClient()
	if err != nil {
		return "", err
	}
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(p.model),
		Messages:    openAIMessages(p.system, history, message),
		Temperature: openai.Float(p.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func openAIMessages(system string, history []Turn, message string) []openai.ChatCompletionMessageParamUnion {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	if system != "" {
		msgs = append(msgs, openai.SystemMessage(system))
	}
	for _, t := range history {
		if t.Role == RoleModel {
			msgs = append(msgs, openai.AssistantMessage(t.Text))
		} else {
			msgs = append(msgs, openai.UserMessage(t.Text))
		}
	}
	return append(msgs, openai.UserMessage(message))
}
