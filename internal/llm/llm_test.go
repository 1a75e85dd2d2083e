package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNewSelectsProvider(t *testing.T) {
	require.IsType(t, &GeminiProvider{}, New(Settings{}))
	require.IsType(t, &GeminiProvider{}, New(Settings{Provider: "gemini"}))
	require.IsType(t, &OpenAIProvider{}, New(Settings{Provider: " OpenAI "}))
}

func TestProvidersRequireAPIKey(t *testing.T) {
	for _, p := range []Provider{NewGeminiProvider(Settings{}), NewOpenAIProvider(Settings{APIKey: "  "})} {
		_, err := p.Chat(context.Background(), "hi", nil)
		require.ErrorIs(t, err, ErrNoAPIKey)
	}
}

func TestModelDefaults(t *testing.T) {
	require.Equal(t, defaultGeminiModel, NewGeminiProvider(Settings{}).model)
	require.Equal(t, defaultOpenAIModel, NewOpenAIProvider(Settings{Model: "gemini-3-flash-preview"}).model)
	require.Equal(t, "gpt-4o", NewOpenAIProvider(Settings{Model: "gpt-4o"}).model)
}

func TestGeminiHistoryDropsLeadingModelTurns(t *testing.T) {
	got := geminiHistory([]Turn{
		{Role: RoleModel, Text: "greeting"},
		{Role: RoleUser, Text: "q1"},
		{Role: RoleModel, Text: "a1"},
	})
	require.Len(t, got, 2)
	require.Equal(t, genai.RoleUser, got[0].Role)
	require.Equal(t, "q1", got[0].Parts[0].Text)
	require.Equal(t, genai.RoleModel, got[1].Role)
}

func TestOpenAIMessagesOrder(t *testing.T) {
	msgs := openAIMessages("sys", []Turn{{Role: RoleModel, Text: "hello"}, {Role: RoleUser, Text: "q"}}, "next")
	require.Len(t, msgs, 4)
	require.NotNil(t, msgs[0].OfSystem)
	require.NotNil(t, msgs[1].OfAssistant)
	require.NotNil(t, msgs[2].OfUser)
	require.NotNil(t, msgs[3].OfUser)

	require.Len(t, openAIMessages("", nil, "only"), 1)
}

func TestOpenAIChatAgainstStubServer(t *testing.T) {
	var calls atomic.Int32
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o-mini",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"  The Dojo awaits.  "}}]}`)
	}))
	defer srv.Close()

	p := NewOpenAIProvider(Settings{APIKey: "k", SystemPrompt: "sys", Temperature: 0.7, BaseURL: srv.URL + "/"})
	reply, err := p.Chat(context.Background(), "what is phoenyx?", []Turn{{Role: RoleModel, Text: "online"}})
	require.NoError(t, err)
	require.Equal(t, "The Dojo awaits.", reply)
	require.Equal(t, int32(1), calls.Load())
	require.Equal(t, "gpt-4o-mini", body["model"])
	require.Len(t, body["messages"], 3)
}

func TestOpenAIDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewOpenAIProvider(Settings{APIKey: "k", BaseURL: srv.URL + "/"})
	_, err := p.Chat(context.Background(), "hi", nil)
	require.Error(t, err)
	require.Equal(t, int32(1), calls.Load())
}

func TestGeminiChatAgainstStubServer(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gemini-3-flash-preview:generateContent")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Enter the Dojo."}]}}]}`)
	}))
	defer srv.Close()

	p := NewGeminiProvider(Settings{APIKey: "k", SystemPrompt: "sys", Temperature: 0.7, BaseURL: srv.URL + "/"})
	reply, err := p.Chat(context.Background(), "help me", []Turn{
		{Role: RoleModel, Text: "online"},
		{Role: RoleUser, Text: "earlier"},
		{Role: RoleModel, Text: "answer"},
	})
	require.NoError(t, err)
	require.Equal(t, "Enter the Dojo.", reply)
	require.Len(t, body["contents"], 3)
	require.Contains(t, body, "systemInstruction")
}
