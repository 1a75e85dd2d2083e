package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jask/phoenyx/internal/llm"
)

const (
	Greeting      = "Neural Nexus Online. Authenticated. Ask me about the Phoenyx Protocol."
	FallbackError = "Error connecting to the Neural Nexus. Please try again later."
	FallbackEmpty = "Connection interrupted. The Neural Nexus is recalibrating..."
)

// Nexus fronts the chat provider. Every query is sent at most once and
// every failure becomes one of the fallback replies.
type Nexus struct {
	Provider llm.Provider
	Logger   *zap.Logger
	Timeout  time.Duration
}

// Ask returns the model reply, or a fallback string. It never fails.
func (n *Nexus) Ask(ctx context.Context, message string, history []llm.Turn) string {
	log := n.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("nexus")

	if n.Provider == nil {
		log.Warn("no chat provider configured")
		return FallbackError
	}
	if n.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.Timeout)
		defer cancel()
	}

	start := time.Now()
	reply, err := n.call(ctx, message, history)
	if err != nil {
		log.Error("query failed",
			zap.Error(err),
			zap.Int("history", len(history)),
			zap.Duration("took", time.Since(start)))
		return FallbackError
	}
	if strings.TrimSpace(reply) == "" {
		log.Warn("empty reply", zap.Duration("took", time.Since(start)))
		return FallbackEmpty
	}
	log.Debug("reply", zap.Int("chars", len(reply)), zap.Duration("took", time.Since(start)))
	return reply
}

func (n *Nexus) call(ctx context.Context, message string, history []llm.Turn) (reply string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider panic: %v", r)
		}
	}()
	return n.Provider.Chat(ctx, message, history)
}

// Message is one rendered chat entry.
type Message struct {
	Role llm.Role
	Text string
	At   time.Time
}

// Conversation is the in-memory chat log shown by the Nexus panel. It opens
// with the greeting, which is also sent as history.
type Conversation struct {
	messages []Message
	now      func() time.Time
}

func NewConversation() *Conversation {
	c := &Conversation{now: time.Now}
	c.Add(llm.RoleModel, Greeting)
	return c
}

func (c *Conversation) Add(role llm.Role, text string) Message {
	m := Message{Role: role, Text: text, At: c.now()}
	c.messages = append(c.messages, m)
	return m
}

func (c *Conversation) Messages() []Message {
	return append([]Message(nil), c.messages...)
}

// History converts the log to provider turns.
func (c *Conversation) History() []llm.Turn {
	out := make([]llm.Turn, len(c.messages))
	for i, m := range c.messages {
		out[i] = llm.Turn{Role: m.Role, Text: m.Text}
	}
	return out
}

// Clear drops everything but a fresh greeting.
func (c *Conversation) Clear() {
	c.messages = nil
	c.Add(llm.RoleModel, Greeting)
}
