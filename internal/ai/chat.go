package ai

import (
	"context"

	"go.uber.org/zap"
)

// Message roles, mirroring the chat APIs.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a model conversation.
type Message struct {
	Role    string
	Content string
}

// Completer performs one chat exchange: it sends the full ordered history
// and returns the assistant's reply text.
type Completer interface {
	Complete(ctx context.Context, history []Message) (string, error)
}

// Conversation owns the ordered message history of one scenario run. It is
// not safe for concurrent use; each run gets its own instance.
type Conversation struct {
	completer Completer
	history   []Message
	logger    *zap.Logger
}

// NewConversation wraps a completer with message-history bookkeeping.
func NewConversation(completer Completer, logger *zap.Logger) *Conversation {
	return &Conversation{
		completer: completer,
		logger:    logger.Named("chat"),
	}
}

// Setup clears the history, installs the system prompt, and performs one
// no-op exchange to warm the remote session. The warm-up reply is awaited
// but discarded; it never enters the history.
func (c *Conversation) Setup(ctx context.Context, systemPrompt string) error {
	c.history = []Message{{Role: RoleSystem, Content: systemPrompt}}
	_, err := c.completer.Complete(ctx, c.history)
	if err != nil {
		return err
	}
	c.logger.Debug("conversation primed")
	return nil
}

// Send appends a user turn, exchanges the entire history with the model,
// records the assistant reply, and returns its text. Errors propagate
// untouched; retrying is the caller's decision.
func (c *Conversation) Send(ctx context.Context, text string) (string, error) {
	c.history = append(c.history, Message{Role: RoleUser, Content: text})
	reply, err := c.completer.Complete(ctx, c.history)
	if err != nil {
		return "", err
	}
	c.history = append(c.history, Message{Role: RoleAssistant, Content: reply})
	return reply, nil
}

// History returns a copy of the accumulated messages.
func (c *Conversation) History() []Message {
	out := make([]Message, len(c.history))
	copy(out, c.history)
	return out
}
