package ai

import (
	"context"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ClaudeCompleter exchanges conversations with Anthropic's Claude.
type ClaudeCompleter struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
}

// NewClaudeCompleter reads the API key from A11YPILOT_ANTHROPIC_KEY or
// ANTHROPIC_API_KEY.
func NewClaudeCompleter(opts ProviderOptions) (*ClaudeCompleter, error) {
	apiKey := os.Getenv("A11YPILOT_ANTHROPIC_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("A11YPILOT_ANTHROPIC_KEY or ANTHROPIC_API_KEY environment variable required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	model := opts.Model
	if model == "" {
		model = string(anthropic.ModelClaudeSonnet4_20250514)
	}
	maxTokens := int64(opts.MaxTokens)
	if maxTokens == 0 {
		maxTokens = 1024
	}

	return &ClaudeCompleter{
		client:    &client,
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Complete maps the history onto the Messages API. System turns become the
// system parameter; the API requires at least one user turn, so a
// system-only history (the conversation warm-up) gets a placeholder.
func (c *ClaudeCompleter) Complete(ctx context.Context, history []Message) (string, error) {
	var system []anthropic.TextBlockParam
	var messages []anthropic.MessageParam
	for _, m := range history {
		switch m.Role {
		case RoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: m.Content})
		case RoleAssistant:
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	if len(messages) == 0 {
		messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock("Ready.")))
	}

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		System:    system,
		Messages:  messages,
	})
	if err != nil {
		return "", fmt.Errorf("Claude API error: %w", err)
	}

	for _, block := range resp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("empty response from Claude")
}
