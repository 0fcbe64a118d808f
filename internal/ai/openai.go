package ai

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAICompleter exchanges conversations with OpenAI or any
// OpenAI-compatible server (a scenario's llmUrl endpoint).
type OpenAICompleter struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAICompleter reads the API key from A11YPILOT_OPENAI_KEY or
// OPENAI_API_KEY. When a BaseURL is set the key may be absent; local
// servers usually ignore it.
func NewOpenAICompleter(opts ProviderOptions) (*OpenAICompleter, error) {
	apiKey := os.Getenv("A11YPILOT_OPENAI_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" && opts.BaseURL == "" {
		return nil, fmt.Errorf("A11YPILOT_OPENAI_KEY or OPENAI_API_KEY environment variable required")
	}

	cfg := openai.DefaultConfig(apiKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	client := openai.NewClientWithConfig(cfg)

	model := opts.Model
	if model == "" {
		model = "gpt-4o"
	}
	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}

	return &OpenAICompleter{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Complete sends the history as-is; the roles map one to one.
func (c *OpenAICompleter) Complete(ctx context.Context, history []Message) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		Messages:  messages,
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}
